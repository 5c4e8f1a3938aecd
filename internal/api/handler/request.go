package handler

import (
	"io"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// maxJSONBodyBytes limita o corpo das requisições JSON
const maxJSONBodyBytes = 1 << 20

type ViewRequest struct {
	Filters map[string][]string `json:"filters" validate:"omitempty,dive,keys,required,endkeys"`
	TopN    int                 `json:"top_n" validate:"omitempty,min=1,max=50"`
}

type ExportRequest struct {
	Filters map[string][]string `json:"filters" validate:"omitempty,dive,keys,required,endkeys"`
}

func (r ViewRequest) Selection() domain.FilterSelection {
	return domain.FilterSelection(r.Filters)
}

func (r ExportRequest) Selection() domain.FilterSelection {
	return domain.FilterSelection(r.Filters)
}

type FieldError struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
	Param string `json:"param,omitempty"`
}

// decodeRequest lê o JSON do corpo e valida a struct. Um corpo vazio mantém os valores zero.
func decodeRequest(w http.ResponseWriter, r *http.Request, dst any) error {
	body := http.MaxBytesReader(w, r.Body, maxJSONBodyBytes)

	err := json.NewDecoder(body).Decode(dst)
	if err != nil && !errors.Is(err, io.EOF) {
		return errors.Wrap(err, "json inválido")
	}

	return validate.Struct(dst)
}

// validationDetails converte os erros do validator para o corpo da resposta
func validationDetails(err error) []FieldError {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return nil
	}

	details := make([]FieldError, 0, len(validationErrs))
	for _, fe := range validationErrs {
		details = append(details, FieldError{
			Field: fe.Namespace(),
			Rule:  fe.Tag(),
			Param: fe.Param(),
		})
	}

	return details
}
