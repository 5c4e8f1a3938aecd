package dashboard

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/ingesting"
	"github.com/vfg2006/sales-dashboard-api/pkg/apiErrors"
)

// Erros específicos do painel
var (
	ErrDatasetNotFound = errors.New("dataset not found")
	ErrGenerateID      = errors.New("error generating dataset id")
	ErrSaveDataset     = errors.New("error saving dataset")
	ErrExport          = errors.New("error exporting dataset")
)

// DashboardError é um erro com contexto adicional para a API
type DashboardError struct {
	Err       error  // Erro base
	Code      string // Código de erro para API
	DatasetID string // ID do dataset envolvido (quando aplicável)
	Details   string // Detalhes adicionais
}

// Error implementa a interface error
func (e *DashboardError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

// Unwrap retorna o erro subjacente
func (e *DashboardError) Unwrap() error {
	return e.Err
}

// NewDashboardError cria um novo DashboardError
func NewDashboardError(err error, code string, details string) *DashboardError {
	return &DashboardError{
		Err:     err,
		Code:    code,
		Details: details,
	}
}

// NewDashboardErrorWithID cria um novo DashboardError com ID do dataset
func NewDashboardErrorWithID(err error, code string, datasetID string, details string) *DashboardError {
	return &DashboardError{
		Err:       err,
		Code:      code,
		DatasetID: datasetID,
		Details:   details,
	}
}

// uploadError traduz os erros da ingestão para códigos da API
func uploadError(err error) *DashboardError {
	switch {
	case errors.Is(err, ingesting.ErrSheetNotFound):
		return NewDashboardError(ingesting.ErrSheetNotFound, apiErrors.ErrSheetNotFound, err.Error())
	case errors.Is(err, ingesting.ErrInvalidMode):
		return NewDashboardError(ingesting.ErrInvalidMode, apiErrors.ErrInvalidFormat, err.Error())
	default:
		return NewDashboardError(ingesting.ErrParse, apiErrors.ErrParseFile, err.Error())
	}
}
