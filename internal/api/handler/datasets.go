package handler

import (
	"bytes"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/pkg/errors"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/dashboard"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/exporting"
	"github.com/vfg2006/sales-dashboard-api/pkg/apiErrors"
	"github.com/vfg2006/sales-dashboard-api/pkg/log"
)

// multipartMemory é o quanto do upload o parser mantém em memória antes de usar disco
const multipartMemory = 8 << 20

func UploadDataset(service dashboard.Service, maxBytes int64) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
		if err := r.ParseMultipartForm(multipartMemory); err != nil {
			if isTooLarge(err) {
				apiErrors.WriteError(w, apiErrors.ErrFileTooLarge, "Arquivo maior que o limite permitido", map[string]int64{"max_bytes": maxBytes})
				return
			}
			apiErrors.WriteError(w, apiErrors.ErrFileMissing, "Envie a planilha no campo 'file' (multipart/form-data)", nil)
			return
		}
		defer r.MultipartForm.RemoveAll()

		file, header, err := r.FormFile("file")
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrFileMissing, "Campo 'file' ausente", nil)
			return
		}
		defer file.Close()

		data, err := io.ReadAll(file)
		if err != nil {
			logger.WithError(err).Error("Erro ao ler arquivo enviado")
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao ler arquivo enviado", nil)
			return
		}

		dataset, err := service.Upload(r.Context(), filepath.Base(header.Filename), data, r.FormValue("sheet_mode"))
		if err != nil {
			writeServiceError(w, r, err, "Erro ao processar planilha")
			return
		}

		writeJSON(w, http.StatusCreated, dataset.Info())
	})
}

func ListDatasets(service dashboard.Service) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		datasets, err := service.ListDatasets(r.Context())
		if err != nil {
			writeServiceError(w, r, err, "Erro ao listar datasets")
			return
		}

		writeJSON(w, http.StatusOK, datasets)
	})
}

func GetDataset(service dashboard.Service) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		dataset, err := service.GetDataset(r.Context(), datasetID(r))
		if err != nil {
			writeServiceError(w, r, err, "Erro ao buscar dataset")
			return
		}

		writeJSON(w, http.StatusOK, dataset.Info())
	})
}

func DeleteDataset(service dashboard.Service) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := service.DeleteDataset(r.Context(), datasetID(r)); err != nil {
			writeServiceError(w, r, err, "Erro ao remover dataset")
			return
		}

		w.WriteHeader(http.StatusNoContent)
	})
}

func GetFilterOptions(service dashboard.Service) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		options, err := service.FilterOptions(r.Context(), datasetID(r))
		if err != nil {
			writeServiceError(w, r, err, "Erro ao listar filtros")
			return
		}

		writeJSON(w, http.StatusOK, options)
	})
}

func ViewDataset(service dashboard.Service) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req ViewRequest
		if err := decodeRequest(w, r, &req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Requisição inválida", validationDetails(err))
			return
		}

		view, err := service.View(r.Context(), datasetID(r), req.Selection(), req.TopN)
		if err != nil {
			writeServiceError(w, r, err, "Erro ao calcular painel")
			return
		}

		writeJSON(w, http.StatusOK, view)
	})
}

func ExportDataset(service dashboard.Service) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req ExportRequest
		if err := decodeRequest(w, r, &req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Requisição inválida", validationDetails(err))
			return
		}

		id := datasetID(r)
		dataset, err := service.GetDataset(r.Context(), id)
		if err != nil {
			writeServiceError(w, r, err, "Erro ao buscar dataset")
			return
		}

		// O CSV é montado em memória para que falhas ainda virem uma resposta JSON
		var buf bytes.Buffer
		if err := service.Export(r.Context(), id, req.Selection(), &buf); err != nil {
			writeServiceError(w, r, err, "Erro ao exportar dataset")
			return
		}

		fileName := exporting.FileName(dataset.FileName, time.Now())
		w.Header().Set("Content-Type", exporting.ContentType)
		w.Header().Set("Content-Disposition", `attachment; filename="`+fileName+`"`)
		w.WriteHeader(http.StatusOK)
		w.Write(buf.Bytes())
	})
}

func datasetID(r *http.Request) string {
	return httprouter.ParamsFromContext(r.Context()).ByName("id")
}

// writeServiceError usa o código do DashboardError quando houver
func writeServiceError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	var dashErr *dashboard.DashboardError
	if errors.As(err, &dashErr) {
		if apiErrors.StatusFor(dashErr.Code) >= http.StatusInternalServerError {
			log.ForContext(r.Context()).WithError(err).Error(fallback)
		}

		var details any
		if dashErr.DatasetID != "" {
			details = map[string]string{"dataset_id": dashErr.DatasetID}
		}
		apiErrors.WriteError(w, dashErr.Code, dashErr.Error(), details)
		return
	}

	log.ForContext(r.Context()).WithError(err).Error(fallback)
	apiErrors.WriteError(w, apiErrors.ErrInternalServer, fallback, nil)
}

func isTooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return true
	}
	return strings.Contains(err.Error(), "request body too large")
}
