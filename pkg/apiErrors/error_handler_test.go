package apiErrors

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteError(t *testing.T) {
	tests := []struct {
		name           string
		code           string
		expectedStatus int
	}{
		{"planilha não encontrada", ErrSheetNotFound, http.StatusUnprocessableEntity},
		{"arquivo ausente", ErrFileMissing, http.StatusBadRequest},
		{"dataset não encontrado", ErrDatasetNotFound, http.StatusNotFound},
		{"limite de uploads", ErrTooManyUploads, http.StatusTooManyRequests},
		{"código desconhecido", "XYZ_999", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()

			WriteError(rec, tt.code, "mensagem", map[string]string{"campo": "valor"})

			assert.Equal(t, tt.expectedStatus, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

			var body APIError
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.code, body.Code)
			assert.Equal(t, "mensagem", body.Message)
		})
	}
}

func TestFromError(t *testing.T) {
	apiErr := FromError(nil, ErrInvalidRequest)
	assert.Equal(t, ErrInternalServer, apiErr.Code)

	apiErr = FromError(errors.New("falhou"), ErrInvalidRequest)
	assert.Equal(t, ErrInvalidRequest, apiErr.Code)
	assert.Equal(t, "falhou", apiErr.Message)
}
