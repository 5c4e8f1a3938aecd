package apiErrors

import (
	"net/http"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Códigos de erro da API
const (
	// Erros de upload (1000-1999)
	ErrSheetNotFound  = "UPL_001" // Planilha esperada não encontrada no arquivo
	ErrParseFile      = "UPL_002" // Arquivo não pôde ser lido como planilha
	ErrFileMissing    = "UPL_003" // Campo de arquivo ausente na requisição
	ErrFileTooLarge   = "UPL_004" // Arquivo maior que o limite configurado
	ErrTooManyUploads = "UPL_005" // Limite de uploads por segundo excedido

	// Erros de dataset (3000-3999)
	ErrDatasetNotFound = "DS_001" // Dataset não encontrado ou expirado

	// Erros de validação (2000-2999)
	ErrInvalidRequest      = "VAL_001" // Requisição inválida
	ErrMissingRequiredData = "VAL_002" // Dados obrigatórios ausentes
	ErrInvalidFormat       = "VAL_003" // Formato de dados inválido

	// Erros de roteamento (4000-4999)
	ErrNotFound         = "RT_001" // Rota não encontrada
	ErrMethodNotAllowed = "RT_002" // Método não permitido na rota

	// Erros do servidor (5000-5999)
	ErrInternalServer  = "SRV_001" // Erro interno do servidor
	ErrExternalService = "SRV_003" // Erro em serviço externo
)

// Mapeamento de códigos de erro para status HTTP
var httpStatusMap = map[string]int{
	ErrSheetNotFound:       http.StatusUnprocessableEntity,
	ErrParseFile:           http.StatusUnprocessableEntity,
	ErrFileMissing:         http.StatusBadRequest,
	ErrFileTooLarge:        http.StatusRequestEntityTooLarge,
	ErrTooManyUploads:      http.StatusTooManyRequests,
	ErrDatasetNotFound:     http.StatusNotFound,
	ErrInvalidRequest:      http.StatusBadRequest,
	ErrMissingRequiredData: http.StatusBadRequest,
	ErrInvalidFormat:       http.StatusBadRequest,
	ErrNotFound:            http.StatusNotFound,
	ErrMethodNotAllowed:    http.StatusMethodNotAllowed,
	ErrInternalServer:      http.StatusInternalServerError,
	ErrExternalService:     http.StatusBadGateway,
}

// APIError representa um erro de API padronizado
type APIError struct {
	Code    string `json:"code"`              // Código de erro para o cliente
	Message string `json:"message,omitempty"` // Mensagem descritiva (opcional)
	Details any    `json:"details,omitempty"` // Detalhes adicionais (opcional)
}

// StatusFor retorna o status HTTP associado ao código
func StatusFor(code string) int {
	status, exists := httpStatusMap[code]
	if !exists {
		return http.StatusInternalServerError
	}
	return status
}

// WriteError escreve o erro padronizado para a resposta HTTP
func WriteError(w http.ResponseWriter, code string, message string, details any) {
	apiErr := APIError{
		Code:    code,
		Message: message,
		Details: details,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(StatusFor(code))
	json.NewEncoder(w).Encode(apiErr)
}

// FromError cria um erro de API a partir de um erro Go
// Útil para quando você quer envolver um erro existente em um erro de API
func FromError(err error, code string) APIError {
	if err == nil {
		return APIError{
			Code:    ErrInternalServer,
			Message: "Erro desconhecido",
		}
	}

	return APIError{
		Code:    code,
		Message: err.Error(),
	}
}
