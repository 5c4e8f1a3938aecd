package ingesting

import "github.com/pkg/errors"

// Erros da ingestão de planilhas. Todos são terminais para o envio que os gerou.
var (
	ErrSheetNotFound = errors.New("sheet not found")
	ErrParse         = errors.New("invalid spreadsheet")
	ErrInvalidMode   = errors.New("invalid sheet mode")
)
