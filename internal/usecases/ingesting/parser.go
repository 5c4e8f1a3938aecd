// Package ingesting converte o arquivo enviado pelo usuário em uma tabela em memória
package ingesting

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
	"github.com/xuri/excelize/v2"
)

// DefaultSheetName é a aba esperada nas planilhas de exemplo do painel
const DefaultSheetName = "Sample Data"

// SheetMode define como a aba a ser lida é escolhida
type SheetMode string

const (
	// SheetModeStrict exige a aba com o nome configurado
	SheetModeStrict SheetMode = "strict"
	// SheetModeFirst usa sempre a primeira aba
	SheetModeFirst SheetMode = "first"
	// SheetModePreferred usa a aba configurada se existir, senão a primeira
	SheetModePreferred SheetMode = "preferred"
)

type Options struct {
	SheetName string
	Mode      SheetMode
}

// Result é a tabela lida junto com o nome da aba de origem
type Result struct {
	Table *domain.Table
	Sheet string
}

// ParseSheetMode valida o modo recebido em texto. Vazio retorna o modo estrito.
func ParseSheetMode(s string) (SheetMode, error) {
	switch SheetMode(strings.ToLower(strings.TrimSpace(s))) {
	case "", SheetModeStrict:
		return SheetModeStrict, nil
	case SheetModeFirst:
		return SheetModeFirst, nil
	case SheetModePreferred:
		return SheetModePreferred, nil
	default:
		return "", errors.Wrapf(ErrInvalidMode, "%q", s)
	}
}

// Parse lê os bytes de uma planilha XLSX e devolve a tabela da aba escolhida.
// Em caso de erro nenhuma tabela parcial é retornada.
func Parse(data []byte, opts Options) (*Result, error) {
	if opts.SheetName == "" {
		opts.SheetName = DefaultSheetName
	}
	if opts.Mode == "" {
		opts.Mode = SheetModeStrict
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, errors.WithMessage(ErrParse, err.Error())
	}
	defer func() { _ = f.Close() }()

	sheet, err := resolveSheet(f.GetSheetList(), opts)
	if err != nil {
		return nil, err
	}

	// Valores brutos: o texto formatado perderia números com estilo de moeda ou porcentagem
	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, errors.WithMessage(ErrParse, fmt.Sprintf("aba %q: %s", sheet, err))
	}

	table, err := buildTable(rows, newCellReader(f, sheet).value)
	if err != nil {
		return nil, errors.WithMessage(err, fmt.Sprintf("aba %q", sheet))
	}

	logrus.WithFields(logrus.Fields{
		"sheet":   sheet,
		"columns": len(table.Columns),
		"rows":    table.Len(),
	}).Debug("ingesting: planilha lida")

	return &Result{Table: table, Sheet: sheet}, nil
}

func resolveSheet(sheets []string, opts Options) (string, error) {
	if len(sheets) == 0 {
		return "", errors.WithMessage(ErrParse, "nenhuma aba encontrada")
	}

	hasNamed := false
	for _, name := range sheets {
		if name == opts.SheetName {
			hasNamed = true
			break
		}
	}

	switch opts.Mode {
	case SheetModeStrict:
		if !hasNamed {
			return "", errors.Wrapf(ErrSheetNotFound, "%q", opts.SheetName)
		}
		return opts.SheetName, nil
	case SheetModeFirst:
		return sheets[0], nil
	case SheetModePreferred:
		if hasNamed {
			return opts.SheetName, nil
		}
		return sheets[0], nil
	default:
		return "", errors.Wrapf(ErrInvalidMode, "%q", opts.Mode)
	}
}

// cellValue tipa o valor bruto de uma célula a partir da sua posição na aba
type cellValue func(row, col int, raw string) domain.Value

// buildTable usa a primeira linha não vazia como cabeçalho e ignora linhas vazias
func buildTable(rows [][]string, cell cellValue) (*domain.Table, error) {
	headerAt := -1
	for i, row := range rows {
		if !isBlank(row) {
			headerAt = i
			break
		}
	}

	if headerAt == -1 {
		return nil, errors.WithMessage(ErrParse, "cabeçalho não encontrado")
	}

	columns := normalizeHeaders(rows[headerAt])

	records := make([][]domain.Value, 0, len(rows)-headerAt-1)
	for i := headerAt + 1; i < len(rows); i++ {
		row := rows[i]
		if isBlank(row) {
			continue
		}

		record := make([]domain.Value, len(columns))
		for j := range columns {
			if j < len(row) {
				record[j] = cell(i, j, row[j])
			}
		}
		records = append(records, record)
	}

	return domain.NewTable(columns, records), nil
}

// normalizeHeaders remove espaços das pontas, nomeia colunas sem título e
// diferencia nomes repetidos com o primeiro sufixo numérico ainda livre
func normalizeHeaders(header []string) []string {
	columns := make([]string, len(header))
	used := make(map[string]struct{}, len(header))
	suffix := make(map[string]int, len(header))

	for i, raw := range header {
		base := strings.TrimSpace(raw)
		if base == "" {
			base = fmt.Sprintf("Unnamed: %d", i)
		}

		name := base
		for {
			if _, taken := used[name]; !taken {
				break
			}
			suffix[base]++
			name = fmt.Sprintf("%s.%d", base, suffix[base])
		}

		used[name] = struct{}{}
		columns[i] = name
	}

	return columns
}

func isBlank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
