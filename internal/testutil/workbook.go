// Package testutil monta planilhas XLSX em memória para os testes.
package testutil

import (
	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"
)

// Sheet é uma aba com suas linhas, a primeira sendo o cabeçalho
type Sheet struct {
	Name string
	Rows [][]interface{}
}

// Workbook gera os bytes de um arquivo XLSX com as abas informadas, na ordem
func Workbook(sheets ...Sheet) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	for i, sheet := range sheets {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", sheet.Name); err != nil {
				return nil, errors.Wrap(err, "renomear aba")
			}
		} else if _, err := f.NewSheet(sheet.Name); err != nil {
			return nil, errors.Wrap(err, "criar aba")
		}

		for r, row := range sheet.Rows {
			cell, err := excelize.CoordinatesToCellName(1, r+1)
			if err != nil {
				return nil, err
			}

			values := row
			if err := f.SetSheetRow(sheet.Name, cell, &values); err != nil {
				return nil, errors.Wrapf(err, "escrever linha %d", r+1)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, errors.Wrap(err, "gerar arquivo")
	}

	return buf.Bytes(), nil
}

// SalesRows é uma planilha de vendas pequena com as colunas do layout padrão
func SalesRows() [][]interface{} {
	return [][]interface{}{
		{"City", "Revenue", "Contact Status", "Customer", "Variant", "Month", "Year", "Medium"},
		{"A", 10, "Won", "Acme", "Premium", "Jan", 2023, "Email"},
		{"A", 20, "Lost", "Acme", "Basic", "Feb", 2023, "Phone"},
		{"B", 5, "Won", "Globex", "Premium", "Jan", 2024, "Email"},
	}
}
