// Package exporting gera o documento CSV da tabela filtrada para download
package exporting

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
)

const ContentType = "text/csv; charset=utf-8"

// WriteCSV escreve o cabeçalho e uma linha por registro, na ordem da tabela.
// Valores ausentes viram campos vazios.
func WriteCSV(w io.Writer, table *domain.Table) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(table.Columns); err != nil {
		return errors.Wrap(err, "erro ao escrever cabeçalho do CSV")
	}

	record := make([]string, len(table.Columns))
	for i, row := range table.Rows {
		for j := range record {
			record[j] = row[j].Key()
		}

		if err := cw.Write(record); err != nil {
			return errors.Wrapf(err, "erro ao escrever linha %d do CSV", i+1)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return errors.Wrap(err, "erro ao finalizar CSV")
	}

	return nil
}

// FileName monta o nome do arquivo de download a partir do nome enviado
func FileName(original string, at time.Time) string {
	base := original
	if i := strings.LastIndex(base, "."); i > 0 {
		base = base[:i]
	}

	base = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, base)

	if base == "" {
		base = "dataset"
	}

	return fmt.Sprintf("%s_filtered_%s.csv", base, at.Format("20060102-150405"))
}
