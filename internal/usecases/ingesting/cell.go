package ingesting

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/vfg2006/sales-dashboard-api/internal/domain"
	"github.com/xuri/excelize/v2"
)

var (
	numberPattern    = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?$`)
	thousandsPattern = regexp.MustCompile(`^[+-]?\d{1,3}(,\d{3})+(\.\d+)?$`)
)

// Formatos de data produzidos pelo excelize para os formatos de número padrão
// do Excel, além de ISO 8601
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"01-02-06",
	"1/2/06 15:04",
	"1/2/06",
}

// InferValue converte um texto sem tipo definido para o tipo mais específico possível
func InferValue(raw string) domain.Value {
	s := strings.TrimSpace(raw)
	if s == "" {
		return domain.Missing()
	}

	if thousandsPattern.MatchString(s) {
		s2 := strings.ReplaceAll(s, ",", "")
		if f, err := strconv.ParseFloat(s2, 64); err == nil {
			return domain.NumberValue(f)
		}
	}

	if numberPattern.MatchString(s) {
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return domain.NumberValue(f)
		}
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return domain.TimeValue(t)
		}
	}

	return domain.StringValue(s)
}

// Formatos de número embutidos do Excel que representam datas ou horas
var builtinDateFormats = map[int]struct{}{
	14: {}, 15: {}, 16: {}, 17: {}, 18: {}, 19: {}, 20: {}, 21: {}, 22: {},
	27: {}, 28: {}, 29: {}, 30: {}, 31: {}, 32: {}, 33: {}, 34: {}, 35: {}, 36: {},
	45: {}, 46: {}, 47: {},
	50: {}, 51: {}, 52: {}, 53: {}, 54: {}, 55: {}, 56: {}, 57: {}, 58: {},
}

// cellReader tipa as células de uma aba pelo tipo gravado no arquivo, não pelo
// texto formatado. Números com estilo de data viram datas; textos ficam como estão.
type cellReader struct {
	f          *excelize.File
	sheet      string
	date1904   bool
	dateStyles map[int]bool
}

func newCellReader(f *excelize.File, sheet string) *cellReader {
	r := &cellReader{f: f, sheet: sheet, dateStyles: make(map[int]bool)}
	if props, err := f.GetWorkbookProps(); err == nil && props.Date1904 != nil {
		r.date1904 = *props.Date1904
	}
	return r
}

// value recebe o valor bruto da célula (linha e coluna a partir de zero)
func (r *cellReader) value(row, col int, raw string) domain.Value {
	if strings.TrimSpace(raw) == "" {
		return domain.Missing()
	}

	cell, err := excelize.CoordinatesToCellName(col+1, row+1)
	if err != nil {
		return InferValue(raw)
	}

	cellType, err := r.f.GetCellType(r.sheet, cell)
	if err != nil {
		return InferValue(raw)
	}

	switch cellType {
	case excelize.CellTypeSharedString, excelize.CellTypeInlineString, excelize.CellTypeFormula:
		return domain.StringValue(raw)
	case excelize.CellTypeBool:
		if raw == "1" || strings.EqualFold(raw, "true") {
			return domain.StringValue("TRUE")
		}
		return domain.StringValue("FALSE")
	case excelize.CellTypeError:
		if raw == "#N/A" {
			return domain.Missing()
		}
		return domain.StringValue(raw)
	case excelize.CellTypeDate:
		return InferValue(raw)
	default:
		n, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return InferValue(raw)
		}
		if r.isDateStyled(cell) {
			if t, err := excelize.ExcelDateToTime(n, r.date1904); err == nil {
				return domain.TimeValue(t)
			}
		}
		return domain.NumberValue(n)
	}
}

func (r *cellReader) isDateStyled(cell string) bool {
	styleID, err := r.f.GetCellStyle(r.sheet, cell)
	if err != nil || styleID == 0 {
		return false
	}

	if isDate, ok := r.dateStyles[styleID]; ok {
		return isDate
	}

	isDate := false
	if style, err := r.f.GetStyle(styleID); err == nil && style != nil {
		_, isDate = builtinDateFormats[style.NumFmt]
		if !isDate && style.CustomNumFmt != nil {
			isDate = isDateFormatCode(*style.CustomNumFmt)
		}
	}

	r.dateStyles[styleID] = isDate
	return isDate
}

// isDateFormatCode procura tokens de data ou hora em um formato numérico
// customizado, ignorando textos entre aspas, colchetes, escapes e preenchimentos
func isDateFormatCode(code string) bool {
	section := strings.SplitN(code, ";", 2)[0]
	if strings.EqualFold(strings.TrimSpace(section), "general") {
		return false
	}

	inQuotes := false
	inBrackets := false
	for i := 0; i < len(section); i++ {
		c := section[i]
		switch {
		case inQuotes:
			inQuotes = c != '"'
		case inBrackets:
			inBrackets = c != ']'
		case c == '"':
			inQuotes = true
		case c == '[':
			inBrackets = true
		case c == '\\' || c == '_' || c == '*':
			i++
		default:
			switch c | 0x20 {
			case 'y', 'm', 'd', 'h', 's':
				return true
			}
		}
	}

	return false
}
