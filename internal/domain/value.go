package domain

import (
	"strconv"
	"time"

	jsoniter "github.com/json-iterator/go"
)

// ValueKind identifica o tipo de uma célula da planilha
type ValueKind int

const (
	ValueMissing ValueKind = iota
	ValueString
	ValueNumber
	ValueTime
)

const (
	dateKeyLayout     = "2006-01-02"
	dateTimeKeyLayout = "2006-01-02 15:04:05"
)

// Value representa o conteúdo de uma célula: texto, número, data ou ausente
type Value struct {
	Kind ValueKind
	Str  string
	Num  float64
	Time time.Time
}

func Missing() Value {
	return Value{Kind: ValueMissing}
}

func StringValue(s string) Value {
	return Value{Kind: ValueString, Str: s}
}

func NumberValue(f float64) Value {
	return Value{Kind: ValueNumber, Num: f}
}

func TimeValue(t time.Time) Value {
	return Value{Kind: ValueTime, Time: t}
}

func (v Value) IsMissing() bool {
	return v.Kind == ValueMissing
}

// Number retorna o valor numérico da célula, se houver
func (v Value) Number() (float64, bool) {
	if v.Kind != ValueNumber {
		return 0, false
	}
	return v.Num, true
}

// Key retorna a forma canônica em texto do valor. É a chave usada para
// comparar com os valores aceitos de um filtro e para agrupar.
// Valores ausentes retornam "" e nunca pertencem a um filtro.
func (v Value) Key() string {
	switch v.Kind {
	case ValueString:
		return v.Str
	case ValueNumber:
		return strconv.FormatFloat(v.Num, 'f', -1, 64)
	case ValueTime:
		if v.Time.Hour() == 0 && v.Time.Minute() == 0 && v.Time.Second() == 0 {
			return v.Time.Format(dateKeyLayout)
		}
		return v.Time.Format(dateTimeKeyLayout)
	default:
		return ""
	}
}

func (v Value) String() string {
	return v.Key()
}

// MarshalJSON serializa números como números, ausentes como null e o resto como texto
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case ValueMissing:
		return []byte("null"), nil
	case ValueNumber:
		return []byte(strconv.FormatFloat(v.Num, 'f', -1, 64)), nil
	default:
		return jsoniter.ConfigCompatibleWithStandardLibrary.Marshal(v.Key())
	}
}
