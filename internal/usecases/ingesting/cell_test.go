package ingesting

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
)

func TestInferValue(t *testing.T) {
	tests := []struct {
		raw  string
		kind domain.ValueKind
		key  string
	}{
		{raw: "", kind: domain.ValueMissing, key: ""},
		{raw: "   ", kind: domain.ValueMissing, key: ""},
		{raw: "10", kind: domain.ValueNumber, key: "10"},
		{raw: " 2023 ", kind: domain.ValueNumber, key: "2023"},
		{raw: "-1.50", kind: domain.ValueNumber, key: "-1.5"},
		{raw: "1,250.75", kind: domain.ValueNumber, key: "1250.75"},
		{raw: "1e3", kind: domain.ValueNumber, key: "1000"},
		{raw: "NaN", kind: domain.ValueString, key: "NaN"},
		{raw: "Inf", kind: domain.ValueString, key: "Inf"},
		{raw: "0x10", kind: domain.ValueString, key: "0x10"},
		{raw: "A,B", kind: domain.ValueString, key: "A,B"},
		{raw: "2024-03-01", kind: domain.ValueTime, key: "2024-03-01"},
		{raw: "03-01-24", kind: domain.ValueTime, key: "2024-03-01"},
		{raw: "2024-03-01 10:30:00", kind: domain.ValueTime, key: "2024-03-01 10:30:00"},
		{raw: " New York ", kind: domain.ValueString, key: "New York"},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			v := InferValue(tt.raw)
			assert.Equal(t, tt.kind, v.Kind)
			assert.Equal(t, tt.key, v.Key())
		})
	}
}

func TestInferValue_Date(t *testing.T) {
	v := InferValue("2024-03-01")
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), v.Time)
}

func TestIsDateFormatCode(t *testing.T) {
	tests := []struct {
		code     string
		expected bool
	}{
		{code: "dd/mm/yyyy", expected: true},
		{code: "yyyy-mm-dd hh:mm", expected: true},
		{code: "[$-416]mmm/yy", expected: true},
		{code: "h:mm AM/PM", expected: true},
		{code: "General", expected: false},
		{code: "$#,##0.00", expected: false},
		{code: "0.00%", expected: false},
		{code: "[$R$-416] #,##0.00", expected: false},
		{code: `#,##0 "dias"`, expected: false},
		{code: `_($* #,##0.00_);_($* (#,##0.00);_($* "-"??_);_(@_)`, expected: false},
		{code: "0.00E+00", expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.expected, isDateFormatCode(tt.code))
		})
	}
}
