package domain

// ColumnSummary traz as estatísticas descritivas de uma coluna.
// Colunas numéricas preenchem média, desvio e quartis; as demais preenchem
// quantidade de valores distintos, o valor mais frequente e sua frequência.
type ColumnSummary struct {
	Column string   `json:"column"`
	Count  int      `json:"count"`
	Unique *int     `json:"unique,omitempty"`
	Top    *string  `json:"top,omitempty"`
	Freq   *int     `json:"freq,omitempty"`
	Mean   *float64 `json:"mean,omitempty"`
	Std    *float64 `json:"std,omitempty"`
	Min    *float64 `json:"min,omitempty"`
	P25    *float64 `json:"25%,omitempty"`
	P50    *float64 `json:"50%,omitempty"`
	P75    *float64 `json:"75%,omitempty"`
	Max    *float64 `json:"max,omitempty"`
}
