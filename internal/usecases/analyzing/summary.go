package analyzing

import (
	"math"
	"sort"

	"github.com/vfg2006/sales-dashboard-api/internal/domain"
)

// Describe calcula as estatísticas descritivas de todas as colunas da tabela
func Describe(table *domain.Table) []domain.ColumnSummary {
	summaries := make([]domain.ColumnSummary, 0, len(table.Columns))

	for i, name := range table.Columns {
		col, ok := table.Column(name)
		if !ok || col.Index != i {
			// nomes repetidos só são acessíveis pela primeira ocorrência
			continue
		}
		summaries = append(summaries, describeColumn(col))
	}

	return summaries
}

func describeColumn(col domain.Column) domain.ColumnSummary {
	summary := domain.ColumnSummary{Column: col.Name}

	numbers := make([]float64, 0, col.Len())
	numeric := true
	for i := 0; i < col.Len(); i++ {
		v := col.Value(i)
		if v.IsMissing() {
			continue
		}
		summary.Count++

		n, ok := v.Number()
		if !ok {
			numeric = false
			continue
		}
		numbers = append(numbers, n)
	}

	if numeric && summary.Count > 0 {
		describeNumbers(&summary, numbers)
		return summary
	}

	counts := FrequencyCount(col)
	unique := len(counts)
	summary.Unique = &unique
	if unique > 0 {
		top := counts[0].Value
		freq := counts[0].Count
		summary.Top = &top
		summary.Freq = &freq
	}

	return summary
}

func describeNumbers(summary *domain.ColumnSummary, numbers []float64) {
	sorted := append([]float64(nil), numbers...)
	sort.Float64s(sorted)

	sum := 0.0
	for _, n := range sorted {
		sum += n
	}
	mean := sum / float64(len(sorted))
	summary.Mean = &mean

	if len(sorted) > 1 {
		sq := 0.0
		for _, n := range sorted {
			sq += (n - mean) * (n - mean)
		}
		std := math.Sqrt(sq / float64(len(sorted)-1))
		summary.Std = &std
	}

	minimum := sorted[0]
	maximum := sorted[len(sorted)-1]
	p25 := quantile(sorted, 0.25)
	p50 := quantile(sorted, 0.50)
	p75 := quantile(sorted, 0.75)

	summary.Min = &minimum
	summary.P25 = &p25
	summary.P50 = &p50
	summary.P75 = &p75
	summary.Max = &maximum
}

// quantile usa interpolação linear entre as posições vizinhas de uma lista ordenada
func quantile(sorted []float64, q float64) float64 {
	if len(sorted) == 1 {
		return sorted[0]
	}

	pos := q * float64(len(sorted)-1)
	lower := int(math.Floor(pos))
	upper := int(math.Ceil(pos))
	if lower == upper {
		return sorted[lower]
	}

	frac := pos - float64(lower)
	return sorted[lower] + (sorted[upper]-sorted[lower])*frac
}
