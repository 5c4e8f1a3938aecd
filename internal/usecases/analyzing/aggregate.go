package analyzing

import (
	"sort"

	"github.com/vfg2006/sales-dashboard-api/internal/domain"
)

// GroupedSum soma os valores numéricos de value agrupando pelo valor de group.
// Linhas sem valor no grupo ficam de fora; valores numéricos ausentes contam como zero.
// O resultado vem ordenado pela soma decrescente e, no empate, pela ordem de aparição.
// O segundo retorno é falso quando a coluna de valores não tem nenhum número.
func GroupedSum(group, value domain.Column) ([]domain.GroupTotal, bool) {
	if !value.HasNumbers() {
		return nil, false
	}

	order := make([]string, 0)
	totals := make(map[string]float64)

	for i := 0; i < group.Len(); i++ {
		g := group.Value(i)
		if g.IsMissing() {
			continue
		}

		key := g.Key()
		if _, seen := totals[key]; !seen {
			order = append(order, key)
			totals[key] = 0
		}

		if n, ok := value.Value(i).Number(); ok {
			totals[key] += n
		}
	}

	if len(order) == 0 {
		return nil, false
	}

	groups := make([]domain.GroupTotal, len(order))
	for i, key := range order {
		groups[i] = domain.GroupTotal{Key: key, Total: totals[key]}
	}

	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].Total > groups[j].Total
	})

	return groups, true
}

// FrequencyCount conta as ocorrências de cada valor não ausente da coluna,
// em ordem decrescente de contagem e, no empate, pela ordem de aparição
func FrequencyCount(col domain.Column) []domain.ValueCount {
	order := make([]string, 0)
	counts := make(map[string]int)

	for i := 0; i < col.Len(); i++ {
		v := col.Value(i)
		if v.IsMissing() {
			continue
		}

		key := v.Key()
		if _, seen := counts[key]; !seen {
			order = append(order, key)
		}
		counts[key]++
	}

	result := make([]domain.ValueCount, len(order))
	for i, key := range order {
		result[i] = domain.ValueCount{Value: key, Count: counts[key]}
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Count > result[j].Count
	})

	return result
}

// TopN retorna os n valores mais frequentes da coluna
func TopN(col domain.Column, n int) []domain.ValueCount {
	counts := FrequencyCount(col)
	if n < 0 {
		n = 0
	}
	if len(counts) > n {
		counts = counts[:n]
	}
	return counts
}

func sumTotals(groups []domain.GroupTotal) float64 {
	total := 0.0
	for _, g := range groups {
		total += g.Total
	}
	return total
}
