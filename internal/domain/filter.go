package domain

import "sort"

// FilterSelection mapeia o nome da coluna para os valores aceitos.
// Uma lista vazia significa que a coluna não está sendo filtrada.
type FilterSelection map[string][]string

// Active retorna apenas os filtros com ao menos um valor aceito, como conjuntos
func (f FilterSelection) Active() map[string]map[string]struct{} {
	active := make(map[string]map[string]struct{})
	for column, values := range f {
		if len(values) == 0 {
			continue
		}

		set := make(map[string]struct{}, len(values))
		for _, v := range values {
			set[v] = struct{}{}
		}
		active[column] = set
	}
	return active
}

// IsEmpty indica se nenhum filtro está aplicado
func (f FilterSelection) IsEmpty() bool {
	for _, values := range f {
		if len(values) > 0 {
			return false
		}
	}
	return true
}

// Columns retorna as colunas com filtro ativo em ordem alfabética
func (f FilterSelection) Columns() []string {
	columns := make([]string, 0, len(f))
	for column, values := range f {
		if len(values) > 0 {
			columns = append(columns, column)
		}
	}
	sort.Strings(columns)
	return columns
}
