// Package analyzing implementa o pipeline de filtro e agregação do painel.
// Todas as funções são puras: o resultado depende apenas da tabela e dos filtros.
package analyzing

import (
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
)

// Filter mantém as linhas cujo valor pertence ao conjunto aceito de cada coluna filtrada.
// Filtros de colunas inexistentes são ignorados e valores ausentes nunca passam.
func Filter(table *domain.Table, selection domain.FilterSelection) *domain.Table {
	type predicate struct {
		col      domain.Column
		accepted map[string]struct{}
	}

	active := selection.Active()
	predicates := make([]predicate, 0, len(active))
	for _, name := range selection.Columns() {
		col, ok := table.Column(name)
		if !ok {
			logrus.WithField("column", name).Debug("analyzing: filtro ignorado, coluna inexistente")
			continue
		}
		predicates = append(predicates, predicate{col: col, accepted: active[name]})
	}

	if len(predicates) == 0 {
		return table
	}

	keep := make([]int, 0, table.Len())
	for i := 0; i < table.Len(); i++ {
		matches := true
		for _, p := range predicates {
			v := p.col.Value(i)
			if v.IsMissing() {
				matches = false
				break
			}
			if _, ok := p.accepted[v.Key()]; !ok {
				matches = false
				break
			}
		}

		if matches {
			keep = append(keep, i)
		}
	}

	return table.Subset(keep)
}

// Apply executa o pipeline completo: filtra a tabela e calcula todas as visões do layout
// sobre as linhas filtradas. Visões cujas colunas faltam ou estão vazias são omitidas
// e registradas como avisos.
func Apply(table *domain.Table, selection domain.FilterSelection, layout Layout) *domain.FilteredView {
	if table == nil {
		table = domain.NewTable(nil, nil)
	}
	if layout.TopN <= 0 {
		layout.TopN = DefaultTopN
	}
	if layout.PreviewRows < 0 {
		layout.PreviewRows = DefaultPreviewRows
	}

	filtered := Filter(table, selection)

	view := &domain.FilteredView{
		Filters:       copySelection(selection),
		TotalRows:     table.Len(),
		FilteredRows:  filtered.Len(),
		Table:         filtered,
		Preview:       filtered.Head(layout.PreviewRows),
		Summary:       Describe(filtered),
		GroupedSums:   make([]domain.GroupedSumView, 0, len(layout.GroupedSums)),
		Frequencies:   make([]domain.FrequencyView, 0, len(layout.Frequencies)),
		Rankings:      make([]domain.RankingView, 0, len(layout.Rankings)),
		Headlines:     make([]domain.Headline, 0),
		FilterOptions: FilterOptions(table, layout.FilterColumns),
		Warnings:      make([]domain.Warning, 0),
	}

	for _, def := range layout.GroupedSums {
		group, ok := filtered.FirstColumn(def.GroupColumns...)
		if !ok {
			view.Warnings = append(view.Warnings, missingColumn(def.Name, def.GroupColumns))
			continue
		}

		value, ok := filtered.FirstColumn(def.ValueColumns...)
		if !ok {
			view.Warnings = append(view.Warnings, missingColumn(def.Name, def.ValueColumns))
			continue
		}

		groups, ok := GroupedSum(group, value)
		if !ok {
			view.Warnings = append(view.Warnings, emptyAggregate(def.Name, value.Name))
			continue
		}

		view.GroupedSums = append(view.GroupedSums, domain.GroupedSumView{
			Name:        def.Name,
			GroupColumn: group.Name,
			ValueColumn: value.Name,
			Groups:      groups,
			Total:       sumTotals(groups),
		})
	}

	for _, def := range layout.Frequencies {
		col, ok := filtered.FirstColumn(def.Columns...)
		if !ok {
			view.Warnings = append(view.Warnings, missingColumn(def.Name, def.Columns))
			continue
		}

		counts := FrequencyCount(col)
		if len(counts) == 0 {
			view.Warnings = append(view.Warnings, emptyAggregate(def.Name, col.Name))
			continue
		}

		view.Frequencies = append(view.Frequencies, domain.FrequencyView{
			Name:   def.Name,
			Column: col.Name,
			Counts: counts,
		})
	}

	for _, def := range layout.Rankings {
		col, ok := filtered.FirstColumn(def.Columns...)
		if !ok {
			view.Warnings = append(view.Warnings, missingColumn(def.Name, def.Columns))
			continue
		}

		entries := TopN(col, layout.TopN)
		if len(entries) == 0 {
			view.Warnings = append(view.Warnings, emptyAggregate(def.Name, col.Name))
			continue
		}

		view.Rankings = append(view.Rankings, domain.RankingView{
			Name:    def.Name,
			Column:  col.Name,
			Entries: entries,
		})

		if def.Headline != "" {
			view.Headlines = append(view.Headlines, domain.Headline{
				Name:   def.Headline,
				Column: col.Name,
				Value:  entries[0].Value,
				Count:  entries[0].Count,
			})
		}
	}

	return view
}

// FilterOptions lista os valores distintos de cada coluna de filtro existente,
// na ordem em que aparecem na tabela completa
func FilterOptions(table *domain.Table, columns []string) []domain.FilterOption {
	options := make([]domain.FilterOption, 0, len(columns))

	for _, name := range columns {
		col, ok := table.Column(name)
		if !ok {
			continue
		}

		seen := make(map[string]struct{})
		values := make([]string, 0)
		for i := 0; i < col.Len(); i++ {
			v := col.Value(i)
			if v.IsMissing() {
				continue
			}
			key := v.Key()
			if _, exists := seen[key]; exists {
				continue
			}
			seen[key] = struct{}{}
			values = append(values, key)
		}

		options = append(options, domain.FilterOption{Column: col.Name, Values: values})
	}

	return options
}

func copySelection(selection domain.FilterSelection) domain.FilterSelection {
	out := make(domain.FilterSelection, len(selection))
	for column, values := range selection {
		out[column] = append([]string(nil), values...)
	}
	return out
}

func missingColumn(view string, candidates []string) domain.Warning {
	column := ""
	if len(candidates) > 0 {
		column = candidates[0]
	}
	return domain.Warning{Kind: domain.WarningMissingColumn, View: view, Column: column}
}

func emptyAggregate(view, column string) domain.Warning {
	return domain.Warning{Kind: domain.WarningEmptyAggregate, View: view, Column: column}
}
