package domain

// GroupTotal é a soma de um campo numérico dentro de um grupo
type GroupTotal struct {
	Key   string  `json:"key"`
	Total float64 `json:"total"`
}

// ValueCount é a quantidade de ocorrências de um valor em uma coluna
type ValueCount struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

type GroupedSumView struct {
	Name        string       `json:"name"`
	GroupColumn string       `json:"group_column"`
	ValueColumn string       `json:"value_column"`
	Groups      []GroupTotal `json:"groups"`
	Total       float64      `json:"total"`
}

type FrequencyView struct {
	Name   string       `json:"name"`
	Column string       `json:"column"`
	Counts []ValueCount `json:"counts"`
}

type RankingView struct {
	Name    string       `json:"name"`
	Column  string       `json:"column"`
	Entries []ValueCount `json:"entries"`
}

// Headline é o valor líder de um ranking, exibido como indicador no painel
type Headline struct {
	Name    string `json:"name"`
	Column  string `json:"column"`
	Value   string `json:"value"`
	Count   int    `json:"count"`
	IconURL string `json:"icon_url,omitempty"`
}

// FilterOption lista os valores distintos disponíveis para filtrar uma coluna
type FilterOption struct {
	Column string   `json:"column"`
	Values []string `json:"values"`
}

type WarningKind string

const (
	WarningMissingColumn  WarningKind = "missing_column"
	WarningEmptyAggregate WarningKind = "empty_aggregate"
)

// Warning indica uma visão omitida por falta de coluna ou de valores
type Warning struct {
	Kind   WarningKind `json:"kind"`
	View   string      `json:"view"`
	Column string      `json:"column,omitempty"`
}

// FilteredView é o resultado do pipeline de filtro e agregação
type FilteredView struct {
	DatasetID     string           `json:"dataset_id,omitempty"`
	Filters       FilterSelection  `json:"filters"`
	TotalRows     int              `json:"total_rows"`
	FilteredRows  int              `json:"filtered_rows"`
	Table         *Table           `json:"-"`
	Preview       TablePreview     `json:"preview"`
	Summary       []ColumnSummary  `json:"summary"`
	GroupedSums   []GroupedSumView `json:"grouped_sums"`
	Frequencies   []FrequencyView  `json:"frequencies"`
	Rankings      []RankingView    `json:"rankings"`
	Headlines     []Headline       `json:"headlines"`
	FilterOptions []FilterOption   `json:"filter_options"`
	Warnings      []Warning        `json:"warnings"`
}

// GroupedSum busca uma soma agrupada pelo nome da visão
func (v *FilteredView) GroupedSum(name string) (GroupedSumView, bool) {
	for _, gs := range v.GroupedSums {
		if gs.Name == name {
			return gs, true
		}
	}
	return GroupedSumView{}, false
}

// Frequency busca uma contagem de frequência pelo nome da visão
func (v *FilteredView) Frequency(name string) (FrequencyView, bool) {
	for _, f := range v.Frequencies {
		if f.Name == name {
			return f, true
		}
	}
	return FrequencyView{}, false
}

// Headline busca um indicador pelo nome
func (v *FilteredView) Headline(name string) (Headline, bool) {
	for _, h := range v.Headlines {
		if h.Name == name {
			return h, true
		}
	}
	return Headline{}, false
}
