package analyzing

// Nomes das visões e indicadores do layout padrão do painel
const (
	ViewRevenueByCity        = "revenue_by_city"
	ViewRevenueByMonth       = "revenue_by_month"
	ViewStatusDistribution   = "status_distribution"
	ViewPropertyDistribution = "property_distribution"

	RankingCustomers = "top_customers"
	RankingCities    = "top_cities"
	RankingVariants  = "top_variants"

	HeadlineTopCustomer = "top_customer"
	HeadlineTopCity     = "top_city"
	HeadlineTopVariant  = "top_variant"
)

const (
	DefaultTopN        = 5
	DefaultPreviewRows = 5
)

// Cada visão aceita nomes alternativos de coluna; vale o primeiro que existir na tabela.

type GroupedSumSpec struct {
	Name         string
	GroupColumns []string
	ValueColumns []string
}

type FrequencySpec struct {
	Name    string
	Columns []string
}

// RankingSpec descreve um ranking top-N. Quando Headline é informado, o
// primeiro colocado vira um indicador do painel.
type RankingSpec struct {
	Name     string
	Columns  []string
	Headline string
}

// Layout é o conjunto de visões calculadas a cada execução do pipeline
type Layout struct {
	GroupedSums   []GroupedSumSpec
	Frequencies   []FrequencySpec
	Rankings      []RankingSpec
	FilterColumns []string
	TopN          int
	PreviewRows   int
}

func DefaultLayout() Layout {
	return Layout{
		GroupedSums: []GroupedSumSpec{
			{Name: ViewRevenueByCity, GroupColumns: []string{"City"}, ValueColumns: []string{"Revenue"}},
			{Name: ViewRevenueByMonth, GroupColumns: []string{"Month"}, ValueColumns: []string{"Revenue"}},
		},
		Frequencies: []FrequencySpec{
			{Name: ViewStatusDistribution, Columns: []string{"Contact Status"}},
			{Name: ViewPropertyDistribution, Columns: []string{"Property", "Variant"}},
		},
		Rankings: []RankingSpec{
			{Name: RankingCustomers, Columns: []string{"Customer", "Company Org. Name"}, Headline: HeadlineTopCustomer},
			{Name: RankingCities, Columns: []string{"City"}, Headline: HeadlineTopCity},
			{Name: RankingVariants, Columns: []string{"Variant", "Property"}, Headline: HeadlineTopVariant},
		},
		FilterColumns: []string{"City", "Medium", "Contact Status", "Year"},
		TopN:          DefaultTopN,
		PreviewRows:   DefaultPreviewRows,
	}
}

// WithTopN retorna uma cópia do layout com outro tamanho de ranking
func (l Layout) WithTopN(n int) Layout {
	if n > 0 {
		l.TopN = n
	}
	return l
}
