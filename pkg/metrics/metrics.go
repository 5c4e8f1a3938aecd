// Package metrics concentra os coletores prometheus da aplicação.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "sales_dashboard"

// Resultados usados como rótulo nos contadores
const (
	ResultSuccess   = "success"
	ResultDuplicate = "duplicate"
	ResultError     = "error"
	ResultHit       = "hit"
	ResultMiss      = "miss"
	ResultDisabled  = "disabled"
)

// Registry agrupa os coletores. Cada instância tem seu próprio registro,
// o que permite criar várias em testes sem conflito de nomes.
type Registry struct {
	registry *prometheus.Registry

	Uploads          *prometheus.CounterVec
	PipelineRuns     prometheus.Counter
	PipelineDuration prometheus.Histogram
	DatasetsActive   prometheus.Gauge
	IconLookups      *prometheus.CounterVec
	HTTPRequests     *prometheus.CounterVec
	HTTPDuration     *prometheus.HistogramVec
}

// New cria e registra todos os coletores
func New() *Registry {
	r := &Registry{
		registry: prometheus.NewRegistry(),
		Uploads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "uploads_total",
			Help:      "Uploads de planilhas por resultado.",
		}, []string{"result"}),
		PipelineRuns: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pipeline_runs_total",
			Help:      "Execuções do pipeline de filtro e agregação.",
		}),
		PipelineDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "pipeline_duration_seconds",
			Help:      "Duração de cada execução do pipeline.",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 14),
		}),
		DatasetsActive: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "datasets_active",
			Help:      "Datasets mantidos em memória.",
		}),
		IconLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "icon_lookups_total",
			Help:      "Consultas de ícones por resultado.",
		}, []string{"result"}),
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Requisições HTTP por método e status.",
		}, []string{"method", "status"}),
		HTTPDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Duração das requisições HTTP.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method"}),
	}

	r.registry.MustRegister(
		r.Uploads,
		r.PipelineRuns,
		r.PipelineDuration,
		r.DatasetsActive,
		r.IconLookups,
		r.HTTPRequests,
		r.HTTPDuration,
		prometheus.NewGoCollector(),
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
	)

	return r
}

// Handler expõe os coletores no formato texto do prometheus
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

// ObservePipeline registra uma execução do pipeline
func (r *Registry) ObservePipeline(elapsed time.Duration) {
	if r == nil {
		return
	}
	r.PipelineRuns.Inc()
	r.PipelineDuration.Observe(elapsed.Seconds())
}

// RecordUpload incrementa o contador de uploads para o resultado informado
func (r *Registry) RecordUpload(result string) {
	if r == nil {
		return
	}
	r.Uploads.WithLabelValues(result).Inc()
}

// RecordIconLookup incrementa o contador de consultas de ícones
func (r *Registry) RecordIconLookup(result string) {
	if r == nil {
		return
	}
	r.IconLookups.WithLabelValues(result).Inc()
}

// SetDatasetsActive atualiza o total de datasets em memória
func (r *Registry) SetDatasetsActive(n int) {
	if r == nil {
		return
	}
	r.DatasetsActive.Set(float64(n))
}
