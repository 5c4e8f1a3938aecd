package handler

import (
	"net/http"

	"github.com/vfg2006/sales-dashboard-api/internal/api/handler/router"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/dashboard"
	"github.com/vfg2006/sales-dashboard-api/pkg/metrics"
	"github.com/vfg2006/sales-dashboard-api/pkg/middleware"
)

func Healthcheck() []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(),
		},
	}
}

func Metrics(registry *metrics.Registry) []router.Route {
	return []router.Route{
		{
			Path:    "/metrics",
			Method:  http.MethodGet,
			Handler: registry.Handler(),
		},
	}
}

func Datasets(service dashboard.Service, maxUploadBytes int64, uploadLimiter *middleware.RateLimiter) []router.Route {
	uploadMiddlewares := []func(http.Handler) http.Handler{}
	if uploadLimiter != nil {
		uploadMiddlewares = append(uploadMiddlewares, uploadLimiter.Handler)
	}

	return []router.Route{
		{
			Path:        "/v1/datasets",
			Method:      http.MethodPost,
			Handler:     UploadDataset(service, maxUploadBytes),
			Middlewares: uploadMiddlewares,
		},
		{
			Path:    "/v1/datasets",
			Method:  http.MethodGet,
			Handler: ListDatasets(service),
		},
		{
			Path:    "/v1/datasets/:id",
			Method:  http.MethodGet,
			Handler: GetDataset(service),
		},
		{
			Path:    "/v1/datasets/:id",
			Method:  http.MethodDelete,
			Handler: DeleteDataset(service),
		},
		{
			Path:    "/v1/datasets/:id/filters",
			Method:  http.MethodGet,
			Handler: GetFilterOptions(service),
		},
		{
			Path:    "/v1/datasets/:id/view",
			Method:  http.MethodPost,
			Handler: ViewDataset(service),
		},
		{
			Path:    "/v1/datasets/:id/export",
			Method:  http.MethodPost,
			Handler: ExportDataset(service),
		},
	}
}

func CronJobs(services CronJobServices) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/cron/:type/run",
			Method:  http.MethodPost,
			Handler: RunCronJob(services),
		},
		{
			Path:    "/v1/cron/status",
			Method:  http.MethodGet,
			Handler: GetCronStatus(services),
		},
	}
}
