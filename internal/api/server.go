package api

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/justinas/alice"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sales-dashboard-api/internal/api/handler"
	"github.com/vfg2006/sales-dashboard-api/internal/api/handler/router"
	"github.com/vfg2006/sales-dashboard-api/internal/config"
	"github.com/vfg2006/sales-dashboard-api/internal/scheduler"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/dashboard"
	"github.com/vfg2006/sales-dashboard-api/pkg/metrics"
	"github.com/vfg2006/sales-dashboard-api/pkg/middleware"
)

type Server struct {
	httpServer *http.Server
}

// NewHandler monta o router com todas as rotas e a cadeia de middlewares global
func NewHandler(
	config *config.Config,
	dashboardService dashboard.Service,
	registry *metrics.Registry,
	datasetEvictionService *scheduler.DatasetEvictionService,
) http.Handler {
	cronServices := handler.CronJobServices{}
	if datasetEvictionService != nil {
		cronServices[scheduler.DatasetEvictionType] = datasetEvictionService
	}

	uploadLimiter := middleware.NewRateLimiter(config.Upload.RateLimitRPS, config.Upload.RateLimitBurst)

	rt := router.New(
		router.WithRoutes(handler.Healthcheck()...),
		router.WithRoutes(handler.Metrics(registry)...),
		router.WithRoutes(handler.Datasets(dashboardService, config.Upload.MaxBytes(), uploadLimiter)...),
		router.WithRoutes(handler.CronJobs(cronServices)...),
	)

	middlewares := []alice.Constructor{
		middleware.LogPanicMiddleware(),
		middleware.LoggingMiddleware(),
		middleware.Cors(config.Server.CorsAllowedOrigins),
		middleware.MetricsMiddleware(registry),
	}

	return alice.New(middlewares...).Then(rt)
}

func New(
	config *config.Config,
	dashboardService dashboard.Service,
	registry *metrics.Registry,
	datasetEvictionService *scheduler.DatasetEvictionService,
) (*Server, error) {
	srv := &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port),
			Handler:           NewHandler(config, dashboardService, registry, datasetEvictionService),
			ReadHeaderTimeout: 2 * time.Second,
		},
	}

	return srv, nil
}

func (s Server) Run(ctx context.Context) error {
	go func() {
		logrus.WithFields(logrus.Fields{
			"address": s.httpServer.Addr,
		}).Info("Servidor iniciando")

		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.WithError(err).Error("Erro durante a execução do servidor")
		}
	}()

	// Canal para aguardar sinais de término
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(done)

	// Aguardar pelo sinal ou pelo cancelamento do contexto
	select {
	case <-done:
		logrus.Info("Sinal de interrupção recebido")
	case <-ctx.Done():
		logrus.Info("Contexto de aplicação cancelado")
	}

	// Define timeout para desligamento
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	logrus.WithFields(logrus.Fields{
		"timeout": "15s",
	}).Info("Iniciando desligamento gracioso do servidor")

	if err := s.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Error("Erro durante o desligamento do servidor")
		return err
	}

	logrus.Info("Servidor desligado com sucesso")
	return nil
}

func (s Server) Shutdown(ctx context.Context) error {
	err := s.httpServer.Shutdown(ctx)
	if err != nil {
		return err
	}

	logrus.Info("Servidor HTTP desligado com sucesso")
	return nil
}
