package main

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sales-dashboard-api/infrastructure/integrator/icons"
	"github.com/vfg2006/sales-dashboard-api/infrastructure/integrator/icons/iconclient"
	"github.com/vfg2006/sales-dashboard-api/infrastructure/repository"
	"github.com/vfg2006/sales-dashboard-api/internal/api"
	"github.com/vfg2006/sales-dashboard-api/internal/config"
	"github.com/vfg2006/sales-dashboard-api/internal/scheduler"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/dashboard"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/ingesting"
	"github.com/vfg2006/sales-dashboard-api/pkg/log"
	"github.com/vfg2006/sales-dashboard-api/pkg/metrics"
)

func main() {
	// Inicializa configuração de logs com o nível padrão até ler a configuração
	log.Configure("info")

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	// Define o nível de log com base na configuração
	log.Configure(cfg.App.LogLevel)
	logrus.Infof("Nível de log configurado para: %s", logrus.GetLevel())

	if _, err := ingesting.ParseSheetMode(cfg.Upload.SheetMode); err != nil {
		logrus.WithError(err).Fatal("UPLOAD_SHEET_MODE inválido")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	registry := metrics.New()
	datasetRepo := repository.NewDatasetRepository()

	var iconIntegrator icons.IconIntegrator
	if cfg.Icons.Enabled {
		iconIntegrator = icons.New(cfg, iconclient.NewClient(cfg), registry)
		logrus.WithField("base_url", cfg.Icons.BaseURL).Info("Busca de ícones habilitada")
	} else {
		iconIntegrator = icons.New(cfg, nil, registry)
	}

	dashboardService := dashboard.NewDashboardService(cfg, datasetRepo, iconIntegrator, registry)

	datasetEvictionService := scheduler.NewDatasetEvictionService(datasetRepo, registry, cfg)

	// Inicia o agendador em background
	if err := datasetEvictionService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de remoção de datasets")
	} else {
		logrus.Info("Agendador de remoção de datasets iniciado com sucesso")
	}

	server, err := api.New(
		cfg,
		dashboardService,
		registry,
		datasetEvictionService,
	)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}
