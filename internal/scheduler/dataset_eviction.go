// Package scheduler contém os serviços agendados da aplicação
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sales-dashboard-api/infrastructure/repository"
	"github.com/vfg2006/sales-dashboard-api/internal/config"
	"github.com/vfg2006/sales-dashboard-api/pkg/metrics"
)

// DatasetEvictionType é o tipo usado na rota de execução manual
const DatasetEvictionType = "dataset-eviction"

type DatasetEvictionConfig struct {
	CronSchedule string
	TTL          time.Duration
	SyncEnabled  bool
}

type DatasetEvictionService struct {
	scheduler   *gocron.Scheduler
	datasetRepo repository.DatasetRepository
	metrics     *metrics.Registry
	config      DatasetEvictionConfig
	now         func() time.Time

	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
	lastEvicted         int
}

func NewDatasetEvictionService(
	datasetRepo repository.DatasetRepository,
	m *metrics.Registry,
	cfg *config.Config,
) *DatasetEvictionService {
	evictionConfig := DatasetEvictionConfig{
		CronSchedule: cfg.DatasetEviction.CronSchedule, // Default: a cada 10 minutos
		TTL:          cfg.DatasetEviction.TTL,          // Default: 2 horas sem acesso
		SyncEnabled:  cfg.DatasetEviction.Enabled,
	}

	logrus.WithFields(logrus.Fields{
		"cron_schedule": evictionConfig.CronSchedule,
		"ttl":           evictionConfig.TTL.String(),
	}).Info("Configuração do agendador de remoção de datasets carregada")

	return &DatasetEvictionService{
		scheduler:   gocron.NewScheduler(time.Local),
		datasetRepo: datasetRepo,
		metrics:     m,
		config:      evictionConfig,
		now:         time.Now,
	}
}

func (s *DatasetEvictionService) Start(ctx context.Context) error {
	if !s.config.SyncEnabled {
		logrus.Info("Cron de remoção de datasets desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando cron de remoção de datasets")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.PurgeExpired()
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar remoção de datasets: %w", err)
	}

	// Executar o cron em uma goroutine separada
	s.scheduler.StartAsync()

	// Configurar o cancelamento do cron quando o contexto for cancelado
	go func() {
		<-ctx.Done()
		logrus.Info("Parando cron de remoção de datasets")
		s.scheduler.Stop()
	}()

	return nil
}

// PurgeExpired remove os datasets sem acesso há mais que o TTL. Retorna
// quantos foram removidos, ou -1 se outra execução já estava em andamento.
func (s *DatasetEvictionService) PurgeExpired() int {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Warn("Remoção de datasets já está em execução")
		return -1
	}
	s.syncRunning = true
	s.lastSyncStartedAt = s.now()
	s.syncMutex.Unlock()

	cutoff := s.now().Add(-s.config.TTL)
	removed := s.datasetRepo.DeleteExpired(cutoff)
	s.metrics.SetDatasetsActive(s.datasetRepo.Count())

	s.syncMutex.Lock()
	s.syncRunning = false
	s.lastSyncCompletedAt = s.now()
	s.lastEvicted = removed
	s.syncMutex.Unlock()

	entry := logrus.WithFields(logrus.Fields{
		"removed": removed,
		"cutoff":  cutoff.Format(time.RFC3339),
	})
	if removed > 0 {
		entry.Info("Datasets expirados removidos")
	} else {
		entry.Debug("Nenhum dataset expirado")
	}

	return removed
}

// TriggerManualSync dispara a remoção fora do agendamento
func (s *DatasetEvictionService) TriggerManualSync() {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Remoção de datasets já em andamento, ignorando solicitação manual")
		return
	}
	s.syncMutex.Unlock()

	logrus.Info("Iniciando remoção manual de datasets")
	go s.PurgeExpired()
}

// GetStatus retorna o status atual do agendador
func (s *DatasetEvictionService) GetStatus() map[string]any {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	return map[string]any{
		"sync_enabled":           s.config.SyncEnabled,
		"sync_cron":              s.config.CronSchedule,
		"dataset_ttl":            s.config.TTL.String(),
		"sync_running":           s.syncRunning,
		"active_datasets":        s.datasetRepo.Count(),
		"last_evicted":           s.lastEvicted,
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
	}
}
