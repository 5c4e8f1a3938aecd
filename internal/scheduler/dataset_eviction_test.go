package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/sales-dashboard-api/infrastructure/repository"
	"github.com/vfg2006/sales-dashboard-api/infrastructure/repository/mocks"
	"github.com/vfg2006/sales-dashboard-api/internal/config"
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
	"github.com/vfg2006/sales-dashboard-api/pkg/metrics"
	"go.uber.org/mock/gomock"
)

func evictionConfig(enabled bool) *config.Config {
	return &config.Config{DatasetEviction: config.DatasetEviction{
		TTL:          2 * time.Hour,
		CronSchedule: "*/10 * * * *",
		Enabled:      enabled,
	}}
}

func TestDatasetEvictionService_PurgeExpired(t *testing.T) {
	now := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name            string
		lastAccess      map[string]time.Time
		expectedRemoved int
		expectedKept    []string
	}{
		{
			name: "Remove apenas datasets sem acesso além do TTL",
			lastAccess: map[string]time.Time{
				"antigo": now.Add(-3 * time.Hour),
				"recent": now.Add(-30 * time.Minute),
			},
			expectedRemoved: 1,
			expectedKept:    []string{"recent"},
		},
		{
			name: "Nenhum dataset expirado",
			lastAccess: map[string]time.Time{
				"a": now.Add(-time.Hour),
				"b": now,
			},
			expectedRemoved: 0,
			expectedKept:    []string{"b", "a"},
		},
		{
			name:            "Repositório vazio",
			lastAccess:      map[string]time.Time{},
			expectedRemoved: 0,
			expectedKept:    []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := repository.NewDatasetRepository()
			for id, at := range tt.lastAccess {
				require.NoError(t, repo.Save(&domain.Dataset{ID: id, Fingerprint: "fp-" + id, UploadedAt: at, LastAccessedAt: at}))
			}

			service := NewDatasetEvictionService(repo, metrics.New(), evictionConfig(true))
			service.now = func() time.Time { return now }

			assert.Equal(t, tt.expectedRemoved, service.PurgeExpired())

			datasets, err := repo.List()
			require.NoError(t, err)
			kept := make([]string, 0, len(datasets))
			for _, d := range datasets {
				kept = append(kept, d.ID)
			}
			assert.Equal(t, tt.expectedKept, kept)

			status := service.GetStatus()
			assert.Equal(t, tt.expectedRemoved, status["last_evicted"])
			assert.Equal(t, false, status["sync_running"])
			assert.Equal(t, now, status["last_sync_completed_at"])
		})
	}
}

func TestDatasetEvictionService_UsesTTLCutoff(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockDatasetRepository(ctrl)
	now := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)

	repo.EXPECT().DeleteExpired(now.Add(-2 * time.Hour)).Return(4)
	repo.EXPECT().Count().Return(1)

	service := NewDatasetEvictionService(repo, nil, evictionConfig(true))
	service.now = func() time.Time { return now }

	assert.Equal(t, 4, service.PurgeExpired())
}

func TestDatasetEvictionService_SkipsOverlappingRun(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockDatasetRepository(ctrl)

	service := NewDatasetEvictionService(repo, nil, evictionConfig(true))
	service.syncRunning = true

	assert.Equal(t, -1, service.PurgeExpired())

	// TriggerManualSync também não dispara nada com execução em andamento
	service.TriggerManualSync()
}

func TestDatasetEvictionService_StartDisabled(t *testing.T) {
	service := NewDatasetEvictionService(repository.NewDatasetRepository(), nil, evictionConfig(false))

	assert.NoError(t, service.Start(context.Background()))
	assert.Equal(t, false, service.GetStatus()["sync_enabled"])
}

func TestDatasetEvictionService_StartInvalidCron(t *testing.T) {
	cfg := evictionConfig(true)
	cfg.DatasetEviction.CronSchedule = "não é cron"

	service := NewDatasetEvictionService(repository.NewDatasetRepository(), nil, cfg)

	assert.Error(t, service.Start(context.Background()))
}

func TestDatasetEvictionService_StartAndStop(t *testing.T) {
	service := NewDatasetEvictionService(repository.NewDatasetRepository(), nil, evictionConfig(true))

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, service.Start(ctx))
	cancel()
}
