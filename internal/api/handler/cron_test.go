package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/sales-dashboard-api/internal/api/handler/router"
)

type fakeCronJob struct {
	triggered int
}

func (f *fakeCronJob) TriggerManualSync() {
	f.triggered++
}

func (f *fakeCronJob) GetStatus() map[string]any {
	return map[string]any{"sync_enabled": true, "triggered": f.triggered}
}

func TestCronJobs(t *testing.T) {
	job := &fakeCronJob{}
	h := router.New(router.WithRoutes(CronJobs(CronJobServices{"dataset-eviction": job})...))

	tests := []struct {
		name           string
		method         string
		path           string
		expectedStatus int
		expectedRuns   int
	}{
		{"Executa remoção de datasets", http.MethodPost, "/v1/cron/dataset-eviction/run", http.StatusAccepted, 1},
		{"Tipo desconhecido", http.MethodPost, "/v1/cron/meta/run", http.StatusBadRequest, 1},
		{"Status", http.MethodGet, "/v1/cron/status", http.StatusOK, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, nil))

			assert.Equal(t, tt.expectedStatus, rec.Code)
			assert.Equal(t, tt.expectedRuns, job.triggered)
		})
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/cron/status", nil))

	var status map[string]map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	assert.Equal(t, true, status["dataset-eviction"]["sync_enabled"])
}
