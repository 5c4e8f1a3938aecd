package handler

import (
	"net/http"
	"sort"

	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sales-dashboard-api/pkg/apiErrors"
)

// CronJob é um serviço agendado que também pode ser executado manualmente
type CronJob interface {
	TriggerManualSync()
	GetStatus() map[string]any
}

// CronJobServices mapeia o tipo usado na URL para o serviço agendado
type CronJobServices map[string]CronJob

func (s CronJobServices) types() []string {
	types := make([]string, 0, len(s))
	for t := range s {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}

// RunCronJob executa manualmente uma cron job específica
func RunCronJob(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - RunCronJob")

		// Obter o tipo de cron job da URL
		cronType := httprouter.ParamsFromContext(r.Context()).ByName("type")
		if cronType == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Tipo de cron job não especificado", nil)
			return
		}

		job, ok := services[cronType]
		if !ok || job == nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Tipo de cron job inválido", map[string][]string{"accepted": services.types()})
			return
		}

		job.TriggerManualSync()

		writeJSON(w, http.StatusAccepted, map[string]any{
			"message": "Cron job iniciada com sucesso",
			"type":    cronType,
		})
	}
}

// GetCronStatus retorna o status das cron jobs
func GetCronStatus(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := make(map[string]any, len(services))
		for cronType, job := range services {
			if job != nil {
				status[cronType] = job.GetStatus()
			}
		}

		writeJSON(w, http.StatusOK, status)
	}
}
