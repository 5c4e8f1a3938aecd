package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/vfg2006/sales-dashboard-api/pkg/metrics"
)

// MetricsMiddleware contabiliza requisições e duração por método
func MetricsMiddleware(m *metrics.Registry) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if m == nil {
				next.ServeHTTP(w, r)
				return
			}

			start := time.Now()
			lrw := newLoggingResponseWriter(w)

			next.ServeHTTP(lrw, r)

			m.HTTPRequests.WithLabelValues(r.Method, strconv.Itoa(lrw.statusCode)).Inc()
			m.HTTPDuration.WithLabelValues(r.Method).Observe(time.Since(start).Seconds())
		})
	}
}
