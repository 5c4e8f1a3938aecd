package middleware

import (
	"net/http"

	"github.com/vfg2006/sales-dashboard-api/pkg/apiErrors"
	"github.com/vfg2006/sales-dashboard-api/pkg/log"
	"golang.org/x/time/rate"
)

// RateLimiter limita a taxa de requisições de uma rota para todo o processo
type RateLimiter struct {
	limiter *rate.Limiter
}

// NewRateLimiter cria um limitador com rps requisições por segundo e rajada burst.
// rps <= 0 desativa o limite.
func NewRateLimiter(rps float64, burst int) *RateLimiter {
	limit := rate.Limit(rps)
	if rps <= 0 {
		limit = rate.Inf
	}
	if burst < 1 {
		burst = 1
	}

	return &RateLimiter{limiter: rate.NewLimiter(limit, burst)}
}

// Handler aplica o limite e responde 429 quando excedido
func (rl *RateLimiter) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !rl.limiter.Allow() {
			log.ForContext(r.Context()).WithFields(log.Fields{
				"method":      r.Method,
				"path":        r.URL.Path,
				"remote_addr": r.RemoteAddr,
			}).Warn("Limite de requisições excedido")

			w.Header().Set("Retry-After", "1")
			apiErrors.WriteError(w, apiErrors.ErrTooManyUploads, "Muitos uploads em pouco tempo, tente novamente", nil)
			return
		}

		next.ServeHTTP(w, r)
	})
}
