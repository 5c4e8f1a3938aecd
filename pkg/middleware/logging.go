package middleware

import (
	"fmt"
	"net/http"
	"os"
	"runtime"
	"time"

	"github.com/vfg2006/sales-dashboard-api/pkg/apiErrors"
	"github.com/vfg2006/sales-dashboard-api/pkg/log"
)

// CorrelationIDHeader é o cabeçalho que transporta o ID de correlação
const CorrelationIDHeader = "X-Correlation-ID"

// SlowRequestThreshold marca requisições lentas no log. Uploads grandes e
// visões de planilhas extensas costumam passar desse limite.
var SlowRequestThreshold = 500 * time.Millisecond

// LoggingMiddleware registra o início e o fim de cada requisição HTTP
func LoggingMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, correlationID := log.WithCorrelationID(r.Context(), r.Header.Get(CorrelationIDHeader))
			r = r.WithContext(ctx)
			w.Header().Set(CorrelationIDHeader, correlationID)

			lrw := newLoggingResponseWriter(w)
			start := time.Now()
			isDev := log.IsDevelopment()

			requestFields := log.Fields{
				"method": r.Method,
				"path":   r.URL.Path,
			}
			if !isDev {
				requestFields["correlation_id"] = correlationID
				requestFields["remote_addr"] = r.RemoteAddr
				requestFields["query"] = r.URL.RawQuery
				requestFields["user_agent"] = r.UserAgent()
				requestFields["content_type"] = r.Header.Get("Content-Type")
				requestFields["content_length"] = r.ContentLength
			}
			log.L.WithFields(requestFields).Debug("→ Requisição recebida")

			next.ServeHTTP(lrw, r)

			elapsed := time.Since(start)
			logger := log.L.WithFields(log.Fields{
				"correlation_id": correlationID,
				"method":         r.Method,
				"path":           r.URL.Path,
				"status_code":    lrw.statusCode,
				"duration_ms":    elapsed.Milliseconds(),
				"bytes":          lrw.written,
			})

			msg := "Requisição finalizada"
			if isDev {
				symbol := "✓"
				if lrw.statusCode >= http.StatusBadRequest {
					symbol = "✗"
				}
				msg = fmt.Sprintf("%s %s %s em %s", symbol, r.Method, r.URL.Path, formatDuration(elapsed))
			}

			switch {
			case lrw.statusCode >= http.StatusInternalServerError:
				logger.Error(msg)
			case lrw.statusCode >= http.StatusBadRequest:
				logger.Warn(msg)
			default:
				logger.Info(msg)
			}

			if elapsed > SlowRequestThreshold {
				logger.Warnf("Requisição lenta: %s", formatDuration(elapsed))
			}
		})
	}
}

func formatDuration(d time.Duration) string {
	switch {
	case d < time.Millisecond:
		return fmt.Sprintf("%d µs", d.Microseconds())
	case d < time.Second:
		return fmt.Sprintf("%d ms", d.Milliseconds())
	default:
		return fmt.Sprintf("%.2f s", d.Seconds())
	}
}

// loggingResponseWriter captura o status e o total de bytes escritos na resposta
type loggingResponseWriter struct {
	http.ResponseWriter
	statusCode  int
	written     int64
	wroteHeader bool
}

func newLoggingResponseWriter(w http.ResponseWriter) *loggingResponseWriter {
	return &loggingResponseWriter{ResponseWriter: w, statusCode: http.StatusOK}
}

func (lrw *loggingResponseWriter) WriteHeader(code int) {
	if !lrw.wroteHeader {
		lrw.statusCode = code
		lrw.wroteHeader = true
	}
	lrw.ResponseWriter.WriteHeader(code)
}

func (lrw *loggingResponseWriter) Write(b []byte) (int, error) {
	lrw.wroteHeader = true
	n, err := lrw.ResponseWriter.Write(b)
	lrw.written += int64(n)
	return n, err
}

// Flush repassa o flush quando o writer original suporta
func (lrw *loggingResponseWriter) Flush() {
	if f, ok := lrw.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// LogPanicMiddleware recupera panics dos handlers, registra a pilha e responde 500
func LogPanicMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}

				stack := make([]byte, 4096)
				stack = stack[:runtime.Stack(stack, false)]

				logger := log.L.WithFields(log.Fields{
					"correlation_id": log.GetCorrelationID(r.Context()),
					"panic_error":    rec,
					"method":         r.Method,
					"path":           r.URL.Path,
				})

				if log.IsDevelopment() {
					logger.Error("❌ PANIC na aplicação")
					fmt.Fprintf(os.Stderr, "\n=== STACK TRACE ===\n%s\n===================\n", stack)
				} else {
					logger.WithField("stack_trace", string(stack)).Error("Erro não tratado na aplicação")
				}

				apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro interno no servidor", nil)
			}()

			next.ServeHTTP(w, r)
		})
	}
}
