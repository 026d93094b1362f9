package middleware

import (
	"net/http"
	"time"

	"go.uber.org/zap"
)

// LoggingMiddleware writes one access log line per request. Server errors are logged
// at error level so failed instructions stay visible when the level is raised to warn.
func LoggingMiddleware(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rw := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(rw, r)

			fields := []zap.Field{
				zap.String("method", r.Method),
				zap.String("route", routePattern(r)),
				zap.Int("status", rw.status),
				zap.Int("response_bytes", rw.bytes),
				zap.String("trace_id", TraceIDFromContext(r.Context())),
				zap.Float64("duration_ms", float64(time.Since(start).Microseconds())/1000),
			}
			if key := r.Header.Get(IdempotencyHeader); key != "" {
				fields = append(fields, zap.String("idempotency_key", key))
			}

			if rw.status >= http.StatusInternalServerError {
				logger.Error("request_completed", fields...)
				return
			}
			logger.Info("request_completed", fields...)
		})
	}
}

// statusRecorder captures the status and body size written by downstream handlers.
type statusRecorder struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (sr *statusRecorder) WriteHeader(code int) {
	sr.status = code
	sr.ResponseWriter.WriteHeader(code)
}

func (sr *statusRecorder) Write(b []byte) (int, error) {
	n, err := sr.ResponseWriter.Write(b)
	sr.bytes += n
	return n, err
}
