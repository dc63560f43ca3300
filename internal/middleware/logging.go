package middleware

import (
	"log/slog"
	"net/http"
	"time"
)

// Logging records one http_request entry per response. The Origin header is
// included when present so cross-origin traffic can be distinguished in the
// logs without consulting the CORS layer.
func Logging(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := &statusResponseWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(ww, r)

			attrs := []any{
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.status,
				"duration_ms", time.Since(start).Milliseconds(),
				"request_id", RequestIDFromContext(r.Context()),
			}
			if origin := r.Header.Get("Origin"); origin != "" {
				attrs = append(attrs, "origin", origin)
			}
			logger.Info("http_request", attrs...)
		})
	}
}

type statusResponseWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusResponseWriter) WriteHeader(statusCode int) {
	w.status = statusCode
	w.ResponseWriter.WriteHeader(statusCode)
}
