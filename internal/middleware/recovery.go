package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/getsentry/sentry-go"
)

// Recovery catches panics from downstream handlers, reports them to Sentry
// when a client is configured, logs the stack, and answers 500 unless the
// response was already committed.
func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := &committedResponseWriter{ResponseWriter: w}

			defer func() {
				if rec := recover(); rec != nil {
					hub := sentry.GetHubFromContext(r.Context())
					if hub == nil {
						hub = sentry.CurrentHub()
					}
					hub.RecoverWithContext(r.Context(), rec)

					logger.Error("panic_recovered",
						"method", r.Method,
						"path", r.URL.Path,
						"panic", fmt.Sprint(rec),
						"stack", string(debug.Stack()),
						"request_id", RequestIDFromContext(r.Context()),
					)

					if !ww.committed {
						writeError(ww, r, http.StatusInternalServerError, "internal_error", "Internal server error", nil)
					}
				}
			}()
			next.ServeHTTP(ww, r)
		})
	}
}

type committedResponseWriter struct {
	http.ResponseWriter
	committed bool
}

func (w *committedResponseWriter) WriteHeader(statusCode int) {
	w.committed = true
	w.ResponseWriter.WriteHeader(statusCode)
}

func (w *committedResponseWriter) Write(b []byte) (int, error) {
	w.committed = true
	return w.ResponseWriter.Write(b)
}
