package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"passin/internal/delivery/http/helpers"
)

// Recover turns a panic in next into a 500 internal_error response and logs the stack.
// When next already started the response, the partial response is left as is.
// http.ErrAbortHandler is re-raised so net/http can abort the connection.
func Recover(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		wrapped := &responseWriter{ResponseWriter: w, status: http.StatusOK}
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}
			logger.ErrorContext(r.Context(), "panic recovered",
				"path", r.URL.Path,
				"method", r.Method,
				"panic", rec,
				"response_started", wrapped.wroteHeader,
				"stack", string(debug.Stack()),
			)
			if wrapped.wroteHeader {
				return
			}
			helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "internal server error")
		}()
		next.ServeHTTP(wrapped, r)
	})
}
