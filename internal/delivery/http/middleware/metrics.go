package middleware

import (
	"net/http"
	"strconv"
	"time"

	"passin/internal/observability"
)

// Metrics records request count and latency per mux route. The route label is
// the registered pattern, never the raw path, so ids do not explode cardinality.
func Metrics(m *observability.Metrics, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrapped := &responseWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(wrapped, r)
		route := routeOf(r)
		m.HTTPRequests.WithLabelValues(r.Method, route, strconv.Itoa(wrapped.status)).Inc()
		m.HTTPRequestDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}
