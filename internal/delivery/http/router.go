package http

import (
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"passin/internal/delivery/http/controllers"
	"passin/internal/delivery/http/middleware"
	"passin/internal/observability"
)

// NewRouter initializes the HTTP router with all application routes
func NewRouter(eventController *controllers.EventController, healthController *controllers.HealthController, gatherer prometheus.Gatherer) *http.ServeMux {
	mux := http.NewServeMux()

	// API Routes
	mux.HandleFunc("GET /events/{eventId}", eventController.GetEvent)

	// Operations
	mux.HandleFunc("GET /health/live", healthController.Live)
	mux.HandleFunc("GET /health/ready", healthController.Ready)
	mux.Handle("GET /metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}

// NewHandler wraps the router with request logging, metrics, recovery and CORS, outermost first.
// Recovery sits inside logging and metrics so a panicking request is still logged and counted.
func NewHandler(mux *http.ServeMux, logger *slog.Logger, metrics *observability.Metrics, allowedOrigins []string) http.Handler {
	var h http.Handler = mux
	h = middleware.CORS(allowedOrigins, h)
	h = middleware.Recover(logger, h)
	h = middleware.Metrics(metrics, h)
	h = middleware.LoggingMiddleware(logger, h)
	return h
}
