package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/theblitlabs/system-stats/internal/api/handlers"
	"github.com/theblitlabs/system-stats/internal/api/middleware"
	"github.com/theblitlabs/system-stats/internal/config"
	"github.com/theblitlabs/system-stats/internal/telemetry"
)

// Router wraps mux.Router to add more functionality
type Router struct {
	*mux.Router
	middleware []mux.MiddlewareFunc
	cfg        *config.Config
}

// NewRouter creates and configures a new router with all dependencies
func NewRouter(statsHandler *handlers.StatsHandler, healthHandler *handlers.HealthHandler, cfg *config.Config) *Router {
	r := &Router{
		Router: mux.NewRouter(),
		middleware: []mux.MiddlewareFunc{
			middleware.Logging,
			telemetry.MetricsMiddleware,
		},
		cfg: cfg,
	}

	r.setup()
	r.registerRoutes(statsHandler, healthHandler)

	return r
}

// setup configures the base router with middleware and common settings
func (r *Router) setup() {
	for _, m := range r.middleware {
		r.Use(m)
	}
}

// registerRoutes registers all application routes
func (r *Router) registerRoutes(statsHandler *handlers.StatsHandler, healthHandler *handlers.HealthHandler) {
	r.HandleFunc("/health", healthHandler.GetHealth).Methods(http.MethodGet)
	if r.cfg.Telemetry.Prometheus {
		r.Handle("/metrics", telemetry.MetricsHandler()).Methods(http.MethodGet)
	}

	api := r.PathPrefix(r.cfg.Server.Endpoint).Subrouter()
	api.Use(middleware.APIKey(r.cfg.Auth.Header, r.cfg.Auth.APIKey))
	api.HandleFunc("/system-stats", statsHandler.GetSystemStats).Methods(http.MethodGet)
}
