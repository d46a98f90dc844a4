// Package httptransport serves the operational HTTP surface: probes,
// Prometheus metrics and the token-guarded /admin endpoints.
package httptransport

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"esbresolver/internal/platform/health"
	"esbresolver/pkg/platform/middleware/admin"
	"esbresolver/pkg/platform/middleware/request"
)

const defaultMaxBodyBytes = 1 << 20

// Handlers groups everything the router mounts. Nil handlers are skipped.
type Handlers struct {
	Health    *health.Handler
	Directory *DirectoryHandler
	Policy    *PolicyHandler
}

// RouterConfig carries transport settings.
type RouterConfig struct {
	AdminToken     string
	MaxBodyBytes   int64
	RequestTimeout time.Duration
	Registerer     prometheus.Registerer
	Gatherer       prometheus.Gatherer
}

// NewRouter wires the ops endpoints with the middleware stack. The /admin
// group is only mounted when an admin token is configured.
func NewRouter(h Handlers, cfg RouterConfig, logger *slog.Logger) http.Handler {
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = defaultMaxBodyBytes
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 30 * time.Second
	}
	if cfg.Gatherer == nil {
		cfg.Gatherer = prometheus.DefaultGatherer
	}

	r := chi.NewRouter()
	r.Use(request.Recovery(logger))
	r.Use(request.RequestID)
	r.Use(request.Logger(logger))
	r.Use(request.LatencyMiddleware(request.NewMetrics(cfg.Registerer), routePattern))
	r.Use(chimw.Timeout(cfg.RequestTimeout))
	r.Use(request.BodyLimit(cfg.MaxBodyBytes))

	if h.Health != nil {
		h.Health.Register(r)
	}
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(cfg.Gatherer, promhttp.HandlerOpts{}))

	if cfg.AdminToken == "" {
		logger.Info("admin endpoints disabled: no admin token configured")
		return r
	}

	r.Route("/admin", func(r chi.Router) {
		r.Use(admin.RequireToken(cfg.AdminToken, logger))
		if h.Directory != nil {
			h.Directory.Register(r)
		}
		if h.Policy != nil {
			h.Policy.Register(r)
		}
	})

	return r
}

// routePattern labels latency by chi route pattern so path parameters do
// not explode metric cardinality.
func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if pattern := rctx.RoutePattern(); pattern != "" {
			return pattern
		}
	}
	return "unmatched"
}
