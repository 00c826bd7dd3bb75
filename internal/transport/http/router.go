package httptransport

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"datasentinel/pkg/platform/middleware/apikey"
	"datasentinel/pkg/platform/middleware/request"
	"datasentinel/pkg/platform/validation"
)

const (
	defaultTimeout      = 30 * time.Second
	defaultMaxBodyBytes = validation.MaxBodySize
)

// Registrar mounts a module's routes.
type Registrar interface {
	Register(r chi.Router)
}

// Config carries the transport-level settings.
type Config struct {
	APIKey         string
	AdminKey       string
	AllowedOrigins []string
	Timeout        time.Duration
	MaxBodyBytes   int64
	// Metrics is optional; nil disables request latency collection.
	Metrics *request.Metrics
}

// Routes groups module registrations by capability.
type Routes struct {
	// Open routes skip the key gate (health probes).
	Open []Registrar
	// API routes require X-API-Key.
	API []Registrar
	// Admin routes require X-API-Key and X-Admin-Key.
	Admin []func(chi.Router)
}

// NewRouter wires every module behind the shared middleware stack.
func NewRouter(cfg Config, routes Routes, logger *slog.Logger) http.Handler {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}
	maxBody := cfg.MaxBodyBytes
	if maxBody == 0 {
		maxBody = defaultMaxBodyBytes
	}

	r := chi.NewRouter()
	r.Use(request.Recovery(logger))
	r.Use(request.RequestID)
	r.Use(request.ClientMetadata)
	r.Use(request.RequestTime)
	r.Use(request.Logger(logger))
	if cfg.Metrics != nil {
		r.Use(request.Latency(cfg.Metrics))
	}
	if len(cfg.AllowedOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: cfg.AllowedOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowedHeaders: []string{"Accept", "Content-Type", apikey.HeaderAPIKey, apikey.HeaderAdminKey, "X-Request-ID"},
			ExposedHeaders: []string{"X-Request-ID", "Retry-After"},
			MaxAge:         300,
		}))
	}
	r.Use(request.Timeout(timeout))

	for _, reg := range routes.Open {
		reg.Register(r)
	}
	r.Handle("/metrics", promhttp.Handler())

	r.Group(func(api chi.Router) {
		api.Use(request.BodyLimit(maxBody))
		api.Use(request.ContentTypeJSON)
		api.Use(apikey.RequireAPIKey(cfg.APIKey, logger))
		for _, reg := range routes.API {
			reg.Register(api)
		}

		api.Group(func(admin chi.Router) {
			admin.Use(apikey.RequireAdminKey(cfg.AdminKey, logger))
			for _, register := range routes.Admin {
				register(admin)
			}
		})
	})

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"not_found","error_description":"route not found"}`))
	})
	return r
}
