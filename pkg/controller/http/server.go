package http

import (
	"context"
	"net/http"
	"time"

	"github.com/crashlens/crashlens/frontend"
	"github.com/crashlens/crashlens/pkg/domain/interfaces"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/m-mizutani/ctxlog"
)

const (
	serviceName    = "NYC Motor Vehicle Collisions API"
	serviceVersion = "1.0.0"
)

// Server represents the HTTP server
type Server struct {
	*http.Server
	router chi.Router
}

type serverOptions struct {
	corsOrigin     string
	metricsHandler http.Handler
	frontendFS     http.FileSystem
}

// Option configures the HTTP server
type Option func(*serverOptions)

// WithCORSOrigin sets the allowed CORS origin of the API
func WithCORSOrigin(origin string) Option {
	return func(o *serverOptions) {
		o.corsOrigin = origin
	}
}

// WithMetrics mounts a metrics handler at /metrics
func WithMetrics(h http.Handler) Option {
	return func(o *serverOptions) {
		o.metricsHandler = h
	}
}

// WithFrontend serves the dashboard from fs instead of the embedded files
func WithFrontend(fs http.FileSystem) Option {
	return func(o *serverOptions) {
		o.frontendFS = fs
	}
}

// NewServer creates a new HTTP server
func NewServer(ctx context.Context, addr string, reportUC interfaces.Report, opts ...Option) (*Server, error) {
	options := &serverOptions{corsOrigin: "*"}
	for _, opt := range opts {
		opt(options)
	}

	router := chi.NewRouter()

	// Apply global middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(LoggingMiddleware(ctx))
	router.Use(middleware.Recoverer)

	reportHandler := NewReportHandler(reportUC)

	router.Get("/health", handleHealth)

	router.Route("/api", func(r chi.Router) {
		r.Use(CORSMiddleware(options.corsOrigin))

		r.Get("/", handleIndex)
		r.Get("/health", reportHandler.HandleHealth)
		r.Get("/filters", reportHandler.HandleFilters)
		r.Post("/report", reportHandler.HandleReport)
		r.Get("/charts/{name}", reportHandler.HandleChartImage)
	})

	if options.metricsHandler != nil {
		router.Handle("/metrics", options.metricsHandler)
	}

	fs := options.frontendFS
	if fs == nil {
		embedded, err := frontend.GetHTTPFS()
		if err != nil {
			ctxlog.From(ctx).Warn("Failed to get embedded frontend, using fallback",
				"error", err,
			)
		}
		fs = embedded
	}
	if fs != nil {
		spa, err := NewSPAHandler(fs)
		if err != nil {
			return nil, err
		}
		router.Handle("/*", spa)
	} else {
		router.Get("/", handleIndex)
	}

	server := &Server{
		Server: &http.Server{
			Addr:              addr,
			Handler:           router,
			ReadHeaderTimeout: 15 * time.Second,
		},
		router: router,
	}

	return server, nil
}

// handleHealth handles liveness probes
func handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(r.Context(), w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "crashlens",
	})
}

// handleIndex describes the REST endpoints
func handleIndex(w http.ResponseWriter, r *http.Request) {
	writeJSON(r.Context(), w, http.StatusOK, map[string]any{
		"name":    serviceName,
		"version": serviceVersion,
		"endpoints": map[string]string{
			"/api/health":            "Health check",
			"/api/filters":           "Get available filter options",
			"/api/report":            "Generate report with charts (POST)",
			"/api/charts/{name}.png": "Render one report chart as PNG",
		},
	})
}
