package http

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"time"

	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/goccy/go-json"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/couchcryptid/heritage-explorer/internal/domain"
	"github.com/couchcryptid/heritage-explorer/internal/observability"
	"github.com/couchcryptid/heritage-explorer/internal/recommend"
)

// DatasetLoader builds a fresh dataset for each request.
type DatasetLoader interface {
	Dataset(ctx context.Context) (domain.Dataset, error)
}

// Options configures the API surface.
type Options struct {
	Addr               string
	AppTitle           string
	AppIcon            string
	DataSource         string
	Selection          recommend.Selection
	CORSAllowedOrigins []string
}

// Server exposes the heritage API alongside health, readiness, and metrics
// endpoints.
type Server struct {
	httpServer *http.Server
	opts       Options
	loader     DatasetLoader
	logger     *slog.Logger
	metrics    *observability.Metrics
}

// NewServer creates an HTTP server with /healthz, /readyz, /metrics and the
// /api/v1 routes.
func NewServer(opts Options, loader DatasetLoader, ready sharedobs.ReadinessChecker, logger *slog.Logger, metrics *observability.Metrics) *Server {
	s := &Server{
		opts:    opts,
		loader:  loader,
		logger:  logger,
		metrics: metrics,
	}

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: opts.CORSAllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/healthz", sharedobs.LivenessHandler())
	r.Get("/readyz", sharedobs.ReadinessHandler(ready))
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/config", s.handleConfig)
		r.Get("/summary", s.compute("summary", s.handleSummary))

		r.Get("/art-forms", s.compute("art_forms", s.handleArtForms))
		r.Get("/sites", s.compute("sites", s.handleSites))
		r.Get("/tourism", s.compute("tourism", s.handleTourism))
		r.Get("/festivals", s.compute("festivals", s.handleFestivals))

		r.Route("/analytics", func(r chi.Router) {
			r.Get("/heritage-index", s.compute("heritage_index", s.handleHeritageIndex))
			r.Get("/sustainability", s.compute("sustainability", s.handleSustainability))
			r.Get("/trends", s.compute("trends", s.handleTrends))
			r.Get("/festival-impact", s.compute("festival_impact", s.handleFestivalImpact))
			r.Get("/digital-presence", s.compute("digital_presence", s.handleDigitalPresence))
			r.Get("/insights", s.compute("insights", s.handleInsights))
		})

		r.Route("/recommendations", func(r chi.Router) {
			r.Get("/hidden-gems", s.compute("hidden_gems", s.handleHiddenGems))
			r.Get("/itinerary", s.compute("itinerary", s.handleItinerary))
			r.Get("/sustainable", s.compute("sustainable", s.handleSustainable))
			r.Get("/similar", s.compute("similar", s.handleSimilar))
		})

		r.Get("/routes", s.compute("routes", s.handleRoutes))
		r.Get("/maps/{layer}", s.compute("maps", s.handleMap))
	})

	s.httpServer = &http.Server{
		Addr:         opts.Addr,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

// datasetHandler serves a request from an already loaded dataset.
type datasetHandler func(w http.ResponseWriter, r *http.Request, ds domain.Dataset)

// compute loads a dataset for the request, runs h, and records the elapsed
// time under endpoint. A load failure is reported as 503.
func (s *Server) compute(endpoint string, h datasetHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		defer func() {
			s.metrics.ComputeDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
		}()

		ds, err := s.loader.Dataset(r.Context())
		if err != nil {
			s.logger.Error("dataset unavailable",
				"endpoint", endpoint,
				"request_id", chimiddleware.GetReqID(r.Context()),
				"error", err,
			)
			s.writeError(w, http.StatusServiceUnavailable, "dataset unavailable")
			return
		}
		h(w, r, ds)
	}
}

// writeJSON encodes v before writing the header so an unencodable value
// becomes a 500 instead of a truncated 200.
func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		s.logger.Error("encode response", "status", status, "error", err)
		status = http.StatusInternalServerError
		buf.Reset()
		buf.WriteString(`{"error":"response encoding failed"}` + "\n")
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(buf.Bytes()) //nolint:errcheck // client may have gone away
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, map[string]string{"error": msg})
}
