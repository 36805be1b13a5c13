// Package server exposes the asset library over HTTP: the filtered catalog,
// the submission workflow, the master lists, and the scoring endpoint.
package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/contentstudio/asset-library/pkg/assets"
	"github.com/contentstudio/asset-library/pkg/audit"
	"github.com/contentstudio/asset-library/pkg/masters"
	"github.com/contentstudio/asset-library/pkg/scoring"
	"github.com/contentstudio/asset-library/pkg/store"
	"github.com/contentstudio/asset-library/pkg/submission"
)

// BasePath is the API base path.
const BasePath = "/api/asset_library/v1alpha1"

// Server wires the catalog core to its HTTP surface. One workflow is held
// per open draft; the draft is mutated only through its workflow.
type Server struct {
	router   chi.Router
	logger   *slog.Logger
	cfg      *Config
	assets   *store.AssetStore
	masters  *masters.MastersStore
	colls    *masters.CollectionsCache
	audit    *audit.Store
	analyzer *scoring.Analyzer
	local    *scoring.Analyzer // serves the local heuristic endpoint
	machine  *assets.LifecycleMachine
	view     *assets.View

	mu        sync.Mutex
	workflows map[string]*submission.Workflow
}

// ServerOption configures a Server.
type ServerOption func(*Server)

// WithLogger sets the server logger.
func WithLogger(l *slog.Logger) ServerOption {
	return func(s *Server) { s.logger = l }
}

// WithAnalyzer overrides the analyzer used by submission workflows.
func WithAnalyzer(a *scoring.Analyzer) ServerOption {
	return func(s *Server) { s.analyzer = a }
}

// WithAuditStore enables the asset activity trail.
func WithAuditStore(a *audit.Store) ServerOption {
	return func(s *Server) { s.audit = a }
}

// NewServer creates a server over the given stores.
func NewServer(cfg *Config, assetStore *store.AssetStore, masterStore *masters.MastersStore, opts ...ServerOption) *Server {
	s := &Server{
		logger:    slog.Default(),
		cfg:       cfg,
		assets:    assetStore,
		masters:   masterStore,
		colls:     masters.NewCollectionsCache(masterStore, masters.DefaultCollectionsTTL),
		local:     scoring.NewAnalyzer(""),
		machine:   assets.NewLifecycleMachine(),
		view:      assets.NewView(),
		workflows: make(map[string]*submission.Workflow),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.analyzer == nil {
		s.analyzer = scoring.NewAnalyzer(cfg.Scoring.RemoteURL, scoring.WithLogger(s.logger))
	}
	return s
}

// MountRoutes builds the router with all API routes.
func (s *Server) MountRoutes() chi.Router {
	r := chi.NewRouter()
	s.router = r

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.cfg.CORS.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PATCH", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Remote-User"},
	}))

	r.Get("/healthz", s.healthHandler)
	r.Get("/readyz", s.healthHandler)

	// The scoring collaborator endpoint, served by the local heuristic so a
	// single process is self-contained.
	r.Post(scoring.ScoresPath, s.scoresHandler)

	r.Route(BasePath, func(r chi.Router) {
		r.Route("/assets", func(r chi.Router) {
			r.Get("/", s.listAssetsHandler)
			r.Post("/", s.createAssetHandler)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.getAssetHandler)
				r.Patch("/", s.updateAssetHandler)
				r.Delete("/", s.deleteAssetHandler)
				r.Post("/approve", s.approveAssetHandler)
				r.Post("/reject", s.rejectAssetHandler)
				r.Get("/events", s.assetEventsHandler)
			})
		})

		r.Route("/submissions", func(r chi.Router) {
			r.Post("/", s.openSubmissionHandler)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.getSubmissionHandler)
				r.Patch("/", s.patchSubmissionHandler)
				r.Post("/select-type", s.selectTypeHandler)
				r.Post("/advance", s.advanceHandler)
				r.Post("/back", s.backHandler)
				r.Post("/cancel", s.cancelHandler)
				r.Post("/save", s.saveSubmissionHandler)
			})
		})

		r.Get("/audit/events", s.listAuditEventsHandler)

		r.Route("/masters", func(r chi.Router) {
			r.Get("/categories", s.listCategoriesHandler)
			r.Post("/categories", s.upsertCategoryHandler)
			r.Put("/categories", s.upsertCategoryHandler)
			r.Get("/types", s.listTypesHandler)
			r.Post("/types", s.upsertTypeHandler)
			r.Put("/types", s.upsertTypeHandler)
			r.Get("/keywords", s.listKeywordsHandler)
			r.Get("/collections", s.listCollectionsHandler)
		})
	})

	return r
}

// Router returns the mounted router.
func (s *Server) Router() chi.Router {
	if s.router == nil {
		return s.MountRoutes()
	}
	return s.router
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// actor extracts the acting user from the request.
func actor(r *http.Request) string {
	if user := r.Header.Get("X-Remote-User"); user != "" {
		return user
	}
	return "anonymous"
}

// recordEvent appends to the activity trail when it is enabled. The trail
// is advisory: failures are logged, never surfaced to the caller.
func (s *Server) recordEvent(r *http.Request, assetID, action, detail string) {
	if s.audit == nil {
		return
	}
	if err := s.audit.Record(r.Context(), assetID, action, actor(r), detail); err != nil {
		s.logger.Warn("recording audit event failed", "assetID", assetID, "action", action, "error", err)
	}
}

// writeJSON writes a JSON response with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// errorResponse is the JSON error envelope.
type errorResponse struct {
	Code    string                        `json:"code"`
	Message string                        `json:"message"`
	Errors  []*submission.ValidationError `json:"errors,omitempty"`
}

// writeError writes a structured JSON error.
func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Code: code, Message: message})
}
