package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/panoptes/frontend"
	"github.com/secmon-lab/panoptes/pkg/domain/model"
	"github.com/secmon-lab/panoptes/pkg/usecase"
)

// UseCases bundles the use cases the server depends on
type UseCases struct {
	dashboard usecase.DashboardUseCase
	inspect   usecase.InspectUseCase
}

// NewUseCases creates the server's use case bundle
func NewUseCases(dashboard usecase.DashboardUseCase, inspect usecase.InspectUseCase) *UseCases {
	return &UseCases{
		dashboard: dashboard,
		inspect:   inspect,
	}
}

// Server represents the HTTP server
type Server struct {
	*http.Server
	router   chi.Router
	useCases *UseCases
}

// NewServer creates a new HTTP server for the dashboard widgets
func NewServer(ctx context.Context, addr string, useCases *UseCases) (*Server, error) {
	if useCases == nil {
		return nil, goerr.New("use cases are required")
	}

	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(LoggingMiddleware(ctx))
	router.Use(middleware.Recoverer)

	server := &Server{
		Server: &http.Server{
			Addr:              addr,
			Handler:           router,
			ReadHeaderTimeout: 15 * time.Second,
		},
		router:   router,
		useCases: useCases,
	}

	router.Get("/health", handleHealth)

	router.Route("/api", func(r chi.Router) {
		r.Route("/findings", func(r chi.Router) {
			r.Post("/", server.handleIngestFindings)
			r.Get("/", server.handleListFindings)
		})

		r.Get("/widgets/severity", server.handleSeveritySlices)

		r.Route("/inspectors", func(r chi.Router) {
			r.Post("/", server.handleCreateInspector)
			r.Route("/{inspectorID}", func(r chi.Router) {
				r.Get("/", server.handleGetInspector)
				r.Post("/toggle", server.handleToggleInspector)
				r.Post("/copy", server.handleCopyInspector)
				r.Delete("/", server.handleDeleteInspector)
			})
		})
	})

	router.Get("/widgets/severity.svg", server.handleSeveritySVG)

	// Frontend (embedded static files, fallback page when not built)
	fs, err := frontend.GetHTTPFS()
	if err != nil {
		ctxlog.From(ctx).Warn("Embedded frontend not available, using fallback",
			"error", err,
		)
		router.Get("/*", handleFallbackHome)
	} else {
		ctxlog.From(ctx).Info("Serving frontend from embedded files")
		router.Handle("/*", http.FileServer(fs))
	}

	return server, nil
}

// handleHealth handles health check requests
func handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "panoptes",
	})
}

// handleFallbackHome handles the root path when the frontend build is
// missing
func handleFallbackHome(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(`<!DOCTYPE html>
<html>
<head><title>Panoptes</title></head>
<body>
  <h1>Panoptes</h1>
  <p>Findings dashboard widgets. Frontend build is missing; the API is available under /api.</p>
</body>
</html>`)); err != nil {
		ctxlog.From(r.Context()).Error("Failed to write fallback home page", "error", err)
	}
}

// writeJSON writes a JSON response
func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		ctxlog.From(context.Background()).Error("Failed to encode response", "error", err)
	}
}

// writeError writes an error response, mapping not-found sentinels to 404
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, model.ErrFindingNotFound),
		errors.Is(err, model.ErrInspectorNotFound):
		status = http.StatusNotFound
	}

	ctxlog.From(r.Context()).Error("HTTP handler error",
		"error", err,
		"path", r.URL.Path,
	)
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

// writeBadRequest writes a 400 response
func writeBadRequest(w http.ResponseWriter, r *http.Request, err error) {
	ctxlog.From(r.Context()).Debug("Bad request",
		"error", err,
		"path", r.URL.Path,
	)
	writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
}
