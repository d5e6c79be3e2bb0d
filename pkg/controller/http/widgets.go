package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/panoptes/pkg/domain/model"
	"github.com/secmon-lab/panoptes/pkg/service/chart"
)

// handleIngestFindings stores a batch of findings posted as a JSON array
func (s *Server) handleIngestFindings(w http.ResponseWriter, r *http.Request) {
	var findings []*model.Finding
	if err := json.NewDecoder(r.Body).Decode(&findings); err != nil {
		writeBadRequest(w, r, goerr.Wrap(err, "request body must be a JSON array of findings"))
		return
	}
	if len(findings) == 0 {
		writeBadRequest(w, r, goerr.New("at least one finding is required"))
		return
	}

	if err := s.useCases.dashboard.IngestFindings(r.Context(), findings); err != nil {
		writeBadRequest(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]int{"ingested": len(findings)})
}

// handleListFindings lists stored findings
func (s *Server) handleListFindings(w http.ResponseWriter, r *http.Request) {
	findings, err := s.useCases.dashboard.ListFindings(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"findings": findings})
}

// handleSeveritySlices returns the severity distribution as chart slices
func (s *Server) handleSeveritySlices(w http.ResponseWriter, r *http.Request) {
	slices, err := s.useCases.dashboard.SeveritySlices(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	if slices == nil {
		slices = []model.ChartSlice{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"slices": slices})
}

// handleSeveritySVG renders the severity donut chart. The optional
// height query parameter overrides the default 240px.
func (s *Server) handleSeveritySVG(w http.ResponseWriter, r *http.Request) {
	opts := chart.SVGOptions{}
	if raw := r.URL.Query().Get("height"); raw != "" {
		height, err := strconv.Atoi(raw)
		if err != nil || height <= 0 {
			writeBadRequest(w, r, goerr.New("height must be a positive integer",
				goerr.V("height", raw)))
			return
		}
		opts.Height = height
	}

	slices, err := s.useCases.dashboard.SeveritySlices(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "image/svg+xml")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(chart.RenderSVG(slices, opts))); err != nil {
		ctxlog.From(r.Context()).Error("Failed to write chart response", "error", err)
	}
}
