package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/panoptes/pkg/domain/types"
	"github.com/secmon-lab/panoptes/pkg/service/inspector"
)

// createInspectorRequest opens an inspector either on a stored
// finding's raw data (FindingID set) or on an inline value
type createInspectorRequest struct {
	FindingID string          `json:"findingId,omitempty"`
	Value     json.RawMessage `json:"value,omitempty"`
	Expanded  bool            `json:"expanded,omitempty"`
	MaxHeight int             `json:"maxHeight,omitempty"`
}

// inspectorResponse is the wire state of one inspector instance
type inspectorResponse struct {
	ID       string `json:"id"`
	Expanded bool   `json:"expanded"`
	Copied   bool   `json:"copied"`
	HTML     string `json:"html"`
}

func (s *Server) inspectorResponse(x *inspector.Inspector) (*inspectorResponse, error) {
	html, err := x.RenderHTML()
	if err != nil {
		return nil, err
	}
	return &inspectorResponse{
		ID:       x.ID().String(),
		Expanded: x.Expanded(),
		Copied:   x.Copied(),
		HTML:     html,
	}, nil
}

// handleCreateInspector opens a new inspector instance
func (s *Server) handleCreateInspector(w http.ResponseWriter, r *http.Request) {
	var req createInspectorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, r, goerr.Wrap(err, "invalid inspector request"))
		return
	}

	var opts []inspector.Option
	if req.Expanded {
		opts = append(opts, inspector.WithDefaultExpanded(true))
	}
	if req.MaxHeight > 0 {
		opts = append(opts, inspector.WithMaxHeight(req.MaxHeight))
	}

	var x *inspector.Inspector
	var err error
	switch {
	case req.FindingID != "":
		x, err = s.useCases.inspect.CreateForFinding(r.Context(), types.FindingID(req.FindingID), opts...)
	case len(req.Value) > 0:
		var value any
		if err := json.Unmarshal(req.Value, &value); err != nil {
			writeBadRequest(w, r, goerr.Wrap(err, "invalid inspector value"))
			return
		}
		x, err = s.useCases.inspect.CreateForValue(r.Context(), value, opts...)
	default:
		writeBadRequest(w, r, goerr.New("either findingId or value is required"))
		return
	}
	if err != nil {
		writeError(w, r, err)
		return
	}

	resp, err := s.inspectorResponse(x)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) inspectorFromURL(w http.ResponseWriter, r *http.Request) (*inspector.Inspector, bool) {
	id := types.InspectorID(chi.URLParam(r, "inspectorID"))
	x, err := s.useCases.inspect.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return nil, false
	}
	return x, true
}

// handleGetInspector returns the current state and rendered fragment
func (s *Server) handleGetInspector(w http.ResponseWriter, r *http.Request) {
	x, ok := s.inspectorFromURL(w, r)
	if !ok {
		return
	}

	resp, err := s.inspectorResponse(x)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleToggleInspector flips the expanded state
func (s *Server) handleToggleInspector(w http.ResponseWriter, r *http.Request) {
	x, ok := s.inspectorFromURL(w, r)
	if !ok {
		return
	}

	x.Toggle()
	resp, err := s.inspectorResponse(x)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleCopyInspector triggers the copy action. The clipboard write is
// asynchronous; the response carries the serialized text so browser
// clients can write their own clipboard, and the copied flag as of the
// response time.
func (s *Server) handleCopyInspector(w http.ResponseWriter, r *http.Request) {
	x, ok := s.inspectorFromURL(w, r)
	if !ok {
		return
	}

	text, err := inspector.Serialize(x.Value())
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := x.Copy(r.Context()); err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"text":   text,
		"copied": x.Copied(),
	})
}

// handleDeleteInspector closes and removes the instance
func (s *Server) handleDeleteInspector(w http.ResponseWriter, r *http.Request) {
	id := types.InspectorID(chi.URLParam(r, "inspectorID"))
	if err := s.useCases.inspect.Remove(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"deleted": id.String()})
}
