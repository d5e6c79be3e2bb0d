package model

import (
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/panoptes/pkg/domain/types"
)

// Finding represents one security finding shown on the dashboard
type Finding struct {
	ID         types.FindingID  `json:"id"`
	Title      string           `json:"title"`
	Severity   types.SeverityID `json:"severity"`
	Source     string           `json:"source,omitempty"`
	DetectedAt time.Time        `json:"detectedAt"`

	// Data is the raw detector payload, rendered by the inspector widget.
	// Its shape is not constrained.
	Data any `json:"data,omitempty"`
}

// NewFinding creates a finding with a generated ID and detection time
func NewFinding(title string, severity types.SeverityID) *Finding {
	return &Finding{
		ID:         types.NewFindingID(),
		Title:      title,
		Severity:   severity,
		DetectedAt: time.Now(),
	}
}

// Validate validates the finding
func (f *Finding) Validate() error {
	if err := f.ID.Validate(); err != nil {
		return err
	}
	if f.Title == "" {
		return goerr.New("finding title is required",
			goerr.V("id", f.ID))
	}
	if err := f.Severity.Validate(); err != nil {
		return goerr.Wrap(err, "finding severity is required",
			goerr.V("id", f.ID))
	}
	return nil
}
