package usecase

import (
	"context"

	"github.com/secmon-lab/panoptes/pkg/domain/model"
	"github.com/secmon-lab/panoptes/pkg/domain/types"
	"github.com/secmon-lab/panoptes/pkg/service/inspector"
)

// DashboardUseCase defines the interface for the findings dashboard
type DashboardUseCase interface {
	// IngestFindings validates and stores a batch of findings
	IngestFindings(ctx context.Context, findings []*model.Finding) error

	// ListFindings lists stored findings in ingest order
	ListFindings(ctx context.Context) ([]*model.Finding, error)

	// SeverityDistribution aggregates stored findings into ordered
	// severity counts
	SeverityDistribution(ctx context.Context) (model.SeverityCounts, error)

	// SeveritySlices shapes the distribution into chart slices
	SeveritySlices(ctx context.Context) ([]model.ChartSlice, error)
}

// InspectUseCase defines the interface for inspector instances
type InspectUseCase interface {
	// CreateForFinding opens an inspector on a stored finding's raw data
	CreateForFinding(ctx context.Context, id types.FindingID, opts ...inspector.Option) (*inspector.Inspector, error)

	// CreateForValue opens an inspector on an arbitrary value
	CreateForValue(ctx context.Context, value any, opts ...inspector.Option) (*inspector.Inspector, error)

	// Get returns a live inspector
	Get(ctx context.Context, id types.InspectorID) (*inspector.Inspector, error)

	// Remove closes and removes an inspector
	Remove(ctx context.Context, id types.InspectorID) error
}
