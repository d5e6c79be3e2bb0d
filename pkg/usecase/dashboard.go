package usecase

import (
	"context"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/panoptes/pkg/domain/interfaces"
	"github.com/secmon-lab/panoptes/pkg/domain/model"
	"github.com/secmon-lab/panoptes/pkg/domain/types"
	"github.com/secmon-lab/panoptes/pkg/service/chart"
)

// Dashboard implements DashboardUseCase
type Dashboard struct {
	repo    interfaces.Repository
	palette *model.PaletteConfig
}

// NewDashboard creates a dashboard use case. A nil palette selects the
// built-in default.
func NewDashboard(repo interfaces.Repository, palette *model.PaletteConfig) *Dashboard {
	if palette == nil {
		palette = model.DefaultPalette()
	}
	return &Dashboard{
		repo:    repo,
		palette: palette,
	}
}

// Palette returns the active severity palette
func (u *Dashboard) Palette() *model.PaletteConfig {
	return u.palette
}

// IngestFindings validates and stores a batch of findings. The batch is
// rejected as a whole on the first invalid entry.
func (u *Dashboard) IngestFindings(ctx context.Context, findings []*model.Finding) error {
	for i, finding := range findings {
		if finding == nil {
			return goerr.New("finding is nil", goerr.V("index", i))
		}
		if finding.ID == "" {
			finding.ID = types.NewFindingID()
		}
		if finding.DetectedAt.IsZero() {
			finding.DetectedAt = time.Now()
		}
		if err := finding.Validate(); err != nil {
			return goerr.Wrap(err, "invalid finding in batch",
				goerr.V("index", i))
		}
	}

	for _, finding := range findings {
		if err := u.repo.PutFinding(ctx, finding); err != nil {
			return goerr.Wrap(err, "failed to store finding",
				goerr.V("id", finding.ID))
		}
	}

	ctxlog.From(ctx).Info("Ingested findings", "count", len(findings))
	return nil
}

// ListFindings lists stored findings in ingest order
func (u *Dashboard) ListFindings(ctx context.Context) ([]*model.Finding, error) {
	findings, err := u.repo.ListFindings(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list findings")
	}
	return findings, nil
}

// SeverityDistribution aggregates stored findings into ordered severity
// counts: palette severities first, in palette order, then unknown
// labels in first-seen order.
func (u *Dashboard) SeverityDistribution(ctx context.Context) (model.SeverityCounts, error) {
	findings, err := u.repo.ListFindings(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to aggregate findings")
	}

	var counts model.SeverityCounts
	for _, sev := range u.palette.Severities {
		counts = append(counts, model.SeverityCount{Label: sev.ID})
	}
	for _, finding := range findings {
		counts = counts.Add(finding.Severity, 1)
	}

	return counts, nil
}

// SeveritySlices shapes the distribution into chart slices
func (u *Dashboard) SeveritySlices(ctx context.Context) ([]model.ChartSlice, error) {
	counts, err := u.SeverityDistribution(ctx)
	if err != nil {
		return nil, err
	}
	return chart.BuildSlices(counts, u.palette), nil
}
