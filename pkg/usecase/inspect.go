package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/panoptes/pkg/domain/interfaces"
	"github.com/secmon-lab/panoptes/pkg/domain/types"
	"github.com/secmon-lab/panoptes/pkg/service/inspector"
)

// Inspect implements InspectUseCase over a registry of live inspector
// instances
type Inspect struct {
	repo     interfaces.Repository
	registry *inspector.Registry
	defaults []inspector.Option
}

// NewInspect creates an inspect use case. The defaults apply to every
// created instance, before per-call options.
func NewInspect(repo interfaces.Repository, registry *inspector.Registry, defaults ...inspector.Option) *Inspect {
	if registry == nil {
		registry = inspector.NewRegistry()
	}
	return &Inspect{
		repo:     repo,
		registry: registry,
		defaults: defaults,
	}
}

// CreateForFinding opens an inspector on a stored finding's raw data
func (u *Inspect) CreateForFinding(ctx context.Context, id types.FindingID, opts ...inspector.Option) (*inspector.Inspector, error) {
	finding, err := u.repo.GetFinding(ctx, id)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to load finding for inspection",
			goerr.V("id", id))
	}
	return u.registry.Create(finding.Data, append(u.defaults, opts...)...), nil
}

// CreateForValue opens an inspector on an arbitrary value
func (u *Inspect) CreateForValue(ctx context.Context, value any, opts ...inspector.Option) (*inspector.Inspector, error) {
	return u.registry.Create(value, append(u.defaults, opts...)...), nil
}

// Get returns a live inspector
func (u *Inspect) Get(ctx context.Context, id types.InspectorID) (*inspector.Inspector, error) {
	return u.registry.Get(id)
}

// Remove closes and removes an inspector
func (u *Inspect) Remove(ctx context.Context, id types.InspectorID) error {
	return u.registry.Remove(id)
}

// Close closes every live inspector
func (u *Inspect) Close() {
	u.registry.Close()
}
