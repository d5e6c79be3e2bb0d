package interfaces

import (
	"context"

	"github.com/secmon-lab/panoptes/pkg/domain/model"
	"github.com/secmon-lab/panoptes/pkg/domain/types"
)

// Repository defines the interface for the findings store
type Repository interface {
	// Finding operations
	PutFinding(ctx context.Context, finding *model.Finding) error
	GetFinding(ctx context.Context, id types.FindingID) (*model.Finding, error)
	ListFindings(ctx context.Context) ([]*model.Finding, error)

	// Close closes the repository
	Close() error
}
