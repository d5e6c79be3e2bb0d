package repository

import (
	"context"
	"sync"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/panoptes/pkg/domain/interfaces"
	"github.com/secmon-lab/panoptes/pkg/domain/model"
	"github.com/secmon-lab/panoptes/pkg/domain/types"
)

// Memory implements Repository interface with in-memory storage.
// Findings live only for the process lifetime; insertion order is
// preserved so the dashboard reflects ingest order.
type Memory struct {
	mu       sync.RWMutex
	findings map[types.FindingID]*model.Finding
	order    []types.FindingID
}

// NewMemory creates a new memory repository
func NewMemory() interfaces.Repository {
	return &Memory{
		findings: make(map[types.FindingID]*model.Finding),
	}
}

// PutFinding stores a finding, replacing any existing entry with the same ID
func (m *Memory) PutFinding(ctx context.Context, finding *model.Finding) error {
	if finding == nil {
		return goerr.New("finding is nil")
	}
	if err := finding.Validate(); err != nil {
		return goerr.Wrap(err, "invalid finding")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.findings[finding.ID]; !exists {
		m.order = append(m.order, finding.ID)
	}

	// Store a copy to prevent external modification
	findingCopy := *finding
	m.findings[finding.ID] = &findingCopy
	return nil
}

// GetFinding retrieves a finding by ID
func (m *Memory) GetFinding(ctx context.Context, id types.FindingID) (*model.Finding, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	finding, exists := m.findings[id]
	if !exists {
		return nil, goerr.Wrap(model.ErrFindingNotFound, "finding not found",
			goerr.V("id", id))
	}

	findingCopy := *finding
	return &findingCopy, nil
}

// ListFindings lists all findings in insertion order
func (m *Memory) ListFindings(ctx context.Context) ([]*model.Finding, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	findings := make([]*model.Finding, 0, len(m.order))
	for _, id := range m.order {
		findingCopy := *m.findings[id]
		findings = append(findings, &findingCopy)
	}

	return findings, nil
}

// Close closes the repository (no-op for memory)
func (m *Memory) Close() error {
	return nil
}
