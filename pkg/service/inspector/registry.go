package inspector

import (
	"sync"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/panoptes/pkg/domain/model"
	"github.com/secmon-lab/panoptes/pkg/domain/types"
)

// Registry tracks live inspector instances by ID so HTTP clients can
// address them across requests. Removing an instance closes it.
type Registry struct {
	mu         sync.Mutex
	inspectors map[types.InspectorID]*Inspector
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		inspectors: make(map[types.InspectorID]*Inspector),
	}
}

// Create builds a new inspector and registers it
func (r *Registry) Create(value any, opts ...Option) *Inspector {
	x := New(value, opts...)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.inspectors[x.ID()] = x
	return x
}

// Get returns the inspector with the given ID
func (r *Registry) Get(id types.InspectorID) (*Inspector, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	x, exists := r.inspectors[id]
	if !exists {
		return nil, goerr.Wrap(model.ErrInspectorNotFound, "inspector not found",
			goerr.V("id", id))
	}
	return x, nil
}

// Remove closes and unregisters the inspector with the given ID
func (r *Registry) Remove(id types.InspectorID) error {
	r.mu.Lock()
	x, exists := r.inspectors[id]
	delete(r.inspectors, id)
	r.mu.Unlock()

	if !exists {
		return goerr.Wrap(model.ErrInspectorNotFound, "inspector not found",
			goerr.V("id", id))
	}

	x.Close()
	return nil
}

// Len returns the number of live inspectors
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.inspectors)
}

// Close closes every registered inspector
func (r *Registry) Close() {
	r.mu.Lock()
	inspectors := make([]*Inspector, 0, len(r.inspectors))
	for _, x := range r.inspectors {
		inspectors = append(inspectors, x)
	}
	r.inspectors = make(map[types.InspectorID]*Inspector)
	r.mu.Unlock()

	for _, x := range inspectors {
		x.Close()
	}
}
