// Package clipboard provides Clipboard implementations for the
// inspector widget's copy action.
package clipboard

import (
	"context"
	"sync"

	atotto "github.com/atotto/clipboard"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/panoptes/pkg/domain/interfaces"
)

// ErrUnavailable is returned when no clipboard backend is usable
var ErrUnavailable = goerr.New("clipboard is unavailable")

// System writes to the host system clipboard
type System struct{}

// NewSystem creates a system clipboard writer
func NewSystem() interfaces.Clipboard {
	return &System{}
}

// Write places text into the system clipboard
func (s *System) Write(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return goerr.Wrap(err, "clipboard write cancelled")
	}
	if atotto.Unsupported {
		return ErrUnavailable
	}
	if err := atotto.WriteAll(text); err != nil {
		return goerr.Wrap(err, "failed to write to system clipboard")
	}
	return nil
}

// Memory records writes in memory. Used in tests and anywhere a real
// clipboard is not wanted.
type Memory struct {
	mu    sync.Mutex
	texts []string

	// Err, when set, is returned by Write instead of recording
	Err error
}

// NewMemory creates an in-memory clipboard
func NewMemory() *Memory {
	return &Memory{}
}

// Write records the text
func (m *Memory) Write(ctx context.Context, text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Err != nil {
		return m.Err
	}
	m.texts = append(m.texts, text)
	return nil
}

// Texts returns all recorded writes
func (m *Memory) Texts() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.texts...)
}

// Last returns the most recent write, or empty string
func (m *Memory) Last() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.texts) == 0 {
		return ""
	}
	return m.texts[len(m.texts)-1]
}

// Disabled rejects every write. The copy affordance degrades to a
// silent no-op.
type Disabled struct{}

// NewDisabled creates a clipboard that always fails
func NewDisabled() interfaces.Clipboard {
	return &Disabled{}
}

// Write always returns ErrUnavailable
func (d *Disabled) Write(ctx context.Context, text string) error {
	return ErrUnavailable
}
