// Package inspector implements the raw JSON inspector widget: a
// collapsible, copyable view of an arbitrary structured value.
package inspector

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/panoptes/pkg/domain/interfaces"
	"github.com/secmon-lab/panoptes/pkg/domain/types"
	"github.com/secmon-lab/panoptes/pkg/service/clipboard"
	"github.com/secmon-lab/panoptes/pkg/utils/async"
)

const (
	// DefaultMaxHeight is the scroll region cap in pixels
	DefaultMaxHeight = 400

	// DefaultResetAfter is how long the copied indicator stays on
	DefaultResetAfter = 2000 * time.Millisecond
)

// Serialize renders a value as 2-space indented JSON, the exact text
// the copy action places on the clipboard
func Serialize(v any) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", goerr.Wrap(err, "failed to serialize inspector value")
	}
	return string(data), nil
}

// Inspector owns the UI state of one mounted inspector instance:
// expanded/collapsed and the transient copied indicator. Instances are
// independent; state is private to each.
type Inspector struct {
	id    types.InspectorID
	value any

	mu       sync.Mutex
	expanded bool
	copied   bool
	copySeq  uint64
	timer    *time.Timer
	closed   bool

	clip       interfaces.Clipboard
	maxHeight  int
	resetAfter time.Duration
	notify     func()
}

// Option configures an Inspector
type Option func(*Inspector)

// WithDefaultExpanded sets the initial expanded state
func WithDefaultExpanded(expanded bool) Option {
	return func(x *Inspector) {
		x.expanded = expanded
	}
}

// WithMaxHeight caps the expanded scroll region in pixels
func WithMaxHeight(px int) Option {
	return func(x *Inspector) {
		if px > 0 {
			x.maxHeight = px
		}
	}
}

// WithResetAfter sets how long the copied indicator stays on
func WithResetAfter(d time.Duration) Option {
	return func(x *Inspector) {
		if d > 0 {
			x.resetAfter = d
		}
	}
}

// WithClipboard sets the clipboard backend
func WithClipboard(clip interfaces.Clipboard) Option {
	return func(x *Inspector) {
		if clip != nil {
			x.clip = clip
		}
	}
}

// WithNotify registers a callback invoked after every state change.
// The callback runs without the instance lock held.
func WithNotify(fn func()) Option {
	return func(x *Inspector) {
		x.notify = fn
	}
}

// New creates an inspector for the given value. The value itself is
// never mutated; the inspector only serializes it.
func New(value any, opts ...Option) *Inspector {
	x := &Inspector{
		id:         types.NewInspectorID(),
		value:      value,
		clip:       clipboard.NewSystem(),
		maxHeight:  DefaultMaxHeight,
		resetAfter: DefaultResetAfter,
	}
	for _, opt := range opts {
		opt(x)
	}
	return x
}

// ID returns the instance identifier
func (x *Inspector) ID() types.InspectorID {
	return x.id
}

// Value returns the inspected value
func (x *Inspector) Value() any {
	return x.value
}

// MaxHeight returns the scroll region cap in pixels
func (x *Inspector) MaxHeight() int {
	return x.maxHeight
}

// Expanded reports whether the panel is expanded
func (x *Inspector) Expanded() bool {
	x.mu.Lock()
	defer x.mu.Unlock()
	return x.expanded
}

// Copied reports whether the copied indicator is on
func (x *Inspector) Copied() bool {
	x.mu.Lock()
	defer x.mu.Unlock()
	return x.copied
}

// Toggle flips the expanded state and returns the new value
func (x *Inspector) Toggle() bool {
	x.mu.Lock()
	if x.closed {
		expanded := x.expanded
		x.mu.Unlock()
		return expanded
	}
	x.expanded = !x.expanded
	expanded := x.expanded
	fn := x.notify
	x.mu.Unlock()

	if fn != nil {
		fn()
	}
	return expanded
}

// Copy serializes the value and writes it to the clipboard in the
// background. The copied indicator turns on only after the write is
// observed to succeed, stays on for the reset duration, and a newer
// copy supersedes the pending reset. A failed write changes nothing.
func (x *Inspector) Copy(ctx context.Context) error {
	text, err := Serialize(x.value)
	if err != nil {
		return err
	}

	x.mu.Lock()
	if x.closed {
		x.mu.Unlock()
		return nil
	}
	clip := x.clip
	x.mu.Unlock()

	async.Dispatch(ctx, func(ctx context.Context) error {
		if err := clip.Write(ctx, text); err != nil {
			return goerr.Wrap(err, "clipboard write failed",
				goerr.V("inspector", x.id))
		}
		x.markCopied()
		return nil
	})

	return nil
}

// markCopied turns the indicator on and (re)arms the reset timer. The
// sequence counter lets a newer copy invalidate an older timer that
// has already fired but not yet taken the lock.
func (x *Inspector) markCopied() {
	x.mu.Lock()
	if x.closed {
		x.mu.Unlock()
		return
	}

	x.copied = true
	x.copySeq++
	seq := x.copySeq

	if x.timer != nil {
		x.timer.Stop()
	}
	x.timer = time.AfterFunc(x.resetAfter, func() {
		x.expireCopied(seq)
	})

	fn := x.notify
	x.mu.Unlock()

	if fn != nil {
		fn()
	}
}

func (x *Inspector) expireCopied(seq uint64) {
	x.mu.Lock()
	if x.closed || seq != x.copySeq || !x.copied {
		x.mu.Unlock()
		return
	}
	x.copied = false
	fn := x.notify
	x.mu.Unlock()

	if fn != nil {
		fn()
	}
}

// Close tears the instance down. Pending timers and in-flight clipboard
// writes become no-ops; they never touch a closed instance.
func (x *Inspector) Close() {
	x.mu.Lock()
	defer x.mu.Unlock()

	x.closed = true
	if x.timer != nil {
		x.timer.Stop()
		x.timer = nil
	}
}
