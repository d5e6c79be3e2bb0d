package inspector_test

import (
	"context"
	"testing"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/panoptes/pkg/service/clipboard"
	"github.com/secmon-lab/panoptes/pkg/service/inspector"
)

// waitCopied polls the copied indicator until it reaches want or the
// deadline passes
func waitCopied(t *testing.T, x *inspector.Inspector, want bool, timeout time.Duration) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if x.Copied() == want {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("copied did not become %v within %v", want, timeout)
}

func TestSerialize(t *testing.T) {
	t.Run("two-space indented JSON", func(t *testing.T) {
		text, err := inspector.Serialize(map[string]int{"a": 1})
		gt.NoError(t, err)
		gt.Equal(t, "{\n  \"a\": 1\n}", text)
	})

	t.Run("nil value serializes to null", func(t *testing.T) {
		text, err := inspector.Serialize(nil)
		gt.NoError(t, err)
		gt.Equal(t, "null", text)
	})

	t.Run("unserializable value fails", func(t *testing.T) {
		_, err := inspector.Serialize(make(chan int))
		gt.Error(t, err)
	})
}

func TestInspectorToggle(t *testing.T) {
	t.Run("starts collapsed by default", func(t *testing.T) {
		x := inspector.New(map[string]int{"a": 1})
		defer x.Close()
		gt.True(t, !x.Expanded())
	})

	t.Run("starts expanded when configured", func(t *testing.T) {
		x := inspector.New(nil, inspector.WithDefaultExpanded(true))
		defer x.Close()
		gt.True(t, x.Expanded())
	})

	t.Run("odd number of toggles flips state", func(t *testing.T) {
		x := inspector.New(nil)
		defer x.Close()

		gt.True(t, x.Toggle())
		gt.True(t, x.Expanded())
		gt.True(t, !x.Toggle())
		gt.True(t, x.Toggle())
		gt.True(t, x.Expanded())
	})

	t.Run("even number of toggles restores state", func(t *testing.T) {
		x := inspector.New(nil, inspector.WithDefaultExpanded(true))
		defer x.Close()

		for i := 0; i < 4; i++ {
			x.Toggle()
		}
		gt.True(t, x.Expanded())
	})
}

func TestInspectorCopy(t *testing.T) {
	ctx := context.Background()

	t.Run("copied turns on after successful write", func(t *testing.T) {
		clip := clipboard.NewMemory()
		x := inspector.New(map[string]int{"a": 1},
			inspector.WithClipboard(clip),
			inspector.WithResetAfter(time.Hour))
		defer x.Close()

		gt.True(t, !x.Copied())
		gt.NoError(t, x.Copy(ctx))
		waitCopied(t, x, true, time.Second)
		gt.Equal(t, "{\n  \"a\": 1\n}", clip.Last())
	})

	t.Run("copied resets after the configured duration", func(t *testing.T) {
		clip := clipboard.NewMemory()
		x := inspector.New("value",
			inspector.WithClipboard(clip),
			inspector.WithResetAfter(50*time.Millisecond))
		defer x.Close()

		gt.NoError(t, x.Copy(ctx))
		waitCopied(t, x, true, time.Second)
		waitCopied(t, x, false, time.Second)
	})

	t.Run("a newer copy supersedes the pending reset", func(t *testing.T) {
		clip := clipboard.NewMemory()
		x := inspector.New("value",
			inspector.WithClipboard(clip),
			inspector.WithResetAfter(300*time.Millisecond))
		defer x.Close()

		gt.NoError(t, x.Copy(ctx))
		waitCopied(t, x, true, time.Second)

		// Second copy before the first reset fires restarts the countdown
		time.Sleep(150 * time.Millisecond)
		gt.NoError(t, x.Copy(ctx))

		// Past the first deadline, within the second
		time.Sleep(220 * time.Millisecond)
		gt.True(t, x.Copied())

		waitCopied(t, x, false, time.Second)
		gt.Equal(t, 2, len(clip.Texts()))
	})

	t.Run("failed write leaves copied off", func(t *testing.T) {
		clip := clipboard.NewMemory()
		clip.Err = goerr.New("permission denied")
		x := inspector.New("value",
			inspector.WithClipboard(clip),
			inspector.WithResetAfter(50*time.Millisecond))
		defer x.Close()

		gt.NoError(t, x.Copy(ctx))
		time.Sleep(100 * time.Millisecond)
		gt.True(t, !x.Copied())
		gt.Equal(t, 0, len(clip.Texts()))
	})

	t.Run("disabled clipboard is a silent no-op", func(t *testing.T) {
		x := inspector.New("value",
			inspector.WithClipboard(clipboard.NewDisabled()),
			inspector.WithResetAfter(50*time.Millisecond))
		defer x.Close()

		gt.NoError(t, x.Copy(ctx))
		time.Sleep(100 * time.Millisecond)
		gt.True(t, !x.Copied())
	})

	t.Run("unserializable value fails synchronously", func(t *testing.T) {
		x := inspector.New(make(chan int))
		defer x.Close()
		gt.Error(t, x.Copy(ctx))
	})
}

func TestInspectorClose(t *testing.T) {
	ctx := context.Background()

	t.Run("copy after close does nothing", func(t *testing.T) {
		clip := clipboard.NewMemory()
		x := inspector.New("value", inspector.WithClipboard(clip))
		x.Close()

		gt.NoError(t, x.Copy(ctx))
		time.Sleep(50 * time.Millisecond)
		gt.True(t, !x.Copied())
		gt.Equal(t, 0, len(clip.Texts()))
	})

	t.Run("toggle after close does nothing", func(t *testing.T) {
		x := inspector.New("value")
		x.Close()
		gt.True(t, !x.Toggle())
		gt.True(t, !x.Expanded())
	})

	t.Run("close with a pending reset timer is safe", func(t *testing.T) {
		clip := clipboard.NewMemory()
		x := inspector.New("value",
			inspector.WithClipboard(clip),
			inspector.WithResetAfter(30*time.Millisecond))

		gt.NoError(t, x.Copy(ctx))
		waitCopied(t, x, true, time.Second)
		x.Close()

		// Let the abandoned timer deadline pass; nothing may fire
		time.Sleep(60 * time.Millisecond)
	})

	t.Run("write completing after close is dropped", func(t *testing.T) {
		clip := &slowClipboard{delay: 50 * time.Millisecond, inner: clipboard.NewMemory()}
		x := inspector.New("value", inspector.WithClipboard(clip))

		gt.NoError(t, x.Copy(ctx))
		x.Close()
		time.Sleep(100 * time.Millisecond)
		gt.True(t, !x.Copied())
	})
}

func TestInspectorNotify(t *testing.T) {
	t.Run("notify fires on every transition", func(t *testing.T) {
		events := make(chan struct{}, 16)
		clip := clipboard.NewMemory()
		x := inspector.New("value",
			inspector.WithClipboard(clip),
			inspector.WithResetAfter(30*time.Millisecond),
			inspector.WithNotify(func() { events <- struct{}{} }))
		defer x.Close()

		x.Toggle()
		gt.NoError(t, x.Copy(context.Background()))

		// toggle + copied-on + copied-off
		for i := 0; i < 3; i++ {
			select {
			case <-events:
			case <-time.After(time.Second):
				t.Fatalf("missing notify event %d", i)
			}
		}
	})
}

// slowClipboard delays the inner write to race against Close
type slowClipboard struct {
	delay time.Duration
	inner *clipboard.Memory
}

func (c *slowClipboard) Write(ctx context.Context, text string) error {
	time.Sleep(c.delay)
	return c.inner.Write(ctx, text)
}
