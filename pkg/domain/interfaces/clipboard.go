package interfaces

import "context"

// Clipboard writes text to the host environment's copy/paste buffer.
// Write may fail (headless host, unsupported platform); callers treat
// a failure as a silent no-op.
type Clipboard interface {
	Write(ctx context.Context, text string) error
}
