package translator

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// Failure taxonomy for a translation attempt. All five are terminal for the
// surrounding download; nothing is retried at this level. Backends wrap these
// with %w so errors.Is works through the batch and download layers.
var (
	ErrNetwork         = errors.New("translation request failed")
	ErrTimeout         = errors.New("translation request timed out")
	ErrInvalidResponse = errors.New("invalid translation response")
	ErrQuotaExceeded   = errors.New("translation quota exceeded")
	ErrCancelled       = errors.New("download cancelled")
)

// classifyTransportError maps an http.Client / RPC transport failure onto the
// package taxonomy.
func classifyTransportError(err error) error {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}
	if errors.Is(err, context.Canceled) {
		return fmt.Errorf("%w: %v", ErrCancelled, err)
	}
	return fmt.Errorf("%w: %v", ErrNetwork, err)
}
