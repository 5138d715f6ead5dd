// Package clock holds the waits the follower loop and the block signal use between iterations.
package clock

import (
	"context"
	"time"
)

// SleepWithContext waits for d or returns the context error if ctx ends first.
func SleepWithContext(ctx context.Context, d time.Duration) error {
	_, err := WaitForSignal(ctx, d, nil)
	return err
}

// WaitForSignal waits until signal fires, d elapses or ctx ends, whichever comes first. signaled
// reports whether the wait ended because of signal. A nil signal never fires.
func WaitForSignal(ctx context.Context, d time.Duration, signal <-chan struct{}) (signaled bool, err error) {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false, ctx.Err()
	case <-signal:
		return true, nil
	case <-timer.C:
		return false, nil
	}
}
