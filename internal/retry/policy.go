package retry

import (
	"context"
	"fmt"
	"time"
)

// Mode selects how the delay grows between attempts.
type Mode string

const (
	ModeFixed       Mode = "fixed"
	ModeLinear      Mode = "linear"
	ModeExponential Mode = "exponential"
)

// maxShift bounds exponential growth so the multiplication cannot overflow.
const maxShift = 30

// Policy encapsulates backoff settings for waiting on a held page lock.
// It is immutable after construction.
type Policy struct {
	Mode    Mode
	Initial time.Duration // first delay
	Max     time.Duration // cap for growth
}

// DefaultPolicy returns exponential backoff from 10ms capped at 250ms.
func DefaultPolicy() Policy {
	return Policy{Mode: ModeExponential, Initial: 10 * time.Millisecond, Max: 250 * time.Millisecond}
}

// NewPolicy builds a policy from raw fields; zero or unknown values fall back to defaults.
func NewPolicy(mode Mode, initial, maxDelay time.Duration) Policy {
	p := DefaultPolicy()
	if initial > 0 {
		p.Initial = initial
	}
	if maxDelay > 0 {
		p.Max = maxDelay
	}
	switch mode {
	case ModeFixed, ModeLinear, ModeExponential:
		p.Mode = mode
	}
	if p.Initial > p.Max {
		p.Initial = p.Max
	}
	return p
}

// Delay returns the wait before the given retry (1-based: first retry => 1).
func (p Policy) Delay(retry int) time.Duration {
	if retry <= 0 {
		return 0
	}
	var d time.Duration
	switch p.Mode {
	case ModeFixed:
		return p.Initial
	case ModeExponential:
		d = p.Initial << min(retry-1, maxShift)
	default:
		d = time.Duration(retry) * p.Initial
	}
	if d > p.Max || d <= 0 {
		return p.Max
	}
	return d
}

// Wait sleeps for Delay(retry) or until ctx is done, whichever comes first.
func (p Policy) Wait(ctx context.Context, retry int) error {
	t := time.NewTimer(p.Delay(retry))
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Validate reports a policy that cannot be applied.
func (p Policy) Validate() error {
	if p.Initial <= 0 {
		return fmt.Errorf("initial must be >0")
	}
	if p.Max <= 0 {
		return fmt.Errorf("max must be >0")
	}
	if p.Initial > p.Max {
		return fmt.Errorf("initial %s exceeds max %s", p.Initial, p.Max)
	}
	return nil
}
