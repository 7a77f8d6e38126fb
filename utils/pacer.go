package utils

import (
	"context"
	"time"
)

// Pacing describes fixed-delay throttling: after every BatchSize operations
// the caller pauses for Delay.
type Pacing struct {
	BatchSize int
	Delay     time.Duration
}

// Pacer applies a Pacing to one loop of platform calls
type Pacer struct {
	pacing Pacing
	done   int
}

// NewPacer creates a pacer for a single loop
func NewPacer(pacing Pacing) *Pacer {
	if pacing.BatchSize <= 0 {
		pacing.BatchSize = 1
	}
	return &Pacer{pacing: pacing}
}

// Wait must be called before each paced operation. It sleeps when the
// previous batch is complete and returns early if ctx is cancelled.
func (p *Pacer) Wait(ctx context.Context) error {
	defer func() { p.done++ }()

	if p.done == 0 || p.done%p.pacing.BatchSize != 0 || p.pacing.Delay <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(p.pacing.Delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Done returns how many operations have been paced so far
func (p *Pacer) Done() int {
	return p.done
}
