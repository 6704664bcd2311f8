package services

import (
	"context"
	"time"
)

// Countdown waits for Total, calling a tick callback every Step with the
// time left. It never touches game state, so cancelling it is always safe.
type Countdown struct {
	Total time.Duration
	Step  time.Duration
}

// Run blocks until the countdown ends or ctx is done, in which case it
// returns ctx.Err().
func (c Countdown) Run(ctx context.Context, tick func(remaining time.Duration)) error {
	if c.Total <= 0 {
		return ctx.Err()
	}
	step := c.Step
	if step <= 0 || step > c.Total {
		step = c.Total
	}

	deadline := time.NewTimer(c.Total)
	defer deadline.Stop()
	ticker := time.NewTicker(step)
	defer ticker.Stop()

	remaining := c.Total
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-deadline.C:
			if tick != nil {
				tick(0)
			}
			return nil
		case <-ticker.C:
			remaining -= step
			if remaining > 0 && tick != nil {
				tick(remaining)
			}
		}
	}
}
