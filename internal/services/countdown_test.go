package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"goodcents/internal/core"
)

func TestCountdown_Completes(t *testing.T) {
	var ticks []time.Duration
	c := Countdown{Total: 30 * time.Millisecond, Step: 10 * time.Millisecond}

	err := c.Run(context.Background(), func(remaining time.Duration) {
		ticks = append(ticks, remaining)
	})
	require.NoError(t, err)
	require.NotEmpty(t, ticks)
	assert.Equal(t, time.Duration(0), ticks[len(ticks)-1])
}

func TestCountdown_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Countdown{Total: time.Hour, Step: time.Second}.Run(ctx, nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestResultsCountdown_CancelLeavesStateAlone(t *testing.T) {
	f := newFixture(t)
	f.seed(t, startingPlayer())

	assert.Equal(t, 10*time.Second, f.game.countdown(true).Total)
	assert.Equal(t, 6*time.Second, f.game.countdown(false).Total)

	ctx, cancel := context.WithTimeout(f.ctx, 20*time.Millisecond)
	defer cancel()
	err := f.game.ResultsCountdown(ctx, true, nil)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	assert.Equal(t, startingPlayer(), f.player(t))
	assert.Empty(t, f.transactions(t))
	assert.Equal(t, core.GameSessionFlags{IsInitialised: true}, f.flags(t))
}
