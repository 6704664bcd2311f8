package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"goodcents/internal/config"
	"goodcents/internal/content"
	"goodcents/internal/core"
	"goodcents/internal/ledger"
	"goodcents/internal/metrics"
	"goodcents/internal/store"
	"goodcents/internal/store/memory"
)

// scriptedRand replays fixed draws. Once a script runs out it keeps
// returning its last value, or zero for an empty script.
type scriptedRand struct {
	floats []float64
	ints   []int
	fi, ii int
}

func (r *scriptedRand) Float64() float64 {
	if len(r.floats) == 0 {
		return 0
	}
	v := r.floats[min(r.fi, len(r.floats)-1)]
	r.fi++
	return v
}

func (r *scriptedRand) IntN(n int) int {
	if len(r.ints) == 0 {
		return 0
	}
	v := r.ints[min(r.ii, len(r.ints)-1)]
	r.ii++
	return v % n
}

func (r *scriptedRand) Shuffle(int, func(i, j int)) {}

var testStart = time.Date(2025, 1, 6, 9, 0, 0, 0, time.UTC)

type fixture struct {
	ctx     context.Context
	store   *memory.Store
	clock   *ledger.FakeClock
	rand    *scriptedRand
	rules   config.Rules
	content *content.Bundle
	metrics *metrics.Recorder
	game    *GameService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	bundle, err := content.LoadDefault(ctx)
	require.NoError(t, err)

	f := &fixture{
		ctx:     ctx,
		store:   memory.New(),
		clock:   ledger.NewFakeClock(testStart),
		rand:    &scriptedRand{},
		rules:   config.DefaultRules(),
		content: bundle,
		metrics: metrics.New(),
	}
	f.game = NewGameService(Deps{
		Store:   f.store,
		Clock:   f.clock,
		Rules:   f.rules,
		Content: f.content,
		Rand:    f.rand,
		Metrics: f.metrics,
	})
	return f
}

// seed writes a started game with the given player.
func (f *fixture) seed(t *testing.T, p core.Player) {
	t.Helper()
	require.NoError(t, f.store.Atomic(f.ctx, func(tx store.Store) error {
		if err := tx.SavePlayer(f.ctx, p); err != nil {
			return err
		}
		if err := tx.SaveJob(f.ctx, core.Job{}); err != nil {
			return err
		}
		if err := tx.SaveTime(f.ctx, core.NewTime()); err != nil {
			return err
		}
		return tx.SaveFlags(f.ctx, core.GameSessionFlags{IsInitialised: true})
	}))
}

// newWeek clears the weekly task flags without advancing time.
func (f *fixture) newWeek(t *testing.T) {
	t.Helper()
	fl := f.flags(t)
	require.NoError(t, f.store.SaveFlags(f.ctx, fl.ResetWeek()))
}

func (f *fixture) player(t *testing.T) core.Player {
	t.Helper()
	p, err := f.store.GetPlayer(f.ctx)
	require.NoError(t, err)
	return p
}

func (f *fixture) flags(t *testing.T) core.GameSessionFlags {
	t.Helper()
	fl, err := f.store.GetFlags(f.ctx)
	require.NoError(t, err)
	return fl
}

func (f *fixture) transactions(t *testing.T) []core.Transaction {
	t.Helper()
	txs, err := f.store.ListTransactions(f.ctx)
	require.NoError(t, err)
	return txs
}

func startingPlayer() core.Player {
	return core.Player{Name: "Player 1", Spending: 200, Savings: 500, Retirement: 250, WeeklyExpenses: 900}
}

func ptr[T any](v T) *T { return &v }
