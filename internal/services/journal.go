package services

import (
	"context"
	"errors"
	"fmt"

	"goodcents/internal/core"
	"goodcents/internal/ledger"
	"goodcents/internal/metrics"
	"goodcents/internal/store"
)

// journal collects the ledger entries written inside one store transaction
// so they can be reported after it commits.
type journal struct {
	l       *ledger.Ledger
	entries []core.Transaction
}

func newJournal(tx store.Store, clock Clock) *journal {
	return &journal{l: ledger.New(tx, clock)}
}

func (j *journal) record(ctx context.Context, a core.Account, description string, amount, balanceAfter float64) error {
	entry, err := j.l.Record(ctx, a, description, amount, balanceAfter)
	if err != nil {
		return err
	}
	j.entries = append(j.entries, entry)
	return nil
}

// observe publishes the committed state to the metrics recorder.
func observe(m *metrics.Recorder, p core.Player, entries []core.Transaction) {
	for _, e := range entries {
		m.TransactionRecorded(e.Account)
	}
	for _, a := range core.Accounts() {
		m.SetBalance(string(a), p.Balance(a))
	}
}

func loadPlayer(ctx context.Context, s store.PlayerStore) (core.Player, error) {
	p, err := s.GetPlayer(ctx)
	if errors.Is(err, store.ErrNotFound) {
		return core.Player{}, core.ErrNotInitialised
	}
	if err != nil {
		return core.Player{}, fmt.Errorf("load player: %w", err)
	}
	return p, nil
}

func loadJob(ctx context.Context, s store.JobStore) (core.Job, error) {
	j, err := s.GetJob(ctx)
	if errors.Is(err, store.ErrNotFound) {
		return core.Job{}, core.ErrNotInitialised
	}
	if err != nil {
		return core.Job{}, fmt.Errorf("load job: %w", err)
	}
	return j, nil
}

func loadTime(ctx context.Context, s store.TimeStore) (core.Time, error) {
	t, err := s.GetTime(ctx)
	if errors.Is(err, store.ErrNotFound) {
		return core.Time{}, core.ErrNotInitialised
	}
	if err != nil {
		return core.Time{}, fmt.Errorf("load time: %w", err)
	}
	return t, nil
}

func loadFlags(ctx context.Context, s store.FlagStore) (core.GameSessionFlags, error) {
	f, err := s.GetFlags(ctx)
	if err != nil {
		return core.GameSessionFlags{}, fmt.Errorf("load flags: %w", err)
	}
	return f, nil
}

// userError reports whether err is a recoverable rejection rather than an
// infrastructure failure.
func userError(err error) bool {
	for _, target := range []error{
		core.ErrInvalidAmount, core.ErrSameAccount, core.ErrInsufficientFunds,
		core.ErrUnknownAccount, core.ErrItemNotFound, core.ErrItemNotSellable,
		core.ErrNotInitialised, core.ErrAlreadyInitialised, core.ErrWeekNotFinished, core.ErrAlreadyDone,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
