package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"goodcents/internal/core"
	"goodcents/internal/store"
)

func TestMemoryStoreSingletons(t *testing.T) {
	s := New()
	ctx := context.Background()

	_, err := s.GetPlayer(ctx)
	assert.ErrorIs(t, err, store.ErrNotFound)

	require.NoError(t, s.SavePlayer(ctx, core.Player{Name: "Player 1", Spending: 200}))
	require.NoError(t, s.SaveJob(ctx, core.Job{PromotionProgress: 30}))
	require.NoError(t, s.SaveTime(ctx, core.NewTime()))

	p, err := s.GetPlayer(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Player 1", p.Name)

	j, err := s.GetJob(ctx)
	require.NoError(t, err)
	assert.Equal(t, 30, j.PromotionProgress)

	flags, err := s.GetFlags(ctx)
	require.NoError(t, err)
	assert.Equal(t, core.GameSessionFlags{}, flags)
}

func TestMemoryStoreTransactionSequence(t *testing.T) {
	s := New()
	ctx := context.Background()

	a, err := s.AppendTransaction(ctx, core.Transaction{ID: "a", Account: "Savings", Value: 1})
	require.NoError(t, err)
	b, err := s.AppendTransaction(ctx, core.Transaction{ID: "b", Account: "Savings", Value: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(1), a.Seq)
	assert.Equal(t, int64(2), b.Seq)

	txs, err := s.ListTransactions(ctx)
	require.NoError(t, err)
	assert.Len(t, txs, 2)

	// mutating the returned slice must not leak into the store
	txs[0].Value = 99
	again, _ := s.ListTransactions(ctx)
	assert.Equal(t, 1.0, again[0].Value)
}

func TestMemoryStoreItemsAndLessons(t *testing.T) {
	s := New()
	ctx := context.Background()

	require.NoError(t, s.SaveOwnedItem(ctx, core.OwnedItem{Name: "Bike", Quantity: 1}))
	require.NoError(t, s.SaveOwnedItem(ctx, core.OwnedItem{Name: "Bike", Quantity: 2}))
	items, _ := s.ListOwnedItems(ctx)
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)

	require.NoError(t, s.DeleteOwnedItem(ctx, "Bike"))
	assert.ErrorIs(t, s.DeleteOwnedItem(ctx, "Bike"), store.ErrNotFound)

	require.NoError(t, s.SaveCompletedLesson(ctx, core.CompletedLesson{LessonID: 3, Title: "Budgets"}))
	require.NoError(t, s.SaveCompletedLesson(ctx, core.CompletedLesson{LessonID: 3, Title: "Budgets", AllCorrect: true}))
	lessons, _ := s.ListCompletedLessons(ctx)
	require.Len(t, lessons, 1)
	assert.True(t, lessons[0].AllCorrect)
}

func TestMemoryStoreAtomicRollback(t *testing.T) {
	s := New()
	ctx := context.Background()
	require.NoError(t, s.SavePlayer(ctx, core.Player{Spending: 200}))

	boom := errors.New("boom")
	err := s.Atomic(ctx, func(tx store.Store) error {
		require.NoError(t, tx.SavePlayer(ctx, core.Player{Spending: 0}))
		_, err := tx.AppendTransaction(ctx, core.Transaction{ID: "x"})
		require.NoError(t, err)
		return boom
	})
	assert.ErrorIs(t, err, boom)

	p, _ := s.GetPlayer(ctx)
	assert.Equal(t, 200.0, p.Spending)
	txs, _ := s.ListTransactions(ctx)
	assert.Empty(t, txs)

	require.NoError(t, s.Atomic(ctx, func(tx store.Store) error {
		return tx.SavePlayer(ctx, core.Player{Spending: 50})
	}))
	p, _ = s.GetPlayer(ctx)
	assert.Equal(t, 50.0, p.Spending)
}

func TestMemoryStoreResetAll(t *testing.T) {
	s := New()
	ctx := context.Background()
	require.NoError(t, s.SavePlayer(ctx, core.Player{Spending: 200}))
	require.NoError(t, s.SaveFlags(ctx, core.GameSessionFlags{IsInitialised: true, CurrentPage: 3}))
	_, _ = s.AppendTransaction(ctx, core.Transaction{ID: "a"})

	require.NoError(t, s.ResetAll(ctx))

	_, err := s.GetPlayer(ctx)
	assert.ErrorIs(t, err, store.ErrNotFound)
	flags, _ := s.GetFlags(ctx)
	assert.Equal(t, core.GameSessionFlags{}, flags)
	txs, _ := s.ListTransactions(ctx)
	assert.Empty(t, txs)
}
