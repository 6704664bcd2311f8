package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"goodcents/internal/core"
	"goodcents/internal/store"
)

func newTestRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	repo, err := NewSQLiteRepository(filepath.Join(t.TempDir(), "game.db"))
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	return repo
}

func TestSQLiteRepository_Singletons(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	_, err := repo.GetPlayer(ctx)
	assert.ErrorIs(t, err, store.ErrNotFound)
	_, err = repo.GetJob(ctx)
	assert.ErrorIs(t, err, store.ErrNotFound)

	flags, err := repo.GetFlags(ctx)
	require.NoError(t, err)
	assert.Equal(t, core.GameSessionFlags{}, flags)

	player := core.Player{Name: "Player 1", Spending: 200, Savings: 500, Retirement: 250, WeeklyExpenses: 901.5}
	require.NoError(t, repo.SavePlayer(ctx, player))
	player.Spending = 175.25
	require.NoError(t, repo.SavePlayer(ctx, player))
	got, err := repo.GetPlayer(ctx)
	require.NoError(t, err)
	assert.Equal(t, player, got)

	require.NoError(t, repo.SaveJob(ctx, core.Job{PromotionProgress: 75}))
	job, err := repo.GetJob(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, job.Level())

	require.NoError(t, repo.SaveTime(ctx, core.Time{Week: 3, Month: 11, Year: 2}))
	tm, err := repo.GetTime(ctx)
	require.NoError(t, err)
	assert.Equal(t, core.Time{Week: 3, Month: 11, Year: 2}, tm)

	want := core.GameSessionFlags{DoneThisWeeksQuiz: true, WithdrawnThisMonth: true, CurrentPage: 2, IsInitialised: true}
	require.NoError(t, repo.SaveFlags(ctx, want))
	flags, err = repo.GetFlags(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, flags)
}

func TestSQLiteRepository_Transactions(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	ts := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	a, err := repo.AppendTransaction(ctx, core.Transaction{ID: "a", Account: "Savings", Description: "Interest", Value: 1.875, Timestamp: ts, BalanceAfter: 501.875})
	require.NoError(t, err)
	b, err := repo.AppendTransaction(ctx, core.Transaction{ID: "b", Account: "Everyday Spending", Description: "Weekly Income", Value: 950.24, Timestamp: ts, BalanceAfter: 1150.24})
	require.NoError(t, err)
	assert.Less(t, a.Seq, b.Seq)

	txs, err := repo.ListTransactions(ctx)
	require.NoError(t, err)
	require.Len(t, txs, 2)
	assert.Equal(t, "a", txs[0].ID)
	assert.True(t, txs[0].Timestamp.Equal(ts))
	assert.Equal(t, 501.875, txs[0].BalanceAfter)

	_, err = repo.AppendTransaction(ctx, core.Transaction{ID: "a", Account: "Savings", Timestamp: ts})
	assert.Error(t, err, "duplicate ids must be rejected")
}

func TestSQLiteRepository_ItemsAndLessons(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.SaveOwnedItem(ctx, core.OwnedItem{Name: "Bike", Icon: "bicycle", Price: 300, Value: 150, IsSellable: true, Quantity: 1}))
	require.NoError(t, repo.SaveOwnedItem(ctx, core.OwnedItem{Name: "Lamp", Price: 40, Value: 10, Quantity: 1}))
	require.NoError(t, repo.SaveOwnedItem(ctx, core.OwnedItem{Name: "Bike", Icon: "bicycle", Price: 300, Value: 150, IsSellable: true, Quantity: 2}))

	items, err := repo.ListOwnedItems(ctx)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Bike", items[0].Name)
	assert.Equal(t, 2, items[0].Quantity)
	assert.True(t, items[0].IsSellable)

	require.NoError(t, repo.DeleteOwnedItem(ctx, "Lamp"))
	assert.ErrorIs(t, repo.DeleteOwnedItem(ctx, "Lamp"), store.ErrNotFound)
	_, err = repo.GetOwnedItem(ctx, "Lamp")
	assert.ErrorIs(t, err, store.ErrNotFound)

	require.NoError(t, repo.SaveCompletedLesson(ctx, core.CompletedLesson{LessonID: 2, Title: "Saving"}))
	got, err := repo.GetCompletedLesson(ctx, 2)
	require.NoError(t, err)
	assert.False(t, got.AllCorrect)
}

func TestSQLiteRepository_AtomicRollback(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	require.NoError(t, repo.SavePlayer(ctx, core.Player{Name: "P", Spending: 200}))

	boom := errors.New("boom")
	err := repo.Atomic(ctx, func(tx store.Store) error {
		require.NoError(t, tx.SavePlayer(ctx, core.Player{Name: "P", Spending: 0}))
		_, err := tx.AppendTransaction(ctx, core.Transaction{ID: "x", Account: "Everyday Spending", Timestamp: time.Now()})
		require.NoError(t, err)
		return boom
	})
	assert.ErrorIs(t, err, boom)

	p, err := repo.GetPlayer(ctx)
	require.NoError(t, err)
	assert.Equal(t, 200.0, p.Spending)
	txs, err := repo.ListTransactions(ctx)
	require.NoError(t, err)
	assert.Empty(t, txs)
}

func TestSQLiteRepository_ResetAll(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	require.NoError(t, repo.SavePlayer(ctx, core.Player{Name: "P"}))
	require.NoError(t, repo.SaveFlags(ctx, core.GameSessionFlags{IsInitialised: true}))
	_, err := repo.AppendTransaction(ctx, core.Transaction{ID: "x", Account: "Savings", Timestamp: time.Now()})
	require.NoError(t, err)

	require.NoError(t, repo.ResetAll(ctx))

	_, err = repo.GetPlayer(ctx)
	assert.ErrorIs(t, err, store.ErrNotFound)
	flags, err := repo.GetFlags(ctx)
	require.NoError(t, err)
	assert.False(t, flags.IsInitialised)
	txs, err := repo.ListTransactions(ctx)
	require.NoError(t, err)
	assert.Empty(t, txs)
}

func TestRunMigrationsIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "twice.db")
	require.NoError(t, RunMigrations(path))
	require.NoError(t, RunMigrations(path))
}
