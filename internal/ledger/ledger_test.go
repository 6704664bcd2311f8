package ledger

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"goodcents/internal/core"
	"goodcents/internal/store/memory"
)

func TestRecordStampsAndLabels(t *testing.T) {
	st := memory.New()
	clock := NewFakeClock(time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC))
	l := New(st, clock)
	ctx := context.Background()

	tx, err := l.Record(ctx, core.Spending, "Weekly Income", 950.24, 1150.24)
	require.NoError(t, err)
	assert.NotEmpty(t, tx.ID)
	assert.Equal(t, "Everyday Spending", tx.Account)
	assert.Equal(t, clock.Now(), tx.Timestamp)
	assert.Equal(t, int64(1), tx.Seq)
	assert.Equal(t, 1150.24, tx.BalanceAfter)
}

func TestEntriesForNewestFirst(t *testing.T) {
	st := memory.New()
	clock := NewFakeClock(time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC))
	l := New(st, clock)
	ctx := context.Background()

	_, err := l.Record(ctx, core.Spending, "first", 10, 210)
	require.NoError(t, err)
	// same timestamp: sequence breaks the tie
	_, err = l.Record(ctx, core.Spending, "second", -5, 205)
	require.NoError(t, err)
	_, err = l.Record(ctx, core.Savings, "other account", 1, 501)
	require.NoError(t, err)
	clock.Advance(time.Minute)
	_, err = l.Record(ctx, core.Spending, "third", 20, 225)
	require.NoError(t, err)

	entries, err := EntriesFor(ctx, st, "Everyday Spending")
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, []string{"third", "second", "first"}, []string{entries[0].Description, entries[1].Description, entries[2].Description})

	byShortName, err := EntriesFor(ctx, st, "Spending")
	require.NoError(t, err)
	assert.Equal(t, entries, byShortName)

	assert.InDelta(t, 25.0, NetChange(entries), 1e-9)
	bal, ok := LatestBalance(entries)
	assert.True(t, ok)
	assert.Equal(t, 225.0, bal)

	_, ok = LatestBalance(nil)
	assert.False(t, ok)
}
