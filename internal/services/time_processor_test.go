package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"goodcents/internal/core"
)

func TestTimeProcessor_AdvanceWeek(t *testing.T) {
	f := newFixture(t)
	f.seed(t, startingPlayer())

	summary, err := f.game.Time.AdvanceWeek(f.ctx)
	require.NoError(t, err)

	assert.Equal(t, core.Time{Week: 2, Month: 1, Year: 1}, summary.Time)
	assert.False(t, summary.MonthRolled)
	assert.Equal(t, 950.24, summary.Income)
	assert.Equal(t, 900.0, summary.Expenses)

	p := f.player(t)
	assert.InDelta(t, 250.24, p.Spending, 1e-9)
	assert.Equal(t, 500.0, p.Savings)

	txs := f.transactions(t)
	require.Len(t, txs, 2)
	assert.Equal(t, "Weekly Income", txs[0].Description)
	assert.Equal(t, 950.24, txs[0].Value)
	assert.InDelta(t, 1150.24, txs[0].BalanceAfter, 1e-9)
	assert.Equal(t, "Weekly Expenses", txs[1].Description)
	assert.Equal(t, -900.0, txs[1].Value)
	assert.Equal(t, p.Spending, txs[1].BalanceAfter)

	now, err := f.store.GetTime(f.ctx)
	require.NoError(t, err)
	assert.Equal(t, summary.Time, now)
}

func TestTimeProcessor_YearRollover(t *testing.T) {
	f := newFixture(t)
	f.seed(t, startingPlayer())
	require.NoError(t, f.store.SaveTime(f.ctx, core.Time{Week: 4, Month: 12, Year: 1}))
	f.rand.floats = []float64{0.5, 0.25}

	summary, err := f.game.Time.AdvanceWeek(f.ctx)
	require.NoError(t, err)

	assert.Equal(t, core.Time{Week: 1, Month: 1, Year: 2}, summary.Time)
	assert.True(t, summary.MonthRolled)
	assert.InDelta(t, 1.875, summary.SavingsChange, 1e-9)
	assert.InDelta(t, 250*0.0064583333, summary.RetirementChange, 1e-9)
	assert.InDelta(t, 0.24, summary.ExpensesChange, 1e-9)

	p := f.player(t)
	assert.InDelta(t, 501.875, p.Savings, 1e-9)
	assert.InDelta(t, 900.24, p.WeeklyExpenses, 1e-9)

	txs := f.transactions(t)
	require.Len(t, txs, 4)
	interest := 0
	for _, tx := range txs {
		switch tx.Account {
		case "Savings":
			interest++
			assert.Equal(t, "Premium Interest", tx.Description)
			assert.Equal(t, p.Savings, tx.BalanceAfter)
		case "Retirement Savings":
			interest++
			assert.Equal(t, "Interest", tx.Description)
			assert.Equal(t, p.Retirement, tx.BalanceAfter)
		}
	}
	assert.Equal(t, 2, interest)
	assert.Equal(t, "Weekly Expenses", txs[3].Description)
	assert.InDelta(t, -900.24, txs[3].Value, 1e-9)
}

func TestTimeProcessor_WithdrawnRateAndNoRegen(t *testing.T) {
	f := newFixture(t)
	f.seed(t, startingPlayer())
	require.NoError(t, f.store.SaveTime(f.ctx, core.Time{Week: 4, Month: 3, Year: 1}))
	require.NoError(t, f.store.SaveFlags(f.ctx, core.GameSessionFlags{IsInitialised: true, WithdrawnThisMonth: true}))
	f.rand.floats = []float64{0.85}

	summary, err := f.game.Time.AdvanceWeek(f.ctx)
	require.NoError(t, err)

	assert.Equal(t, core.Time{Week: 1, Month: 4, Year: 1}, summary.Time)
	assert.InDelta(t, 500*0.0004166667, summary.SavingsChange, 1e-12)
	assert.Zero(t, summary.ExpensesChange)
	assert.Equal(t, 900.0, f.player(t).WeeklyExpenses)

	history, err := f.game.Accounts.History(f.ctx, core.Savings)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "Interest", history[0].Description)
}

func TestTimeProcessor_ResetsWeeklyFlags(t *testing.T) {
	f := newFixture(t)
	f.seed(t, startingPlayer())
	require.NoError(t, f.store.SaveFlags(f.ctx, core.GameSessionFlags{
		DoneThisWeeksQuiz:             true,
		DoneThisWeeksInteractiveEvent: true,
		CompletedLessonThisWeek:       true,
		WithdrawnThisMonth:            true,
		CompletedTutorial:             true,
		IsInitialised:                 true,
	}))

	_, err := f.game.Time.AdvanceWeek(f.ctx)
	require.NoError(t, err)

	flags := f.flags(t)
	assert.False(t, flags.DoneThisWeeksQuiz)
	assert.False(t, flags.DoneThisWeeksInteractiveEvent)
	assert.False(t, flags.CompletedLessonThisWeek)
	assert.False(t, flags.WithdrawnThisMonth)
	assert.True(t, flags.CompletedTutorial)
	assert.True(t, flags.IsInitialised)
}

func TestTimeProcessor_ExpensesMayOverdraw(t *testing.T) {
	f := newFixture(t)
	p := startingPlayer()
	p.Spending = 0
	p.WeeklyExpenses = 1200
	f.seed(t, p)

	_, err := f.game.Time.AdvanceWeek(f.ctx)
	require.NoError(t, err)
	assert.InDelta(t, 950.24-1200, f.player(t).Spending, 1e-9)
}

func TestGenerateWeeklyExpenses(t *testing.T) {
	r := NewRand(42)
	for i := 0; i < 200; i++ {
		v := GenerateWeeklyExpenses(r, 950.24, 80, 40)
		assert.GreaterOrEqual(t, v, 870.24-1e-9)
		assert.LessOrEqual(t, v, 990.24+1e-9)
	}
	assert.Equal(t, 0.0, GenerateWeeklyExpenses(&scriptedRand{floats: []float64{0}}, 50, 80, 40))
}
