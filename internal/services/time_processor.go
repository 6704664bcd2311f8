package services

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"goodcents/internal/config"
	"goodcents/internal/core"
	"goodcents/internal/log"
	"goodcents/internal/metrics"
	"goodcents/internal/store"
)

// TimeProcessor advances the game calendar one week at a time, settling
// interest, income and expenses.
type TimeProcessor struct {
	store   store.Store
	clock   Clock
	rules   config.Rules
	rand    Rand
	metrics *metrics.Recorder
}

func NewTimeProcessor(st store.Store, clock Clock, rules config.Rules, r Rand, m *metrics.Recorder) *TimeProcessor {
	return &TimeProcessor{
		store:   st,
		clock:   clock,
		rules:   rules,
		rand:    r,
		metrics: m,
	}
}

// GenerateWeeklyExpenses draws uniformly in [max(0, income-below), income+above].
func GenerateWeeklyExpenses(r Rand, income, below, above float64) float64 {
	return uniform(r, math.Max(0, income-below), income+above)
}

// AdvanceWeek moves the calendar forward one week and commits the result.
func (p *TimeProcessor) AdvanceWeek(ctx context.Context) (core.WeekSummary, error) {
	var (
		summary core.WeekSummary
		player  core.Player
		entries []core.Transaction
	)
	err := p.store.Atomic(ctx, func(tx store.Store) error {
		j := newJournal(tx, p.clock)
		var err error
		summary, player, err = p.advance(ctx, tx, j)
		entries = j.entries
		return err
	})
	if err != nil {
		p.metrics.OperationFailed(log.OpAdvance)
		return core.WeekSummary{}, fmt.Errorf("advance week: %w", err)
	}
	p.committed(ctx, summary, player, entries)
	return summary, nil
}

func (p *TimeProcessor) committed(ctx context.Context, summary core.WeekSummary, player core.Player, entries []core.Transaction) {
	p.metrics.WeekAdvanced(summary.MonthRolled)
	observe(p.metrics, player, entries)
	slog.InfoContext(ctx, "Week advanced",
		log.FieldWeek, summary.Time.Week,
		log.FieldMonth, summary.Time.Month,
		log.FieldYear, summary.Time.Year,
		"month_rolled", summary.MonthRolled,
		"income", summary.Income,
		"expenses", summary.Expenses,
		"spending", player.Spending)
}

// advance runs the weekly transition against tx.
func (p *TimeProcessor) advance(ctx context.Context, tx store.Store, j *journal) (core.WeekSummary, core.Player, error) {
	player, err := loadPlayer(ctx, tx)
	if err != nil {
		return core.WeekSummary{}, core.Player{}, err
	}
	job, err := loadJob(ctx, tx)
	if err != nil {
		return core.WeekSummary{}, core.Player{}, err
	}
	now, err := loadTime(ctx, tx)
	if err != nil {
		return core.WeekSummary{}, core.Player{}, err
	}
	flags, err := loadFlags(ctx, tx)
	if err != nil {
		return core.WeekSummary{}, core.Player{}, err
	}

	next, rolled := now.Advance()
	summary := core.WeekSummary{Time: next, MonthRolled: rolled}

	if rolled {
		if err := p.settleMonth(ctx, j, &player, job, flags.WithdrawnThisMonth, &summary); err != nil {
			return core.WeekSummary{}, core.Player{}, err
		}
	}

	income := job.Income()
	balance := player.Adjust(core.Spending, income)
	if err := j.record(ctx, core.Spending, "Weekly Income", income, balance); err != nil {
		return core.WeekSummary{}, core.Player{}, err
	}
	expenses := player.WeeklyExpenses
	balance = player.Adjust(core.Spending, -expenses)
	if err := j.record(ctx, core.Spending, "Weekly Expenses", -expenses, balance); err != nil {
		return core.WeekSummary{}, core.Player{}, err
	}
	summary.Income = income
	summary.Expenses = expenses

	if balance < 0 {
		slog.WarnContext(ctx, "Spending account overdrawn by weekly expenses",
			log.FieldBalance, balance)
	}

	if err := tx.SavePlayer(ctx, player); err != nil {
		return core.WeekSummary{}, core.Player{}, fmt.Errorf("save player: %w", err)
	}
	if err := tx.SaveTime(ctx, next); err != nil {
		return core.WeekSummary{}, core.Player{}, fmt.Errorf("save time: %w", err)
	}
	if err := tx.SaveFlags(ctx, flags.ResetWeek()); err != nil {
		return core.WeekSummary{}, core.Player{}, fmt.Errorf("save flags: %w", err)
	}
	return summary, player, nil
}

// settleMonth pays interest on savings and retirement and may redraw the
// weekly expenses.
func (p *TimeProcessor) settleMonth(ctx context.Context, j *journal, player *core.Player, job core.Job, withdrawn bool, summary *core.WeekSummary) error {
	rate, label := p.rules.SavingsRate, "Premium Interest"
	if withdrawn {
		rate, label = p.rules.WithdrawnSavingsRate, "Interest"
	}

	savingsInterest := player.Savings * rate
	savings := player.Adjust(core.Savings, savingsInterest)
	retirementInterest := player.Retirement * p.rules.RetirementRate
	retirement := player.Adjust(core.Retirement, retirementInterest)

	oldExpenses := player.WeeklyExpenses
	if p.rand.Float64() < p.rules.ExpenseRegenChance {
		player.WeeklyExpenses = GenerateWeeklyExpenses(p.rand, job.Income(), p.rules.ExpenseBandBelow, p.rules.ExpenseBandAbove)
	}

	summary.SavingsChange = savingsInterest
	summary.RetirementChange = retirementInterest
	summary.ExpensesChange = player.WeeklyExpenses - oldExpenses

	if err := j.record(ctx, core.Savings, label, savingsInterest, savings); err != nil {
		return err
	}
	if err := j.record(ctx, core.Retirement, "Interest", retirementInterest, retirement); err != nil {
		return err
	}

	slog.DebugContext(ctx, "Monthly interest applied",
		"savings_rate", rate,
		"savings_interest", savingsInterest,
		"retirement_interest", retirementInterest,
		"expenses_change", summary.ExpensesChange)
	return nil
}
