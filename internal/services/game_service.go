package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"goodcents/internal/config"
	"goodcents/internal/content"
	"goodcents/internal/core"
	"goodcents/internal/log"
	"goodcents/internal/metrics"
	"goodcents/internal/store"
)

// Deps is everything the engine services share.
type Deps struct {
	Store   store.Store
	Clock   Clock
	Rules   config.Rules
	Content content.Provider
	Rand    Rand
	Metrics *metrics.Recorder
}

// GameService wires the engine services to one store and runs the
// game-level sequences: new game, end of week and reset.
type GameService struct {
	deps Deps

	Accounts    *AccountService
	Time        *TimeProcessor
	Weekly      *WeeklyEventService
	Interactive *InteractiveService
	Progression *ProgressionService
}

// Snapshot is the full current state of a saved game.
type Snapshot struct {
	Player     core.Player
	Job        core.Job
	Time       core.Time
	Flags      core.GameSessionFlags
	Items      []core.OwnedItem
	CanAdvance bool
}

func NewGameService(d Deps) *GameService {
	if d.Clock == nil {
		d.Clock = RealClock{}
	}
	if d.Rand == nil {
		d.Rand = NewRand(0)
	}
	return &GameService{
		deps:        d,
		Accounts:    NewAccountService(d.Store, d.Clock, d.Metrics),
		Time:        NewTimeProcessor(d.Store, d.Clock, d.Rules, d.Rand, d.Metrics),
		Weekly:      NewWeeklyEventService(d.Store, d.Clock, d.Rules, d.Rand, d.Metrics),
		Interactive: NewInteractiveService(d.Store, d.Clock, d.Content, d.Rand, d.Metrics),
		Progression: NewProgressionService(d.Store, d.Content, d.Rules, d.Rand, d.Metrics),
	}
}

// NewGame creates the player, job and calendar of a fresh game. An empty
// name uses the configured default.
func (g *GameService) NewGame(ctx context.Context, name string) (core.Player, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = g.deps.Rules.PlayerName
	}
	r := g.deps.Rules

	var player core.Player
	err := g.deps.Store.Atomic(ctx, func(tx store.Store) error {
		flags, err := loadFlags(ctx, tx)
		if err != nil {
			return err
		}
		if flags.IsInitialised {
			return core.ErrAlreadyInitialised
		}
		if _, err := tx.GetPlayer(ctx); err == nil {
			return core.ErrAlreadyInitialised
		} else if !errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("load player: %w", err)
		}

		job := core.Job{}
		player = core.Player{
			Name:           name,
			Spending:       r.StartingSpending,
			Savings:        r.StartingSavings,
			Retirement:     r.StartingRetirement,
			WeeklyExpenses: GenerateWeeklyExpenses(g.deps.Rand, job.Income(), r.ExpenseBandBelow, r.ExpenseBandAbove),
		}
		if err := tx.SavePlayer(ctx, player); err != nil {
			return fmt.Errorf("save player: %w", err)
		}
		if err := tx.SaveJob(ctx, job); err != nil {
			return fmt.Errorf("save job: %w", err)
		}
		if err := tx.SaveTime(ctx, core.NewTime()); err != nil {
			return fmt.Errorf("save time: %w", err)
		}
		flags = core.GameSessionFlags{IsInitialised: true}
		if err := tx.SaveFlags(ctx, flags); err != nil {
			return fmt.Errorf("save flags: %w", err)
		}
		return nil
	})
	if err != nil {
		return core.Player{}, err
	}

	observe(g.deps.Metrics, player, nil)
	g.deps.Metrics.SetPromotionLevel(0)
	slog.InfoContext(ctx, "New game started",
		"name", player.Name,
		"weekly_income", core.JobIncome(0),
		"weekly_expenses", player.WeeklyExpenses)
	return player, nil
}

// Status loads the whole saved game.
func (g *GameService) Status(ctx context.Context) (Snapshot, error) {
	var snap Snapshot
	var err error
	if snap.Player, err = loadPlayer(ctx, g.deps.Store); err != nil {
		return Snapshot{}, err
	}
	if snap.Job, err = loadJob(ctx, g.deps.Store); err != nil {
		return Snapshot{}, err
	}
	if snap.Time, err = loadTime(ctx, g.deps.Store); err != nil {
		return Snapshot{}, err
	}
	if snap.Flags, snap.CanAdvance, err = g.Progression.WeekStatus(ctx); err != nil {
		return Snapshot{}, err
	}
	if snap.Items, err = g.Accounts.Inventory(ctx); err != nil {
		return Snapshot{}, err
	}
	return snap, nil
}

// EndWeek advances the calendar and applies the weekly event in one commit.
// Unless force is set, the week's tasks must be finished first.
func (g *GameService) EndWeek(ctx context.Context, force bool) (core.WeekSummary, error) {
	if !force {
		_, ok, err := g.Progression.WeekStatus(ctx)
		if err != nil {
			return core.WeekSummary{}, err
		}
		if !ok {
			return core.WeekSummary{}, core.ErrWeekNotFinished
		}
	}

	var (
		summary core.WeekSummary
		player  core.Player
		j       *journal
	)
	err := g.deps.Store.Atomic(ctx, func(tx store.Store) error {
		j = newJournal(tx, g.deps.Clock)
		var err error
		if summary, _, err = g.Time.advance(ctx, tx, j); err != nil {
			return err
		}
		var event *core.WeeklyEventResult
		if event, player, err = g.Weekly.apply(ctx, tx, j); err != nil {
			return err
		}
		summary.Event = event
		return nil
	})
	if err != nil {
		g.deps.Metrics.OperationFailed(log.OpAdvance)
		return core.WeekSummary{}, fmt.Errorf("end week: %w", err)
	}

	g.Time.committed(ctx, summary, player, j.entries)
	g.Weekly.committed(ctx, summary.Event, player, nil)
	return summary, nil
}

// Reset deletes the saved game.
func (g *GameService) Reset(ctx context.Context) error {
	if err := g.deps.Store.ResetAll(ctx); err != nil {
		g.deps.Metrics.OperationFailed(log.OpReset)
		return fmt.Errorf("reset game: %w", err)
	}
	slog.InfoContext(ctx, "Game reset")
	return nil
}

// ResultsCountdown waits before the week results are dismissed: longer when
// the weekly event cost money.
func (g *GameService) ResultsCountdown(ctx context.Context, owed bool, tick func(remaining time.Duration)) error {
	return g.countdown(owed).Run(ctx, tick)
}

func (g *GameService) countdown(owed bool) Countdown {
	total := g.deps.Rules.ResultsDelay
	if owed {
		total = g.deps.Rules.ResultsDelayOwed
	}
	return Countdown{Total: total, Step: time.Second}
}
