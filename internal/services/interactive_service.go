package services

import (
	"context"
	"fmt"
	"log/slog"

	"goodcents/internal/content"
	"goodcents/internal/core"
	"goodcents/internal/log"
	"goodcents/internal/metrics"
	"goodcents/internal/store"
)

// InteractiveService draws the weekly interactive event and applies the
// action the player picks.
type InteractiveService struct {
	store   store.Store
	clock   Clock
	content content.Provider
	rand    Rand
	metrics *metrics.Recorder
}

func NewInteractiveService(st store.Store, clock Clock, p content.Provider, r Rand, m *metrics.Recorder) *InteractiveService {
	return &InteractiveService{
		store:   st,
		clock:   clock,
		content: p,
		rand:    r,
		metrics: m,
	}
}

// ActionOutcome is a committed interactive action.
type ActionOutcome struct {
	Event   core.InteractiveEvent
	Action  core.Action
	Amount  float64
	Message string
	Entries []core.Transaction
}

// Draw picks this week's event for the current player state.
func (s *InteractiveService) Draw(ctx context.Context) (core.InteractiveEvent, error) {
	p, err := loadPlayer(ctx, s.store)
	if err != nil {
		return core.InteractiveEvent{}, err
	}
	e := SelectInteractiveEvent(s.content.EventGroups(), p, s.rand)
	s.metrics.EventSelected(e.IsNone())
	slog.InfoContext(ctx, "Interactive event selected",
		log.FieldEventID, e.ID,
		"name", e.Name,
		log.FieldWealthClass, p.WealthClass())
	return e, nil
}

// Weights lists the eligible events and their weights for the current
// player state.
func (s *InteractiveService) Weights(ctx context.Context) ([]WeightedEvent, error) {
	p, err := loadPlayer(ctx, s.store)
	if err != nil {
		return nil, err
	}
	return EligibleEvents(s.content.EventGroups(), p), nil
}

// ClampTransferAmount bounds a requested transfer to
// [min, max(min, source)] and then to the action's maximum when set.
func ClampTransferAmount(t core.TransferSpec, sourceBalance, requested float64) float64 {
	lo := t.MinAmount
	hi := max(t.MinAmount, sourceBalance)
	amount := min(max(requested, lo), hi)
	if t.MaxAmount != nil && amount > *t.MaxAmount {
		amount = *t.MaxAmount
	}
	return amount
}

// Perform applies one action of an event. requested is only used by
// transfer actions. Once an action has been taken this week, further calls
// fail with core.ErrAlreadyDone.
func (s *InteractiveService) Perform(ctx context.Context, eventID, actionID int, requested float64) (ActionOutcome, error) {
	event, ok := content.FindEvent(s.content, eventID)
	if !ok {
		return ActionOutcome{}, fmt.Errorf("event %d: %w", eventID, store.ErrNotFound)
	}
	var action core.Action
	found := false
	for _, a := range event.Actions {
		if a.ID == actionID {
			action, found = a, true
			break
		}
	}
	if !found {
		return ActionOutcome{}, fmt.Errorf("event %d action %d: %w", eventID, actionID, store.ErrNotFound)
	}

	var (
		out    = ActionOutcome{Event: event, Action: action}
		player core.Player
	)
	err := s.store.Atomic(ctx, func(tx store.Store) error {
		done, err := loadFlags(ctx, tx)
		if err != nil {
			return err
		}
		if done.DoneThisWeeksInteractiveEvent {
			return fmt.Errorf("event %d: %w", eventID, core.ErrAlreadyDone)
		}
		p, err := loadPlayer(ctx, tx)
		if err != nil {
			return err
		}
		j := newJournal(tx, s.clock)

		switch action.Type {
		case core.ActionTransfer:
			t := action.Transfer
			amount := ClampTransferAmount(*t, p.Balance(t.SourceAccount), requested)
			if _, err := transfer(ctx, tx, j, &p, t.SourceAccount, t.DestinationAccount, amount); err != nil {
				return err
			}
			out.Amount = amount
		case core.ActionPurchase:
			res, err := purchase(ctx, tx, j, &p, action)
			if err != nil {
				return err
			}
			out.Amount = res.Price
		case core.ActionDismiss:
		default:
			return fmt.Errorf("%w: action type %q", core.ErrInvalidContent, action.Type)
		}

		flags, err := loadFlags(ctx, tx)
		if err != nil {
			return err
		}
		flags.DoneThisWeeksInteractiveEvent = true
		if err := tx.SaveFlags(ctx, flags); err != nil {
			return fmt.Errorf("save flags: %w", err)
		}
		out.Entries = j.entries
		player = p
		return nil
	})
	if err != nil {
		s.metrics.OperationFailed(log.OpPerform)
		slog.WarnContext(ctx, "Interactive action failed",
			log.FieldEventID, eventID,
			log.FieldActionID, actionID,
			log.FieldError, err)
		return ActionOutcome{}, err
	}

	out.Message = core.RenderOutcome(action.Outcome, out.Amount)
	s.metrics.ActionPerformed(string(action.Type))
	observe(s.metrics, player, out.Entries)
	slog.InfoContext(ctx, "Interactive action performed",
		log.FieldEventID, eventID,
		log.FieldActionID, actionID,
		log.FieldActionType, action.Type,
		log.FieldAmount, out.Amount)
	return out, nil
}
