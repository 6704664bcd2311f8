package services

import (
	"goodcents/internal/core"
)

const baseEventWeight = 1.0

// WeightedEvent is an eligible event with its selection weight.
type WeightedEvent struct {
	Event  core.InteractiveEvent
	Weight float64
}

// EventWeight scores an event for the player. The result is never negative.
func EventWeight(e core.InteractiveEvent, p core.Player) float64 {
	w := baseEventWeight
	for _, a := range e.Actions {
		weigher, err := GetActionWeigher(a.Type)
		if err != nil {
			continue
		}
		w += weigher.Weigh(a, p)
	}
	if needsSpendingRescue(e, p) {
		w *= 2.0
	}
	if w < 0 {
		return 0
	}
	return w
}

// needsSpendingRescue reports whether spending is underfunded and the event
// offers an affordable transfer into it.
func needsSpendingRescue(e core.InteractiveEvent, p core.Player) bool {
	if p.Spending >= core.Spending.UnderfundedThreshold() {
		return false
	}
	for _, a := range e.Actions {
		if a.Type != core.ActionTransfer || a.Transfer == nil {
			continue
		}
		if a.Transfer.DestinationAccount == core.Spending && a.Transfer.MinAmount <= p.Spending {
			return true
		}
	}
	return false
}

// EligibleEvents returns, in source order, every event of a group that
// includes the player's wealth class, weighted. Zero-weight events are
// kept so callers can show them.
func EligibleEvents(groups []core.EventGroup, p core.Player) []WeightedEvent {
	class := p.WealthClass()
	var out []WeightedEvent
	for _, g := range groups {
		if !g.Includes(class) {
			continue
		}
		for _, e := range g.Events {
			out = append(out, WeightedEvent{Event: e, Weight: EventWeight(e, p)})
		}
	}
	return out
}

// SelectInteractiveEvent draws one eligible event by weighted roulette. It
// returns core.NoEvent when no event has a positive weight.
func SelectInteractiveEvent(groups []core.EventGroup, p core.Player, r Rand) core.InteractiveEvent {
	var (
		candidates []WeightedEvent
		total      float64
	)
	for _, we := range EligibleEvents(groups, p) {
		if we.Weight <= 0 {
			continue
		}
		candidates = append(candidates, we)
		total += we.Weight
	}
	if len(candidates) == 0 {
		return core.NoEvent
	}

	draw := r.Float64() * total
	var cumulative float64
	for _, c := range candidates {
		cumulative += c.Weight
		if draw < cumulative {
			return c.Event
		}
	}
	return candidates[0].Event
}
