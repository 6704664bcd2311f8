// Package services provides the game engine: account operations, time
// advancement, interactive and weekly events, progression and the game
// orchestration that ties them to a store.
//
// This file implements the Strategy Pattern for interactive event weighting.
// Each action type (purchase, transfer, dismiss) has its own weigher that
// scores how sensible the action is for the player's current balances.

package services

import (
	"fmt"

	"goodcents/internal/core"
)

// ActionWeigher is the strategy interface for scoring one action of an
// interactive event. The returned value is added to the event weight.
type ActionWeigher interface {
	Weigh(a core.Action, p core.Player) float64
}

// PurchaseWeigher favours purchases the spending account can cover.
type PurchaseWeigher struct{}

// Weigh returns +1 when spending covers the price, -1 when it does not and
// -5 when the action has no price at all.
func (PurchaseWeigher) Weigh(a core.Action, p core.Player) float64 {
	price, ok := a.Price()
	if !ok {
		return -5.0
	}
	if p.Spending >= price {
		return 1.0
	}
	return -1.0
}

// TransferWeigher favours transfers that are affordable and top up an
// underfunded account from a richer one.
type TransferWeigher struct{}

// Weigh scores affordability (+2 / -1) and need (+1.5 / -5). Both apply.
func (TransferWeigher) Weigh(a core.Action, p core.Player) float64 {
	t := a.Transfer
	if t == nil {
		return 0
	}
	source := p.Balance(t.SourceAccount)
	dest := p.Balance(t.DestinationAccount)

	var w float64
	if source >= t.MinAmount {
		w += 2.0
	} else {
		w -= 1.0
	}

	shouldTransfer := dest < t.DestinationAccount.UnderfundedThreshold() && source > dest
	if shouldTransfer {
		w += 1.5
	} else {
		w -= 5.0
	}
	return w
}

// DismissWeigher gives every way out a small constant bonus.
type DismissWeigher struct{}

func (DismissWeigher) Weigh(core.Action, core.Player) float64 {
	return 0.5
}

// actionWeighers maps action types to their corresponding weighers.
var actionWeighers = map[core.ActionType]ActionWeigher{
	core.ActionPurchase: PurchaseWeigher{},
	core.ActionTransfer: TransferWeigher{},
	core.ActionDismiss:  DismissWeigher{},
}

// GetActionWeigher returns the weigher for an action type.
func GetActionWeigher(t core.ActionType) (ActionWeigher, error) {
	w, ok := actionWeighers[t]
	if !ok {
		return nil, fmt.Errorf("unknown action type: %s", t)
	}
	return w, nil
}

// RegisterActionWeigher installs or replaces the weigher for an action type.
func RegisterActionWeigher(t core.ActionType, w ActionWeigher) {
	actionWeighers[t] = w
}
