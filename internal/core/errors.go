package core

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidAmount      = errors.New("invalid amount")
	ErrSameAccount        = errors.New("source and destination accounts are the same")
	ErrInsufficientFunds  = errors.New("insufficient funds")
	ErrUnknownAccount     = errors.New("unknown account")
	ErrItemNotFound       = errors.New("item not found")
	ErrItemNotSellable    = errors.New("item is not sellable")
	ErrNotInitialised     = errors.New("game not initialised")
	ErrAlreadyInitialised = errors.New("game already initialised")
	ErrWeekNotFinished    = errors.New("weekly tasks not finished")
	ErrAlreadyDone        = errors.New("already done this week")
	ErrInvalidContent     = errors.New("invalid content")
)

// InsufficientFundsError names the account that could not cover a debit.
type InsufficientFundsError struct {
	Account Account
	Balance float64
	Amount  float64
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("insufficient funds in %s: balance %.2f, requested %.2f", e.Account.Label(), e.Balance, e.Amount)
}

func (e *InsufficientFundsError) Is(target error) bool {
	return target == ErrInsufficientFunds
}

// UserMessage turns an engine error into the text shown to the player.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var funds *InsufficientFundsError
	switch {
	case errors.As(err, &funds):
		if funds.Account == Spending {
			return "Insufficient funds in Spending Account."
		}
		return fmt.Sprintf("Insufficient funds in %s.", funds.Account.Label())
	case errors.Is(err, ErrInvalidAmount):
		return "Please enter a valid amount."
	case errors.Is(err, ErrSameAccount):
		return "Source and destination accounts must be different."
	case errors.Is(err, ErrItemNotSellable):
		return "This item cannot be sold."
	case errors.Is(err, ErrItemNotFound):
		return "You do not own this item."
	case errors.Is(err, ErrAlreadyDone):
		return "You already did that this week."
	case errors.Is(err, ErrWeekNotFinished):
		return "Finish this week's quiz, event and lesson before moving on."
	case errors.Is(err, ErrNotInitialised):
		return "Start a new game first."
	default:
		return err.Error()
	}
}
