package core

import "math"

// TransferResult reports the balances of both accounts after a transfer.
type TransferResult struct {
	From        Account
	To          Account
	Amount      float64
	FromBalance float64
	ToBalance   float64
}

func validAmount(amount float64) bool {
	return amount > 0 && !math.IsInf(amount, 0) && !math.IsNaN(amount)
}

// Credit adds amount to the account and returns the new balance.
func (p *Player) Credit(a Account, amount float64) (float64, error) {
	if !a.Valid() {
		return 0, ErrUnknownAccount
	}
	if !validAmount(amount) {
		return 0, ErrInvalidAmount
	}
	balance := p.Balance(a) + amount
	p.setBalance(a, balance)
	return balance, nil
}

// Debit removes amount from the account. It fails without mutating the player
// when the balance cannot cover it.
func (p *Player) Debit(a Account, amount float64) (float64, error) {
	if !a.Valid() {
		return 0, ErrUnknownAccount
	}
	if !validAmount(amount) {
		return 0, ErrInvalidAmount
	}
	current := p.Balance(a)
	if current < amount {
		return 0, &InsufficientFundsError{Account: a, Balance: current, Amount: amount}
	}
	balance := current - amount
	p.setBalance(a, balance)
	return balance, nil
}

// Adjust applies a signed delta without any funds check. Weekly expenses and
// interest go through here.
func (p *Player) Adjust(a Account, delta float64) float64 {
	balance := p.Balance(a) + delta
	p.setBalance(a, balance)
	return balance
}

// Transfer moves amount between two accounts. Either both sides apply or the
// player is left untouched.
func (p *Player) Transfer(from, to Account, amount float64) (TransferResult, error) {
	if !validAmount(amount) {
		return TransferResult{}, ErrInvalidAmount
	}
	if !from.Valid() || !to.Valid() {
		return TransferResult{}, ErrUnknownAccount
	}
	if from == to {
		return TransferResult{}, ErrSameAccount
	}

	staged := *p
	fromBalance, err := staged.Debit(from, amount)
	if err != nil {
		return TransferResult{}, err
	}
	toBalance, err := staged.Credit(to, amount)
	if err != nil {
		return TransferResult{}, err
	}
	*p = staged

	return TransferResult{
		From:        from,
		To:          to,
		Amount:      amount,
		FromBalance: fromBalance,
		ToBalance:   toBalance,
	}, nil
}
