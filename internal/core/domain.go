package core

import (
	"fmt"
	"strings"
	"time"
)

// Account identifies one of the player's three balances. The string value is
// the short name used in content files and transfer descriptions.
type Account string

const (
	Spending   Account = "Spending"
	Savings    Account = "Savings"
	Retirement Account = "Retirement"
)

// WealthClass gates which interactive events a player is eligible for.
type WealthClass string

const (
	Lower  WealthClass = "lower"
	Middle WealthClass = "middle"
	Upper  WealthClass = "upper"
)

type (
	Player struct {
		Name           string
		Spending       float64
		Savings        float64
		Retirement     float64
		WeeklyExpenses float64
	}

	Job struct {
		PromotionProgress int
	}

	Time struct {
		Week  int
		Month int
		Year  int
	}

	// Transaction is an immutable ledger entry. Seq is assigned by the store
	// and orders entries that share a timestamp.
	Transaction struct {
		ID           string
		Seq          int64
		Account      string
		Description  string
		Value        float64
		Timestamp    time.Time
		BalanceAfter float64
	}

	OwnedItem struct {
		Name       string
		Icon       string
		Price      float64
		Value      float64
		IsSellable bool
		Quantity   int
	}

	CompletedLesson struct {
		LessonID   int
		Title      string
		AllCorrect bool
	}

	// GameSessionFlags carries the weekly, monthly and onboarding state that
	// the engine reads and resets.
	GameSessionFlags struct {
		DoneThisWeeksQuiz             bool
		DoneThisWeeksInteractiveEvent bool
		CompletedLessonThisWeek       bool
		WithdrawnThisMonth            bool
		CompletedTutorial             bool
		CompletedWelcome              bool
		CurrentPage                   int
		IsInitialised                 bool
	}
)

const (
	wealthMiddleFloor = 1000
	wealthUpperFloor  = 10000
)

// Accounts returns the three accounts in display order.
func Accounts() []Account {
	return []Account{Spending, Savings, Retirement}
}

func (a Account) Valid() bool {
	switch a {
	case Spending, Savings, Retirement:
		return true
	default:
		return false
	}
}

// Label returns the account name used on ledger entries.
func (a Account) Label() string {
	switch a {
	case Spending:
		return "Everyday Spending"
	case Savings:
		return "Savings"
	case Retirement:
		return "Retirement Savings"
	default:
		return string(a)
	}
}

// UnderfundedThreshold is the balance below which the account is considered
// in need of replenishment.
func (a Account) UnderfundedThreshold() float64 {
	switch a {
	case Spending:
		return 200
	case Savings:
		return 1000
	case Retirement:
		return 500
	default:
		return 0
	}
}

// ParseAccount accepts a short name or a ledger label, case-insensitively.
func ParseAccount(s string) (Account, error) {
	needle := strings.TrimSpace(s)
	for _, a := range Accounts() {
		if strings.EqualFold(needle, string(a)) || strings.EqualFold(needle, a.Label()) {
			return a, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownAccount, s)
}

func (w WealthClass) Valid() bool {
	switch w {
	case Lower, Middle, Upper:
		return true
	default:
		return false
	}
}

// WealthClassFor maps a spending balance to its wealth class.
func WealthClassFor(spending float64) WealthClass {
	switch {
	case spending < wealthMiddleFloor:
		return Lower
	case spending < wealthUpperFloor:
		return Middle
	default:
		return Upper
	}
}

func (p Player) Balance(a Account) float64 {
	switch a {
	case Spending:
		return p.Spending
	case Savings:
		return p.Savings
	case Retirement:
		return p.Retirement
	default:
		return 0
	}
}

func (p *Player) setBalance(a Account, v float64) {
	switch a {
	case Spending:
		p.Spending = v
	case Savings:
		p.Savings = v
	case Retirement:
		p.Retirement = v
	}
}

func (p Player) TotalMoney() float64 {
	return p.Spending + p.Savings + p.Retirement
}

func (p Player) WealthClass() WealthClass {
	return WealthClassFor(p.Spending)
}

// NewTime returns the first week of the first month of year one.
func NewTime() Time {
	return Time{Week: 1, Month: 1, Year: 1}
}

// Advance moves one week forward and reports whether a new month began.
func (t Time) Advance() (Time, bool) {
	next := t
	next.Week++
	if next.Week <= 4 {
		return next, false
	}
	next.Week = 1
	next.Month++
	if next.Month > 12 {
		next.Month = 1
		next.Year++
	}
	return next, true
}

func (t Time) Validate() error {
	if t.Week < 1 || t.Week > 4 {
		return fmt.Errorf("invalid week %d", t.Week)
	}
	if t.Month < 1 || t.Month > 12 {
		return fmt.Errorf("invalid month %d", t.Month)
	}
	if t.Year < 1 {
		return fmt.Errorf("invalid year %d", t.Year)
	}
	return nil
}

func (t Time) String() string {
	return fmt.Sprintf("Week %d, Month %d, Year %d", t.Week, t.Month, t.Year)
}

// Upgrade merges a new attempt into an existing record. A record that was
// all-correct stays all-correct.
func (c CompletedLesson) Upgrade(allCorrect bool) CompletedLesson {
	c.AllCorrect = c.AllCorrect || allCorrect
	return c
}

// ResetWeek clears the weekly completion flags and the monthly withdrawal
// marker.
func (f GameSessionFlags) ResetWeek() GameSessionFlags {
	f.DoneThisWeeksQuiz = false
	f.DoneThisWeeksInteractiveEvent = false
	f.CompletedLessonThisWeek = false
	f.WithdrawnThisMonth = false
	return f
}
