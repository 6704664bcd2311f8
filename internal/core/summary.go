package core

// WeekSummary is what the results screen shows after a week is advanced.
type WeekSummary struct {
	Time             Time
	MonthRolled      bool
	SavingsChange    float64
	RetirementChange float64
	ExpensesChange   float64
	Income           float64
	Expenses         float64
	Event            *WeeklyEventResult
}

// WeeklyEventResult is an ambient event that was applied to spending.
type WeeklyEventResult struct {
	Tier         string
	Title        string
	Body         string
	IsMoneyOwed  bool
	Amount       float64
	BalanceAfter float64
}

// SignedAmount is negative when money was owed.
func (r WeeklyEventResult) SignedAmount() float64 {
	if r.IsMoneyOwed {
		return -r.Amount
	}
	return r.Amount
}

func (r WeeklyEventResult) AmountString() string {
	if r.IsMoneyOwed {
		return "You lost " + FormatMoney(r.Amount)
	}
	return "You Gained " + FormatMoney(r.Amount)
}

// Goal is one of the three long-term objectives.
type Goal struct {
	Title       string
	Description string
	Progress    float64
}

func (g Goal) Complete() bool {
	return g.Progress >= 1
}
