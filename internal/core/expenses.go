package core

import "sort"

// ExpenseShare is one category of the weekly expense breakdown.
type ExpenseShare struct {
	Category string
	Amount   float64
}

var expenseCategories = []struct {
	name  string
	share float64
}{
	{"Housing", 0.35},
	{"Transportation", 0.15},
	{"Food", 0.15},
	{"Healthcare", 0.10},
	{"Insurance & Pensions", 0.10},
	{"Entertainment", 0.07},
	{"Miscellaneous", 0.05},
	{"Clothing", 0.03},
}

// BreakdownExpenses splits weekly expenses into fixed category shares,
// largest first.
func BreakdownExpenses(weeklyExpenses float64) []ExpenseShare {
	out := make([]ExpenseShare, 0, len(expenseCategories))
	for _, c := range expenseCategories {
		out = append(out, ExpenseShare{Category: c.name, Amount: weeklyExpenses * c.share})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Amount > out[j].Amount })
	return out
}
