package core

import (
	"sort"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// CategoryTotal is one row of the per-category spending breakdown.
type CategoryTotal struct {
	Category string          `json:"category"`
	Total    decimal.Decimal `json:"total"`
	Percent  decimal.Decimal `json:"percent"`
}

// Every function below is a pure derivation over a state snapshot. Derived
// values are never stored: they are recomputed from the raw fields on every
// read, so raw and derived state cannot drift apart.

// TotalSpent sums the amounts of all logged expenses.
func TotalSpent(s AppState) decimal.Decimal {
	sum := decimal.Zero
	for _, e := range s.Expenses {
		sum = sum.Add(e.Amount)
	}
	return sum
}

// TotalIncome sums the amounts of all logged income transactions. It is
// tracked independently of the monthly income declared at setup and is not
// an input to any budget metric.
func TotalIncome(s AppState) decimal.Decimal {
	sum := decimal.Zero
	for _, i := range s.Incomes {
		sum = sum.Add(i.Amount)
	}
	return sum
}

// MonthlySavings is the savings goal: monthlyIncome * savingsPercentage / 100.
// Zero when no user profile exists.
func MonthlySavings(s AppState) decimal.Decimal {
	if s.User == nil {
		return decimal.Zero
	}
	return s.User.MonthlyIncome.Mul(s.User.SavingsPercentage).Div(hundred)
}

// AvailableToSpend is the declared monthly income minus the savings goal.
// Zero when no user profile exists.
func AvailableToSpend(s AppState) decimal.Decimal {
	if s.User == nil {
		return decimal.Zero
	}
	return s.User.MonthlyIncome.Sub(MonthlySavings(s))
}

// RemainingBudget is availableToSpend minus totalSpent. A negative result
// means over budget and is a valid value, not an error.
func RemainingBudget(s AppState) decimal.Decimal {
	return AvailableToSpend(s).Sub(TotalSpent(s))
}

// SavingsProgress is the percentage of the savings goal still protected by
// the remaining budget, clamped to [0, 100]. It is zero when there is no
// user, no savings goal, or nothing available to spend.
func SavingsProgress(s AppState) decimal.Decimal {
	available := AvailableToSpend(s)
	if MonthlySavings(s).Sign() <= 0 || available.Sign() <= 0 {
		return decimal.Zero
	}
	progress := RemainingBudget(s).Div(available).Mul(hundred)
	if progress.GreaterThan(hundred) {
		return hundred
	}
	if progress.IsNegative() {
		return decimal.Zero
	}
	return progress
}

// CategoryBreakdown groups expenses by category and sums each group,
// sorted by descending total. Groups with equal totals keep the order in
// which their category was first encountered. Percent is the group's share
// of totalSpent, zero for an empty log.
func CategoryBreakdown(s AppState) []CategoryTotal {
	totals := map[string]int{}
	out := []CategoryTotal{}
	for _, e := range s.Expenses {
		idx, ok := totals[e.Category]
		if !ok {
			idx = len(out)
			totals[e.Category] = idx
			out = append(out, CategoryTotal{Category: e.Category, Total: decimal.Zero})
		}
		out[idx].Total = out[idx].Total.Add(e.Amount)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Total.GreaterThan(out[j].Total)
	})
	total := TotalSpent(s)
	if total.Sign() > 0 {
		for i := range out {
			out[i].Percent = out[i].Total.Div(total).Mul(hundred)
		}
	}
	return out
}
