package state

import (
	"github.com/shopspring/decimal"

	"github.com/jaas29/DinFlow/internal/core"
)

// Snapshot is the complete read model: the raw state fields plus every
// derived metric, all computed from the same state copy. Raw and derived
// values in one snapshot can never disagree.
type Snapshot struct {
	User        *core.User         `json:"user"`
	Expenses    []core.Transaction `json:"expenses"`
	Incomes     []core.Transaction `json:"incomes"`
	IsOnboarded bool               `json:"isOnboarded"`

	TotalSpent       decimal.Decimal      `json:"totalSpent"`
	TotalIncome      decimal.Decimal      `json:"totalIncome"`
	MonthlySavings   decimal.Decimal      `json:"monthlySavings"`
	AvailableToSpend decimal.Decimal      `json:"availableToSpend"`
	RemainingBudget  decimal.Decimal      `json:"remainingBudget"`
	SavingsProgress  decimal.Decimal      `json:"savingsProgress"`
	Categories       []core.CategoryTotal `json:"categories"`
}

// Snapshot derives the read model from the current state. Derived values
// are recomputed on every call, never cached across mutations.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	st := s.state.Clone()
	s.mu.Unlock()

	return Snapshot{
		User:        st.User,
		Expenses:    st.Expenses,
		Incomes:     st.Incomes,
		IsOnboarded: st.IsOnboarded,

		TotalSpent:       core.TotalSpent(st),
		TotalIncome:      core.TotalIncome(st),
		MonthlySavings:   core.MonthlySavings(st),
		AvailableToSpend: core.AvailableToSpend(st),
		RemainingBudget:  core.RemainingBudget(st),
		SavingsProgress:  core.SavingsProgress(st),
		Categories:       core.CategoryBreakdown(st),
	}
}
