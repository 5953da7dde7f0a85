package state

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jaas29/DinFlow/internal/core"
	"github.com/jaas29/DinFlow/internal/storage"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func newTestStore(t *testing.T, opts ...Option) (*Store, *storage.MemoryStore) {
	t.Helper()
	mem := storage.NewMemoryStore()
	store, err := Open(context.Background(), mem, nil, opts...)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	return store, mem
}

func onboard(t *testing.T, s *Store) {
	t.Helper()
	err := s.SetUser(context.Background(), core.User{
		Email:             "a@b.c",
		MonthlyIncome:     dec("4000"),
		SavingsPercentage: dec("20"),
	})
	if err != nil {
		t.Fatalf("set user: %v", err)
	}
}

func TestSetUserOnboards(t *testing.T) {
	s, _ := newTestStore(t)
	if s.Snapshot().IsOnboarded {
		t.Fatalf("fresh store must not be onboarded")
	}
	onboard(t, s)

	snap := s.Snapshot()
	if !snap.IsOnboarded || snap.User == nil || snap.User.Email != "a@b.c" {
		t.Fatalf("unexpected snapshot after SetUser: %+v", snap)
	}
	if !snap.MonthlySavings.Equal(dec("800")) || !snap.AvailableToSpend.Equal(dec("3200")) {
		t.Fatalf("derived metrics wrong: savings=%s available=%s",
			snap.MonthlySavings, snap.AvailableToSpend)
	}
}

func TestAddExpenseSumsIndependentOfOrder(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)
	onboard(t, s)

	amounts := []string{"45.50", "10", "0.01", "3.99"}
	for _, a := range amounts {
		if _, err := s.AddExpense(ctx, TransactionInput{Amount: dec(a), Category: "Other"}); err != nil {
			t.Fatalf("add expense %s: %v", a, err)
		}
	}

	snap := s.Snapshot()
	if !snap.TotalSpent.Equal(dec("59.50")) {
		t.Fatalf("totalSpent: got %s", snap.TotalSpent)
	}
	if !snap.RemainingBudget.Equal(dec("3140.50")) {
		t.Fatalf("remainingBudget: got %s", snap.RemainingBudget)
	}
}

func TestAddPrependsNewestFirst(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)
	onboard(t, s)

	first, _ := s.AddExpense(ctx, TransactionInput{Amount: dec("1"), Category: "A"})
	second, _ := s.AddExpense(ctx, TransactionInput{Amount: dec("2"), Category: "B"})

	snap := s.Snapshot()
	if len(snap.Expenses) != 2 {
		t.Fatalf("expected 2 expenses, got %d", len(snap.Expenses))
	}
	if snap.Expenses[0].ID != second.ID || snap.Expenses[1].ID != first.ID {
		t.Fatalf("expenses not newest first: %+v", snap.Expenses)
	}
	if first.ID == second.ID || first.ID == "" {
		t.Fatalf("ids must be unique and non-empty: %q %q", first.ID, second.ID)
	}
}

func TestTransactionDateFromClock(t *testing.T) {
	fixed := time.Date(2026, 8, 28, 10, 30, 0, 0, time.UTC)
	s, _ := newTestStore(t, WithClock(func() time.Time { return fixed }))
	onboard(t, s)

	tx, err := s.AddIncome(context.Background(), TransactionInput{Amount: dec("300"), Category: "Freelance"})
	if err != nil {
		t.Fatalf("add income: %v", err)
	}
	if tx.Date != "2026-08-28T10:30:00Z" {
		t.Fatalf("unexpected date: %q", tx.Date)
	}
}

func TestTotalIncomeTrackedSeparately(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)
	onboard(t, s)

	if _, err := s.AddIncome(ctx, TransactionInput{Amount: dec("500"), Category: "Salary"}); err != nil {
		t.Fatalf("add income: %v", err)
	}

	snap := s.Snapshot()
	if !snap.TotalIncome.Equal(dec("500")) {
		t.Fatalf("totalIncome: got %s", snap.TotalIncome)
	}
	// logged income never feeds budget math
	if !snap.AvailableToSpend.Equal(dec("3200")) || !snap.RemainingBudget.Equal(dec("3200")) {
		t.Fatalf("income leaked into budget: %+v", snap)
	}
}

func TestDeleteExpense(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)
	onboard(t, s)

	keep, _ := s.AddExpense(ctx, TransactionInput{Amount: dec("10"), Category: "A"})
	drop, _ := s.AddExpense(ctx, TransactionInput{Amount: dec("20"), Category: "B"})

	if err := s.DeleteExpense(ctx, drop.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	snap := s.Snapshot()
	if len(snap.Expenses) != 1 || snap.Expenses[0].ID != keep.ID {
		t.Fatalf("unexpected expenses after delete: %+v", snap.Expenses)
	}

	// unknown id is a silent no-op
	if err := s.DeleteExpense(ctx, "missing"); err != nil {
		t.Fatalf("delete of unknown id must not error: %v", err)
	}
	if got := len(s.Snapshot().Expenses); got != 1 {
		t.Fatalf("no-op delete changed state: %d expenses", got)
	}
}

func TestDeleteAllExpensesLeavesIncomesAndUser(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)
	onboard(t, s)

	_, _ = s.AddExpense(ctx, TransactionInput{Amount: dec("10"), Category: "A"})
	_, _ = s.AddExpense(ctx, TransactionInput{Amount: dec("20"), Category: "B"})
	_, _ = s.AddIncome(ctx, TransactionInput{Amount: dec("300"), Category: "Gift"})

	if err := s.DeleteAllExpenses(ctx); err != nil {
		t.Fatalf("delete all: %v", err)
	}

	snap := s.Snapshot()
	if len(snap.Expenses) != 0 || !snap.TotalSpent.IsZero() {
		t.Fatalf("expenses not cleared: %+v", snap.Expenses)
	}
	if len(snap.Incomes) != 1 || snap.User == nil || !snap.IsOnboarded {
		t.Fatalf("delete all touched incomes or user: %+v", snap)
	}
}

func TestResetAppRoundTrips(t *testing.T) {
	ctx := context.Background()
	s, mem := newTestStore(t)
	onboard(t, s)
	_, _ = s.AddExpense(ctx, TransactionInput{Amount: dec("10"), Category: "A"})

	if err := s.ResetApp(ctx); err != nil {
		t.Fatalf("reset: %v", err)
	}

	snap := s.Snapshot()
	if snap.IsOnboarded || snap.User != nil || len(snap.Expenses) != 0 || len(snap.Incomes) != 0 {
		t.Fatalf("state not reset: %+v", snap)
	}

	// the persisted record is gone: a new load yields the default state
	loaded, err := mem.Load(ctx)
	if err != nil {
		t.Fatalf("load after reset: %v", err)
	}
	if loaded.IsOnboarded || loaded.User != nil || len(loaded.Expenses) != 0 {
		t.Fatalf("persisted record survived reset: %+v", loaded)
	}
}

func TestEveryMutationPersists(t *testing.T) {
	ctx := context.Background()
	s, mem := newTestStore(t)

	checkPersisted := func(stage string, want int) {
		t.Helper()
		loaded, err := mem.Load(ctx)
		if err != nil {
			t.Fatalf("%s: load: %v", stage, err)
		}
		if len(loaded.Expenses) != want {
			t.Fatalf("%s: persisted %d expenses, want %d", stage, len(loaded.Expenses), want)
		}
	}

	onboard(t, s)
	loaded, _ := mem.Load(ctx)
	if !loaded.IsOnboarded {
		t.Fatalf("SetUser not persisted")
	}

	tx, _ := s.AddExpense(ctx, TransactionInput{Amount: dec("10"), Category: "A"})
	checkPersisted("AddExpense", 1)

	income := dec("5000")
	if err := s.UpdateUserSettings(ctx, UserSettings{MonthlyIncome: &income}); err != nil {
		t.Fatalf("update settings: %v", err)
	}
	loaded, _ = mem.Load(ctx)
	if !loaded.User.MonthlyIncome.Equal(income) {
		t.Fatalf("UpdateUserSettings not persisted: %+v", loaded.User)
	}

	_ = s.DeleteExpense(ctx, tx.ID)
	checkPersisted("DeleteExpense", 0)

	_, _ = s.AddExpense(ctx, TransactionInput{Amount: dec("1"), Category: "A"})
	_ = s.DeleteAllExpenses(ctx)
	checkPersisted("DeleteAllExpenses", 0)
}

func TestUpdateUserSettingsWithoutUserIsNoop(t *testing.T) {
	ctx := context.Background()
	s, mem := newTestStore(t)

	income := dec("5000")
	if err := s.UpdateUserSettings(ctx, UserSettings{MonthlyIncome: &income}); err != nil {
		t.Fatalf("expected no-op, got %v", err)
	}
	if s.Snapshot().User != nil {
		t.Fatalf("no-op created a user")
	}
	// nothing was written either
	loaded, _ := mem.Load(ctx)
	if loaded.User != nil || loaded.IsOnboarded {
		t.Fatalf("no-op persisted state: %+v", loaded)
	}
}

func TestUpdateUserSettingsMergesPartial(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)
	onboard(t, s)

	pct := dec("35")
	if err := s.UpdateUserSettings(ctx, UserSettings{SavingsPercentage: &pct}); err != nil {
		t.Fatalf("update settings: %v", err)
	}

	snap := s.Snapshot()
	if snap.User.Email != "a@b.c" || !snap.User.MonthlyIncome.Equal(dec("4000")) {
		t.Fatalf("untouched fields changed: %+v", snap.User)
	}
	if !snap.User.SavingsPercentage.Equal(pct) {
		t.Fatalf("savingsPercentage not merged: %+v", snap.User)
	}
}

func TestPermissiveByDefault(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)
	onboard(t, s)

	// zero amount and unknown category are accepted and stored
	if _, err := s.AddExpense(ctx, TransactionInput{Amount: dec("0"), Category: "Not A Category"}); err != nil {
		t.Fatalf("permissive store rejected input: %v", err)
	}
	if got := len(s.Snapshot().Expenses); got != 1 {
		t.Fatalf("expected stored expense, got %d", got)
	}
}

func TestStrictModeRejects(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t, WithValidation())

	if err := s.SetUser(ctx, core.User{Email: "", MonthlyIncome: dec("1"), SavingsPercentage: dec("1")}); err == nil {
		t.Fatalf("strict SetUser accepted empty email")
	}
	onboard(t, s)

	if _, err := s.AddExpense(ctx, TransactionInput{Amount: dec("0"), Category: "Other"}); err == nil {
		t.Fatalf("strict AddExpense accepted zero amount")
	}
	if _, err := s.AddExpense(ctx, TransactionInput{Amount: dec("1"), Category: " "}); err == nil {
		t.Fatalf("strict AddExpense accepted empty category")
	}
	if got := len(s.Snapshot().Expenses); got != 0 {
		t.Fatalf("rejected input was stored: %d expenses", got)
	}

	pct := dec("250")
	if err := s.UpdateUserSettings(ctx, UserSettings{SavingsPercentage: &pct}); err == nil {
		t.Fatalf("strict settings update accepted percentage over 100")
	}
}

func TestSnapshotIsDetached(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)
	onboard(t, s)
	_, _ = s.AddExpense(ctx, TransactionInput{Amount: dec("10"), Category: "A"})

	snap := s.Snapshot()
	snap.Expenses[0].Category = "tampered"
	snap.User.Email = "tampered"

	fresh := s.Snapshot()
	if fresh.Expenses[0].Category == "tampered" || fresh.User.Email == "tampered" {
		t.Fatalf("snapshot aliases canonical state")
	}
}

func TestOpenRestoresPersistedState(t *testing.T) {
	ctx := context.Background()
	mem := storage.NewMemoryStore()

	first, err := Open(ctx, mem, nil)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	onboard(t, first)
	_, _ = first.AddExpense(ctx, TransactionInput{Amount: dec("45.50"), Category: "Food & Dining"})

	second, err := Open(ctx, mem, nil)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	snap := second.Snapshot()
	if !snap.IsOnboarded || len(snap.Expenses) != 1 || !snap.TotalSpent.Equal(dec("45.50")) {
		t.Fatalf("reopened store lost state: %+v", snap)
	}
}
