package core

import (
	"testing"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestUserValidate(t *testing.T) {
	cases := []struct {
		name string
		u    User
		ok   bool
	}{
		{"valid", User{Email: "a@b.c", MonthlyIncome: dec("4000"), SavingsPercentage: dec("20")}, true},
		{"zero percentage", User{Email: "a@b.c", MonthlyIncome: dec("4000"), SavingsPercentage: dec("0")}, true},
		{"full percentage", User{Email: "a@b.c", MonthlyIncome: dec("4000"), SavingsPercentage: dec("100")}, true},
		{"empty email", User{Email: " ", MonthlyIncome: dec("4000"), SavingsPercentage: dec("20")}, false},
		{"negative income", User{Email: "a@b.c", MonthlyIncome: dec("-1"), SavingsPercentage: dec("20")}, false},
		{"percentage over 100", User{Email: "a@b.c", MonthlyIncome: dec("4000"), SavingsPercentage: dec("101")}, false},
	}
	for _, tc := range cases {
		err := tc.u.Validate()
		if tc.ok && err != nil {
			t.Fatalf("%s: expected ok, got %v", tc.name, err)
		}
		if !tc.ok && err == nil {
			t.Fatalf("%s: expected error", tc.name)
		}
	}
}

func TestTransactionValidate(t *testing.T) {
	good := Transaction{Amount: dec("45.50"), Category: "Food & Dining", Description: "lunch"}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	long := make([]byte, 201)
	for i := range long {
		long[i] = 'x'
	}
	bads := []Transaction{
		{Amount: dec("0"), Category: "c"},
		{Amount: dec("-1"), Category: "c"},
		{Amount: dec("1"), Category: "  "},
		{Amount: dec("1"), Category: "c", Description: string(long)},
	}
	for i, tr := range bads {
		if err := tr.Validate(); err == nil {
			t.Fatalf("case %d expected error", i)
		}
	}
}

func TestCloneIsDeep(t *testing.T) {
	s := DefaultState()
	u := User{Email: "a@b.c", MonthlyIncome: dec("4000"), SavingsPercentage: dec("20")}
	s.User = &u
	s.IsOnboarded = true
	s.Expenses = []Transaction{{ID: "1", Amount: dec("10"), Category: "X"}}

	c := s.Clone()
	c.User.Email = "other@b.c"
	c.Expenses[0].Category = "Y"
	c.Expenses = append(c.Expenses, Transaction{ID: "2"})

	if s.User.Email != "a@b.c" {
		t.Fatalf("clone aliased user: %q", s.User.Email)
	}
	if s.Expenses[0].Category != "X" || len(s.Expenses) != 1 {
		t.Fatalf("clone aliased expenses: %+v", s.Expenses)
	}
}

func TestDefaultStateShape(t *testing.T) {
	s := DefaultState()
	if s.User != nil || s.IsOnboarded {
		t.Fatalf("default state not unonboarded: %+v", s)
	}
	if s.Expenses == nil || s.Incomes == nil {
		t.Fatalf("default collections must be non-nil")
	}
	if len(s.Expenses) != 0 || len(s.Incomes) != 0 {
		t.Fatalf("default collections not empty")
	}
}
