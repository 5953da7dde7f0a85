package core

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	Expense TransactionKind = "expense"
	Income  TransactionKind = "income"
)

func init() {
	// Amounts are stored and served as plain JSON numbers, matching the
	// persisted record layout.
	decimal.MarshalJSONWithoutQuotes = true
}

type (
	TransactionKind string

	// User is the profile declared during setup. Email is an opaque
	// identifier and is never authenticated.
	User struct {
		Email             string          `json:"email"`
		MonthlyIncome     decimal.Decimal `json:"monthlyIncome"`
		SavingsPercentage decimal.Decimal `json:"savingsPercentage"`
	}

	// Transaction is a single logged expense or income. The two kinds are
	// structurally identical; which collection a transaction lives in
	// determines its kind.
	Transaction struct {
		ID          string          `json:"id"`
		Amount      decimal.Decimal `json:"amount"`
		Category    string          `json:"category"`
		Description string          `json:"description"`
		Date        string          `json:"date"`
	}

	// AppState is the aggregate root: the whole of what the application
	// knows, and the unit of persistence. Transaction slices are kept
	// newest first.
	AppState struct {
		User        *User         `json:"user"`
		Expenses    []Transaction `json:"expenses"`
		Incomes     []Transaction `json:"incomes"`
		IsOnboarded bool          `json:"isOnboarded"`
	}
)

var (
	ErrInvalidAmount      = errors.New("invalid amount")
	ErrEmptyCategory      = errors.New("empty category")
	ErrDescriptionTooLong = errors.New("description too long (max 200 characters)")
	ErrInvalidEmail       = errors.New("invalid email")
	ErrInvalidIncome      = errors.New("invalid monthly income")
	ErrInvalidPercentage  = errors.New("savings percentage must be between 0 and 100")
)

// DefaultState returns the empty, unonboarded state. Slices are non-nil so
// the serialized record always carries explicit empty collections.
func DefaultState() AppState {
	return AppState{
		User:        nil,
		Expenses:    []Transaction{},
		Incomes:     []Transaction{},
		IsOnboarded: false,
	}
}

// Clone returns a deep copy. Callers receive clones so nobody outside the
// state holder ever aliases the canonical slices.
func (s AppState) Clone() AppState {
	out := AppState{IsOnboarded: s.IsOnboarded}
	if s.User != nil {
		u := *s.User
		out.User = &u
	}
	out.Expenses = append([]Transaction{}, s.Expenses...)
	out.Incomes = append([]Transaction{}, s.Incomes...)
	return out
}

func (u User) Validate() error {
	if strings.TrimSpace(u.Email) == "" {
		return ErrInvalidEmail
	}
	if u.MonthlyIncome.IsNegative() {
		return ErrInvalidIncome
	}
	if u.SavingsPercentage.IsNegative() || u.SavingsPercentage.GreaterThan(decimal.NewFromInt(100)) {
		return ErrInvalidPercentage
	}
	return nil
}

// Validate applies the strict entry rules. The state layer itself is
// permissive; this is only consulted when strict mode is enabled or by the
// entry surface before submitting.
func (t Transaction) Validate() error {
	if !t.Amount.IsPositive() {
		return ErrInvalidAmount
	}
	if strings.TrimSpace(t.Category) == "" {
		return ErrEmptyCategory
	}
	if len(t.Description) > 200 {
		return ErrDescriptionTooLong
	}
	return nil
}
