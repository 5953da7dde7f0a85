// Package state holds the canonical application state behind a single
// mutation surface. The Store is the only owner of the AppState value:
// collaborators issue commands and read consistent snapshots, and every
// completed mutation has already been written through the persistence
// adapter.
package state

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jaas29/DinFlow/internal/core"
	"github.com/jaas29/DinFlow/internal/log"
)

// Store is the state facade. Mutations are serialized by a mutex; the
// logical model is single-writer but the store is safe to share across
// handler goroutines.
//
// The store must be constructed with Open. Calling methods on a zero Store
// is a wiring defect and panics on the nil adapter.
type Store struct {
	mu      sync.Mutex
	adapter Adapter
	logger  *log.Logger
	strict  bool
	now     func() time.Time
	state   core.AppState
}

// Option configures a Store during Open.
type Option func(*Store)

// WithValidation enables strict mode: transaction and profile input is
// validated before mutating. The default is the permissive contract where
// validation belongs to the entry surface.
func WithValidation() Option {
	return func(s *Store) { s.strict = true }
}

// WithClock overrides the time source used for transaction dates.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// Open loads the persisted state through the adapter and returns the
// ready-to-use store. A load failure is logged and falls open to the
// default state; it never blocks startup.
func Open(ctx context.Context, adapter Adapter, logger *log.Logger, opts ...Option) (*Store, error) {
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}
	s := &Store{
		adapter: adapter,
		logger:  logger.WithComponent(log.ComponentState),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	loaded, err := adapter.Load(ctx)
	if err != nil {
		s.logger.WarnContext(ctx, "Failed to load persisted state, starting fresh",
			log.FieldError, err, log.FieldOperation, log.OpLoad)
		loaded = core.DefaultState()
	}
	s.state = loaded

	s.logger.InfoContext(ctx, "State store opened",
		log.FieldOperation, log.OpStartup,
		"onboarded", s.state.IsOnboarded,
		"expenses", len(s.state.Expenses),
		"incomes", len(s.state.Incomes),
		"strict", s.strict)
	return s, nil
}

func (s *Store) Close() error {
	return s.adapter.Close()
}

// persist writes the current state through the adapter. It runs with the
// mutex held so the saved document always matches the in-memory state the
// mutation produced.
func (s *Store) persist(ctx context.Context, op string) error {
	if err := s.adapter.Save(ctx, s.state.Clone()); err != nil {
		s.logger.ErrorContext(ctx, "Failed to persist state",
			log.FieldError, err, log.FieldOperation, op)
		return err
	}
	return nil
}

// SetUser replaces the user profile and marks the application onboarded.
func (s *Store) SetUser(ctx context.Context, u core.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.strict {
		if err := u.Validate(); err != nil {
			return err
		}
	}

	user := u
	s.state.User = &user
	s.state.IsOnboarded = true

	s.logger.InfoContext(ctx, "User profile set",
		log.FieldOperation, log.OpSetUser, log.FieldEmail, u.Email)
	return s.persist(ctx, log.OpSetUser)
}

// UserSettings is a partial profile update; nil fields stay untouched.
type UserSettings struct {
	Email             *string
	MonthlyIncome     *decimal.Decimal
	SavingsPercentage *decimal.Decimal
}

// UpdateUserSettings merges the given fields into the existing profile.
// Without a profile it is a no-op: nothing changes and nothing is written.
func (s *Store) UpdateUserSettings(ctx context.Context, settings UserSettings) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.User == nil {
		return nil
	}

	merged := *s.state.User
	if settings.Email != nil {
		merged.Email = *settings.Email
	}
	if settings.MonthlyIncome != nil {
		merged.MonthlyIncome = *settings.MonthlyIncome
	}
	if settings.SavingsPercentage != nil {
		merged.SavingsPercentage = *settings.SavingsPercentage
	}

	if s.strict {
		if err := merged.Validate(); err != nil {
			return err
		}
	}

	s.state.User = &merged
	s.logger.InfoContext(ctx, "User settings updated", log.FieldOperation, log.OpUpdateSettings)
	return s.persist(ctx, log.OpUpdateSettings)
}

// TransactionInput is the caller-supplied part of a transaction; id and
// date are assigned by the store at creation time.
type TransactionInput struct {
	Amount      decimal.Decimal
	Category    string
	Description string
}

func (s *Store) newTransaction(in TransactionInput) core.Transaction {
	return core.Transaction{
		ID:          uuid.NewString(),
		Amount:      in.Amount,
		Category:    in.Category,
		Description: in.Description,
		Date:        s.now().UTC().Format(time.RFC3339),
	}
}

// AddExpense logs an expense at the front of the expense sequence and
// returns the stored transaction.
func (s *Store) AddExpense(ctx context.Context, in TransactionInput) (core.Transaction, error) {
	return s.addTransaction(ctx, in, core.Expense)
}

// AddIncome logs an income transaction at the front of the income sequence.
func (s *Store) AddIncome(ctx context.Context, in TransactionInput) (core.Transaction, error) {
	return s.addTransaction(ctx, in, core.Income)
}

func (s *Store) addTransaction(ctx context.Context, in TransactionInput, kind core.TransactionKind) (core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := s.newTransaction(in)
	if s.strict {
		if err := tx.Validate(); err != nil {
			return core.Transaction{}, err
		}
	}

	var op string
	switch kind {
	case core.Income:
		s.state.Incomes = append([]core.Transaction{tx}, s.state.Incomes...)
		op = log.OpAddIncome
	default:
		s.state.Expenses = append([]core.Transaction{tx}, s.state.Expenses...)
		op = log.OpAddExpense
	}

	s.logger.InfoContext(ctx, "Transaction logged",
		log.FieldOperation, op,
		log.FieldTransaction, tx.ID,
		log.FieldKind, string(kind),
		log.FieldCategory, tx.Category,
		log.FieldAmount, tx.Amount.String())

	if err := s.persist(ctx, op); err != nil {
		return core.Transaction{}, err
	}
	return tx, nil
}

// DeleteExpense removes the first expense with the given id. An unknown id
// is a silent no-op, not an error.
func (s *Store) DeleteExpense(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, e := range s.state.Expenses {
		if e.ID == id {
			s.state.Expenses = append(s.state.Expenses[:i:i], s.state.Expenses[i+1:]...)
			s.logger.InfoContext(ctx, "Expense deleted",
				log.FieldOperation, log.OpDeleteExpense, log.FieldTransaction, id)
			break
		}
	}
	return s.persist(ctx, log.OpDeleteExpense)
}

// DeleteAllExpenses empties the expense sequence. Incomes and the user
// profile are untouched.
func (s *Store) DeleteAllExpenses(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := len(s.state.Expenses)
	s.state.Expenses = []core.Transaction{}

	s.logger.InfoContext(ctx, "All expenses deleted",
		log.FieldOperation, log.OpDeleteAll, log.FieldCount, count)
	return s.persist(ctx, log.OpDeleteAll)
}

// ResetApp replaces everything with the default unonboarded state and
// erases the persisted record.
func (s *Store) ResetApp(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = core.DefaultState()
	if err := s.adapter.Erase(ctx); err != nil {
		s.logger.ErrorContext(ctx, "Failed to erase persisted state",
			log.FieldError, err, log.FieldOperation, log.OpReset)
		return err
	}
	s.logger.InfoContext(ctx, "Application reset", log.FieldOperation, log.OpReset)
	return nil
}
