package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jaas29/DinFlow/internal/core"
	"github.com/jaas29/DinFlow/internal/log"

	_ "modernc.org/sqlite"
)

// SlotStore is the durable adapter: one SQLite file, one row per slot,
// the whole state serialized into the row's document column.
type SlotStore struct {
	db     *sql.DB
	slot   string
	logger *log.Logger
}

func NewSlotStore(dbPath, slot string, logger *log.Logger) (*SlotStore, error) {
	if slot == "" {
		slot = DefaultSlot
	}
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}
	logger = logger.WithComponent(log.ComponentStorage)

	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SlotStore{db: db, slot: slot, logger: logger}, nil
}

func (s *SlotStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Load reads the slot. An absent row and an unparseable document both yield
// the default unonboarded state; neither is an error. Only the database
// itself failing surfaces as one.
func (s *SlotStore) Load(ctx context.Context) (core.AppState, error) {
	var doc []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT document FROM app_state WHERE slot = ?`, s.slot).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		s.logger.InfoContext(ctx, "No persisted state, starting fresh",
			log.FieldSlot, s.slot, log.FieldOperation, log.OpLoad)
		return core.DefaultState(), nil
	}
	if err != nil {
		return core.DefaultState(), fmt.Errorf("read state slot: %w", err)
	}

	state, ok := decodeDocument(doc)
	if !ok {
		s.logger.WarnContext(ctx, "Persisted state unreadable, discarding",
			log.FieldSlot, s.slot, log.FieldOperation, log.OpLoad)
		return state, nil
	}

	s.logger.InfoContext(ctx, "State loaded",
		log.FieldSlot, s.slot,
		log.FieldOperation, log.OpLoad,
		"expenses", len(state.Expenses),
		"incomes", len(state.Incomes),
		"onboarded", state.IsOnboarded)
	return state, nil
}

// Save replaces the slot's document with the full serialized state.
func (s *SlotStore) Save(ctx context.Context, state core.AppState) error {
	doc, err := encodeDocument(state)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO app_state (slot, document, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(slot) DO UPDATE SET
			document = excluded.document,
			updated_at = CURRENT_TIMESTAMP`,
		s.slot, string(doc))
	if err != nil {
		return fmt.Errorf("write state slot: %w", err)
	}

	s.logger.DebugContext(ctx, "State saved",
		log.FieldSlot, s.slot, log.FieldOperation, log.OpSave)
	return nil
}

// Erase removes the slot entirely.
func (s *SlotStore) Erase(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM app_state WHERE slot = ?`, s.slot)
	if err != nil {
		return fmt.Errorf("erase state slot: %w", err)
	}
	s.logger.InfoContext(ctx, "State erased",
		log.FieldSlot, s.slot, log.FieldOperation, log.OpErase)
	return nil
}
