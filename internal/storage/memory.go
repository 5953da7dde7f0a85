package storage

import (
	"context"
	"sync"

	"github.com/jaas29/DinFlow/internal/core"
)

// MemoryStore keeps the serialized document in memory. It backs the
// "memory" backend and tests; the document round-trips through the same
// codec as the durable store so both adapters share load semantics.
type MemoryStore struct {
	mu      sync.Mutex
	doc     []byte
	present bool
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) Load(_ context.Context) (core.AppState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.present {
		return core.DefaultState(), nil
	}
	state, _ := decodeDocument(m.doc)
	return state, nil
}

func (m *MemoryStore) Save(_ context.Context, state core.AppState) error {
	doc, err := encodeDocument(state)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.doc = doc
	m.present = true
	return nil
}

func (m *MemoryStore) Erase(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.doc = nil
	m.present = false
	return nil
}

func (m *MemoryStore) Close() error { return nil }

// SeedDocument overwrites the raw stored document. Tests use it to simulate
// records written by earlier schema versions or corrupted in place.
func (m *MemoryStore) SeedDocument(doc []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.doc = append([]byte(nil), doc...)
	m.present = true
}
