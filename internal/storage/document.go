// Package storage persists the whole application state as a single JSON
// document in one named slot of a local durable store. There is no
// multi-key schema and no partial write: every save replaces the document.
package storage

import (
	"encoding/json"
	"fmt"

	"github.com/jaas29/DinFlow/internal/core"
)

// DefaultSlot is the logical key the state document lives under.
const DefaultSlot = "dinflow_data"

func encodeDocument(s core.AppState) ([]byte, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("marshal state document: %w", err)
	}
	return data, nil
}

// decodeDocument turns a stored document back into state. It is fail-open:
// a document that does not parse is discarded and replaced by the default
// state rather than surfaced as an error. Records written before the
// incomes collection existed are repaired by defaulting it to empty.
func decodeDocument(data []byte) (core.AppState, bool) {
	var s core.AppState
	if err := json.Unmarshal(data, &s); err != nil {
		return core.DefaultState(), false
	}
	if s.Expenses == nil {
		s.Expenses = []core.Transaction{}
	}
	if s.Incomes == nil {
		s.Incomes = []core.Transaction{}
	}
	return s, true
}
