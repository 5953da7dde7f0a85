package state

import (
	"context"

	"github.com/jaas29/DinFlow/internal/core"
)

// Adapter is the persistence port the store writes through. Load is
// fail-open by contract: absent or unreadable records come back as the
// default state, never as an error.
type Adapter interface {
	Load(ctx context.Context) (core.AppState, error)
	Save(ctx context.Context, s core.AppState) error
	Erase(ctx context.Context) error
	Close() error
}
