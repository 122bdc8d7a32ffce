// Package repository defines the snapshot store interface and errors.
package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Snapshot is one fetched league data payload, kept verbatim as the
// platform returned it. Derived values are always recomputed from the
// latest snapshot, never stored.
type Snapshot struct {
	ID        uuid.UUID       `json:"id"`
	LeagueID  string          `json:"league_id"`
	Kind      string          `json:"kind"`
	FetchedAt time.Time       `json:"fetched_at"`
	Data      json.RawMessage `json:"data"`
}

// Store provides read/write access to league snapshots.
type Store interface {
	// Put records a snapshot, replacing any previous snapshot for the
	// same (league, kind) pair.
	Put(ctx context.Context, snap Snapshot) error

	// Get returns the current snapshot for a (league, kind) pair.
	// Returns ErrNotFound when none has been stored.
	Get(ctx context.Context, leagueID, kind string) (Snapshot, error)

	// Kinds lists the kinds currently stored for a league.
	Kinds(ctx context.Context, leagueID string) []string

	// Count returns the number of stored snapshots.
	Count(ctx context.Context) int
}
