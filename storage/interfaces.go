package storage

import (
	"context"
	"time"

	"github.com/dsaini64/regulations/core"
)

// RegulationStore persists the canonical regulation set. It is the source
// of truth; the vector index is a derived, rebuildable cache.
// Implementations must be thread-safe and support concurrent access.
type RegulationStore interface {
	// ReplaceAll atomically replaces the entire regulation set: delete all,
	// then insert all, in a single transaction. Concurrent readers observe
	// either the pre- or post-replace state, never an empty table.
	// New IDs are assigned from a sequence and LastUpdated is set if zero.
	// Returns the records with IDs populated.
	ReplaceAll(ctx context.Context, records ...*core.Regulation) ([]*core.Regulation, error)

	// GetAll retrieves every stored regulation, ordered by ID ascending.
	GetAll(ctx context.Context) ([]*core.Regulation, error)

	// GetByID retrieves a single regulation.
	// Returns ErrNotFound if the record doesn't exist.
	GetByID(ctx context.Context, id core.ID) (*core.Regulation, error)

	// CountByStatus returns the number of stored regulations per status.
	CountByStatus(ctx context.Context) (map[core.RegulationStatus]int, error)

	// Close releases resources held by the store.
	Close() error
}

// ChangeLog is the append-only record of detected regulation changes.
type ChangeLog interface {
	// AppendChanges appends change records. IDs are assigned from a
	// sequence; DetectedAt is set to the current time if zero.
	// Returns the records with IDs and timestamps populated.
	AppendChanges(ctx context.Context, changes ...*core.ChangeRecord) ([]*core.ChangeRecord, error)

	// GetChanges retrieves changes detected at or after since, newest
	// first, up to limit records. limit <= 0 means no limit.
	GetChanges(ctx context.Context, since time.Time, limit int) ([]*core.ChangeRecord, error)

	// MarkNotified flips the notified flag on the given change records.
	// Consumed by an external notification collaborator.
	// Returns ErrNotFound if any record doesn't exist.
	MarkNotified(ctx context.Context, ids ...core.ID) error

	// Close releases resources held by the log.
	Close() error
}

// MetaStore persists small operational bookkeeping values, currently the
// outcome of the most recent completed refresh.
type MetaStore interface {
	// SetLastRefresh records the completion of a refresh cycle.
	SetLastRefresh(ctx context.Context, info *core.RefreshInfo) error

	// GetLastRefresh returns the most recent refresh record, or nil if no
	// refresh has completed yet.
	GetLastRefresh(ctx context.Context) (*core.RefreshInfo, error)
}
