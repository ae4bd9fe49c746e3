package repository

import (
	"context"
	"sort"
	"time"

	"github.com/kjbranchesi/alf-coach-backend/internal/blueprints/domain"
)

// Repository persists blueprints scoped by (userID, id). Implementations
// must treat permission-denied from the backing store as "no data" rather
// than an error: guest sessions run under stricter provider rules and an
// empty dashboard is the intended experience, not an alarm.
type Repository interface {
	// List returns the user's non-tombstoned blueprints, most recently
	// updated first. Zero results is not an error.
	List(ctx context.Context, userID string) ([]domain.Blueprint, error)

	// ListDeleted returns the user's tombstoned blueprints still inside the
	// retention window at the time of the call.
	ListDeleted(ctx context.Context, userID string) ([]domain.Blueprint, error)

	Get(ctx context.Context, userID, id string) (*domain.Blueprint, error)

	// Save is idempotent on id. A placeholder id ("new-<ts>") or empty id is
	// replaced with a minted id on first write; the caller must adopt the id
	// on the returned blueprint for all subsequent operations.
	Save(ctx context.Context, b *domain.Blueprint) (*domain.Blueprint, error)

	// Delete tombstones the blueprint, leaving the payload intact. Returns
	// false when no live blueprint matched.
	Delete(ctx context.Context, userID, id string) (bool, error)

	// Restore clears the tombstone. Only valid while the tombstone has not
	// been purged.
	Restore(ctx context.Context, userID, id string) (bool, error)

	// PurgeExpiredDeleted removes the user's tombstones older than the
	// retention window and reports how many were removed.
	PurgeExpiredDeleted(ctx context.Context, userID string, retention time.Duration) (int, error)

	// PurgeAllExpired is the worker-side sweep across all users.
	PurgeAllExpired(ctx context.Context, retention time.Duration) (int, error)

	// CleanupEmpty removes the user's blueprints with no stage-bearing
	// content and reports how many were removed.
	CleanupEmpty(ctx context.Context, userID string) (int, error)
}

// sortByUpdatedDesc orders blueprints most recently updated first, the only
// ordering the dashboard renders.
func sortByUpdatedDesc(items []domain.Blueprint) {
	sort.Slice(items, func(i, j int) bool {
		return items[i].UpdatedAt.After(items[j].UpdatedAt)
	})
}
