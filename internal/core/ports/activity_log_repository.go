package ports

import (
	"context"

	"magicmover/internal/core/domain/model/activity"
	"magicmover/internal/core/domain/model/kernel"
)

// ActivityLogRepository is the append-only store of activity entries.
// Entries are never updated or deleted.
type ActivityLogRepository interface {
	// Append persists entry. The mover id is not checked.
	Append(ctx context.Context, entry *activity.Entry) error

	// FindByMover returns the mover's entries, newest first.
	FindByMover(ctx context.Context, moverID kernel.UUID) ([]*activity.Entry, error)

	// FindByTypeAndItem returns entries of type t whose details list itemID,
	// oldest first. Only LOADING entries list item ids.
	FindByTypeAndItem(ctx context.Context, t activity.Type, itemID kernel.UUID) ([]*activity.Entry, error)
}
