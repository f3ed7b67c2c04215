package ports

import (
	"context"

	"magicmover/internal/core/domain/model/kernel"
	"magicmover/internal/core/domain/model/mover"
)

// MoverRepository stores mover aggregates with optimistic concurrency.
type MoverRepository interface {
	// Add persists a new mover.
	Add(ctx context.Context, aggregate *mover.Mover) error

	// Get retrieves a mover by id, including its current version.
	Get(ctx context.Context, id kernel.UUID) (*mover.Mover, error)

	// GetAll returns every mover ordered by creation time, oldest first.
	GetAll(ctx context.Context) ([]*mover.Mover, error)

	// UpdateIfVersion writes aggregate only if the stored version still equals
	// expectedVersion. It reports false, with a nil error, when the stored
	// version moved on or the mover no longer exists.
	//
	// Example:
	//   expected := m.Version()
	//   if _, err := m.EndMission(now); err != nil {
	//       return err
	//   }
	//   ok, err := repo.UpdateIfVersion(ctx, m, expected)
	UpdateIfVersion(ctx context.Context, aggregate *mover.Mover, expectedVersion int64) (bool, error)
}
