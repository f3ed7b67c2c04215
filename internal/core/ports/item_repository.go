package ports

import (
	"context"

	"magicmover/internal/core/domain/model/item"
	"magicmover/internal/core/domain/model/kernel"
)

// ItemRepository stores immutable cargo items.
type ItemRepository interface {
	// Add persists a new item.
	Add(ctx context.Context, aggregate *item.Item) error

	// Get retrieves an item by id.
	Get(ctx context.Context, id kernel.UUID) (*item.Item, error)

	// GetAll returns every item ordered by creation time, oldest first.
	GetAll(ctx context.Context) ([]*item.Item, error)

	// FindByIDs returns the existing items among ids, in no particular order.
	// Unknown ids are skipped, not reported; callers compare the result with
	// what they asked for.
	FindByIDs(ctx context.Context, ids []kernel.UUID) ([]*item.Item, error)
}
