package commands

import (
	"context"

	"magicmover/internal/core/domain/model/item"
	"magicmover/internal/core/ports"
)

// CreateItemCommandHandler registers new items in the item registry.
type CreateItemCommandHandler struct {
	items ports.ItemRepository
	clock Clock
}

func NewCreateItemCommandHandler(items ports.ItemRepository, clock Clock) CreateItemCommandHandler {
	return CreateItemCommandHandler{
		items: items,
		clock: clock,
	}
}

// Handle creates the item and returns it as stored.
func (h CreateItemCommandHandler) Handle(ctx context.Context, cmd CreateItemCommand) (*item.Item, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	aggregate, err := item.NewItem(cmd.ItemID(), cmd.Name(), cmd.Weight(), h.clock.now())
	if err != nil {
		return nil, err
	}

	if err = h.items.Add(ctx, aggregate); err != nil {
		return nil, storageError("add item", err)
	}

	return aggregate, nil
}
