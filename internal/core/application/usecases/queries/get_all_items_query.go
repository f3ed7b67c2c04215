package queries

import (
	"context"
	"errors"

	"magicmover/internal/core/ports"
	"magicmover/internal/pkg/guard"
)

var ErrGetAllItemsQueryIsNotConstructed = errors.New(
	"GetAllItemsQuery must be created via NewGetAllItemsQuery constructor",
)

// GetAllItemsQuery lists the item registry, oldest first.
type GetAllItemsQuery struct {
	guard guard.ConstructorGuard
}

func NewGetAllItemsQuery() GetAllItemsQuery {
	return GetAllItemsQuery{guard: guard.NewConstructorGuard()}
}

func (q GetAllItemsQuery) Validate() error {
	return q.guard.Validate(ErrGetAllItemsQueryIsNotConstructed)
}

type GetAllItemsQueryHandler struct {
	items ports.ItemRepository
}

func NewGetAllItemsQueryHandler(items ports.ItemRepository) GetAllItemsQueryHandler {
	return GetAllItemsQueryHandler{items: items}
}

func (h GetAllItemsQueryHandler) Handle(ctx context.Context, query GetAllItemsQuery) ([]ItemView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	items, err := h.items.GetAll(ctx)
	if err != nil {
		return nil, storageError("list items", err)
	}

	views := make([]ItemView, 0, len(items))
	for _, i := range items {
		views = append(views, NewItemView(i))
	}
	return views, nil
}
