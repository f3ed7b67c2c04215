package queries

import (
	"context"
	"errors"

	"magicmover/internal/core/ports"
	"magicmover/internal/pkg/guard"
)

var ErrGetAllMoversQueryIsNotConstructed = errors.New(
	"GetAllMoversQuery must be created via NewGetAllMoversQuery constructor",
)

// GetAllMoversQuery lists every mover with its current state and cargo.
type GetAllMoversQuery struct {
	guard guard.ConstructorGuard
}

func NewGetAllMoversQuery() GetAllMoversQuery {
	return GetAllMoversQuery{guard: guard.NewConstructorGuard()}
}

func (q GetAllMoversQuery) Validate() error {
	return q.guard.Validate(ErrGetAllMoversQueryIsNotConstructed)
}

// GetAllMoversQueryHandler reads movers oldest first.
//
// Example:
//
//	handler := NewGetAllMoversQueryHandler(moverRepo)
//	movers, err := handler.Handle(ctx, NewGetAllMoversQuery())
type GetAllMoversQueryHandler struct {
	movers ports.MoverRepository
}

func NewGetAllMoversQueryHandler(movers ports.MoverRepository) GetAllMoversQueryHandler {
	return GetAllMoversQueryHandler{movers: movers}
}

func (h GetAllMoversQueryHandler) Handle(ctx context.Context, query GetAllMoversQuery) ([]MoverView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	movers, err := h.movers.GetAll(ctx)
	if err != nil {
		return nil, storageError("list movers", err)
	}

	views := make([]MoverView, 0, len(movers))
	for _, m := range movers {
		views = append(views, NewMoverView(m))
	}
	return views, nil
}
