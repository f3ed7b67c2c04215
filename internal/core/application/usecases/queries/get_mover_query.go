package queries

import (
	"context"
	"errors"

	"magicmover/internal/core/domain/model/kernel"
	"magicmover/internal/core/ports"
	"magicmover/internal/pkg/guard"
)

var ErrGetMoverQueryIsNotConstructed = errors.New(
	"GetMoverQuery must be created via NewGetMoverQuery constructor",
)

type GetMoverQuery struct {
	moverID kernel.UUID
	guard   guard.ConstructorGuard
}

func NewGetMoverQuery(moverID kernel.UUID) (GetMoverQuery, error) {
	if err := moverID.Validate(); err != nil {
		return GetMoverQuery{}, err
	}
	return GetMoverQuery{moverID: moverID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetMoverQuery) Validate() error {
	return q.guard.Validate(ErrGetMoverQueryIsNotConstructed)
}

func (q GetMoverQuery) MoverID() kernel.UUID {
	return q.moverID
}

type GetMoverQueryHandler struct {
	movers ports.MoverRepository
}

func NewGetMoverQueryHandler(movers ports.MoverRepository) GetMoverQueryHandler {
	return GetMoverQueryHandler{movers: movers}
}

func (h GetMoverQueryHandler) Handle(ctx context.Context, query GetMoverQuery) (MoverView, error) {
	if err := query.Validate(); err != nil {
		return MoverView{}, err
	}

	m, err := h.movers.Get(ctx, query.MoverID())
	if err != nil {
		return MoverView{}, storageError("get mover", err)
	}
	return NewMoverView(m), nil
}
