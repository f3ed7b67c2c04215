package queries

import (
	"context"
	"errors"

	"magicmover/internal/core/domain/model/kernel"
	"magicmover/internal/core/ports"
	"magicmover/internal/pkg/guard"
)

var ErrGetMoverActivityQueryIsNotConstructed = errors.New(
	"GetMoverActivityQuery must be created via NewGetMoverActivityQuery constructor",
)

// GetMoverActivityQuery reads the activity log of one mover, newest first.
type GetMoverActivityQuery struct {
	moverID kernel.UUID
	guard   guard.ConstructorGuard
}

func NewGetMoverActivityQuery(moverID kernel.UUID) (GetMoverActivityQuery, error) {
	if err := moverID.Validate(); err != nil {
		return GetMoverActivityQuery{}, err
	}
	return GetMoverActivityQuery{moverID: moverID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetMoverActivityQuery) Validate() error {
	return q.guard.Validate(ErrGetMoverActivityQueryIsNotConstructed)
}

func (q GetMoverActivityQuery) MoverID() kernel.UUID {
	return q.moverID
}

// GetMoverActivityQueryHandler reports an unknown mover as not found rather
// than returning an empty log.
type GetMoverActivityQueryHandler struct {
	movers ports.MoverRepository
	log    ports.ActivityLogRepository
}

func NewGetMoverActivityQueryHandler(
	movers ports.MoverRepository,
	log ports.ActivityLogRepository,
) GetMoverActivityQueryHandler {
	return GetMoverActivityQueryHandler{movers: movers, log: log}
}

func (h GetMoverActivityQueryHandler) Handle(ctx context.Context, query GetMoverActivityQuery) ([]ActivityView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	if _, err := h.movers.Get(ctx, query.MoverID()); err != nil {
		return nil, storageError("get mover", err)
	}

	entries, err := h.log.FindByMover(ctx, query.MoverID())
	if err != nil {
		return nil, storageError("find mover activity", err)
	}

	views := make([]ActivityView, 0, len(entries))
	for _, e := range entries {
		views = append(views, NewActivityView(e))
	}
	return views, nil
}
