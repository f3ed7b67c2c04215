package commands

import (
	"context"

	"magicmover/internal/core/domain/model/mover"
	"magicmover/internal/core/ports"
)

// CreateMoverCommandHandler puts new movers into service. Movers start RESTING
// with no cargo at version 0.
type CreateMoverCommandHandler struct {
	movers ports.MoverRepository
	clock  Clock
}

func NewCreateMoverCommandHandler(movers ports.MoverRepository, clock Clock) CreateMoverCommandHandler {
	return CreateMoverCommandHandler{
		movers: movers,
		clock:  clock,
	}
}

func (h CreateMoverCommandHandler) Handle(ctx context.Context, cmd CreateMoverCommand) (*mover.Mover, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	aggregate, err := mover.NewMover(cmd.MoverID(), cmd.Name(), cmd.WeightLimit(), h.clock.now())
	if err != nil {
		return nil, err
	}

	if err = h.movers.Add(ctx, aggregate); err != nil {
		return nil, storageError("add mover", err)
	}

	return aggregate, nil
}
