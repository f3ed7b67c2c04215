package commands

import (
	"context"
	"time"

	"magicmover/internal/core/domain/model/mover"
	"magicmover/internal/core/ports"
)

// UnloadItemsCommandHandler empties a loading mover without counting a mission.
type UnloadItemsCommandHandler struct {
	moverTransition
}

func NewUnloadItemsCommandHandler(
	movers ports.MoverRepository,
	recorder *ActivityRecorder,
	clock Clock,
) UnloadItemsCommandHandler {
	return UnloadItemsCommandHandler{
		moverTransition: moverTransition{movers: movers, recorder: recorder, clock: clock},
	}
}

func (h UnloadItemsCommandHandler) Handle(ctx context.Context, cmd UnloadItemsCommand) (*mover.Mover, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	return h.apply(ctx, cmd.MoverID(), func(m *mover.Mover, now time.Time) (mover.Change, error) {
		return m.Unload(now)
	})
}
