package commands

import (
	"context"
	"time"

	"magicmover/internal/core/domain/model/mover"
	"magicmover/internal/core/ports"
)

// StartMissionCommandHandler sends a loading mover on a mission and records
// a MISSION_STARTED entry with a snapshot of its cargo.
type StartMissionCommandHandler struct {
	moverTransition
}

func NewStartMissionCommandHandler(
	movers ports.MoverRepository,
	recorder *ActivityRecorder,
	clock Clock,
) StartMissionCommandHandler {
	return StartMissionCommandHandler{
		moverTransition: moverTransition{movers: movers, recorder: recorder, clock: clock},
	}
}

func (h StartMissionCommandHandler) Handle(ctx context.Context, cmd StartMissionCommand) (*mover.Mover, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	return h.apply(ctx, cmd.MoverID(), func(m *mover.Mover, now time.Time) (mover.Change, error) {
		return m.StartMission(now)
	})
}
