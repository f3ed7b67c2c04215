package commands

import (
	"context"
	"time"

	"magicmover/internal/core/domain/model/mover"
	"magicmover/internal/core/ports"
)

// EndMissionCommandHandler brings a mover back from its mission. Cargo is
// cleared and the mission counter grows by one.
//
// Two concurrent calls for the same mover read the same version; only one
// write can match it, the other fails with *errs.ConcurrencyConflictError, so
// the counter never grows twice for one mission.
type EndMissionCommandHandler struct {
	moverTransition
}

func NewEndMissionCommandHandler(
	movers ports.MoverRepository,
	recorder *ActivityRecorder,
	clock Clock,
) EndMissionCommandHandler {
	return EndMissionCommandHandler{
		moverTransition: moverTransition{movers: movers, recorder: recorder, clock: clock},
	}
}

func (h EndMissionCommandHandler) Handle(ctx context.Context, cmd EndMissionCommand) (*mover.Mover, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	return h.apply(ctx, cmd.MoverID(), func(m *mover.Mover, now time.Time) (mover.Change, error) {
		return m.EndMission(now)
	})
}
