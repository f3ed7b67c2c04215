package commands

import (
	"errors"

	"magicmover/internal/core/domain/model/kernel"
	"magicmover/internal/pkg/guard"
)

var ErrEndMissionCommandIsNotConstructed = errors.New(
	"EndMissionCommand must be created via NewEndMissionCommand constructor",
)

// EndMissionCommand asks a mover on a mission to come back and rest.
type EndMissionCommand struct { //nolint:recvcheck //using for validation
	moverID kernel.UUID

	guard guard.ConstructorGuard
}

func NewEndMissionCommand(moverID kernel.UUID) (EndMissionCommand, error) {
	if err := moverID.Validate(); err != nil {
		return EndMissionCommand{}, err
	}

	return EndMissionCommand{
		moverID: moverID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c EndMissionCommand) Validate() error {
	return c.guard.Validate(ErrEndMissionCommandIsNotConstructed)
}

func (c EndMissionCommand) MoverID() kernel.UUID {
	return c.moverID
}
