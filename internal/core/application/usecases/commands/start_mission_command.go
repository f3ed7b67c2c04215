package commands

import (
	"errors"

	"magicmover/internal/core/domain/model/kernel"
	"magicmover/internal/pkg/guard"
)

var ErrStartMissionCommandIsNotConstructed = errors.New(
	"StartMissionCommand must be created via NewStartMissionCommand constructor",
)

// StartMissionCommand asks a loading mover to leave on a mission with its cargo.
type StartMissionCommand struct { //nolint:recvcheck //using for validation
	moverID kernel.UUID

	guard guard.ConstructorGuard
}

func NewStartMissionCommand(moverID kernel.UUID) (StartMissionCommand, error) {
	if err := moverID.Validate(); err != nil {
		return StartMissionCommand{}, err
	}

	return StartMissionCommand{
		moverID: moverID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c StartMissionCommand) Validate() error {
	return c.guard.Validate(ErrStartMissionCommandIsNotConstructed)
}

func (c StartMissionCommand) MoverID() kernel.UUID {
	return c.moverID
}
