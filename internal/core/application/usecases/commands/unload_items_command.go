package commands

import (
	"errors"

	"magicmover/internal/core/domain/model/kernel"
	"magicmover/internal/pkg/guard"
)

var ErrUnloadItemsCommandIsNotConstructed = errors.New(
	"UnloadItemsCommand must be created via NewUnloadItemsCommand constructor",
)

// UnloadItemsCommand asks a loading mover to drop all of its cargo.
type UnloadItemsCommand struct { //nolint:recvcheck //using for validation
	moverID kernel.UUID

	guard guard.ConstructorGuard
}

func NewUnloadItemsCommand(moverID kernel.UUID) (UnloadItemsCommand, error) {
	if err := moverID.Validate(); err != nil {
		return UnloadItemsCommand{}, err
	}

	return UnloadItemsCommand{
		moverID: moverID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c UnloadItemsCommand) Validate() error {
	return c.guard.Validate(ErrUnloadItemsCommandIsNotConstructed)
}

func (c UnloadItemsCommand) MoverID() kernel.UUID {
	return c.moverID
}
