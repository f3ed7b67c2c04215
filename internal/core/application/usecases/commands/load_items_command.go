package commands

import (
	"errors"

	"magicmover/internal/core/domain/model/kernel"
	"magicmover/internal/pkg/errs"
	"magicmover/internal/pkg/guard"
)

var (
	ErrLoadItemsCommandIsNotConstructed = errors.New(
		"LoadItemsCommand must be created via NewLoadItemsCommand constructor",
	)
	ErrItemIDsAreRequired = errs.NewValueIsRequiredError("itemIds")
)

// LoadItemsCommand asks a mover to take items aboard. Item ids are kept in
// request order, repeats included, so the mover can reject them as duplicates.
//
// Example:
//
//	cmd, err := NewLoadItemsCommand(moverID, []kernel.UUID{featherID, scaleID})
//	if err != nil {
//	    return err
//	}
//	m, err := handler.Handle(ctx, cmd)
type LoadItemsCommand struct { //nolint:recvcheck //using for validation
	moverID kernel.UUID
	itemIDs []kernel.UUID

	guard guard.ConstructorGuard
}

func NewLoadItemsCommand(moverID kernel.UUID, itemIDs []kernel.UUID) (LoadItemsCommand, error) {
	command := LoadItemsCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setMoverID(moverID),
		command.setItemIDs(itemIDs),
	); err != nil {
		return LoadItemsCommand{}, err
	}

	return command, nil
}

func (c LoadItemsCommand) Validate() error {
	return c.guard.Validate(ErrLoadItemsCommandIsNotConstructed)
}

func (c LoadItemsCommand) MoverID() kernel.UUID {
	return c.moverID
}

// ItemIDs returns a copy of the requested ids.
func (c LoadItemsCommand) ItemIDs() []kernel.UUID {
	out := make([]kernel.UUID, len(c.itemIDs))
	copy(out, c.itemIDs)
	return out
}

func (c *LoadItemsCommand) setMoverID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.moverID = id
	return nil
}

func (c *LoadItemsCommand) setItemIDs(ids []kernel.UUID) error {
	if len(ids) == 0 {
		return ErrItemIDsAreRequired
	}
	for _, id := range ids {
		if err := id.Validate(); err != nil {
			return err
		}
	}

	c.itemIDs = make([]kernel.UUID, len(ids))
	copy(c.itemIDs, ids)
	return nil
}
