package commands

import (
	"errors"

	"magicmover/internal/core/domain/model/kernel"
	"magicmover/internal/pkg/errs"
	"magicmover/internal/pkg/guard"
)

var (
	ErrCreateMoverCommandIsNotConstructed = errors.New(
		"CreateMoverCommand must be created via NewCreateMoverCommand constructor",
	)
	ErrWeightLimitIsInvalid = errs.NewValueIsInvalidError("weight limit must be greater than 0")
)

// CreateMoverCommand represents a request to put a new mover into service.
// The name is optional.
//
// Example:
//
//	limit, _ := kernel.WeightFromFloat(100)
//	cmd, err := NewCreateMoverCommand("Merlin", limit)
type CreateMoverCommand struct { //nolint:recvcheck //using for validation
	moverID     kernel.UUID
	name        string
	weightLimit kernel.Weight

	guard guard.ConstructorGuard
}

func NewCreateMoverCommand(name string, weightLimit kernel.Weight) (CreateMoverCommand, error) {
	command := CreateMoverCommand{
		name:  name,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setMoverID(kernel.NewUUID()),
		command.setWeightLimit(weightLimit),
	); err != nil {
		return CreateMoverCommand{}, err
	}

	return command, nil
}

func (c CreateMoverCommand) Validate() error {
	return c.guard.Validate(ErrCreateMoverCommandIsNotConstructed)
}

func (c CreateMoverCommand) MoverID() kernel.UUID {
	return c.moverID
}

func (c CreateMoverCommand) Name() string {
	return c.name
}

func (c CreateMoverCommand) WeightLimit() kernel.Weight {
	return c.weightLimit
}

func (c *CreateMoverCommand) setMoverID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.moverID = id
	return nil
}

func (c *CreateMoverCommand) setWeightLimit(limit kernel.Weight) error {
	if limit.Validate() != nil || !limit.IsPositive() {
		return ErrWeightLimitIsInvalid
	}

	c.weightLimit = limit
	return nil
}
