package commands

import (
	"errors"

	"magicmover/internal/core/domain/model/kernel"
	"magicmover/internal/pkg/errs"
	"magicmover/internal/pkg/guard"
)

var (
	ErrCreateItemCommandIsNotConstructed = errors.New(
		"CreateItemCommand must be created via NewCreateItemCommand constructor",
	)
	ErrNameIsRequired  = errs.NewValueIsRequiredError("name")
	ErrWeightIsInvalid = errs.NewValueIsInvalidError("weight must be greater than 0")
)

// CreateItemCommand represents a request to register a new item of cargo.
//
// Example:
//
//	weight, _ := kernel.WeightFromString("0.5")
//	cmd, err := NewCreateItemCommand("Phoenix Feather", weight)
//	if err != nil {
//	    return fmt.Errorf("invalid item data: %w", err)
//	}
//	created, err := handler.Handle(ctx, cmd)
type CreateItemCommand struct { //nolint:recvcheck //using for validation
	itemID kernel.UUID
	name   string
	weight kernel.Weight

	guard guard.ConstructorGuard
}

// NewCreateItemCommand generates the item id and validates name and weight.
func NewCreateItemCommand(name string, weight kernel.Weight) (CreateItemCommand, error) {
	command := CreateItemCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setItemID(kernel.NewUUID()),
		command.setName(name),
		command.setWeight(weight),
	); err != nil {
		return CreateItemCommand{}, err
	}

	return command, nil
}

func (c CreateItemCommand) Validate() error {
	return c.guard.Validate(ErrCreateItemCommandIsNotConstructed)
}

func (c CreateItemCommand) ItemID() kernel.UUID {
	return c.itemID
}

func (c CreateItemCommand) Name() string {
	return c.name
}

func (c CreateItemCommand) Weight() kernel.Weight {
	return c.weight
}

func (c *CreateItemCommand) setItemID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.itemID = id
	return nil
}

func (c *CreateItemCommand) setName(name string) error {
	if name == "" {
		return ErrNameIsRequired
	}

	c.name = name
	return nil
}

func (c *CreateItemCommand) setWeight(weight kernel.Weight) error {
	if weight.Validate() != nil || !weight.IsPositive() {
		return ErrWeightIsInvalid
	}

	c.weight = weight
	return nil
}
