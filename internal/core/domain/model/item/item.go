package item

import (
	"errors"
	"fmt"
	"time"

	"magicmover/internal/core/domain/model/kernel"
	"magicmover/internal/pkg/errs"
	"magicmover/internal/pkg/guard"
)

var (
	// ErrNameIsRequired is returned when an item is created without a name.
	ErrNameIsRequired = errs.NewValueIsRequiredError("name")
	// ErrItemIsNotConstructed is returned when using an improperly initialized Item.
	ErrItemIsNotConstructed = errors.New("Item must be created via NewItem constructor")
)

// Item is a unit of cargo with a fixed weight.
type Item struct {
	id        kernel.UUID
	name      string
	weight    kernel.Weight
	createdAt time.Time
	guard     guard.ConstructorGuard
}

// NewItem creates an item. The name must be non-empty and the weight strictly positive.
//
//	feather, err := item.NewItem(kernel.NewUUID(), "Phoenix Feather", w, time.Now())
func NewItem(id kernel.UUID, name string, weight kernel.Weight, createdAt time.Time) (*Item, error) {
	i := &Item{
		createdAt: createdAt,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		i.setID(id),
		i.setName(name),
		i.setWeight(weight),
	); err != nil {
		return nil, err
	}

	return i, nil
}

// RestoreItem rebuilds an item loaded from storage, applying the same rules as NewItem.
func RestoreItem(id kernel.UUID, name string, weight kernel.Weight, createdAt time.Time) (*Item, error) {
	return NewItem(id, name, weight, createdAt)
}

func (i *Item) Validate() error {
	if i == nil {
		return ErrItemIsNotConstructed
	}
	return i.guard.Validate(ErrItemIsNotConstructed)
}

func (i *Item) IsEqual(other *Item) bool {
	return other != nil && i.id.IsEqual(other.id)
}

func (i *Item) ID() kernel.UUID {
	return i.id
}

func (i *Item) Name() string {
	return i.name
}

func (i *Item) Weight() kernel.Weight {
	return i.weight
}

func (i *Item) CreatedAt() time.Time {
	return i.createdAt
}

// TotalWeight sums the weights of items.
func TotalWeight(items []*Item) kernel.Weight {
	total := kernel.ZeroWeight()
	for _, i := range items {
		total = total.Add(i.weight)
	}
	return total
}

func (i *Item) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	i.id = id
	return nil
}

func (i *Item) setName(name string) error {
	if name == "" {
		return ErrNameIsRequired
	}
	i.name = name
	return nil
}

func (i *Item) setWeight(weight kernel.Weight) error {
	if err := weight.Validate(); err != nil {
		return err
	}
	if !weight.IsPositive() {
		return errs.NewValueIsInvalidErrorWithCause(
			"weight",
			fmt.Errorf("%s is not greater than 0", weight.String()),
		)
	}
	i.weight = weight
	return nil
}
