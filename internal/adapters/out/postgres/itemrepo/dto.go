// Package itemrepo persists items in PostgreSQL through GORM and converts
// between the item entity and its table row.
package itemrepo

import (
	"time"

	"magicmover/internal/core/domain/model/item"
	"magicmover/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ItemDTO is the row shape of an item. Weight is an unconstrained numeric so
// the stored value is exactly the decimal the item was created with.
type ItemDTO struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Name      string          `gorm:"type:varchar(255);not null"`
	Weight    decimal.Decimal `gorm:"type:numeric;not null"`
	CreatedAt time.Time       `gorm:"not null;index;autoCreateTime:false"`
}

// TableName overrides GORM's "item_dtos".
func (ItemDTO) TableName() string {
	return "items"
}

func fromDomain(aggregate *item.Item) ItemDTO {
	return ItemDTO{
		ID:        aggregate.ID().Bytes(),
		Name:      aggregate.Name(),
		Weight:    aggregate.Weight().Decimal(),
		CreatedAt: aggregate.CreatedAt(),
	}
}

func toDomain(dto ItemDTO) (*item.Item, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	weight, err := kernel.NewWeight(dto.Weight)
	if err != nil {
		return nil, err
	}
	return item.RestoreItem(id, dto.Name, weight, dto.CreatedAt)
}
