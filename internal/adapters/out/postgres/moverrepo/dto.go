// Package moverrepo persists movers in PostgreSQL through GORM.
//
// A mover is one row in "movers" plus one "mover_items" row per item aboard,
// ordered by position. The version column is the optimistic concurrency token
// checked by UpdateIfVersion.
package moverrepo

import (
	"time"

	"magicmover/internal/core/domain/model/kernel"
	"magicmover/internal/core/domain/model/mover"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MoverDTO represents the database structure for persisting mover aggregates.
// Timestamps are owned by the domain, so GORM must not fill them in.
type MoverDTO struct {
	ID                uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Name              string          `gorm:"type:varchar(255);not null"`
	WeightLimit       decimal.Decimal `gorm:"type:numeric;not null"`
	CurrentWeight     decimal.Decimal `gorm:"type:numeric;not null"`
	State             string          `gorm:"type:varchar(16);not null"`
	CompletedMissions int             `gorm:"type:int;not null"`
	Version           int64           `gorm:"type:bigint;not null"`
	CreatedAt         time.Time       `gorm:"not null;index;autoCreateTime:false"`
	UpdatedAt         time.Time       `gorm:"not null;autoUpdateTime:false"`
	Items             []MoverItemDTO  `gorm:"foreignKey:MoverID;constraint:OnDelete:CASCADE"`
}

// TableName overrides GORM's "mover_dtos".
func (MoverDTO) TableName() string {
	return "movers"
}

// MoverItemDTO is one item aboard a mover. Position keeps the load order.
type MoverItemDTO struct {
	MoverID  uuid.UUID `gorm:"type:uuid;primaryKey"`
	Position int       `gorm:"type:int;primaryKey;autoIncrement:false"`
	ItemID   uuid.UUID `gorm:"type:uuid;not null;index"`
}

// TableName overrides GORM's "mover_item_dtos".
func (MoverItemDTO) TableName() string {
	return "mover_items"
}

func fromDomain(aggregate *mover.Mover) MoverDTO {
	id := aggregate.ID().Bytes()
	ids := aggregate.Items()
	items := make([]MoverItemDTO, 0, len(ids))
	for i, itemID := range ids {
		items = append(items, MoverItemDTO{MoverID: id, Position: i, ItemID: itemID.Bytes()})
	}

	return MoverDTO{
		ID:                id,
		Name:              aggregate.Name(),
		WeightLimit:       aggregate.WeightLimit().Decimal(),
		CurrentWeight:     aggregate.CurrentWeight().Decimal(),
		State:             aggregate.State().String(),
		CompletedMissions: aggregate.CompletedMissions(),
		Version:           aggregate.Version(),
		CreatedAt:         aggregate.CreatedAt(),
		UpdatedAt:         aggregate.UpdatedAt(),
		Items:             items,
	}
}

// toDomain expects Items to be sorted by position.
func toDomain(dto MoverDTO) (*mover.Mover, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	limit, err := kernel.NewWeight(dto.WeightLimit)
	if err != nil {
		return nil, err
	}
	current, err := kernel.NewWeight(dto.CurrentWeight)
	if err != nil {
		return nil, err
	}
	state, err := mover.ParseState(dto.State)
	if err != nil {
		return nil, err
	}

	items := make([]kernel.UUID, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		itemID, itemErr := kernel.UUIDFromBytes(itemDTO.ItemID[:])
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, itemID)
	}

	return mover.RestoreMover(
		id, dto.Name, limit, current, state,
		items, dto.CompletedMissions, dto.Version, dto.CreatedAt, dto.UpdatedAt,
	)
}
