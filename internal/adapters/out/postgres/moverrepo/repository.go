package moverrepo

import (
	"context"
	"errors"

	"magicmover/internal/core/domain/model/kernel"
	"magicmover/internal/core/domain/model/mover"
	"magicmover/internal/core/ports"
	"magicmover/internal/pkg/errs"

	"gorm.io/gorm"
)

var _ ports.MoverRepository = (*GormMoverRepository)(nil)

// errStaleVersion aborts the update transaction when the version guard
// matched no row. It never leaves this package.
var errStaleVersion = errors.New("mover version is stale")

// GormMoverRepository implements ports.MoverRepository using GORM.
type GormMoverRepository struct {
	db *gorm.DB
}

func NewGormMoverRepository(db *gorm.DB) *GormMoverRepository {
	return &GormMoverRepository{db: db}
}

// Add inserts the mover row and its cargo rows.
func (r *GormMoverRepository) Add(ctx context.Context, aggregate *mover.Mover) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	return r.db.WithContext(ctx).Create(&dto).Error
}

func (r *GormMoverRepository) Get(ctx context.Context, id kernel.UUID) (*mover.Mover, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto MoverDTO
	if err := r.withItems(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("mover", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

func (r *GormMoverRepository) GetAll(ctx context.Context) ([]*mover.Mover, error) {
	var dtos []MoverDTO
	if err := r.withItems(ctx).Order("created_at, id").Find(&dtos).Error; err != nil {
		return nil, err
	}

	movers := make([]*mover.Mover, 0, len(dtos))
	for _, dto := range dtos {
		m, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		movers = append(movers, m)
	}
	return movers, nil
}

// UpdateIfVersion rewrites the mover row guarded by "version = expected" and
// replaces its cargo rows, all in one transaction. No matched row means the
// mover changed or vanished since it was read.
//
// Example:
//
//	ok, err := repo.UpdateIfVersion(ctx, m, expected)
//	if err == nil && !ok {
//		return errs.NewConcurrencyConflictError("mover", m.ID().String(), expected)
//	}
func (r *GormMoverRepository) UpdateIfVersion(ctx context.Context, aggregate *mover.Mover, expectedVersion int64) (bool, error) {
	if err := aggregate.Validate(); err != nil {
		return false, err
	}

	dto := fromDomain(aggregate)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&MoverDTO{}).
			Where("id = ? AND version = ?", dto.ID, expectedVersion).
			Updates(map[string]any{
				"name":               dto.Name,
				"weight_limit":       dto.WeightLimit,
				"current_weight":     dto.CurrentWeight,
				"state":              dto.State,
				"completed_missions": dto.CompletedMissions,
				"version":            dto.Version,
				"updated_at":         dto.UpdatedAt,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return errStaleVersion
		}

		if err := tx.Where("mover_id = ?", dto.ID).Delete(&MoverItemDTO{}).Error; err != nil {
			return err
		}
		if len(dto.Items) == 0 {
			return nil
		}
		return tx.Create(&dto.Items).Error
	})

	if errors.Is(err, errStaleVersion) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *GormMoverRepository) withItems(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("position")
	})
}
