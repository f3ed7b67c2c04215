package activityrepo

import (
	"context"
	"encoding/json"

	"magicmover/internal/core/domain/model/activity"
	"magicmover/internal/core/domain/model/kernel"
	"magicmover/internal/core/ports"

	"gorm.io/gorm"
)

var _ ports.ActivityLogRepository = (*GormActivityLogRepository)(nil)

// GormActivityLogRepository implements ports.ActivityLogRepository using GORM.
// Rows are only ever inserted.
type GormActivityLogRepository struct {
	db *gorm.DB
}

func NewGormActivityLogRepository(db *gorm.DB) *GormActivityLogRepository {
	return &GormActivityLogRepository{db: db}
}

func (r *GormActivityLogRepository) Append(ctx context.Context, entry *activity.Entry) error {
	if err := entry.Validate(); err != nil {
		return err
	}

	dto := fromDomain(entry)
	return r.db.WithContext(ctx).Create(&dto).Error
}

func (r *GormActivityLogRepository) FindByMover(ctx context.Context, moverID kernel.UUID) ([]*activity.Entry, error) {
	if err := moverID.Validate(); err != nil {
		return nil, err
	}

	var dtos []ActivityDTO
	if err := r.db.WithContext(ctx).
		Where("mover_id = ?", moverID.Bytes()).
		Order("created_at DESC, seq DESC").
		Find(&dtos).Error; err != nil {
		return nil, err
	}
	return toDomainList(dtos)
}

// FindByTypeAndItem matches entries whose details.itemIds array contains
// itemID using jsonb containment.
func (r *GormActivityLogRepository) FindByTypeAndItem(
	ctx context.Context,
	t activity.Type,
	itemID kernel.UUID,
) ([]*activity.Entry, error) {
	if err := itemID.Validate(); err != nil {
		return nil, err
	}

	contains, err := json.Marshal([]string{itemID.String()})
	if err != nil {
		return nil, err
	}

	var dtos []ActivityDTO
	if err = r.db.WithContext(ctx).
		Where("type = ? AND details -> 'itemIds' @> ?::jsonb", t.String(), string(contains)).
		Order("created_at, seq").
		Find(&dtos).Error; err != nil {
		return nil, err
	}
	return toDomainList(dtos)
}

func toDomainList(dtos []ActivityDTO) ([]*activity.Entry, error) {
	entries := make([]*activity.Entry, 0, len(dtos))
	for _, dto := range dtos {
		e, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, nil
}
