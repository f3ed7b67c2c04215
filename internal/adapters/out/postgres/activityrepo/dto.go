// Package activityrepo persists the append-only activity log in PostgreSQL.
// Details are stored as a jsonb document so item lookups can use containment.
package activityrepo

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"magicmover/internal/core/domain/model/activity"
	"magicmover/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// ActivityDTO is one log row. Seq breaks ties between entries written in the
// same instant.
type ActivityDTO struct {
	ID        uuid.UUID   `gorm:"type:uuid;primaryKey"`
	Seq       int64       `gorm:"autoIncrement;not null;uniqueIndex"`
	MoverID   uuid.UUID   `gorm:"type:uuid;not null;index"`
	Type      string      `gorm:"type:varchar(32);not null;index"`
	Details   DetailsJSON `gorm:"type:jsonb;not null"`
	CreatedAt time.Time   `gorm:"not null;index;autoCreateTime:false"`
}

// TableName overrides GORM's "activity_dtos".
func (ActivityDTO) TableName() string {
	return "activity_logs"
}

// DetailsJSON stores activity.FlatDetails in a jsonb column.
type DetailsJSON activity.FlatDetails

func (d DetailsJSON) Value() (driver.Value, error) {
	raw, err := json.Marshal(activity.FlatDetails(d))
	if err != nil {
		return nil, err
	}
	return string(raw), nil
}

func (d *DetailsJSON) Scan(src any) error {
	var raw []byte
	switch v := src.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("unsupported details column type %T", src)
	}

	var flat activity.FlatDetails
	if err := json.Unmarshal(raw, &flat); err != nil {
		return err
	}
	*d = DetailsJSON(flat)
	return nil
}

func fromDomain(entry *activity.Entry) ActivityDTO {
	return ActivityDTO{
		ID:        entry.ID().Bytes(),
		MoverID:   entry.MoverID().Bytes(),
		Type:      entry.Type().String(),
		Details:   DetailsJSON(activity.Flatten(entry.Details())),
		CreatedAt: entry.CreatedAt(),
	}
}

func toDomain(dto ActivityDTO) (*activity.Entry, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	moverID, err := kernel.UUIDFromBytes(dto.MoverID[:])
	if err != nil {
		return nil, err
	}
	t, err := activity.ParseType(dto.Type)
	if err != nil {
		return nil, err
	}
	details, err := activity.RestoreDetails(t, activity.FlatDetails(dto.Details))
	if err != nil {
		return nil, err
	}
	return activity.RestoreEntry(id, moverID, details, dto.CreatedAt)
}
