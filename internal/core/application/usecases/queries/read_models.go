// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Queries return read models detached from the aggregates they were built from.
package queries

import (
	"errors"
	"time"

	"magicmover/internal/core/domain/model/activity"
	"magicmover/internal/core/domain/model/item"
	"magicmover/internal/core/domain/model/kernel"
	"magicmover/internal/core/domain/model/mover"
	"magicmover/internal/pkg/errs"
)

// MoverView is the read model of a mover.
type MoverView struct {
	ID                kernel.UUID
	Name              string
	WeightLimit       kernel.Weight
	CurrentWeight     kernel.Weight
	State             mover.State
	Items             []kernel.UUID
	CompletedMissions int
	Version           int64
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func NewMoverView(m *mover.Mover) MoverView {
	return MoverView{
		ID:                m.ID(),
		Name:              m.Name(),
		WeightLimit:       m.WeightLimit(),
		CurrentWeight:     m.CurrentWeight(),
		State:             m.State(),
		Items:             m.Items(),
		CompletedMissions: m.CompletedMissions(),
		Version:           m.Version(),
		CreatedAt:         m.CreatedAt(),
		UpdatedAt:         m.UpdatedAt(),
	}
}

// ItemView is the read model of an item.
type ItemView struct {
	ID        kernel.UUID
	Name      string
	Weight    kernel.Weight
	CreatedAt time.Time
}

func NewItemView(i *item.Item) ItemView {
	return ItemView{
		ID:        i.ID(),
		Name:      i.Name(),
		Weight:    i.Weight(),
		CreatedAt: i.CreatedAt(),
	}
}

// ActivityView is the read model of an activity log entry.
type ActivityView struct {
	ID        kernel.UUID
	MoverID   kernel.UUID
	Type      activity.Type
	Details   activity.Details
	CreatedAt time.Time
}

func NewActivityView(e *activity.Entry) ActivityView {
	return ActivityView{
		ID:        e.ID(),
		MoverID:   e.MoverID(),
		Type:      e.Type(),
		Details:   e.Details(),
		CreatedAt: e.CreatedAt(),
	}
}

// PerformerView is one leaderboard row.
type PerformerView struct {
	Mover    MoverView
	Missions int
}

func storageError(op string, err error) error {
	if errors.Is(err, errs.ErrObjectNotFound) || errors.Is(err, errs.ErrPersistence) {
		return err
	}
	return errs.NewPersistenceError(op, err)
}
