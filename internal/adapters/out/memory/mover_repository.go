package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"magicmover/internal/core/domain/model/kernel"
	"magicmover/internal/core/domain/model/mover"
	"magicmover/internal/core/ports"
	"magicmover/internal/pkg/errs"
)

var _ ports.MoverRepository = (*MoverRepository)(nil)

// moverRecord is the stored shape of a mover, detached from any aggregate the
// caller may still be mutating.
type moverRecord struct {
	id                kernel.UUID
	name              string
	weightLimit       kernel.Weight
	currentWeight     kernel.Weight
	state             mover.State
	items             []kernel.UUID
	completedMissions int
	version           int64
	createdAt         time.Time
	updatedAt         time.Time
}

func fromMover(m *mover.Mover) moverRecord {
	return moverRecord{
		id:                m.ID(),
		name:              m.Name(),
		weightLimit:       m.WeightLimit(),
		currentWeight:     m.CurrentWeight(),
		state:             m.State(),
		items:             m.Items(),
		completedMissions: m.CompletedMissions(),
		version:           m.Version(),
		createdAt:         m.CreatedAt(),
		updatedAt:         m.UpdatedAt(),
	}
}

func (r moverRecord) toMover() (*mover.Mover, error) {
	return mover.RestoreMover(
		r.id, r.name, r.weightLimit, r.currentWeight, r.state,
		r.items, r.completedMissions, r.version, r.createdAt, r.updatedAt,
	)
}

// MoverRepository stores movers in memory with compare-and-swap updates.
type MoverRepository struct {
	mu     sync.RWMutex
	movers map[kernel.UUID]moverRecord
}

func NewMoverRepository() *MoverRepository {
	return &MoverRepository{movers: make(map[kernel.UUID]moverRecord)}
}

func (r *MoverRepository) Add(_ context.Context, aggregate *mover.Mover) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.movers[aggregate.ID()]; ok {
		return errs.NewValueIsInvalidError("mover id already exists")
	}
	r.movers[aggregate.ID()] = fromMover(aggregate)
	return nil
}

func (r *MoverRepository) Get(_ context.Context, id kernel.UUID) (*mover.Mover, error) {
	r.mu.RLock()
	record, ok := r.movers[id]
	r.mu.RUnlock()

	if !ok {
		return nil, errs.NewObjectNotFoundError("mover", id.String())
	}
	return record.toMover()
}

func (r *MoverRepository) GetAll(_ context.Context) ([]*mover.Mover, error) {
	r.mu.RLock()
	records := make([]moverRecord, 0, len(r.movers))
	for _, record := range r.movers {
		records = append(records, record)
	}
	r.mu.RUnlock()

	sort.Slice(records, func(i, j int) bool {
		if records[i].createdAt.Equal(records[j].createdAt) {
			return records[i].id.String() < records[j].id.String()
		}
		return records[i].createdAt.Before(records[j].createdAt)
	})

	out := make([]*mover.Mover, 0, len(records))
	for _, record := range records {
		m, err := record.toMover()
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}

func (r *MoverRepository) UpdateIfVersion(_ context.Context, aggregate *mover.Mover, expectedVersion int64) (bool, error) {
	if err := aggregate.Validate(); err != nil {
		return false, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.movers[aggregate.ID()]
	if !ok || stored.version != expectedVersion {
		return false, nil
	}
	r.movers[aggregate.ID()] = fromMover(aggregate)
	return true, nil
}
