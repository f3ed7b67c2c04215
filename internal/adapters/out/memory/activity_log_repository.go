package memory

import (
	"context"
	"slices"
	"sort"
	"sync"

	"magicmover/internal/core/domain/model/activity"
	"magicmover/internal/core/domain/model/kernel"
	"magicmover/internal/core/ports"
)

var _ ports.ActivityLogRepository = (*ActivityLogRepository)(nil)

// ActivityLogRepository is an append-only slice of entries. Entries are
// immutable, so they are shared with callers.
type ActivityLogRepository struct {
	mu      sync.RWMutex
	entries []*activity.Entry
}

func NewActivityLogRepository() *ActivityLogRepository {
	return &ActivityLogRepository{}
}

func (r *ActivityLogRepository) Append(_ context.Context, entry *activity.Entry) error {
	if err := entry.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries = append(r.entries, entry)
	return nil
}

func (r *ActivityLogRepository) FindByMover(_ context.Context, moverID kernel.UUID) ([]*activity.Entry, error) {
	out := r.filter(func(e *activity.Entry) bool {
		return e.MoverID().IsEqual(moverID)
	})
	// Newest first; entries with equal timestamps keep reverse append order.
	slices.Reverse(out)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt().After(out[j].CreatedAt())
	})
	return out, nil
}

func (r *ActivityLogRepository) FindByTypeAndItem(
	_ context.Context,
	t activity.Type,
	itemID kernel.UUID,
) ([]*activity.Entry, error) {
	out := r.filter(func(e *activity.Entry) bool {
		return e.Type() == t && e.ContainsItem(itemID)
	})
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt().Before(out[j].CreatedAt())
	})
	return out, nil
}

func (r *ActivityLogRepository) filter(keep func(e *activity.Entry) bool) []*activity.Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*activity.Entry, 0)
	for _, e := range r.entries {
		if keep(e) {
			out = append(out, e)
		}
	}
	return out
}
