package memory

import (
	"context"
	"sort"
	"sync"

	"magicmover/internal/core/domain/model/item"
	"magicmover/internal/core/domain/model/kernel"
	"magicmover/internal/core/ports"
	"magicmover/internal/pkg/errs"
)

var _ ports.ItemRepository = (*ItemRepository)(nil)

// ItemRepository stores items in memory. Items are immutable, so the stored
// pointers are shared with callers.
type ItemRepository struct {
	mu    sync.RWMutex
	items map[kernel.UUID]*item.Item
	order []kernel.UUID
}

func NewItemRepository() *ItemRepository {
	return &ItemRepository{items: make(map[kernel.UUID]*item.Item)}
}

func (r *ItemRepository) Add(_ context.Context, aggregate *item.Item) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[aggregate.ID()]; ok {
		return errs.NewValueIsInvalidError("item id already exists")
	}
	r.items[aggregate.ID()] = aggregate
	r.order = append(r.order, aggregate.ID())
	return nil
}

func (r *ItemRepository) Get(_ context.Context, id kernel.UUID) (*item.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i, ok := r.items[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("item", id.String())
	}
	return i, nil
}

func (r *ItemRepository) GetAll(_ context.Context) ([]*item.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*item.Item, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.items[id])
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt().Before(out[j].CreatedAt())
	})
	return out, nil
}

func (r *ItemRepository) FindByIDs(_ context.Context, ids []kernel.UUID) ([]*item.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[kernel.UUID]struct{}, len(ids))
	out := make([]*item.Item, 0, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if i, ok := r.items[id]; ok {
			out = append(out, i)
		}
	}
	return out, nil
}
