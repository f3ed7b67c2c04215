package commands

import (
	"context"
	"time"

	"magicmover/internal/core/domain/model/item"
	"magicmover/internal/core/domain/model/kernel"
	"magicmover/internal/core/domain/model/mover"
	"magicmover/internal/core/ports"
	"magicmover/internal/pkg/errs"
)

// LoadItemsCommandHandler loads items onto a mover.
//
// Checks run in a fixed order: the mover exists, every item exists, then the
// mover's own rules (duplicates, state, capacity). The write is conditioned on
// the version read at the start; a LOADING activity entry follows on success.
type LoadItemsCommandHandler struct {
	moverTransition
	items ports.ItemRepository
}

func NewLoadItemsCommandHandler(
	movers ports.MoverRepository,
	items ports.ItemRepository,
	recorder *ActivityRecorder,
	clock Clock,
) LoadItemsCommandHandler {
	return LoadItemsCommandHandler{
		moverTransition: moverTransition{movers: movers, recorder: recorder, clock: clock},
		items:           items,
	}
}

func (h LoadItemsCommandHandler) Handle(ctx context.Context, cmd LoadItemsCommand) (*mover.Mover, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	m, err := h.movers.Get(ctx, cmd.MoverID())
	if err != nil {
		return nil, storageError("get mover", err)
	}

	cargo, err := h.fetchItems(ctx, cmd.ItemIDs())
	if err != nil {
		return nil, err
	}

	return h.commit(ctx, m, func(m *mover.Mover, now time.Time) (mover.Change, error) {
		return m.Load(cargo, now)
	})
}

// fetchItems resolves ids in request order. Repeated ids resolve to the same item.
func (h LoadItemsCommandHandler) fetchItems(ctx context.Context, ids []kernel.UUID) ([]*item.Item, error) {
	found, err := h.items.FindByIDs(ctx, ids)
	if err != nil {
		return nil, storageError("find items", err)
	}

	byID := make(map[kernel.UUID]*item.Item, len(found))
	for _, i := range found {
		byID[i.ID()] = i
	}

	cargo := make([]*item.Item, 0, len(ids))
	var missing []string
	reported := make(map[kernel.UUID]struct{})
	for _, id := range ids {
		i, ok := byID[id]
		if ok {
			cargo = append(cargo, i)
			continue
		}
		if _, seen := reported[id]; !seen {
			reported[id] = struct{}{}
			missing = append(missing, id.String())
		}
	}

	if len(missing) > 0 {
		return nil, errs.NewObjectsNotFoundError("items", missing)
	}

	return cargo, nil
}
