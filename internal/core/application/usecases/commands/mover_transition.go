package commands

import (
	"context"
	"time"

	"magicmover/internal/core/domain/model/kernel"
	"magicmover/internal/core/domain/model/mover"
	"magicmover/internal/core/ports"
	"magicmover/internal/pkg/errs"
)

// moverTransition runs the read, mutate, compare-and-swap cycle shared by all
// mover commands. It never retries: a stale version is reported to the caller
// as *errs.ConcurrencyConflictError.
type moverTransition struct {
	movers   ports.MoverRepository
	recorder *ActivityRecorder
	clock    Clock
}

func (t moverTransition) apply(
	ctx context.Context,
	moverID kernel.UUID,
	mutate func(m *mover.Mover, now time.Time) (mover.Change, error),
) (*mover.Mover, error) {
	m, err := t.movers.Get(ctx, moverID)
	if err != nil {
		return nil, storageError("get mover", err)
	}

	return t.commit(ctx, m, mutate)
}

func (t moverTransition) commit(
	ctx context.Context,
	m *mover.Mover,
	mutate func(m *mover.Mover, now time.Time) (mover.Change, error),
) (*mover.Mover, error) {
	expectedVersion := m.Version()

	change, err := mutate(m, t.clock.now())
	if err != nil {
		return nil, err
	}

	updated, err := t.movers.UpdateIfVersion(ctx, m, expectedVersion)
	if err != nil {
		return nil, storageError("update mover", err)
	}
	if !updated {
		return nil, errs.NewConcurrencyConflictError("mover", m.ID().String(), expectedVersion)
	}

	t.recorder.Record(ctx, change)

	return m, nil
}
