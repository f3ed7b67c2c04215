package queries_test

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"magicmover/internal/adapters/out/memory"
	"magicmover/internal/core/application/usecases/commands"
	"magicmover/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/require"
)

// world drives the real command handlers over in-memory storage.
type world struct {
	t        *testing.T
	items    *memory.ItemRepository
	movers   *memory.MoverRepository
	log      *memory.ActivityLogRepository
	recorder *commands.ActivityRecorder
	clock    commands.Clock
}

func newWorld(t *testing.T) *world {
	w := &world{
		t:      t,
		items:  memory.NewItemRepository(),
		movers: memory.NewMoverRepository(),
		log:    memory.NewActivityLogRepository(),
	}
	tick := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	w.clock = func() time.Time {
		tick = tick.Add(time.Second)
		return tick
	}
	w.recorder = commands.NewActivityRecorder(w.log, nil, discardLogger())
	return w
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func (w *world) weight(v string) kernel.Weight {
	w.t.Helper()
	wt, err := kernel.WeightFromString(v)
	require.NoError(w.t, err)
	return wt
}

func (w *world) item(name string) kernel.UUID {
	w.t.Helper()
	cmd, err := commands.NewCreateItemCommand(name, w.weight("1"))
	require.NoError(w.t, err)
	created, err := commands.NewCreateItemCommandHandler(w.items, w.clock).Handle(w.t.Context(), cmd)
	require.NoError(w.t, err)
	return created.ID()
}

func (w *world) mover(name string) kernel.UUID {
	w.t.Helper()
	cmd, err := commands.NewCreateMoverCommand(name, w.weight("100"))
	require.NoError(w.t, err)
	created, err := commands.NewCreateMoverCommandHandler(w.movers, w.clock).Handle(w.t.Context(), cmd)
	require.NoError(w.t, err)
	return created.ID()
}

func (w *world) mission(moverID kernel.UUID, itemIDs ...kernel.UUID) {
	w.t.Helper()
	ctx := w.t.Context()

	load, err := commands.NewLoadItemsCommand(moverID, itemIDs)
	require.NoError(w.t, err)
	_, err = commands.NewLoadItemsCommandHandler(w.movers, w.items, w.recorder, w.clock).Handle(ctx, load)
	require.NoError(w.t, err)

	start, err := commands.NewStartMissionCommand(moverID)
	require.NoError(w.t, err)
	_, err = commands.NewStartMissionCommandHandler(w.movers, w.recorder, w.clock).Handle(ctx, start)
	require.NoError(w.t, err)

	end, err := commands.NewEndMissionCommand(moverID)
	require.NoError(w.t, err)
	_, err = commands.NewEndMissionCommandHandler(w.movers, w.recorder, w.clock).Handle(ctx, end)
	require.NoError(w.t, err)
}
