package queries_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"magicmover/internal/adapters/out/memory"
	"magicmover/internal/core/application/usecases/commands"
	"magicmover/internal/core/application/usecases/queries"
	"magicmover/internal/core/domain/model/activity"
	"magicmover/internal/core/domain/model/kernel"
	"magicmover/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockLeaderboardCache struct {
	mock.Mock
}

func (m *MockLeaderboardCache) Generation(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLeaderboardCache) Get(
	ctx context.Context,
	generation int64,
	itemID kernel.UUID,
) ([]ports.Ranking, bool, error) {
	args := m.Called(ctx, generation, itemID)
	rankings, _ := args.Get(0).([]ports.Ranking)
	return rankings, args.Bool(1), args.Error(2)
}

func (m *MockLeaderboardCache) Set(
	ctx context.Context,
	generation int64,
	itemID kernel.UUID,
	rankings []ports.Ranking,
) error {
	args := m.Called(ctx, generation, itemID, rankings)
	return args.Error(0)
}

func (m *MockLeaderboardCache) Invalidate(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func TestGetTopPerformersQueryHandler_SharedItem(t *testing.T) {
	// Given two movers that completed missions after loading the same item
	w := newWorld(t)
	shared := w.item("Phoenix Feather")
	busy := w.mover("Busy")
	idle := w.mover("Idle")
	bystander := w.mover("Bystander")

	w.mission(idle, shared)
	w.mission(busy, shared)
	w.mission(busy, w.item("Dragon Scale"))
	w.mission(bystander, w.item("Troll Tooth"))

	handler := queries.NewGetTopPerformersQueryHandler(w.movers, w.log, nil, discardLogger())

	// When
	performers, err := handler.Handle(t.Context(), queries.NewGetTopPerformersQuery(&shared))

	// Then both are returned, most missions first
	require.NoError(t, err)
	require.Len(t, performers, 2)
	assert.True(t, performers[0].Mover.ID.IsEqual(busy))
	assert.Equal(t, 2, performers[0].Missions)
	assert.True(t, performers[1].Mover.ID.IsEqual(idle))
	assert.Equal(t, 1, performers[1].Missions)
}

func TestGetTopPerformersQueryHandler_AllMovers(t *testing.T) {
	w := newWorld(t)
	first := w.mover("First")
	second := w.mover("Second")
	third := w.mover("Third")
	w.mission(second, w.item("a"))
	w.mission(second, w.item("b"))
	w.mission(third, w.item("c"))

	handler := queries.NewGetTopPerformersQueryHandler(w.movers, w.log, nil, discardLogger())

	performers, err := handler.Handle(t.Context(), queries.NewGetTopPerformersQuery(nil))

	require.NoError(t, err)
	require.Len(t, performers, 3)
	assert.True(t, performers[0].Mover.ID.IsEqual(second))
	assert.Equal(t, 2, performers[0].Missions)
	assert.True(t, performers[1].Mover.ID.IsEqual(third))
	assert.True(t, performers[2].Mover.ID.IsEqual(first))
	assert.Equal(t, 0, performers[2].Missions)
}

func TestGetTopPerformersQueryHandler_Cache(t *testing.T) {
	t.Run("should serve cached rankings with current mover state", func(t *testing.T) {
		ctx := t.Context()
		w := newWorld(t)
		moverID := w.mover("Cached")
		itemID := kernel.NewUUID()
		cache := new(MockLeaderboardCache)
		cache.On("Generation", ctx).Return(int64(3), nil).Once()
		cache.On("Get", ctx, int64(3), itemID).
			Return([]ports.Ranking{{MoverID: kernel.NewUUID(), Missions: 9}, {MoverID: moverID, Missions: 4}}, true, nil).
			Once()

		handler := queries.NewGetTopPerformersQueryHandler(w.movers, w.log, cache, discardLogger())
		performers, err := handler.Handle(ctx, queries.NewGetTopPerformersQuery(&itemID))

		require.NoError(t, err)
		require.Len(t, performers, 1)
		assert.Equal(t, "Cached", performers[0].Mover.Name)
		assert.Equal(t, 4, performers[0].Missions)
		cache.AssertExpectations(t)
	})

	t.Run("should compute and store on a miss", func(t *testing.T) {
		ctx := t.Context()
		w := newWorld(t)
		shared := w.item("Phoenix Feather")
		moverID := w.mover("Fresh")
		w.mission(moverID, shared)

		cache := new(MockLeaderboardCache)
		cache.On("Generation", ctx).Return(int64(5), nil).Once()
		cache.On("Get", ctx, int64(5), shared).Return(nil, false, nil).Once()
		cache.On("Set", ctx, int64(5), shared, []ports.Ranking{{MoverID: moverID, Missions: 1}}).Return(nil).Once()

		handler := queries.NewGetTopPerformersQueryHandler(w.movers, w.log, cache, discardLogger())
		performers, err := handler.Handle(ctx, queries.NewGetTopPerformersQuery(&shared))

		require.NoError(t, err)
		require.Len(t, performers, 1)
		cache.AssertExpectations(t)
	})

	t.Run("should fall back to the log when the cache fails", func(t *testing.T) {
		ctx := t.Context()
		w := newWorld(t)
		shared := w.item("Phoenix Feather")
		moverID := w.mover("Fallback")
		w.mission(moverID, shared)

		cache := new(MockLeaderboardCache)
		cache.On("Generation", ctx).Return(int64(0), nil).Once()
		cache.On("Get", ctx, int64(0), shared).Return(nil, false, errors.New("connection refused")).Once()
		cache.On("Set", ctx, int64(0), shared, mock.Anything).Return(errors.New("connection refused")).Once()

		handler := queries.NewGetTopPerformersQueryHandler(w.movers, w.log, cache, discardLogger())
		performers, err := handler.Handle(ctx, queries.NewGetTopPerformersQuery(&shared))

		require.NoError(t, err)
		require.Len(t, performers, 1)
		assert.Equal(t, 1, performers[0].Missions)
	})

	t.Run("should not consult the cache without an item", func(t *testing.T) {
		w := newWorld(t)
		cache := new(MockLeaderboardCache)

		handler := queries.NewGetTopPerformersQueryHandler(w.movers, w.log, cache, discardLogger())
		performers, err := handler.Handle(t.Context(), queries.NewGetTopPerformersQuery(nil))

		require.NoError(t, err)
		assert.Empty(t, performers)
		cache.AssertNotCalled(t, "Generation", mock.Anything)
		cache.AssertNotCalled(t, "Get", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("should bypass the cache when the generation is unavailable", func(t *testing.T) {
		ctx := t.Context()
		w := newWorld(t)
		shared := w.item("Phoenix Feather")
		w.mission(w.mover("Bypass"), shared)

		cache := new(MockLeaderboardCache)
		cache.On("Generation", ctx).Return(int64(0), errors.New("connection refused")).Once()

		handler := queries.NewGetTopPerformersQueryHandler(w.movers, w.log, cache, discardLogger())
		performers, err := handler.Handle(ctx, queries.NewGetTopPerformersQuery(&shared))

		require.NoError(t, err)
		require.Len(t, performers, 1)
		assert.Equal(t, 1, performers[0].Missions)
		cache.AssertNotCalled(t, "Get", mock.Anything, mock.Anything, mock.Anything)
		cache.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

// endingLog ends a mission right after the first FindByMover has read the
// log, so the caller ranks from entries that miss that MISSION_ENDED.
type endingLog struct {
	ports.ActivityLogRepository
	once sync.Once
	end  func()
}

func (l *endingLog) FindByMover(ctx context.Context, moverID kernel.UUID) ([]*activity.Entry, error) {
	entries, err := l.ActivityLogRepository.FindByMover(ctx, moverID)
	l.once.Do(l.end)
	return entries, err
}

func TestGetTopPerformersQueryHandler_MissionEndsWhileRanking(t *testing.T) {
	// Arrange
	ctx := t.Context()
	w := newWorld(t)
	cache := memory.NewLeaderboardCache()
	recorder := commands.NewActivityRecorder(w.log, cache, discardLogger())
	shared := w.item("Phoenix Feather")
	moverID := w.mover("Racer")

	load, err := commands.NewLoadItemsCommand(moverID, []kernel.UUID{shared})
	require.NoError(t, err)
	_, err = commands.NewLoadItemsCommandHandler(w.movers, w.items, recorder, w.clock).Handle(ctx, load)
	require.NoError(t, err)
	start, err := commands.NewStartMissionCommand(moverID)
	require.NoError(t, err)
	_, err = commands.NewStartMissionCommandHandler(w.movers, recorder, w.clock).Handle(ctx, start)
	require.NoError(t, err)

	log := &endingLog{ActivityLogRepository: w.log, end: func() {
		end, cmdErr := commands.NewEndMissionCommand(moverID)
		require.NoError(t, cmdErr)
		_, cmdErr = commands.NewEndMissionCommandHandler(w.movers, recorder, w.clock).Handle(ctx, end)
		require.NoError(t, cmdErr)
	}}
	handler := queries.NewGetTopPerformersQueryHandler(w.movers, log, cache, discardLogger())
	query := queries.NewGetTopPerformersQuery(&shared)

	// Act
	racing, err := handler.Handle(ctx, query)
	require.NoError(t, err)
	afterwards, err := handler.Handle(ctx, query)
	require.NoError(t, err)

	// Assert
	uncached, err := queries.NewGetTopPerformersQueryHandler(w.movers, w.log, nil, discardLogger()).Handle(ctx, query)
	require.NoError(t, err)
	assert.Empty(t, racing)
	assert.Equal(t, uncached, afterwards)
	require.Len(t, afterwards, 1)
	assert.Equal(t, 1, afterwards[0].Missions)
}

func TestGetTopPerformersQuery(t *testing.T) {
	id := kernel.NewUUID()

	q := queries.NewGetTopPerformersQuery(&id)
	id = kernel.NewUUID()

	got, ok := q.ItemID()
	require.True(t, ok)
	assert.False(t, got.IsEqual(id))

	_, ok = queries.NewGetTopPerformersQuery(nil).ItemID()
	assert.False(t, ok)

	require.ErrorIs(t, queries.GetTopPerformersQuery{}.Validate(), queries.ErrGetTopPerformersQueryIsNotConstructed)
}
