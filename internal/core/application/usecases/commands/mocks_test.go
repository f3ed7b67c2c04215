package commands_test

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"magicmover/internal/core/application/usecases/commands"
	"magicmover/internal/core/domain/model/activity"
	"magicmover/internal/core/domain/model/item"
	"magicmover/internal/core/domain/model/kernel"
	"magicmover/internal/core/domain/model/mover"
	"magicmover/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func fixedClock() commands.Clock {
	return func() time.Time { return fixedNow }
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func bufferLogger() (*slog.Logger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	return slog.New(slog.NewTextHandler(buf, nil)), buf
}

func mustWeight(t *testing.T, v string) kernel.Weight {
	t.Helper()
	w, err := kernel.WeightFromString(v)
	require.NoError(t, err)
	return w
}

func mustItem(t *testing.T, name, w string) *item.Item {
	t.Helper()
	i, err := item.NewItem(kernel.NewUUID(), name, mustWeight(t, w), fixedNow)
	require.NoError(t, err)
	return i
}

func mustMover(t *testing.T, limit string) *mover.Mover {
	t.Helper()
	m, err := mover.NewMover(kernel.NewUUID(), "Merlin", mustWeight(t, limit), fixedNow)
	require.NoError(t, err)
	return m
}

// Mock implementations for testing.
type MockMoverRepository struct {
	mock.Mock
}

var _ ports.MoverRepository = (*MockMoverRepository)(nil)

func (m *MockMoverRepository) Add(ctx context.Context, aggregate *mover.Mover) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockMoverRepository) Get(ctx context.Context, id kernel.UUID) (*mover.Mover, error) {
	args := m.Called(ctx, id)
	if aggregate, ok := args.Get(0).(*mover.Mover); ok {
		return aggregate, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockMoverRepository) GetAll(ctx context.Context) ([]*mover.Mover, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*mover.Mover), args.Error(1)
}

func (m *MockMoverRepository) UpdateIfVersion(
	ctx context.Context,
	aggregate *mover.Mover,
	expectedVersion int64,
) (bool, error) {
	args := m.Called(ctx, aggregate, expectedVersion)
	return args.Bool(0), args.Error(1)
}

type MockItemRepository struct {
	mock.Mock
}

var _ ports.ItemRepository = (*MockItemRepository)(nil)

func (m *MockItemRepository) Add(ctx context.Context, aggregate *item.Item) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockItemRepository) Get(ctx context.Context, id kernel.UUID) (*item.Item, error) {
	args := m.Called(ctx, id)
	if aggregate, ok := args.Get(0).(*item.Item); ok {
		return aggregate, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockItemRepository) GetAll(ctx context.Context) ([]*item.Item, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*item.Item), args.Error(1)
}

func (m *MockItemRepository) FindByIDs(ctx context.Context, ids []kernel.UUID) ([]*item.Item, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]*item.Item), args.Error(1)
}

type MockActivityLogRepository struct {
	mock.Mock
}

var _ ports.ActivityLogRepository = (*MockActivityLogRepository)(nil)

func (m *MockActivityLogRepository) Append(ctx context.Context, entry *activity.Entry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockActivityLogRepository) FindByMover(ctx context.Context, moverID kernel.UUID) ([]*activity.Entry, error) {
	args := m.Called(ctx, moverID)
	return args.Get(0).([]*activity.Entry), args.Error(1)
}

func (m *MockActivityLogRepository) FindByTypeAndItem(
	ctx context.Context,
	t activity.Type,
	itemID kernel.UUID,
) ([]*activity.Entry, error) {
	args := m.Called(ctx, t, itemID)
	return args.Get(0).([]*activity.Entry), args.Error(1)
}

type MockLeaderboardCache struct {
	mock.Mock
}

var _ ports.LeaderboardCache = (*MockLeaderboardCache)(nil)

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
	args := m.Called(ctx)
	return args.Error(0)
}

func entryOfType(t activity.Type) any {
	return mock.MatchedBy(func(e *activity.Entry) bool {
		return e != nil && e.Type() == t
	})
}
