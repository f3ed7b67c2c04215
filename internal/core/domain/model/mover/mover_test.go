package mover_test

import (
	"testing"
	"time"

	"magicmover/internal/core/domain/model/item"
	"magicmover/internal/core/domain/model/kernel"
	"magicmover/internal/core/domain/model/mover"
	"magicmover/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func weight(t *testing.T, v string) kernel.Weight {
	t.Helper()
	w, err := kernel.WeightFromString(v)
	require.NoError(t, err)
	return w
}

func newItem(t *testing.T, name, w string) *item.Item {
	t.Helper()
	i, err := item.NewItem(kernel.NewUUID(), name, weight(t, w), now)
	require.NoError(t, err)
	return i
}

func newMover(t *testing.T, limit string) *mover.Mover {
	t.Helper()
	m, err := mover.NewMover(kernel.NewUUID(), "Merlin", weight(t, limit), now)
	require.NoError(t, err)
	return m
}

type snapshot struct {
	state     mover.State
	weight    string
	items     []kernel.UUID
	missions  int
	version   int64
	updatedAt time.Time
}

func snap(m *mover.Mover) snapshot {
	return snapshot{
		state:     m.State(),
		weight:    m.CurrentWeight().String(),
		items:     m.Items(),
		missions:  m.CompletedMissions(),
		version:   m.Version(),
		updatedAt: m.UpdatedAt(),
	}
}

func TestNewMover(t *testing.T) {
	t.Run("should create resting mover with empty cargo", func(t *testing.T) {
		m := newMover(t, "100")

		require.NoError(t, m.Validate())
		assert.Equal(t, mover.Resting, m.State())
		assert.Empty(t, m.Items())
		assert.True(t, m.CurrentWeight().IsZero())
		assert.Equal(t, 0, m.CompletedMissions())
		assert.Equal(t, int64(0), m.Version())
		assert.Equal(t, "Merlin", m.Name())
		assert.Equal(t, now, m.CreatedAt())
	})

	t.Run("should allow an empty name", func(t *testing.T) {
		m, err := mover.NewMover(kernel.NewUUID(), "", weight(t, "1"), now)

		require.NoError(t, err)
		assert.Empty(t, m.Name())
	})

	t.Run("should reject non-positive weight limit", func(t *testing.T) {
		_, err := mover.NewMover(kernel.NewUUID(), "Merlin", kernel.ZeroWeight(), now)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Contains(t, err.Error(), "weight limit")
	})

	t.Run("should reject zero value mover", func(t *testing.T) {
		var m mover.Mover
		require.ErrorIs(t, m.Validate(), mover.ErrMoverIsNotConstructed)
	})
}

func TestMover_Load(t *testing.T) {
	t.Run("should load two items and sum weights exactly", func(t *testing.T) {
		// Given
		m := newMover(t, "100")
		feather := newItem(t, "Phoenix Feather", "0.5")
		scale := newItem(t, "Dragon Scale", "2.5")

		// When
		change, err := m.Load([]*item.Item{feather, scale}, now.Add(time.Minute))

		// Then
		require.NoError(t, err)
		assert.Equal(t, mover.Loading, m.State())
		assert.Equal(t, []kernel.UUID{feather.ID(), scale.ID()}, m.Items())
		assert.True(t, m.CurrentWeight().IsEqual(weight(t, "3.0")))
		assert.Equal(t, int64(1), m.Version())
		assert.Equal(t, now.Add(time.Minute), m.UpdatedAt())

		assert.Equal(t, mover.ActionLoad, change.Action)
		assert.Equal(t, mover.Resting, change.From)
		assert.Equal(t, mover.Loading, change.To)
		assert.Equal(t, 2, change.ItemCount)
		assert.Equal(t, "3", change.Weight.String())
		assert.True(t, change.MoverID.IsEqual(m.ID()))
	})

	t.Run("should keep loading while loading", func(t *testing.T) {
		m := newMover(t, "1")
		_, err := m.Load([]*item.Item{newItem(t, "a", "0.1")}, now)
		require.NoError(t, err)

		change, err := m.Load([]*item.Item{newItem(t, "b", "0.2")}, now)

		require.NoError(t, err)
		assert.Equal(t, mover.Loading, change.From)
		assert.Equal(t, "0.3", m.CurrentWeight().String())
		assert.Len(t, m.Items(), 2)
	})

	t.Run("should accept load up to the exact limit", func(t *testing.T) {
		m := newMover(t, "10")

		_, err := m.Load([]*item.Item{newItem(t, "a", "4"), newItem(t, "b", "6")}, now)

		require.NoError(t, err)
		assert.Equal(t, "10", m.CurrentWeight().String())
	})

	t.Run("should reject load over capacity and leave mover unchanged", func(t *testing.T) {
		// Given
		m := newMover(t, "10")
		before := snap(m)

		// When
		_, err := m.Load([]*item.Item{newItem(t, "Anvil", "15.0")}, now.Add(time.Hour))

		// Then
		require.ErrorIs(t, err, errs.ErrCapacityExceeded)
		var capacityErr *errs.CapacityExceededError
		require.ErrorAs(t, err, &capacityErr)
		assert.Equal(t, "0", capacityErr.Current)
		assert.Equal(t, "15", capacityErr.Incoming)
		assert.Equal(t, "10", capacityErr.Limit)
		assert.Equal(t, before, snap(m))
		assert.Equal(t, mover.Resting, m.State())
	})

	t.Run("should reject item already aboard and leave mover unchanged", func(t *testing.T) {
		m := newMover(t, "100")
		feather := newItem(t, "Phoenix Feather", "0.5")
		_, err := m.Load([]*item.Item{feather}, now)
		require.NoError(t, err)
		before := snap(m)

		_, err = m.Load([]*item.Item{newItem(t, "other", "1"), feather}, now)

		require.ErrorIs(t, err, errs.ErrDuplicateItem)
		var dupErr *errs.DuplicateItemError
		require.ErrorAs(t, err, &dupErr)
		assert.Equal(t, []string{feather.ID().String()}, dupErr.IDs)
		assert.Equal(t, before, snap(m))
	})

	t.Run("should reject item repeated in the same request once", func(t *testing.T) {
		m := newMover(t, "100")
		feather := newItem(t, "Phoenix Feather", "0.5")

		_, err := m.Load([]*item.Item{feather, feather, feather}, now)

		var dupErr *errs.DuplicateItemError
		require.ErrorAs(t, err, &dupErr)
		assert.Equal(t, []string{feather.ID().String()}, dupErr.IDs)
		assert.Empty(t, m.Items())
	})

	t.Run("should report duplicates before capacity", func(t *testing.T) {
		m := newMover(t, "1")
		heavy := newItem(t, "Anvil", "50")

		_, err := m.Load([]*item.Item{heavy, heavy}, now)

		require.ErrorIs(t, err, errs.ErrDuplicateItem)
	})

	t.Run("should reject loading while on mission", func(t *testing.T) {
		m := newMover(t, "100")
		_, err := m.Load([]*item.Item{newItem(t, "a", "1")}, now)
		require.NoError(t, err)
		_, err = m.StartMission(now)
		require.NoError(t, err)
		before := snap(m)

		_, err = m.Load([]*item.Item{newItem(t, "b", "1")}, now)

		require.ErrorIs(t, err, errs.ErrInvalidTransition)
		assert.Equal(t, before, snap(m))
	})

	t.Run("should report transition before capacity", func(t *testing.T) {
		m := newMover(t, "2")
		_, err := m.Load([]*item.Item{newItem(t, "a", "1")}, now)
		require.NoError(t, err)
		_, err = m.StartMission(now)
		require.NoError(t, err)

		_, err = m.Load([]*item.Item{newItem(t, "b", "99")}, now)

		require.ErrorIs(t, err, errs.ErrInvalidTransition)
	})

	t.Run("should require items", func(t *testing.T) {
		m := newMover(t, "100")

		_, err := m.Load(nil, now)

		require.ErrorIs(t, err, mover.ErrItemsAreRequired)
	})
}

func TestMover_LoadSequenceKeepsWeightInvariant(t *testing.T) {
	m := newMover(t, "5")
	weights := []string{"0.1", "0.2", "0.7", "3", "1.5", "0.3", "0.05"}

	var loaded []*item.Item
	for _, w := range weights {
		i := newItem(t, "cargo", w)
		if _, err := m.Load([]*item.Item{i}, now); err == nil {
			loaded = append(loaded, i)
		} else {
			require.ErrorIs(t, err, errs.ErrCapacityExceeded)
		}

		assert.True(t, m.CurrentWeight().IsEqual(item.TotalWeight(loaded)))
		assert.False(t, m.CurrentWeight().GreaterThan(m.WeightLimit()))
		require.NoError(t, m.VerifyCargo(loaded))
	}
	assert.Equal(t, "4.35", m.CurrentWeight().String())
}

func TestMover_MissionCycle(t *testing.T) {
	// Given
	m := newMover(t, "100")
	cargo := newItem(t, "Phoenix Feather", "0.5")
	_, err := m.Load([]*item.Item{cargo}, now)
	require.NoError(t, err)

	// When
	started, err := m.StartMission(now.Add(time.Minute))

	// Then
	require.NoError(t, err)
	assert.Equal(t, mover.OnMission, m.State())
	assert.Equal(t, mover.Loading, started.From)
	assert.Equal(t, 1, started.ItemCount)
	assert.Equal(t, "0.5", started.Weight.String())
	assert.Len(t, m.Items(), 1)

	// When
	ended, err := m.EndMission(now.Add(2 * time.Minute))

	// Then
	require.NoError(t, err)
	assert.Equal(t, mover.Resting, m.State())
	assert.Empty(t, m.Items())
	assert.True(t, m.CurrentWeight().IsZero())
	assert.Equal(t, 1, m.CompletedMissions())
	assert.Equal(t, int64(3), m.Version())

	assert.Equal(t, mover.OnMission, ended.From)
	assert.Equal(t, mover.Resting, ended.To)
	assert.Equal(t, 1, ended.ItemCount)
	assert.Equal(t, "0.5", ended.Weight.String())
	assert.Equal(t, []kernel.UUID{cargo.ID()}, ended.ItemIDs)
	assert.Equal(t, 1, ended.CompletedMissions)
}

func TestMover_StartMission(t *testing.T) {
	t.Run("should reject starting from resting", func(t *testing.T) {
		m := newMover(t, "100")

		_, err := m.StartMission(now)

		var transitionErr *errs.InvalidTransitionError
		require.ErrorAs(t, err, &transitionErr)
		assert.Equal(t, "RESTING", transitionErr.From)
		assert.Equal(t, "ON_MISSION", transitionErr.To)
		assert.Equal(t, mover.Resting, m.State())
		assert.Equal(t, int64(0), m.Version())
	})
}

func TestMover_EndMission(t *testing.T) {
	for _, tc := range []struct {
		name  string
		setup func(t *testing.T, m *mover.Mover)
	}{
		{"resting", func(*testing.T, *mover.Mover) {}},
		{"loading", func(t *testing.T, m *mover.Mover) {
			_, err := m.Load([]*item.Item{newItem(t, "a", "1")}, now)
			require.NoError(t, err)
		}},
	} {
		t.Run("should reject ending a mission while "+tc.name, func(t *testing.T) {
			m := newMover(t, "100")
			tc.setup(t, m)
			before := snap(m)

			_, err := m.EndMission(now)

			require.ErrorIs(t, err, errs.ErrInvalidTransition)
			assert.Contains(t, err.Error(), "mover must be on mission")
			assert.Equal(t, before, snap(m))
		})
	}
}

func TestMover_Unload(t *testing.T) {
	t.Run("should drop cargo without counting a mission", func(t *testing.T) {
		m := newMover(t, "100")
		_, err := m.Load([]*item.Item{newItem(t, "a", "1.25"), newItem(t, "b", "2")}, now)
		require.NoError(t, err)

		change, err := m.Unload(now)

		require.NoError(t, err)
		assert.Equal(t, mover.Resting, m.State())
		assert.Empty(t, m.Items())
		assert.True(t, m.CurrentWeight().IsZero())
		assert.Equal(t, 0, m.CompletedMissions())
		assert.Equal(t, mover.ActionUnload, change.Action)
		assert.Equal(t, 2, change.ItemCount)
		assert.Equal(t, "3.25", change.Weight.String())
	})

	t.Run("should reject unloading unless loading", func(t *testing.T) {
		m := newMover(t, "100")

		_, err := m.Unload(now)
		require.ErrorIs(t, err, errs.ErrInvalidTransition)

		_, err = m.Load([]*item.Item{newItem(t, "a", "1")}, now)
		require.NoError(t, err)
		_, err = m.StartMission(now)
		require.NoError(t, err)

		_, err = m.Unload(now)
		require.ErrorIs(t, err, errs.ErrInvalidTransition)
		assert.Len(t, m.Items(), 1)
	})
}

func TestRestoreMover(t *testing.T) {
	id := kernel.NewUUID()
	itemID := kernel.NewUUID()

	t.Run("should restore persisted state", func(t *testing.T) {
		m, err := mover.RestoreMover(id, "Merlin", weight(t, "10"), weight(t, "2"),
			mover.Loading, []kernel.UUID{itemID}, 4, 7, now, now.Add(time.Hour))

		require.NoError(t, err)
		assert.Equal(t, mover.Loading, m.State())
		assert.Equal(t, []kernel.UUID{itemID}, m.Items())
		assert.Equal(t, 4, m.CompletedMissions())
		assert.Equal(t, int64(7), m.Version())
		assert.Equal(t, now.Add(time.Hour), m.UpdatedAt())
	})

	t.Run("should aggregate structural errors", func(t *testing.T) {
		_, err := mover.RestoreMover(id, "", weight(t, "10"), weight(t, "0"),
			mover.Unknown, nil, -1, -1, now, now)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
		require.ErrorIs(t, err, errs.ErrVersionIsInvalid)
	})
}

func TestMover_VerifyCargo(t *testing.T) {
	a := newItem(t, "a", "2")
	b := newItem(t, "b", "3")

	t.Run("should pass for consistent cargo", func(t *testing.T) {
		m, err := mover.RestoreMover(kernel.NewUUID(), "", weight(t, "10"), weight(t, "5"),
			mover.Loading, []kernel.UUID{a.ID(), b.ID()}, 0, 1, now, now)
		require.NoError(t, err)

		require.NoError(t, m.VerifyCargo([]*item.Item{a, b}))
	})

	t.Run("should report every violation", func(t *testing.T) {
		m, err := mover.RestoreMover(kernel.NewUUID(), "", weight(t, "1"), weight(t, "9"),
			mover.Loading, []kernel.UUID{a.ID(), a.ID(), b.ID()}, 0, 1, now, now)
		require.NoError(t, err)

		err = m.VerifyCargo([]*item.Item{a})

		require.ErrorIs(t, err, errs.ErrDuplicateItem)
		require.ErrorIs(t, err, errs.ErrObjectNotFound)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})
}
