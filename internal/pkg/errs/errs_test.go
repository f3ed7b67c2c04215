package errs_test

import (
	"errors"
	"fmt"
	"testing"

	"magicmover/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectNotFoundError(t *testing.T) {
	t.Run("NewObjectNotFoundError", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("mover", "123")

		assert.Equal(t, "mover", err.ParamName)
		assert.Equal(t, "123", err.ID)
		require.NoError(t, err.Cause)
		assert.Equal(t, "object not found: 123", err.Error())
		assert.Equal(t, errs.ErrObjectNotFound, err.Unwrap())
	})

	t.Run("NewObjectNotFoundErrorWithCause", func(t *testing.T) {
		cause := errors.New("database connection failed")
		err := errs.NewObjectNotFoundErrorWithCause("mover", "123", cause)

		assert.Equal(t, cause, err.Cause)
		assert.Equal(t,
			"object not found: param is: mover, ID is: 123 (cause: database connection failed)",
			err.Error())
	})
}

func TestObjectsNotFoundError(t *testing.T) {
	err := errs.NewObjectsNotFoundError("items", []string{"a", "b"})

	assert.Equal(t, []string{"a", "b"}, err.IDs)
	assert.Equal(t, "object not found: items a, b", err.Error())
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestValueIsInvalidError(t *testing.T) {
	t.Run("NewValueIsInvalidError", func(t *testing.T) {
		err := errs.NewValueIsInvalidError("weight")

		assert.Equal(t, "weight", err.ParamName)
		assert.Equal(t, "value is invalid: weight", err.Error())
		assert.Equal(t, errs.ErrValueIsInvalid, err.Unwrap())
	})

	t.Run("NewValueIsInvalidErrorWithCause", func(t *testing.T) {
		cause := errors.New("-1 is not greater than 0")
		err := errs.NewValueIsInvalidErrorWithCause("weight", cause)

		assert.Equal(t, "value is invalid: weight (cause: -1 is not greater than 0)", err.Error())
	})
}

func TestValueIsOutOfRangeError(t *testing.T) {
	t.Run("NewValueIsOutOfRangeError", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("age", 150, 0, 120)

		assert.Equal(t, 150, err.Value)
		assert.Equal(t, 0, err.Min)
		assert.Equal(t, 120, err.Max)
		assert.Equal(t, "value is invalid: 150 is age, min value is 0, max value is 120", err.Error())
		assert.Equal(t, errs.ErrValueIsOutOfRange, err.Unwrap())
	})

	t.Run("sanitizes newlines", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("text", "hello\nworld", 0, 10)
		assert.Contains(t, err.Error(), "hello world")
		assert.NotContains(t, err.Error(), "\n")
	})
}

func TestValueIsRequiredError(t *testing.T) {
	err := errs.NewValueIsRequiredError("name")

	assert.Equal(t, "value is required: name", err.Error())
	require.ErrorIs(t, err, errs.ErrValueIsRequired)

	withCause := errs.NewValueIsRequiredErrorWithCause("name", errors.New("empty"))
	assert.Equal(t, "value is required: name (cause: empty)", withCause.Error())
}

func TestVersionIsInvalidError(t *testing.T) {
	err := errs.NewVersionIsInvalidErrorWithCause("version", errors.New("-1 is negative"))

	assert.Equal(t, "version is invalid: version (cause: -1 is negative)", err.Error())
	require.ErrorIs(t, err, errs.ErrVersionIsInvalid)
	assert.Equal(t, "version is invalid: version", errs.NewVersionIsInvalidError("version").Error())
}

func TestInvalidTransitionError(t *testing.T) {
	t.Run("generic message names the edge", func(t *testing.T) {
		err := errs.NewInvalidTransitionError("RESTING", "ON_MISSION", "start_mission")

		assert.Equal(t, "RESTING", err.From)
		assert.Equal(t, "ON_MISSION", err.To)
		assert.Equal(t, "start_mission", err.Action)
		assert.Equal(t, "invalid transition: cannot start_mission from RESTING to ON_MISSION", err.Error())
		require.ErrorIs(t, err, errs.ErrInvalidTransition)
	})

	t.Run("reason replaces generic message", func(t *testing.T) {
		err := errs.NewInvalidTransitionErrorWithReason("LOADING", "RESTING", "end_mission", "mover must be on mission")

		assert.Equal(t, "invalid transition: mover must be on mission (state is LOADING)", err.Error())
		require.ErrorIs(t, err, errs.ErrInvalidTransition)
	})
}

func TestDuplicateItemError(t *testing.T) {
	err := errs.NewDuplicateItemError([]string{"x"})

	assert.Equal(t, "duplicate item: x already aboard", err.Error())
	require.ErrorIs(t, err, errs.ErrDuplicateItem)
}

func TestCapacityExceededError(t *testing.T) {
	err := errs.NewCapacityExceededError("0", "15", "10")

	assert.Equal(t, "capacity exceeded: current weight 0 plus incoming 15 exceeds limit 10", err.Error())
	require.ErrorIs(t, err, errs.ErrCapacityExceeded)
}

func TestConcurrencyConflictError(t *testing.T) {
	err := errs.NewConcurrencyConflictError("mover", "m-1", 3)

	assert.Equal(t, "concurrency conflict: mover m-1 was modified after version 3 was read", err.Error())
	require.ErrorIs(t, err, errs.ErrConcurrencyConflict)
}

func TestPersistenceError(t *testing.T) {
	cause := errors.New("connection reset")
	err := errs.NewPersistenceError("update mover", cause)

	assert.Equal(t, "persistence failure: update mover (cause: connection reset)", err.Error())
	require.ErrorIs(t, err, errs.ErrPersistence)
	require.ErrorIs(t, err, cause)
}

func TestErrorsSurviveWrapping(t *testing.T) {
	wrapped := fmt.Errorf("handle load: %w", errs.NewCapacityExceededError("1", "2", "2"))

	var capacityErr *errs.CapacityExceededError
	require.ErrorAs(t, wrapped, &capacityErr)
	assert.Equal(t, "2", capacityErr.Limit)
	assert.False(t, errs.IsValidation(wrapped))
	assert.True(t, errs.IsValidation(fmt.Errorf("x: %w", errs.NewValueIsRequiredError("name"))))
}
