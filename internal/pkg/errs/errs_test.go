package errs_test

import (
	"errors"
	"testing"

	"stateflow/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectNotFoundError(t *testing.T) {
	t.Run("NewObjectNotFoundError", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("itemId", "123")

		assert.Equal(t, "itemId", err.ParamName)
		assert.Equal(t, "123", err.ID)
		require.NoError(t, err.Cause)
		assert.Equal(t, "object not found: 123", err.Error())
		assert.Equal(t, errs.ErrObjectNotFound, err.Unwrap())
	})

	t.Run("NewObjectNotFoundErrorWithCause", func(t *testing.T) {
		cause := errors.New("database connection failed")
		err := errs.NewObjectNotFoundErrorWithCause("itemId", "123", cause)

		assert.Equal(t, "itemId", err.ParamName)
		assert.Equal(t, "123", err.ID)
		assert.Equal(t, cause, err.Cause)
		assert.Equal(t,
			"object not found: param is: itemId, ID is: 123 (cause: database connection failed)",
			err.Error())
		assert.Equal(t, errs.ErrObjectNotFound, err.Unwrap())
	})

	t.Run("matches sentinel via errors.Is", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("itemId", "456")
		assert.ErrorIs(t, err, errs.ErrObjectNotFound)
	})
}

func TestValueIsInvalidError(t *testing.T) {
	t.Run("NewValueIsInvalidError", func(t *testing.T) {
		err := errs.NewValueIsInvalidError("state")

		assert.Equal(t, "state", err.ParamName)
		require.NoError(t, err.Cause)
		assert.Equal(t, "value is invalid: state", err.Error())
		assert.Equal(t, errs.ErrValueIsInvalid, err.Unwrap())
	})

	t.Run("NewValueIsInvalidErrorWithCause", func(t *testing.T) {
		cause := errors.New("unknown state name")
		err := errs.NewValueIsInvalidErrorWithCause("state", cause)

		assert.Equal(t, "state", err.ParamName)
		assert.Equal(t, cause, err.Cause)
		assert.Equal(t, "value is invalid: state (cause: unknown state name)", err.Error())
		assert.Equal(t, errs.ErrValueIsInvalid, err.Unwrap())
	})

	t.Run("sanitize function with newlines", func(t *testing.T) {
		err := errs.NewValueIsInvalidErrorWithCause("reason", errors.New("hello\nworld"))
		assert.Contains(t, err.Error(), "hello world")
		assert.NotContains(t, err.Error(), "\n")
	})
}

func TestValueIsRequiredError(t *testing.T) {
	t.Run("NewValueIsRequiredError", func(t *testing.T) {
		err := errs.NewValueIsRequiredError("actor")

		assert.Equal(t, "actor", err.ParamName)
		require.NoError(t, err.Cause)
		assert.Equal(t, "value is required: actor", err.Error())
		assert.Equal(t, errs.ErrValueIsRequired, err.Unwrap())
	})

	t.Run("NewValueIsRequiredErrorWithCause", func(t *testing.T) {
		cause := errors.New("empty string")
		err := errs.NewValueIsRequiredErrorWithCause("actor", cause)

		assert.Equal(t, cause, err.Cause)
		assert.Equal(t, "value is required: actor (cause: empty string)", err.Error())
	})
}

func TestVersionConflictError(t *testing.T) {
	t.Run("NewVersionConflictError", func(t *testing.T) {
		err := errs.NewVersionConflictError("item", "abc-123", 7)

		assert.Equal(t, "item", err.ParamName)
		assert.Equal(t, "abc-123", err.ID)
		assert.Equal(t, int64(7), err.ExpectedVersion)
		assert.Equal(t,
			"version conflict: param is: item, ID is: abc-123, expected version is: 7",
			err.Error())
		assert.Equal(t, errs.ErrVersionConflict, err.Unwrap())
	})

	t.Run("matches sentinel via errors.Is", func(t *testing.T) {
		err := errs.NewVersionConflictError("item", "abc-123", 1)
		assert.ErrorIs(t, err, errs.ErrVersionConflict)
	})
}

func TestPersistenceError(t *testing.T) {
	t.Run("NewPersistenceError", func(t *testing.T) {
		cause := errors.New("connection reset")
		err := errs.NewPersistenceError("append audit entry", cause)

		assert.Equal(t, "append audit entry", err.Op)
		assert.Equal(t, cause, err.Cause)
		assert.Equal(t,
			"persistence failure: append audit entry (cause: connection reset)",
			err.Error())
		assert.Equal(t, errs.ErrPersistence, err.Unwrap())
	})

	t.Run("without cause", func(t *testing.T) {
		err := &errs.PersistenceError{Op: "save item"}
		assert.Equal(t, "persistence failure: save item", err.Error())
	})
}
