package item_test

import (
	"testing"
	"time"

	"stateflow/internal/core/domain/model/item"

	"github.com/stretchr/testify/assert"
)

func TestIllegalTransitionError(t *testing.T) {
	t.Run("missing_edge", func(t *testing.T) {
		err := item.NewIllegalTransitionError("Initial", "Completed")

		assert.ErrorIs(t, err, item.ErrIllegalTransition)
		assert.Equal(t, item.CodeIllegalTransition, err.Code())
		assert.Contains(t, err.Error(), `no allowed transition from "Initial" to "Completed"`)
	})

	t.Run("terminal_state", func(t *testing.T) {
		err := item.NewIllegalTransitionFromTerminalError("Completed", "Initial")

		assert.ErrorIs(t, err, item.ErrIllegalTransition)
		assert.True(t, err.FromTerminal)
		assert.Contains(t, err.Error(), `"Completed" is a terminal state`)
	})
}

func TestTimeoutExceededError(t *testing.T) {
	err := item.NewTimeoutExceededError("Processing", 45*time.Minute, 30*time.Minute)

	assert.ErrorIs(t, err, item.ErrTimeoutExceeded)
	assert.Equal(t, item.CodeTimeoutExceeded, err.Code())
	assert.Contains(t, err.Error(), `"Processing"`)
	assert.Contains(t, err.Error(), "45m0s")
	assert.Contains(t, err.Error(), "30m0s")
}

func TestValidationFailedError(t *testing.T) {
	violations := []string{"amount must be positive", "approver missing"}
	err := item.NewValidationFailedError("Completed", violations)

	assert.ErrorIs(t, err, item.ErrValidationFailed)
	assert.Equal(t, item.CodeValidationFailed, err.Code())
	assert.Equal(t, violations, err.Violations)
	assert.Contains(t, err.Error(), "amount must be positive; approver missing")

	// The error owns its copy of the list.
	violations[0] = "mutated"
	assert.Equal(t, "amount must be positive", err.Violations[0])
}
