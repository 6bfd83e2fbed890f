package queries

import (
	"errors"
	"time"

	"stateflow/internal/core/domain/model/kernel"
	"stateflow/internal/pkg/guard"
)

var ErrGetStaleItemsQueryIsNotConstructed = errors.New(
	"GetStaleItemsQuery must be created via NewGetStaleItemsQuery constructor",
)

// GetStaleItemsQuery retrieves items that have outstayed their current
// state's configured time limit. Used by the watchdog job for operator
// visibility: the engine itself rejects transitions on such items, so they
// need manual attention.
type GetStaleItemsQuery struct {
	guard guard.ConstructorGuard
}

// NewGetStaleItemsQuery creates a parameterless query for stale items.
func NewGetStaleItemsQuery() GetStaleItemsQuery {
	return GetStaleItemsQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetStaleItemsQuery) Validate() error {
	return q.guard.Validate(ErrGetStaleItemsQueryIsNotConstructed)
}

// GetStaleItemsQueryResponse represents one item stuck past its state's
// time limit.
type GetStaleItemsQueryResponse struct {
	ID             kernel.UUID
	CurrentState   string
	EnteredStateAt time.Time
	StaleFor       time.Duration
}
