// Package queries contains read-side operations. Query handlers bypass the
// domain repositories and read the database directly, returning flat
// response structures tailored to the API.
package queries

import (
	"errors"
	"time"

	"stateflow/internal/core/domain/model/kernel"
	"stateflow/internal/pkg/guard"
)

var ErrGetItemQueryIsNotConstructed = errors.New(
	"GetItemQuery must be created via NewGetItemQuery constructor",
)

// GetItemQuery retrieves one tracked item with its full transition history.
type GetItemQuery struct {
	itemID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetItemQuery creates a query for a single item.
func NewGetItemQuery(itemID kernel.UUID) (GetItemQuery, error) {
	if err := itemID.Validate(); err != nil {
		return GetItemQuery{}, err
	}

	return GetItemQuery{
		itemID: itemID,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetItemQuery) Validate() error {
	return q.guard.Validate(ErrGetItemQueryIsNotConstructed)
}

// ItemID returns the identifier of the requested item.
func (q GetItemQuery) ItemID() kernel.UUID {
	return q.itemID
}

// GetItemQueryResponse represents one tracked item for API consumers.
type GetItemQueryResponse struct {
	ID           kernel.UUID
	CurrentState string
	Version      int64
	CreatedAt    time.Time
	UpdatedAt    time.Time
	History      []TransitionResponse
}

// TransitionResponse represents one committed history entry.
type TransitionResponse struct {
	From       string
	To         string
	Reason     string
	Actor      string
	OccurredAt time.Time
}
