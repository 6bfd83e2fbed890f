package queries

import (
	"errors"
	"time"

	"stateflow/internal/core/domain/model/kernel"
	"stateflow/internal/pkg/guard"
)

var ErrGetAuditTrailQueryIsNotConstructed = errors.New(
	"GetAuditTrailQuery must be created via NewGetAuditTrailQuery constructor",
)

// GetAuditTrailQuery retrieves every recorded transition attempt for one
// item, committed and rejected alike, in commit order.
type GetAuditTrailQuery struct {
	itemID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetAuditTrailQuery creates a query for an item's audit trail.
func NewGetAuditTrailQuery(itemID kernel.UUID) (GetAuditTrailQuery, error) {
	if err := itemID.Validate(); err != nil {
		return GetAuditTrailQuery{}, err
	}

	return GetAuditTrailQuery{
		itemID: itemID,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetAuditTrailQuery) Validate() error {
	return q.guard.Validate(ErrGetAuditTrailQueryIsNotConstructed)
}

// ItemID returns the identifier of the item whose trail is requested.
func (q GetAuditTrailQuery) ItemID() kernel.UUID {
	return q.itemID
}

// GetAuditTrailQueryResponse represents one audit entry for API consumers.
type GetAuditTrailQueryResponse struct {
	ItemID     kernel.UUID
	FromState  string
	ToState    string
	Outcome    string
	Violations []string
	Actor      string
	RecordedAt time.Time
}
