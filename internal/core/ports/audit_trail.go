package ports

import (
	"context"

	"stateflow/internal/core/domain/audit"
	"stateflow/internal/core/domain/model/kernel"
)

// AuditTrail defines the persistence contract for the append-only record of
// transition attempts.
type AuditTrail interface {
	// Append records one attempt. It never fails silently: if the store
	// cannot accept the entry, the error propagates and the whole transition
	// attempt is failed, because an unaudited state change violates the
	// audit-completeness invariant.
	Append(ctx context.Context, entry audit.Entry) error

	// GetByItemID returns every recorded attempt for the item, totally
	// ordered by commit sequence.
	GetByItemID(ctx context.Context, itemID kernel.UUID) ([]audit.Entry, error)
}
