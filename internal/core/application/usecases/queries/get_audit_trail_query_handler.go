package queries

import (
	"context"
	"encoding/json"

	"stateflow/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetAuditTrailQueryHandler reads an item's audit entries straight from the
// database. An item with no recorded attempts yields an empty slice, not an
// error: absence of history is a valid answer.
type GetAuditTrailQueryHandler struct {
	db *gorm.DB
}

// NewGetAuditTrailQueryHandler creates a handler for audit trail queries.
func NewGetAuditTrailQueryHandler(db *gorm.DB) GetAuditTrailQueryHandler {
	return GetAuditTrailQueryHandler{db: db}
}

// Handle executes the query. Entries come back ordered by their insertion
// sequence, which is the total order the attempts were committed in.
func (h GetAuditTrailQueryHandler) Handle(
	ctx context.Context,
	query GetAuditTrailQuery,
) ([]GetAuditTrailQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	entries := make([]GetAuditTrailQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			item_id,
			from_state,
			to_state,
			outcome,
			violations,
			actor,
			recorded_at
		FROM audit_entries
		WHERE item_id = ?
		ORDER BY id
	`, query.ItemID().Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var entry GetAuditTrailQueryResponse
		var id uuid.UUID
		var violations string

		err = rows.Scan(
			&id,
			&entry.FromState,
			&entry.ToState,
			&entry.Outcome,
			&violations,
			&entry.Actor,
			&entry.RecordedAt,
		)
		if err != nil {
			return nil, err
		}

		itemID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		entry.ItemID = itemID

		if err = json.Unmarshal([]byte(violations), &entry.Violations); err != nil {
			return nil, err
		}

		entries = append(entries, entry)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}
