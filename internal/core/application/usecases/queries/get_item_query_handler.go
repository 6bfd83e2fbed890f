package queries

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"stateflow/internal/core/domain/model/kernel"
	"stateflow/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetItemQueryHandler reads one item and its history straight from the
// database, skipping aggregate reconstruction.
type GetItemQueryHandler struct {
	db *gorm.DB
}

// NewGetItemQueryHandler creates a handler for single-item queries.
func NewGetItemQueryHandler(db *gorm.DB) GetItemQueryHandler {
	return GetItemQueryHandler{db: db}
}

// Handle executes the query. Returns an error unwrapping to
// errs.ErrObjectNotFound when the item does not exist.
func (h GetItemQueryHandler) Handle(
	ctx context.Context,
	query GetItemQuery,
) (GetItemQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetItemQueryResponse{}, err
	}

	var (
		id           uuid.UUID
		currentState string
		version      int64
		createdAt    time.Time
		updatedAt    time.Time
	)

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			current_state,
			version,
			created_at,
			updated_at
		FROM items
		WHERE id = ?
	`, query.ItemID().Bytes()).Row()

	err := row.Scan(&id, &currentState, &version, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return GetItemQueryResponse{}, errs.NewObjectNotFoundError("item", query.ItemID().String())
		}
		return GetItemQueryResponse{}, err
	}

	itemID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return GetItemQueryResponse{}, err
	}

	history, err := h.loadHistory(ctx, query.ItemID())
	if err != nil {
		return GetItemQueryResponse{}, err
	}

	return GetItemQueryResponse{
		ID:           itemID,
		CurrentState: currentState,
		Version:      version,
		CreatedAt:    createdAt,
		UpdatedAt:    updatedAt,
		History:      history,
	}, nil
}

func (h GetItemQueryHandler) loadHistory(
	ctx context.Context,
	itemID kernel.UUID,
) ([]TransitionResponse, error) {
	history := make([]TransitionResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			from_state,
			to_state,
			reason,
			actor,
			occurred_at
		FROM item_transitions
		WHERE item_id = ?
		ORDER BY seq
	`, itemID.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var transition TransitionResponse

		err = rows.Scan(
			&transition.From,
			&transition.To,
			&transition.Reason,
			&transition.Actor,
			&transition.OccurredAt,
		)
		if err != nil {
			return nil, err
		}

		history = append(history, transition)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return history, nil
}
