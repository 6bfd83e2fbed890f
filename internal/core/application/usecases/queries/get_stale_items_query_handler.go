package queries

import (
	"context"
	"time"

	"stateflow/internal/core/domain/model/item"
	"stateflow/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetStaleItemsQueryHandler finds items whose time in their current state
// exceeds the catalog's limit for that state. Only states with a configured
// limit are scanned; an item's updated_at marks when it entered its state.
type GetStaleItemsQueryHandler struct {
	db      *gorm.DB
	catalog *item.Catalog
}

// NewGetStaleItemsQueryHandler creates a handler for stale-item queries.
func NewGetStaleItemsQueryHandler(db *gorm.DB, catalog *item.Catalog) GetStaleItemsQueryHandler {
	return GetStaleItemsQueryHandler{db: db, catalog: catalog}
}

// Handle executes the query against every state with a time limit.
func (h GetStaleItemsQueryHandler) Handle(
	ctx context.Context,
	query GetStaleItemsQuery,
) ([]GetStaleItemsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	stale := make([]GetStaleItemsQueryResponse, 0)

	for _, state := range h.catalog.States() {
		limit, ok := h.catalog.TimeoutFor(state)
		if !ok {
			continue
		}

		found, err := h.staleInState(ctx, state, limit, now)
		if err != nil {
			return nil, err
		}
		stale = append(stale, found...)
	}

	return stale, nil
}

func (h GetStaleItemsQueryHandler) staleInState(
	ctx context.Context,
	state item.State,
	limit time.Duration,
	now time.Time,
) ([]GetStaleItemsQueryResponse, error) {
	items := make([]GetStaleItemsQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			updated_at
		FROM items
		WHERE current_state = ? AND updated_at < ?
		ORDER BY updated_at
	`, state.String(), now.Add(-limit)).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var id uuid.UUID
		var enteredAt time.Time

		if err = rows.Scan(&id, &enteredAt); err != nil {
			return nil, err
		}

		itemID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}

		items = append(items, GetStaleItemsQueryResponse{
			ID:             itemID,
			CurrentState:   state.String(),
			EnteredStateAt: enteredAt,
			StaleFor:       now.Sub(enteredAt) - limit,
		})
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}
