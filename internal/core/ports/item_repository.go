package ports

import (
	"context"

	"stateflow/internal/core/domain/model/item"
	"stateflow/internal/core/domain/model/kernel"
)

// ItemRepository defines the persistence contract for tracked items.
// The core delegates durability and distribution concerns to this boundary;
// deletion, if any, is a repository concern and never part of the engine.
type ItemRepository interface {
	// Add persists a new item aggregate. The item must be valid and not
	// already exist in the repository.
	Add(ctx context.Context, aggregate *item.Item) error

	// Get retrieves an item by its unique identifier, including its full
	// transition history in commit order. Returns an error unwrapping to
	// errs.ErrObjectNotFound when the item does not exist.
	Get(ctx context.Context, id kernel.UUID) (*item.Item, error)

	// Update persists a mutated item using optimistic concurrency keyed on
	// the version the aggregate was loaded with. When the stored version no
	// longer matches expectedVersion the update is not applied and an error
	// unwrapping to errs.ErrVersionConflict is returned; the caller must
	// reload and retry. New history entries are appended, never rewritten.
	Update(ctx context.Context, aggregate *item.Item, expectedVersion int64) error
}
