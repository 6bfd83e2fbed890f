// Package itemrepo provides data transfer objects and mapping functions for
// item persistence. It implements the repository pattern for the item
// aggregate, converting between the domain model and its relational
// representation: one row per item plus one row per history entry.
package itemrepo

import (
	"time"

	"stateflow/internal/core/domain/model/item"
	"stateflow/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// ItemDTO represents the database structure for persisting item aggregates.
// The version column drives optimistic-concurrency conflict detection.
type ItemDTO struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	CurrentState string    `gorm:"type:varchar(255);not null"`
	CreatedAt    time.Time `gorm:"not null"`
	UpdatedAt    time.Time `gorm:"not null;index"`
	Version      int64     `gorm:"not null"`

	History []TransitionDTO `gorm:"foreignKey:ItemID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for item entities.
func (ItemDTO) TableName() string {
	return "items"
}

// TransitionDTO represents one committed history entry. The (item_id, seq)
// composite key makes the history append-only at the schema level: a commit
// inserts the next sequence number and never rewrites an existing row.
type TransitionDTO struct {
	ItemID     uuid.UUID `gorm:"type:uuid;primaryKey"`
	Seq        int64     `gorm:"primaryKey;autoIncrement:false"`
	FromState  string    `gorm:"type:varchar(255);not null"`
	ToState    string    `gorm:"type:varchar(255);not null"`
	Reason     string    `gorm:"type:text;not null"`
	Actor      string    `gorm:"type:varchar(255);not null"`
	OccurredAt time.Time `gorm:"not null"`
}

// TableName specifies the database table name for history entries.
func (TransitionDTO) TableName() string {
	return "item_transitions"
}

// fromDomain converts an item aggregate to its database representation,
// numbering the history entries in commit order starting at 1.
func fromDomain(aggregate *item.Item) ItemDTO {
	itemID := aggregate.ID().Bytes()
	history := aggregate.History()

	transitions := make([]TransitionDTO, 0, len(history))
	for i, transition := range history {
		transitions = append(transitions, TransitionDTO{
			ItemID:     itemID,
			Seq:        int64(i + 1),
			FromState:  transition.From().String(),
			ToState:    transition.To().String(),
			Reason:     transition.Reason(),
			Actor:      transition.Actor(),
			OccurredAt: transition.OccurredAt(),
		})
	}

	return ItemDTO{
		ID:           itemID,
		CurrentState: aggregate.CurrentState().String(),
		CreatedAt:    aggregate.CreatedAt(),
		UpdatedAt:    aggregate.UpdatedAt(),
		Version:      aggregate.Version(),
		History:      transitions,
	}
}

// toDomain converts a database DTO to an item aggregate. RestoreItem
// revalidates the history chain, so a corrupted row set fails loud here
// instead of producing an inconsistent aggregate.
func toDomain(dto ItemDTO) (*item.Item, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	history := make([]item.StateTransition, 0, len(dto.History))
	for _, row := range dto.History {
		transition, transitionErr := item.NewStateTransition(
			item.State(row.FromState),
			item.State(row.ToState),
			row.OccurredAt,
			row.Reason,
			row.Actor,
		)
		if transitionErr != nil {
			return nil, transitionErr
		}
		history = append(history, transition)
	}

	return item.RestoreItem(
		id,
		item.State(dto.CurrentState),
		dto.CreatedAt,
		dto.UpdatedAt,
		history,
		dto.Version,
	)
}
