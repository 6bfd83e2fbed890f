// Package auditrepo provides data transfer objects and mapping functions for
// the append-only audit trail. Entries are only ever inserted; the
// auto-incrementing primary key gives each item's attempts a total order
// assigned at commit time.
package auditrepo

import (
	"encoding/json"
	"time"

	"stateflow/internal/core/domain/audit"
	"stateflow/internal/core/domain/model/item"
	"stateflow/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// EntryDTO represents the database structure for persisting audit entries.
// Violations are stored as a JSON array so rejected attempts keep every
// violated rule, in pipeline order, without a join table.
type EntryDTO struct {
	ID         int64     `gorm:"primaryKey;autoIncrement"`
	ItemID     uuid.UUID `gorm:"type:uuid;not null;index"`
	FromState  string    `gorm:"type:varchar(255);not null"`
	ToState    string    `gorm:"type:varchar(255);not null"`
	Outcome    string    `gorm:"type:varchar(32);not null"`
	Violations string    `gorm:"type:text;not null"`
	Actor      string    `gorm:"type:varchar(255);not null"`
	RecordedAt time.Time `gorm:"not null"`
}

// TableName specifies the database table name for audit entries.
func (EntryDTO) TableName() string {
	return "audit_entries"
}

// fromDomain converts an audit entry to its database representation.
func fromDomain(entry audit.Entry) (EntryDTO, error) {
	violations, err := json.Marshal(entry.Violations())
	if err != nil {
		return EntryDTO{}, err
	}

	return EntryDTO{
		ItemID:     entry.ItemID().Bytes(),
		FromState:  entry.FromState().String(),
		ToState:    entry.ToState().String(),
		Outcome:    entry.Outcome().String(),
		Violations: string(violations),
		Actor:      entry.Actor(),
		RecordedAt: entry.RecordedAt(),
	}, nil
}

// toDomain converts a database DTO to an audit entry.
func toDomain(dto EntryDTO) (audit.Entry, error) {
	id, err := kernel.UUIDFromBytes(dto.ItemID[:])
	if err != nil {
		return audit.Entry{}, err
	}

	var violations []string
	if err = json.Unmarshal([]byte(dto.Violations), &violations); err != nil {
		return audit.Entry{}, err
	}

	return audit.NewEntry(
		id,
		item.State(dto.FromState),
		item.State(dto.ToState),
		audit.Outcome(dto.Outcome),
		violations,
		dto.Actor,
		dto.RecordedAt,
	)
}
