package auditrepo

import (
	"context"

	"stateflow/internal/core/domain/audit"
	"stateflow/internal/core/domain/model/kernel"

	"gorm.io/gorm"
)

// GormAuditTrail implements the AuditTrail port using GORM.
type GormAuditTrail struct {
	db *gorm.DB
}

// NewGormAuditTrail creates a new GORM audit trail.
func NewGormAuditTrail(db *gorm.DB) *GormAuditTrail {
	return &GormAuditTrail{db: db}
}

// Append inserts one audit entry. Any failure propagates to the caller so
// the surrounding transaction aborts: a transition attempt that cannot be
// audited must not persist.
func (r *GormAuditTrail) Append(ctx context.Context, entry audit.Entry) error {
	if err := entry.Validate(); err != nil {
		return err
	}

	dto, err := fromDomain(entry)
	if err != nil {
		return err
	}

	return r.db.WithContext(ctx).Create(&dto).Error
}

// GetByItemID returns every recorded attempt for the item in commit order.
func (r *GormAuditTrail) GetByItemID(ctx context.Context, itemID kernel.UUID) ([]audit.Entry, error) {
	if err := itemID.Validate(); err != nil {
		return nil, err
	}

	var dtos []EntryDTO
	err := r.db.WithContext(ctx).
		Where("item_id = ?", itemID.Bytes()).
		Order("id ASC").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	entries := make([]audit.Entry, 0, len(dtos))
	for _, dto := range dtos {
		entry, entryErr := toDomain(dto)
		if entryErr != nil {
			return nil, entryErr
		}
		entries = append(entries, entry)
	}

	return entries, nil
}
