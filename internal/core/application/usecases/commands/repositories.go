// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS
// architecture. All commands follow a consistent pattern: validation,
// transaction management, and persistence.
package commands

import (
	"context"

	"stateflow/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// ItemRepoFactory provides access to the item repository within a transaction.
	ItemRepoFactory interface {
		ItemRepository() ports.ItemRepository
	}

	// AuditTrailFactory provides access to the audit trail within a transaction.
	AuditTrailFactory interface {
		AuditTrail() ports.AuditTrail
	}

	// ItemUoW manages transactions for item-only operations, such as
	// creating a new tracked item.
	ItemUoW interface {
		TxManager
		ItemRepoFactory
	}

	// ItemUoWFactory creates new item unit of work instances.
	ItemUoWFactory interface {
		Create() ItemUoW
	}

	// UoW manages transactions spanning the item aggregate and the audit
	// trail. The transition engine needs both: a state change and its audit
	// entry must commit together or not at all.
	UoW interface {
		TxManager
		ItemRepoFactory
		AuditTrailFactory
	}

	// UoWFactory creates new unit of work instances for transition attempts.
	UoWFactory interface {
		Create() UoW
	}
)
