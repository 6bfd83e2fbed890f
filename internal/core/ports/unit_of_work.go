package ports

import (
	"context"
)

// UnitOfWorkFactory creates new UnitOfWork instances for each request/command.
// This ensures proper isolation between concurrent operations.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork represents a business transaction boundary. The engine uses it
// to commit a state change and its audit entry atomically: either both
// persist or neither does. Client code manages the transaction lifecycle
// explicitly.
type UnitOfWork interface {
	// Begin starts a new database transaction.
	Begin(ctx context.Context) error

	// Commit commits the current transaction.
	// Returns error if no active transaction or commit fails.
	Commit(ctx context.Context) error

	// Rollback rolls back the current transaction.
	// Returns error if no active transaction or rollback fails.
	Rollback(ctx context.Context) error

	// ItemRepository returns an ItemRepository bound to the current
	// transaction started by Begin().
	ItemRepository() ItemRepository

	// AuditTrail returns an AuditTrail bound to the current transaction
	// started by Begin().
	AuditTrail() AuditTrail
}
