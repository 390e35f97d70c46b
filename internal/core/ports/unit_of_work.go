package ports

import (
	"context"
)

// UnitOfWorkFactory creates a fresh UnitOfWork per command execution so
// concurrent handlers never share transactional state.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork is the transaction boundary of a business operation. Every
// cross-aggregate invariant (consignment assignment plus driver binding,
// terminal transition plus settlement row) commits or rolls back as one.
type UnitOfWork interface {
	// Begin starts a new database transaction.
	Begin(ctx context.Context) error

	// Commit commits the current transaction.
	// Returns an error if no transaction is active or the commit fails.
	Commit(ctx context.Context) error

	// Rollback rolls back the current transaction.
	// Safe to defer after a successful commit.
	Rollback(ctx context.Context) error

	// ConsignmentRepository returns a repository bound to the current
	// transaction.
	ConsignmentRepository() ConsignmentRepository

	// DriverRepository returns a repository bound to the current
	// transaction.
	DriverRepository() DriverRepository

	// TrackRepository returns a repository bound to the current
	// transaction.
	TrackRepository() TrackRepository

	// SettlementRepository returns a repository bound to the current
	// transaction.
	SettlementRepository() SettlementRepository
}
