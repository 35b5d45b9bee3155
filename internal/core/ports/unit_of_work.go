package ports

import (
	"context"
)

// UnitOfWorkFactory creates a fresh UnitOfWork for each command.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork is a business transaction spanning one or more aggregates.
// Client code must explicitly manage transaction lifecycle.
type UnitOfWork interface {
	// Begin starts a new database transaction.
	Begin(ctx context.Context) error

	// Commit commits the current transaction.
	// Returns error if no active transaction or commit fails.
	Commit(ctx context.Context) error

	// Rollback rolls back the current transaction. After Commit it only reports that
	// no transaction is open, so handlers defer it unconditionally.
	Rollback(ctx context.Context) error

	// TransportRequestRepository returns a repository bound to the current transaction.
	TransportRequestRepository() TransportRequestRepository

	// TransporterRepository returns a repository bound to the current transaction.
	TransporterRepository() TransporterRepository
}
