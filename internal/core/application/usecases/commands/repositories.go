// Package commands contains the marketplace operations that change state.
// Every handler follows the same shape: validate the command, open a unit of work,
// load and mutate aggregates, save them, commit, and publish the resulting events.
package commands

import (
	"context"

	"freight/internal/core/ports"
)

// Unit of Work interfaces give each handler access to exactly the repositories it needs.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	RequestRepoFactory interface {
		TransportRequestRepository() ports.TransportRequestRepository
	}

	TransporterRepoFactory interface {
		TransporterRepository() ports.TransporterRepository
	}

	// RequestUoW is used by commands that touch only TransportRequest aggregates.
	RequestUoW interface {
		TxManager
		RequestRepoFactory
	}

	RequestUoWFactory interface {
		Create() RequestUoW
	}

	// TransporterUoW is used by fleet and onboarding commands.
	TransporterUoW interface {
		TxManager
		TransporterRepoFactory
	}

	TransporterUoWFactory interface {
		Create() TransporterUoW
	}

	// UoW spans both aggregates, for commands that reserve or release a vehicle while
	// changing a request.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   requests := uow.TransportRequestRepository()
	//   transporters := uow.TransporterRepository()
	//   // ... perform operations
	//
	//   err = uow.Commit(ctx)
	UoW interface {
		TxManager
		RequestRepoFactory
		TransporterRepoFactory
	}

	UoWFactory interface {
		Create() UoW
	}
)
