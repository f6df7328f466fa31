package ports

import (
	"context"
)

// UnitOfWorkFactory creates new UnitOfWork instances for each command.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork is the boundary inside which a ledger operation runs to
// completion. Between Begin and Commit/Rollback no other unit of work on the
// same ledger can observe or change the slot.
type UnitOfWork interface {
	// Begin acquires the slot for this unit of work.
	Begin(ctx context.Context) error

	// Commit makes the changes durable and releases the slot.
	Commit(ctx context.Context) error

	// Rollback discards the changes and releases the slot. Calling it after
	// Commit is harmless.
	Rollback(ctx context.Context) error

	// TripRepository returns the slot repository bound to this unit of work.
	// Without Begin it reads committed state directly.
	TripRepository() TripRepository
}
