// Package ports defines the contracts between the ledger core and its
// adapters: storage on one side, transports on the other.
package ports

import (
	"context"

	"logistics/internal/core/domain/model/trip"
)

// TripRepository persists the single trip slot of one ledger. Implementations
// are bound to a ledger id when they are created.
type TripRepository interface {
	// Get returns the trip held in the slot, or an *errs.ObjectNotFoundError
	// when the slot has never been written.
	Get(ctx context.Context) (*trip.Trip, error)

	// Save replaces the slot content with the given trip.
	Save(ctx context.Context, aggregate *trip.Trip) error
}
