package services

import (
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/trip"
)

// TripLedger enforces the ledger protocol over one slot.
//
// Business rules:
//   - Create always succeeds and replaces whatever the slot held
//   - Every other operation fails with trip.ErrNoActiveTrip on an empty slot,
//     then checks the identifier, then the transition
//   - Failed operations leave the slot untouched
//
// Example usage:
//
//	ledger := services.NewTripLedger()
//	active, err := repo.Get(ctx) // nil when the slot is empty
//	...
//	if err := ledger.AdvanceToMidpoint(active, tripID); err != nil {
//	    return err
//	}
//	return repo.Save(ctx, active)
type TripLedger struct{}

// NewTripLedger creates a TripLedger.
func NewTripLedger() TripLedger {
	return TripLedger{}
}

// Create returns the record that replaces the slot content: tripID in Departed.
func (TripLedger) Create(tripID kernel.TripID) (*trip.Trip, error) {
	return trip.NewTrip(tripID)
}

// AdvanceToMidpoint moves the active trip to InTransit.
func (TripLedger) AdvanceToMidpoint(active *trip.Trip, tripID kernel.TripID) error {
	if active == nil {
		return trip.ErrNoActiveTrip
	}
	return active.AdvanceToMidpoint(tripID)
}

// AdvanceToDelivered moves the active trip to Delivered.
func (TripLedger) AdvanceToDelivered(active *trip.Trip, tripID kernel.TripID) error {
	if active == nil {
		return trip.ErrNoActiveTrip
	}
	return active.AdvanceToDelivered(tripID)
}

// Status reads the active trip's status. It has no side effect.
func (TripLedger) Status(active *trip.Trip, tripID kernel.TripID) (trip.Status, error) {
	if active == nil {
		return trip.Unknown, trip.ErrNoActiveTrip
	}
	return active.StatusFor(tripID)
}
