package memory

import (
	"context"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/trip"
	"logistics/internal/pkg/errs"
)

// TripRepository reads and writes one slot. Inside a unit of work Save is
// staged until Commit.
type TripRepository struct {
	ledgerID kernel.UUID
	slot     *slot
	uow      *UnitOfWork
}

// Get rebuilds the staged or stored trip, so callers never share state.
func (r *TripRepository) Get(_ context.Context) (*trip.Trip, error) {
	rec, ok := r.current()
	if !ok {
		return nil, errs.NewObjectNotFoundError("trip", r.ledgerID.String())
	}

	id, err := kernel.NewTripID(rec.tripID)
	if err != nil {
		return nil, err
	}
	return trip.RestoreTrip(id, trip.Status(rec.status))
}

// Save stages the trip while the unit of work is active and stores it otherwise.
func (r *TripRepository) Save(_ context.Context, aggregate *trip.Trip) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	rec := record{tripID: aggregate.ID().String(), status: int(aggregate.Status())}
	if r.uow != nil && r.uow.active {
		r.uow.pending = &rec
		return nil
	}
	r.slot.store(rec)
	return nil
}

// current prefers the record staged in the running unit of work.
func (r *TripRepository) current() (record, bool) {
	if r.uow != nil && r.uow.active && r.uow.pending != nil {
		return *r.uow.pending, true
	}
	return r.slot.load()
}
