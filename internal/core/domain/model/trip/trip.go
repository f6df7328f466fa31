package trip

import (
	"errors"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/guard"
)

// ErrTripIsNotConstructed is returned when a Trip was not created through
// NewTrip or RestoreTrip.
var ErrTripIsNotConstructed = errors.New("Trip must be created via NewTrip or RestoreTrip constructor")

// Trip is the aggregate held in a ledger slot: a caller-assigned identifier
// and the checkpoint reached so far.
//
// Trip follows these invariants:
//   - The identifier is set once and never changes
//   - Status is always one of Departed, InTransit, Delivered
//   - Status only advances one step at a time, and only for the matching id
type Trip struct {
	id     kernel.TripID
	status Status
	guard  guard.ConstructorGuard
}

// NewTrip creates a trip in Departed status.
func NewTrip(id kernel.TripID) (*Trip, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	return &Trip{
		id:     id,
		status: Departed,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// RestoreTrip rebuilds a trip read back from storage.
func RestoreTrip(id kernel.TripID, status Status) (*Trip, error) {
	if err := errors.Join(id.Validate(), status.Validate()); err != nil {
		return nil, err
	}
	return &Trip{
		id:     id,
		status: status,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the trip was built by one of the constructors.
func (t *Trip) Validate() error {
	if t == nil {
		return ErrTripIsNotConstructed
	}
	return t.guard.Validate(ErrTripIsNotConstructed)
}

// ID returns the trip identifier.
func (t *Trip) ID() kernel.TripID {
	return t.id
}

// Status returns the current checkpoint.
func (t *Trip) Status() Status {
	return t.status
}

// Authorize checks that id is the identifier this trip was created with.
func (t *Trip) Authorize(id kernel.TripID) error {
	if !t.id.IsEqual(id) {
		return newIdentifierMismatchError(t.id.String(), id.String())
	}
	return nil
}

// StatusFor returns the current status to a caller presenting id.
func (t *Trip) StatusFor(id kernel.TripID) (Status, error) {
	if err := t.Authorize(id); err != nil {
		return Unknown, err
	}
	return t.status, nil
}

// AdvanceToMidpoint moves the trip from Departed to InTransit.
//
// Returns:
//   - *IdentifierMismatchError if id is not this trip's identifier
//   - *InvalidTransitionError unless the trip is Departed
//
// The trip is unchanged on failure.
func (t *Trip) AdvanceToMidpoint(id kernel.TripID) error {
	if err := t.Authorize(id); err != nil {
		return err
	}
	next, err := t.status.AdvanceToMidpoint()
	if err != nil {
		return err
	}
	t.status = next
	return nil
}

// AdvanceToDelivered moves the trip from InTransit to Delivered.
//
// Returns:
//   - *IdentifierMismatchError if id is not this trip's identifier
//   - *InvalidTransitionError unless the trip is InTransit
//
// The trip is unchanged on failure.
func (t *Trip) AdvanceToDelivered(id kernel.TripID) error {
	if err := t.Authorize(id); err != nil {
		return err
	}
	next, err := t.status.AdvanceToDelivered()
	if err != nil {
		return err
	}
	t.status = next
	return nil
}
