package commands

import (
	"errors"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/guard"
)

// ErrAdvanceToMidpointCommandIsNotConstructed is returned for a zero value command.
var ErrAdvanceToMidpointCommandIsNotConstructed = errors.New(
	"AdvanceToMidpointCommand must be created via NewAdvanceToMidpointCommand constructor",
)

// AdvanceToMidpointCommand records that the trip passed its midpoint checkpoint.
type AdvanceToMidpointCommand struct {
	tripID kernel.TripID

	guard guard.ConstructorGuard
}

// NewAdvanceToMidpointCommand validates the identifier and builds the command.
func NewAdvanceToMidpointCommand(tripID string) (AdvanceToMidpointCommand, error) {
	id, err := kernel.NewTripID(tripID)
	if err != nil {
		return AdvanceToMidpointCommand{}, err
	}

	return AdvanceToMidpointCommand{
		tripID: id,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c AdvanceToMidpointCommand) Validate() error {
	return c.guard.Validate(ErrAdvanceToMidpointCommandIsNotConstructed)
}

// TripID returns the identifier presented by the caller.
func (c AdvanceToMidpointCommand) TripID() kernel.TripID {
	return c.tripID
}
