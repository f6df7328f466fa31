package commands

import (
	"errors"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/guard"
)

// ErrAdvanceToDeliveredCommandIsNotConstructed is returned for a zero value command.
var ErrAdvanceToDeliveredCommandIsNotConstructed = errors.New(
	"AdvanceToDeliveredCommand must be created via NewAdvanceToDeliveredCommand constructor",
)

// AdvanceToDeliveredCommand records that the trip reached its destination.
type AdvanceToDeliveredCommand struct {
	tripID kernel.TripID

	guard guard.ConstructorGuard
}

// NewAdvanceToDeliveredCommand validates the identifier and builds the command.
func NewAdvanceToDeliveredCommand(tripID string) (AdvanceToDeliveredCommand, error) {
	id, err := kernel.NewTripID(tripID)
	if err != nil {
		return AdvanceToDeliveredCommand{}, err
	}

	return AdvanceToDeliveredCommand{
		tripID: id,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c AdvanceToDeliveredCommand) Validate() error {
	return c.guard.Validate(ErrAdvanceToDeliveredCommandIsNotConstructed)
}

// TripID returns the identifier presented by the caller.
func (c AdvanceToDeliveredCommand) TripID() kernel.TripID {
	return c.tripID
}
