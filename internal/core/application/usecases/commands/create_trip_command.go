package commands

import (
	"errors"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/guard"
)

// ErrCreateTripCommandIsNotConstructed is returned for a zero value command.
var ErrCreateTripCommandIsNotConstructed = errors.New(
	"CreateTripCommand must be created via NewCreateTripCommand constructor",
)

// CreateTripCommand opens a trip in the ledger, replacing the previous one.
//
// Example:
//
//	cmd, err := NewCreateTripCommand("TRIP-001")
//	if err != nil {
//	    return fmt.Errorf("invalid trip: %w", err)
//	}
//
//	handler := NewCreateTripCommandHandler(uowFactory)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to create trip: %w", err)
//	}
type CreateTripCommand struct {
	tripID kernel.TripID

	guard guard.ConstructorGuard
}

// NewCreateTripCommand validates the identifier and builds the command.
func NewCreateTripCommand(tripID string) (CreateTripCommand, error) {
	id, err := kernel.NewTripID(tripID)
	if err != nil {
		return CreateTripCommand{}, err
	}

	return CreateTripCommand{
		tripID: id,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateTripCommand) Validate() error {
	return c.guard.Validate(ErrCreateTripCommandIsNotConstructed)
}

// TripID returns the identifier of the trip to open.
func (c CreateTripCommand) TripID() kernel.TripID {
	return c.tripID
}
