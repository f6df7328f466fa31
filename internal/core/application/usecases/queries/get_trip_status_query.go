// Package queries contains the read side of the ledger. Queries never open a
// unit of work and never change the slot.
package queries

import (
	"errors"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/trip"
	"logistics/internal/pkg/guard"
)

// ErrGetTripStatusQueryIsNotConstructed is returned for a zero value query.
var ErrGetTripStatusQueryIsNotConstructed = errors.New(
	"GetTripStatusQuery must be created via NewGetTripStatusQuery constructor",
)

// GetTripStatusQuery asks for the status of the active trip on behalf of a
// caller presenting tripID.
//
// Example:
//
//	query, err := NewGetTripStatusQuery("TRIP-001")
//	if err != nil {
//	    return err
//	}
//
//	resp, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to read status: %w", err)
//	}
//	fmt.Println(resp.Status)
type GetTripStatusQuery struct {
	tripID kernel.TripID

	guard guard.ConstructorGuard
}

// NewGetTripStatusQuery validates the identifier and builds the query.
func NewGetTripStatusQuery(tripID string) (GetTripStatusQuery, error) {
	id, err := kernel.NewTripID(tripID)
	if err != nil {
		return GetTripStatusQuery{}, err
	}
	return GetTripStatusQuery{tripID: id, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetTripStatusQuery) Validate() error {
	return q.guard.Validate(ErrGetTripStatusQueryIsNotConstructed)
}

// TripID returns the id the caller presented.
func (q GetTripStatusQuery) TripID() kernel.TripID {
	return q.tripID
}

// GetTripStatusQueryResponse is the read model returned to transports.
type GetTripStatusQueryResponse struct {
	TripID kernel.TripID
	Status trip.Status
}
