package queries

import (
	"context"
	"errors"

	"logistics/internal/core/domain/services"
	"logistics/internal/core/ports"
	"logistics/internal/pkg/errs"
)

// GetTripStatusQueryHandler reads committed slot state without locking it.
type GetTripStatusQueryHandler struct {
	uowFactory ports.UnitOfWorkFactory
	ledger     services.TripLedger
}

// NewGetTripStatusQueryHandler creates a handler for status reads.
func NewGetTripStatusQueryHandler(uowFactory ports.UnitOfWorkFactory) GetTripStatusQueryHandler {
	return GetTripStatusQueryHandler{
		uowFactory: uowFactory,
		ledger:     services.NewTripLedger(),
	}
}

// Handle returns the status of the active trip.
//
// Returns:
//   - trip.ErrNoActiveTrip when the slot is empty
//   - *trip.IdentifierMismatchError when the query names another trip
func (h GetTripStatusQueryHandler) Handle(
	ctx context.Context,
	query GetTripStatusQuery,
) (GetTripStatusQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetTripStatusQueryResponse{}, err
	}

	active, err := h.uowFactory.Create().TripRepository().Get(ctx)
	if errors.Is(err, errs.ErrObjectNotFound) {
		active, err = nil, nil
	}
	if err != nil {
		return GetTripStatusQueryResponse{}, err
	}

	status, err := h.ledger.Status(active, query.TripID())
	if err != nil {
		return GetTripStatusQueryResponse{}, err
	}

	return GetTripStatusQueryResponse{
		TripID: query.TripID(),
		Status: status,
	}, nil
}
