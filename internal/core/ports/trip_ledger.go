package ports

import (
	"context"

	"logistics/internal/core/domain/model/trip"
)

// TripLedger is the capability a transport holds to drive a ledger, whether
// the ledger runs in process or behind a remote endpoint.
//
// Errors are classified with trip.KindOf.
type TripLedger interface {
	Create(ctx context.Context, tripID string) error
	AdvanceToMidpoint(ctx context.Context, tripID string) error
	AdvanceToDelivered(ctx context.Context, tripID string) error
	GetStatus(ctx context.Context, tripID string) (trip.Status, error)
}
