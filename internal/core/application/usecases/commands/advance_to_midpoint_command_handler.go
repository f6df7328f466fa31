package commands

import (
	"context"

	"logistics/internal/core/domain/services"
)

// AdvanceToMidpointCommandHandler moves the active trip from Departed to InTransit.
//
// A retry after an ambiguous transport failure may see trip.ErrInvalidTransition
// because the first attempt already succeeded; callers must read that as
// "possibly already advanced".
type AdvanceToMidpointCommandHandler struct {
	uowFactory TripUoWFactory
	ledger     services.TripLedger
}

// NewAdvanceToMidpointCommandHandler creates a handler for the midpoint checkpoint.
func NewAdvanceToMidpointCommandHandler(uowFactory TripUoWFactory) AdvanceToMidpointCommandHandler {
	return AdvanceToMidpointCommandHandler{
		uowFactory: uowFactory,
		ledger:     services.NewTripLedger(),
	}
}

// Handle loads the slot, applies the transition and saves it. Nothing is
// written when the transition fails.
func (h *AdvanceToMidpointCommandHandler) Handle(ctx context.Context, cmd AdvanceToMidpointCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.TripRepository()
	active, err := loadActiveTrip(ctx, repo)
	if err != nil {
		return err
	}

	if err = h.ledger.AdvanceToMidpoint(active, cmd.TripID()); err != nil {
		return err
	}

	if err = repo.Save(ctx, active); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
