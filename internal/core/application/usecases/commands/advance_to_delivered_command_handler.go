package commands

import (
	"context"

	"logistics/internal/core/domain/services"
)

// AdvanceToDeliveredCommandHandler moves the active trip from InTransit to Delivered.
//
// A retry after an ambiguous transport failure may see trip.ErrInvalidTransition
// because the first attempt already succeeded; callers must read that as
// "possibly already advanced".
type AdvanceToDeliveredCommandHandler struct {
	uowFactory TripUoWFactory
	ledger     services.TripLedger
}

// NewAdvanceToDeliveredCommandHandler creates a handler for the delivery checkpoint.
func NewAdvanceToDeliveredCommandHandler(uowFactory TripUoWFactory) AdvanceToDeliveredCommandHandler {
	return AdvanceToDeliveredCommandHandler{
		uowFactory: uowFactory,
		ledger:     services.NewTripLedger(),
	}
}

// Handle loads the slot, applies the transition and saves it. Nothing is
// written when the transition fails.
func (h *AdvanceToDeliveredCommandHandler) Handle(ctx context.Context, cmd AdvanceToDeliveredCommand) error {
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

	if err = h.ledger.AdvanceToDelivered(active, cmd.TripID()); err != nil {
		return err
	}

	if err = repo.Save(ctx, active); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
