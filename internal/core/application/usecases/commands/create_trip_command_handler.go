package commands

import (
	"context"

	"logistics/internal/core/domain/services"
)

// CreateTripCommandHandler writes a fresh Departed trip into the slot.
// Whatever the slot held before is overwritten without inspection, so
// resubmitting the same create is safe.
type CreateTripCommandHandler struct {
	uowFactory TripUoWFactory
	ledger     services.TripLedger
}

// NewCreateTripCommandHandler creates a handler for trip creation.
func NewCreateTripCommandHandler(uowFactory TripUoWFactory) CreateTripCommandHandler {
	return CreateTripCommandHandler{
		uowFactory: uowFactory,
		ledger:     services.NewTripLedger(),
	}
}

// Handle processes the create command inside one unit of work.
func (h *CreateTripCommandHandler) Handle(ctx context.Context, cmd CreateTripCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	created, err := h.ledger.Create(cmd.TripID())
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.TripRepository().Save(ctx, created); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
