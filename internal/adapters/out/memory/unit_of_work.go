package memory

import (
	"context"
	"errors"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/ports"
)

// ErrNoActiveUnitOfWork is returned by Commit and Rollback without Begin.
var ErrNoActiveUnitOfWork = errors.New("unit of work is not active")

// UnitOfWorkFactory creates units of work over one ledger slot.
type UnitOfWorkFactory struct {
	ledgerID kernel.UUID
	slot     *slot
}

// NewUnitOfWorkFactory binds a factory to ledgerID inside store.
func NewUnitOfWorkFactory(store *Store, ledgerID kernel.UUID) *UnitOfWorkFactory {
	return &UnitOfWorkFactory{ledgerID: ledgerID, slot: store.slot(ledgerID)}
}

// Create returns a unit of work that does not hold the slot yet.
func (f *UnitOfWorkFactory) Create() ports.UnitOfWork {
	return &UnitOfWork{ledgerID: f.ledgerID, slot: f.slot}
}

// UnitOfWork holds the slot's writer lock from Begin to Commit or Rollback.
type UnitOfWork struct {
	ledgerID kernel.UUID
	slot     *slot

	active  bool
	pending *record
}

// Begin waits for the slot, giving up when ctx is done.
func (uow *UnitOfWork) Begin(ctx context.Context) error {
	if uow.active {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	acquired := make(chan struct{})
	go func() {
		uow.slot.writer.Lock()
		close(acquired)
	}()

	select {
	case <-acquired:
		uow.active = true
		uow.pending = nil
		return nil
	case <-ctx.Done():
		// Hand the lock back as soon as the goroutine gets it.
		go func() {
			<-acquired
			uow.slot.writer.Unlock()
		}()
		return ctx.Err()
	}
}

// Commit publishes the staged trip and releases the slot.
func (uow *UnitOfWork) Commit(_ context.Context) error {
	if !uow.active {
		return ErrNoActiveUnitOfWork
	}
	if uow.pending != nil {
		uow.slot.store(*uow.pending)
	}
	uow.release()
	return nil
}

// Rollback discards the staged trip and releases the slot.
func (uow *UnitOfWork) Rollback(_ context.Context) error {
	if !uow.active {
		return ErrNoActiveUnitOfWork
	}
	uow.release()
	return nil
}

// TripRepository returns the repository bound to this unit of work.
func (uow *UnitOfWork) TripRepository() ports.TripRepository {
	return &TripRepository{ledgerID: uow.ledgerID, slot: uow.slot, uow: uow}
}

func (uow *UnitOfWork) release() {
	uow.active = false
	uow.pending = nil
	uow.slot.writer.Unlock()
}
