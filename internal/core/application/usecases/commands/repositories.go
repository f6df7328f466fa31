// Package commands contains the ledger operations that modify a slot.
// Every command follows the same pattern: validation, unit of work, domain
// rule, persistence, commit.
package commands

import (
	"context"
	"errors"

	"logistics/internal/core/domain/model/trip"
	"logistics/internal/core/ports"
	"logistics/internal/pkg/errs"
)

// Unit of Work interfaces provide the single-writer boundary for command handlers.
type (
	// TxManager handles the unit of work lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// TripRepoFactory provides access to the slot repository within a unit of work.
	TripRepoFactory interface {
		TripRepository() ports.TripRepository
	}

	// TripUoW manages one ledger operation.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   repo := uow.TripRepository()
	//   // ... load, apply, save
	//
	//   err = uow.Commit(ctx)
	TripUoW interface {
		TxManager
		TripRepoFactory
	}

	// TripUoWFactory creates new trip unit of work instances.
	TripUoWFactory interface {
		Create() TripUoW
	}
)

// loadActiveTrip reads the slot, returning a nil trip when it is empty.
func loadActiveTrip(ctx context.Context, repo ports.TripRepository) (*trip.Trip, error) {
	active, err := repo.Get(ctx)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return active, nil
}
