package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/trip"
	"logistics/internal/pkg/errs"

	backend "github.com/redis/go-redis/v9"
)

// TripRepository reads and writes one slot key. Inside a unit of work Save
// is staged and written by Commit.
type TripRepository struct {
	store    *Store
	ledgerID kernel.UUID
	uow      *UnitOfWork
}

// Get returns the staged trip inside a unit of work, otherwise the stored one.
func (r *TripRepository) Get(ctx context.Context) (*trip.Trip, error) {
	if r.uow != nil && r.uow.pending != nil {
		return decodeTrip(*r.uow.pending)
	}

	raw, err := r.store.client.Get(ctx, r.store.slotKey(r.ledgerID)).Result()
	if errors.Is(err, backend.Nil) {
		return nil, errs.NewObjectNotFoundError("trip", r.ledgerID.String())
	}
	if err != nil {
		return nil, err
	}

	var dto slotDTO
	if err = json.Unmarshal([]byte(raw), &dto); err != nil {
		return nil, fmt.Errorf("decode slot %s: %w", r.ledgerID, err)
	}
	return decodeTrip(dto)
}

// Save stages the trip inside a unit of work and writes it directly outside one.
func (r *TripRepository) Save(ctx context.Context, aggregate *trip.Trip) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := slotDTO{
		TripID:    aggregate.ID().String(),
		Status:    int(aggregate.Status()),
		UpdatedAt: time.Now().UTC(),
	}
	if r.uow != nil && r.uow.token != "" {
		r.uow.pending = &dto
		return nil
	}

	value, err := encodeSlot(dto)
	if err != nil {
		return err
	}
	return r.store.client.Set(ctx, r.store.slotKey(r.ledgerID), value, 0).Err()
}

func decodeTrip(dto slotDTO) (*trip.Trip, error) {
	id, err := kernel.NewTripID(dto.TripID)
	if err != nil {
		return nil, err
	}
	return trip.RestoreTrip(id, trip.Status(dto.Status))
}
