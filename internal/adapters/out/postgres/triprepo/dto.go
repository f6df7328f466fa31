// Package triprepo persists ledger slots in the trips table, one row per
// ledger id.
package triprepo

import (
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/trip"

	"github.com/google/uuid"
)

// TripDTO is the row holding a ledger slot.
type TripDTO struct {
	LedgerID  uuid.UUID `gorm:"type:uuid;primaryKey"`
	TripID    string    `gorm:"type:text;not null"`
	Status    int16     `gorm:"type:smallint;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (TripDTO) TableName() string {
	return "trips"
}

func fromDomain(ledgerID kernel.UUID, aggregate *trip.Trip) TripDTO {
	return TripDTO{
		LedgerID: ledgerID.Bytes(),
		TripID:   aggregate.ID().String(),
		Status:   int16(aggregate.Status()),
	}
}

func toDomain(dto TripDTO) (*trip.Trip, error) {
	id, err := kernel.NewTripID(dto.TripID)
	if err != nil {
		return nil, err
	}
	return trip.RestoreTrip(id, trip.Status(dto.Status))
}
