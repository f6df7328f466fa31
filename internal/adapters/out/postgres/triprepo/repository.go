package triprepo

import (
	"context"
	"errors"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/trip"
	"logistics/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormTripRepository implements ports.TripRepository for one ledger id.
type GormTripRepository struct {
	db       *gorm.DB
	ledgerID kernel.UUID
	lock     bool
}

// NewGormTripRepository binds a repository to ledgerID. With lock set, Get
// takes a row lock that lasts until the surrounding transaction ends.
func NewGormTripRepository(db *gorm.DB, ledgerID kernel.UUID, lock bool) *GormTripRepository {
	return &GormTripRepository{
		db:       db,
		ledgerID: ledgerID,
		lock:     lock,
	}
}

// Get reads the slot row.
func (r *GormTripRepository) Get(ctx context.Context) (*trip.Trip, error) {
	if err := r.ledgerID.Validate(); err != nil {
		return nil, err
	}

	q := r.db.WithContext(ctx)
	if r.lock {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var dto TripDTO
	if err := q.Take(&dto, "ledger_id = ?", r.ledgerID.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("trip", r.ledgerID.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// Save upserts the slot row.
func (r *GormTripRepository) Save(ctx context.Context, aggregate *trip.Trip) error {
	if err := errors.Join(r.ledgerID.Validate(), aggregate.Validate()); err != nil {
		return err
	}

	dto := fromDomain(r.ledgerID, aggregate)
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "ledger_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"trip_id", "status", "updated_at"}),
		}).
		Create(&dto).Error
}
