// Package postgres stores ledger slots in PostgreSQL through gorm.
//
// Every unit of work is a database transaction. Reads made through a unit of
// work that has begun take a row lock on the slot (SELECT ... FOR UPDATE), so
// two operations on the same ledger run one after the other while ledgers
// with different ids never block each other.
//
// Usage:
//
//	sqlDB, gormDB, err := postgres.Open(dsn, logger)
//	if err != nil {
//	    return err
//	}
//	if _, err := postgres.Migrate(ctx, sqlDB); err != nil {
//	    return err
//	}
//
//	factory := postgres.NewGormUnitOfWorkFactory(gormDB, ledgerID)
//	uow := factory.Create()
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() { _ = uow.Rollback(ctx) }()
//
//	active, err := uow.TripRepository().Get(ctx)
//	...
//	return uow.Commit(ctx)
package postgres

import (
	"context"

	"logistics/internal/adapters/out/postgres/triprepo"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/ports"

	"gorm.io/gorm"
)

// GormUnitOfWorkFactory creates units of work bound to one ledger id.
type GormUnitOfWorkFactory struct {
	db       *gorm.DB
	ledgerID kernel.UUID
}

// NewGormUnitOfWorkFactory creates a factory for the slot of ledgerID.
//
// Example:
//
//	factory := NewGormUnitOfWorkFactory(db, kernel.NewUUID())
//	uow := factory.Create()
func NewGormUnitOfWorkFactory(db *gorm.DB, ledgerID kernel.UUID) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db, ledgerID: ledgerID}
}

// Create produces a new unit of work. Instances are not safe for concurrent
// use; each operation takes its own.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		db:       f.db,
		ledgerID: f.ledgerID,
	}
}

// GormUnitOfWork wraps one gorm transaction.
type GormUnitOfWork struct {
	db       *gorm.DB
	tx       *gorm.DB
	ledgerID kernel.UUID
}

// Begin starts the transaction. Calling it twice does not nest.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	tx := uow.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return tx.Error
	}

	uow.tx = tx
	return nil
}

// Commit finalizes the transaction and releases the slot row.
// Returns gorm.ErrInvalidTransaction without an active transaction.
func (uow *GormUnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	return err
}

// Rollback discards the transaction. After Commit it only reports
// gorm.ErrInvalidTransaction, which handlers ignore in their deferred call.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	return err
}

// TripRepository returns the slot repository. Inside a transaction it reads
// with a row lock; otherwise it reads committed state from the pool.
func (uow *GormUnitOfWork) TripRepository() ports.TripRepository {
	if uow.tx != nil {
		return triprepo.NewGormTripRepository(uow.tx, uow.ledgerID, true)
	}
	return triprepo.NewGormTripRepository(uow.db, uow.ledgerID, false)
}
