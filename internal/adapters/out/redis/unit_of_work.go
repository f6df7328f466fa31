package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/ports"

	"github.com/google/uuid"
	backend "github.com/redis/go-redis/v9"
)

var (
	// ErrNoActiveUnitOfWork is returned by Commit and Rollback without Begin.
	ErrNoActiveUnitOfWork = errors.New("unit of work is not active")

	// ErrLockLost is returned by Commit when the slot lock expired before the
	// write; nothing is written in that case.
	ErrLockLost = errors.New("slot lock lost before commit")
)

// commitScript writes the slot only while the caller still owns the lock,
// then releases it.
var commitScript = backend.NewScript(`
if redis.call("get", KEYS[1]) ~= ARGV[1] then
	return 0
end
if ARGV[2] ~= "" then
	redis.call("set", KEYS[2], ARGV[2])
end
redis.call("del", KEYS[1])
return 1
`)

// unlockScript releases the lock if the caller still owns it.
var unlockScript = backend.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
end
return 0
`)

// UnitOfWorkFactory creates units of work over one ledger slot.
type UnitOfWorkFactory struct {
	store    *Store
	ledgerID kernel.UUID
}

// NewUnitOfWorkFactory binds units of work to the slot of ledgerID.
func NewUnitOfWorkFactory(store *Store, ledgerID kernel.UUID) *UnitOfWorkFactory {
	return &UnitOfWorkFactory{store: store, ledgerID: ledgerID}
}

// Create returns a unit of work that has not acquired the lock yet.
func (f *UnitOfWorkFactory) Create() ports.UnitOfWork {
	return &UnitOfWork{store: f.store, ledgerID: f.ledgerID}
}

// UnitOfWork holds the slot lock from Begin to Commit or Rollback.
type UnitOfWork struct {
	store    *Store
	ledgerID kernel.UUID

	token   string
	pending *slotDTO
}

// Begin polls SET NX until the lock is taken or ctx is done.
func (uow *UnitOfWork) Begin(ctx context.Context) error {
	if uow.token != "" {
		return nil
	}

	token := uuid.NewString()
	key := uow.store.lockKey(uow.ledgerID)

	ticker := time.NewTicker(uow.store.pollInterval)
	defer ticker.Stop()

	for {
		ok, err := uow.store.client.SetNX(ctx, key, token, uow.store.lockTTL).Result()
		if err != nil {
			return fmt.Errorf("acquire slot lock: %w", err)
		}
		if ok {
			uow.token = token
			uow.pending = nil
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// Commit writes the staged trip and releases the lock in one script, failing
// with ErrLockLost when the lock expired in between.
func (uow *UnitOfWork) Commit(ctx context.Context) error {
	if uow.token == "" {
		return ErrNoActiveUnitOfWork
	}
	defer uow.reset()

	value := ""
	if uow.pending != nil {
		var err error
		if value, err = encodeSlot(*uow.pending); err != nil {
			return err
		}
	}

	keys := []string{uow.store.lockKey(uow.ledgerID), uow.store.slotKey(uow.ledgerID)}
	written, err := commitScript.Run(ctx, uow.store.client, keys, uow.token, value).Int()
	if err != nil {
		return err
	}
	if written == 0 {
		return ErrLockLost
	}
	return nil
}

// Rollback drops the staged trip and releases the lock if this unit still owns it.
func (uow *UnitOfWork) Rollback(ctx context.Context) error {
	if uow.token == "" {
		return ErrNoActiveUnitOfWork
	}
	defer uow.reset()

	keys := []string{uow.store.lockKey(uow.ledgerID)}
	return unlockScript.Run(ctx, uow.store.client, keys, uow.token).Err()
}

// TripRepository returns the repository bound to this unit of work.
func (uow *UnitOfWork) TripRepository() ports.TripRepository {
	return &TripRepository{store: uow.store, ledgerID: uow.ledgerID, uow: uow}
}

func (uow *UnitOfWork) reset() {
	uow.token = ""
	uow.pending = nil
}
