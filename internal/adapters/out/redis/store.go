// Package redis stores ledger slots in Redis. Each slot is a JSON value; a
// SET NX lock next to it gives every unit of work exclusive access.
package redis

import (
	"context"
	"encoding/json"
	"time"

	"logistics/internal/core/domain/model/kernel"

	backend "github.com/redis/go-redis/v9"
)

const (
	defaultPrefix       = "logistics:ledger:"
	defaultLockTTL      = 5 * time.Second
	defaultPollInterval = 25 * time.Millisecond
)

// Store holds the client and key layout shared by all ledgers.
type Store struct {
	client       *backend.Client
	prefix       string
	lockTTL      time.Duration
	pollInterval time.Duration
}

// Option configures a Store.
type Option func(*Store)

// WithPrefix sets the key prefix for slots and locks.
func WithPrefix(prefix string) Option {
	return func(s *Store) {
		s.prefix = prefix
	}
}

// WithLockTTL bounds how long a crashed holder can keep a slot locked.
func WithLockTTL(ttl time.Duration) Option {
	return func(s *Store) {
		s.lockTTL = ttl
	}
}

// WithPollInterval sets how often a waiting unit of work retries the lock.
func WithPollInterval(interval time.Duration) Option {
	return func(s *Store) {
		s.pollInterval = interval
	}
}

// New connects to a Redis server.
func New(address, password string, db int, opts ...Option) *Store {
	client := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(client, opts...)
}

// NewFromClient creates a store from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Store {
	store := &Store{
		client:       client,
		prefix:       defaultPrefix,
		lockTTL:      defaultLockTTL,
		pollInterval: defaultPollInterval,
	}
	for _, opt := range opts {
		opt(store)
	}
	return store
}

// Ping checks the connection.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close releases the client.
func (s *Store) Close() error {
	return s.client.Close()
}

func (s *Store) slotKey(ledgerID kernel.UUID) string {
	return s.prefix + ledgerID.String() + ":trip"
}

func (s *Store) lockKey(ledgerID kernel.UUID) string {
	return s.prefix + ledgerID.String() + ":lock"
}

// slotDTO is the JSON stored under a slot key.
type slotDTO struct {
	TripID    string    `json:"trip_id"`
	Status    int       `json:"status"`
	UpdatedAt time.Time `json:"updated_at"`
}

func encodeSlot(dto slotDTO) (string, error) {
	data, err := json.Marshal(dto)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
