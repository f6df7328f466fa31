// Package memory keeps ledger slots in process memory. It backs STORAGE=memory
// and the ledger tests; nothing survives a restart.
package memory

import (
	"sync"

	"logistics/internal/core/domain/model/kernel"
)

// record is the stored form of a trip. Aggregates are rebuilt on every read so
// callers never share state with the store.
type record struct {
	tripID string
	status int
}

// slot is one ledger's storage. writer serializes units of work; mu guards the
// committed record for readers.
type slot struct {
	writer sync.Mutex

	mu     sync.RWMutex
	record *record
}

func (s *slot) load() (record, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.record == nil {
		return record{}, false
	}
	return *s.record, true
}

func (s *slot) store(r record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record = &r
}

// Store holds the slots of every ledger created in this process.
type Store struct {
	mu    sync.Mutex
	slots map[kernel.UUID]*slot
}

// NewStore creates an empty store. Slots appear on first use.
func NewStore() *Store {
	return &Store{slots: make(map[kernel.UUID]*slot)}
}

func (s *Store) slot(ledgerID kernel.UUID) *slot {
	s.mu.Lock()
	defer s.mu.Unlock()
	sl, ok := s.slots[ledgerID]
	if !ok {
		sl = &slot{}
		s.slots[ledgerID] = sl
	}
	return sl
}
