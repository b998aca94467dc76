package config

import "sync"

// Store holds the current configuration snapshot. The beacon loop reads a
// fresh copy at the top of each iteration, so an edit takes effect on the
// next beacon rather than the one in flight.
type Store struct {
	mu   sync.RWMutex
	conf Config
}

// NewStore creates a store seeded with conf
func NewStore(conf Config) *Store {
	return &Store{conf: conf}
}

// Get returns the current snapshot
func (s *Store) Get() Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.conf
}

// Set replaces the snapshot
func (s *Store) Set(conf Config) {
	s.mu.Lock()
	s.conf = conf
	s.mu.Unlock()
}
