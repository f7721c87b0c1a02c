package services

import (
	"sync"

	"roulette-miniapp-backend/internal/models"
)

// ResultStore stages the last round resolution per account with
// read-once delivery: Publish overwrites any unread entry, Take returns
// and clears it. A session that never polls between two rounds only
// ever sees the newest result.
type ResultStore struct {
	mu      sync.Mutex
	pending map[string]*models.Resolution
}

func NewResultStore() *ResultStore {
	return &ResultStore{pending: make(map[string]*models.Resolution)}
}

func (s *ResultStore) Publish(accountID string, resolution *models.Resolution) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending[accountID] = resolution
}

// Take atomically removes and returns the pending resolution for the
// account, or nil when there is none.
func (s *ResultStore) Take(accountID string) *models.Resolution {
	s.mu.Lock()
	defer s.mu.Unlock()

	resolution, ok := s.pending[accountID]
	if !ok {
		return nil
	}
	delete(s.pending, accountID)
	return resolution
}

func (s *ResultStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}
