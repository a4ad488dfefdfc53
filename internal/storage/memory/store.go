package memory

import (
	"sync"

	"review_analyzer/internal/domain"
)

// Store is an append-only, in-process review collection.
// Contents are lost on restart.
type Store struct {
	mu      sync.RWMutex
	reviews []domain.Review
}

func New(seed []domain.Review) *Store {
	s := &Store{reviews: make([]domain.Review, len(seed))}
	copy(s.reviews, seed)
	return s
}

func (s *Store) Append(r domain.Review) {
	s.mu.Lock()
	s.reviews = append(s.reviews, r)
	s.mu.Unlock()
}

// All returns a snapshot copy in insertion order.
func (s *Store) All() []domain.Review {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Review, len(s.reviews))
	copy(out, s.reviews)
	return out
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.reviews)
}
