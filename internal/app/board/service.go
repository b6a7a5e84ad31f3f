package board

import (
	"sync"

	domainboard "github.com/preston-bernstein/matrix-screener/internal/domain/board"
)

// Store defines the contract for persisting and retrieving the board.
type Store interface {
	Board() domainboard.Board
	SetBoard(b domainboard.Board)
}

// Listener is notified with every board that replaces the current one.
type Listener func(domainboard.Board)

// Service coordinates board reads and replacements using a Store.
type Service struct {
	store     Store
	mu        sync.RWMutex
	listeners []Listener
}

// NewService constructs a Service with the provided Store.
func NewService(store Store) *Service {
	return &Service{store: store}
}

// Board returns the current board.
func (s *Service) Board() domainboard.Board {
	return s.store.Board()
}

// ReplaceBoard swaps the stored board and notifies listeners.
func (s *Service) ReplaceBoard(b domainboard.Board) {
	s.store.SetBoard(b)

	s.mu.RLock()
	listeners := make([]Listener, len(s.listeners))
	copy(listeners, s.listeners)
	s.mu.RUnlock()

	for _, l := range listeners {
		l(b.Clone())
	}
}

// Subscribe registers l for future replacements.
func (s *Service) Subscribe(l Listener) {
	if l == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, l)
}
