package store

import (
	"sync"

	"github.com/preston-bernstein/matrix-screener/internal/domain/board"
)

// BoardStore keeps a thread-safe copy of the current board in memory.
type BoardStore struct {
	mu    sync.RWMutex
	board board.Board
}

// NewBoardStore constructs a store seeded with initial.
func NewBoardStore(initial board.Board) *BoardStore {
	return &BoardStore{board: initial.Clone()}
}

// Board returns a copy of the current board.
func (s *BoardStore) Board() board.Board {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.board.Clone()
}

// SetBoard replaces the current board with b.
func (s *BoardStore) SetBoard(b board.Board) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.board = b.Clone()
}
