package testutil

import (
	appboard "github.com/preston-bernstein/matrix-screener/internal/app/board"
	"github.com/preston-bernstein/matrix-screener/internal/domain/board"
	"github.com/preston-bernstein/matrix-screener/internal/store"
)

// NewBoardService builds a board service backed by an in-memory store seeded with b.
func NewBoardService(b board.Board) *appboard.Service {
	return appboard.NewService(store.NewBoardStore(b))
}
