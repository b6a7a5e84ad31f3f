package server

import (
	"context"

	"github.com/preston-bernstein/matrix-screener/internal/http/handlers"
	"github.com/preston-bernstein/matrix-screener/internal/poller"
)

// Poller defines the poller behavior needed by the server and its handlers.
type Poller interface {
	handlers.Controller
	Start(ctx context.Context)
	Stop(ctx context.Context) error
	Status() poller.Status
}

// Animator is the background renderer lifecycle.
type Animator interface {
	Start(ctx context.Context)
	Stop(ctx context.Context) error
}
