package matrix

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/preston-bernstein/matrix-screener/internal/logging"
	"github.com/preston-bernstein/matrix-screener/internal/metrics"
)

const defaultInterval = 35 * time.Millisecond

// FrameSink receives every frame the animator renders.
type FrameSink interface {
	PublishFrame(f Frame)
}

// FrameSinkFunc adapts a function to FrameSink.
type FrameSinkFunc func(Frame)

// PublishFrame calls fn(f).
func (fn FrameSinkFunc) PublishFrame(f Frame) { fn(f) }

// Animator ticks a Rain on a fixed interval and hands frames to a sink.
type Animator struct {
	rain     *Rain
	sink     FrameSink
	logger   *slog.Logger
	metrics  *metrics.Recorder
	interval time.Duration

	ticker   *time.Ticker
	done     chan struct{}
	stopped  chan struct{}
	stopOnce sync.Once
	startMu  sync.Mutex
	started  bool
}

// NewAnimator builds an animator; a non-positive interval falls back to 35ms.
func NewAnimator(rain *Rain, sink FrameSink, logger *slog.Logger, recorder *metrics.Recorder, interval time.Duration) *Animator {
	if interval <= 0 {
		interval = defaultInterval
	}
	return &Animator{
		rain:     rain,
		sink:     sink,
		logger:   logger,
		metrics:  recorder,
		interval: interval,
		done:     make(chan struct{}),
		stopped:  make(chan struct{}),
	}
}

// Rain returns the animated rain, for resizing.
func (a *Animator) Rain() *Rain {
	return a.rain
}

// Start runs the animation until ctx is cancelled or Stop is called.
func (a *Animator) Start(ctx context.Context) {
	a.startMu.Lock()
	if a.started {
		a.startMu.Unlock()
		return
	}
	a.started = true
	a.startMu.Unlock()

	a.ticker = time.NewTicker(a.interval)
	logging.Info(a.logger, "animator started",
		slog.Int64(logging.FieldDurationMS, a.interval.Milliseconds()),
		slog.Int("columns", a.rain.Columns()),
	)

	go func() {
		defer close(a.stopped)
		defer logging.Info(a.logger, "animator stopped")
		defer a.ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-a.done:
				return
			case <-a.ticker.C:
				a.step()
			}
		}
	}()
}

// Stop halts the animation and waits for the loop to exit or ctx to end.
func (a *Animator) Stop(ctx context.Context) error {
	a.stopOnce.Do(func() { close(a.done) })

	a.startMu.Lock()
	started := a.started
	a.startMu.Unlock()
	if !started {
		return nil
	}

	select {
	case <-a.stopped:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (a *Animator) step() {
	f := a.rain.Tick()
	if a.metrics != nil {
		a.metrics.RecordFrame(len(f.Glyphs))
	}
	if a.sink != nil {
		a.sink.PublishFrame(f)
	}
}
