package matrix

import (
	"context"
	"testing"
	"time"

	"github.com/preston-bernstein/matrix-screener/internal/metrics"
)

type chanSink chan Frame

func (c chanSink) PublishFrame(f Frame) {
	select {
	case c <- f:
	default:
	}
}

func TestAnimatorPublishesFrames(t *testing.T) {
	sink := make(chanSink, 4)
	recorder := metrics.NewRecorder()
	a := NewAnimator(NewRain(28, 28, seeded()), sink, nil, recorder, time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	a.Start(ctx)
	a.Start(ctx)

	select {
	case f := <-sink:
		if len(f.Glyphs) != 2 {
			t.Fatalf("expected 2 glyphs, got %d", len(f.Glyphs))
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for frame")
	}

	if err := a.Stop(context.Background()); err != nil {
		t.Fatalf("stop: %v", err)
	}
	if err := a.Stop(context.Background()); err != nil {
		t.Fatalf("second stop: %v", err)
	}
	if recorder.Frames() == 0 {
		t.Fatalf("expected frames recorded")
	}
}

func TestAnimatorStopWithoutStart(t *testing.T) {
	a := NewAnimator(NewRain(14, 14, seeded()), nil, nil, nil, 0)
	if a.interval != defaultInterval {
		t.Fatalf("expected default interval, got %v", a.interval)
	}
	if err := a.Stop(context.Background()); err != nil {
		t.Fatalf("stop: %v", err)
	}
}

func TestAnimatorStopsOnContextCancel(t *testing.T) {
	done := make(chan struct{}, 1)
	sink := FrameSinkFunc(func(Frame) {
		select {
		case done <- struct{}{}:
		default:
		}
	})
	a := NewAnimator(NewRain(14, 14, seeded()), sink, nil, nil, time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	a.Start(ctx)
	<-done
	cancel()

	select {
	case <-a.stopped:
	case <-time.After(time.Second):
		t.Fatal("animator did not stop on cancel")
	}
}
