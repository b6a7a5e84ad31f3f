package teststubs

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/preston-bernstein/matrix-screener/internal/domain/board"
	"github.com/preston-bernstein/matrix-screener/internal/domain/matches"
)

func TestStubProviderTracksCalls(t *testing.T) {
	err := errors.New("boom")
	p := &StubProvider{Matches: []matches.Match{{ID: 1}}, MatchesErr: err, Notify: make(chan struct{})}

	if _, got := p.CurrentMatchday(context.Background(), "bl1"); got != nil {
		t.Fatalf("expected nil matchday error, got %v", got)
	}
	if _, got := p.FetchMatches(context.Background(), "bl1", 2026, 1); !errors.Is(got, err) {
		t.Fatalf("expected error passthrough, got %v", got)
	}
	if p.MatchdayCalls.Load() != 1 || p.MatchesCalls.Load() != 1 {
		t.Fatalf("unexpected call counts %d/%d", p.MatchdayCalls.Load(), p.MatchesCalls.Load())
	}
	select {
	case <-p.Notify:
	default:
		t.Fatal("expected notify channel closed")
	}
	if slugs := p.Slugs(); len(slugs) != 1 || slugs[0] != "bl1" {
		t.Fatalf("unexpected slugs %v", slugs)
	}
}

func TestStubProviderBlockFirstHonorsContext(t *testing.T) {
	p := &StubProvider{BlockFirst: true, Entered: make(chan struct{})}
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() {
		_, err := p.CurrentMatchday(ctx, "bl1")
		done <- err
	}()

	<-p.Entered
	cancel()
	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("expected context canceled, got %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("blocked call did not return after cancel")
	}

	if _, err := p.CurrentMatchday(context.Background(), "bl1"); err != nil {
		t.Fatalf("expected second call not to block, got %v", err)
	}
}

func TestStubBoardStoreRecordsHistory(t *testing.T) {
	s := &StubBoardStore{}
	s.ReplaceBoard(board.Board{Status: board.StatusLoading})
	s.ReplaceBoard(board.Board{Status: board.StatusOnline})

	if s.Replacements() != 2 || s.Board().Status != board.StatusOnline {
		t.Fatalf("unexpected store state %+v", s.History)
	}
}
