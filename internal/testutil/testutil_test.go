package testutil

import (
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/preston-bernstein/matrix-screener/internal/domain/board"
	"github.com/preston-bernstein/matrix-screener/internal/domain/matches"
)

func TestClockHelpers(t *testing.T) {
	now := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	if got := NowAt(now)(); !got.Equal(now) {
		t.Fatalf("expected fixed time, got %v", got)
	}
	kickoff := Berlin(2026, time.October, 18, 15, 30)
	if got := kickoff.UTC(); got.Hour() != 13 || got.Minute() != 30 {
		t.Fatalf("expected 13:30 UTC during summer time, got %v", got)
	}
}

func TestBufferLoggerCapturesOutput(t *testing.T) {
	logger, buf := NewBufferLogger()
	logger.Debug("hello")
	if !strings.Contains(buf.String(), "level=DEBUG msg=hello") {
		t.Fatalf("expected buffered output, got %q", buf.String())
	}
}

func TestServeAndAssertStatus(t *testing.T) {
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok":true}`))
	})
	rr := Serve(h, http.MethodGet, "/", nil)
	AssertStatus(t, rr, http.StatusOK)
	AssertHeader(t, rr, "Content-Type", "application/json")

	var body map[string]bool
	DecodeJSON(t, rr, &body)
	if !body["ok"] {
		t.Fatalf("unexpected body %+v", body)
	}
}

func TestFixtures(t *testing.T) {
	kickoff := time.Date(2026, 10, 18, 13, 30, 0, 0, time.UTC)
	m := FinishedMatch(5, kickoff, 2, 1)
	if matches.DisplayScore(m) != "2 : 1" {
		t.Fatalf("unexpected score %s", matches.DisplayScore(m))
	}
	if SampleMatch(1, kickoff).Finished {
		t.Fatal("expected sample match to be unfinished")
	}
}

func TestNewBoardService(t *testing.T) {
	svc := NewBoardService(board.Board{Matchday: 3})
	if svc.Board().Matchday != 3 {
		t.Fatalf("expected seeded board, got %+v", svc.Board())
	}
}
