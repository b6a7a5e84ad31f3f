package teststubs

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/preston-bernstein/matrix-screener/internal/domain/board"
	"github.com/preston-bernstein/matrix-screener/internal/domain/matches"
)

// StubProvider is a test double for providers.MatchProvider.
type StubProvider struct {
	Matchday    matches.Matchday
	Matches     []matches.Match
	MatchdayErr error
	MatchesErr  error

	// BlockFirst makes the first CurrentMatchday call wait until its context is done.
	BlockFirst bool
	// Entered is closed when a blocked call starts waiting.
	Entered chan struct{}
	// Notify is closed on the first CurrentMatchday call.
	Notify chan struct{}

	MatchdayCalls atomic.Int32
	MatchesCalls  atomic.Int32

	mu    sync.Mutex
	slugs []string
}

// CurrentMatchday returns the configured matchday and error while tracking calls.
func (s *StubProvider) CurrentMatchday(ctx context.Context, leagueSlug string) (matches.Matchday, error) {
	n := s.MatchdayCalls.Add(1)
	s.mu.Lock()
	s.slugs = append(s.slugs, leagueSlug)
	s.mu.Unlock()
	closeOnce(s.Notify)

	if s.BlockFirst && n == 1 {
		closeOnce(s.Entered)
		<-ctx.Done()
		return matches.Matchday{}, ctx.Err()
	}
	return s.Matchday, s.MatchdayErr
}

// FetchMatches returns the configured matches and error while tracking calls.
func (s *StubProvider) FetchMatches(ctx context.Context, leagueSlug string, season, matchday int) ([]matches.Match, error) {
	_ = ctx
	_ = leagueSlug
	_ = season
	_ = matchday
	s.MatchesCalls.Add(1)
	return s.Matches, s.MatchesErr
}

// Slugs returns the league slugs requested so far.
func (s *StubProvider) Slugs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.slugs))
	copy(out, s.slugs)
	return out
}

// StubBoardStore is a test double for poller.BoardStore that records every replacement.
type StubBoardStore struct {
	mu      sync.Mutex
	current board.Board
	History []board.Board
}

// Board returns the most recent board.
func (s *StubBoardStore) Board() board.Board {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// ReplaceBoard records b as the current board.
func (s *StubBoardStore) ReplaceBoard(b board.Board) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = b
	s.History = append(s.History, b)
}

// Replacements returns how many boards were written.
func (s *StubBoardStore) Replacements() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.History)
}

func closeOnce(ch chan struct{}) {
	if ch == nil {
		return
	}
	select {
	case <-ch:
	default:
		close(ch)
	}
}
