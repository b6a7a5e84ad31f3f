package providers

import (
	"context"

	"github.com/preston-bernstein/matrix-screener/internal/domain/matches"
)

// MatchProvider defines how upstream matchday data is fetched and normalized.
// leagueSlug is the provider-specific league shortcut (see leagues.League.APISlug).
type MatchProvider interface {
	// CurrentMatchday returns the round the league is currently playing.
	CurrentMatchday(ctx context.Context, leagueSlug string) (matches.Matchday, error)
	// FetchMatches returns every fixture of one matchday.
	FetchMatches(ctx context.Context, leagueSlug string, season, matchday int) ([]matches.Match, error)
}
