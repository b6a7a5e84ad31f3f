// Package render turns a board into a renderable view. It performs no I/O
// apart from HTML, which writes an already built view.
package render

import (
	"fmt"
	"time"

	"github.com/preston-bernstein/matrix-screener/internal/domain/board"
	"github.com/preston-bernstein/matrix-screener/internal/domain/leagues"
	"github.com/preston-bernstein/matrix-screener/internal/domain/matches"
	"github.com/preston-bernstein/matrix-screener/internal/timeutil"
)

// Placeholder texts shown instead of cards.
const (
	LoadingText    = "LOADING DATA..."
	ErrorText      = "ERROR: CONNECTION FAILED"
	NoMatchesText  = "NO MATCHES FOUND"
	UnknownVenue   = "N/A"
	lastUpdateText = "LAST UPDATE: "
)

// State selects what the match area shows.
type State string

const (
	StateLoading State = "loading"
	StateError   State = "error"
	StateEmpty   State = "empty"
	StateMatches State = "matches"
)

// View is everything a page needs to draw the widget.
type View struct {
	Leagues     []LeagueTab `json:"leagues"`
	League      string      `json:"league"`
	Status      string      `json:"status"`
	StatusLabel string      `json:"statusLabel"`
	LastUpdate  string      `json:"lastUpdate,omitempty"`
	State       State       `json:"state"`
	Placeholder string      `json:"placeholder,omitempty"`
	Detail      string      `json:"detail,omitempty"`
	Cards       []Card      `json:"cards"`
}

// LeagueTab is one league selector button.
type LeagueTab struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Active bool   `json:"active"`
}

// Card is one rendered match.
type Card struct {
	ID          int    `json:"id"`
	Status      string `json:"status"`
	StatusLabel string `json:"statusLabel"`
	Kickoff     string `json:"kickoff"`
	Matchday    string `json:"matchday"`
	Team1       string `json:"team1"`
	Team2       string `json:"team2"`
	Score       string `json:"score"`
	HasScore    bool   `json:"hasScore"`
	Live        bool   `json:"live"`
	Venue       string `json:"venue"`
	League      string `json:"league"`
}

// Board renders b at now with kickoff and clock times in the display zone.
func Board(b board.Board, now time.Time) View {
	return BoardIn(b, now, timeutil.DisplayLocation())
}

// BoardIn renders b at now with times shown in loc.
func BoardIn(b board.Board, now time.Time, loc *time.Location) View {
	v := View{
		Leagues:     tabs(b.League.ID),
		League:      b.League.Name,
		Status:      string(b.Status),
		StatusLabel: b.Status.Label(),
		Cards:       []Card{},
	}
	if !b.LastUpdate.IsZero() {
		v.LastUpdate = lastUpdateText + timeutil.FormatClock(b.LastUpdate, loc)
	}

	switch {
	case b.Status == board.StatusLoading:
		v.State = StateLoading
		v.Placeholder = LoadingText
	case b.Status == board.StatusError:
		v.State = StateError
		v.Placeholder = ErrorText
		v.Detail = b.Error
	case len(b.Matches) == 0:
		v.State = StateEmpty
		v.Placeholder = NoMatchesText
	default:
		v.State = StateMatches
		for _, m := range b.Matches {
			v.Cards = append(v.Cards, card(m, b, now, loc))
		}
	}
	return v
}

func card(m matches.Match, b board.Board, now time.Time, loc *time.Location) Card {
	status := matches.Classify(m, now)
	_, hasScore := matches.DisplayResult(m)
	venue := m.City()
	if venue == "" {
		venue = UnknownVenue
	}
	return Card{
		ID:          m.ID,
		Status:      string(status),
		StatusLabel: StatusLabel(status),
		Kickoff:     timeutil.FormatKickoff(m.Kickoff, loc),
		Matchday:    fmt.Sprintf("SPIELTAG %d", b.Matchday),
		Team1:       m.Team1.Name,
		Team2:       m.Team2.Name,
		Score:       matches.DisplayScore(m),
		HasScore:    hasScore,
		Live:        status == matches.StatusLive,
		Venue:       venue,
		League:      b.League.Name,
	}
}

// StatusLabel returns the badge text for a match status.
func StatusLabel(s matches.Status) string {
	switch s {
	case matches.StatusLive:
		return "🔴 LIVE"
	case matches.StatusFinished:
		return "✓ BEENDET"
	case matches.StatusScheduled:
		return "⏱ ANGESETZT"
	default:
		return "UNKNOWN"
	}
}

func tabs(selected string) []LeagueTab {
	all := leagues.All()
	out := make([]LeagueTab, 0, len(all))
	for _, l := range all {
		out = append(out, LeagueTab{ID: l.ID, Name: l.Name, Active: l.ID == selected})
	}
	return out
}
