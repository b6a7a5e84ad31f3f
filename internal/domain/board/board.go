package board

import (
	"time"

	"github.com/preston-bernstein/matrix-screener/internal/domain/leagues"
	"github.com/preston-bernstein/matrix-screener/internal/domain/matches"
)

// Status is the board's status line.
type Status string

const (
	StatusLoading Status = "LOADING"
	StatusOnline  Status = "ONLINE"
	StatusError   Status = "ERROR"
)

// Label returns the text shown in the status line.
func (s Status) Label() string {
	switch s {
	case StatusLoading:
		return "FETCHING DATA..."
	case StatusOnline:
		return "SYSTEM ONLINE"
	case StatusError:
		return "ERROR - RETRYING..."
	default:
		return "UNKNOWN"
	}
}

// Board is the poller's application state: the selected league and the
// outcome of the most recent load cycle for it.
type Board struct {
	League     leagues.League  `json:"league"`
	Season     int             `json:"season"`
	Matchday   int             `json:"matchday"`
	Matches    []matches.Match `json:"matches"`
	Status     Status          `json:"status"`
	LastUpdate time.Time       `json:"lastUpdate"`
	Error      string          `json:"error,omitempty"`
}

// New returns a loading board for league and season.
func New(league leagues.League, season int) Board {
	return Board{League: league, Season: season, Status: StatusLoading}
}

// Clone returns a copy that shares no slices with b.
func (b Board) Clone() Board {
	if b.Matches != nil {
		ms := make([]matches.Match, len(b.Matches))
		copy(ms, b.Matches)
		b.Matches = ms
	}
	return b
}
