package testutil

import (
	"time"

	"github.com/preston-bernstein/matrix-screener/internal/domain/matches"
)

// SampleMatch returns a minimal unfinished match kicking off at kickoff.
func SampleMatch(id int, kickoff time.Time) matches.Match {
	return matches.Match{
		ID:       id,
		Team1:    matches.Team{ID: 1, Name: "Home FC"},
		Team2:    matches.Team{ID: 2, Name: "Away SV"},
		Kickoff:  kickoff,
		Location: &matches.Location{City: "Hamburg"},
	}
}

// FinishedMatch returns a finished match with a half-time and a final result.
func FinishedMatch(id int, kickoff time.Time, final1, final2 int) matches.Match {
	m := SampleMatch(id, kickoff)
	m.Finished = true
	m.Results = []matches.Result{
		{ResultTypeID: 1, Name: "Halbzeit", PointsTeam1: 0, PointsTeam2: 0},
		{ResultTypeID: matches.PreferredResultType, Name: "Endergebnis", PointsTeam1: final1, PointsTeam2: final2},
	}
	return m
}
