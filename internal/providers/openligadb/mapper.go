package openligadb

import (
	"strings"
	"time"

	"github.com/preston-bernstein/matrix-screener/internal/domain/matches"
)

func mapMatchday(g groupResponse) matches.Matchday {
	return matches.Matchday{
		Number: g.GroupOrderID,
		Name:   strings.TrimSpace(g.GroupName),
	}
}

func mapMatch(m matchResponse, loc *time.Location) matches.Match {
	out := matches.Match{
		ID:       m.MatchID,
		Team1:    mapTeam(m.Team1),
		Team2:    mapTeam(m.Team2),
		Kickoff:  parseKickoff(m, loc),
		Finished: m.MatchIsFinished,
	}
	if len(m.MatchResults) > 0 {
		out.Results = make([]matches.Result, 0, len(m.MatchResults))
		for _, r := range m.MatchResults {
			out.Results = append(out.Results, matches.Result{
				ResultTypeID: r.ResultTypeID,
				Name:         r.ResultName,
				PointsTeam1:  r.PointsTeam1,
				PointsTeam2:  r.PointsTeam2,
			})
		}
	}
	if m.Location != nil && m.Location.LocationCity != "" {
		out.Location = &matches.Location{
			City:    m.Location.LocationCity,
			Stadium: m.Location.LocationStadium,
		}
	}
	return out
}

func mapTeam(t teamResponse) matches.Team {
	return matches.Team{
		ID:        t.TeamID,
		Name:      t.TeamName,
		ShortName: t.ShortName,
		IconURL:   t.TeamIconURL,
	}
}

// parseKickoff prefers the UTC timestamp and falls back to the local one, read in loc.
func parseKickoff(m matchResponse, loc *time.Location) time.Time {
	if m.MatchDateTimeUTC != "" {
		if t, err := time.Parse(time.RFC3339, m.MatchDateTimeUTC); err == nil {
			return t
		}
	}
	if m.MatchDateTime != "" {
		if t, err := time.ParseInLocation(localDateTimeLayout, m.MatchDateTime, loc); err == nil {
			return t
		}
		if t, err := time.Parse(time.RFC3339, m.MatchDateTime); err == nil {
			return t
		}
	}
	return time.Time{}
}
