package matches

import "time"

// Team is one side of a fixture.
type Team struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	ShortName string `json:"shortName,omitempty"`
	IconURL   string `json:"iconUrl,omitempty"`
}

// Result is a score entry. ResultTypeID distinguishes half-time from final entries.
type Result struct {
	ResultTypeID int    `json:"resultTypeId"`
	Name         string `json:"name,omitempty"`
	PointsTeam1  int    `json:"pointsTeam1"`
	PointsTeam2  int    `json:"pointsTeam2"`
}

// Location is the venue of a match, when the provider knows it.
type Location struct {
	City    string `json:"city"`
	Stadium string `json:"stadium,omitempty"`
}

// Match is a single fixture of a matchday.
type Match struct {
	ID       int       `json:"id"`
	Team1    Team      `json:"team1"`
	Team2    Team      `json:"team2"`
	Kickoff  time.Time `json:"kickoff"`
	Finished bool      `json:"finished"`
	Results  []Result  `json:"results,omitempty"`
	Location *Location `json:"location,omitempty"`
}

// Matchday identifies the current round of a league.
type Matchday struct {
	Number int    `json:"number"`
	Name   string `json:"name,omitempty"`
}

// City returns the venue city or "" when unknown.
func (m Match) City() string {
	if m.Location == nil {
		return ""
	}
	return m.Location.City
}
