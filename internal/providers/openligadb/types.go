package openligadb

type groupResponse struct {
	GroupName    string `json:"groupName"`
	GroupOrderID int    `json:"groupOrderID"`
	GroupID      int    `json:"groupID"`
}

type matchResponse struct {
	MatchID          int               `json:"matchID"`
	MatchDateTime    string            `json:"matchDateTime"`
	MatchDateTimeUTC string            `json:"matchDateTimeUTC"`
	TimeZoneID       string            `json:"timeZoneID"`
	LeagueShortcut   string            `json:"leagueShortcut"`
	LeagueSeason     int               `json:"leagueSeason"`
	Team1            teamResponse      `json:"team1"`
	Team2            teamResponse      `json:"team2"`
	MatchIsFinished  bool              `json:"matchIsFinished"`
	MatchResults     []resultResponse  `json:"matchResults"`
	Location         *locationResponse `json:"location"`
	Group            groupResponse     `json:"group"`
}

type teamResponse struct {
	TeamID      int    `json:"teamId"`
	TeamName    string `json:"teamName"`
	ShortName   string `json:"shortName"`
	TeamIconURL string `json:"teamIconUrl"`
}

type resultResponse struct {
	ResultID      int    `json:"resultID"`
	ResultName    string `json:"resultName"`
	PointsTeam1   int    `json:"pointsTeam1"`
	PointsTeam2   int    `json:"pointsTeam2"`
	ResultOrderID int    `json:"resultOrderID"`
	ResultTypeID  int    `json:"resultTypeID"`
}

type locationResponse struct {
	LocationID      int    `json:"locationID"`
	LocationCity    string `json:"locationCity"`
	LocationStadium string `json:"locationStadium"`
}
