package render

import (
	"html/template"
	"io"
)

var page = template.Must(template.New("board").Parse(`<!DOCTYPE html>
<html lang="de">
<head>
<meta charset="utf-8">
<title>{{.League}}</title>
</head>
<body>
<nav class="leagues">
{{- range .Leagues}}
<form method="post" action="/api/leagues/{{.ID}}/select"><button class="matrix-btn{{if .Active}} active{{end}}" data-league="{{.ID}}">{{.Name}}</button></form>
{{- end}}
<form method="post" action="/api/refresh"><button id="refresh" class="matrix-btn">REFRESH</button></form>
</nav>
<div id="status" class="status {{.Status}}">{{.StatusLabel}}</div>
<div id="last-update">{{.LastUpdate}}</div>
<div id="matches">
{{- if eq .State "loading"}}
<div class="loading"><span class="loading-text">{{.Placeholder}}</span><div class="loading-bar"></div></div>
{{- else if eq .State "error"}}
<div class="no-matches">{{.Placeholder}}<br><small>{{.Detail}}</small></div>
{{- else if eq .State "empty"}}
<div class="no-matches">{{.Placeholder}}</div>
{{- else}}
{{- range .Cards}}
<div class="match-card">
<div class="match-status {{.Status}}">{{.StatusLabel}}</div>
<div class="match-header"><div class="match-time">{{.Kickoff}}</div><div class="matchday">{{.Matchday}}</div></div>
<div class="match-teams">
<div class="team"><div class="team-logo">⚽</div><div class="team-name">{{.Team1}}</div></div>
<div class="score{{if .Live}} live{{end}}">{{if .HasScore}}{{.Score}}{{else}}<span class="vs">{{.Score}}</span>{{end}}</div>
<div class="team"><div class="team-logo">⚽</div><div class="team-name">{{.Team2}}</div></div>
</div>
<div class="match-info"><div>📍 {{.Venue}}</div><div>{{.League}}</div></div>
</div>
{{- end}}
{{- end}}
</div>
</body>
</html>
`))

// HTML writes v as a standalone page. Team and venue names are escaped.
func HTML(w io.Writer, v View) error {
	return page.Execute(w, v)
}
