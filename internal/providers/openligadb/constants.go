package openligadb

import "time"

const (
	providerName       = "openligadb"
	defaultBaseURL     = "https://api.openligadb.de"
	defaultHTTPTimeout = 10 * time.Second
	// Kickoff times without an offset are local to the league.
	defaultTimezone = "Europe/Berlin"

	opCurrentGroup = "getcurrentgroup"
	opMatchData    = "getmatchdata"

	localDateTimeLayout = "2006-01-02T15:04:05"
	errorBodyLimit      = 512
)
