package matches

import "time"

// SeasonFor returns the starting year of the season running at t.
// Leagues start in August, so January through July belong to the previous year's season.
func SeasonFor(t time.Time) int {
	if t.Month() < time.August {
		return t.Year() - 1
	}
	return t.Year()
}
