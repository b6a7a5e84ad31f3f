package matches

import "time"

// Status is derived from kickoff time and the finished flag; it is never fetched.
type Status string

const (
	StatusLive      Status = "live"
	StatusScheduled Status = "scheduled"
	StatusFinished  Status = "finished"
)

// LiveWindow is how long after kickoff an unfinished match still counts as live.
const LiveWindow = 120 * time.Minute

// Classify derives the display status of m at now.
// Unfinished matches more than LiveWindow past kickoff are reported as finished.
func Classify(m Match, now time.Time) Status {
	if !m.Finished {
		diff := now.Sub(m.Kickoff)
		if diff >= 0 && diff <= LiveWindow {
			return StatusLive
		}
		if now.Before(m.Kickoff) {
			return StatusScheduled
		}
	}
	return StatusFinished
}
