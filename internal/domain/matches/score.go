package matches

import "fmt"

const (
	// PreferredResultType is the provider's result-type tag for the entry shown on the card.
	PreferredResultType = 2
	// ScorePlaceholder is shown while a match has no result entries.
	ScorePlaceholder = "VS"
)

// DisplayResult picks the result shown for m: the preferred result type when
// present, otherwise the first entry. ok is false when m has no results.
func DisplayResult(m Match) (Result, bool) {
	if len(m.Results) == 0 {
		return Result{}, false
	}
	for _, r := range m.Results {
		if r.ResultTypeID == PreferredResultType {
			return r, true
		}
	}
	return m.Results[0], true
}

// DisplayScore formats the score of m as "a : b", or ScorePlaceholder.
func DisplayScore(m Match) string {
	r, ok := DisplayResult(m)
	if !ok {
		return ScorePlaceholder
	}
	return fmt.Sprintf("%d : %d", r.PointsTeam1, r.PointsTeam2)
}
