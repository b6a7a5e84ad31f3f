package leagues

import (
	"errors"
	"strings"
)

// ErrUnknownLeague is returned when a league id is not part of the fixed set.
var ErrUnknownLeague = errors.New("unknown league")

// League is one selectable competition. APISlug is the provider's shortcut for it.
type League struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	APISlug string `json:"apiSlug"`
}

// DefaultID is the league selected at startup.
const DefaultID = "bl1"

var all = []League{
	{ID: "bl1", Name: "1. Bundesliga", APISlug: "bl1"},
	{ID: "bl2", Name: "2. Bundesliga", APISlug: "bl2"},
	{ID: "cl", Name: "Champions League (DE)", APISlug: "ucl2025"},
}

// All returns the selectable leagues in display order.
func All() []League {
	out := make([]League, len(all))
	copy(out, all)
	return out
}

// Lookup finds a league by id, ignoring case and surrounding whitespace.
func Lookup(id string) (League, error) {
	id = strings.ToLower(strings.TrimSpace(id))
	for _, l := range all {
		if l.ID == id {
			return l, nil
		}
	}
	return League{}, ErrUnknownLeague
}

// Default returns the startup league.
func Default() League {
	l, _ := Lookup(DefaultID)
	return l
}
