package oddsfeed

import (
	"context"
	"time"
)

// Quote is a single bookmaker price for one outcome of a match. Quotes are
// immutable once fetched.
type Quote struct {
	Bookmaker  string
	Outcome    string
	Price      float64 // decimal odds
	ObservedAt time.Time
}

// Match is a normalized head-to-head match with the quotes gathered from all
// bookmakers in one fetch. Matches are rebuilt from scratch on every cycle;
// nothing but the ID survives between cycles.
type Match struct {
	ID           string
	SportKey     string
	PlayerA      string // home side in the provider payload
	PlayerB      string // away side
	CommenceTime time.Time
	Quotes       []Quote
}

// FetchOptions control what a feed should pull per run.
type FetchOptions struct {
	SportKey string
	Regions  []string
}

// Feed is implemented by odds providers. The scanner only depends on the
// returned shape, not on how it was fetched.
type Feed interface {
	Name() string
	Fetch(ctx context.Context, opts FetchOptions) ([]Match, error)
}

// QuotesFor returns the quotes for one outcome keyed by bookmaker. Quotes
// with non-positive prices are dropped here so downstream math never sees
// them.
func (m *Match) QuotesFor(outcome string) map[string]Quote {
	out := make(map[string]Quote)
	for _, q := range m.Quotes {
		if q.Outcome != outcome || q.Price <= 0 {
			continue
		}
		out[q.Bookmaker] = q
	}
	return out
}
