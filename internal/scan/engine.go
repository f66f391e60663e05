package scan

import (
	"time"

	"github.com/pbarros/TennisEdge/internal/edge"
	"github.com/pbarros/TennisEdge/internal/logging"
	"github.com/pbarros/TennisEdge/internal/odds"
	"github.com/pbarros/TennisEdge/internal/oddsfeed"
	"github.com/pbarros/TennisEdge/internal/value"
)

// Engine turns one match's odds board into opportunity candidates. It only
// computes; thresholds are the Filter's job.
type Engine struct {
	agg     *odds.Aggregator
	targets map[string]bool
	now     func() time.Time
}

// NewEngine builds an engine scanning the given target bookmakers. now may
// be nil, defaulting to time.Now.
func NewEngine(agg *odds.Aggregator, targetBooks []string, now func() time.Time) *Engine {
	targets := make(map[string]bool, len(targetBooks))
	for _, b := range targetBooks {
		if b != "" {
			targets[b] = true
		}
	}
	if now == nil {
		now = time.Now
	}
	return &Engine{agg: agg, targets: targets, now: now}
}

// Evaluate derives the fair price for a match and measures every target
// book's quote against it. Matches without a usable fair price return nil;
// a single bad quote is logged and skipped without dropping its siblings.
func (e *Engine) Evaluate(m *oddsfeed.Match) []value.Opportunity {
	fair, ok := e.agg.FairPrice(m)
	if !ok {
		logging.Debugf("[scan] match=%s no fair price (insufficient sharp coverage)", m.ID)
		return nil
	}

	minutes := m.CommenceTime.Sub(e.now()).Minutes()

	var opps []value.Opportunity
	sides := []struct {
		outcome string
		prob    float64
	}{
		{m.PlayerA, fair.ProbA},
		{m.PlayerB, fair.ProbB},
	}
	for _, side := range sides {
		for book, quote := range m.QuotesFor(side.outcome) {
			if !e.targets[book] {
				continue
			}
			ev, err := edge.Evaluate(side.prob, quote.Price)
			if err != nil {
				logging.Warnf("[scan] match=%s book=%s outcome=%s skipped: %v", m.ID, book, side.outcome, err)
				continue
			}
			opps = append(opps, value.Opportunity{
				MatchID:        m.ID,
				SportKey:       m.SportKey,
				PlayerA:        m.PlayerA,
				PlayerB:        m.PlayerB,
				Outcome:        side.outcome,
				Bookmaker:      book,
				Odds:           quote.Price,
				FairProb:       side.prob,
				Basis:          fair.Basis,
				EdgePct:        ev.EdgePct,
				Kelly:          ev.Kelly,
				MinutesToStart: minutes,
				CommenceTime:   m.CommenceTime,
			})
		}
	}
	return opps
}
