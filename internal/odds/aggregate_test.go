package odds

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pbarros/TennisEdge/internal/oddsfeed"
)

func quotedMatch(quotes ...oddsfeed.Quote) *oddsfeed.Match {
	return &oddsfeed.Match{
		ID:           "m1",
		SportKey:     "tennis_atp",
		PlayerA:      "Alcaraz",
		PlayerB:      "Sinner",
		CommenceTime: time.Now().Add(24 * time.Hour),
		Quotes:       quotes,
	}
}

func TestFairPriceAveragesSharpBooks(t *testing.T) {
	m := quotedMatch(
		oddsfeed.Quote{Bookmaker: "pinnacle", Outcome: "Alcaraz", Price: 1.91},
		oddsfeed.Quote{Bookmaker: "pinnacle", Outcome: "Sinner", Price: 2.00},
		oddsfeed.Quote{Bookmaker: "betfair_exchange", Outcome: "Alcaraz", Price: 1.95},
		oddsfeed.Quote{Bookmaker: "betfair_exchange", Outcome: "Sinner", Price: 1.98},
	)
	agg := NewAggregator([]string{"pinnacle", "betfair_exchange"}, false)

	fair, ok := agg.FairPrice(m)
	require.True(t, ok)

	fair1, _, err := DevigPair(1.91, 2.00)
	require.NoError(t, err)
	fair2, _, err := DevigPair(1.95, 1.98)
	require.NoError(t, err)

	assert.Equal(t, BasisSharp, fair.Basis)
	assert.Equal(t, 2, fair.Books)
	assert.InDelta(t, (fair1+fair2)/2, fair.ProbA, 1e-12)
	assert.InDelta(t, 1.0, fair.ProbA+fair.ProbB, 1e-9)
}

func TestFairPriceExcludesOneSidedSharpQuote(t *testing.T) {
	m := quotedMatch(
		oddsfeed.Quote{Bookmaker: "pinnacle", Outcome: "Alcaraz", Price: 1.91},
		oddsfeed.Quote{Bookmaker: "pinnacle", Outcome: "Sinner", Price: 2.00},
		// betfair_exchange only prices one side; it must not move the average.
		oddsfeed.Quote{Bookmaker: "betfair_exchange", Outcome: "Alcaraz", Price: 1.50},
	)
	agg := NewAggregator([]string{"pinnacle", "betfair_exchange"}, false)

	fair, ok := agg.FairPrice(m)
	require.True(t, ok)
	assert.Equal(t, 1, fair.Books)

	pinnacleFair, _, err := DevigPair(1.91, 2.00)
	require.NoError(t, err)
	assert.InDelta(t, pinnacleFair, fair.ProbA, 1e-12)
}

func TestFairPriceSkipsWithoutSharpCoverage(t *testing.T) {
	m := quotedMatch(
		oddsfeed.Quote{Bookmaker: "bet365", Outcome: "Alcaraz", Price: 1.85},
		oddsfeed.Quote{Bookmaker: "bet365", Outcome: "Sinner", Price: 1.95},
	)
	agg := NewAggregator([]string{"pinnacle"}, false)

	_, ok := agg.FairPrice(m)
	assert.False(t, ok)
}

func TestFairPriceConsensusFallback(t *testing.T) {
	m := quotedMatch(
		oddsfeed.Quote{Bookmaker: "bet365", Outcome: "Alcaraz", Price: 1.80},
		oddsfeed.Quote{Bookmaker: "bet365", Outcome: "Sinner", Price: 2.00},
		oddsfeed.Quote{Bookmaker: "betway", Outcome: "Alcaraz", Price: 1.90},
		oddsfeed.Quote{Bookmaker: "betway", Outcome: "Sinner", Price: 1.90},
	)
	agg := NewAggregator([]string{"pinnacle"}, true)

	fair, ok := agg.FairPrice(m)
	require.True(t, ok)
	assert.Equal(t, BasisConsensus, fair.Basis)
	assert.InDelta(t, 1.0, fair.ProbA+fair.ProbB, 1e-9)

	impA := (1/1.80 + 1/1.90) / 2
	impB := (1/2.00 + 1/1.90) / 2
	assert.InDelta(t, impA/(impA+impB), fair.ProbA, 1e-12)
}

func TestFairPriceFallbackStillSkipsEmptySide(t *testing.T) {
	m := quotedMatch(
		oddsfeed.Quote{Bookmaker: "bet365", Outcome: "Alcaraz", Price: 1.80},
	)
	agg := NewAggregator([]string{"pinnacle"}, true)

	_, ok := agg.FairPrice(m)
	assert.False(t, ok)
}
