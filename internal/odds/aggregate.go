package odds

import (
	"github.com/pbarros/TennisEdge/internal/logging"
	"github.com/pbarros/TennisEdge/internal/oddsfeed"
)

// Basis records which probability source produced a fair price.
const (
	BasisSharp     = "sharp"
	BasisConsensus = "consensus"
)

// FairPair is the vig-free win probability for both outcomes of a match.
// ProbA + ProbB == 1 by construction.
type FairPair struct {
	MatchID string
	ProbA   float64
	ProbB   float64
	Basis   string
	Books   int // bookmakers contributing to the average
}

// Aggregator derives fair probabilities from the sharp bookmakers in a
// configured list. With ConsensusFallback enabled it falls back to the mean
// implied probability across every quoting book when no sharp pair exists.
type Aggregator struct {
	sharp             map[string]bool
	consensusFallback bool
}

// NewAggregator builds an aggregator over the given sharp bookmaker keys.
func NewAggregator(sharpBooks []string, consensusFallback bool) *Aggregator {
	sharp := make(map[string]bool, len(sharpBooks))
	for _, b := range sharpBooks {
		if b != "" {
			sharp[b] = true
		}
	}
	return &Aggregator{sharp: sharp, consensusFallback: consensusFallback}
}

// FairPrice computes the fair probability pair for a match. The second
// return is false when the match has no usable probability source; that is a
// filtered-out state, not an error.
//
// Only sharp books quoting BOTH outcomes contribute: each such book is
// devigged individually, then the per-book fair probabilities for outcome A
// are averaged. Books quoting a single side are excluded from the average.
func (a *Aggregator) FairPrice(m *oddsfeed.Match) (FairPair, bool) {
	quotesA := m.QuotesFor(m.PlayerA)
	quotesB := m.QuotesFor(m.PlayerB)

	var sumFairA float64
	var books int
	for book := range a.sharp {
		qa, okA := quotesA[book]
		qb, okB := quotesB[book]
		if !okA || !okB {
			continue
		}
		fairA, _, err := DevigPair(qa.Price, qb.Price)
		if err != nil {
			logging.Warnf("[aggregator] match=%s book=%s unusable quote: %v", m.ID, book, err)
			continue
		}
		sumFairA += fairA
		books++
	}

	if books > 0 {
		probA := sumFairA / float64(books)
		return FairPair{
			MatchID: m.ID,
			ProbA:   probA,
			ProbB:   1 - probA,
			Basis:   BasisSharp,
			Books:   books,
		}, true
	}

	if a.consensusFallback {
		return a.consensusPrice(m, quotesA, quotesB)
	}
	return FairPair{}, false
}

// consensusPrice averages raw implied probabilities across every book
// quoting each side, then normalizes the pair. Looser than the sharp path
// but it is what keeps thin markets scannable.
func (a *Aggregator) consensusPrice(m *oddsfeed.Match, quotesA, quotesB map[string]oddsfeed.Quote) (FairPair, bool) {
	impA, booksA := meanImplied(quotesA)
	impB, booksB := meanImplied(quotesB)
	if booksA == 0 || booksB == 0 {
		return FairPair{}, false
	}
	total := impA + impB
	books := booksA
	if booksB < books {
		books = booksB
	}
	return FairPair{
		MatchID: m.ID,
		ProbA:   impA / total,
		ProbB:   impB / total,
		Basis:   BasisConsensus,
		Books:   books,
	}, true
}

func meanImplied(quotes map[string]oddsfeed.Quote) (float64, int) {
	var sum float64
	var n int
	for _, q := range quotes {
		p, err := ImpliedProbability(q.Price)
		if err != nil {
			continue
		}
		sum += p
		n++
	}
	if n == 0 {
		return 0, 0
	}
	return sum / float64(n), n
}
