package odds

import (
	"fmt"
	"math"
)

// InvalidOddsError reports a decimal odds value that cannot be converted to a
// probability.
type InvalidOddsError struct {
	Odds float64
}

func (e *InvalidOddsError) Error() string {
	return fmt.Sprintf("invalid decimal odds %v: must be finite and > 1.0", e.Odds)
}

// ImpliedProbability converts decimal odds to the raw implied probability
// 1/d. The result still contains the bookmaker's margin and must never be
// used as a fair probability on its own.
func ImpliedProbability(d float64) (float64, error) {
	if math.IsNaN(d) || math.IsInf(d, 0) || d <= 1.0 {
		return 0, &InvalidOddsError{Odds: d}
	}
	return 1.0 / d, nil
}

// DevigPair strips the margin from a single bookmaker's two-way quote using
// the multiplicative method: each implied probability is divided by their
// sum. The returned pair sums to exactly 1 by construction.
func DevigPair(oddsA, oddsB float64) (fairA, fairB float64, err error) {
	pA, err := ImpliedProbability(oddsA)
	if err != nil {
		return 0, 0, err
	}
	pB, err := ImpliedProbability(oddsB)
	if err != nil {
		return 0, 0, err
	}
	total := pA + pB
	return pA / total, pB / total, nil
}
