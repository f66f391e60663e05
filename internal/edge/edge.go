package edge

import (
	"math"

	"github.com/pbarros/TennisEdge/internal/odds"
)

// Evaluation is the computed value of backing one outcome at a target book.
// EdgePct may be negative; this package computes, it does not filter.
type Evaluation struct {
	EdgePct float64 // percentage return over stake if FairProb is true
	Kelly   float64 // bankroll fraction, clamped to [0,1]
}

// Percent returns the expected-value edge as a percentage:
// (fairProb * targetOdds - 1) * 100.
func Percent(fairProb, targetOdds float64) (float64, error) {
	if math.IsNaN(targetOdds) || math.IsInf(targetOdds, 0) || targetOdds <= 1.0 {
		return 0, &odds.InvalidOddsError{Odds: targetOdds}
	}
	return (fairProb*targetOdds - 1) * 100, nil
}

// Kelly returns the Kelly stake fraction (fairProb*odds - 1) / (odds - 1),
// clamped to [0,1]. Odds at or below 1.0 yield zero stake; that is a defined
// policy here, not an error.
func Kelly(fairProb, targetOdds float64) float64 {
	b := targetOdds - 1.0
	if b <= 0 || math.IsNaN(b) || math.IsInf(b, 0) {
		return 0
	}
	f := (fairProb*targetOdds - 1) / b
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

// Evaluate computes edge and Kelly stake for one target quote against a fair
// probability. Invalid target odds propagate as *odds.InvalidOddsError.
func Evaluate(fairProb, targetOdds float64) (Evaluation, error) {
	pct, err := Percent(fairProb, targetOdds)
	if err != nil {
		return Evaluation{}, err
	}
	return Evaluation{
		EdgePct: pct,
		Kelly:   Kelly(fairProb, targetOdds),
	}, nil
}
