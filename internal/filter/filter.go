package filter

import "fmt"

// Thresholds are the alert-worthiness rules. All bounds are inclusive.
type Thresholds struct {
	MinEdgePct      float64
	MinDecimalOdds  float64
	MaxStartTimeHrs float64
}

// Candidate carries the fields the filter decides on.
type Candidate struct {
	EdgePct        float64
	TargetOdds     float64
	MinutesToStart float64
}

// Filter is a pure predicate over opportunity candidates.
type Filter struct {
	thresholds Thresholds
}

// New builds a filter from configured thresholds.
func New(t Thresholds) *Filter {
	return &Filter{thresholds: t}
}

// Pass reports whether the candidate clears every threshold, with a short
// reason when it does not. Matches that already started are excluded on
// purpose: a negative minutes-to-start is a live match, not a pre-game bet.
func (f *Filter) Pass(c Candidate) (bool, string) {
	t := f.thresholds
	if c.EdgePct < t.MinEdgePct {
		return false, fmt.Sprintf("edge %.2f%% below threshold %.2f%%", c.EdgePct, t.MinEdgePct)
	}
	if c.TargetOdds < t.MinDecimalOdds {
		return false, fmt.Sprintf("odds %.2f below minimum %.2f", c.TargetOdds, t.MinDecimalOdds)
	}
	if c.MinutesToStart < 0 {
		return false, "match already started"
	}
	if maxMinutes := t.MaxStartTimeHrs * 60; c.MinutesToStart > maxMinutes {
		return false, fmt.Sprintf("starts in %.0f min, window is %.0f min", c.MinutesToStart, maxMinutes)
	}
	return true, ""
}
