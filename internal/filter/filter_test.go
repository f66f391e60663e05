package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func defaultFilter() *Filter {
	return New(Thresholds{
		MinEdgePct:      5,
		MinDecimalOdds:  1.50,
		MaxStartTimeHrs: 48,
	})
}

func TestPassBoundariesAreInclusive(t *testing.T) {
	f := defaultFilter()

	pass, _ := f.Pass(Candidate{EdgePct: 5, TargetOdds: 1.50, MinutesToStart: 48 * 60})
	assert.True(t, pass)

	pass, reason := f.Pass(Candidate{EdgePct: 4.99, TargetOdds: 1.50, MinutesToStart: 60})
	assert.False(t, pass)
	assert.Contains(t, reason, "edge")
}

func TestPassRejectsBelowMinEdge(t *testing.T) {
	f := New(Thresholds{MinEdgePct: 6, MinDecimalOdds: 1.5, MaxStartTimeHrs: 48})
	pass, _ := f.Pass(Candidate{EdgePct: 5, TargetOdds: 2.0, MinutesToStart: 60})
	assert.False(t, pass)

	f = New(Thresholds{MinEdgePct: 5, MinDecimalOdds: 1.5, MaxStartTimeHrs: 48})
	pass, _ = f.Pass(Candidate{EdgePct: 5, TargetOdds: 2.0, MinutesToStart: 60})
	assert.True(t, pass)
}

func TestPassRejectsLowOdds(t *testing.T) {
	f := defaultFilter()
	pass, reason := f.Pass(Candidate{EdgePct: 10, TargetOdds: 1.49, MinutesToStart: 60})
	assert.False(t, pass)
	assert.Contains(t, reason, "odds")
}

func TestPassRejectsStartedMatches(t *testing.T) {
	f := defaultFilter()
	pass, reason := f.Pass(Candidate{EdgePct: 10, TargetOdds: 2.0, MinutesToStart: -1})
	assert.False(t, pass)
	assert.Contains(t, reason, "started")
}

func TestPassRejectsOutsideWindow(t *testing.T) {
	f := defaultFilter()
	pass, _ := f.Pass(Candidate{EdgePct: 10, TargetOdds: 2.0, MinutesToStart: 48*60 + 1})
	assert.False(t, pass)
}
