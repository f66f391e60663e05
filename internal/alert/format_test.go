package alert

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/pbarros/TennisEdge/internal/value"
)

func TestEscapeMarkdown(t *testing.T) {
	assert.Equal(t, `A\. Zverev \(GER\)`, EscapeMarkdown("A. Zverev (GER)"))
	assert.Equal(t, `edge 6\.6%`, EscapeMarkdown("edge 6.6%"))
	assert.Equal(t, "plain text", EscapeMarkdown("plain text"))
}

func TestFormatOpportunity(t *testing.T) {
	msg := FormatOpportunity(value.Opportunity{
		MatchID:        "ev1",
		PlayerA:        "Alcaraz",
		PlayerB:        "Sinner",
		Outcome:        "Alcaraz",
		Bookmaker:      "bet365",
		Odds:           2.10,
		FairProb:       0.5077,
		Basis:          "sharp",
		EdgePct:        6.6,
		Kelly:          0.06,
		MinutesToStart: 720,
		CommenceTime:   time.Now(),
	})

	assert.Contains(t, msg, "Alcaraz vs Sinner")
	assert.Contains(t, msg, "bet365")
	assert.Contains(t, msg, `2\.10`)
	assert.Contains(t, msg, `6\.6%`)
	assert.Contains(t, msg, "Kelly")
	assert.Contains(t, msg, "sharp")
	// every line is escaped, so no raw period survives a numeric field
	for _, line := range strings.Split(msg, "\n") {
		assert.NotRegexp(t, `[^\\]\.\d`, line)
	}
}
