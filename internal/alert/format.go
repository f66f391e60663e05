package alert

import (
	"fmt"
	"strings"

	"github.com/pbarros/TennisEdge/internal/value"
)

// markdownSpecials are the characters Telegram MarkdownV2 requires escaped.
const markdownSpecials = "_[]()~`>#+-=|{}.!"

// EscapeMarkdown escapes MarkdownV2 special characters so bookmaker keys and
// player names cannot break the message markup.
func EscapeMarkdown(text string) string {
	var sb strings.Builder
	sb.Grow(len(text))
	for _, r := range text {
		if strings.ContainsRune(markdownSpecials, r) {
			sb.WriteByte('\\')
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// FormatOpportunity renders a qualifying opportunity as a MarkdownV2 alert
// message. Pure function; malformed input is the caller's problem.
func FormatOpportunity(o value.Opportunity) string {
	lines := []string{
		"🎾 Tennis value alert",
		o.Matchup(),
		fmt.Sprintf("Starts in %.0f min", o.MinutesToStart),
		fmt.Sprintf("Market h2h - %s", o.Outcome),
		fmt.Sprintf("%s %.2f - edge %.1f%%", o.Bookmaker, o.Odds, o.EdgePct),
		fmt.Sprintf("Fair prob %.1f%% - Kelly %.1f%%", o.FairProb*100, o.Kelly*100),
		fmt.Sprintf("Fair basis: %s", o.Basis),
	}
	escaped := make([]string, 0, len(lines))
	for _, l := range lines {
		if l == "" {
			continue
		}
		escaped = append(escaped, EscapeMarkdown(l))
	}
	return strings.Join(escaped, "\n")
}
