package trends

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/pbarros/TennisEdge/internal/alert"
	"github.com/pbarros/TennisEdge/internal/hashutil"
	"github.com/pbarros/TennisEdge/internal/ledger"
	"github.com/pbarros/TennisEdge/internal/logging"
)

// trendSource tags ledger keys from this scanner so they never collide with
// odds alert keys in a shared backend.
const trendSource = "nba-trend"

// Scanner checks monitored players for scoring trends and alerts through the
// shared notifier/ledger plumbing.
type Scanner struct {
	client   *Client
	notifier alert.Notifier
	ledger   ledger.Ledger
	players  []string
}

// NewScanner builds a trend scanner over the given player names.
func NewScanner(client *Client, notifier alert.Notifier, led ledger.Ledger, players []string) *Scanner {
	return &Scanner{client: client, notifier: notifier, ledger: led, players: players}
}

// Run executes cycles on the given interval until the context is canceled.
// A non-positive interval runs one cycle and returns.
func (s *Scanner) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		s.RunCycle(ctx)
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		s.RunCycle(ctx)
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// RunCycle checks every monitored player once. Per-player failures are
// logged and skipped.
func (s *Scanner) RunCycle(ctx context.Context) {
	var alerted int
	for _, name := range s.players {
		select {
		case <-ctx.Done():
			return
		default:
		}
		if s.checkPlayer(ctx, name) {
			alerted++
		}
	}
	logging.Infof("[trends] cycle finished (%d alerts)", alerted)
}

func (s *Scanner) checkPlayer(ctx context.Context, name string) bool {
	playerID, err := s.client.PlayerID(ctx, name)
	if err != nil {
		logging.Errorf("[trends] lookup %s: %v", name, err)
		return false
	}
	if playerID == 0 {
		logging.Warnf("[trends] player %s not found", name)
		return false
	}

	points, err := s.client.LastFivePoints(ctx, playerID)
	if err != nil {
		logging.Errorf("[trends] stats for %s: %v", name, err)
		return false
	}
	if points == nil {
		logging.Debugf("[trends] %s: fewer than five games available", name)
		return false
	}

	pattern, ok := Detect(points)
	if !ok {
		return false
	}

	// The key digests the exact five-game window, so the same state never
	// re-alerts but a new game re-arms the key immediately.
	key := ledger.Key{
		MatchID:   fmt.Sprint(playerID),
		Outcome:   hashutil.ShortDigest(pointsDigest(points)),
		Bookmaker: trendSource,
	}
	shouldAlert, err := s.ledger.ShouldAlert(ctx, key)
	if err != nil {
		logging.Errorf("[trends] ledger check %s: %v", key, err)
		return false
	}
	if !shouldAlert {
		logging.Debugf("[trends] suppressed %s (cooldown)", name)
		return false
	}
	if err := s.ledger.RecordAlert(ctx, key); err != nil {
		logging.Errorf("[trends] ledger record %s: %v", key, err)
	}

	msg := formatTrend(name, points, pattern)
	if s.notifier == nil {
		logging.Infof("[trends] alert (no transport): %s %v %s", name, points, pattern)
		return true
	}
	if err := s.notifier.Send(ctx, msg); err != nil {
		logging.Errorf("[trends] send alert for %s: %v", name, err)
		return true
	}
	logging.Infof("[trends] alert sent: %s %v", name, points)
	return true
}

func pointsDigest(points []int) string {
	parts := make([]string, len(points))
	for i, p := range points {
		parts[i] = fmt.Sprint(p)
	}
	return strings.Join(parts, ",")
}

func formatTrend(name string, points []int, pattern Pattern) string {
	parts := make([]string, len(points))
	for i, p := range points {
		parts[i] = fmt.Sprint(p)
	}
	lines := []string{
		"🏀 NBA scoring trend",
		fmt.Sprintf("Player: %s", name),
		fmt.Sprintf("Last 5 games: %s points", strings.Join(parts, ", ")),
		fmt.Sprintf("Pattern: %s", pattern),
	}
	escaped := make([]string, len(lines))
	for i, l := range lines {
		escaped[i] = alert.EscapeMarkdown(l)
	}
	return strings.Join(escaped, "\n")
}
