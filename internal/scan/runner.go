package scan

import (
	"context"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/pbarros/TennisEdge/internal/alert"
	"github.com/pbarros/TennisEdge/internal/filter"
	"github.com/pbarros/TennisEdge/internal/ledger"
	"github.com/pbarros/TennisEdge/internal/logging"
	"github.com/pbarros/TennisEdge/internal/oddsfeed"
	"github.com/pbarros/TennisEdge/internal/queue"
	sqlstore "github.com/pbarros/TennisEdge/internal/storage/sqlite"
	"github.com/pbarros/TennisEdge/internal/value"
)

// Runner drives the fetch-compute-alert cycle. One cycle runs to completion
// before the next begins; nothing here is safe for concurrent Run calls.
type Runner struct {
	feed     oddsfeed.Feed
	sports   []string
	regions  []string
	engine   *Engine
	filter   *filter.Filter
	ledger   ledger.Ledger
	notifier alert.Notifier
	store    *sqlstore.Store // optional alert history
	writer   *kafkago.Writer // optional alert fan-out
	now      func() time.Time
}

// RunnerConfig wires the collaborators. Store and Writer are optional; a nil
// Notifier logs alerts instead of delivering them.
type RunnerConfig struct {
	Feed     oddsfeed.Feed
	Sports   []string
	Regions  []string
	Engine   *Engine
	Filter   *filter.Filter
	Ledger   ledger.Ledger
	Notifier alert.Notifier
	Store    *sqlstore.Store
	Writer   *kafkago.Writer
	Now      func() time.Time
}

// NewRunner builds the cycle runner.
func NewRunner(cfg RunnerConfig) *Runner {
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &Runner{
		feed:     cfg.Feed,
		sports:   cfg.Sports,
		regions:  cfg.Regions,
		engine:   cfg.Engine,
		filter:   cfg.Filter,
		ledger:   cfg.Ledger,
		notifier: cfg.Notifier,
		store:    cfg.Store,
		writer:   cfg.Writer,
		now:      now,
	}
}

// Run executes cycles on the given interval until the context is canceled.
// A non-positive interval runs a single cycle and returns, matching cron
// style deployment.
func (r *Runner) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		r.RunCycle(ctx)
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		r.RunCycle(ctx)
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// RunCycle fetches every configured sport and processes its matches. One
// sport's fetch failure never aborts the others; one match's bad quotes
// never abort the scan.
func (r *Runner) RunCycle(ctx context.Context) {
	start := r.now()
	var alerted int
	for _, sportKey := range r.sports {
		select {
		case <-ctx.Done():
			return
		default:
		}

		matchList, err := r.feed.Fetch(ctx, oddsfeed.FetchOptions{SportKey: sportKey, Regions: r.regions})
		if err != nil {
			logging.Errorf("[scan] fetch %s failed: %v", sportKey, err)
			continue
		}
		for i := range matchList {
			alerted += r.processMatch(ctx, &matchList[i])
		}
	}
	logging.Infof("[scan] cycle finished in %s (%d alerts)", time.Since(start).Round(time.Millisecond), alerted)
}

func (r *Runner) processMatch(ctx context.Context, m *oddsfeed.Match) int {
	var alerted int
	for _, opp := range r.engine.Evaluate(m) {
		pass, reason := r.filter.Pass(filter.Candidate{
			EdgePct:        opp.EdgePct,
			TargetOdds:     opp.Odds,
			MinutesToStart: opp.MinutesToStart,
		})
		if !pass {
			logging.Debugf("[scan] drop %s %s @%s: %s", opp.MatchID, opp.Outcome, opp.Bookmaker, reason)
			continue
		}
		if r.emit(ctx, opp) {
			alerted++
		}
	}
	return alerted
}

// emit runs the check-then-commit ledger dance and delivers the alert. The
// ledger commit happens once we decide to alert; a failed send is logged and
// NOT rolled back, so a flapping transport cannot spam the chat.
func (r *Runner) emit(ctx context.Context, opp value.Opportunity) bool {
	key := ledger.Key{MatchID: opp.MatchID, Outcome: opp.Outcome, Bookmaker: opp.Bookmaker}

	ok, err := r.ledger.ShouldAlert(ctx, key)
	if err != nil {
		logging.Errorf("[scan] ledger check %s: %v", key, err)
		return false
	}
	if !ok {
		logging.Debugf("[scan] suppressed %s (cooldown)", key)
		return false
	}

	if err := r.ledger.RecordAlert(ctx, key); err != nil {
		logging.Errorf("[scan] ledger record %s: %v", key, err)
	}

	sentAt := r.now()
	msg := alert.FormatOpportunity(opp)
	if r.notifier == nil {
		logging.Infof("[scan] alert (no transport): %s %s @%s edge=%.1f%%", opp.Matchup(), opp.Outcome, opp.Bookmaker, opp.EdgePct)
	} else if err := r.notifier.Send(ctx, msg); err != nil {
		logging.Errorf("[scan] send alert %s: %v", key, err)
	} else {
		logging.Infof("[scan] alert sent: %s %s @ %.2f (edge %.1f%%)", opp.Bookmaker, opp.Outcome, opp.Odds, opp.EdgePct)
	}

	if r.store != nil {
		if err := r.store.InsertAlert(ctx, opp, sentAt); err != nil {
			logging.Errorf("[scan] sqlite error: %v", err)
		}
	}
	if err := queue.PublishAlert(ctx, r.writer, opp, sentAt); err != nil {
		logging.Errorf("[scan] kafka publish %s: %v", key, err)
	}
	return true
}

// WarmLedger seeds an in-memory ledger from persisted alert history so a
// restart does not re-alert inside the cooldown window. No-op unless both a
// store and a seedable ledger are configured.
func (r *Runner) WarmLedger(ctx context.Context, cooldown time.Duration) error {
	seeder, ok := r.ledger.(ledger.Seeder)
	if !ok || r.store == nil {
		return nil
	}
	rows, err := r.store.AlertsSince(ctx, r.now().Add(-cooldown))
	if err != nil {
		return err
	}
	for _, rec := range rows {
		seeder.Seed(ledger.Key{MatchID: rec.MatchID, Outcome: rec.Outcome, Bookmaker: rec.Bookmaker}, rec.SentAt)
	}
	if len(rows) > 0 {
		logging.Infof("[scan] warmed ledger with %d recent alerts", len(rows))
	}
	return nil
}
