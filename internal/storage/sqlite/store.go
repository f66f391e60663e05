package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/pbarros/TennisEdge/internal/value"
)

const (
	defaultPath = "data/alerts.db"
)

// Store wraps a SQLite DB connection holding the alert history.
type Store struct {
	path string
	db   *sql.DB
}

// Open creates (if needed) and opens the SQLite database.
func Open(path string) (*Store, error) {
	if path == "" {
		path = defaultPath
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("ensure data dir: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := ensureWAL(db); err != nil {
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}
	return &Store{path: path, db: db}, nil
}

func ensureWAL(db *sql.DB) error {
	const (
		maxAttempts = 5
		delay       = 200 * time.Millisecond
	)
	for i := 0; i < maxAttempts; i++ {
		if _, err := db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
			if strings.Contains(err.Error(), "database is locked") {
				time.Sleep(delay)
				continue
			}
			return err
		}
		return nil
	}
	return fmt.Errorf("database is locked after retries")
}

// Path returns the path backing the store.
func (s *Store) Path() string {
	return s.path
}

// Close closes the DB.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// CreateTables ensures the alerts table exists.
func (s *Store) CreateTables(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, alertsSchemaSQL)
	return err
}

// DropTables removes the alerts table.
func (s *Store) DropTables(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DROP TABLE IF EXISTS alerts;`)
	return err
}

// ClearTables truncates the alerts table.
func (s *Store) ClearTables(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM alerts;`)
	return err
}

const alertsSchemaSQL = `
CREATE TABLE IF NOT EXISTS alerts (
	match_id TEXT NOT NULL,
	sport_key TEXT,
	matchup TEXT,
	outcome TEXT NOT NULL,
	bookmaker TEXT NOT NULL,
	odds REAL,
	fair_prob REAL,
	basis TEXT,
	edge_pct REAL,
	kelly REAL,
	minutes_to_start REAL,
	commence_time TEXT,
	sent_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_alerts_sent_at ON alerts (sent_at);
CREATE INDEX IF NOT EXISTS idx_alerts_key ON alerts (match_id, outcome, bookmaker);
`

// InsertAlert records one emitted alert.
func (s *Store) InsertAlert(ctx context.Context, opp value.Opportunity, sentAt time.Time) error {
	if s == nil || s.db == nil {
		return nil
	}
	_, err := s.db.ExecContext(ctx, `
INSERT INTO alerts (
	match_id, sport_key, matchup, outcome, bookmaker,
	odds, fair_prob, basis, edge_pct, kelly,
	minutes_to_start, commence_time, sent_at
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);`,
		opp.MatchID,
		opp.SportKey,
		opp.Matchup(),
		opp.Outcome,
		opp.Bookmaker,
		opp.Odds,
		opp.FairProb,
		opp.Basis,
		opp.EdgePct,
		opp.Kelly,
		opp.MinutesToStart,
		opp.CommenceTime.UTC().Format(time.RFC3339),
		sentAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("insert alert: %w", err)
	}
	return nil
}

// SentAlert is a past alert's dedup key and send time.
type SentAlert struct {
	MatchID   string
	Outcome   string
	Bookmaker string
	SentAt    time.Time
}

// AlertsSince returns the alerts sent at or after the given time, newest
// last. Used to warm the in-memory ledger on startup.
func (s *Store) AlertsSince(ctx context.Context, since time.Time) ([]SentAlert, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	rows, err := s.db.QueryContext(ctx, `
SELECT match_id, outcome, bookmaker, sent_at
FROM alerts
WHERE sent_at >= ?
ORDER BY sent_at ASC;`, since.UTC().Format(time.RFC3339))
	if err != nil {
		return nil, fmt.Errorf("query alerts: %w", err)
	}
	defer rows.Close()

	var out []SentAlert
	for rows.Next() {
		var rec SentAlert
		var sentAt string
		if err := rows.Scan(&rec.MatchID, &rec.Outcome, &rec.Bookmaker, &sentAt); err != nil {
			return nil, fmt.Errorf("scan alert row: %w", err)
		}
		ts, err := time.Parse(time.RFC3339, sentAt)
		if err != nil {
			return nil, fmt.Errorf("parse sent_at %q: %w", sentAt, err)
		}
		rec.SentAt = ts
		out = append(out, rec)
	}
	return out, rows.Err()
}
