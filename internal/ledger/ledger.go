package ledger

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// Key identifies a logical alert opportunity. Edge magnitude is deliberately
// not part of the key: the same opportunity reappearing with a different
// edge within the cooldown stays suppressed.
type Key struct {
	MatchID   string
	Outcome   string
	Bookmaker string
}

func (k Key) String() string {
	return fmt.Sprintf("%s|%s|%s", k.MatchID, k.Outcome, k.Bookmaker)
}

// Ledger tracks the last alert time per key and gates repeat alerts within a
// cooldown window. The contract is check-then-commit: ShouldAlert reports
// eligibility, and the caller commits with RecordAlert only after actually
// emitting. The two steps are not atomic; the single-threaded scan loop is
// the only writer.
type Ledger interface {
	ShouldAlert(ctx context.Context, key Key) (bool, error)
	RecordAlert(ctx context.Context, key Key) error
	Close() error
}

type memoryLedger struct {
	mu       sync.Mutex
	cooldown time.Duration
	now      func() time.Time
	lastSent map[string]time.Time
}

// NewMemoryLedger builds an in-process ledger. now may be nil, defaulting to
// time.Now; tests inject a fake clock.
func NewMemoryLedger(cooldown time.Duration, now func() time.Time) Ledger {
	if now == nil {
		now = time.Now
	}
	return &memoryLedger{
		cooldown: cooldown,
		now:      now,
		lastSent: make(map[string]time.Time),
	}
}

func (l *memoryLedger) ShouldAlert(_ context.Context, key Key) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	last, ok := l.lastSent[key.String()]
	if !ok {
		return true, nil
	}
	return l.now().Sub(last) >= l.cooldown, nil
}

func (l *memoryLedger) RecordAlert(_ context.Context, key Key) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lastSent[key.String()] = l.now()
	return nil
}

func (l *memoryLedger) Close() error {
	return nil
}

// Seeder is implemented by ledgers that can be warmed from persisted alert
// history so cooldowns survive a restart.
type Seeder interface {
	Seed(key Key, sentAt time.Time)
}

func (l *memoryLedger) Seed(key Key, sentAt time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if existing, ok := l.lastSent[key.String()]; ok && existing.After(sentAt) {
		return
	}
	l.lastSent[key.String()] = sentAt
}
