package ledger

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func TestMemoryLedgerCooldownCycle(t *testing.T) {
	ctx := context.Background()
	clock := &fakeClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	led := NewMemoryLedger(90*time.Minute, clock.Now)
	key := Key{MatchID: "m1", Outcome: "Alcaraz", Bookmaker: "bet365"}

	ok, err := led.ShouldAlert(ctx, key)
	require.NoError(t, err)
	assert.True(t, ok, "fresh key must be eligible")

	require.NoError(t, led.RecordAlert(ctx, key))

	ok, err = led.ShouldAlert(ctx, key)
	require.NoError(t, err)
	assert.False(t, ok, "within cooldown must be suppressed")

	clock.Advance(89 * time.Minute)
	ok, _ = led.ShouldAlert(ctx, key)
	assert.False(t, ok)

	clock.Advance(time.Minute)
	ok, _ = led.ShouldAlert(ctx, key)
	assert.True(t, ok, "elapsed cooldown must re-arm the key")
}

func TestMemoryLedgerCheckWithoutCommitDoesNotSuppress(t *testing.T) {
	ctx := context.Background()
	led := NewMemoryLedger(time.Hour, nil)
	key := Key{MatchID: "m1", Outcome: "Sinner", Bookmaker: "betway"}

	// ShouldAlert alone must not refresh any timestamp.
	for i := 0; i < 3; i++ {
		ok, err := led.ShouldAlert(ctx, key)
		require.NoError(t, err)
		assert.True(t, ok)
	}
}

func TestMemoryLedgerKeysAreIndependent(t *testing.T) {
	ctx := context.Background()
	led := NewMemoryLedger(time.Hour, nil)

	require.NoError(t, led.RecordAlert(ctx, Key{MatchID: "m1", Outcome: "A", Bookmaker: "bet365"}))

	ok, _ := led.ShouldAlert(ctx, Key{MatchID: "m1", Outcome: "A", Bookmaker: "unibet"})
	assert.True(t, ok, "different bookmaker is a different opportunity")
	ok, _ = led.ShouldAlert(ctx, Key{MatchID: "m1", Outcome: "B", Bookmaker: "bet365"})
	assert.True(t, ok, "different outcome is a different opportunity")
	ok, _ = led.ShouldAlert(ctx, Key{MatchID: "m1", Outcome: "A", Bookmaker: "bet365"})
	assert.False(t, ok)
}

func TestMemoryLedgerSeed(t *testing.T) {
	ctx := context.Background()
	clock := &fakeClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	led := NewMemoryLedger(90*time.Minute, clock.Now)
	key := Key{MatchID: "m9", Outcome: "A", Bookmaker: "bwin"}

	seeder, ok := led.(Seeder)
	require.True(t, ok)

	// An alert sent 30 minutes ago, replayed from storage after a restart.
	seeder.Seed(key, clock.now.Add(-30*time.Minute))

	eligible, err := led.ShouldAlert(ctx, key)
	require.NoError(t, err)
	assert.False(t, eligible)

	clock.Advance(60 * time.Minute)
	eligible, _ = led.ShouldAlert(ctx, key)
	assert.True(t, eligible)
}

func TestSeedNeverRewindsNewerEntry(t *testing.T) {
	ctx := context.Background()
	clock := &fakeClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	led := NewMemoryLedger(90*time.Minute, clock.Now)
	key := Key{MatchID: "m9", Outcome: "A", Bookmaker: "bwin"}

	require.NoError(t, led.RecordAlert(ctx, key))
	led.(Seeder).Seed(key, clock.now.Add(-2*time.Hour))

	ok, _ := led.ShouldAlert(ctx, key)
	assert.False(t, ok, "stale seed must not override a live record")
}
