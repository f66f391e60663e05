package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/pbarros/TennisEdge/internal/hashutil"
)

type redisLedger struct {
	client   *redis.Client
	cooldown time.Duration
	prefix   string
}

// NewRedisLedger builds a ledger backed by Redis so multiple scanner
// processes can share one cooldown window. Entries expire on their own via
// TTL, which doubles as the cooldown clock.
func NewRedisLedger(addr, password string, db int, cooldown time.Duration, prefix string) (Ledger, error) {
	if addr == "" {
		return nil, fmt.Errorf("redis addr is required")
	}
	if cooldown <= 0 {
		return nil, fmt.Errorf("cooldown must be positive")
	}
	if prefix == "" {
		prefix = "alert_sent"
	}
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return &redisLedger{client: client, cooldown: cooldown, prefix: prefix}, nil
}

func (l *redisLedger) key(k Key) string {
	return fmt.Sprintf("%s:%s", l.prefix, hashutil.ShortDigest(k.MatchID, k.Outcome, k.Bookmaker))
}

func (l *redisLedger) ShouldAlert(ctx context.Context, key Key) (bool, error) {
	if l == nil || l.client == nil {
		return false, nil
	}
	exists, err := l.client.Exists(ctx, l.key(key)).Result()
	if err != nil {
		return false, fmt.Errorf("check ledger key: %w", err)
	}
	return exists == 0, nil
}

func (l *redisLedger) RecordAlert(ctx context.Context, key Key) error {
	if l == nil || l.client == nil {
		return nil
	}
	if err := l.client.Set(ctx, l.key(key), "1", l.cooldown).Err(); err != nil {
		return fmt.Errorf("record ledger key: %w", err)
	}
	return nil
}

func (l *redisLedger) Close() error {
	if l == nil || l.client == nil {
		return nil
	}
	return l.client.Close()
}
