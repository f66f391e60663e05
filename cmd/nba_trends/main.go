package main

import (
	"context"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/pbarros/TennisEdge/internal/alert"
	"github.com/pbarros/TennisEdge/internal/ledger"
	"github.com/pbarros/TennisEdge/internal/logging"
	"github.com/pbarros/TennisEdge/internal/trends"
)

var defaultPlayers = []string{
	"Nikola Jokic",
	"Luka Doncic",
	"Stephen Curry",
	"Kevin Durant",
	"Jayson Tatum",
	"Giannis Antetokounmpo",
	"LeBron James",
}

func main() {
	godotenv.Load()
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	logging.InitFromEnv()

	players := envList("NBA_PLAYERS", defaultPlayers)
	cooldown := time.Duration(envInt("TREND_COOLDOWN_HOURS", 12)) * time.Hour

	client := trends.NewClient(trends.Config{
		APIKey: os.Getenv("BALLDONTLIE_API_KEY"),
	})

	var notifier alert.Notifier
	if token := os.Getenv("TELEGRAM_BOT_TOKEN"); token != "" {
		tg, err := alert.NewTelegramNotifier(alert.TelegramConfig{
			Token:  token,
			ChatID: os.Getenv("TELEGRAM_CHAT_ID"),
		})
		if err != nil {
			logging.Fatalf("[nba-trends] telegram config: %v", err)
		}
		notifier = tg
	} else {
		logging.Warnf("[nba-trends] TELEGRAM_BOT_TOKEN not set, alerts are log-only")
	}

	led := buildLedger(cooldown)
	defer led.Close()

	interval := time.Duration(envInt("TREND_SCAN_INTERVAL", 0)) * time.Second
	if interval <= 0 && os.Getenv("REDIS_ADDR") == "" {
		logging.Warnf("[nba-trends] one-shot run with memory ledger: cooldown does not survive the process")
	}

	scanner := trends.NewScanner(client, notifier, led, players)
	logging.Infof("[nba-trends] monitoring %d players, cooldown=%s", len(players), cooldown)
	scanner.Run(ctx, interval)
}

func buildLedger(cooldown time.Duration) ledger.Ledger {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		return ledger.NewMemoryLedger(cooldown, nil)
	}
	led, err := ledger.NewRedisLedger(addr, os.Getenv("REDIS_PASSWORD"), envInt("REDIS_DB", 0), cooldown, "trend_sent")
	if err != nil {
		logging.Fatalf("[nba-trends] redis ledger: %v", err)
	}
	return led
}

func envInt(key string, def int) int {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			return parsed
		}
	}
	return def
}

func envList(key string, def []string) []string {
	raw := os.Getenv(key)
	if raw == "" {
		return def
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}
