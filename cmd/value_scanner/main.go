package main

import (
	"context"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	kafkago "github.com/segmentio/kafka-go"

	"github.com/pbarros/TennisEdge/internal/alert"
	"github.com/pbarros/TennisEdge/internal/filter"
	"github.com/pbarros/TennisEdge/internal/kafka"
	"github.com/pbarros/TennisEdge/internal/ledger"
	"github.com/pbarros/TennisEdge/internal/logging"
	"github.com/pbarros/TennisEdge/internal/odds"
	"github.com/pbarros/TennisEdge/internal/oddsfeed"
	"github.com/pbarros/TennisEdge/internal/scan"
	sqlstore "github.com/pbarros/TennisEdge/internal/storage/sqlite"
)

func main() {
	godotenv.Load()
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	logging.InitFromEnv()

	apiKey := os.Getenv("ODDS_API_KEY")
	if apiKey == "" {
		logging.Fatalf("[value-scanner] ODDS_API_KEY is required")
	}

	sports := envList("SPORT_KEYS", []string{"tennis_atp", "tennis_wta", "tennis_atp_challenger", "tennis_wta_challenger"})
	regions := envList("REGIONS", []string{"eu", "uk", "us"})
	sharpBooks := envList("SHARP_BOOKS", []string{"pinnacle", "betfair_exchange"})
	targetBooks := envList("TARGET_BOOKS", []string{"bet365", "williamhill", "unibet", "betway", "bwin", "888sport", "betfair"})

	thresholds := filter.Thresholds{
		MinEdgePct:      envFloat("MIN_EDGE_PCT", 3.0),
		MinDecimalOdds:  envFloat("MIN_DECIMAL_ODDS", 1.50),
		MaxStartTimeHrs: envFloat("MAX_START_TIME_HOURS", 48),
	}
	cooldown := time.Duration(envInt("COOLDOWN_MINUTES", 90)) * time.Minute
	interval := time.Duration(envInt("SCAN_INTERVAL", 0)) * time.Second
	consensusFallback := envBool("CONSENSUS_FALLBACK", false)

	feed := oddsfeed.NewClient(oddsfeed.Config{
		BaseURL: os.Getenv("ODDS_API_BASE"),
		APIKey:  apiKey,
	})

	led := buildLedger(cooldown)
	defer led.Close()

	var notifier alert.Notifier
	if token := os.Getenv("TELEGRAM_BOT_TOKEN"); token != "" {
		tg, err := alert.NewTelegramNotifier(alert.TelegramConfig{
			Token:  token,
			ChatID: os.Getenv("TELEGRAM_CHAT_ID"),
		})
		if err != nil {
			logging.Fatalf("[value-scanner] telegram config: %v", err)
		}
		notifier = tg
	} else {
		logging.Warnf("[value-scanner] TELEGRAM_BOT_TOKEN not set, alerts are log-only")
	}

	var store *sqlstore.Store
	if path := os.Getenv("SQLITE_PATH"); path != "" {
		var err error
		store, err = sqlstore.Open(path)
		if err != nil {
			logging.Fatalf("[value-scanner] open sqlite: %v", err)
		}
		defer store.Close()
		if err := store.CreateTables(ctx); err != nil {
			logging.Fatalf("[value-scanner] create tables: %v", err)
		}
	}

	var writer *kafkago.Writer
	if os.Getenv("KAFKA_BROKERS") != "" {
		brokers := kafka.Brokers()
		topic := kafka.TopicFromEnv("ALERTS_KAFKA_TOPIC", kafka.DefaultAlertTopic)

		waitCtx, cancel := context.WithTimeout(ctx, 45*time.Second)
		if err := kafka.WaitForBroker(waitCtx, brokers); err != nil {
			logging.Fatalf("[value-scanner] wait for broker: %v", err)
		}
		cancel()

		ensureCtx, cancelEnsure := context.WithTimeout(ctx, 30*time.Second)
		if err := kafka.EnsureTopic(ensureCtx, brokers, topic); err != nil {
			logging.Errorf("[value-scanner] ensure topic warning: %v", err)
		}
		cancelEnsure()

		writer = kafka.NewWriter(brokers, topic)
		defer writer.Close()
	}

	agg := odds.NewAggregator(sharpBooks, consensusFallback)
	engine := scan.NewEngine(agg, targetBooks, nil)
	runner := scan.NewRunner(scan.RunnerConfig{
		Feed:     feed,
		Sports:   sports,
		Regions:  regions,
		Engine:   engine,
		Filter:   filter.New(thresholds),
		Ledger:   led,
		Notifier: notifier,
		Store:    store,
		Writer:   writer,
	})
	if err := runner.WarmLedger(ctx, cooldown); err != nil {
		logging.Errorf("[value-scanner] warm ledger: %v", err)
	}

	logging.Infof("[value-scanner] scanning %d sports, sharp=%v targets=%d, min_edge=%.1f%% cooldown=%s",
		len(sports), sharpBooks, len(targetBooks), thresholds.MinEdgePct, cooldown)
	runner.Run(ctx, interval)
}

func buildLedger(cooldown time.Duration) ledger.Ledger {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		return ledger.NewMemoryLedger(cooldown, nil)
	}
	led, err := ledger.NewRedisLedger(addr, os.Getenv("REDIS_PASSWORD"), envInt("REDIS_DB", 0), cooldown, "alert_sent")
	if err != nil {
		logging.Fatalf("[value-scanner] redis ledger: %v", err)
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

func envFloat(key string, def float64) float64 {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.ParseFloat(val, 64); err == nil {
			return parsed
		}
	}
	return def
}

func envBool(key string, def bool) bool {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.ParseBool(val); err == nil {
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
