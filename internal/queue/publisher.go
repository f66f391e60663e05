package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/pbarros/TennisEdge/internal/value"
)

// alertRecord is the wire shape published for each emitted alert so
// downstream consumers (dashboards, bet loggers) see what was sent.
type alertRecord struct {
	value.Opportunity
	SentAt time.Time `json:"sent_at"`
}

// PublishAlert writes one emitted alert to the configured topic. A nil
// writer disables publishing.
func PublishAlert(ctx context.Context, writer *kafka.Writer, opp value.Opportunity, sentAt time.Time) error {
	if writer == nil {
		return nil
	}

	payload, err := json.Marshal(alertRecord{Opportunity: opp, SentAt: sentAt.UTC()})
	if err != nil {
		return fmt.Errorf("marshal alert %s: %w", opp.MatchID, err)
	}
	key := fmt.Sprintf("%s-%s-%s", opp.MatchID, opp.Outcome, opp.Bookmaker)
	return writer.WriteMessages(ctx, kafka.Message{Key: []byte(key), Value: payload})
}
