package alert

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const defaultTelegramBase = "https://api.telegram.org"

// Notifier delivers a formatted alert message. The scan loop treats delivery
// failure as a logged signal, not a rollback.
type Notifier interface {
	Send(ctx context.Context, text string) error
}

// TelegramNotifier posts messages to a chat via the Telegram Bot API.
type TelegramNotifier struct {
	baseURL    string
	token      string
	chatID     string
	httpClient *http.Client
}

// TelegramConfig provides credentials and optional overrides.
type TelegramConfig struct {
	BaseURL string
	Token   string
	ChatID  string
	Timeout time.Duration
}

// NewTelegramNotifier builds a notifier for one bot/chat pair.
func NewTelegramNotifier(cfg TelegramConfig) (*TelegramNotifier, error) {
	if cfg.Token == "" || cfg.ChatID == "" {
		return nil, fmt.Errorf("telegram token and chat id are required")
	}
	base := cfg.BaseURL
	if base == "" {
		base = defaultTelegramBase
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 15 * time.Second
	}
	return &TelegramNotifier{
		baseURL: base,
		token:   cfg.Token,
		chatID:  cfg.ChatID,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

// Send posts one MarkdownV2 message. The text must already be escaped.
func (t *TelegramNotifier) Send(ctx context.Context, text string) error {
	payload := map[string]any{
		"chat_id":                  t.chatID,
		"text":                     text,
		"parse_mode":               "MarkdownV2",
		"disable_web_page_preview": true,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal telegram payload: %w", err)
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", t.baseURL, t.token)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build telegram request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send telegram message: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("telegram returned status %d", resp.StatusCode)
	}
	return nil
}
