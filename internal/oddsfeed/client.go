package oddsfeed

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pbarros/TennisEdge/internal/logging"
)

const defaultBaseURL = "https://api.the-odds-api.com/v4"

// Client talks to The Odds API.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// Config provides optional overrides.
type Config struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// NewClient builds a configured odds provider client.
func NewClient(cfg Config) *Client {
	base := cfg.BaseURL
	if base == "" {
		base = defaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 25 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(base, "/"),
		apiKey:  cfg.APIKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

func (c *Client) Name() string {
	return "odds-api"
}

type apiOutcome struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

type apiMarket struct {
	Key        string       `json:"key"`
	LastUpdate time.Time    `json:"last_update"`
	Outcomes   []apiOutcome `json:"outcomes"`
}

type apiBookmaker struct {
	Key        string      `json:"key"`
	LastUpdate time.Time   `json:"last_update"`
	Markets    []apiMarket `json:"markets"`
}

type apiEvent struct {
	ID           string         `json:"id"`
	SportKey     string         `json:"sport_key"`
	CommenceTime time.Time      `json:"commence_time"`
	HomeTeam     string         `json:"home_team"`
	AwayTeam     string         `json:"away_team"`
	Bookmakers   []apiBookmaker `json:"bookmakers"`
}

// Fetch retrieves the current h2h odds board for one sport key.
func (c *Client) Fetch(ctx context.Context, opts FetchOptions) ([]Match, error) {
	if opts.SportKey == "" {
		return nil, fmt.Errorf("oddsfeed: sport key is required")
	}
	regions := opts.Regions
	if len(regions) == 0 {
		regions = []string{"eu", "uk", "us"}
	}

	endpoint := fmt.Sprintf("%s/sports/%s/odds", c.baseURL, url.PathEscape(opts.SportKey))
	params := url.Values{}
	params.Set("apiKey", c.apiKey)
	params.Set("regions", strings.Join(regions, ","))
	params.Set("markets", "h2h")
	params.Set("oddsFormat", "decimal")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build odds request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch odds for %s: %w", opts.SportKey, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read odds response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("odds api %s: status %d: %s", opts.SportKey, resp.StatusCode, truncate(body, 200))
	}

	var events []apiEvent
	if err := json.Unmarshal(body, &events); err != nil {
		return nil, fmt.Errorf("decode odds response: %w", err)
	}

	matches := make([]Match, 0, len(events))
	for _, ev := range events {
		m := normalizeEvent(ev)
		if m == nil {
			continue
		}
		matches = append(matches, *m)
	}
	logging.Debugf("[%s] %s: %d events, %d usable matches", c.Name(), opts.SportKey, len(events), len(matches))
	return matches, nil
}

// normalizeEvent flattens the provider's bookmaker/market nesting into a flat
// quote list. Events missing an id, a participant, or any h2h quote are
// dropped.
func normalizeEvent(ev apiEvent) *Match {
	if ev.ID == "" || ev.HomeTeam == "" || ev.AwayTeam == "" {
		return nil
	}
	m := Match{
		ID:           ev.ID,
		SportKey:     ev.SportKey,
		PlayerA:      ev.HomeTeam,
		PlayerB:      ev.AwayTeam,
		CommenceTime: ev.CommenceTime,
	}
	for _, bk := range ev.Bookmakers {
		if bk.Key == "" {
			continue
		}
		for _, mk := range bk.Markets {
			if mk.Key != "h2h" {
				continue
			}
			observed := mk.LastUpdate
			if observed.IsZero() {
				observed = bk.LastUpdate
			}
			for _, out := range mk.Outcomes {
				if out.Name == "" || out.Price <= 0 {
					continue
				}
				m.Quotes = append(m.Quotes, Quote{
					Bookmaker:  bk.Key,
					Outcome:    out.Name,
					Price:      out.Price,
					ObservedAt: observed,
				})
			}
		}
	}
	if len(m.Quotes) == 0 {
		return nil
	}
	return &m
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
