package trends

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"
)

const defaultBaseURL = "https://api.balldontlie.io/v1"

// Client talks to the BallDontLie NBA API.
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

// NewClient builds a configured BallDontLie client.
func NewClient(cfg Config) *Client {
	base := cfg.BaseURL
	if base == "" {
		base = defaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(base, "/"),
		apiKey:  cfg.APIKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

func (c *Client) get(ctx context.Context, path string, params url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", c.apiKey)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("fetch %s: %w", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read %s response: %w", path, err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("balldontlie %s: status %d", path, resp.StatusCode)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}

type playersResponse struct {
	Data []struct {
		ID int `json:"id"`
	} `json:"data"`
}

// PlayerID resolves a player's full name to their API id. Returns 0 when no
// player matches.
func (c *Client) PlayerID(ctx context.Context, name string) (int, error) {
	params := url.Values{}
	params.Set("search", name)
	params.Set("per_page", "1")

	var resp playersResponse
	if err := c.get(ctx, "/players", params, &resp); err != nil {
		return 0, err
	}
	if len(resp.Data) == 0 {
		return 0, nil
	}
	return resp.Data[0].ID, nil
}

type statsResponse struct {
	Data []struct {
		Pts  int `json:"pts"`
		Game struct {
			Date string `json:"date"`
		} `json:"game"`
	} `json:"data"`
}

// LastFivePoints returns the player's point totals from their last five
// games, oldest first. Fewer than five available games yields nil.
func (c *Client) LastFivePoints(ctx context.Context, playerID int) ([]int, error) {
	params := url.Values{}
	params.Set("player_ids[]", fmt.Sprint(playerID))
	params.Set("per_page", "25")

	var resp statsResponse
	if err := c.get(ctx, "/stats", params, &resp); err != nil {
		return nil, err
	}

	// The API does not order stats; sort by game date, newest first.
	sort.Slice(resp.Data, func(i, j int) bool {
		return resp.Data[i].Game.Date > resp.Data[j].Game.Date
	})
	if len(resp.Data) < 5 {
		return nil, nil
	}

	points := make([]int, 5)
	for i := 0; i < 5; i++ {
		points[4-i] = resp.Data[i].Pts
	}
	return points, nil
}
