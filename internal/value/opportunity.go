package value

import "time"

// Opportunity is a priced value bet: a target book's quote measured against
// the fair probability. Created per evaluation cycle and discarded after
// alerting; only the ledger key outlives the cycle.
type Opportunity struct {
	MatchID        string    `json:"match_id"`
	SportKey       string    `json:"sport_key"`
	PlayerA        string    `json:"player_a"`
	PlayerB        string    `json:"player_b"`
	Outcome        string    `json:"outcome"`
	Bookmaker      string    `json:"bookmaker"`
	Odds           float64   `json:"odds"`
	FairProb       float64   `json:"fair_prob"`
	Basis          string    `json:"basis"`
	EdgePct        float64   `json:"edge_pct"`
	Kelly          float64   `json:"kelly"`
	MinutesToStart float64   `json:"minutes_to_start"`
	CommenceTime   time.Time `json:"commence_time"`
}

// Matchup renders the participants in the fixed "A vs B" form used in alerts
// and storage.
func (o Opportunity) Matchup() string {
	return o.PlayerA + " vs " + o.PlayerB
}
