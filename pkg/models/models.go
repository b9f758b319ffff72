package models

import (
	"time"
)

// DInvestPriceEUR is the fixed D.INVEST price. It is never read from the network.
const DInvestPriceEUR = 5.00

// Fetch sources reported alongside results.
const (
	SourcePrimary  = "primary"
	SourceFallback = "fallback"
	SourceChain    = "chain"
	SourceStatic   = "static"
)

// TokenPriceSnapshot holds the most recently known token prices in EUR.
type TokenPriceSnapshot struct {
	DFaithPriceEUR  *float64 `json:"dfaith_price_eur"`
	DInvestPriceEUR float64  `json:"dinvest_price_eur"`
}

// ActiveUserCount is nil until a leaderboard fetch succeeds.
type ActiveUserCount = *int

// PriceData contains the result of a token-price fetch.
type PriceData struct {
	DFaithEUR float64
	Source    string
	Err       error
}

// UsersData contains the result of a leaderboard fetch.
type UsersData struct {
	Count  int
	Source string // primary or fallback
	Err    error
}

// SupplyData contains the D.FAITH supply, either read on-chain or taken from config.
type SupplyData struct {
	Supply     float64
	Source     string
	FailedRPCs []string
	Err        error
}

// RefreshResult is the combined outcome of one refresh. Supply is nil when no
// supply source took part in the refresh.
type RefreshResult struct {
	Prices PriceData
	Users  UsersData
	Supply *SupplyData
}

// Snapshot is an immutable copy of the live metrics.
type Snapshot struct {
	Prices      TokenPriceSnapshot `json:"prices"`
	ActiveUsers ActiveUserCount    `json:"active_users"`
	Supply      *float64           `json:"supply"`
	Loading     bool               `json:"loading"`
	LastUpdate  time.Time          `json:"last_update"`
	LastAttempt time.Time          `json:"last_attempt"`
}

// NewSnapshot returns the state before any fetch has completed.
func NewSnapshot() Snapshot {
	return Snapshot{
		Prices:  TokenPriceSnapshot{DInvestPriceEUR: DInvestPriceEUR},
		Loading: true,
	}
}

// Clone returns a copy that shares no pointers with s.
func (s Snapshot) Clone() Snapshot {
	out := s
	if s.Prices.DFaithPriceEUR != nil {
		v := *s.Prices.DFaithPriceEUR
		out.Prices.DFaithPriceEUR = &v
	}
	if s.ActiveUsers != nil {
		v := *s.ActiveUsers
		out.ActiveUsers = &v
	}
	if s.Supply != nil {
		v := *s.Supply
		out.Supply = &v
	}
	return out
}

// PricePoint holds a timestamped dfaith price.
type PricePoint struct {
	Timestamp time.Time `json:"timestamp"`
	Value     float64   `json:"value"`
}

// EndpointResult holds probe results for a single endpoint.
type EndpointResult struct {
	Name   string  `json:"name"`
	URL    string  `json:"url"`
	Status string  `json:"status"` // "ok" or "error"
	Value  float64 `json:"value,omitempty"`
	Source string  `json:"source,omitempty"`
	Error  string  `json:"error,omitempty"`
}

// ProbeReport holds the results of the configuration test.
type ProbeReport struct {
	ConfigPath      string           `json:"config_path"`
	ValidStructure  bool             `json:"valid_structure"`
	StructureErrors []string         `json:"structure_errors,omitempty"`
	Endpoints       []EndpointResult `json:"endpoints,omitempty"`
	Healthy         bool             `json:"healthy"`
}
