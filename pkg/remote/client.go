package remote

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"dfaith/pkg/models"

	"go.uber.org/zap"
)

const (
	TokenPricesPath = "/api/token-prices"
	LeaderboardPath = "/api/leaderboard"
)

var (
	// ErrRequest marks a failure before any HTTP response was received.
	ErrRequest = errors.New("request failed")
	// ErrStatus marks a non-2xx response.
	ErrStatus = errors.New("unexpected status")
	// ErrMalformed marks a body that is not valid JSON.
	ErrMalformed = errors.New("malformed response")
	// ErrMissingField marks a valid body without the expected field.
	ErrMissingField = errors.New("missing field")
)

// Opts is the set of options for a new Client.
type Opts struct {
	BaseURL     string
	FallbackURL string
	Timeout     time.Duration
	HTTPClient  *http.Client
	Logger      *zap.Logger
}

// Client fetches token prices and leaderboard stats from the site API.
type Client struct {
	baseURL     string
	fallbackURL string
	client      *http.Client
	logger      *zap.Logger
}

// NewClient creates a Client, filling in defaults for unset options.
func NewClient(o Opts) *Client {
	if o.Timeout <= 0 {
		o.Timeout = 10 * time.Second
	}
	client := &http.Client{Timeout: o.Timeout}
	if o.HTTPClient != nil {
		cp := *o.HTTPClient
		if cp.Timeout == 0 {
			cp.Timeout = o.Timeout
		}
		client = &cp
	}
	logger := o.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL:     strings.TrimRight(o.BaseURL, "/"),
		fallbackURL: o.FallbackURL,
		client:      client,
		logger:      logger,
	}
}

func (c *Client) TokenPricesURL() string { return c.baseURL + TokenPricesPath }
func (c *Client) LeaderboardURL() string { return c.baseURL + LeaderboardPath }
func (c *Client) FallbackURL() string    { return c.fallbackURL }

// Refresh fetches prices and users concurrently. Each half fails on its own;
// the result carries the error per field.
func (c *Client) Refresh(ctx context.Context) models.RefreshResult {
	var (
		wg  sync.WaitGroup
		res models.RefreshResult
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		res.Prices, _ = c.FetchTokenPrices(ctx)
	}()
	go func() {
		defer wg.Done()
		res.Users, _ = c.FetchActiveUsers(ctx)
	}()
	wg.Wait()
	return res
}

type tokenPricesResponse struct {
	Tokens *struct {
		DFaith *struct {
			PriceEUR *float64 `json:"price_eur"`
		} `json:"dfaith"`
	} `json:"tokens"`
}

// FetchTokenPrices reads tokens.dfaith.price_eur. A zero or negative price is
// treated as absent.
func (c *Client) FetchTokenPrices(ctx context.Context) (models.PriceData, error) {
	url := c.TokenPricesURL()
	var body tokenPricesResponse
	if err := c.getJSON(ctx, url, &body); err != nil {
		c.logger.Warn("token price fetch failed", zap.String("url", url), zap.Error(err))
		return models.PriceData{Source: models.SourcePrimary, Err: err}, err
	}
	if body.Tokens == nil || body.Tokens.DFaith == nil || body.Tokens.DFaith.PriceEUR == nil || *body.Tokens.DFaith.PriceEUR <= 0 {
		err := fmt.Errorf("%w: tokens.dfaith.price_eur", ErrMissingField)
		c.logger.Warn("token price fetch failed", zap.String("url", url), zap.Error(err))
		return models.PriceData{Source: models.SourcePrimary, Err: err}, err
	}
	return models.PriceData{DFaithEUR: *body.Tokens.DFaith.PriceEUR, Source: models.SourcePrimary}, nil
}

type leaderboardResponse struct {
	Stats *struct {
		ActiveUsers json.RawMessage `json:"activeUsers"`
	} `json:"stats"`
	Entries []json.RawMessage `json:"entries"`
}

// activeUsers reads stats.activeUsers as a number or numeric string,
// truncating fractions. Anything else is treated as absent.
func (l leaderboardResponse) activeUsers() (int, bool) {
	if l.Stats == nil || len(l.Stats.ActiveUsers) == 0 {
		return 0, false
	}
	var n float64
	if err := json.Unmarshal(l.Stats.ActiveUsers, &n); err != nil {
		var str string
		if err := json.Unmarshal(l.Stats.ActiveUsers, &str); err != nil {
			return 0, false
		}
		if n, err = strconv.ParseFloat(strings.TrimSpace(str), 64); err != nil {
			return 0, false
		}
	}
	if n < 1 || math.IsInf(n, 0) || math.IsNaN(n) {
		return 0, false
	}
	return int(n), true
}

// count resolves stats.activeUsers, then len(entries). Non-positive counts are absent.
func (l leaderboardResponse) count() (int, bool) {
	if n, ok := l.activeUsers(); ok {
		return n, true
	}
	if len(l.Entries) > 0 {
		return len(l.Entries), true
	}
	return 0, false
}

// FetchActiveUsers queries the leaderboard. Only a request-level failure on
// the primary endpoint switches to the fallback URL, and only once.
func (c *Client) FetchActiveUsers(ctx context.Context) (models.UsersData, error) {
	source := models.SourcePrimary
	url := c.LeaderboardURL()
	n, err := c.FetchLeaderboard(ctx, url)
	if errors.Is(err, ErrRequest) && c.fallbackURL != "" && ctx.Err() == nil {
		c.logger.Info("leaderboard primary unreachable, trying fallback",
			zap.String("url", url), zap.String("fallback", c.fallbackURL), zap.Error(err))
		source = models.SourceFallback
		url = c.fallbackURL
		n, err = c.FetchLeaderboard(ctx, url)
	}
	if err != nil {
		c.logger.Warn("leaderboard fetch failed", zap.String("url", url), zap.String("source", source), zap.Error(err))
		return models.UsersData{Source: source, Err: err}, err
	}
	return models.UsersData{Count: n, Source: source}, nil
}

// FetchLeaderboard reads the active-user count from a single leaderboard
// URL. It never falls back.
func (c *Client) FetchLeaderboard(ctx context.Context, url string) (int, error) {
	var body leaderboardResponse
	if err := c.getJSON(ctx, url, &body); err != nil {
		return 0, err
	}
	n, ok := body.count()
	if !ok {
		return 0, fmt.Errorf("%w: stats.activeUsers or entries", ErrMissingField)
	}
	return n, nil
}

// getJSON performs a GET and decodes a 2xx JSON body into out.
func (c *Client) getJSON(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRequest, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrRequest, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("%w: %d", ErrStatus, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	return nil
}
