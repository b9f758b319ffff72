package remote

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"dfaith/pkg/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// deadURL returns the address of a server that has already been shut down.
func deadURL(t *testing.T) string {
	t.Helper()
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()
	return url
}

func jsonHandler(status int, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}
}

func TestFetchTokenPrices(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		want    float64
		wantErr error
	}{
		{"ok", http.StatusOK, `{"tokens":{"dfaith":{"price_eur":0.0421}}}`, 0.0421, nil},
		{"server error", http.StatusInternalServerError, `{"error":"boom"}`, 0, ErrStatus},
		{"malformed", http.StatusOK, `{"tokens":`, 0, ErrMalformed},
		{"missing token", http.StatusOK, `{"tokens":{"dinvest":{"price_eur":5}}}`, 0, ErrMissingField},
		{"missing tokens", http.StatusOK, `{}`, 0, ErrMissingField},
		{"zero price", http.StatusOK, `{"tokens":{"dfaith":{"price_eur":0}}}`, 0, ErrMissingField},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, TokenPricesPath, r.URL.Path)
				jsonHandler(tt.status, tt.body)(w, r)
			}))
			defer srv.Close()

			c := NewClient(Opts{BaseURL: srv.URL})
			data, err := c.FetchTokenPrices(context.Background())
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.ErrorIs(t, data.Err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, data.DFaithEUR)
			assert.Equal(t, models.SourcePrimary, data.Source)
		})
	}
}

func TestFetchActiveUsers_Resolution(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		want    int
		wantErr bool
	}{
		{"stats", `{"stats":{"activeUsers":812},"entries":[1,2]}`, 812, false},
		{"entries when stats missing", `{"entries":[{"a":1},{"a":2},{"a":3}]}`, 3, false},
		{"entries when stats zero", `{"stats":{"activeUsers":0},"entries":[1,2]}`, 2, false},
		{"float count", `{"stats":{"activeUsers":812.0}}`, 812, false},
		{"fraction truncated", `{"stats":{"activeUsers":812.9}}`, 812, false},
		{"numeric string", `{"stats":{"activeUsers":"812"}}`, 812, false},
		{"unusable stats uses entries", `{"stats":{"activeUsers":"many"},"entries":[1,2]}`, 2, false},
		{"null stats uses entries", `{"stats":{"activeUsers":null},"entries":[1]}`, 1, false},
		{"nothing usable", `{"stats":{}}`, 0, true},
		{"empty entries", `{"entries":[]}`, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(jsonHandler(http.StatusOK, tt.body))
			defer srv.Close()

			c := NewClient(Opts{BaseURL: srv.URL})
			data, err := c.FetchActiveUsers(context.Background())
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrMissingField)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, data.Count)
		})
	}
}

func TestFetchActiveUsers_FallbackOnRequestFailure(t *testing.T) {
	var hits int32
	fallback := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		jsonHandler(http.StatusOK, `{"entries":[1,2,3,4,5]}`)(w, r)
	}))
	defer fallback.Close()

	c := NewClient(Opts{BaseURL: deadURL(t), FallbackURL: fallback.URL + LeaderboardPath})
	data, err := c.FetchActiveUsers(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 5, data.Count)
	assert.Equal(t, models.SourceFallback, data.Source)
	assert.Equal(t, int32(1), atomic.LoadInt32(&hits))
}

func TestFetchActiveUsers_NoFallbackOnErrorResponse(t *testing.T) {
	var hits int32
	fallback := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		jsonHandler(http.StatusOK, `{"entries":[1]}`)(w, r)
	}))
	defer fallback.Close()

	primary := httptest.NewServer(jsonHandler(http.StatusBadGateway, `{}`))
	defer primary.Close()

	c := NewClient(Opts{BaseURL: primary.URL, FallbackURL: fallback.URL})
	data, err := c.FetchActiveUsers(context.Background())
	assert.ErrorIs(t, err, ErrStatus)
	assert.Equal(t, models.SourcePrimary, data.Source)
	assert.Equal(t, int32(0), atomic.LoadInt32(&hits))
}

func TestFetchActiveUsers_FallbackAlsoFails(t *testing.T) {
	c := NewClient(Opts{BaseURL: deadURL(t), FallbackURL: deadURL(t)})
	data, err := c.FetchActiveUsers(context.Background())
	assert.ErrorIs(t, err, ErrRequest)
	assert.Equal(t, models.SourceFallback, data.Source)
}

func TestFetchActiveUsers_CancelledContextSkipsFallback(t *testing.T) {
	var hits int32
	fallback := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
	}))
	defer fallback.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := NewClient(Opts{BaseURL: deadURL(t), FallbackURL: fallback.URL})
	_, err := c.FetchActiveUsers(ctx)
	assert.ErrorIs(t, err, ErrRequest)
	assert.Equal(t, int32(0), atomic.LoadInt32(&hits))
}

func TestRefresh_IndependentFailures(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc(TokenPricesPath, jsonHandler(http.StatusInternalServerError, ``))
	mux.HandleFunc(LeaderboardPath, jsonHandler(http.StatusOK, `{"stats":{"activeUsers":42}}`))
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := NewClient(Opts{BaseURL: srv.URL})
	res := c.Refresh(context.Background())

	assert.ErrorIs(t, res.Prices.Err, ErrStatus)
	require.NoError(t, res.Users.Err)
	assert.Equal(t, 42, res.Users.Count)
	assert.Nil(t, res.Supply)
}

func TestRefresh_RunsConcurrently(t *testing.T) {
	release := make(chan struct{})
	var inFlight int32
	var peak int32
	handler := func(body string) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			n := atomic.AddInt32(&inFlight, 1)
			for {
				p := atomic.LoadInt32(&peak)
				if n <= p || atomic.CompareAndSwapInt32(&peak, p, n) {
					break
				}
			}
			if n == 2 {
				close(release)
			}
			select {
			case <-release:
			case <-time.After(2 * time.Second):
			}
			atomic.AddInt32(&inFlight, -1)
			jsonHandler(http.StatusOK, body)(w, r)
		}
	}
	mux := http.NewServeMux()
	mux.HandleFunc(TokenPricesPath, handler(`{"tokens":{"dfaith":{"price_eur":0.05}}}`))
	mux.HandleFunc(LeaderboardPath, handler(`{"entries":[1]}`))
	srv := httptest.NewServer(mux)
	defer srv.Close()

	res := NewClient(Opts{BaseURL: srv.URL}).Refresh(context.Background())
	require.NoError(t, res.Prices.Err)
	require.NoError(t, res.Users.Err)
	assert.Equal(t, int32(2), atomic.LoadInt32(&peak))
}

func TestFetchLeaderboard_SingleURL(t *testing.T) {
	srv := httptest.NewServer(jsonHandler(http.StatusOK, `{"stats":{"activeUsers":7}}`))
	defer srv.Close()

	c := NewClient(Opts{BaseURL: deadURL(t), FallbackURL: srv.URL})
	n, err := c.FetchLeaderboard(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, 7, n)

	_, err = c.FetchLeaderboard(context.Background(), c.LeaderboardURL())
	assert.ErrorIs(t, err, ErrRequest)
}

func TestNewClient_DoesNotMutateInjectedClient(t *testing.T) {
	shared := &http.Client{}
	c := NewClient(Opts{HTTPClient: shared, Timeout: 3 * time.Second})
	assert.Zero(t, shared.Timeout)
	assert.Equal(t, 3*time.Second, c.client.Timeout)

	custom := &http.Client{Timeout: time.Second}
	assert.Equal(t, time.Second, NewClient(Opts{HTTPClient: custom}).client.Timeout)
}
