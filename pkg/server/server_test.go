package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"dfaith/pkg/metrics"
	"dfaith/pkg/models"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSource struct{}

func (stubSource) Refresh(ctx context.Context) models.RefreshResult {
	return models.RefreshResult{
		Prices: models.PriceData{DFaithEUR: 0.05, Source: models.SourcePrimary},
		Users:  models.UsersData{Count: 774, Source: models.SourcePrimary},
	}
}

func TestHandleMetrics(t *testing.T) {
	store := metrics.NewStore(stubSource{}, metrics.Opts{})
	stop := store.Start(context.Background(), time.Hour)
	defer stop()
	require.Eventually(t, func() bool { return !store.Snapshot().Loading }, time.Second, 5*time.Millisecond)

	s := NewServer(store, nil)
	req, _ := http.NewRequest("GET", "/api/metrics", nil)
	rr := httptest.NewRecorder()
	s.mux.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var resp metricsResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.False(t, resp.Snapshot.Loading)
	require.NotNil(t, resp.Snapshot.Prices.DFaithPriceEUR)
	assert.Equal(t, 0.05, *resp.Snapshot.Prices.DFaithPriceEUR)
	assert.Equal(t, 5.0, resp.Snapshot.Prices.DInvestPriceEUR)
	require.NotNil(t, resp.Snapshot.ActiveUsers)
	assert.Equal(t, 774, *resp.Snapshot.ActiveUsers)
	assert.Len(t, resp.History, 1)
	assert.True(t, resp.Running)
}

func TestHandleMetrics_BeforeFirstRefresh(t *testing.T) {
	s := NewServer(metrics.NewStore(stubSource{}, metrics.Opts{}), nil)
	rr := httptest.NewRecorder()
	s.mux.ServeHTTP(rr, httptest.NewRequest("GET", "/api/metrics", nil))

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, false, resp["running"])
	snap := resp["snapshot"].(map[string]interface{})
	assert.Equal(t, true, snap["loading"])
	assert.Nil(t, snap["active_users"])
	prices := snap["prices"].(map[string]interface{})
	assert.Nil(t, prices["dfaith_price_eur"])
	assert.Equal(t, 5.0, prices["dinvest_price_eur"])
}

func TestHandleMetrics_MethodNotAllowed(t *testing.T) {
	s := NewServer(metrics.NewStore(stubSource{}, metrics.Opts{}), nil)
	rr := httptest.NewRecorder()
	s.mux.ServeHTTP(rr, httptest.NewRequest("POST", "/api/metrics", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}

func TestHandleHealth(t *testing.T) {
	store := metrics.NewStore(stubSource{}, metrics.Opts{})
	s := NewServer(store, nil)

	rr := httptest.NewRecorder()
	s.mux.ServeHTTP(rr, httptest.NewRequest("GET", "/healthz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)

	stop := store.Start(context.Background(), time.Hour)
	defer stop()
	rr = httptest.NewRecorder()
	s.mux.ServeHTTP(rr, httptest.NewRequest("GET", "/healthz", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestHandleWS(t *testing.T) {
	store := metrics.NewStore(stubSource{}, metrics.Opts{})
	s := NewServer(store, nil)
	server := httptest.NewServer(s.mux)
	defer server.Close()

	sub := store.Subscribe()
	go s.listenToStore(sub)
	defer store.Unsubscribe(sub)

	u := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws"

	ws, _, err := websocket.DefaultDialer.Dial(u, nil)
	require.NoError(t, err)
	defer func() { _ = ws.Close() }()

	// Read initial state
	var msg map[string]interface{}
	require.NoError(t, ws.ReadJSON(&msg))
	assert.Equal(t, "initial", msg["type"])

	stop := store.Start(context.Background(), time.Hour)
	defer stop()

	_ = ws.SetReadDeadline(time.Now().Add(2 * time.Second))
	seen := map[string]bool{}
	for !seen[string(metrics.EventLoaded)] {
		var ev metrics.Event
		require.NoError(t, ws.ReadJSON(&ev))
		seen[string(ev.Type)] = true
	}
	assert.True(t, seen[string(metrics.EventPricesUpdated)])
}

func TestStart_ShutsDownOnCancel(t *testing.T) {
	s := NewServer(metrics.NewStore(stubSource{}, metrics.Opts{}), nil)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Start(ctx, 0) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("server did not shut down")
	}
}
