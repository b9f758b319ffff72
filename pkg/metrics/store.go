package metrics

import (
	"context"
	"errors"
	"sync"
	"time"

	"dfaith/pkg/models"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// DefaultInterval is the refresh cadence of the live metrics.
const DefaultInterval = 5 * time.Minute

const maxHistory = 288

var (
	ErrThrottled  = errors.New("refresh throttled")
	ErrNotRunning = errors.New("store not running")
)

// DataSource fetches prices and users in one combined refresh.
type DataSource interface {
	Refresh(ctx context.Context) models.RefreshResult
}

// SupplySource reports the token supply.
type SupplySource interface {
	FetchSupply(ctx context.Context) (models.SupplyData, error)
}

// StopFunc cancels the session returned by Start. Calling it more than once is a no-op.
type StopFunc func()

// Opts is the set of options for a new Store.
type Opts struct {
	Supply SupplySource
	Logger *zap.Logger
	// ManualRefreshEvery bounds RefreshNow; zero means once per 10s.
	ManualRefreshEvery time.Duration
	Now                func() time.Time
}

// Store holds the last good live metrics and refreshes them on an interval.
type Store struct {
	source  DataSource
	supply  SupplySource
	logger  *zap.Logger
	limiter *rate.Limiter
	now     func() time.Time

	// emitMu keeps event delivery in merge order.
	emitMu sync.Mutex

	mu          sync.RWMutex
	snapshot    models.Snapshot
	history     []models.PricePoint
	generation  uint64
	running     bool
	cancel      context.CancelFunc
	subscribers []Subscriber
}

// NewStore creates a Store in the loading state.
func NewStore(source DataSource, o Opts) *Store {
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	if o.ManualRefreshEvery <= 0 {
		o.ManualRefreshEvery = 10 * time.Second
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	return &Store{
		source:   source,
		supply:   o.Supply,
		logger:   o.Logger,
		limiter:  rate.NewLimiter(rate.Every(o.ManualRefreshEvery), 1),
		now:      o.Now,
		snapshot: models.NewSnapshot(),
	}
}

// Subscribe adds a new subscriber and returns a channel to receive events.
func (s *Store) Subscribe() Subscriber {
	s.mu.Lock()
	defer s.mu.Unlock()
	ch := make(Subscriber, 100)
	s.subscribers = append(s.subscribers, ch)
	return ch
}

// Unsubscribe removes a subscriber and closes its channel.
func (s *Store) Unsubscribe(ch Subscriber) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, sub := range s.subscribers {
		if sub == ch {
			s.subscribers = append(s.subscribers[:i], s.subscribers[i+1:]...)
			close(ch)
			break
		}
	}
}

func (s *Store) notify(event Event) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, sub := range s.subscribers {
		select {
		case sub <- event:
		default:
			s.logger.Debug("subscriber full, dropping event", zap.String("type", string(event.Type)))
		}
	}
}

// Start refreshes immediately and then every interval until ctx is done or
// the returned StopFunc (or Stop) is called. Starting again replaces the
// previous session.
func (s *Store) Start(ctx context.Context, interval time.Duration) StopFunc {
	if interval <= 0 {
		interval = DefaultInterval
	}

	s.mu.Lock()
	if s.running {
		s.stopLocked()
	}
	s.generation++
	gen := s.generation
	loopCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.running = true
	s.mu.Unlock()

	go s.pollingLoop(loopCtx, gen, interval)

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.running && s.generation == gen {
			s.stopLocked()
		}
	}
}

// Stop ends the current session. Results that arrive afterwards are dropped.
func (s *Store) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		s.stopLocked()
	}
}

func (s *Store) stopLocked() {
	s.cancel()
	s.cancel = nil
	s.running = false
	s.generation++
}

func (s *Store) pollingLoop(ctx context.Context, gen uint64, interval time.Duration) {
	s.refresh(ctx, gen)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.refresh(ctx, gen)
		case <-ctx.Done():
			return
		}
	}
}

// RefreshNow runs one refresh outside the schedule, at most once per
// ManualRefreshEvery.
func (s *Store) RefreshNow(ctx context.Context) error {
	s.mu.RLock()
	running, gen := s.running, s.generation
	s.mu.RUnlock()
	if !running {
		return ErrNotRunning
	}
	if !s.limiter.Allow() {
		return ErrThrottled
	}
	s.refresh(ctx, gen)
	return nil
}

func (s *Store) refresh(ctx context.Context, gen uint64) {
	var (
		wg     sync.WaitGroup
		res    models.RefreshResult
		supply models.SupplyData
	)
	if s.supply != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			supply, _ = s.supply.FetchSupply(ctx)
		}()
	}
	res = s.source.Refresh(ctx)
	wg.Wait()
	if s.supply != nil {
		if supply.Err != nil {
			s.logger.Warn("supply fetch failed", zap.String("source", supply.Source),
				zap.Strings("failed_rpcs", supply.FailedRPCs), zap.Error(supply.Err))
		}
		res.Supply = &supply
	}
	s.apply(gen, res)
}

// apply merges res if gen is still the live session. It reports whether the
// result was kept.
func (s *Store) apply(gen uint64, res models.RefreshResult) bool {
	s.emitMu.Lock()
	defer s.emitMu.Unlock()

	s.mu.Lock()
	if !s.running || s.generation != gen {
		s.mu.Unlock()
		s.logger.Debug("dropping refresh result from stopped session", zap.Uint64("generation", gen))
		return false
	}

	now := s.now()
	prev := s.snapshot
	next := Merge(prev, res, now)
	loaded := false
	if prev.Loading {
		next.Loading = false
		loaded = true
	}
	s.snapshot = next
	if res.Prices.Err == nil {
		s.history = append(s.history, models.PricePoint{Timestamp: now, Value: res.Prices.DFaithEUR})
		if len(s.history) > maxHistory {
			s.history = s.history[len(s.history)-maxHistory:]
		}
	}
	s.mu.Unlock()

	types, failed := changes(prev, next, res)
	for _, t := range types {
		s.notify(Event{Type: t, Data: next.Clone()})
	}
	if len(failed) > 0 {
		s.logger.Info("refresh kept previous values", zap.Strings("fields", failed))
		s.notify(Event{Type: EventRefreshFailed, Data: failed})
	}
	if loaded {
		s.notify(Event{Type: EventLoaded, Data: next.Clone()})
	}
	return true
}

// Snapshot returns a copy of the current metrics.
func (s *Store) Snapshot() models.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot.Clone()
}

// PriceHistory returns the accepted dfaith prices, oldest first.
func (s *Store) PriceHistory() []models.PricePoint {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cp := make([]models.PricePoint, len(s.history))
	copy(cp, s.history)
	return cp
}

// Running reports whether a session is active.
func (s *Store) Running() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.running
}
