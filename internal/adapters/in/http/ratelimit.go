package http

import (
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// SlidingWindowStore is an echo RateLimiterStore that admits at most limit
// requests per identifier within any window-long interval.
type SlidingWindowStore struct {
	limit  int
	window time.Duration
	now    func() time.Time

	mu   sync.Mutex
	hits map[string][]time.Time
}

var _ middleware.RateLimiterStore = (*SlidingWindowStore)(nil)

func NewSlidingWindowStore(limit int, window time.Duration, now func() time.Time) *SlidingWindowStore {
	if now == nil {
		now = time.Now
	}
	return &SlidingWindowStore{
		limit:  limit,
		window: window,
		now:    now,
		hits:   make(map[string][]time.Time),
	}
}

// Allow records a hit for identifier unless the window is already full.
// Rejected requests are not recorded.
func (s *SlidingWindowStore) Allow(identifier string) (bool, error) {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	recent := prune(s.hits[identifier], now.Add(-s.window))
	if len(recent) >= s.limit {
		s.hits[identifier] = recent
		return false, nil
	}
	s.hits[identifier] = append(recent, now)
	return true, nil
}

// Sweep forgets identifiers with no hit inside the window and reports how many
// are still tracked.
func (s *SlidingWindowStore) Sweep(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := now.Add(-s.window)
	for id, hits := range s.hits {
		recent := prune(hits, cutoff)
		if len(recent) == 0 {
			delete(s.hits, id)
			continue
		}
		s.hits[id] = recent
	}
	return len(s.hits)
}

// prune drops hits at or before cutoff. hits is sorted oldest first.
func prune(hits []time.Time, cutoff time.Time) []time.Time {
	i := 0
	for i < len(hits) && !hits[i].After(cutoff) {
		i++
	}
	if i == 0 {
		return hits
	}
	return append(hits[:0], hits[i:]...)
}

// RateLimits are requests per minute per client address.
type RateLimits struct {
	Create int
	Update int
	Read   int
}

// Limiters holds one store per endpoint class so the maintenance job can sweep them.
type Limiters struct {
	Create *SlidingWindowStore
	Update *SlidingWindowStore
	Read   *SlidingWindowStore
}

func NewLimiters(limits RateLimits, now func() time.Time) Limiters {
	return Limiters{
		Create: NewSlidingWindowStore(limits.Create, time.Minute, now),
		Update: NewSlidingWindowStore(limits.Update, time.Minute, now),
		Read:   NewSlidingWindowStore(limits.Read, time.Minute, now),
	}
}

// Sweep sweeps every store and returns the number of identifiers still tracked.
func (l Limiters) Sweep(now time.Time) int {
	return l.Create.Sweep(now) + l.Update.Sweep(now) + l.Read.Sweep(now)
}

func rateLimit(store middleware.RateLimiterStore) echo.MiddlewareFunc {
	return middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Store: store,
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		ErrorHandler: func(_ echo.Context, err error) error {
			return echo.NewHTTPError(http.StatusForbidden, "could not identify client").SetInternal(err)
		},
		DenyHandler: func(_ echo.Context, _ string, _ error) error {
			return echo.NewHTTPError(http.StatusTooManyRequests, msgTooManyRequests)
		},
	})
}
