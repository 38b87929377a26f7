package trending

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/nao1215/trendwatch/internal/model"
)

// DefaultCacheTTL is how long a fetched payload is considered fresh.
const DefaultCacheTTL = time.Hour

// Origin identifies which branch of the cache state machine produced a
// Result. Exposing the branch lets callers and tests assert recovery
// behavior instead of only inspecting the returned data.
type Origin int

const (
	// OriginCache means the slot held a payload younger than the TTL
	// and no network access occurred.
	OriginCache Origin = iota

	// OriginFresh means a fetch succeeded and the slot was overwritten.
	OriginFresh

	// OriginStale means the fetch failed and an expired (or otherwise
	// superseded) payload was served without refreshing its timestamp.
	OriginStale

	// OriginStatic means the fetch failed with an empty slot and the
	// fixed example dataset was served.
	OriginStatic
)

// String returns a short human-readable branch name for logging.
func (o Origin) String() string {
	switch o {
	case OriginCache:
		return "cache"
	case OriginFresh:
		return "fresh"
	case OriginStale:
		return "stale"
	case OriginStatic:
		return "static"
	default:
		return "unknown"
	}
}

// Result is the outcome of a Guard.Projects call: the payload plus the
// state-machine branch that produced it.
type Result struct {
	// Projects is the ordered record sequence. Never nil.
	Projects []model.Project

	// Origin is the branch that fired.
	Origin Origin
}

// Fetcher retrieves the current trending records from the source.
// *Client satisfies this; tests substitute stubs.
type Fetcher interface {
	FetchTrending(ctx context.Context) ([]model.Project, error)
}

// Guard is the time-boxed single-slot cache wrapping the fetch+extract
// step. Exactly one Guard exists per process, constructed at startup and
// passed to whichever component needs it.
//
// State machine, evaluated in order on each Projects call:
//  1. Hit: slot populated and younger than TTL -> cached payload
//  2. Fetch: attempt network retrieval, store and return on success
//  3. Stale fallback: fetch failed, slot populated -> stale payload,
//     fetchedAt untouched so the next call retries the fetch
//  4. Static fallback: fetch failed, slot empty -> fixed example dataset
type Guard struct {
	// mu protects the slot fields below.
	mu sync.Mutex

	// payload is the cached record sequence. nil means empty slot.
	payload []model.Project

	// fetchedAt is when payload was stored. Zero means empty slot.
	// Invariant: payload is non-nil exactly when fetchedAt is non-zero.
	fetchedAt time.Time

	// ttl is the freshness window for the slot.
	ttl time.Duration

	// fetcher performs the network retrieval on cache miss.
	fetcher Fetcher

	// group coalesces concurrent cache-miss fetches so overlapping
	// external calls trigger at most one request in flight.
	group singleflight.Group

	// logger records fallback decisions.
	logger *slog.Logger

	// now is the clock, injectable for tests.
	now func() time.Time
}

// GuardOption configures a Guard.
type GuardOption func(*Guard)

// WithTTL overrides the cache freshness window.
func WithTTL(ttl time.Duration) GuardOption {
	return func(g *Guard) {
		g.ttl = ttl
	}
}

// WithClock replaces the clock. Tests use this to step through TTL
// boundaries without sleeping.
func WithClock(now func() time.Time) GuardOption {
	return func(g *Guard) {
		g.now = now
	}
}

// NewGuard creates a Guard around the given fetcher with an empty slot.
func NewGuard(fetcher Fetcher, logger *slog.Logger, opts ...GuardOption) *Guard {
	g := &Guard{
		ttl:     DefaultCacheTTL,
		fetcher: fetcher,
		logger:  logger,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Projects returns the current trending records, never an error.
// See the Guard type documentation for the state machine.
func (g *Guard) Projects(ctx context.Context) Result {
	g.mu.Lock()
	if !g.fetchedAt.IsZero() && g.now().Sub(g.fetchedAt) < g.ttl {
		payload := g.payload
		g.mu.Unlock()
		return Result{Projects: payload, Origin: OriginCache}
	}
	g.mu.Unlock()

	// Single key: there is only one trending page, so every miss
	// coalesces onto the same in-flight fetch.
	v, err, _ := g.group.Do("trending", func() (any, error) {
		projects, err := g.fetcher.FetchTrending(ctx)
		if err != nil {
			return nil, err
		}
		g.mu.Lock()
		g.payload = projects
		g.fetchedAt = g.now()
		g.mu.Unlock()
		return projects, nil
	})
	if err == nil {
		projects := v.([]model.Project)
		g.logger.Info("trending fetch succeeded", "projects", len(projects))
		return Result{Projects: projects, Origin: OriginFresh}
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	if !g.fetchedAt.IsZero() {
		// fetchedAt deliberately untouched: the stale payload must not
		// be promoted to fresh, or the retry would never happen.
		g.logger.Warn("trending fetch failed, serving stale cache",
			"error", err,
			"age", g.now().Sub(g.fetchedAt),
		)
		return Result{Projects: g.payload, Origin: OriginStale}
	}

	g.logger.Warn("trending fetch failed with empty cache, serving static fallback", "error", err)
	return Result{Projects: StaticFallback(), Origin: OriginStatic}
}

// ClearCache resets the slot to empty. The next Projects call will fetch.
func (g *Guard) ClearCache() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.payload = nil
	g.fetchedAt = time.Time{}
}

// Status reports the current slot state without mutating it.
// An empty slot reports zero age and is considered expired.
func (g *Guard) Status() model.CacheStatus {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.fetchedAt.IsZero() {
		return model.CacheStatus{IsExpired: true}
	}

	age := g.now().Sub(g.fetchedAt)
	lastFetch := g.fetchedAt
	return model.CacheStatus{
		HasCache:  true,
		LastFetch: &lastFetch,
		CacheAge:  age.Milliseconds(),
		IsExpired: age >= g.ttl,
	}
}
