// Package keyhealth tracks availability and remaining quota for the
// configured scoring-service credentials. The cache is process-wide shared
// state: snapshots are served from memory, refreshed lazily once stale, and
// concurrent refreshes collapse into a single network pass.
package keyhealth

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"

	"github.com/alokemajumder/privacyhub-sub000/internal/openrouter"
	"github.com/alokemajumder/privacyhub-sub000/internal/scoring"
)

const (
	// DefaultTTL is how long a snapshot stays fresh before the next read
	// triggers a refresh.
	DefaultTTL = 4 * time.Hour
	// rateLimitCooldown is how long a credential reported as rate limited
	// is withheld from scoring before being offered again.
	rateLimitCooldown = 10 * time.Minute
	// refreshKey collapses all concurrent refresh calls into one flight
	refreshKey = "refresh-all"
)

// Overall health classifications for the credential pool
const (
	HealthOperational = "operational"
	HealthDegraded    = "degraded"
	HealthOutage      = "outage"
)

// Status is the cached availability snapshot for one credential. It never
// carries the credential value itself.
type Status struct {
	// Name is the credential's display label
	Name string `json:"name"`
	// Available reports whether the last status check succeeded
	Available bool `json:"isAvailable"`
	// Credits is the remaining spend limit; nil means unlimited
	Credits *float64 `json:"credits"`
	// RateLimitRemaining is the remaining request allowance in the current window
	RateLimitRemaining float64 `json:"rateLimitRemaining"`
	// LastChecked is when this entry was last refreshed
	LastChecked time.Time `json:"lastChecked"`
	// Error holds the failure message when the last check did not succeed
	Error string `json:"error,omitempty"`
}

// StatusClient is the subset of the scoring-service client the cache needs
type StatusClient interface {
	GetKeyStatus(ctx context.Context, apiKey string) (*openrouter.KeyStatus, error)
}

// Cache maintains per-credential status snapshots with TTL-based refresh
type Cache struct {
	client      StatusClient
	credentials []scoring.Credential
	ttl         time.Duration
	now         func() time.Time

	group singleflight.Group

	mu          sync.RWMutex
	statuses    map[string]Status
	refreshedAt time.Time
	cooldowns   map[string]time.Time
}

// CacheOption configures the Cache
type CacheOption func(*Cache)

// WithTTL overrides the snapshot freshness window
func WithTTL(ttl time.Duration) CacheOption {
	return func(c *Cache) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

// WithClock substitutes the time source, for tests
func WithClock(now func() time.Time) CacheOption {
	return func(c *Cache) {
		if now != nil {
			c.now = now
		}
	}
}

// NewCache creates a credential health cache over the given credentials
func NewCache(client StatusClient, credentials []scoring.Credential, opts ...CacheOption) (*Cache, error) {
	if client == nil {
		return nil, ErrNilClient
	}

	if len(credentials) == 0 {
		return nil, ErrNoCredentialsConfigured
	}

	cache := &Cache{
		client:      client,
		credentials: credentials,
		ttl:         DefaultTTL,
		now:         time.Now,
		statuses:    map[string]Status{},
		cooldowns:   map[string]time.Time{},
	}

	for _, opt := range opts {
		opt(cache)
	}

	return cache, nil
}

// GetAll returns the current snapshot for every credential, refreshing first
// if the cache is empty or stale. The returned map is a copy.
func (c *Cache) GetAll(ctx context.Context) (map[string]Status, error) {
	if c.IsStale() {
		if err := c.RefreshAll(ctx); err != nil {
			return nil, err
		}
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	snapshot := make(map[string]Status, len(c.statuses))
	for name, status := range c.statuses {
		snapshot[name] = status
	}

	return snapshot, nil
}

// IsStale reports whether the snapshot is empty or older than the TTL
func (c *Cache) IsStale() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if len(c.statuses) == 0 {
		return true
	}

	return c.now().Sub(c.refreshedAt) > c.ttl
}

// RefreshAll queries the scoring service's key-status endpoint for every
// credential and replaces the snapshot. A per-credential failure marks that
// credential unavailable without aborting the others. Concurrent callers
// share one in-flight refresh.
func (c *Cache) RefreshAll(ctx context.Context) error {
	_, err, _ := c.group.Do(refreshKey, func() (any, error) {
		return nil, c.refreshAll(ctx)
	})

	return err
}

func (c *Cache) refreshAll(ctx context.Context) error {
	statuses := make(map[string]Status, len(c.credentials))

	for _, cred := range c.credentials {
		if err := ctx.Err(); err != nil {
			return err
		}

		status := Status{
			Name:        cred.Name,
			LastChecked: c.now(),
		}

		keyStatus, err := c.client.GetKeyStatus(ctx, cred.Key)
		if err != nil {
			log.Warn().Err(err).Str("credential", cred.Name).Msg("credential status check failed")

			status.Error = err.Error()
		} else {
			status.Available = true
			status.Credits = keyStatus.LimitRemaining
			status.RateLimitRemaining = float64(keyStatus.RateLimitRequests)
		}

		statuses[cred.Name] = status
	}

	c.mu.Lock()
	c.statuses = statuses
	c.refreshedAt = c.now()
	c.mu.Unlock()

	log.Debug().Int("credentials", len(statuses)).Msg("credential health snapshot refreshed")

	return nil
}

// Credentials returns the credentials currently usable for scoring, in
// configuration order: available per the latest snapshot and not inside a
// rate-limit cooldown. It refreshes lazily like GetAll.
func (c *Cache) Credentials(ctx context.Context) ([]scoring.Credential, error) {
	statuses, err := c.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	now := c.now()

	c.mu.RLock()
	defer c.mu.RUnlock()

	usable := make([]scoring.Credential, 0, len(c.credentials))

	for _, cred := range c.credentials {
		if until, limited := c.cooldowns[cred.Name]; limited && now.Before(until) {
			continue
		}

		if status, ok := statuses[cred.Name]; ok && !status.Available {
			continue
		}

		usable = append(usable, cred)
	}

	return usable, nil
}

// MarkRateLimited withholds a credential from scoring for the cooldown window
func (c *Cache) MarkRateLimited(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.cooldowns[name] = c.now().Add(rateLimitCooldown)

	log.Info().Str("credential", name).Dur("cooldown", rateLimitCooldown).Msg("credential placed in rate-limit cooldown")
}
