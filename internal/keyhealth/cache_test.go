package keyhealth

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alokemajumder/privacyhub-sub000/internal/openrouter"
	"github.com/alokemajumder/privacyhub-sub000/internal/scoring"
)

// fakeClock is a settable time source
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.now = c.now.Add(d)
}

// stubStatusClient counts status calls per key and can fail chosen keys
type stubStatusClient struct {
	calls   sync.Map // apiKey -> *int64
	failFor map[string]error
	gate    chan struct{} // when set, Do blocks until the gate closes
}

func (s *stubStatusClient) GetKeyStatus(_ context.Context, apiKey string) (*openrouter.KeyStatus, error) {
	counter, _ := s.calls.LoadOrStore(apiKey, new(int64))
	atomic.AddInt64(counter.(*int64), 1)

	if s.gate != nil {
		<-s.gate
	}

	if err, ok := s.failFor[apiKey]; ok {
		return nil, err
	}

	remaining := 42.5

	return &openrouter.KeyStatus{
		Label:             "stub " + apiKey,
		LimitRemaining:    &remaining,
		RateLimitRequests: 100,
	}, nil
}

func (s *stubStatusClient) callCount(apiKey string) int64 {
	counter, ok := s.calls.Load(apiKey)
	if !ok {
		return 0
	}

	return atomic.LoadInt64(counter.(*int64))
}

func testCredentials() []scoring.Credential {
	return []scoring.Credential{
		{Name: "key-1", Key: "sk-first"},
		{Name: "key-2", Key: "sk-second"},
	}
}

func TestCacheLazyRefresh(t *testing.T) {
	client := &stubStatusClient{}
	clock := newFakeClock()

	cache, err := NewCache(client, testCredentials(), WithClock(clock.Now))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !cache.IsStale() {
		t.Error("empty cache should be stale")
	}

	statuses, err := cache.GetAll(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(statuses) != 2 {
		t.Fatalf("got %d statuses, want 2", len(statuses))
	}

	status := statuses["key-1"]
	if !status.Available {
		t.Error("key-1 should be available")
	}

	if status.Credits == nil || *status.Credits != 42.5 {
		t.Errorf("credits = %v, want 42.5", status.Credits)
	}

	if !status.LastChecked.Equal(clock.Now()) {
		t.Errorf("lastChecked = %v, want %v", status.LastChecked, clock.Now())
	}

	// A fresh cache serves reads without new network calls
	if _, err := cache.GetAll(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := client.callCount("sk-first"); got != 1 {
		t.Errorf("status calls for sk-first = %d, want 1", got)
	}

	// Advancing past the TTL makes the next read refresh
	clock.Advance(DefaultTTL + time.Minute)

	if !cache.IsStale() {
		t.Error("cache should be stale after TTL")
	}

	if _, err := cache.GetAll(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := client.callCount("sk-first"); got != 2 {
		t.Errorf("status calls for sk-first = %d, want 2", got)
	}
}

func TestCacheFailureIsolation(t *testing.T) {
	client := &stubStatusClient{failFor: map[string]error{"sk-first": errors.New("invalid key")}}

	cache, err := NewCache(client, testCredentials())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	statuses, err := cache.GetAll(context.Background())
	if err != nil {
		t.Fatalf("refresh should not fail on a per-credential error: %v", err)
	}

	if statuses["key-1"].Available {
		t.Error("key-1 should be unavailable")
	}

	if statuses["key-1"].Error == "" {
		t.Error("key-1 should record its error")
	}

	if !statuses["key-2"].Available {
		t.Error("key-2 should still be refreshed and available")
	}
}

func TestCacheSingleFlightRefresh(t *testing.T) {
	gate := make(chan struct{})
	client := &stubStatusClient{gate: gate}

	cache, err := NewCache(client, testCredentials())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	const callers = 8

	var wg sync.WaitGroup

	errs := make(chan error, callers)

	for i := 0; i < callers; i++ {
		wg.Add(1)

		go func() {
			defer wg.Done()

			errs <- cache.RefreshAll(context.Background())
		}()
	}

	// Let all callers pile up on the in-flight refresh, then release it
	time.Sleep(50 * time.Millisecond)
	close(gate)
	wg.Wait()
	close(errs)

	for err := range errs {
		if err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	}

	if got := client.callCount("sk-first"); got != 1 {
		t.Errorf("status calls for sk-first = %d, want 1 (single flight)", got)
	}

	if got := client.callCount("sk-second"); got != 1 {
		t.Errorf("status calls for sk-second = %d, want 1 (single flight)", got)
	}
}

func TestCacheCredentials(t *testing.T) {
	t.Run("skips unavailable credentials", func(t *testing.T) {
		client := &stubStatusClient{failFor: map[string]error{"sk-first": errors.New("invalid key")}}

		cache, err := NewCache(client, testCredentials())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		creds, err := cache.Credentials(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(creds) != 1 || creds[0].Name != "key-2" {
			t.Fatalf("credentials = %v, want only key-2", creds)
		}
	})

	t.Run("rate limit cooldown expires", func(t *testing.T) {
		client := &stubStatusClient{}
		clock := newFakeClock()

		cache, err := NewCache(client, testCredentials(), WithClock(clock.Now))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		cache.MarkRateLimited("key-1")

		creds, err := cache.Credentials(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(creds) != 1 || creds[0].Name != "key-2" {
			t.Fatalf("credentials = %v, want only key-2 during cooldown", creds)
		}

		clock.Advance(rateLimitCooldown + time.Second)

		creds, err = cache.Credentials(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(creds) != 2 {
			t.Fatalf("credentials = %v, want both after cooldown", creds)
		}
	})
}

func TestSnapshot(t *testing.T) {
	t.Run("aggregates and sorts", func(t *testing.T) {
		client := &stubStatusClient{}

		cache, err := NewCache(client, testCredentials())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		snapshot, err := cache.Snapshot(context.Background(), false)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if snapshot.TotalKeys != 2 || snapshot.AvailableKeys != 2 {
			t.Errorf("totals = %d/%d, want 2/2", snapshot.AvailableKeys, snapshot.TotalKeys)
		}

		if snapshot.TotalCredits != 85 {
			t.Errorf("totalCredits = %v, want 85", snapshot.TotalCredits)
		}

		if snapshot.TotalRateLimitRemaining != 200 {
			t.Errorf("totalRateLimitRemaining = %v, want 200", snapshot.TotalRateLimitRemaining)
		}

		if snapshot.OverallHealth != HealthOperational {
			t.Errorf("overallHealth = %q, want %q", snapshot.OverallHealth, HealthOperational)
		}

		if snapshot.Keys[0].Name != "key-1" || snapshot.Keys[1].Name != "key-2" {
			t.Errorf("keys not sorted by name: %v", snapshot.Keys)
		}
	})

	t.Run("degraded and outage", func(t *testing.T) {
		client := &stubStatusClient{failFor: map[string]error{"sk-first": errors.New("invalid key")}}

		cache, err := NewCache(client, testCredentials())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		snapshot, err := cache.Snapshot(context.Background(), false)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if snapshot.OverallHealth != HealthDegraded {
			t.Errorf("overallHealth = %q, want %q", snapshot.OverallHealth, HealthDegraded)
		}

		client.failFor["sk-second"] = errors.New("invalid key")

		snapshot, err = cache.Snapshot(context.Background(), true)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if snapshot.OverallHealth != HealthOutage {
			t.Errorf("overallHealth = %q, want %q", snapshot.OverallHealth, HealthOutage)
		}
	})

	t.Run("force refresh bypasses freshness", func(t *testing.T) {
		client := &stubStatusClient{}

		cache, err := NewCache(client, testCredentials())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if _, err := cache.Snapshot(context.Background(), false); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if _, err := cache.Snapshot(context.Background(), true); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if got := client.callCount("sk-first"); got != 2 {
			t.Errorf("status calls = %d, want 2 after forced refresh", got)
		}
	})
}
