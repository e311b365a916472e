package cache

import (
	"sync"
	"testing"
	"time"

	"gocardlessosm/internal/core"
)

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

func TestLRUCacheEvictsOldest(t *testing.T) {
	var evicted []string
	c := NewLRUCache[int](2, time.Hour, WithEvictHook(func(k string) { evicted = append(evicted, k) }))

	c.Set("a", 1)
	c.Set("b", 2)
	if _, ok := c.Get("a"); !ok {
		t.Fatalf("expected a")
	}
	c.Set("c", 3)

	if _, ok := c.Get("b"); ok {
		t.Fatalf("b should have been evicted")
	}
	if v, ok := c.Get("a"); !ok || v != 1 {
		t.Fatalf("expected a=1, got %v %v", v, ok)
	}
	if len(evicted) != 1 || evicted[0] != "b" {
		t.Fatalf("expected eviction of b, got %v", evicted)
	}
	if c.Size() != 2 {
		t.Fatalf("expected size 2, got %d", c.Size())
	}
}

func TestLRUCacheSlidingTTL(t *testing.T) {
	clock := &fakeClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	c := NewLRUCache[string](10, time.Minute, WithClock(clock.Now))

	c.Set("k", "v")
	clock.Advance(50 * time.Second)
	if _, ok := c.Get("k"); !ok {
		t.Fatalf("expected hit before expiry")
	}
	clock.Advance(50 * time.Second)
	if _, ok := c.Get("k"); !ok {
		t.Fatalf("read should have refreshed expiry")
	}
	clock.Advance(2 * time.Minute)
	if _, ok := c.Get("k"); ok {
		t.Fatalf("expected miss after expiry")
	}
}

func TestLRUCacheCleanExpired(t *testing.T) {
	clock := &fakeClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	c := NewLRUCache[int](10, time.Minute, WithClock(clock.Now))

	c.Set("old1", 1)
	c.Set("old2", 2)
	clock.Advance(30 * time.Second)
	c.Set("new", 3)
	clock.Advance(45 * time.Second)

	if n := c.CleanExpired(); n != 2 {
		t.Fatalf("expected 2 removed, got %d", n)
	}
	if c.Size() != 1 {
		t.Fatalf("expected 1 left, got %d", c.Size())
	}
}

func TestSessionsReplaceReport(t *testing.T) {
	s := NewSessions(4, time.Hour, nil)
	id := NewID()
	if !ValidID(id) {
		t.Fatalf("generated id %q should be valid", id)
	}

	s.Store(id, core.Report{Transactions: 1})
	s.Store(id, core.Report{Transactions: 2})

	r, ok := s.Load(id)
	if !ok || r.Transactions != 2 {
		t.Fatalf("expected latest report, got %+v %v", r, ok)
	}
	if s.Size() != 1 {
		t.Fatalf("expected one session, got %d", s.Size())
	}

	s.Forget(id)
	if _, ok := s.Load(id); ok {
		t.Fatalf("expected session to be gone")
	}
	if ValidID("not-a-session") {
		t.Fatalf("garbage id must be invalid")
	}
}

func TestSessionsExpireThroughCache(t *testing.T) {
	clock := &fakeClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	var reports Cache[core.Report] = NewLRUCache[core.Report](4, time.Minute, WithClock(clock.Now))
	s := &Sessions{reports: reports}

	id := NewID()
	s.Store(id, core.Report{Transactions: 3})
	clock.Advance(2 * time.Minute)

	if n := s.CleanExpired(); n != 1 {
		t.Fatalf("expected 1 expired session, got %d", n)
	}
	if _, ok := s.Load(id); ok {
		t.Fatalf("expired session should be gone")
	}
	if reports.Size() != 0 {
		t.Fatalf("expected empty cache, got %d", reports.Size())
	}
}

func TestManagerCleansRegisteredCaches(t *testing.T) {
	clock := &fakeClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	c := NewLRUCache[int](10, time.Minute, WithClock(clock.Now))
	c.Set("a", 1)
	clock.Advance(2 * time.Minute)

	m := NewManager(nil)
	m.Register("test", c)
	if n := m.CleanNow(); n != 1 {
		t.Fatalf("expected 1 removed, got %d", n)
	}

	m.StartCleanup(time.Hour)
	m.Stop()
	m.Stop()
}
