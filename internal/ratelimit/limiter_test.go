package ratelimit

import (
	"fmt"
	"net/http/httptest"
	"sync"
	"testing"
	"time"
)

// mockClock is a controllable clock for testing.
type mockClock struct {
	mu  sync.Mutex
	now time.Time
}

func newMockClock() *mockClock {
	return &mockClock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *mockClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *mockClock) advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newTestLimiter(clock Clock) *Limiter {
	cfg := DefaultConfig()
	cfg.Clock = clock
	return New(cfg)
}

func TestAllowsFreshInvitation(t *testing.T) {
	l := newTestLimiter(newMockClock())
	result := l.Check("inv-1", "10.0.0.1")
	if !result.Allowed {
		t.Fatalf("fresh invitation blocked: %+v", result)
	}
}

func TestLockoutAfterMaxAttempts(t *testing.T) {
	clock := newMockClock()
	l := newTestLimiter(clock)

	var lockedOut bool
	for i := 0; i < DefaultConfig().MaxAttempts; i++ {
		lockedOut = l.RecordFailure("inv-1", "10.0.0.1")
	}
	if !lockedOut {
		t.Fatal("expected lockout on final attempt")
	}

	result := l.Check("inv-1", "10.0.0.1")
	if result.Allowed {
		t.Fatal("locked invitation allowed")
	}
	if result.Reason != "lockout" {
		t.Errorf("reason = %q, want lockout", result.Reason)
	}
	if result.RetryAfter <= 0 {
		t.Errorf("RetryAfter = %v, want positive", result.RetryAfter)
	}

	// A different invitation from the same IP is still fine.
	if other := l.Check("inv-2", "10.0.0.1"); !other.Allowed {
		t.Errorf("unrelated invitation blocked: %+v", other)
	}
}

func TestLockoutExpires(t *testing.T) {
	clock := newMockClock()
	l := newTestLimiter(clock)

	for i := 0; i < DefaultConfig().MaxAttempts; i++ {
		l.RecordFailure("inv-1", "10.0.0.1")
	}
	if l.Check("inv-1", "10.0.0.1").Allowed {
		t.Fatal("expected lockout")
	}

	clock.advance(DefaultConfig().Lockout + time.Second)
	if !l.Check("inv-1", "10.0.0.1").Allowed {
		t.Fatal("lockout did not expire")
	}
}

func TestResetClearsFailures(t *testing.T) {
	clock := newMockClock()
	l := newTestLimiter(clock)

	for i := 0; i < DefaultConfig().MaxAttempts; i++ {
		l.RecordFailure("inv-1", "10.0.0.1")
	}
	l.Reset("inv-1")

	if !l.Check("inv-1", "10.0.0.1").Allowed {
		t.Fatal("reset invitation still blocked")
	}
}

func TestIPHourlyLimit(t *testing.T) {
	clock := newMockClock()
	l := newTestLimiter(clock)

	// Spread failures across invitations so only the IP counter trips.
	for i := 0; i < DefaultConfig().MaxIPPerHour; i++ {
		l.RecordFailure(fmt.Sprintf("inv-%d", i), "10.0.0.9")
		clock.advance(time.Second)
	}

	result := l.Check("fresh-inv", "10.0.0.9")
	if result.Allowed {
		t.Fatal("IP over hourly limit allowed")
	}
	if result.Reason != "ip_hourly_limit" {
		t.Errorf("reason = %q, want ip_hourly_limit", result.Reason)
	}

	clock.advance(time.Hour)
	if !l.Check("fresh-inv", "10.0.0.9").Allowed {
		t.Fatal("IP window did not roll over")
	}
}

func TestClientIP(t *testing.T) {
	r := httptest.NewRequest("POST", "/api/v1/invitations/accept", nil)
	r.RemoteAddr = "203.0.113.7:52100"
	if got := ClientIP(r); got != "203.0.113.7" {
		t.Errorf("ClientIP = %q", got)
	}

	r.Header.Set("X-Forwarded-For", "198.51.100.1")
	if got := ClientIP(r); got != "203.0.113.7" {
		t.Errorf("ClientIP with XFF = %q, want remote addr", got)
	}
}
