// Package ratelimit throttles invitation token verification so tokens
// cannot be brute forced.
package ratelimit

import (
	"crypto/sha256"
	"encoding/hex"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"
)

// Clock interface for testing time-dependent behavior.
type Clock interface {
	Now() time.Time
}

// realClock implements Clock using the system time.
type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

// Config holds rate limit configuration.
type Config struct {
	MaxAttempts  int           // Failed attempts per invitation before lockout (default: 5)
	Lockout      time.Duration // Lockout duration after max attempts (default: 15m)
	MaxIPPerHour int           // Max attempts per IP per hour (default: 30)

	// Clock for testing (nil uses real time)
	Clock Clock
}

// DefaultConfig returns production-ready defaults.
func DefaultConfig() *Config {
	return &Config{
		MaxAttempts:  5,
		Lockout:      15 * time.Minute,
		MaxIPPerHour: 30,
	}
}

// LimitResult contains the result of a rate limit check.
type LimitResult struct {
	Allowed    bool
	RetryAfter time.Duration
	Reason     string // For logging
}

// entry tracks attempt counts and timestamps.
type entry struct {
	count    int
	firstAt  time.Time // First attempt in window
	lastAt   time.Time // Most recent attempt
	lockedAt time.Time // When lockout started (zero if not locked)
}

// Limiter tracks failed invitation accepts per invitation and per IP.
type Limiter struct {
	config *Config
	clock  Clock
	mu     sync.Mutex
	// Keyed by hash of invitation id or IP
	byInvite map[string]*entry
	byIP     map[string]*entry
	sweepAt  time.Time
}

// New creates a new rate limiter with the given config.
func New(cfg *Config) *Limiter {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	clock := cfg.Clock
	if clock == nil {
		clock = realClock{}
	}
	return &Limiter{
		config:   cfg,
		clock:    clock,
		byInvite: make(map[string]*entry),
		byIP:     make(map[string]*entry),
	}
}

// Check reports whether an accept attempt for the invitation is allowed.
// Does NOT record the attempt - call RecordFailure after a token mismatch.
func (l *Limiter) Check(invitationID, ip string) LimitResult {
	now := l.clock.Now()
	inviteKey := hashKey("invite:", invitationID)
	ipKey := hashKey("ip:", ip)

	l.mu.Lock()
	defer l.mu.Unlock()
	l.sweep(now)

	if e := l.byInvite[inviteKey]; e != nil {
		if !e.lockedAt.IsZero() {
			elapsed := now.Sub(e.lockedAt)
			if elapsed < l.config.Lockout {
				return LimitResult{
					Allowed:    false,
					RetryAfter: l.config.Lockout - elapsed,
					Reason:     "lockout",
				}
			}
		} else if e.count >= l.config.MaxAttempts {
			return LimitResult{
				Allowed:    false,
				RetryAfter: l.config.Lockout,
				Reason:     "max_attempts",
			}
		}
	}

	if e := l.byIP[ipKey]; e != nil {
		if now.Sub(e.firstAt) < time.Hour && e.count >= l.config.MaxIPPerHour {
			return LimitResult{
				Allowed:    false,
				RetryAfter: time.Hour - now.Sub(e.firstAt),
				Reason:     "ip_hourly_limit",
			}
		}
	}

	return LimitResult{Allowed: true}
}

// RecordFailure records a failed accept attempt. Returns true if the
// invitation just entered lockout.
func (l *Limiter) RecordFailure(invitationID, ip string) (lockedOut bool) {
	now := l.clock.Now()
	inviteKey := hashKey("invite:", invitationID)
	ipKey := hashKey("ip:", ip)

	l.mu.Lock()
	defer l.mu.Unlock()

	e := l.byInvite[inviteKey]
	switch {
	case e == nil:
		l.byInvite[inviteKey] = &entry{count: 1, firstAt: now, lastAt: now}
	case !e.lockedAt.IsZero() && now.Sub(e.lockedAt) >= l.config.Lockout:
		// Lockout expired, reset
		l.byInvite[inviteKey] = &entry{count: 1, firstAt: now, lastAt: now}
	default:
		e.count++
		e.lastAt = now
		if e.count >= l.config.MaxAttempts && e.lockedAt.IsZero() {
			e.lockedAt = now
			lockedOut = true
		}
	}

	e = l.byIP[ipKey]
	if e == nil || now.Sub(e.firstAt) >= time.Hour {
		l.byIP[ipKey] = &entry{count: 1, firstAt: now, lastAt: now}
	} else {
		e.count++
		e.lastAt = now
	}

	return lockedOut
}

// Reset clears the failure history for an invitation after a successful
// accept.
func (l *Limiter) Reset(invitationID string) {
	inviteKey := hashKey("invite:", invitationID)
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.byInvite, inviteKey)
}

// sweep drops stale entries. Runs at most once per five minutes and must be
// called with the mutex held.
func (l *Limiter) sweep(now time.Time) {
	if now.Sub(l.sweepAt) < 5*time.Minute {
		return
	}
	l.sweepAt = now

	maxAge := l.config.Lockout + time.Hour
	for k, e := range l.byInvite {
		if now.Sub(e.lastAt) > maxAge {
			delete(l.byInvite, k)
		}
	}
	for k, e := range l.byIP {
		if now.Sub(e.lastAt) > time.Hour {
			delete(l.byIP, k)
		}
	}
}

func hashKey(prefix, value string) string {
	hash := sha256.Sum256([]byte(value))
	return prefix + hex.EncodeToString(hash[:8])
}

// ClientIP extracts the client IP from a request. X-Forwarded-For is ignored
// so clients cannot spoof their way past per-IP limits.
func ClientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return strings.TrimSpace(r.RemoteAddr)
	}
	return host
}
