package services

import (
	"sync"
	"time"
)

const ThrottleCooldownCapSeconds = 30

type throttleEntry struct {
	failCount     int
	lastFailedAt  time.Time
	cooldownUntil time.Time
}

// LoginThrottle slows down password guessing per key: every failed attempt
// sets a cooldown of min(30, 2^failCount) seconds, a success resets it.
type LoginThrottle struct {
	mu      sync.Mutex
	entries map[string]*throttleEntry
	now     func() time.Time
}

func NewLoginThrottle() *LoginThrottle {
	return &LoginThrottle{entries: make(map[string]*throttleEntry), now: time.Now}
}

// WaitSeconds returns how many seconds the caller must wait before trying again (0 if no cooldown).
func (t *LoginThrottle) WaitSeconds(key string) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	e, ok := t.entries[key]
	if !ok {
		return 0
	}
	now := t.now()
	if now.Before(e.cooldownUntil) {
		return int(e.cooldownUntil.Sub(now).Seconds()) + 1 // round up
	}
	return 0
}

// RecordFailed increments the fail count and extends the cooldown.
func (t *LoginThrottle) RecordFailed(key string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	e, ok := t.entries[key]
	if !ok {
		e = &throttleEntry{}
		t.entries[key] = e
	}
	now := t.now()
	e.failCount++
	e.lastFailedAt = now
	e.cooldownUntil = now.Add(time.Duration(CooldownSecondsForFailCount(e.failCount)) * time.Second)
}

func (t *LoginThrottle) RecordSuccess(key string) {
	t.mu.Lock()
	delete(t.entries, key)
	t.mu.Unlock()
}

// Cleanup forgets entries whose last failure is older than maxAge.
func (t *LoginThrottle) Cleanup(maxAge time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()
	cutoff := t.now().Add(-maxAge)
	for k, e := range t.entries {
		if e.lastFailedAt.Before(cutoff) {
			delete(t.entries, k)
		}
	}
}

// CooldownSecondsForFailCount returns min(30, 2^failCount). Counts at or
// past the cap are never shifted, so large counts cannot overflow.
func CooldownSecondsForFailCount(failCount int) int {
	if failCount < 0 {
		failCount = 0
	}
	if failCount >= 5 {
		return ThrottleCooldownCapSeconds
	}
	s := 1 << failCount
	if s > ThrottleCooldownCapSeconds {
		return ThrottleCooldownCapSeconds
	}
	return s
}
