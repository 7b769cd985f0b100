// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"
)

// RateLimiter counts attempts per client IP over a sliding window. The
// admin unlock endpoint uses it to slow down password guessing.
type RateLimiter struct {
	mu       sync.Mutex
	attempts map[string][]time.Time // oldest first
	limit    int
	window   time.Duration
	now      func() time.Time

	stopCh chan struct{}
	stop   sync.Once
}

// NewRateLimiter allows limit attempts per window and per IP. A background
// sweep drops idle clients once per window.
func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	rl := &RateLimiter{
		attempts: make(map[string][]time.Time),
		limit:    limit,
		window:   window,
		now:      time.Now,
		stopCh:   make(chan struct{}),
	}
	go rl.sweepLoop()
	return rl
}

// Stop ends the background sweep. Safe to call more than once.
func (rl *RateLimiter) Stop() {
	rl.stop.Do(func() { close(rl.stopCh) })
}

// reserve records an attempt for key. When the window is full it records
// nothing and returns how long until the oldest attempt expires.
func (rl *RateLimiter) reserve(key string) (bool, time.Duration) {
	now := rl.now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	recent := rl.prune(key, now)
	if len(recent) >= rl.limit {
		return false, recent[0].Add(rl.window).Sub(now)
	}
	rl.attempts[key] = append(recent, now)
	return true, 0
}

// prune drops expired attempts of key. Callers hold mu.
func (rl *RateLimiter) prune(key string, now time.Time) []time.Time {
	times := rl.attempts[key]
	cutoff := now.Add(-rl.window)
	n := 0
	for n < len(times) && !times[n].After(cutoff) {
		n++
	}
	times = times[n:]
	if len(times) == 0 {
		delete(rl.attempts, key)
		return nil
	}
	rl.attempts[key] = times
	return times
}

func (rl *RateLimiter) sweepLoop() {
	ticker := time.NewTicker(rl.window)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			rl.sweep()
		case <-rl.stopCh:
			return
		}
	}
}

// sweep forgets clients with no attempt inside the window.
func (rl *RateLimiter) sweep() {
	now := rl.now()
	rl.mu.Lock()
	defer rl.mu.Unlock()
	for key := range rl.attempts {
		rl.prune(key, now)
	}
}

// Middleware rejects requests over the limit with 429 and a Retry-After
// header in whole seconds.
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ok, wait := rl.reserve(clientIP(r))
		if !ok {
			w.Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(wait.Seconds()))))
			writeJSON(w, http.StatusTooManyRequests, map[string]string{
				"error": "Слишком много попыток, попробуйте позже",
			})
			return
		}
		next.ServeHTTP(w, r)
	})
}
