package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/netip"
	"testing"
	"time"
)

// fakeClock is a manually advanced time source.
type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestLimiter(t *testing.T, limit int, window time.Duration) (*RateLimiter, *fakeClock) {
	t.Helper()
	clock := &fakeClock{t: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	rl := NewRateLimiter(limit, window)
	rl.now = clock.Now
	t.Cleanup(rl.Stop)
	return rl, clock
}

func TestRateLimiterSlidingWindow(t *testing.T) {
	rl, clock := newTestLimiter(t, 5, time.Minute)

	for i := 0; i < 5; i++ {
		if ok, _ := rl.reserve("198.51.100.1"); !ok {
			t.Fatalf("attempt %d should be allowed", i+1)
		}
		clock.Advance(10 * time.Second)
	}

	// Window is full: first attempt was at t=0, now is t=50s.
	ok, wait := rl.reserve("198.51.100.1")
	if ok {
		t.Fatal("sixth attempt inside the window should be refused")
	}
	if wait != 10*time.Second {
		t.Errorf("wait: got %v, want 10s", wait)
	}

	// Other clients are unaffected.
	if ok, _ := rl.reserve("198.51.100.2"); !ok {
		t.Error("a different IP should be allowed")
	}

	// Once the oldest attempt leaves the window one slot frees up.
	clock.Advance(10 * time.Second)
	if ok, _ := rl.reserve("198.51.100.1"); !ok {
		t.Error("attempt after the oldest expired should be allowed")
	}
	if ok, _ := rl.reserve("198.51.100.1"); ok {
		t.Error("only one slot should have freed up")
	}
}

func TestRateLimiterRefusalsDoNotExtendLockout(t *testing.T) {
	rl, clock := newTestLimiter(t, 1, time.Minute)

	rl.reserve("ip")
	for i := 0; i < 10; i++ {
		clock.Advance(time.Second)
		rl.reserve("ip")
	}
	clock.Advance(50 * time.Second)
	if ok, _ := rl.reserve("ip"); !ok {
		t.Error("refused attempts must not be recorded")
	}
}

func TestRateLimiterSweep(t *testing.T) {
	rl, clock := newTestLimiter(t, 5, time.Minute)

	rl.reserve("idle")
	clock.Advance(45 * time.Second)
	rl.reserve("active")
	clock.Advance(30 * time.Second)

	rl.sweep()

	rl.mu.Lock()
	_, idle := rl.attempts["idle"]
	_, active := rl.attempts["active"]
	rl.mu.Unlock()
	if idle {
		t.Error("idle client should be forgotten")
	}
	if !active {
		t.Error("client with a recent attempt should be kept")
	}
}

func TestRateLimiterMiddleware(t *testing.T) {
	rl, clock := newTestLimiter(t, 2, time.Minute)
	handler := rl.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	unlock := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/admin/unlock", nil)
		req.RemoteAddr = "192.0.2.10:50000"
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		return rr
	}

	unlock()
	clock.Advance(500 * time.Millisecond)
	if rr := unlock(); rr.Code != http.StatusOK {
		t.Fatalf("second attempt: got %d", rr.Code)
	}

	rr := unlock()
	if rr.Code != http.StatusTooManyRequests {
		t.Fatalf("third attempt: got %d, want 429", rr.Code)
	}
	if got := rr.Header().Get("Retry-After"); got != "60" {
		t.Errorf("Retry-After: got %q, want 60", got)
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/json; charset=utf-8" {
		t.Errorf("content type: got %q", ct)
	}
}

func TestRateLimiterStopTwice(t *testing.T) {
	rl := NewRateLimiter(1, time.Second)
	rl.Stop()
	rl.Stop()
}

func TestRateLimiterIgnoresSpoofedForwardedFor(t *testing.T) {
	rl, _ := newTestLimiter(t, 5, time.Minute)
	handler := RealIP(nil)(rl.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})))

	passed := 0
	for i := range 50 {
		req := httptest.NewRequest(http.MethodPost, "/api/admin/unlock", nil)
		req.RemoteAddr = "198.51.100.9:40000"
		req.Header.Set("X-Forwarded-For", fmt.Sprintf("203.0.113.%d", i))
		req.Header.Set("X-Real-IP", fmt.Sprintf("192.0.2.%d", i))
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		if rr.Code == http.StatusOK {
			passed++
		}
	}
	if passed != 5 {
		t.Errorf("%d of 50 attempts passed, want 5", passed)
	}
}

func TestRateLimiterBehindTrustedProxy(t *testing.T) {
	rl, _ := newTestLimiter(t, 1, time.Minute)
	trusted := []netip.Prefix{netip.MustParsePrefix("10.0.0.0/8")}
	handler := RealIP(trusted)(rl.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})))

	attempt := func(xff string) int {
		req := httptest.NewRequest(http.MethodPost, "/api/admin/unlock", nil)
		req.RemoteAddr = "10.0.0.2:443"
		req.Header.Set("X-Forwarded-For", xff)
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		return rr.Code
	}

	if code := attempt("203.0.113.5"); code != http.StatusOK {
		t.Fatalf("first attempt: %d", code)
	}
	// A forged leftmost entry does not change the hop the proxy appended.
	if code := attempt("1.2.3.4, 203.0.113.5"); code != http.StatusTooManyRequests {
		t.Errorf("forged prefix: got %d, want 429", code)
	}
	if code := attempt("203.0.113.6"); code != http.StatusOK {
		t.Errorf("other client: got %d, want 200", code)
	}
}
