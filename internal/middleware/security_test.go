package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSecureHeaders(t *testing.T) {
	for _, hsts := range []bool{false, true} {
		handler := SecureHeaders(hsts)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/css; charset=utf-8")
		}))

		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/theme.css", nil))

		for k, want := range apiHeaders {
			if got := rr.Header().Get(k); got != want {
				t.Errorf("hsts=%v %s: got %q, want %q", hsts, k, got, want)
			}
		}
		if got := rr.Header().Get("Strict-Transport-Security"); (got != "") != hsts {
			t.Errorf("hsts=%v: Strict-Transport-Security %q", hsts, got)
		}
		if rr.Header().Get("Content-Type") != "text/css; charset=utf-8" {
			t.Error("handler headers should survive")
		}
	}
}

func TestNoStore(t *testing.T) {
	handler := NoStore(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/admin/settings", nil))

	if got := rr.Header().Get("Cache-Control"); got != "no-store" {
		t.Errorf("Cache-Control: got %q", got)
	}
	if got := rr.Header().Get("Pragma"); got != "no-cache" {
		t.Errorf("Pragma: got %q", got)
	}
}
