package middleware

import (
	"context"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"testing"

	"lightshop/internal/session"
)

func csrfCookie(rr *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range rr.Result().Cookies() {
		if c.Name == CSRFCookieName {
			return c
		}
	}
	return nil
}

// csrfHandler records the token seen by the wrapped handler.
func csrfHandler(seen *string) http.Handler {
	return NewCSRF(true)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if seen != nil {
			*seen = CSRFTokenFromCtx(r.Context())
		}
		w.WriteHeader(http.StatusNoContent)
	}))
}

func TestCSRFIssuesCookieOnFirstVisit(t *testing.T) {
	var seen string
	rr := httptest.NewRecorder()
	csrfHandler(&seen).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/admin/session", nil))

	c := csrfCookie(rr)
	if c == nil {
		t.Fatal("no CSRF cookie issued")
	}
	if c.Value != seen {
		t.Errorf("context token %q, cookie %q", seen, c.Value)
	}
	if c.Path != session.CookiePath || !c.Secure || c.HttpOnly || c.SameSite != http.SameSiteStrictMode {
		t.Errorf("cookie attributes: %+v", c)
	}
	if raw, err := base64.RawURLEncoding.DecodeString(c.Value); err != nil || len(raw) != csrfTokenBytes {
		t.Errorf("token %q is not %d random bytes", c.Value, csrfTokenBytes)
	}
}

func TestCSRFKeepsExistingToken(t *testing.T) {
	var seen string
	req := httptest.NewRequest(http.MethodGet, "/api/admin/products/export.xlsx", nil)
	req.AddCookie(&http.Cookie{Name: CSRFCookieName, Value: "existing"})
	rr := httptest.NewRecorder()
	csrfHandler(&seen).ServeHTTP(rr, req)

	if seen != "existing" {
		t.Errorf("context token: got %q", seen)
	}
	if csrfCookie(rr) != nil {
		t.Error("no new cookie should be issued when one is present")
	}
}

func TestCSRFWrites(t *testing.T) {
	tests := []struct {
		name   string
		method string
		header string
		auth   AuthMethod
		want   int
	}{
		{"save settings with echoed token", http.MethodPost, "tok", AuthSession, http.StatusNoContent},
		{"save settings without header", http.MethodPost, "", AuthSession, http.StatusForbidden},
		{"update product with wrong token", http.MethodPut, "other", AuthSession, http.StatusForbidden},
		{"delete image without header", http.MethodDelete, "", AuthSession, http.StatusForbidden},
		{"api token needs no echo", http.MethodDelete, "", AuthToken, http.StatusNoContent},
		{"reads are never checked", http.MethodGet, "", AuthSession, http.StatusNoContent},
		{"preflight is never checked", http.MethodOptions, "", AuthNone, http.StatusNoContent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/api/admin/settings", nil)
			req.AddCookie(&http.Cookie{Name: CSRFCookieName, Value: "tok"})
			if tt.header != "" {
				req.Header.Set(CSRFHeaderName, tt.header)
			}
			req = req.WithContext(context.WithValue(req.Context(), authMethodKey, tt.auth))

			rr := httptest.NewRecorder()
			csrfHandler(nil).ServeHTTP(rr, req)

			if rr.Code != tt.want {
				t.Errorf("status: got %d, want %d (body %s)", rr.Code, tt.want, rr.Body.String())
			}
		})
	}
}

func TestCSRFFreshCookieCannotAuthorizeWrite(t *testing.T) {
	// A write with no cookie gets a new token but still fails: the
	// attacker cannot know it yet.
	req := httptest.NewRequest(http.MethodPost, "/api/admin/lock", nil)
	req.Header.Set(CSRFHeaderName, "guess")
	rr := httptest.NewRecorder()
	csrfHandler(nil).ServeHTTP(rr, req)

	if rr.Code != http.StatusForbidden {
		t.Errorf("status: got %d, want 403", rr.Code)
	}
}

func TestIssueCSRFTokenIsUnique(t *testing.T) {
	a, err := IssueCSRFToken(httptest.NewRecorder(), false)
	if err != nil {
		t.Fatalf("IssueCSRFToken: %v", err)
	}
	b, _ := IssueCSRFToken(httptest.NewRecorder(), false)
	if a == b {
		t.Error("two issued tokens should differ")
	}
}
