package requestutil

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSanitizeRequestID(t *testing.T) {
	if got := SanitizeRequestID("valid-123"); got != "valid-123" {
		t.Fatalf("expected pass-through, got %s", got)
	}
	if got := SanitizeRequestID("bad id"); got == "" || got == "bad id" {
		t.Fatalf("expected sanitized id, got %s", got)
	}
	id := NewRequestID()
	if len(id) != 36 || !requestIDPattern.MatchString(id) {
		t.Fatalf("expected uuid that passes sanitizing, got %q", id)
	}
	if SanitizeRequestID(id) != id {
		t.Fatalf("expected generated id to round trip")
	}
}

func TestClientIP(t *testing.T) {
	if got := ClientIP(nil); got != "" {
		t.Fatalf("expected empty for nil request, got %q", got)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Forwarded-For", "1.2.3.4, 5.6.7.8")
	if got := ClientIP(req); got != "1.2.3.4" {
		t.Fatalf("expected first forwarded address, got %s", got)
	}

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "9.9.9.9:1234"
	if got := ClientIP(req); got != "9.9.9.9:1234" {
		t.Fatalf("expected remote addr fallback, got %s", got)
	}
}

func TestBearerToken(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	if _, ok := BearerToken(req); ok {
		t.Fatalf("expected no token without header")
	}
	req.Header.Set("Authorization", "Bearer secret")
	if got, ok := BearerToken(req); !ok || got != "secret" {
		t.Fatalf("expected secret, got %q", got)
	}
	req.Header.Set("Authorization", "Basic abc")
	if _, ok := BearerToken(req); ok {
		t.Fatalf("expected basic auth to be rejected")
	}
	if _, ok := BearerToken(nil); ok {
		t.Fatalf("expected nil request to have no token")
	}
}

func TestPathID(t *testing.T) {
	cases := []struct {
		path string
		id   string
		ok   bool
	}{
		{"/teams/det", "det", true},
		{"/teams/", "", false},
		{"/teams/det/roster", "", false},
		{"/players/det", "", false},
	}
	for _, tc := range cases {
		id, ok := PathID(tc.path, "/teams/")
		if id != tc.id || ok != tc.ok {
			t.Fatalf("PathID(%q) = %q,%v want %q,%v", tc.path, id, ok, tc.id, tc.ok)
		}
	}
}
