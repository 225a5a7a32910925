package httpmiddleware

import (
	"net/http/httptest"
	"testing"
)

func TestClientIP_DirectConnection(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	req.RemoteAddr = "203.0.113.9:51234"
	// a public client cannot spoof its way behind a proxy header
	req.Header.Set("X-Forwarded-For", "10.0.0.1")

	if got := ClientIP(req); got != "203.0.113.9" {
		t.Fatalf("ClientIP = %q", got)
	}
}

func TestClientIP_TrustedProxyForwardedFor(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	req.RemoteAddr = "10.1.2.3:443"
	req.Header.Set("X-Forwarded-For", "198.51.100.7, 10.1.2.3")

	if got := ClientIP(req); got != "198.51.100.7" {
		t.Fatalf("ClientIP = %q", got)
	}
}

func TestClientIP_CloudflareHeaderWins(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	req.RemoteAddr = "127.0.0.1:443"
	req.Header.Set("CF-Connecting-IP", "198.51.100.7")
	req.Header.Set("X-Forwarded-For", "192.0.2.1")

	if got := ClientIP(req); got != "198.51.100.7" {
		t.Fatalf("ClientIP = %q", got)
	}
}

func TestClientIP_BadForwardedValueIgnored(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	req.RemoteAddr = "192.168.1.5:1000"
	req.Header.Set("X-Forwarded-For", "not-an-ip")

	if got := ClientIP(req); got != "192.168.1.5" {
		t.Fatalf("ClientIP = %q", got)
	}
}
