package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"babilonia.local/gee"
)

func TestCORSHeaders(t *testing.T) {
	e := gee.New()
	e.Use(CORS())
	e.GET("/x", func(c *gee.Context) { c.String(http.StatusOK, "x") })

	w := httptest.NewRecorder()
	e.ServeHTTP(w, httptest.NewRequest("GET", "/x", nil))

	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Fatalf("Access-Control-Allow-Origin = %q", got)
	}
	if got := w.Header().Get("Access-Control-Allow-Headers"); got != "Content-Type, Authorization" {
		t.Fatalf("Access-Control-Allow-Headers = %q", got)
	}
	if w.Body.String() != "x" {
		t.Fatalf("handler skipped, body = %q", w.Body.String())
	}
}

func TestCORSPreflightShortCircuits(t *testing.T) {
	e := gee.New()
	e.Use(CORS())
	e.GET("/x", func(c *gee.Context) { c.String(http.StatusOK, "x") })

	// no OPTIONS route is registered; the middleware answers anyway
	w := httptest.NewRecorder()
	e.ServeHTTP(w, httptest.NewRequest("OPTIONS", "/x", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if w.Body.Len() != 0 {
		t.Fatalf("preflight wrote a body: %q", w.Body.String())
	}
}

func TestReqIDGenerated(t *testing.T) {
	e := gee.New()
	e.Use(ReqID())
	e.GET("/x", func(c *gee.Context) { c.String(http.StatusOK, "x") })

	w := httptest.NewRecorder()
	e.ServeHTTP(w, httptest.NewRequest("GET", "/x", nil))

	id := w.Header().Get("X-Request-ID")
	if len(id) != 32 {
		t.Fatalf("generated id = %q", id)
	}
}

func TestReqIDPreserved(t *testing.T) {
	e := gee.New()
	e.Use(ReqID())
	var seen string
	e.GET("/x", func(c *gee.Context) {
		seen = c.Req.Header.Get("X-Request-ID")
		c.String(http.StatusOK, "x")
	})

	req := httptest.NewRequest("GET", "/x", nil)
	req.Header.Set("X-Request-ID", "client-supplied")
	w := httptest.NewRecorder()
	e.ServeHTTP(w, req)

	if w.Header().Get("X-Request-ID") != "client-supplied" {
		t.Fatalf("response id = %q", w.Header().Get("X-Request-ID"))
	}
	if seen != "client-supplied" {
		t.Fatalf("handler saw id = %q", seen)
	}
}
