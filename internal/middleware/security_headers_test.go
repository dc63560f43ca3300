package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

var wantSecurityHeaders = map[string]string{
	"Content-Security-Policy":   "default-src 'self'; script-src 'self'; style-src 'self' 'unsafe-inline'; img-src 'self' data: https:; font-src 'self'; connect-src 'self'; frame-ancestors 'none';",
	"Strict-Transport-Security": "max-age=31536000; includeSubDomains; preload",
	"X-Content-Type-Options":    "nosniff",
	"X-Frame-Options":           "DENY",
	"Referrer-Policy":           "strict-origin-when-cross-origin",
}

func assertSecurityHeaders(t *testing.T, h http.Header) {
	t.Helper()
	for name, want := range wantSecurityHeaders {
		values := h.Values(name)
		if len(values) != 1 {
			t.Fatalf("expected exactly one %s header, got %d (%v)", name, len(values), values)
		}
		if values[0] != want {
			t.Fatalf("expected %s: %q, got %q", name, want, values[0])
		}
	}
}

func TestSecurityHeadersSetsAllHeaders(t *testing.T) {
	handler := SecurityHeaders(DefaultSecurityHeaders())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	assertSecurityHeaders(t, rr.Header())
}

func TestSecurityHeadersOnErrorResponses(t *testing.T) {
	for _, status := range []int{http.StatusBadRequest, http.StatusNotFound, http.StatusInternalServerError} {
		handler := SecurityHeaders(DefaultSecurityHeaders())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "boom", status)
		}))

		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

		if rr.Code != status {
			t.Fatalf("expected status %d, got %d", status, rr.Code)
		}
		assertSecurityHeaders(t, rr.Header())
	}
}

func TestSecurityHeadersOverwriteDownstreamValues(t *testing.T) {
	handler := SecurityHeaders(DefaultSecurityHeaders())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Frame-Options", "SAMEORIGIN")
		w.Header().Add("Content-Security-Policy", "default-src *")
		w.Header().Set("Referrer-Policy", "unsafe-url")
		w.WriteHeader(http.StatusOK)
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	assertSecurityHeaders(t, rr.Header())
}

func TestSecurityHeadersLeaveStatusAndBodyAlone(t *testing.T) {
	handler := SecurityHeaders(DefaultSecurityHeaders())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte("created"))
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/", nil))

	if rr.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", rr.Code)
	}
	if rr.Body.String() != "created" {
		t.Fatalf("expected body %q, got %q", "created", rr.Body.String())
	}
}

func TestApplyIsIdempotent(t *testing.T) {
	set := DefaultSecurityHeaders()

	h := http.Header{}
	set.Apply(h)
	once := h.Clone()
	set.Apply(h)

	if len(h) != len(once) {
		t.Fatalf("expected identical header count after second apply, got %d and %d", len(once), len(h))
	}
	for name := range once {
		if len(h.Values(name)) != len(once.Values(name)) {
			t.Fatalf("expected %s to keep a single value, got %v", name, h.Values(name))
		}
		if h.Get(name) != once.Get(name) {
			t.Fatalf("expected %s to keep value %q, got %q", name, once.Get(name), h.Get(name))
		}
	}
}

func TestSecurityHeadersAppliedWithoutExplicitWrite(t *testing.T) {
	handler := SecurityHeaders(DefaultSecurityHeaders())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Handler returns without writing; net/http finalizes a 200.
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	assertSecurityHeaders(t, rr.Header())
}
