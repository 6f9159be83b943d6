package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	perr "orgstats/internal/platform/errors"
	pnet "orgstats/internal/platform/net"
	"orgstats/internal/platform/net/middleware"
)

type denyViewer struct{}

func (denyViewer) Viewer(*http.Request) (string, error) { return "", perr.Unauthorizedf("no session") }

type fixedViewer string

func (f fixedViewer) Viewer(*http.Request) (string, error) { return string(f), nil }

func TestViewer(t *testing.T) {
	t.Parallel()

	var got string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = pnet.UserID(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	middleware.Viewer(fixedViewer("u-1"))(next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusOK || got != "u-1" {
		t.Fatalf("status %d user %q", rec.Code, got)
	}

	got = "unset"
	rec = httptest.NewRecorder()
	middleware.Viewer(nil)(next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if got != "" {
		t.Fatalf("anonymous user = %q", got)
	}
}

func TestViewer_Error(t *testing.T) {
	t.Parallel()

	next := http.HandlerFunc(func(http.ResponseWriter, *http.Request) { t.Error("next must not run") })
	rec := httptest.NewRecorder()
	middleware.Viewer(denyViewer{})(next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusUnauthorized || !strings.Contains(rec.Body.String(), "no session") {
		t.Fatalf("status %d body %s", rec.Code, rec.Body.String())
	}
}
