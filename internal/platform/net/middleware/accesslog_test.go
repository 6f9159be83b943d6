package middleware_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"orgstats/internal/platform/net/middleware"
)

func TestAccessLogZerolog_PassThrough(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		opt  middleware.AccessLogOptions
		h    http.HandlerFunc
		code int
		body string
	}{
		{
			name: "created",
			h: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusCreated)
				_, _ = io.WriteString(w, "ok")
			},
			code: http.StatusCreated,
			body: "ok",
		},
		{
			name: "slow",
			opt:  middleware.AccessLogOptions{Slow: time.Nanosecond},
			h: func(w http.ResponseWriter, _ *http.Request) {
				time.Sleep(time.Millisecond)
				_, _ = io.WriteString(w, "slow")
			},
			code: http.StatusOK,
			body: "slow",
		},
		{
			name: "redirect",
			h: func(w http.ResponseWriter, r *http.Request) {
				http.Redirect(w, r, "/organizations/acme/stats/", http.StatusSeeOther)
			},
			code: http.StatusSeeOther,
		},
		{
			name: "failure",
			h:    func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusBadGateway) },
			code: http.StatusBadGateway,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			middleware.AccessLogZerolog(tc.opt)(tc.h).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/x", nil))
			if rec.Code != tc.code {
				t.Fatalf("status = %d", rec.Code)
			}
			if tc.body != "" && rec.Body.String() != tc.body {
				t.Fatalf("body = %q", rec.Body.String())
			}
		})
	}
}
