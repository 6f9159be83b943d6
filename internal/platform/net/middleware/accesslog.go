package middleware

import (
	"net/http"
	"time"

	"orgstats/internal/platform/logger"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

// AccessLogOptions configures AccessLogZerolog
type AccessLogOptions struct {
	// Slow promotes requests at or above this duration to warn, zero disables it
	Slow time.Duration
}

// AccessLogZerolog writes one "request done" line per request through logger.C
// 5xx log at error, slow requests at warn, redirects carry their target
func AccessLogZerolog(opt AccessLogOptions) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			elapsed := time.Since(start)

			evt := accessEvent(logger.C(r.Context()), status, elapsed, opt.Slow)
			if loc := ww.Header().Get("Location"); loc != "" {
				evt = evt.Str("location", loc)
			}
			evt.Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", status).
				Int("bytes", ww.BytesWritten()).
				Dur("elapsed", elapsed).
				Msg("request done")
		})
	}
}

func accessEvent(log *logger.Logger, status int, elapsed, slow time.Duration) *zerolog.Event {
	if status >= http.StatusInternalServerError {
		return log.Error()
	}
	if slow > 0 && elapsed >= slow {
		return log.Warn().Bool("slow", true)
	}
	return log.Info()
}
