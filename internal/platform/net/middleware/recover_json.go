package middleware

import (
	"net/http"
	"runtime/debug"

	perr "orgstats/internal/platform/errors"
	"orgstats/internal/platform/logger"
	phttp "orgstats/internal/platform/net/http"
)

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	phttp.Handle(func(*http.Request) phttp.Response { return phttp.Error(err) })(w, r)
}

// RecoverJSON turns a panic into a 500 envelope and logs the stack
// http.ErrAbortHandler is re-panicked so the server can abort the connection
func RecoverJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			v := recover()
			if v == nil {
				return
			}
			if v == http.ErrAbortHandler {
				panic(v)
			}
			logger.C(r.Context()).Error().
				Interface("panic", v).
				Bytes("stack", debug.Stack()).
				Msg("panic recovered")
			writeError(w, r, perr.PanicErrf("internal error"))
		}()
		next.ServeHTTP(w, r)
	})
}
