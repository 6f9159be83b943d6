package middleware

import (
	"net/http"
	"strings"

	"orgstats/internal/platform/logger"
	pnet "orgstats/internal/platform/net"
)

// ViewerHeader carries the user id set by the upstream gateway
const ViewerHeader = "X-Orgstats-User"

// ViewerPort resolves the viewing user of a request
type ViewerPort interface {
	Viewer(r *http.Request) (userID string, err error)
}

type headerViewer struct{}

func (headerViewer) Viewer(r *http.Request) (string, error) {
	return strings.TrimSpace(r.Header.Get(ViewerHeader)), nil
}

// Viewer stores the viewing user and request id on the context for handlers and logs
// a nil port reads ViewerHeader, a port error is rendered with write
func Viewer(p ViewerPort) func(http.Handler) http.Handler {
	if p == nil {
		p = headerViewer{}
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			uid, err := p.Viewer(r)
			if err != nil {
				writeError(w, r, err)
				return
			}
			ctx := pnet.WithUser(r.Context(), uid)
			ctx = logger.WithRequest(ctx, pnet.RequestID(ctx))
			ctx = logger.WithOrg(ctx, "", uid)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
