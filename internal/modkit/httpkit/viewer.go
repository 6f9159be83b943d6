package httpkit

import (
	"net/http"

	perrs "orgstats/internal/platform/errors"
	"orgstats/internal/platform/logger"
	pnet "orgstats/internal/platform/net"
	"orgstats/internal/platform/net/middleware"
	str "orgstats/internal/platform/strings"
)

// Viewer returns the viewing user id placed on the context by the viewer middleware
func Viewer(r *http.Request) (string, error) {
	uid := pnet.UserID(r.Context())
	if uid == "" {
		return "", perrs.Unauthorizedf("missing %s header", middleware.ViewerHeader)
	}
	return uid, nil
}

// MaybeViewer returns the viewing user id or empty for anonymous requests
func MaybeViewer(r *http.Request) string { return pnet.UserID(r.Context()) }

// OrgScope copies the {orgSlug} route param onto the context for handlers and logs
func OrgScope(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		slug := str.Slug(Param(r, "orgSlug"))
		if slug == "" {
			next.ServeHTTP(w, r)
			return
		}
		ctx := pnet.WithOrg(r.Context(), slug)
		ctx = logger.WithOrg(ctx, slug, pnet.UserID(ctx))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Org returns the organization slug set by OrgScope
func Org(r *http.Request) (string, error) {
	slug := pnet.OrgSlug(r.Context())
	if slug == "" {
		return "", perrs.InvalidArgf("missing organization")
	}
	return slug, nil
}
