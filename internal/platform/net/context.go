// Package net carries request scoped identity on the context
package net

import (
	"context"

	chimw "github.com/go-chi/chi/v5/middleware"
)

type ctxKey string

const (
	keyUserID  ctxKey = "user_id"
	keyOrgSlug ctxKey = "org_slug"
)

// WithRequestID stores reqID where chi's RequestID middleware would
func WithRequestID(ctx context.Context, reqID string) context.Context {
	if reqID == "" {
		return ctx
	}
	return context.WithValue(ctx, chimw.RequestIDKey, reqID)
}

// RequestID returns the request id, empty outside of a request
func RequestID(ctx context.Context) string { return chimw.GetReqID(ctx) }

// WithUser stores the viewing user id
func WithUser(ctx context.Context, userID string) context.Context {
	if userID == "" {
		return ctx
	}
	return context.WithValue(ctx, keyUserID, userID)
}

// UserID returns the viewing user id, empty for anonymous requests
func UserID(ctx context.Context) string {
	v, _ := ctx.Value(keyUserID).(string)
	return v
}

// WithOrg stores the organization slug taken from the route
func WithOrg(ctx context.Context, slug string) context.Context {
	if slug == "" {
		return ctx
	}
	return context.WithValue(ctx, keyOrgSlug, slug)
}

// OrgSlug returns the organization slug
func OrgSlug(ctx context.Context) string {
	v, _ := ctx.Value(keyOrgSlug).(string)
	return v
}
