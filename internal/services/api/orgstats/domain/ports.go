package domain

import (
	"context"

	"orgstats/internal/core/filters"
)

// ServicePort is consumed by handlers
type ServicePort interface {
	Dashboard(ctx context.Context, sc Scope) (View, error)
	SetState(ctx context.Context, sc Scope, in StateInput) (StateResult, error)
	UpdateDatetime(ctx context.Context, sc Scope, in DatetimeInput) (StateResult, error)
	Links(ctx context.Context, sc Scope, projectSlug string) (Links, error)
	Sampling(ctx context.Context, sc Scope) (SamplingResult, error)
}

// PageFilterReader is the read-only page filter snapshot this module consumes
type PageFilterReader interface {
	Snapshot(ctx context.Context, orgSlug, userID string) (filters.PageFilters, error)
}
