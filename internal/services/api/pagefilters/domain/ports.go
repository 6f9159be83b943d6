package domain

import (
	"context"

	"orgstats/internal/core/filters"
)

// ServicePort defines the service contract for page filters
type ServicePort interface {
	Get(ctx context.Context, orgSlug, userID string) (Selection, error)
	Save(ctx context.Context, orgSlug, userID string, in SaveInput) (Selection, error)
	Clear(ctx context.Context, orgSlug, userID string) error
}

// Reader is the read-only snapshot port other modules consume
type Reader interface {
	Snapshot(ctx context.Context, orgSlug, userID string) (filters.PageFilters, error)
}
