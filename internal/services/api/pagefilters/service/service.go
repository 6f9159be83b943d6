// Package service contains page filter workflows
package service

import (
	"context"
	"time"

	"orgstats/internal/core/filters"
	"orgstats/internal/modkit/repokit"
	perr "orgstats/internal/platform/errors"
	"orgstats/internal/platform/logger"
	tim "orgstats/internal/platform/time"
	"orgstats/internal/services/api/pagefilters/domain"
	"orgstats/internal/services/api/pagefilters/repo"
)

// Service defines the service contract for page filters
type Service interface {
	domain.ServicePort
	domain.Reader
}

// Svc implements the Service interface
type Svc struct {
	Repo   repo.Repo
	binder repokit.Binder[repo.Repo]
	db     repokit.TxRunner
}

// saveTimeout bounds each statement of a save transaction
const saveTimeout = 2 * time.Second

// New creates a new page filter service
func New(db repokit.TxRunner, binder repokit.Binder[repo.Repo]) *Svc {
	if db == nil {
		panic("pagefilters.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("pagefilters.Service requires a non nil Repo binder")
	}
	return &Svc{
		Repo:   repokit.MustBind(binder, db),
		binder: binder,
		db:     repokit.WithBeginHooks(db, repokit.StatementTimeout(saveTimeout)),
	}
}

// Get returns the viewer's selection, an unsaved selection is empty rather than missing
func (s *Svc) Get(ctx context.Context, orgSlug, userID string) (domain.Selection, error) {
	row, err := s.Repo.Get(ctx, orgSlug, userID)
	if perr.IsCode(err, perr.ErrorCodeNotFound) {
		return domain.Selection{Projects: []int64{}}, nil
	}
	if err != nil {
		return domain.Selection{}, err
	}
	return toSelection(row), nil
}

// Save normalizes and stores the viewer's selection
func (s *Svc) Save(ctx context.Context, orgSlug, userID string, in domain.SaveInput) (domain.Selection, error) {
	in = in.Normalize()

	var saved repo.Row
	err := repokit.WithTx(ctx, s.db, func(q repokit.Queryer) error {
		var err error
		saved, err = repokit.MustBind(s.binder, q).Upsert(ctx, repo.Row{
			OrgSlug:  orgSlug,
			UserID:   userID,
			Period:   in.Datetime.Period,
			Start:    in.Datetime.Start,
			End:      in.Datetime.End,
			UTC:      in.Datetime.UTC,
			Projects: in.Projects,
		})
		return err
	})
	if err != nil {
		return domain.Selection{}, err
	}

	logger.C(ctx).Debug().
		Str("page_filters_id", saved.ID.String()).
		Ints64("projects", in.Projects).
		Msg("page filters saved")
	return toSelection(saved), nil
}

// Clear removes the viewer's selection, clearing an unsaved selection is a no-op
func (s *Svc) Clear(ctx context.Context, orgSlug, userID string) error {
	err := s.Repo.Delete(ctx, orgSlug, userID)
	if perr.IsCode(err, perr.ErrorCodeNotFound) {
		return nil
	}
	return err
}

// Snapshot implements domain.Reader
func (s *Svc) Snapshot(ctx context.Context, orgSlug, userID string) (filters.PageFilters, error) {
	if userID == "" {
		return filters.PageFilters{}, nil
	}
	sel, err := s.Get(ctx, orgSlug, userID)
	if err != nil {
		return filters.PageFilters{}, err
	}
	return sel.PageFilters(), nil
}

func toSelection(r repo.Row) domain.Selection {
	return domain.Selection{
		Datetime: domain.Datetime{
			Period: r.Period,
			Start:  r.Start,
			End:    r.End,
			UTC:    r.UTC,
		},
		Projects:  append(make([]int64, 0, len(r.Projects)), r.Projects...),
		UpdatedAt: tim.UTCPtr(r.UpdatedAt),
	}
}
