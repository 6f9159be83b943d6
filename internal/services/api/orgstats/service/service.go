// Package service contains the usage dashboard workflows
package service

import (
	"context"
	"maps"
	"slices"
	"strings"
	"time"

	"orgstats/internal/core/filters"
	"orgstats/internal/core/location"
	"orgstats/internal/core/params"
	"orgstats/internal/core/statsview"
	"orgstats/internal/modkit/repokit"
	perr "orgstats/internal/platform/errors"
	"orgstats/internal/platform/logger"
	str "orgstats/internal/platform/strings"
	"orgstats/internal/services/api/orgstats/domain"
	"orgstats/internal/services/api/orgstats/repo"
)

// Service defines the dashboard service contract
type Service interface {
	domain.ServicePort
}

// Options tune the time window normalizer
type Options struct {
	DefaultPeriod string
	Location      *time.Location
}

// Svc implements the dashboard service
type Svc struct {
	Repo   repo.Repo
	binder repokit.Binder[repo.Repo]
	db     repokit.TxRunner
	pages  domain.PageFilterReader
	opts   Options
}

// New constructs a dashboard service, a nil pages reader yields empty selections
func New(db repokit.TxRunner, binder repokit.Binder[repo.Repo], pages domain.PageFilterReader, opts Options) *Svc {
	if db == nil {
		panic("orgstats.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("orgstats.Service requires a non nil Repo binder")
	}
	return &Svc{Repo: repokit.MustBind(binder, db), binder: binder, db: db, pages: pages, opts: opts}
}

// pass is the state of one request against the dashboard
type pass struct {
	org repo.OrgRow
	c   *statsview.Controller
	nav *location.Recorder
}

// open loads the organization and builds the controller for sc
// the page filter snapshot is only read when the organization uses it
func (s *Svc) open(ctx context.Context, sc domain.Scope, withSelection bool) (*pass, error) {
	org, err := s.Repo.OrgBySlug(ctx, sc.OrgSlug)
	if err != nil {
		return nil, err
	}

	loc := sc.Location.Clone()
	if loc.Pathname == "" {
		loc.Pathname = domain.DashboardPath(org.Slug)
	}

	var sel filters.PageFilters
	if withSelection && slices.Contains(org.Features, statsview.FeatureProjectStats) {
		sel = s.snapshot(ctx, org.Slug, sc.UserID)
	}

	nav := &location.Recorder{}
	c := statsview.New(statsview.Inputs{
		Organization: statsview.Organization{
			ID:       org.ID,
			Slug:     org.Slug,
			Name:     org.Name,
			Features: slices.Clone(org.Features),
		},
		Location:  loc,
		Selection: sel,
		Navigator: nav,
		Options: statsview.Options{
			DefaultPeriod: s.opts.DefaultPeriod,
			Location:      s.opts.Location,
		},
	})
	return &pass{org: org, c: c, nav: nav}, nil
}

// snapshot is fail soft, a broken page filter store renders the unfiltered dashboard
func (s *Svc) snapshot(ctx context.Context, orgSlug, userID string) filters.PageFilters {
	if s.pages == nil {
		return filters.PageFilters{}
	}
	sel, err := s.pages.Snapshot(ctx, orgSlug, userID)
	if err != nil {
		logger.C(ctx).Warn().Err(err).Msg("page filter snapshot unavailable, using an empty selection")
		return filters.PageFilters{}
	}
	return sel
}

// Dashboard renders the view model for the scoped location
func (s *Svc) Dashboard(ctx context.Context, sc domain.Scope) (domain.View, error) {
	p, err := s.open(ctx, sc, true)
	if err != nil {
		return domain.View{}, err
	}

	view := p.c.Render(ctx, statsview.Renderers{Projects: s.projectsRenderer(p.org)})
	for _, sec := range view.Sections {
		if !sec.Failed() {
			continue
		}
		ev := logger.C(ctx).Error().Str("section", sec.Name).Str("reason", sec.Error)
		if sec.Panic != "" {
			ev = ev.Str("stack", sec.Panic)
		}
		ev.Msg("dashboard section failed")
	}
	return view, nil
}

func (s *Svc) projectsRenderer(org repo.OrgRow) statsview.RenderFunc {
	return func(ctx context.Context, c *statsview.Controller) (any, error) {
		f := repo.ProjectFilter{
			Query: c.TableQuery(),
			Desc:  strings.HasPrefix(c.TableSort(), "-"),
		}
		if ids := c.ProjectIDs(); len(ids) > 0 && !filters.IncludesAll(ids) {
			f.IDs = ids
		}
		rows, err := s.Repo.Projects(ctx, org.ID, f)
		if err != nil {
			return nil, err
		}
		projects := make([]statsview.Project, 0, len(rows))
		for _, r := range rows {
			projects = append(projects, statsview.Project{ID: r.ID, Slug: r.Slug})
		}
		return c.ProjectsProps(projects), nil
	}
}

// SetState writes in.Delta into the scoped location
func (s *Svc) SetState(ctx context.Context, sc domain.Scope, in domain.StateInput) (domain.StateResult, error) {
	p, err := s.open(ctx, sc, false)
	if err != nil {
		return domain.StateResult{}, err
	}

	opts := location.NoNavigate()
	if in.Navigate {
		opts = location.Navigate()
	}
	next, err := p.c.SetStateOnURL(ctx, params.Delta(in.Delta), opts)
	if err != nil {
		return domain.StateResult{}, perr.Wrap(err, perr.ErrorCodeUnknown, "navigate")
	}

	if l := logger.C(ctx); l.Debug().Enabled() {
		ev := l.Debug().Bool("navigate", in.Navigate)
		for _, k := range slices.Sorted(maps.Keys(in.Delta)) {
			ev = ev.Str(k, str.Deref(in.Delta[k]))
		}
		ev.Msg("dashboard state changed")
	}
	return result(p, next), nil
}

// UpdateDatetime writes a legacy selector change into the page scoped keys and navigates
func (s *Svc) UpdateDatetime(ctx context.Context, sc domain.Scope, in domain.DatetimeInput) (domain.StateResult, error) {
	p, err := s.open(ctx, sc, false)
	if err != nil {
		return domain.StateResult{}, err
	}
	next, err := p.c.HandleUpdateDatetime(ctx, statsview.ChangeData{
		Start:    in.Start,
		End:      in.End,
		Relative: in.Relative,
		UTC:      in.UTC,
	})
	if err != nil {
		return domain.StateResult{}, perr.Wrap(err, perr.ErrorCodeUnknown, "navigate")
	}
	return result(p, next), nil
}

func result(p *pass, next location.Location) domain.StateResult {
	res := domain.StateResult{Location: next, URL: next.String()}
	if target, ok := p.nav.Target(); ok {
		res.Redirect = target
	}
	return res
}

// Links returns the cross navigation destinations of one project
func (s *Svc) Links(ctx context.Context, sc domain.Scope, projectSlug string) (domain.Links, error) {
	p, err := s.open(ctx, sc, false)
	if err != nil {
		return domain.Links{}, err
	}
	row, err := s.Repo.ProjectBySlug(ctx, p.org.ID, projectSlug)
	if err != nil {
		return domain.Links{}, err
	}
	project := statsview.Project{ID: row.ID, Slug: row.Slug}
	return domain.Links{Project: project, Links: p.c.NextLocations(project)}, nil
}

// Sampling resolves the dynamic sampling settings target
// :projectId is filled in only when the selection is exactly one concrete project
func (s *Svc) Sampling(ctx context.Context, sc domain.Scope) (domain.SamplingResult, error) {
	p, err := s.open(ctx, sc, true)
	if err != nil {
		return domain.SamplingResult{}, err
	}
	if !p.c.HasSamplingUI() {
		return domain.SamplingResult{}, perr.Forbiddenf("dynamic sampling is not enabled for %s", p.org.Slug)
	}
	if err := p.c.NavigateToSamplingSettings(ctx); err != nil {
		return domain.SamplingResult{}, perr.Wrap(err, perr.ErrorCodeUnknown, "navigate")
	}
	path, _ := p.nav.Target()

	ids := p.c.ProjectIDs()
	if len(ids) != 1 || filters.IncludesAll(ids) {
		return domain.SamplingResult{Path: path}, nil
	}
	rows, err := s.Repo.Projects(ctx, p.org.ID, repo.ProjectFilter{IDs: ids, Limit: 1})
	if err != nil {
		return domain.SamplingResult{}, err
	}
	if len(rows) == 0 {
		return domain.SamplingResult{Path: path}, nil
	}
	return domain.SamplingResult{
		Path:     strings.Replace(path, ":projectId", rows[0].Slug, 1),
		Resolved: true,
	}, nil
}
