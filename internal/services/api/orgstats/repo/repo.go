// Package repo provides postgres access for organizations and their projects
package repo

import (
	"context"
	"strings"

	"orgstats/internal/modkit/repokit"
	perr "orgstats/internal/platform/errors"
	"orgstats/internal/platform/store"
	str "orgstats/internal/platform/strings"
)

// Repo is the read surface the dashboard needs
type Repo interface {
	OrgBySlug(ctx context.Context, slug string) (OrgRow, error)
	Projects(ctx context.Context, orgID int64, f ProjectFilter) ([]ProjectRow, error)
	ProjectBySlug(ctx context.Context, orgID int64, slug string) (ProjectRow, error)
}

// OrgRow is one organizations row
type OrgRow struct {
	ID       int64
	Slug     string
	Name     string
	Features []string
}

// ProjectRow is one projects row
type ProjectRow struct {
	ID   int64
	Slug string
	Name string
}

// ProjectFilter narrows a project listing
// nil IDs lists every project, Query matches slugs case insensitively
type ProjectFilter struct {
	IDs   []int64
	Query string
	Desc  bool
	Limit int
}

// DefaultProjectLimit caps a listing when ProjectFilter.Limit is unset
const DefaultProjectLimit = 100

type (
	// PG is a binder that can bind the repo to a Queryer or TxRunner
	PG struct{}
	// queries implements the Repo interface
	queries struct{ q repokit.Queryer }
)

// NewPG returns a binder that can bind the repo to a Queryer or TxRunner
func NewPG() repokit.Binder[Repo] { return PG{} }

// Bind wires a Queryer to the repo
func (PG) Bind(q repokit.Queryer) Repo { return &queries{q: q} }

func (r *queries) OrgBySlug(ctx context.Context, slug string) (OrgRow, error) {
	const sql = `
select id, slug, name, features
from organizations
where slug = $1
`
	org, err := store.One(ctx, r.q, func(row store.Row) (OrgRow, error) {
		var o OrgRow
		err := row.Scan(&o.ID, &o.Slug, &o.Name, &o.Features)
		return o, err
	}, sql, slug)
	if err != nil {
		return OrgRow{}, perr.FromPostgresf(err, "organization %s", slug)
	}
	return org, nil
}

func (r *queries) Projects(ctx context.Context, orgID int64, f ProjectFilter) ([]ProjectRow, error) {
	// a null id array means every project
	const sql = `
select id, slug, name
from projects
where org_id = $1
and ($2::bigint[] is null or id = any($2))
and ($3::text is null or slug ilike '%' || $3 || '%' escape '\')
order by
  case when $4 then slug end desc,
  slug asc
limit $5
`
	limit := f.Limit
	if limit <= 0 {
		limit = DefaultProjectLimit
	}
	rows, err := store.Many(ctx, r.q, scanProject, sql, orgID, f.IDs, str.SQLNull(escapeLike(f.Query)), f.Desc, limit)
	if err != nil {
		return nil, perr.FromPostgresf(err, "projects of organization %d", orgID)
	}
	return rows, nil
}

func (r *queries) ProjectBySlug(ctx context.Context, orgID int64, slug string) (ProjectRow, error) {
	const sql = `
select id, slug, name
from projects
where org_id = $1 and slug = $2
`
	p, err := store.One(ctx, r.q, scanProject, sql, orgID, slug)
	if err != nil {
		return ProjectRow{}, perr.FromPostgresf(err, "project %s", slug)
	}
	return p, nil
}

func scanProject(row store.Row) (ProjectRow, error) {
	var p ProjectRow
	err := row.Scan(&p.ID, &p.Slug, &p.Name)
	return p, err
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string { return likeEscaper.Replace(strings.TrimSpace(s)) }
