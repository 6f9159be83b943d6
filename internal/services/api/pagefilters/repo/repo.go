// Package repo provides postgres access for page filters
package repo

import (
	"context"
	"time"

	"orgstats/internal/modkit/repokit"
	perr "orgstats/internal/platform/errors"
	"orgstats/internal/platform/store"

	"github.com/google/uuid"
)

// Repo defines the repository contract for page filters
type Repo interface {
	Get(ctx context.Context, orgSlug, userID string) (Row, error)
	Upsert(ctx context.Context, row Row) (Row, error)
	Delete(ctx context.Context, orgSlug, userID string) error
}

// Row is one page_filters row
type Row struct {
	ID        uuid.UUID
	OrgSlug   string
	UserID    string
	Period    string
	Start     string
	End       string
	UTC       bool
	Projects  []int64
	UpdatedAt time.Time
}

type (
	// PG implements the Repo binder using Postgres
	PG struct{}

	queries struct{ q repokit.Queryer }
)

// NewPG creates a new Postgres repository binder
func NewPG() repokit.Binder[Repo] { return PG{} }

// Bind binds a Postgres queryer to the Repo implementation
func (PG) Bind(q repokit.Queryer) Repo { return &queries{q: q} }

const selectRow = `
SELECT id::text, org_slug, user_id, stats_period, start_at, end_at, utc, projects, updated_at
FROM page_filters
WHERE org_slug = $1 AND user_id = $2`

func (r *queries) Get(ctx context.Context, orgSlug, userID string) (Row, error) {
	row, err := store.One(ctx, r.q, scanRow, selectRow, orgSlug, userID)
	if err != nil {
		return Row{}, perr.FromPostgresf(err, "page filters for %s", orgSlug)
	}
	return row, nil
}

const upsertRow = `
INSERT INTO page_filters (id, org_slug, user_id, stats_period, start_at, end_at, utc, projects, updated_at)
VALUES ($1::uuid, $2, $3, $4, $5, $6, $7, $8, now())
ON CONFLICT (org_slug, user_id) DO UPDATE SET
    stats_period = EXCLUDED.stats_period,
    start_at     = EXCLUDED.start_at,
    end_at       = EXCLUDED.end_at,
    utc          = EXCLUDED.utc,
    projects     = EXCLUDED.projects,
    updated_at   = now()
RETURNING id::text, org_slug, user_id, stats_period, start_at, end_at, utc, projects, updated_at`

func (r *queries) Upsert(ctx context.Context, in Row) (Row, error) {
	if in.ID == uuid.Nil {
		in.ID = uuid.New()
	}
	if in.Projects == nil {
		in.Projects = []int64{}
	}
	row, err := scanRow(r.q.QueryRow(ctx, upsertRow,
		in.ID.String(), in.OrgSlug, in.UserID, in.Period, in.Start, in.End, in.UTC, in.Projects))
	if err != nil {
		return Row{}, perr.FromPostgresf(err, "save page filters for %s", in.OrgSlug)
	}
	return row, nil
}

func (r *queries) Delete(ctx context.Context, orgSlug, userID string) error {
	err := store.ExecOne(ctx, r.q, `DELETE FROM page_filters WHERE org_slug = $1 AND user_id = $2`, orgSlug, userID)
	if err != nil {
		return perr.FromPostgresf(err, "clear page filters for %s", orgSlug)
	}
	return nil
}

func scanRow(r store.Row) (Row, error) {
	var (
		out Row
		id  string
	)
	if err := r.Scan(&id, &out.OrgSlug, &out.UserID, &out.Period, &out.Start, &out.End, &out.UTC, &out.Projects, &out.UpdatedAt); err != nil {
		return Row{}, err
	}
	parsed, err := uuid.Parse(id)
	if err != nil {
		return Row{}, err
	}
	out.ID = parsed
	return out, nil
}
