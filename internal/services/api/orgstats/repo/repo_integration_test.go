//go:build integration_pg

package repo_test

import (
	"context"
	"slices"
	"testing"

	perr "orgstats/internal/platform/errors"
	"orgstats/internal/platform/store"
	"orgstats/internal/platform/store/migrate"
	"orgstats/internal/platform/store/pgtest"
	"orgstats/internal/services/api/orgstats/repo"
)

const seed = `
insert into organizations (slug, name, features)
values ('acme', 'Acme', array['project-stats']);
insert into projects (org_id, slug, name)
select o.id, p.slug, p.name
from organizations o,
  (values ('backend', 'Backend'), ('frontend', 'Frontend'), ('web_gate', 'Gate'), ('mobxgate', 'Mobile')) as p(slug, name)
where o.slug = 'acme';
`

func slugs(rows []repo.ProjectRow) []string {
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.Slug)
	}
	return out
}

func TestRepo_Postgres(t *testing.T) {
	ctx := context.Background()

	st, err := store.Open(ctx, store.Config{
		AppName: "orgstats-test",
		PG:      store.PGConfig{Enabled: true, URL: pgtest.Start(t)},
	})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })

	if _, err := migrate.Up(ctx, st.PG); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if _, err := st.PG.Exec(ctx, seed); err != nil {
		t.Fatalf("seed: %v", err)
	}

	r := repo.NewPG().Bind(st.PG)

	if _, err := r.OrgBySlug(ctx, "ghost"); !perr.IsCode(err, perr.ErrorCodeNotFound) {
		t.Fatalf("want not found, got %v", err)
	}
	org, err := r.OrgBySlug(ctx, "acme")
	if err != nil {
		t.Fatalf("org: %v", err)
	}
	if !slices.Equal(org.Features, []string{"project-stats"}) {
		t.Fatalf("features = %v", org.Features)
	}

	all, err := r.Projects(ctx, org.ID, repo.ProjectFilter{})
	if err != nil {
		t.Fatalf("all: %v", err)
	}
	if got := slugs(all); !slices.Equal(got, []string{"backend", "frontend", "mobxgate", "web_gate"}) {
		t.Fatalf("all = %v", got)
	}

	desc, _ := r.Projects(ctx, org.ID, repo.ProjectFilter{Desc: true, Limit: 2})
	if got := slugs(desc); !slices.Equal(got, []string{"web_gate", "mobxgate"}) {
		t.Fatalf("desc = %v", got)
	}

	// underscore is literal, not a single character wildcard
	gate, _ := r.Projects(ctx, org.ID, repo.ProjectFilter{Query: "B_G"})
	if got := slugs(gate); !slices.Equal(got, []string{"web_gate"}) {
		t.Fatalf("query = %v", got)
	}

	byID, _ := r.Projects(ctx, org.ID, repo.ProjectFilter{IDs: []int64{all[0].ID}})
	if got := slugs(byID); !slices.Equal(got, []string{"backend"}) {
		t.Fatalf("ids = %v", got)
	}

	p, err := r.ProjectBySlug(ctx, org.ID, "frontend")
	if err != nil || p.Name != "Frontend" {
		t.Fatalf("project = %+v, %v", p, err)
	}
	if _, err := r.ProjectBySlug(ctx, org.ID, "nope"); !perr.IsCode(err, perr.ErrorCodeNotFound) {
		t.Fatalf("want not found, got %v", err)
	}
}
