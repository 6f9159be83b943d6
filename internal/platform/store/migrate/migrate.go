// Package migrate applies the embedded schema migrations in order
package migrate

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"orgstats/internal/platform/logger"
	"orgstats/internal/platform/store"
)

//go:embed migrations/*.up.sql
var migrationsFS embed.FS

// Migration is one embedded up migration, ID is the file name without suffix
type Migration struct {
	ID    string
	UpSQL string
}

// Load returns the embedded migrations sorted by id
func Load() ([]Migration, error) { return load(migrationsFS) }

func load(fsys fs.FS) ([]Migration, error) {
	names, err := fs.Glob(fsys, "migrations/*.up.sql")
	if err != nil {
		return nil, err
	}
	sort.Strings(names)

	out := make([]Migration, 0, len(names))
	for _, name := range names {
		b, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}
		id := strings.TrimSuffix(strings.TrimPrefix(name, "migrations/"), ".up.sql")
		out = append(out, Migration{ID: id, UpSQL: string(b)})
	}
	return out, nil
}

const ensureTable = `
CREATE TABLE IF NOT EXISTS schema_migrations (
    id         TEXT PRIMARY KEY,
    applied_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// Up applies every pending migration, each in its own transaction
// it returns the ids applied by this call
func Up(ctx context.Context, db store.TxRunner) ([]string, error) {
	ms, err := Load()
	if err != nil {
		return nil, err
	}
	return up(ctx, db, ms)
}

func up(ctx context.Context, db store.TxRunner, ms []Migration) ([]string, error) {
	if _, err := db.Exec(ctx, ensureTable); err != nil {
		return nil, fmt.Errorf("create schema_migrations: %w", err)
	}
	applied, err := appliedIDs(ctx, db)
	if err != nil {
		return nil, err
	}

	log := logger.Named("migrate")
	var done []string
	for _, m := range ms {
		if applied[m.ID] {
			continue
		}
		if strings.TrimSpace(m.UpSQL) == "" {
			return done, fmt.Errorf("empty migration %s", m.ID)
		}
		err := db.Tx(ctx, func(q store.RowQuerier) error {
			if _, err := q.Exec(ctx, m.UpSQL); err != nil {
				return fmt.Errorf("apply migration %s: %w", m.ID, err)
			}
			if _, err := q.Exec(ctx, `INSERT INTO schema_migrations (id) VALUES ($1)`, m.ID); err != nil {
				return fmt.Errorf("record migration %s: %w", m.ID, err)
			}
			return nil
		})
		if err != nil {
			return done, err
		}
		log.Info().Str("migration", m.ID).Msg("migration applied")
		done = append(done, m.ID)
	}
	return done, nil
}

// Pending lists embedded migrations the database has not recorded yet
func Pending(ctx context.Context, db store.RowQuerier) ([]string, error) {
	ms, err := Load()
	if err != nil {
		return nil, err
	}
	return pending(ctx, db, ms)
}

func pending(ctx context.Context, db store.RowQuerier, ms []Migration) ([]string, error) {
	applied, err := appliedIDs(ctx, db)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, m := range ms {
		if !applied[m.ID] {
			out = append(out, m.ID)
		}
	}
	return out, nil
}

func appliedIDs(ctx context.Context, db store.RowQuerier) (map[string]bool, error) {
	ids, err := store.Many(ctx, db, func(r store.Row) (string, error) {
		var id string
		err := r.Scan(&id)
		return id, err
	}, `SELECT id FROM schema_migrations`)
	if err != nil {
		return nil, fmt.Errorf("list schema_migrations: %w", err)
	}
	out := make(map[string]bool, len(ids))
	for _, id := range ids {
		out[id] = true
	}
	return out, nil
}
