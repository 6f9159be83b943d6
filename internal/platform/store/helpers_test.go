package store

import (
	"context"
	"errors"
	"testing"

	perr "orgstats/internal/platform/errors"
)

func scanSlug(r Row) (string, error) {
	var s string
	err := r.Scan(&s)
	return s, err
}

func TestExecOne(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	if err := ExecOne(ctx, &fakeQuerier{tag: fakeTag{1}}, "UPDATE x"); err != nil {
		t.Fatalf("one row: %v", err)
	}
	if err := ExecOne(ctx, &fakeQuerier{tag: fakeTag{0}}, "UPDATE x"); !perr.IsCode(err, perr.ErrorCodeNotFound) {
		t.Fatalf("zero rows should be not found, got %v", err)
	}
	if err := ExecOne(ctx, &fakeQuerier{tag: fakeTag{3}}, "UPDATE x"); !perr.IsCode(err, perr.ErrorCodeConflict) {
		t.Fatalf("many rows should conflict, got %v", err)
	}
	boom := errors.New("boom")
	if err := ExecOne(ctx, &fakeQuerier{execErr: boom}, "UPDATE x"); !errors.Is(err, boom) {
		t.Fatalf("exec error not passed through: %v", err)
	}
}

func TestOne(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	got, err := One(ctx, &fakeQuerier{rows: &fakeRows{data: [][]any{{"acme"}}}}, scanSlug, "q")
	if err != nil || got != "acme" {
		t.Fatalf("One = %q, %v", got, err)
	}

	_, err = One(ctx, &fakeQuerier{rows: &fakeRows{}}, scanSlug, "q")
	if !errors.Is(err, perr.ErrNotFound) {
		t.Fatalf("empty should be ErrNotFound, got %v", err)
	}

	_, err = One(ctx, &fakeQuerier{rows: &fakeRows{data: [][]any{{"a"}, {"b"}}}}, scanSlug, "q")
	if !perr.IsCode(err, perr.ErrorCodeConflict) {
		t.Fatalf("two rows should conflict, got %v", err)
	}

	boom := errors.New("rows")
	_, err = One(ctx, &fakeQuerier{rows: &fakeRows{err: boom}}, scanSlug, "q")
	if !errors.Is(err, boom) {
		t.Fatalf("rows error not surfaced: %v", err)
	}
}

func TestMany(t *testing.T) {
	t.Parallel()

	q := &fakeQuerier{rows: &fakeRows{data: [][]any{{"backend"}, {"frontend"}}}}
	got, err := Many(context.Background(), q, scanSlug, "q")
	if err != nil {
		t.Fatalf("Many: %v", err)
	}
	if len(got) != 2 || got[0] != "backend" || got[1] != "frontend" {
		t.Fatalf("Many = %v", got)
	}
}
