package net

import (
	"context"
	"testing"
)

func TestContextRoundTrip(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	if RequestID(ctx) != "" || UserID(ctx) != "" || OrgSlug(ctx) != "" {
		t.Fatal("empty context should yield empty values")
	}

	ctx = WithOrg(WithUser(WithRequestID(ctx, "req-1"), "u-9"), "acme")
	if RequestID(ctx) != "req-1" {
		t.Fatalf("RequestID = %q", RequestID(ctx))
	}
	if UserID(ctx) != "u-9" {
		t.Fatalf("UserID = %q", UserID(ctx))
	}
	if OrgSlug(ctx) != "acme" {
		t.Fatalf("OrgSlug = %q", OrgSlug(ctx))
	}
}

func TestContext_EmptyValuesAreNotStored(t *testing.T) {
	t.Parallel()

	base := context.Background()
	if WithRequestID(base, "") != base || WithUser(base, "") != base || WithOrg(base, "") != base {
		t.Fatal("empty values must return the parent context")
	}
}
