package repokit

import (
	"context"
	"time"

	perr "orgstats/internal/platform/errors"
)

// BootTimeout bounds the boot guard when ctx carries no deadline
const BootTimeout = 5 * time.Second

// Guarder is anything that can verify its backends answer, store.Store is one
type Guarder interface {
	Guard(context.Context) error
}

// Guard runs g.Guard under BootTimeout and classifies failures as unavailable
func Guard(ctx context.Context, g Guarder) error {
	if g == nil {
		return perr.Unavailablef("guard: nil dependency")
	}
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, BootTimeout)
		defer cancel()
	}
	if err := g.Guard(ctx); err != nil {
		return perr.Wrapf(err, perr.ErrorCodeUnavailable, "dependency guard failed")
	}
	return nil
}

// MustGuard panics when Guard fails, used at boot
func MustGuard(ctx context.Context, g Guarder) {
	if err := Guard(ctx, g); err != nil {
		panic(err)
	}
}
