package repokit

import (
	"context"
	"fmt"
	"time"
)

// guardTimeout bounds MustGuard when ctx carries no deadline
const guardTimeout = 5 * time.Second

// Guarder pings its backends; *store.Store is one
type Guarder interface {
	Guard(context.Context) error
}

// MustGuard panics unless every backend answers, for use at process startup
func MustGuard(ctx context.Context, st Guarder) {
	if st == nil {
		panic("repokit: nil store")
	}
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, guardTimeout)
		defer cancel()
	}
	if err := st.Guard(ctx); err != nil {
		panic(fmt.Errorf("dependency guard failed: %w", err))
	}
}
