package domain

import "context"

// ServicePort is consumed by handlers and the operator CLI
type ServicePort interface {
	Log(ctx context.Context, in LogInput) (Logged, error)
	Backfill(ctx context.Context, in BackfillInput) (Logged, error)
}
