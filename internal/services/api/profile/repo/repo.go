// Package repo provides postgres access for user profile settings
package repo

import (
	"context"
	"errors"

	"immersion/internal/modkit/repokit"
	perr "immersion/internal/platform/errors"
	"immersion/internal/platform/store"
)

// Repo is the persistence surface for the users table
type Repo interface {
	// Timezone returns the stored zone name; found is false for unknown users
	Timezone(ctx context.Context, userID string) (tz string, found bool, err error)
	SetTimezone(ctx context.Context, userID, tz string) error
	SaveStreak(ctx context.Context, userID string, days int) error
}

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

func (r *queries) Timezone(ctx context.Context, userID string) (string, bool, error) {
	tz, err := store.Scalar[string](ctx, r.q, `select timezone from users where user_id = $1`, userID)
	switch {
	case errors.Is(err, perr.ErrNotFound):
		return "", false, nil
	case err != nil:
		return "", false, err
	}
	return tz, true, nil
}

func (r *queries) SetTimezone(ctx context.Context, userID, tz string) error {
	const sql = `
insert into users (user_id, timezone) values ($1, $2)
on conflict (user_id) do update set timezone = excluded.timezone, updated_at = now()
`
	return store.ExecOne(ctx, r.q, sql, userID, tz)
}

// SaveStreak caches the last computed streak; a missing user is not an error
func (r *queries) SaveStreak(ctx context.Context, userID string, days int) error {
	_, err := r.q.Exec(ctx, `update users set streak = $2, updated_at = now() where user_id = $1`, userID, days)
	return err
}
