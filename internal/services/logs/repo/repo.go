// Package repo provides postgres access for immersion logs
package repo

import (
	"context"
	_ "embed"
	"time"

	"immersion/internal/core/calendar"
	"immersion/internal/core/history"
	"immersion/internal/core/medium"
	"immersion/internal/core/normalize"
	"immersion/internal/modkit/repokit"
	"immersion/internal/platform/store"
	str "immersion/internal/platform/strings"
	"immersion/internal/services/logs/domain"
)

//go:embed schema.sql
var schema string

// EnsureSchema creates the users and immersion_logs tables when missing
func EnsureSchema(ctx context.Context, q repokit.Queryer) error {
	_, err := q.Exec(ctx, schema)
	return err
}

// schemaLock is the advisory lock key held while the schema is applied
const schemaLock int64 = 0x696d6d65

// Migrate applies the schema in a transaction holding a postgres advisory lock,
// serializing concurrent migrations from the api and immersionctl
func Migrate(ctx context.Context, db repokit.TxRunner) error {
	return db.Tx(ctx, func(q repokit.Queryer) error {
		if _, err := q.Exec(ctx, `select pg_advisory_xact_lock($1)`, schemaLock); err != nil {
			return err
		}
		return EnsureSchema(ctx, q)
	})
}

// Repo is the persistence surface for logs
type Repo interface {
	TouchUser(ctx context.Context, userID string) error
	Insert(ctx context.Context, rec domain.Record) error
	Dates(ctx context.Context, userID string, f domain.GuildFilter) ([]calendar.Date, error)
	Since(ctx context.Context, userID string, f domain.GuildFilter, from calendar.Date) ([]history.Entry, error)
	Totals(ctx context.Context, userID string, f domain.GuildFilter) ([]domain.MediumTotal, error)
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

// guild scope is always $2 (only) and $3 (exclude)
const guildScope = `($2 = '' or guild_id = $2) and ($3 = '' or guild_id <> $3)`

func (r *queries) TouchUser(ctx context.Context, userID string) error {
	_, err := r.q.Exec(ctx, `insert into users (user_id) values ($1) on conflict (user_id) do nothing`, userID)
	return err
}

func (r *queries) Insert(ctx context.Context, rec domain.Record) error {
	const sql = `
insert into immersion_logs
  (id, user_id, guild_id, medium, title, notes, unit, count, unit_length, points, log_date, backfilled, created_at)
values ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
`
	var unitLength any
	if rec.Unit == normalize.UnitEpisodes {
		unitLength = rec.UnitLength
	}
	return store.ExecOne(ctx, r.q, sql,
		rec.ID, rec.UserID, rec.GuildID, string(rec.Medium), rec.Title, str.SQLNull(rec.Notes),
		string(rec.Unit), rec.Count, unitLength, rec.Points, rec.Date.Time(), rec.Backfilled, rec.CreatedAt,
	)
}

func (r *queries) Dates(ctx context.Context, userID string, f domain.GuildFilter) ([]calendar.Date, error) {
	sql := `
select distinct log_date
from immersion_logs
where user_id = $1 and ` + guildScope + `
order by log_date asc
`
	return store.Many(ctx, r.q, func(row store.Row) (calendar.Date, error) {
		var t time.Time
		if err := row.Scan(&t); err != nil {
			return calendar.Date{}, err
		}
		return calendar.Of(t), nil
	}, sql, userID, f.Only, f.Exclude)
}

func (r *queries) Since(ctx context.Context, userID string, f domain.GuildFilter, from calendar.Date) ([]history.Entry, error) {
	sql := `
select medium, points, log_date
from immersion_logs
where user_id = $1 and ` + guildScope + ` and log_date >= $4
order by log_date asc
`
	return store.Many(ctx, r.q, func(row store.Row) (history.Entry, error) {
		var (
			m string
			e history.Entry
			t time.Time
		)
		if err := row.Scan(&m, &e.Points, &t); err != nil {
			return e, err
		}
		e.Medium, e.Date = medium.Medium(m), calendar.Of(t)
		return e, nil
	}, sql, userID, f.Only, f.Exclude, from.Time())
}

func (r *queries) Totals(ctx context.Context, userID string, f domain.GuildFilter) ([]domain.MediumTotal, error) {
	sql := `
select medium, unit, sum(count)::bigint, sum(points)::bigint
from immersion_logs
where user_id = $1 and ` + guildScope + `
group by medium, unit
`
	return store.Many(ctx, r.q, func(row store.Row) (domain.MediumTotal, error) {
		var (
			m, u string
			t    domain.MediumTotal
		)
		if err := row.Scan(&m, &u, &t.Count, &t.Points); err != nil {
			return t, err
		}
		t.Medium, t.Unit = medium.Medium(m), normalize.Unit(u)
		return t, nil
	}, sql, userID, f.Only, f.Exclude)
}
