// Package service stores immersion logs and answers the read queries the profile needs
package service

import (
	"context"
	"time"

	"immersion/internal/core/calendar"
	"immersion/internal/core/history"
	"immersion/internal/modkit/repokit"
	perr "immersion/internal/platform/errors"
	"immersion/internal/platform/logger"
	"immersion/internal/services/logs/domain"
	"immersion/internal/services/logs/repo"
)

// insertAttempts bounds retries of a conflicting insert transaction
const insertAttempts = 3

// retryDelay is a seam for tests
var retryDelay = func(attempt int) time.Duration { return time.Duration(attempt) * 50 * time.Millisecond }

// Service defines the logs service contract
type Service interface {
	domain.StorePort
}

// Svc implements the logs service
type Svc struct {
	Repo   repo.Repo
	binder repokit.Binder[repo.Repo]
	db     repokit.TxRunner
	mirror domain.Mirror
}

// New constructs a logs service; a nil mirror disables mirroring
func New(db repokit.TxRunner, binder repokit.Binder[repo.Repo], mirror domain.Mirror) *Svc {
	if db == nil {
		panic("logs.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("logs.Service requires a non nil Repo binder")
	}
	if mirror == nil {
		mirror = repo.Nop{}
	}
	return &Svc{Repo: binder.Bind(db), binder: binder, db: db, mirror: mirror}
}

// Insert writes the user row and the log in one transaction, then mirrors the record
// mirror failures are logged and never fail the insert
func (s *Svc) Insert(ctx context.Context, rec domain.Record) error {
	var err error
	for attempt := 1; attempt <= insertAttempts; attempt++ {
		err = repokit.InTx(ctx, s.db, s.binder, func(r repo.Repo) error {
			if err := r.TouchUser(ctx, rec.UserID); err != nil {
				return err
			}
			return r.Insert(ctx, rec)
		})
		if err == nil || !perr.IsRetryable(err) || attempt == insertAttempts {
			break
		}
		logger.C(ctx).Warn().Err(err).Int("attempt", attempt).Msg("retrying immersion log insert")
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(retryDelay(attempt)):
		}
	}
	if err != nil {
		return perr.FromPostgres(err, "could not save immersion log")
	}

	if merr := s.mirror.Mirror(ctx, rec); merr != nil {
		logger.C(ctx).Warn().Err(merr).Str("log_id", rec.ID.String()).Msg("clickhouse mirror failed")
	}
	return nil
}

// Dates returns the user's distinct log dates
func (s *Svc) Dates(ctx context.Context, userID string, f domain.GuildFilter) ([]calendar.Date, error) {
	out, err := s.Repo.Dates(ctx, userID, f)
	return out, perr.FromPostgres(err, "could not load log dates")
}

// Since returns history entries from a date onward
func (s *Svc) Since(ctx context.Context, userID string, f domain.GuildFilter, from calendar.Date) ([]history.Entry, error) {
	out, err := s.Repo.Since(ctx, userID, f, from)
	return out, perr.FromPostgres(err, "could not load log history")
}

// Totals returns per medium sums
func (s *Svc) Totals(ctx context.Context, userID string, f domain.GuildFilter) ([]domain.MediumTotal, error) {
	out, err := s.Repo.Totals(ctx, userID, f)
	return out, perr.FromPostgres(err, "could not load totals")
}
