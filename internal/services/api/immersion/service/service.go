// Package service runs live and backfilled logs through the normalizer and stores them
package service

import (
	"context"
	"errors"

	"immersion/internal/core/calendar"
	"immersion/internal/core/normalize"
	perr "immersion/internal/platform/errors"
	"immersion/internal/platform/logger"
	pnet "immersion/internal/platform/net"
	ptime "immersion/internal/platform/time"
	"immersion/internal/services/api/immersion/domain"
	profile "immersion/internal/services/api/profile/domain"
	logs "immersion/internal/services/logs/domain"

	"github.com/google/uuid"
)

// newID is a seam for tests
var newID = uuid.New

// Service defines the immersion service contract
type Service interface {
	domain.ServicePort
}

// Svc implements the immersion service
type Svc struct {
	store logs.StorePort
	zones profile.ZonePort
	clock ptime.Clock
}

// New constructs an immersion service
func New(store logs.StorePort, zones profile.ZonePort, clock ptime.Clock) *Svc {
	if store == nil || zones == nil {
		panic("immersion.Service requires a logs store and a zone port")
	}
	return &Svc{store: store, zones: zones, clock: ptime.Or(clock)}
}

// Log stores a live log dated today in the user's zone
func (s *Svc) Log(ctx context.Context, in domain.LogInput) (domain.Logged, error) {
	return s.record(ctx, in, "")
}

// Backfill stores a log on an explicit date that may not be after the user's today
func (s *Svc) Backfill(ctx context.Context, in domain.BackfillInput) (domain.Logged, error) {
	return s.record(ctx, in.LogInput, in.Date)
}

func (s *Svc) record(ctx context.Context, in domain.LogInput, date string) (domain.Logged, error) {
	loc, err := s.zones.Location(ctx, in.UserID)
	if err != nil {
		return domain.Logged{}, err
	}
	now := s.clock.Now()

	l, err := normalize.FromRaw(normalize.Raw{
		Medium:        in.Medium,
		Amount:        in.Amount,
		Date:          date,
		EpisodeLength: in.EpisodeLength,
	}, calendar.Today(now, loc))
	if err != nil {
		return domain.Logged{}, Reject(err)
	}

	title := normalize.CleanText(in.Title, normalize.MaxTitleLen)
	if title == "" {
		return domain.Logged{}, perr.WithField(perr.Validationf("title is a required field"), "title")
	}

	rec := logs.Record{
		ID:        newID(),
		UserID:    in.UserID,
		GuildID:   in.GuildID,
		Title:     title,
		Notes:     normalize.CleanText(in.Notes, normalize.MaxNotesLen),
		Log:       l,
		CreatedAt: now.UTC(),
	}
	if err := s.store.Insert(ctx, rec); err != nil {
		return domain.Logged{}, err
	}

	logger.C(ctx).Info().
		Str("log_id", rec.ID.String()).
		Str("caller", pnet.Caller(ctx)).
		Str("medium", string(l.Medium)).
		Int("points", l.Points).
		Str("date", l.Date.String()).
		Bool("backfilled", l.Backfilled).
		Msg("immersion logged")

	return domain.Logged{Record: rec, Description: l.Description(), Headline: l.Headline()}, nil
}

// Reject maps a normalizer rejection onto a project error carrying the user facing reason
// format failures are validation errors, rule and bounds failures are invalid arguments
func Reject(err error) error {
	var ne *normalize.Error
	if !errors.As(err, &ne) {
		return err
	}
	code := perr.ErrorCodeInvalidArgument
	if ne.Kind == normalize.KindFormat {
		code = perr.ErrorCodeValidation
	}
	return perr.WithField(perr.New(code, ne.Reason), ne.Field)
}
