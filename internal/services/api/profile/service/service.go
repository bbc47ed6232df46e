// Package service builds user profiles from stored logs
package service

import (
	"context"
	"math"
	"slices"
	"time"

	"immersion/internal/core/amount"
	"immersion/internal/core/calendar"
	"immersion/internal/core/history"
	"immersion/internal/core/medium"
	"immersion/internal/core/normalize"
	"immersion/internal/core/streak"
	"immersion/internal/modkit/repokit"
	perr "immersion/internal/platform/errors"
	"immersion/internal/platform/logger"
	ptime "immersion/internal/platform/time"
	"immersion/internal/services/api/profile/domain"
	"immersion/internal/services/api/profile/repo"
	logs "immersion/internal/services/logs/domain"
)

const (
	// pagesPerMangaMinute estimates manga pages read
	pagesPerMangaMinute = 5
	// charsPerReadMinute estimates characters read for Readtime and Visual Novel
	charsPerReadMinute = 500
)

// Service defines the profile service contract
type Service interface {
	domain.ServicePort
}

// Config carries the knobs the service reads from CORE_IMMERSION_
type Config struct {
	TestingGuild string
	DefaultZone  *time.Location
}

// Svc implements the profile service
type Svc struct {
	Repo  repo.Repo
	logs  logs.StorePort
	clock ptime.Clock
	cfg   Config
}

// New constructs a profile service
func New(db repokit.Queryer, binder repokit.Binder[repo.Repo], store logs.StorePort, clock ptime.Clock, cfg Config) *Svc {
	if db == nil {
		panic("profile.Service requires a non nil Queryer")
	}
	if store == nil {
		panic("profile.Service requires a logs store")
	}
	if cfg.DefaultZone == nil {
		cfg.DefaultZone = time.UTC
	}
	return &Svc{Repo: binder.Bind(db), logs: store, clock: ptime.Or(clock), cfg: cfg}
}

// Location returns the user's zone, the default zone for unknown users or unloadable names
func (s *Svc) Location(ctx context.Context, userID string) (*time.Location, error) {
	loc, _, err := s.location(ctx, userID)
	return loc, err
}

func (s *Svc) location(ctx context.Context, userID string) (*time.Location, bool, error) {
	tz, found, err := s.Repo.Timezone(ctx, userID)
	if err != nil {
		return nil, false, perr.FromPostgres(err, "could not load user")
	}
	if !found {
		return s.cfg.DefaultZone, false, nil
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		logger.C(ctx).Warn().Err(err).Str("timezone", tz).Msg("stored time zone does not load; using default")
		return s.cfg.DefaultZone, true, nil
	}
	return loc, true, nil
}

// Profile builds the all-time totals, streak and the period's history for a user
func (s *Svc) Profile(ctx context.Context, in domain.ProfileInput) (domain.Profile, error) {
	period, ok := domain.ParsePeriod(in.Period)
	if !ok {
		return domain.Profile{}, perr.WithField(perr.InvalidArgf("Unknown period %q.", in.Period), "period")
	}

	loc, found, err := s.location(ctx, in.UserID)
	if err != nil {
		return domain.Profile{}, err
	}
	if !found {
		return domain.Profile{}, perr.NotFoundf("User not found")
	}

	today := calendar.Today(s.clock.Now(), loc)
	scope := logs.ScopeFor(in.GuildID, s.cfg.TestingGuild)

	totals, err := s.logs.Totals(ctx, in.UserID, scope)
	if err != nil {
		return domain.Profile{}, err
	}
	dates, err := s.logs.Dates(ctx, in.UserID, scope)
	if err != nil {
		return domain.Profile{}, err
	}
	entries, err := s.logs.Since(ctx, in.UserID, scope, today.AddDays(-(period.Days() - 1)))
	if err != nil {
		return domain.Profile{}, err
	}

	st := streak.Compute(dates, today)
	if err := s.Repo.SaveStreak(ctx, in.UserID, st.Current); err != nil {
		logger.C(ctx).Warn().Err(err).Int("streak", st.Current).Msg("could not cache streak")
	}

	out := domain.Profile{
		UserID:   in.UserID,
		Timezone: loc.String(),
		Period:   string(period),
		Today:    today,
		Streak:   st,
		History:  history.Aggregate(entries, period.Days(), today),
	}
	fillTotals(&out, totals)
	return out, nil
}

// fillTotals folds per medium sums into the breakdown, total points and estimates
func fillTotals(p *domain.Profile, totals []logs.MediumTotal) {
	byMedium := map[medium.Medium]*domain.BreakdownRow{}
	var readSeconds, mangaSeconds int64

	for _, t := range totals {
		p.TotalPoints += t.Points
		row, ok := byMedium[t.Medium]
		if !ok {
			row = &domain.BreakdownRow{Medium: string(t.Medium), Unit: t.Medium.Unit()}
			byMedium[t.Medium] = row
		}
		row.Points += t.Points

		if t.Unit == normalize.UnitEpisodes {
			row.Amount += float64(t.Count)
			continue
		}
		row.Amount += amount.Minutes(int(t.Count))
		switch t.Medium {
		case medium.Manga:
			mangaSeconds += t.Count
		case medium.Readtime, medium.VisualNovel:
			readSeconds += t.Count
		}
	}

	p.Breakdown = make([]domain.BreakdownRow, 0, len(byMedium))
	for _, row := range byMedium {
		p.Breakdown = append(p.Breakdown, *row)
	}
	slices.SortFunc(p.Breakdown, func(a, b domain.BreakdownRow) int {
		return medium.Medium(a.Medium).Order() - medium.Medium(b.Medium).Order()
	})

	p.MangaPages = int64(math.Round(float64(mangaSeconds) / 60 * pagesPerMangaMinute))
	p.CharactersRead = int64(math.Round(float64(readSeconds) / 60 * charsPerReadMinute))
}

// SetTimezone stores a validated IANA zone, creating the user row when needed
func (s *Svc) SetTimezone(ctx context.Context, in domain.TimezoneInput) (domain.TimezoneResult, error) {
	loc, err := time.LoadLocation(in.Timezone)
	if err != nil || in.Timezone == "" || in.Timezone == "Local" {
		return domain.TimezoneResult{}, perr.WithField(perr.InvalidArgf("Unknown time zone %q.", in.Timezone), "timezone")
	}
	if err := s.Repo.SetTimezone(ctx, in.UserID, loc.String()); err != nil {
		return domain.TimezoneResult{}, perr.FromPostgres(err, "could not save time zone")
	}
	return domain.TimezoneResult{UserID: in.UserID, Timezone: loc.String()}, nil
}
