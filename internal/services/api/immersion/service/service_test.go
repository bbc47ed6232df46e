package service

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"immersion/internal/core/calendar"
	"immersion/internal/core/medium"
	"immersion/internal/core/normalize"
	perr "immersion/internal/platform/errors"
	"immersion/internal/platform/logger"
	pnet "immersion/internal/platform/net"
	ptime "immersion/internal/platform/time"
	"immersion/internal/platform/testkit"
	"immersion/internal/services/api/immersion/domain"
	logs "immersion/internal/services/logs/domain"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type fakeStore struct {
	logs.StorePort
	recs []logs.Record
	err  error
}

func (f *fakeStore) Insert(_ context.Context, rec logs.Record) error {
	if f.err != nil {
		return f.err
	}
	f.recs = append(f.recs, rec)
	return nil
}

type zones map[string]*time.Location

func (z zones) Location(_ context.Context, id string) (*time.Location, error) {
	if loc, ok := z[id]; ok {
		return loc, nil
	}
	return time.UTC, nil
}

// 2024-03-10 03:00 UTC is already 2024-03-10 noon in Tokyo and still 2024-03-09 in Los Angeles
var now = time.Date(2024, 3, 10, 3, 0, 0, 0, time.UTC)

func newSvc(t *testing.T, st *fakeStore) *Svc {
	t.Helper()
	tokyo, _ := time.LoadLocation("Asia/Tokyo")
	la, _ := time.LoadLocation("America/Los_Angeles")
	return New(st, zones{"tokyo": tokyo, "la": la}, ptime.Fixed(now))
}

func TestLog_DatesInUserZone(t *testing.T) {
	testkit.Serial(t)
	id := uuid.MustParse("7f6f3c1e-6f43-4b0e-9a62-0a4c2f2b9d11")
	testkit.Swap(t, &newID, func() uuid.UUID { return id })

	st := &fakeStore{}
	s := newSvc(t, st)

	got, err := s.Log(context.Background(), domain.LogInput{
		UserID: "la", GuildID: "g1", Medium: "anime", Amount: "10ep", Title: "  Frieren\t\n ", Notes: " ",
	})
	if err != nil {
		t.Fatalf("Log: %v", err)
	}
	if got.Date != calendar.New(2024, 3, 9) || got.Backfilled {
		t.Fatalf("date = %s backfilled = %v", got.Date, got.Backfilled)
	}
	if got.ID != id || got.Title != "Frieren" || got.Notes != "" || !got.CreatedAt.Equal(now) {
		t.Fatalf("record = %+v", got.Record)
	}
	if got.Medium != medium.Anime || got.Points != 12600 || got.Unit != normalize.UnitEpisodes {
		t.Fatalf("log = %+v", got.Log)
	}
	if got.Headline != "Logged 10ep of Anime" || got.Description != "1260 seconds/episode → +12600 seconds" {
		t.Fatalf("summary = %q / %q", got.Headline, got.Description)
	}
	if len(st.recs) != 1 || st.recs[0].UserID != "la" {
		t.Fatalf("stored = %+v", st.recs)
	}
}

func TestBackfill_FutureIsRelativeToUserToday(t *testing.T) {
	t.Parallel()

	st := &fakeStore{}
	s := newSvc(t, st)
	in := domain.BackfillInput{
		LogInput: domain.LogInput{Medium: "Listening", Amount: "45m", Title: "podcast"},
		Date:     "2024-03-10",
	}

	in.UserID = "tokyo"
	got, err := s.Backfill(context.Background(), in)
	if err != nil || !got.Backfilled || got.Date != calendar.New(2024, 3, 10) {
		t.Fatalf("tokyo: %+v %v", got.Log, err)
	}

	in.UserID = "la"
	_, err = s.Backfill(context.Background(), in)
	if !perr.IsCode(err, perr.ErrorCodeInvalidArgument) || err.Error() != normalize.ReasonFutureDate {
		t.Fatalf("la: err = %v", err)
	}
	if len(st.recs) != 1 {
		t.Fatalf("stored %d records", len(st.recs))
	}
}

func TestLog_Rejections(t *testing.T) {
	t.Parallel()

	s := newSvc(t, &fakeStore{})
	cases := []struct {
		name  string
		in    domain.LogInput
		code  perr.ErrorCode
		field string
	}{
		{"bad amount", domain.LogInput{Medium: "Manga", Amount: "lots", Title: "x"}, perr.ErrorCodeValidation, "amount"},
		{"episodes not anime", domain.LogInput{Medium: "Manga", Amount: "2ep", Title: "x"}, perr.ErrorCodeInvalidArgument, "amount"},
		{"unknown medium", domain.LogInput{Medium: "Podcast", Amount: "1h", Title: "x"}, perr.ErrorCodeInvalidArgument, "medium"},
		{"too small", domain.LogInput{Medium: "Manga", Amount: "30s", Title: "x"}, perr.ErrorCodeInvalidArgument, "amount"},
		{"bad episode length", domain.LogInput{Medium: "Anime", Amount: "2ep", EpisodeLength: "long", Title: "x"}, perr.ErrorCodeValidation, "episode_length"},
		{"blank title", domain.LogInput{Medium: "Manga", Amount: "10m", Title: "\u200b\t"}, perr.ErrorCodeValidation, "title"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := s.Log(context.Background(), c.in)
			e, ok := perr.As(err)
			if !ok || e.Code() != c.code || e.Field() != c.field {
				t.Fatalf("err = %v", err)
			}
		})
	}
}

func TestLog_StoreErrorPassesThrough(t *testing.T) {
	t.Parallel()

	boom := perr.Unavailablef("db down")
	_, err := newSvc(t, &fakeStore{err: boom}).Log(context.Background(),
		domain.LogInput{Medium: "YouTube", Amount: "5m", Title: "clip"})
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v", err)
	}
}

func TestReject_LeavesForeignErrors(t *testing.T) {
	t.Parallel()
	plain := errors.New("plain")
	if Reject(plain) != plain {
		t.Fatal("foreign errors should pass through")
	}
}

func TestLog_LogsCaller(t *testing.T) {
	testkit.Serial(t)
	var buf bytes.Buffer
	t.Cleanup(logger.Replace(zerolog.New(&buf)))

	ctx := pnet.WithCaller(context.Background(), "bot")
	if _, err := newSvc(t, &fakeStore{}).Log(ctx, domain.LogInput{
		UserID: "tokyo", GuildID: "g1", Medium: "Listening", Amount: "45m", Title: "podcast",
	}); err != nil {
		t.Fatal(err)
	}
	testkit.MustContain(t, buf.String(), `"caller":"bot"`)
	testkit.MustContain(t, buf.String(), `"points":2700`)
}
