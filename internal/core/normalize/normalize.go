// Package normalize turns a parsed immersion amount into a canonical, point bearing log
// Rules, in order
// 1 episodes are only accepted for Anime
// 2 episode logs resolve a per episode length, custom (time grammar) or 21 minutes
// 3 Anime must be logged as episodes
// 4 other media score their seconds directly
// 5 the total must sit within 60..72000 points
// One point is one second of immersion
package normalize

import (
	"fmt"
	"math"

	"immersion/internal/core/amount"
	"immersion/internal/core/calendar"
	"immersion/internal/core/medium"
)

const (
	// DefaultEpisodeLength is the assumed episode length in seconds (21 minutes)
	DefaultEpisodeLength = 1260
	// MinPoints is the smallest accepted log (one minute)
	MinPoints = 60
	// MaxPoints is the largest accepted log (20 hours)
	MaxPoints = 72000
)

// Unit says how Log.Count is read
type Unit string

// Units
const (
	UnitEpisodes Unit = "Episodes"
	UnitSeconds  Unit = "Seconds"
)

// Input is a parsed logging request
type Input struct {
	Medium medium.Medium
	Amount amount.Amount
	// EpisodeLength is an optional time grammar string, only read for episode amounts
	EpisodeLength string
	Date          calendar.Date
	Backfilled    bool
}

// Log is the canonical record certified valid for storage
// UnitLength is zero unless Unit is UnitEpisodes
type Log struct {
	Medium     medium.Medium `json:"medium"`
	Unit       Unit          `json:"unit"`
	Count      int           `json:"count"`
	UnitLength int           `json:"unit_length,omitempty"`
	Points     int           `json:"points"`
	Date       calendar.Date `json:"date"`
	Backfilled bool          `json:"backfilled"`
}

// Normalize applies the medium and bounds rules to in
func Normalize(in Input) (Log, error) {
	if !in.Medium.Valid() {
		return Log{}, unknownMedium(string(in.Medium))
	}

	out := Log{Medium: in.Medium, Date: in.Date, Backfilled: in.Backfilled}

	switch in.Amount.Kind {
	case amount.KindEpisodes:
		if !in.Medium.AllowsEpisodes() {
			return Log{}, ruleErr("amount", ReasonEpisodesNotAnime)
		}
		length := DefaultEpisodeLength
		if in.EpisodeLength != "" {
			secs, err := amount.ParseTime(in.EpisodeLength)
			if err != nil || secs <= 0 {
				return Log{}, formatErr("episode_length", ReasonEpisodeLengthFormat)
			}
			length = secs
		}
		out.Unit = UnitEpisodes
		out.Count = in.Amount.Episodes
		out.UnitLength = length
		out.Points = mulSaturating(in.Amount.Episodes, length)

	case amount.KindDuration:
		if in.Medium.AllowsEpisodes() {
			return Log{}, ruleErr("amount", ReasonAnimeNeedsEpisodes)
		}
		out.Unit = UnitSeconds
		out.Count = in.Amount.Seconds
		out.Points = in.Amount.Seconds

	default:
		return Log{}, formatErr("amount", ReasonAmountFormat)
	}

	switch {
	case out.Points < MinPoints:
		return Log{}, tooSmall(out.Points)
	case out.Points > MaxPoints:
		return Log{}, tooLarge(out.Points)
	}
	return out, nil
}

// Raw is the unparsed request as typed by the user
type Raw struct {
	Medium        string
	Amount        string
	Date          string // empty for live logging
	EpisodeLength string
}

// FromRaw parses every field of raw and normalizes the result
// an empty Date logs on today and is not a backfill; an explicit Date is a backfill and may
// not be later than today
func FromRaw(raw Raw, today calendar.Date) (Log, error) {
	m, err := medium.Parse(raw.Medium)
	if err != nil {
		return Log{}, unknownMedium(raw.Medium)
	}

	date, backfilled := today, false
	if raw.Date != "" {
		d, err := calendar.Parse(raw.Date)
		if err != nil {
			return Log{}, formatErr("date", ReasonDateFormat)
		}
		if d.After(today) {
			return Log{}, ruleErr("date", ReasonFutureDate)
		}
		date, backfilled = d, true
	}

	amt, err := amount.Parse(raw.Amount)
	if err != nil {
		return Log{}, formatErr("amount", ReasonAmountFormat)
	}

	return Normalize(Input{
		Medium:        m,
		Amount:        amt,
		EpisodeLength: raw.EpisodeLength,
		Date:          date,
		Backfilled:    backfilled,
	})
}

// Description is the scoring line shown with a confirmation
func (l Log) Description() string {
	if l.Unit == UnitEpisodes {
		return fmt.Sprintf("%d seconds/episode → +%d seconds", l.UnitLength, l.Points)
	}
	return fmt.Sprintf("1 point/sec → +%d points", l.Points)
}

// Headline summarizes what was logged
func (l Log) Headline() string {
	if l.Unit == UnitEpisodes {
		return fmt.Sprintf("Logged %dep of %s", l.Count, l.Medium)
	}
	return fmt.Sprintf("Logged %s Minutes of %s", formatMinutes(l.Points), l.Medium)
}

// mulSaturating multiplies non negative ints, clamping at MaxInt
func mulSaturating(a, b int) int {
	if a == 0 || b == 0 {
		return 0
	}
	if a > math.MaxInt/b {
		return math.MaxInt
	}
	return a * b
}
