package normalize

import (
	"errors"
	"fmt"
	"strconv"

	"immersion/internal/core/amount"
)

// Kind classifies a rejection
type Kind uint8

const (
	// KindFormat means a string did not match its grammar
	KindFormat Kind = iota + 1
	// KindRule means valid syntax that breaks a domain rule
	KindRule
	// KindBounds is a rule violation of the 60..72000 point window
	KindBounds
)

func (k Kind) String() string {
	switch k {
	case KindFormat:
		return "format"
	case KindRule:
		return "rule"
	case KindBounds:
		return "bounds"
	default:
		return "unknown"
	}
}

// Error is a user correctable rejection
// Reason is shown to the user verbatim
type Error struct {
	Kind   Kind
	Field  string
	Reason string
}

func (e *Error) Error() string { return e.Reason }

// KindOf returns the Kind of err, or 0 when err is not a rejection
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

// user facing reasons
const (
	ReasonAmountFormat        = "Invalid input format. Examples: 2ep, 1h30m, 45m."
	ReasonDateFormat          = "Invalid date format. Please use YYYY-MM-DD."
	ReasonEpisodeLengthFormat = "Invalid episode length format. Examples: 45m, 1h30m."
	ReasonEpisodesNotAnime    = "You can only log Anime as Episodes."
	ReasonAnimeNeedsEpisodes  = "For custom anime episode lengths, use episode_length along with episodes."
	ReasonFutureDate          = "You can't log immersion on a future date."
)

func formatErr(field, reason string) error {
	return &Error{Kind: KindFormat, Field: field, Reason: reason}
}

func ruleErr(field, reason string) error {
	return &Error{Kind: KindRule, Field: field, Reason: reason}
}

func unknownMedium(name string) error {
	return ruleErr("medium", fmt.Sprintf("Unknown medium %q.", name))
}

func tooSmall(points int) error {
	return &Error{
		Kind:   KindBounds,
		Field:  "amount",
		Reason: fmt.Sprintf("The minimum log size is 1 minute (%d seconds). You entered %d seconds.", MinPoints, points),
	}
}

func tooLarge(points int) error {
	return &Error{
		Kind:  KindBounds,
		Field: "amount",
		Reason: fmt.Sprintf("The maximum log size is %d minutes (%d hours). You entered %s minutes.",
			MaxPoints/60, MaxPoints/3600, formatMinutes(points)),
	}
}

// formatMinutes prints minutes with at most one decimal ("1250", "1200.1")
func formatMinutes(seconds int) string {
	return strconv.FormatFloat(amount.Minutes(seconds), 'f', -1, 64)
}
