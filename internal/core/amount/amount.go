// Package amount parses user supplied immersion amounts
// Two disjoint grammars are accepted
//
//	time     [<N>h][<N>m][<N>s]  at least one component, in that order ("1h30m", "45m", "2m5s")
//	episodes <N>ep               N > 0 ("10ep")
//
// Parsing is pure; range rules (minimum and maximum session size) belong to the normalizer
package amount

import (
	"errors"
	"math"
	"regexp"
	"strconv"
)

// Kind discriminates the parsed amount
type Kind uint8

const (
	// KindDuration is a time grammar amount measured in seconds
	KindDuration Kind = iota + 1
	// KindEpisodes is an episode grammar amount
	KindEpisodes
)

func (k Kind) String() string {
	switch k {
	case KindDuration:
		return "duration"
	case KindEpisodes:
		return "episodes"
	default:
		return "unknown"
	}
}

// Amount is either a duration in seconds or an episode count
// exactly one of Seconds or Episodes is meaningful, selected by Kind
type Amount struct {
	Kind     Kind
	Seconds  int
	Episodes int
}

// Duration builds a duration amount
func Duration(seconds int) Amount { return Amount{Kind: KindDuration, Seconds: seconds} }

// Episodes builds an episode amount
func Episodes(n int) Amount { return Amount{Kind: KindEpisodes, Episodes: n} }

// IsEpisodes reports whether a was parsed from the episode grammar
func (a Amount) IsEpisodes() bool { return a.Kind == KindEpisodes }

// ErrFormat is returned when text matches neither grammar
var ErrFormat = errors.New("amount: expected a time like 1h30m or 45m, or episodes like 10ep")

// ErrTimeFormat is returned by ParseTime when text is not a time grammar string
var ErrTimeFormat = errors.New("amount: expected a time like 45m or 1h30m")

// MaxComponent is the value an oversized numeric group clamps to
const MaxComponent = math.MaxInt32

var (
	timePattern    = regexp.MustCompile(`^(?:(\d+)h)?(?:(\d+)m)?(?:(\d+)s)?$`)
	episodePattern = regexp.MustCompile(`^(\d+)ep$`)
)

// Parse turns text into an Amount or ErrFormat
func Parse(text string) (Amount, error) {
	if m := episodePattern.FindStringSubmatch(text); m != nil {
		n, err := component(m[1])
		if err != nil || n <= 0 {
			return Amount{}, ErrFormat
		}
		return Episodes(n), nil
	}
	secs, err := ParseTime(text)
	if err != nil {
		return Amount{}, ErrFormat
	}
	return Duration(secs), nil
}

// ParseTime parses the time grammar only and returns total seconds
// missing components count as zero; "0m" is valid and yields 0
func ParseTime(text string) (int, error) {
	if text == "" {
		return 0, ErrTimeFormat
	}
	m := timePattern.FindStringSubmatch(text)
	if m == nil {
		return 0, ErrTimeFormat
	}
	var parts [3]int
	for i, raw := range m[1:] {
		v, err := component(raw)
		if err != nil {
			return 0, ErrTimeFormat
		}
		parts[i] = v
	}
	return parts[0]*3600 + parts[1]*60 + parts[2], nil
}

// component parses one numeric group; empty means the component was omitted
// digits beyond 32 bits clamp to MaxComponent, leaving the size rules to the normalizer
func component(s string) (int, error) {
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseInt(s, 10, 32)
	if errors.Is(err, strconv.ErrRange) {
		return MaxComponent, nil
	}
	if err != nil {
		return 0, err
	}
	return int(v), nil
}

// Minutes converts seconds to minutes rounded to one decimal place
func Minutes(seconds int) float64 {
	return math.Round(float64(seconds)/60*10) / 10
}
