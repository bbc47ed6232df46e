// Package calendar holds a timezone free calendar date and its strict parser
package calendar

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// Layout is the only accepted textual form
const Layout = "2006-01-02"

// ErrFormat is returned for malformed or impossible dates
var ErrFormat = errors.New("calendar: expected a real date as YYYY-MM-DD")

var datePattern = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})$`)

// Date is a year, month, day triple with no time of day
// the zero value is not a valid date, see IsZero
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// New builds a Date from a triple, normalizing overflow the way time.Date does
func New(year int, month time.Month, day int) Date {
	return Of(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// Of returns the calendar date of t in t's own location
func Of(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// In returns the calendar date of instant t as seen from loc
// a nil loc means UTC
func In(t time.Time, loc *time.Location) Date {
	if loc == nil {
		loc = time.UTC
	}
	return Of(t.In(loc))
}

// Today is In(now, loc)
func Today(now time.Time, loc *time.Location) Date { return In(now, loc) }

// Parse accepts strict YYYY-MM-DD and rejects impossible dates
// the triple is rebuilt through time.Date, which normalizes Feb 30 to Mar 2 and month 13 to
// next January; any difference from the input fields means the input was not a real date
func Parse(text string) (Date, error) {
	m := datePattern.FindStringSubmatch(text)
	if m == nil {
		return Date{}, ErrFormat
	}
	y, _ := strconv.Atoi(m[1])
	mo, _ := strconv.Atoi(m[2])
	d, _ := strconv.Atoi(m[3])

	got := New(y, time.Month(mo), d)
	if got.Year != y || int(got.Month) != mo || got.Day != d {
		return Date{}, ErrFormat
	}
	return got, nil
}

// MustParse is Parse that panics, for tests and constants
func MustParse(text string) Date {
	d, err := Parse(text)
	if err != nil {
		panic(fmt.Sprintf("calendar: MustParse(%q): %v", text, err))
	}
	return d
}

// IsZero reports whether d is the zero Date
func (d Date) IsZero() bool { return d == Date{} }

// Time returns midnight UTC of d
func (d Date) Time() time.Time { return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC) }

// AddDays moves d by n calendar days
func (d Date) AddDays(n int) Date { return Of(d.Time().AddDate(0, 0, n)) }

// Before reports whether d is strictly earlier than o
func (d Date) Before(o Date) bool { return d.Compare(o) < 0 }

// After reports whether d is strictly later than o
func (d Date) After(o Date) bool { return d.Compare(o) > 0 }

// Compare returns -1, 0 or +1
func (d Date) Compare(o Date) int {
	switch {
	case d.Year != o.Year:
		return sign(d.Year - o.Year)
	case d.Month != o.Month:
		return sign(int(d.Month) - int(o.Month))
	default:
		return sign(d.Day - o.Day)
	}
}

// DaysSince returns the whole number of days from o to d (d - o)
func (d Date) DaysSince(o Date) int {
	return int(d.Time().Sub(o.Time()).Hours() / 24)
}

// String formats d as YYYY-MM-DD
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// MarshalText implements encoding.TextMarshaler; the zero Date is ""
func (d Date) MarshalText() ([]byte, error) {
	if d.IsZero() {
		return []byte{}, nil
	}
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler; "" is the zero Date
func (d *Date) UnmarshalText(b []byte) error {
	if len(b) == 0 {
		*d = Date{}
		return nil
	}
	v, err := Parse(string(b))
	if err != nil {
		return err
	}
	*d = v
	return nil
}

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	default:
		return 0
	}
}
