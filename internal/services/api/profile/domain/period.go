// Package domain holds profile DTOs, periods and ports
package domain

// Period names a history window
type Period string

// Periods
const (
	PeriodAll   Period = "all"
	PeriodYear  Period = "year"
	PeriodMonth Period = "month"
	PeriodWeek  Period = "week"
)

var periodDays = map[Period]int{
	PeriodAll:   600,
	PeriodYear:  365,
	PeriodMonth: 30,
	PeriodWeek:  7,
}

// ParsePeriod resolves a period name; empty means all
func ParsePeriod(s string) (Period, bool) {
	if s == "" {
		return PeriodAll, true
	}
	p := Period(s)
	_, ok := periodDays[p]
	return p, ok
}

// Days is the number of history buckets the period covers
func (p Period) Days() int { return periodDays[p] }
