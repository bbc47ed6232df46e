// Package streak counts consecutive activity days
// Dates are already localized calendar days; duplicates collapse to one day
package streak

import (
	"slices"

	"immersion/internal/core/calendar"
)

// Info holds the current and longest streak lengths in days
type Info struct {
	Current int `json:"current"`
	Longest int `json:"longest"`
}

// Current returns the run of consecutive active days ending at asOf
// when asOf itself has no activity the run may end at the day before (still alive through yesterday)
// otherwise the streak is 0. Dates after asOf are ignored
func Current(dates []calendar.Date, asOf calendar.Date) int {
	seen := make(map[calendar.Date]struct{}, len(dates))
	for _, d := range dates {
		if !d.After(asOf) {
			seen[d] = struct{}{}
		}
	}

	day := asOf
	if _, ok := seen[day]; !ok {
		day = asOf.AddDays(-1)
		if _, ok := seen[day]; !ok {
			return 0
		}
	}

	n := 0
	for {
		if _, ok := seen[day]; !ok {
			return n
		}
		n++
		day = day.AddDays(-1)
	}
}

// Compute returns the current streak as of asOf and the longest run found anywhere up to asOf
func Compute(dates []calendar.Date, asOf calendar.Date) Info {
	days := distinctUpTo(dates, asOf)
	info := Info{Current: Current(dates, asOf)}
	if len(days) == 0 {
		return info
	}

	run := 1
	info.Longest = 1
	for i := 1; i < len(days); i++ {
		if days[i-1].AddDays(1) == days[i] {
			run++
			info.Longest = max(info.Longest, run)
		} else {
			run = 1
		}
	}
	info.Longest = max(info.Longest, info.Current)
	return info
}

// distinctUpTo returns sorted unique dates not after asOf
func distinctUpTo(dates []calendar.Date, asOf calendar.Date) []calendar.Date {
	out := make([]calendar.Date, 0, len(dates))
	for _, d := range dates {
		if !d.After(asOf) {
			out = append(out, d)
		}
	}
	slices.SortFunc(out, calendar.Date.Compare)
	return slices.Compact(out)
}
