// Package history folds immersion logs into a dense per day series for charting
package history

import (
	"immersion/internal/core/amount"
	"immersion/internal/core/calendar"
	"immersion/internal/core/medium"
)

// Entry is the slice of a stored log the aggregator needs
type Entry struct {
	Medium medium.Medium
	Points int
	Date   calendar.Date
}

// Bucket is one day of the series, in minutes per category
type Bucket struct {
	Date   calendar.Date `json:"date"`
	Watch  float64       `json:"watchTime"`
	Listen float64       `json:"listeningTime"`
	Read   float64       `json:"readingTime"`
}

// Total returns the bucket's minutes across all categories
func (b Bucket) Total() float64 { return b.Watch + b.Listen + b.Read }

// Aggregate returns exactly windowDays buckets, oldest first, ending at today
// entries outside the window or with an unknown medium are skipped
// seconds are summed per category and day before converting to minutes
func Aggregate(entries []Entry, windowDays int, today calendar.Date) []Bucket {
	if windowDays <= 0 {
		return []Bucket{}
	}
	first := today.AddDays(-(windowDays - 1))

	type secs struct{ watch, listen, read int }
	sums := make([]secs, windowDays)

	for _, e := range entries {
		if e.Date.Before(first) || e.Date.After(today) {
			continue
		}
		i := e.Date.DaysSince(first)
		switch e.Medium.Category() {
		case medium.Watch:
			sums[i].watch += e.Points
		case medium.Listen:
			sums[i].listen += e.Points
		case medium.Read:
			sums[i].read += e.Points
		}
	}

	out := make([]Bucket, windowDays)
	for i, s := range sums {
		out[i] = Bucket{
			Date:   first.AddDays(i),
			Watch:  amount.Minutes(s.watch),
			Listen: amount.Minutes(s.listen),
			Read:   amount.Minutes(s.read),
		}
	}
	return out
}
