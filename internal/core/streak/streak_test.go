package streak

import (
	"testing"

	"immersion/internal/core/calendar"
)

var d = calendar.New(2024, 3, 10)

func run(end calendar.Date, n int) []calendar.Date {
	out := make([]calendar.Date, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, end.AddDays(-i))
	}
	return out
}

func TestCurrent(t *testing.T) {
	// D, D-1, D-2 active, gap at D-3, older activity at D-4 and D-5
	dates := append(run(d, 3), d.AddDays(-4), d.AddDays(-5))

	tests := []struct {
		name string
		asOf calendar.Date
		want int
	}{
		{"as of last active day", d, 3},
		{"alive through yesterday", d.AddDays(1), 3},
		{"broken after a missed day", d.AddDays(2), 0},
		{"inside the run", d.AddDays(-1), 2},
		{"on the gap", d.AddDays(-3), 2},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Current(dates, tc.asOf); got != tc.want {
				t.Fatalf("Current(asOf=%s) = %d, want %d", tc.asOf, got, tc.want)
			}
		})
	}
}

func TestCurrent_Empty(t *testing.T) {
	if got := Current(nil, d); got != 0 {
		t.Fatalf("Current(nil) = %d", got)
	}
}

func TestCurrent_DuplicatesCollapse(t *testing.T) {
	dates := []calendar.Date{d, d, d, d.AddDays(-1), d.AddDays(-1)}
	if got := Current(dates, d); got != 2 {
		t.Fatalf("Current = %d, want 2", got)
	}
}

func TestCurrent_IgnoresFuture(t *testing.T) {
	dates := []calendar.Date{d.AddDays(1), d.AddDays(2)}
	if got := Current(dates, d); got != 0 {
		t.Fatalf("Current = %d, want 0", got)
	}
}

func TestCurrent_UnorderedAcrossMonths(t *testing.T) {
	end := calendar.New(2024, 3, 1)
	dates := []calendar.Date{calendar.New(2024, 2, 28), end, calendar.New(2024, 2, 29)}
	if got := Current(dates, end); got != 3 {
		t.Fatalf("Current = %d, want 3", got)
	}
}

func TestCompute(t *testing.T) {
	dates := append(run(d, 2), run(d.AddDays(-10), 5)...)
	got := Compute(dates, d)
	if got != (Info{Current: 2, Longest: 5}) {
		t.Fatalf("Compute = %+v", got)
	}

	got = Compute(dates, d.AddDays(5))
	if got != (Info{Current: 0, Longest: 5}) {
		t.Fatalf("Compute after lapse = %+v", got)
	}

	if got := Compute(nil, d); got != (Info{}) {
		t.Fatalf("Compute(nil) = %+v", got)
	}
}

func TestCompute_LongestIsCurrent(t *testing.T) {
	dates := append(run(d, 7), d, d.AddDays(-20))
	got := Compute(dates, d)
	if got != (Info{Current: 7, Longest: 7}) {
		t.Fatalf("Compute = %+v", got)
	}
}
