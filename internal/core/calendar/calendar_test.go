package calendar

import (
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func TestParse_Valid(t *testing.T) {
	tests := []struct {
		in   string
		want Date
	}{
		{"2024-02-29", Date{2024, time.February, 29}},
		{"2023-12-31", Date{2023, time.December, 31}},
		{"2000-02-29", Date{2000, time.February, 29}},
		{"0001-01-01", Date{1, time.January, 1}},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, err := Parse(tc.in)
			if err != nil {
				t.Fatalf("Parse(%q) err = %v", tc.in, err)
			}
			if got != tc.want {
				t.Fatalf("Parse(%q) = %+v, want %+v", tc.in, got, tc.want)
			}
			if got.String() != tc.in {
				t.Fatalf("String() = %q, want %q", got.String(), tc.in)
			}
		})
	}
}

func TestParse_Invalid(t *testing.T) {
	bad := []string{
		"2023-02-30", "2023-02-29", "1900-02-29", "2023-13-01", "2023-00-10", "2023-04-31",
		"2023-01-32", "2023-01-00", "2023-1-05", "23-01-05", "2023/01/05", "2023-01-05T00:00",
		" 2023-01-05", "", "yyyy-mm-dd",
	}
	for _, in := range bad {
		t.Run(in, func(t *testing.T) {
			if _, err := Parse(in); !errors.Is(err, ErrFormat) {
				t.Fatalf("Parse(%q) err = %v, want ErrFormat", in, err)
			}
		})
	}
}

func TestIn_UsesLocation(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*3600)
	la := time.FixedZone("PDT", -7*3600)
	instant := time.Date(2024, 3, 10, 20, 30, 0, 0, time.UTC)

	if got := In(instant, tokyo); got != (Date{2024, time.March, 11}) {
		t.Fatalf("tokyo date = %v", got)
	}
	if got := In(instant, la); got != (Date{2024, time.March, 10}) {
		t.Fatalf("la date = %v", got)
	}
	if got := In(instant, nil); got != (Date{2024, time.March, 10}) {
		t.Fatalf("nil loc date = %v", got)
	}
}

func TestArithmetic(t *testing.T) {
	d := MustParse("2024-02-28")
	if got := d.AddDays(1).String(); got != "2024-02-29" {
		t.Fatalf("AddDays(1) = %s", got)
	}
	if got := d.AddDays(2).String(); got != "2024-03-01" {
		t.Fatalf("AddDays(2) = %s", got)
	}
	if got := d.AddDays(-59).String(); got != "2023-12-31" {
		t.Fatalf("AddDays(-59) = %s", got)
	}
	if got := MustParse("2024-03-01").DaysSince(MustParse("2023-03-01")); got != 366 {
		t.Fatalf("DaysSince = %d, want 366", got)
	}
	if !d.Before(d.AddDays(1)) || !d.AddDays(1).After(d) || d.Compare(d) != 0 {
		t.Fatalf("comparison helpers disagree")
	}
	if !(Date{}).IsZero() || d.IsZero() {
		t.Fatalf("IsZero disagrees")
	}
}

func TestJSONRoundTrip(t *testing.T) {
	type wrap struct {
		D Date `json:"d"`
	}
	b, err := json.Marshal(wrap{D: MustParse("2024-07-04")})
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != `{"d":"2024-07-04"}` {
		t.Fatalf("marshal = %s", b)
	}
	var w wrap
	if err := json.Unmarshal([]byte(`{"d":"2023-02-30"}`), &w); err == nil {
		t.Fatalf("expected impossible date to fail unmarshal")
	}
}

func TestJSON_ZeroDateRoundTrips(t *testing.T) {
	type wrap struct {
		D Date `json:"d"`
	}
	b, err := json.Marshal(wrap{})
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != `{"d":""}` {
		t.Fatalf("marshal zero = %s", b)
	}
	w := wrap{D: MustParse("2024-07-04")}
	if err := json.Unmarshal(b, &w); err != nil {
		t.Fatalf("unmarshal zero: %v", err)
	}
	if !w.D.IsZero() {
		t.Fatalf("D = %s, want zero", w.D)
	}
}

func TestMustParse_Panics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic")
		}
	}()
	_ = MustParse("nope")
}
