package pg

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/rs/zerolog"
)

func TestCompact(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"select 1":                       "select 1",
		"  select   1  ":                 "select 1",
		"SELECT\t*\nFROM\r\tlogs WHERE a": "SELECT * FROM logs WHERE a",
		"":                               "",
	}
	for in, want := range cases {
		if got := compact(in); got != want {
			t.Fatalf("compact(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestTracer_Levels(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	tr := Tracer(zerolog.New(&buf))

	type line struct {
		Level     string  `json:"level"`
		ElapsedMS float64 `json:"elapsed_ms"`
		SQL       string  `json:"sql"`
		Component string  `json:"component"`
		Error     string  `json:"error"`
	}
	read := func() line {
		t.Helper()
		var l line
		if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &l); err != nil {
			t.Fatalf("unmarshal: %v raw=%s", err, buf.String())
		}
		buf.Reset()
		return l
	}

	ev := QueryEvent{SQL: "SELECT  log_date\n FROM immersion_logs", ElapsedUS: 2500}
	tr.OnQuery(context.Background(), ev)
	if l := read(); l.Level != "info" || l.ElapsedMS != 2.5 || l.SQL != "SELECT log_date FROM immersion_logs" || l.Component != "pg" {
		t.Fatalf("info line = %+v", l)
	}

	ev.Slow = true
	tr.OnQuery(context.Background(), ev)
	if l := read(); l.Level != "warn" {
		t.Fatalf("slow line = %+v", l)
	}

	ev.Err = errors.New("boom")
	tr.OnQuery(context.Background(), ev)
	if l := read(); l.Level != "error" || l.Error != "boom" {
		t.Fatalf("error line = %+v", l)
	}
}
