package http

import (
	"context"
	"encoding/json"
	"errors"
	stdhttp "net/http"
	"net/http/httptest"
	"testing"
	"time"

	"immersion/internal/modkit/httpkit"
	phttp "immersion/internal/platform/net/http"
	ptime "immersion/internal/platform/time"

	"github.com/go-chi/chi/v5"
)

type pinger struct{ err error }

func (p pinger) Ping(context.Context) error { return p.err }

func ready(t *testing.T, d Deps) ReadyResponse {
	t.Helper()
	m := chi.NewRouter()
	phttp.AdaptChi(m).Route("/meta", func(r httpkit.Router) { Register(r, d) })

	rr := httptest.NewRecorder()
	m.ServeHTTP(rr, httptest.NewRequest(stdhttp.MethodGet, "/meta/ready", nil))
	var env struct {
		Data ReadyResponse `json:"data"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode %s: %v", rr.Body.String(), err)
	}
	return env.Data
}

func TestReady(t *testing.T) {
	cases := []struct {
		name string
		deps Deps
		want string
	}{
		{"pg only", Deps{PG: pinger{}}, "ok"},
		{"pg and ch", Deps{PG: pinger{}, CH: pinger{}}, "ok"},
		{"ch down", Deps{PG: pinger{}, CH: pinger{err: errors.New("refused")}}, "degraded"},
		{"pg down", Deps{PG: pinger{err: errors.New("refused")}}, "fail"},
		{"no pg", Deps{}, "fail"},
		{"pg not pingable", Deps{PG: struct{}{}}, "degraded"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := ready(t, c.deps); got.Status != c.want {
				t.Fatalf("status = %s, want %s (%+v)", got.Status, c.want, got.Checks)
			}
		})
	}
}

func TestServiceUptime(t *testing.T) {
	m := chi.NewRouter()
	started := time.Date(2024, 3, 9, 12, 0, 0, 0, time.UTC)
	phttp.AdaptChi(m).Route("/meta", func(r httpkit.Router) {
		Register(r, Deps{
			ServiceName: "immersion-api",
			StartedAt:   started,
			Clock:       ptime.Fixed(started.Add(90 * time.Second)),
			Modules:     func() []string { return []string{"logs", "meta"} },
		})
	})

	rr := httptest.NewRecorder()
	m.ServeHTTP(rr, httptest.NewRequest(stdhttp.MethodGet, "/meta/service", nil))
	var env struct {
		Data ServiceResponse `json:"data"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &env); err != nil {
		t.Fatal(err)
	}
	if env.Data.Name != "immersion-api" || env.Data.Uptime != 90 || len(env.Data.Modules) != 2 {
		t.Fatalf("service = %+v", env.Data)
	}
}
