//go:build integration_pg

package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	phttp "immersion/internal/platform/net/http"
	"immersion/internal/platform/store"
	ptime "immersion/internal/platform/time"

	"github.com/go-chi/chi/v5"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func openStore(t *testing.T) *store.Store {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
	t.Cleanup(cancel)

	c, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: tc.ContainerRequest{
			Image:        "postgres:16-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "postgres",
				"POSTGRES_PASSWORD": "postgres",
				"POSTGRES_DB":       "immersion",
			},
			WaitingFor: wait.ForAll(
				wait.ForListeningPort("5432/tcp"),
				wait.ForLog("database system is ready to accept connections"),
			).WithDeadline(2 * time.Minute),
		},
		Started: true,
	})
	if err != nil {
		t.Fatalf("start postgres: %v", err)
	}
	t.Cleanup(func() { _ = c.Terminate(context.Background()) })

	host, _ := c.Host(ctx)
	mp, _ := c.MappedPort(ctx, "5432/tcp")
	st, err := store.Open(ctx, store.Config{
		AppName: "immersion-test",
		PG: store.PGConfig{
			Enabled: true,
			URL:     fmt.Sprintf("postgres://postgres:postgres@%s:%s/immersion?sslmode=disable", host, mp.Port()),
		},
	})
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	t.Cleanup(func() { _ = st.Close(context.Background()) })
	return st
}

// TestLogThenProfile drives the whole pipeline: a live log, two backfills and the profile read
func TestLogThenProfile(t *testing.T) {
	st := openStore(t)
	m := chi.NewRouter()
	mods := Mount(phttp.AdaptChi(m), Options{
		Store: st,
		Clock: ptime.Fixed(time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)),
	})
	if err := Migrate(context.Background(), mods); err != nil {
		t.Fatalf("Migrate: %v", err)
	}

	posts := []struct{ path, body string }{
		{"/api/v1/immersion/log", `{"user_id":"u1","guild_id":"g1","medium":"Anime","amount":"2ep","title":"Frieren"}`},
		{"/api/v1/immersion/backfill", `{"user_id":"u1","guild_id":"g1","medium":"Listening","amount":"45m","title":"radio","date":"2024-03-09"}`},
		{"/api/v1/immersion/backfill", `{"user_id":"u1","guild_id":"g1","medium":"Manga","amount":"10m","title":"Yotsuba","date":"2024-03-08"}`},
	}
	for _, p := range posts {
		if rr := send(m, http.MethodPost, p.path, p.body, ""); rr.Code != http.StatusCreated {
			t.Fatalf("%s = %d %s", p.path, rr.Code, rr.Body.String())
		}
	}

	rr := send(m, http.MethodPost, "/api/v1/profile", `{"user_id":"u1","guild_id":"g1","period":"week"}`, "")
	if rr.Code != http.StatusOK {
		t.Fatalf("profile = %d %s", rr.Code, rr.Body.String())
	}
	var env struct {
		Data struct {
			TotalPoints int64 `json:"total_points"`
			MangaPages  int64 `json:"manga_pages"`
			Streak      struct {
				Current int `json:"current"`
			} `json:"streak"`
			History []json.RawMessage `json:"history"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &env); err != nil {
		t.Fatal(err)
	}
	if env.Data.TotalPoints != 2520+2700+600 || env.Data.MangaPages != 50 {
		t.Fatalf("profile = %+v", env.Data)
	}
	if env.Data.Streak.Current != 3 || len(env.Data.History) != 7 {
		t.Fatalf("streak = %d history = %d", env.Data.Streak.Current, len(env.Data.History))
	}

	if rr := send(m, http.MethodPost, "/api/v1/profile", `{"user_id":"ghost"}`, ""); rr.Code != http.StatusNotFound {
		t.Fatalf("ghost = %d", rr.Code)
	}
}
