package httpkit

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	perr "immersion/internal/platform/errors"
	phttp "immersion/internal/platform/net/http"
	"immersion/internal/platform/net/middleware"

	"github.com/go-chi/chi/v5"
)

type echoIn struct {
	Name string `json:"name" validate:"required"`
}

func newAPI(t *testing.T, mount func(Router)) http.Handler {
	t.Helper()
	m := chi.NewRouter()
	MountAPIV1(phttp.AdaptChi(m), CommonStack(StackOptions{}), mount)
	return m
}

func do(h http.Handler, method, path, body string, hdr ...string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(hdr); i += 2 {
		req.Header.Set(hdr[i], hdr[i+1])
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestSugar_VerbsAndStatuses(t *testing.T) {
	h := newAPI(t, func(api Router) {
		Get(api, "/ping", func(*http.Request) (any, error) { return "pong", nil })
		PostJSON(api, "/echo", func(_ *http.Request, in echoIn) (any, error) {
			return Created(in.Name), nil
		})
		PutJSON(api, "/fail", func(*http.Request, echoIn) (any, error) {
			return nil, perr.InvalidArgf("nope")
		})
	})

	cases := []struct {
		method, path, body string
		code               int
		contains           string
	}{
		{http.MethodGet, "/api/v1/ping", "", 200, `"data":"pong"`},
		{http.MethodPost, "/api/v1/echo", `{"name":"kiko"}`, 201, `"data":"kiko"`},
		{http.MethodPost, "/api/v1/echo", `{}`, 400, "name is a required field"},
		{http.MethodPut, "/api/v1/fail", `{"name":"x"}`, 422, `"error":"nope"`},
	}
	for _, c := range cases {
		rr := do(h, c.method, c.path, c.body)
		if rr.Code != c.code || !strings.Contains(rr.Body.String(), c.contains) {
			t.Fatalf("%s %s: %d %s", c.method, c.path, rr.Code, rr.Body.String())
		}
		if rr.Header().Get("Cache-Control") == "" {
			t.Fatalf("%s %s: common stack headers missing", c.method, c.path)
		}
	}
}

func TestCommonStack_RejectsNonJSONBodies(t *testing.T) {
	h := newAPI(t, func(api Router) {
		PostJSON(api, "/echo", func(_ *http.Request, in echoIn) (any, error) { return in.Name, nil })
	})
	rr := do(h, http.MethodPost, "/api/v1/echo", `name=kiko`, "Content-Type", "application/x-www-form-urlencoded")
	if rr.Code != http.StatusUnsupportedMediaType {
		t.Fatalf("form body = %d", rr.Code)
	}
}

func TestCommonStack_NoHeartbeatInsideGroup(t *testing.T) {
	h := newAPI(t, func(Router) {})
	if rr := do(h, http.MethodGet, "/api/v1/health", ""); rr.Code != http.StatusNotFound {
		t.Fatalf("grouped health = %d", rr.Code)
	}
}

func TestAuth_StaticToken(t *testing.T) {
	h := newAPI(t, func(api Router) {
		api.Group(func(g Router) {
			g.Use(Auth(middleware.StaticToken{Caller: "bot", Token: "s3cret"}))
			Get(g, "/secure", func(*http.Request) (any, error) { return "ok", nil })
		})
	})
	if rr := do(h, http.MethodGet, "/api/v1/secure", ""); rr.Code != http.StatusUnauthorized {
		t.Fatalf("no token = %d", rr.Code)
	}
	if rr := do(h, http.MethodGet, "/api/v1/secure", "", "Authorization", "Bearer s3cret"); rr.Code != http.StatusOK {
		t.Fatalf("token = %d %s", rr.Code, rr.Body.String())
	}
}
