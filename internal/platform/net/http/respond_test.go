package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	perr "immersion/internal/platform/errors"
	pnet "immersion/internal/platform/net"
)

func decode(t *testing.T, rr *httptest.ResponseRecorder) Envelope {
	t.Helper()
	var env Envelope
	if err := json.Unmarshal(rr.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode %q: %v", rr.Body.String(), err)
	}
	return env
}

func serve(h func(*http.Request) Response) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(pnet.WithRequest(req.Context(), "req-1"))
	rr := httptest.NewRecorder()
	Handle(h)(rr, req)
	return rr
}

func TestHandle_Success(t *testing.T) {
	t.Parallel()

	rr := serve(func(*http.Request) Response { return Created(map[string]int{"points": 3}) })
	if rr.Code != http.StatusCreated {
		t.Fatalf("code = %d", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/json; charset=utf-8" {
		t.Fatalf("content-type = %q", ct)
	}
	env := decode(t, rr)
	if env.StatusCode != 201 || env.Status != "Created" || env.RequestID != "req-1" || env.Error != "" {
		t.Fatalf("env = %+v", env)
	}
	if m, ok := env.Data.(map[string]any); !ok || m["points"] != float64(3) {
		t.Fatalf("data = %#v", env.Data)
	}
}

func TestHandle_ZeroStatusIsOK(t *testing.T) {
	t.Parallel()
	rr := serve(func(*http.Request) Response { return Response{Body: "x"} })
	if rr.Code != http.StatusOK {
		t.Fatalf("code = %d", rr.Code)
	}
}

func TestHandle_NoContent(t *testing.T) {
	t.Parallel()
	rr := serve(func(*http.Request) Response { return NoContent() })
	if rr.Code != http.StatusNoContent || rr.Body.Len() != 0 {
		t.Fatalf("code = %d body = %q", rr.Code, rr.Body.String())
	}
}

func TestHandle_ErrorAndHeaders(t *testing.T) {
	t.Parallel()

	rr := serve(func(*http.Request) Response {
		resp := Error(perr.InvalidArgf("amount must be positive"))
		resp.Header = http.Header{"X-Extra": {"1"}}
		return resp
	})
	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("code = %d", rr.Code)
	}
	if rr.Header().Get("X-Extra") != "1" {
		t.Fatal("header not copied")
	}
	env := decode(t, rr)
	if env.Code != perr.ErrorCodeInvalidArgument || env.Error != "amount must be positive" || env.Data != nil {
		t.Fatalf("env = %+v", env)
	}
}

func TestRespondError_UnknownIs500(t *testing.T) {
	t.Parallel()

	rr := httptest.NewRecorder()
	RespondError(rr, httptest.NewRequest(http.MethodGet, "/", nil), errors.New("boom"))
	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("code = %d", rr.Code)
	}
	if env := decode(t, rr); env.Error != "boom" {
		t.Fatalf("env = %+v", env)
	}
}

func TestJSON_UnencodableBodyIs500(t *testing.T) {
	t.Parallel()

	rr := serve(func(*http.Request) Response { return OK(func() {}) })
	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("code = %d", rr.Code)
	}
	env := decode(t, rr)
	if env.Error != "response encoding failed" {
		t.Fatalf("env = %+v", env)
	}
}
