package errors

import (
	stderrs "errors"
	"fmt"
	"net/http"
	"testing"
)

func TestHTTPStatusCodeMapping(t *testing.T) {
	cases := []struct {
		code ErrorCode
		want int
	}{
		{ErrorCodeNotFound, http.StatusNotFound},
		{ErrorCodeInvalidArgument, http.StatusUnprocessableEntity},
		{ErrorCodeDuplicateKey, http.StatusConflict},
		{ErrorCodeConflict, http.StatusConflict},
		{ErrorCodeValidation, http.StatusBadRequest},
		{ErrorCodeJSON, http.StatusBadRequest},
		{ErrorCodeUnauthorized, http.StatusUnauthorized},
		{ErrorCodeForbidden, http.StatusForbidden},
		{ErrorCodeTooManyRequests, http.StatusTooManyRequests},
		{ErrorCodeUnavailable, http.StatusServiceUnavailable},
		{ErrorCodeDB, http.StatusInternalServerError},
		{ErrorCodePanic, http.StatusInternalServerError},
		{ErrorCodeUnknown, http.StatusInternalServerError},
		{9999, http.StatusInternalServerError},
	}
	for _, c := range cases {
		if got := HTTPStatusCode(c.code); got != c.want {
			t.Fatalf("HTTPStatusCode(%v) = %d, want %d", c.code, got, c.want)
		}
	}
}

func TestErrorWrapAndWire(t *testing.T) {
	var nilErr *Error
	if nilErr.Error() != "<nil>" {
		t.Fatalf("nil render = %q", nilErr.Error())
	}

	root := stderrs.New("conn reset")
	e := Wrap(root, ErrorCodeDB, "insert log")
	if e.Error() != "insert log: conn reset" || !stderrs.Is(e, root) {
		t.Fatalf("Wrap = %v", e)
	}

	wrapped := fmt.Errorf("svc: %w", WithField(Validationf("Invalid date format. Please use %s.", "YYYY-MM-DD"), "date"))
	if !IsCode(wrapped, ErrorCodeValidation) || HTTPStatus(wrapped) != http.StatusBadRequest {
		t.Fatalf("code lost through fmt wrapping: %v", CodeOf(wrapped))
	}
	w := WireFrom(wrapped)
	if w.Message != "Invalid date format. Please use YYYY-MM-DD." || w.Field != "date" {
		t.Fatalf("wire = %+v", w)
	}

	if got := WireFrom(stderrs.New("plain")); got.Code != ErrorCodeUnknown || got.Message != "plain" {
		t.Fatalf("foreign wire = %+v", got)
	}
	if WireFrom(nil) != (Wire{}) {
		t.Fatal("nil wire should be zero")
	}
	if WithField(root, "x") != root {
		t.Fatal("WithField on foreign error should be identity")
	}
}

func TestSugarCodes(t *testing.T) {
	cases := []struct {
		err  error
		want ErrorCode
	}{
		{NotFoundf("user %s", "1"), ErrorCodeNotFound},
		{InvalidArgf("x"), ErrorCodeInvalidArgument},
		{JSONErrf("x"), ErrorCodeJSON},
		{PanicErrf("x"), ErrorCodePanic},
		{Unauthorizedf("x"), ErrorCodeUnauthorized},
		{Unavailablef("x"), ErrorCodeUnavailable},
		{Wrap(stderrs.New("y"), ErrorCodeConflict, "retry"), ErrorCodeConflict},
	}
	for _, c := range cases {
		if CodeOf(c.err) != c.want {
			t.Fatalf("%v: code = %v, want %v", c.err, CodeOf(c.err), c.want)
		}
	}
	if e, _ := As(NotFoundf("user %s", "1")); e.Error() != "user 1" {
		t.Fatalf("message = %q", e.Error())
	}
}

func TestCodeString(t *testing.T) {
	if ErrorCodeInvalidArgument.String() != "invalid_argument" || ErrorCodeValidation.String() != "validation" {
		t.Fatal("names")
	}
	if ErrorCode(99).String() != "code(99)" {
		t.Fatalf("unknown = %s", ErrorCode(99))
	}
}
