package httpkit

import (
	"net/http"

	phttp "immersion/internal/platform/net/http"
	"immersion/internal/platform/net/http/bind"
	"immersion/internal/platform/net/middleware"
)

// bindJSON is the body binder used by PostJSON and PutJSON
func bindJSON[T any](r *http.Request) (T, error) { return bind.ParseJSON[T](r) }

// StackOptions tunes the common middleware stack
type StackOptions = middleware.StackOptions

// CommonStack returns the baseline API middleware slice
// compose with Auth per module
func CommonStack(o StackOptions) []func(http.Handler) http.Handler { return middleware.Stack(o) }

// Auth wires the auth middleware to the platform JSON writer
func Auth(p middleware.AuthPort) func(http.Handler) http.Handler {
	return middleware.Auth(p, phttp.JSON)
}
