package httpkit

import (
	"net/http"

	phttp "immersion/internal/platform/net/http"
)

// Get mounts a body-less handler under GET
func Get(r Router, path string, h func(*http.Request) (any, error)) {
	r.Get(path, Call(h))
}

// PostJSON mounts a bound JSON handler under POST
// handlers may return a Response to override the 200 default
func PostJSON[T any](r Router, path string, h func(*http.Request, T) (any, error)) {
	r.Post(path, phttp.Handle(func(req *http.Request) Response {
		return bound(req, h)
	}))
}

// PutJSON mounts a bound JSON handler under PUT
func PutJSON[T any](r Router, path string, h func(*http.Request, T) (any, error)) {
	r.Put(path, phttp.Handle(func(req *http.Request) Response {
		return bound(req, h)
	}))
}

func bound[T any](r *http.Request, h func(*http.Request, T) (any, error)) Response {
	in, err := bindJSON[T](r)
	if err != nil {
		return phttp.Error(err)
	}
	return respond(h(r, in))
}
