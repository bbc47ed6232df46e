package http

import (
	"net/http"

	"immersion/internal/platform/net/http/bind"
)

func reply(out any, err error) Response {
	if err != nil {
		return Error(err)
	}
	return OK(out)
}

// GetJSON mounts a JSON handler for GET
func GetJSON(r Router, path string, h func(*http.Request) (any, error)) {
	r.Get(path, Handle(func(req *http.Request) Response { return reply(h(req)) }))
}

// PostJSON mounts a JSON handler for POST; the body is bound and validated into T
func PostJSON[T any](r Router, path string, h func(*http.Request, T) (any, error)) {
	r.Post(path, bodyHandler(h))
}

// PutJSON mounts a JSON handler for PUT
func PutJSON[T any](r Router, path string, h func(*http.Request, T) (any, error)) {
	r.Put(path, bodyHandler(h))
}

func bodyHandler[T any](h func(*http.Request, T) (any, error)) Handler {
	return Handle(func(req *http.Request) Response {
		in, err := bind.ParseJSON[T](req)
		if err != nil {
			return Error(err)
		}
		return reply(h(req, in))
	})
}
