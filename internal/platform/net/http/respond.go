// Package http holds the router abstraction and the JSON response envelope
package http

import (
	"encoding/json"
	stdhttp "net/http"

	perr "immersion/internal/platform/errors"
	pnet "immersion/internal/platform/net"
)

// Envelope is the response body every endpoint writes
type Envelope struct {
	pnet.Wire
	Data any `json:"data,omitempty"`
}

const contentJSON = "application/json; charset=utf-8"

// encodeFailed replaces a body that cannot be encoded
var encodeFailed = Envelope{Wire: pnet.Wire{
	StatusCode: stdhttp.StatusInternalServerError,
	Status:     stdhttp.StatusText(stdhttp.StatusInternalServerError),
	Code:       perr.ErrorCodeJSON,
	Error:      "response encoding failed",
}}

// JSON encodes v before touching the writer so an unencodable body becomes a 500
func JSON(w stdhttp.ResponseWriter, status int, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		status = stdhttp.StatusInternalServerError
		b, _ = json.Marshal(encodeFailed)
	}
	w.Header().Set("Content-Type", contentJSON)
	w.WriteHeader(status)
	_, _ = w.Write(append(b, '\n'))
}

// RespondError writes err as an error envelope
func RespondError(w stdhttp.ResponseWriter, r *stdhttp.Request, err error) {
	status, wire := pnet.Error(err, pnet.RequestID(r.Context()))
	JSON(w, status, Envelope{Wire: wire})
}

// Response is what return-style handlers produce; an error Body becomes an error envelope
type Response struct {
	Status int
	Body   any
	Header stdhttp.Header
}

// OK returns a 200 response
func OK(data any) Response { return Response{Status: stdhttp.StatusOK, Body: data} }

// Created returns a 201 response
func Created(data any) Response { return Response{Status: stdhttp.StatusCreated, Body: data} }

func NoContent() Response { return Response{Status: stdhttp.StatusNoContent} }

// Error lets err pick the status
func Error(err error) Response { return Response{Body: err} }

// Handle adapts a Response-returning handler to net/http
func Handle(h func(r *stdhttp.Request) Response) stdhttp.HandlerFunc {
	return func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		resp := h(r)
		hdr := w.Header()
		for k, vv := range resp.Header {
			hdr[k] = append(hdr[k], vv...)
		}

		if err, ok := resp.Body.(error); ok && err != nil {
			RespondError(w, r, err)
			return
		}
		switch resp.Status {
		case 0:
			resp.Status = stdhttp.StatusOK
		case stdhttp.StatusNoContent:
			w.WriteHeader(resp.Status)
			return
		}
		JSON(w, resp.Status, Envelope{
			Wire: pnet.Wire{
				StatusCode: resp.Status,
				Status:     stdhttp.StatusText(resp.Status),
				RequestID:  pnet.RequestID(r.Context()),
			},
			Data: resp.Body,
		})
	}
}
