// Package middleware adapts chi middleware and adds the JSON-aware pieces
// (access log, auth, panic recovery) without leaking chi types to callers
package middleware

import (
	"compress/flate"
	"net/http"
	"time"

	pstrings "immersion/internal/platform/strings"

	chimw "github.com/go-chi/chi/v5/middleware"
	chicors "github.com/go-chi/cors"
)

// StackOptions tunes Stack
type StackOptions struct {
	CORSOrigins []string
	SlowRequest time.Duration
	Timeout     time.Duration // 30s when zero
}

// Stack is the baseline chain for the versioned API, outermost first:
// correlation, access log around panic recovery, transport concerns, then the request deadline
func Stack(o StackOptions) []func(http.Handler) http.Handler {
	if o.Timeout <= 0 {
		o.Timeout = 30 * time.Second
	}
	return []func(http.Handler) http.Handler{
		RequestID(),
		chimw.RealIP,
		AccessLogZerolog(AccessLogOptions{Slow: o.SlowRequest}),
		RecoverJSON,
		chimw.NoCache,
		CORS(CORSOptions{AllowedOrigins: o.CORSOrigins}),
		Compress(flate.BestSpeed),
		chimw.StripSlashes,
		// bodies are always JSON; requests without a body pass
		chimw.AllowContentType("application/json"),
		chimw.Timeout(o.Timeout),
	}
}

// RequestID propagates X-Request-ID or mints one
func RequestID() func(http.Handler) http.Handler { return chimw.RequestID }

// Heartbeat answers GET and HEAD on the exact path with 200 "."; it sees the full
// URL path, so install it on the root router rather than a route group
func Heartbeat(path string) func(http.Handler) http.Handler { return chimw.Heartbeat(path) }

// Compress gzips/deflates responses at level (flate.BestSpeed in Stack)
func Compress(level int) func(http.Handler) http.Handler {
	return chimw.NewCompressor(level).Handler
}

// CORSOptions is the subset of go-chi/cors the API exposes
type CORSOptions struct {
	AllowedOrigins   []string
	AllowedMethods   []string
	AllowedHeaders   []string
	AllowCredentials bool
	MaxAge           int
}

var (
	corsMethods = []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions}
	corsHeaders = []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"}
)

// CORS allows the bot and dashboard origins; methods and headers default to what the API uses
func CORS(o CORSOptions) func(http.Handler) http.Handler {
	return chicors.Handler(chicors.Options{
		AllowedOrigins:   o.AllowedOrigins,
		AllowedMethods:   pstrings.IfEmpty(o.AllowedMethods, corsMethods),
		AllowedHeaders:   pstrings.IfEmpty(o.AllowedHeaders, corsHeaders),
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: o.AllowCredentials,
		MaxAge:           o.MaxAge,
	})
}
