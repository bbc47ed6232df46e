package http

import (
	stdhttp "net/http"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// MountProfiler serves net/http/pprof under prefix ("/debug" gives /debug/pprof/...)
// guard wraps every profiler route, outermost first; the API passes its bearer auth
func MountProfiler(r Router, prefix string, enabled bool, guard ...func(stdhttp.Handler) stdhttp.Handler) {
	if !enabled {
		return
	}
	var h stdhttp.Handler = stdhttp.StripPrefix(prefix, chimw.Profiler())
	for i := len(guard) - 1; i >= 0; i-- {
		h = guard[i](h)
	}
	for _, pattern := range []string{prefix, prefix + "/*"} {
		r.Get(pattern, h.ServeHTTP)
	}
}
