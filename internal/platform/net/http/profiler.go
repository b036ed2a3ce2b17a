package http

import (
	stdhttp "net/http"
	"strings"

	mw "github.com/go-chi/chi/v5/middleware"
)

// MountProfiler serves chi's pprof and expvar routes below prefix, so with
// "/debug" a heap profile is at /debug/pprof/heap. Nothing is mounted when
// enabled is false; DATAX_API_PROFILER turns it on.
func MountProfiler(r Router, prefix string, enabled bool) {
	if !enabled {
		return
	}
	prefix = "/" + strings.Trim(prefix, "/")
	prof := stdhttp.StripPrefix(prefix, mw.Profiler())
	for _, p := range []string{prefix, prefix + "/*"} {
		r.Get(p, prof.ServeHTTP)
	}
}
