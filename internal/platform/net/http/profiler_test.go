package http_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	phttp "datax/internal/platform/net/http"

	"github.com/go-chi/chi/v5"
)

func status(r phttp.Router, path string) int {
	rec := httptest.NewRecorder()
	r.Mux().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec.Code
}

func TestMountProfiler(t *testing.T) {
	on := phttp.AdaptChi(chi.NewRouter())
	phttp.MountProfiler(on, "/debug", true)
	for _, p := range []string{"/debug/pprof/", "/debug/pprof/cmdline"} {
		if code := status(on, p); code != http.StatusOK {
			t.Fatalf("GET %s = %d", p, code)
		}
	}
	// the bare prefix is either redirected or unknown to the pprof mux
	switch code := status(on, "/debug"); code {
	case http.StatusMovedPermanently, http.StatusPermanentRedirect, http.StatusNotFound:
	default:
		t.Fatalf("GET /debug = %d", code)
	}

	off := phttp.AdaptChi(chi.NewRouter())
	phttp.MountProfiler(off, "/debug", false)
	if code := status(off, "/debug/pprof/"); code != http.StatusNotFound {
		t.Fatalf("disabled profiler answered %d", code)
	}
}
