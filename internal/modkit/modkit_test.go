package modkit

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"datax/internal/modkit/httpkit"
	phttp "datax/internal/platform/net/http"
	"datax/internal/platform/testkit"

	"github.com/go-chi/chi/v5"
)

type fakePorts struct{ N int }

type fakeModule struct{ b Built }

func (m fakeModule) MountRoutes(r phttp.Router) { m.b.Mount(r) }
func (m fakeModule) Ports() any                 { return m.b.Ports }
func (m fakeModule) Name() string               { return m.b.Name }

func TestBuild_OptionsOverrideDefaults(t *testing.T) {
	mw := func(next http.Handler) http.Handler { return next }
	src := []func(http.Handler) http.Handler{mw}

	b := Build(
		WithName("meta"), WithPrefix("/meta"),
		WithName("coverage"), WithPrefix("/coverage"),
		WithMiddlewares(src...),
		WithPorts(fakePorts{N: 7}),
	)
	if b.Name != "coverage" || b.Prefix != "/coverage" || len(b.Mw) != 1 {
		t.Fatalf("built = %+v", b)
	}
	src[0] = nil
	if b.Mw[0] == nil {
		t.Fatalf("middleware slice not copied")
	}

	p, ok := PortsOf[fakePorts](fakeModule{b: b})
	if !ok || p.N != 7 {
		t.Fatalf("PortsOf = %+v, %v", p, ok)
	}
	if _, ok := PortsOf[string](fakeModule{b: b}); ok {
		t.Fatalf("wrong port type should not match")
	}
}

func TestBuilt_MountRunsEveryRegisterHook(t *testing.T) {
	calls := 0
	hook := func(r phttp.Router) {
		calls++
		httpkit.Get(r, "/ping", func(*http.Request) (any, error) { return "pong", nil })
	}
	b := Build(
		WithPrefix("meta/"),
		WithRegister(hook),
		WithRegister(nil),
		WithMiddlewares(func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("X-Module", "meta")
				next.ServeHTTP(w, r)
			})
		}),
	)
	r := phttp.AdaptChi(chi.NewRouter())
	var m Module = fakeModule{b: b}
	m.MountRoutes(r)

	rec := httptest.NewRecorder()
	r.Mux().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/meta/ping", nil))
	if calls != 1 || rec.Code != http.StatusOK || rec.Header().Get("X-Module") != "meta" {
		t.Fatalf("calls=%d code=%d headers=%v", calls, rec.Code, rec.Header())
	}
}

func TestBuilt_MountRequiresPrefix(t *testing.T) {
	r := phttp.AdaptChi(chi.NewRouter())
	testkit.MustPanic(t, func() { Build().Mount(r) })
}
