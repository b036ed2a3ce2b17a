package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordLoad(t *testing.T) {
	okBefore := testutil.ToFloat64(SourceLoads.WithLabelValues("file", OutcomeOK))
	errBefore := testutil.ToFloat64(SourceLoads.WithLabelValues("file", OutcomeError))
	dropBefore := testutil.ToFloat64(DroppedRows.WithLabelValues("file"))

	RecordLoad("file", nil, 3)
	RecordLoad("file", errors.New("boom"), 0)

	if got := testutil.ToFloat64(SourceLoads.WithLabelValues("file", OutcomeOK)) - okBefore; got != 1 {
		t.Fatalf("ok loads delta = %v", got)
	}
	if got := testutil.ToFloat64(SourceLoads.WithLabelValues("file", OutcomeError)) - errBefore; got != 1 {
		t.Fatalf("error loads delta = %v", got)
	}
	if got := testutil.ToFloat64(DroppedRows.WithLabelValues("file")) - dropBefore; got != 3 {
		t.Fatalf("dropped delta = %v", got)
	}
}

func TestRecordRun(t *testing.T) {
	before := testutil.ToFloat64(PipelineRuns.WithLabelValues(OutcomeEmpty))
	RecordRun(OutcomeEmpty, 2*time.Millisecond)
	if got := testutil.ToFloat64(PipelineRuns.WithLabelValues(OutcomeEmpty)) - before; got != 1 {
		t.Fatalf("runs delta = %v", got)
	}
}

func TestMiddlewareUsesRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Middleware)
	r.Get("/things/{id}", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusTeapot) })

	before := testutil.ToFloat64(HTTPRequests.WithLabelValues("/things/{id}", http.MethodGet, "418"))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/things/42", nil))
	if rec.Code != http.StatusTeapot {
		t.Fatalf("status = %d", rec.Code)
	}
	if got := testutil.ToFloat64(HTTPRequests.WithLabelValues("/things/{id}", http.MethodGet, "418")) - before; got != 1 {
		t.Fatalf("request counter delta = %v", got)
	}
}

func TestHandlerExposesMetrics(t *testing.T) {
	RecordRun(OutcomeOK, time.Millisecond)
	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if !strings.Contains(rec.Body.String(), "datax_pipeline_runs_total") {
		t.Fatalf("metrics output missing pipeline counter")
	}
}
