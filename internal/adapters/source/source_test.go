package source

import (
	"bytes"
	"compress/gzip"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	perr "datax/internal/platform/errors"
	"datax/internal/platform/testkit"
)

const csvBody = "datetime,Article Count,All Articles\n2021-01-01,10,100\n2021-01-02,5,50\nbad,1,1\n"

func gzipped(t *testing.T, s string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	if _, err := zw.Write([]byte(s)); err != nil {
		t.Fatalf("gzip: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("gzip close: %v", err)
	}
	return buf.Bytes()
}

func TestKindOf(t *testing.T) {
	cases := map[string]Kind{
		"data/green_deal_data.csv":         KindFile,
		"file:///tmp/x.csv":                KindFile,
		"https://example.org/x.csv":        KindHTTP,
		"HTTP://example.org/x.csv":         KindHTTP,
		"postgres://u@h/db?table=coverage": KindPostgres,
		"postgresql://u@h/db":              KindPostgres,
		"clickhouse://h:9000/db?table=cov": KindClickhouse,
	}
	for in, want := range cases {
		got, err := KindOf(in)
		if err != nil || got != want {
			t.Fatalf("KindOf(%q) = %q, %v", in, got, err)
		}
	}
	for _, bad := range []string{"", "  ", "s3://bucket/x.csv"} {
		if _, err := KindOf(bad); perr.CodeOf(err) != perr.ErrorCodeInvalidArgument {
			t.Fatalf("KindOf(%q) should be invalid, got %v", bad, err)
		}
	}
}

func TestIdentityAndRedacted(t *testing.T) {
	abs, _ := filepath.Abs("x.csv")
	if got := Identity(" x.csv "); got != "file://"+abs {
		t.Fatalf("Identity(file) = %q", got)
	}
	if Identity("file://"+abs) != Identity("x.csv") {
		t.Fatalf("path and file:// URL should share an identity")
	}
	if got := Identity("https://h/x.csv"); got != "https://h/x.csv" {
		t.Fatalf("Identity(url) = %q", got)
	}
	if got := Redacted("postgres://u:secret@h/db"); strings.Contains(got, "secret") {
		t.Fatalf("Redacted leaked password: %q", got)
	}
}

func TestOpen_File(t *testing.T) {
	p := testkit.WriteFile(t, "cov.csv", csvBody)
	got, err := Open(context.Background(), p)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if len(got.Dataset) != 2 || got.Dropped != 1 || got.Total != 3 {
		t.Fatalf("loaded = %+v", got)
	}

	viaURL, err := Open(context.Background(), "file://"+p)
	if err != nil || len(viaURL.Dataset) != 2 {
		t.Fatalf("file:// Open = %+v, %v", viaURL, err)
	}
}

func TestOpen_GzipFile(t *testing.T) {
	p := filepath.Join(t.TempDir(), "cov.csv.gz")
	if err := os.WriteFile(p, gzipped(t, csvBody), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	got, err := Open(context.Background(), p)
	if err != nil || len(got.Dataset) != 2 {
		t.Fatalf("gz Open = %+v, %v", got, err)
	}
}

func TestOpen_MissingFile(t *testing.T) {
	_, err := Open(context.Background(), filepath.Join(t.TempDir(), "nope.csv"))
	if perr.CodeOf(err) != perr.ErrorCodeNotFound {
		t.Fatalf("want not found, got %v", err)
	}
}

func TestOpen_HTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/cov.csv":
			w.Header().Set("Content-Type", "text/csv")
			_, _ = w.Write([]byte(csvBody))
		case "/cov.csv.gz":
			w.Header().Set("Content-Type", "application/gzip")
			_, _ = w.Write(gzipped(t, csvBody))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	for _, path := range []string{"/cov.csv", "/cov.csv.gz"} {
		got, err := Open(context.Background(), srv.URL+path, WithHTTPClient(srv.Client()))
		if err != nil || len(got.Dataset) != 2 {
			t.Fatalf("%s: Open = %+v, %v", path, got, err)
		}
	}

	_, err := Open(context.Background(), srv.URL+"/missing.csv")
	if perr.CodeOf(err) != perr.ErrorCodeSource {
		t.Fatalf("non-200 should be a source error, got %v", err)
	}
	testkit.MustContain(t, err.Error(), "404")
}

func TestOpen_HTTPSchemaError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("datetime,Article Count\n2021-01-01,1\n"))
	}))
	defer srv.Close()

	_, err := Open(context.Background(), srv.URL+"/x.csv")
	e, ok := perr.As(err)
	if !ok || e.Code() != perr.ErrorCodeSchema || e.Field() != "All Articles" {
		t.Fatalf("want schema error naming the column, got %v", err)
	}
}
