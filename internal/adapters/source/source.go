// Package source resolves a source string to a loaded Dataset.
//
// Supported forms: a local path or file:// URL, an http(s):// URL (single GET, no retry),
// and postgres:// or clickhouse:// DSNs naming the table with a table= query parameter.
// Paths and URLs ending in .gz are decompressed on the fly.
package source

import (
	"compress/gzip"
	"context"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"datax/internal/core/dataset"
	perr "datax/internal/platform/errors"
	"datax/internal/platform/logger"
	"datax/internal/platform/store"
)

// Kind is the transport behind a source string
type Kind string

// Source kinds
const (
	KindFile       Kind = "file"
	KindHTTP       Kind = "http"
	KindPostgres   Kind = "postgres"
	KindClickhouse Kind = "clickhouse"
)

// DefaultTimeout bounds one HTTP fetch or SQL read
const DefaultTimeout = 30 * time.Second

// Options tunes Open
type Options struct {
	Client  *http.Client
	Timeout time.Duration
	// Table is used when a SQL DSN carries no table= parameter
	Table   string
	AppName string
	Log     logger.Logger
	// Pool lends standing backends to SQL sources that name their DSN
	Pool Pool
}

// Pool hands out an already open backend for a DSN, or nil to dial a fresh one
type Pool interface {
	For(dsn string) store.Querier
}

// Option mutates Options
type Option func(*Options)

// WithHTTPClient replaces the default client
func WithHTTPClient(c *http.Client) Option { return func(o *Options) { o.Client = c } }

// WithTimeout bounds the whole load
func WithTimeout(d time.Duration) Option { return func(o *Options) { o.Timeout = d } }

// WithTable sets the fallback SQL table
func WithTable(t string) Option { return func(o *Options) { o.Table = t } }

// WithAppName tags database sessions
func WithAppName(n string) Option { return func(o *Options) { o.AppName = n } }

// WithLogger sets the logger used for SQL tracing
func WithLogger(l logger.Logger) Option { return func(o *Options) { o.Log = l } }

// WithPool reuses standing backends, e.g. a *store.Store
func WithPool(p Pool) Option { return func(o *Options) { o.Pool = p } }

// KindOf classifies a source string; anything without a scheme is a file path
func KindOf(src string) (Kind, error) {
	src = strings.TrimSpace(src)
	if src == "" {
		return "", perr.WithField(perr.InvalidArgf("source is empty"), "source")
	}
	i := strings.Index(src, "://")
	if i <= 0 {
		return KindFile, nil
	}
	switch strings.ToLower(src[:i]) {
	case "file":
		return KindFile, nil
	case "http", "https":
		return KindHTTP, nil
	case "postgres", "postgresql":
		return KindPostgres, nil
	case "clickhouse":
		return KindClickhouse, nil
	}
	return "", perr.WithField(perr.InvalidArgf("unsupported source scheme %q", src[:i]), "source")
}

// Identity is the cache key of a source: absolute path for files, the trimmed string otherwise
func Identity(src string) string {
	src = strings.TrimSpace(src)
	if k, err := KindOf(src); err == nil && k == KindFile {
		p := filePath(src)
		if abs, err := filepath.Abs(p); err == nil {
			return "file://" + abs
		}
		return "file://" + p
	}
	return src
}

// Redacted hides credentials for logs
func Redacted(src string) string {
	u, err := url.Parse(src)
	if err != nil || u.User == nil {
		return src
	}
	return u.Redacted()
}

// Open loads src exactly once
func Open(ctx context.Context, src string, opts ...Option) (dataset.Loaded, error) {
	o := Options{Timeout: DefaultTimeout, AppName: "datax", Log: *logger.Named("source")}
	for _, fn := range opts {
		fn(&o)
	}
	kind, err := KindOf(src)
	if err != nil {
		return dataset.Loaded{}, err
	}
	if o.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.Timeout)
		defer cancel()
	}

	switch kind {
	case KindFile:
		return openFile(src)
	case KindHTTP:
		return openHTTP(ctx, src, o)
	default:
		return openSQL(ctx, kind, src, o)
	}
}

func filePath(src string) string {
	if strings.HasPrefix(strings.ToLower(src), "file://") {
		if u, err := url.Parse(src); err == nil && u.Path != "" {
			return u.Path
		}
		return src[len("file://"):]
	}
	return src
}

func openFile(src string) (dataset.Loaded, error) {
	p := filePath(src)
	f, err := os.Open(p)
	if err != nil {
		if os.IsNotExist(err) {
			return dataset.Loaded{}, perr.WithField(perr.Wrapf(err, perr.ErrorCodeNotFound, "source file %s not found", p), "source")
		}
		return dataset.Loaded{}, perr.Sourcef(err, "open %s", p)
	}
	defer func() { _ = f.Close() }()
	return decode(f, p)
}

func openHTTP(ctx context.Context, src string, o Options) (dataset.Loaded, error) {
	client := o.Client
	if client == nil {
		client = &http.Client{}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src, nil)
	if err != nil {
		return dataset.Loaded{}, perr.WithField(perr.Wrap(err, perr.ErrorCodeInvalidArgument, "bad source url"), "source")
	}
	req.Header.Set("Accept", "text/csv, text/tab-separated-values, text/plain;q=0.9, */*;q=0.5")
	resp, err := client.Do(req)
	if err != nil {
		return dataset.Loaded{}, perr.Sourcef(err, "fetch %s", Redacted(src))
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		return dataset.Loaded{}, perr.Sourcef(nil, "fetch %s: unexpected status %d", Redacted(src), resp.StatusCode)
	}
	name := req.URL.Path
	if resp.Header.Get("Content-Encoding") == "" && strings.Contains(resp.Header.Get("Content-Type"), "gzip") {
		name += ".gz"
	}
	return decode(resp.Body, name)
}

// decode gunzips .gz inputs, then parses delimited text
func decode(r io.Reader, name string) (dataset.Loaded, error) {
	if strings.HasSuffix(strings.ToLower(name), ".gz") {
		gz, err := gzip.NewReader(r)
		if err != nil {
			return dataset.Loaded{}, perr.Sourcef(err, "gunzip %s", name)
		}
		defer func() { _ = gz.Close() }()
		r = gz
	}
	return dataset.Load(r, dataset.WithName(name))
}

// dial is swapped in tests
var dial = store.Dial
