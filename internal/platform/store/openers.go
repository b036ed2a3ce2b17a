package store

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"datax/internal/platform/logger"
	chx "datax/internal/platform/store/ch"
	"datax/internal/platform/store/pg"
)

// openPG opens pg, pings it with backoff and wraps it with our adapter
func openPG(ctx context.Context, cfg Config, log logger.Logger) (Querier, error) {
	var tracer pg.QueryTracer
	if cfg.PG.LogSQL {
		tracer = pg.Tracer(log)
	}

	p, err := pg.Open(ctx, pg.Config{
		URL:      cfg.PG.URL,
		MaxConns: cfg.PG.MaxConns,
		SlowMs:   cfg.PG.SlowQueryMs,
		AppName:  cfg.AppName,
	}, tracer, nil)
	if err != nil {
		return nil, err
	}

	maxAttempts := cfg.PG.ConnectRetries
	if maxAttempts <= 0 {
		maxAttempts = 20
	}
	pingTimeout := cfg.PG.PingTimeout
	if pingTimeout <= 0 {
		pingTimeout = 3 * time.Second
	}
	const (
		backoffStart   = 150 * time.Millisecond
		backoffCeiling = 2 * time.Second
	)

	var lastErr error
	backoff := backoffStart
	for i := 0; i < maxAttempts; i++ {
		toCtx, cancel := context.WithTimeout(ctx, pingTimeout)
		lastErr = p.Ping(toCtx)
		cancel()

		if lastErr == nil {
			return &pgAdapter{p: p}, nil
		}
		if i == maxAttempts-1 {
			break
		}
		select {
		case <-ctx.Done():
			p.Close()
			return nil, ctx.Err()
		case <-time.After(backoff):
		}
		backoff = min(backoff*2, backoffCeiling)
	}

	p.Close()
	return nil, fmt.Errorf("postgres ping failed after %d attempts: %w", maxAttempts, lastErr)
}

func openCH(ctx context.Context, cfg Config) (Querier, error) {
	c, err := chx.Open(ctx, chx.Config{URL: cfg.CH.URL, Role: cfg.CH.Role, Tag: cfg.AppName})
	if err != nil {
		return nil, err
	}
	return &chAdapter{c: c}, nil
}

// Kind names the backend a DSN points at: "pg", "ch" or "" when unsupported
func Kind(dsn string) string {
	i := strings.Index(dsn, "://")
	if i <= 0 {
		return ""
	}
	switch strings.ToLower(dsn[:i]) {
	case "postgres", "postgresql":
		return "pg"
	case "clickhouse":
		return "ch"
	}
	return ""
}

// Dial opens a single backend for a one-off source read. The first failed
// ping is returned as is; callers own Close.
func Dial(ctx context.Context, dsn string, appName string, log logger.Logger) (Querier, error) {
	switch Kind(dsn) {
	case "pg":
		return openPG(ctx, Config{
			AppName: appName,
			PG:      PGConfig{URL: dsn, MaxConns: 2, LogSQL: log.Debug().Enabled(), ConnectRetries: 1},
		}, log)
	case "ch":
		return openCH(ctx, Config{AppName: appName, CH: CHConfig{URL: dsn, Role: "source"}})
	}
	return nil, fmt.Errorf("store: unsupported dsn scheme in %q", redact(dsn))
}

// redact hides the password of a DSN for error messages and logs
func redact(dsn string) string {
	u, err := url.Parse(dsn)
	if err != nil || u.User == nil {
		return dsn
	}
	return u.Redacted()
}
