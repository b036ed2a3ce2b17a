package service

import (
	"time"

	"datax/internal/adapters/source"
	"datax/internal/core/events"
	"datax/internal/platform/config"
	"datax/internal/platform/logger"
)

// Settings are the knobs shared by the API and the cli
type Settings struct {
	Source       string
	EventsFile   string
	Timeout      time.Duration
	SQLTable     string
	CacheEntries int

	// Restrict and Allowed gate which sources callers may name
	Restrict bool
	Allowed  []string
	// Pool lends standing SQL backends to matching sources
	Pool source.Pool
}

// SettingsFrom reads SOURCE, EVENTS_FILE, HTTP_TIMEOUT_SECONDS, SQL_TABLE and
// CACHE_MAX_ENTRIES under cfg's prefix, e.g. DATAX_SOURCE
func SettingsFrom(cfg config.Conf) Settings {
	return Settings{
		Source:       cfg.MayString("SOURCE", ""),
		EventsFile:   cfg.MayString("EVENTS_FILE", ""),
		Timeout:      time.Duration(cfg.MayInt("HTTP_TIMEOUT_SECONDS", int(source.DefaultTimeout/time.Second))) * time.Second,
		SQLTable:     cfg.MayString("SQL_TABLE", ""),
		CacheEntries: cfg.MayInt("CACHE_MAX_ENTRIES", DefaultCacheEntries),
	}
}

// Options resolves settings into service options; an events file replaces the built-in table
func (s Settings) Options(log logger.Logger) (Options, error) {
	opt := Options{
		DefaultSource:  s.Source,
		CacheEntries:   s.CacheEntries,
		Restrict:       s.Restrict,
		AllowedSources: s.Allowed,
		SourceOptions: []source.Option{
			source.WithTimeout(s.Timeout),
			source.WithLogger(log),
		},
	}
	if s.Pool != nil {
		opt.SourceOptions = append(opt.SourceOptions, source.WithPool(s.Pool))
	}
	if s.SQLTable != "" {
		opt.SourceOptions = append(opt.SourceOptions, source.WithTable(s.SQLTable))
	}
	if s.EventsFile != "" {
		tbl, err := events.LoadFile(s.EventsFile)
		if err != nil {
			return Options{}, err
		}
		opt.Events = tbl
	}
	return opt, nil
}
