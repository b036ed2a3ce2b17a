package store

import (
	"errors"

	"datax/internal/platform/logger"
)

// Option mutates Store during Open
type Option func(*Store) error

// WithLogger sets the logger used by subclients
func WithLogger(log logger.Logger) Option {
	return func(s *Store) error {
		s.Log = log
		return nil
	}
}

// WithQuerier installs an already opened backend under kind ("pg" or "ch")
func WithQuerier(kind string, q Querier) Option {
	return func(s *Store) error {
		switch kind {
		case "pg":
			s.PG = q
		case "ch":
			s.CH = q
		default:
			return errors.New("store: unknown backend kind " + kind)
		}
		return nil
	}
}
