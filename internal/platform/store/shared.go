package store

import (
	"net/url"
	"path"
	"strings"
)

// For returns the standing backend opened with dsn, or nil when dsn names a
// different server, database or user. Callers must not Close the result.
func (s *Store) For(dsn string) Querier {
	if s == nil {
		return nil
	}
	switch Kind(dsn) {
	case "pg":
		if s.PG != nil && SameDSN(dsn, s.PGDSN) {
			return s.PG
		}
	case "ch":
		if s.CH != nil && SameDSN(dsn, s.CHDSN) {
			return s.CH
		}
	}
	return nil
}

// SameDSN compares two backend URLs by kind, credentials, host, database and
// driver parameters. The table parameter selects data, not a connection, and is ignored.
func SameDSN(a, b string) bool {
	ua, ka, ok := parseDSN(a)
	if !ok {
		return false
	}
	ub, kb, ok := parseDSN(b)
	if !ok || ka != kb {
		return false
	}
	return ua.User.String() == ub.User.String() &&
		strings.EqualFold(ua.Host, ub.Host) &&
		ua.Path == ub.Path &&
		ua.RawQuery == ub.RawQuery
}

func parseDSN(dsn string) (*url.URL, string, bool) {
	k := Kind(strings.TrimSpace(dsn))
	if k == "" {
		return nil, "", false
	}
	u, err := url.Parse(strings.TrimSpace(dsn))
	if err != nil {
		return nil, "", false
	}
	q := u.Query()
	q.Del("table")
	u.RawQuery = q.Encode()
	u.Path = path.Clean("/" + u.Path)
	return u, k, true
}
