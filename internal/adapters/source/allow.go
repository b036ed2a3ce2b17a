package source

import (
	"net/url"
	"path"
	"path/filepath"
	"strings"

	perr "datax/internal/platform/errors"
)

// Allowlist limits the sources a remote caller may name. An entry admits the
// exact source and, for paths and URLs, everything below it; a DSN entry without
// a query admits every table of that database.
type Allowlist struct {
	entries []*url.URL
}

// NewAllowlist ignores blank and unparsable entries
func NewAllowlist(entries ...string) *Allowlist {
	a := &Allowlist{}
	for _, e := range entries {
		if strings.TrimSpace(e) == "" {
			continue
		}
		if u, ok := canonical(e); ok {
			a.entries = append(a.entries, u)
		}
	}
	return a
}

// Len is the number of usable entries
func (a *Allowlist) Len() int { return len(a.entries) }

// Check rejects src unless an entry admits it. The error carries no hint of
// whether the source exists.
func (a *Allowlist) Check(src string) error {
	if a.Allows(src) {
		return nil
	}
	return perr.WithField(perr.InvalidArgf("source %s is not allowed", Redacted(strings.TrimSpace(src))), "source")
}

// Allows reports whether some entry admits src
func (a *Allowlist) Allows(src string) bool {
	u, ok := canonical(src)
	if !ok {
		return false
	}
	for _, e := range a.entries {
		if admits(e, u) {
			return true
		}
	}
	return false
}

func admits(e, u *url.URL) bool {
	if e.Scheme != u.Scheme || e.User.String() != u.User.String() || !strings.EqualFold(e.Host, u.Host) {
		return false
	}
	if e.RawQuery != "" && e.RawQuery != u.RawQuery {
		return false
	}
	if e.Path == u.Path {
		return true
	}
	return strings.HasPrefix(u.Path, strings.TrimSuffix(e.Path, "/")+"/")
}

// canonical normalizes a source so textual variants compare equal:
// files become absolute cleaned file:// paths, schemes fold, dot segments go
func canonical(src string) (*url.URL, bool) {
	src = strings.TrimSpace(src)
	kind, err := KindOf(src)
	if err != nil {
		return nil, false
	}
	if kind == KindFile {
		p, err := filepath.Abs(filePath(src))
		if err != nil {
			return nil, false
		}
		return &url.URL{Scheme: "file", Path: filepath.ToSlash(filepath.Clean(p))}, true
	}
	u, err := url.Parse(src)
	if err != nil {
		return nil, false
	}
	u.Scheme = strings.ToLower(u.Scheme)
	if kind == KindPostgres {
		u.Scheme = "postgres"
	}
	u.Path = path.Clean("/" + u.Path)
	u.RawQuery = u.Query().Encode()
	u.Fragment, u.RawFragment = "", ""
	return u, true
}
