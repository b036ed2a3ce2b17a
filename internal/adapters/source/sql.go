package source

import (
	"context"
	"net/url"
	"regexp"
	"strings"

	"datax/internal/core/dataset"
	perr "datax/internal/platform/errors"
	"datax/internal/platform/store"
)

var tableName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)?$`)

// splitTable pulls table= out of the DSN so drivers never see it
func splitTable(src, fallback string) (dsn, table string, err error) {
	u, err := url.Parse(src)
	if err != nil {
		return "", "", perr.WithField(perr.Wrap(err, perr.ErrorCodeInvalidArgument, "bad source dsn"), "source")
	}
	q := u.Query()
	table = strings.TrimSpace(q.Get("table"))
	q.Del("table")
	u.RawQuery = q.Encode()
	if table == "" {
		table = fallback
	}
	if table == "" {
		return "", "", perr.WithField(perr.InvalidArgf("sql source needs a table= parameter"), "source")
	}
	if !tableName.MatchString(table) {
		return "", "", perr.WithField(perr.InvalidArgf("bad table name %q", table), "source")
	}
	return u.String(), table, nil
}

// dialect renders identifiers and the text projection per backend
type dialect struct {
	quote func(string) string
	text  func(col string) string
	// suffix is appended to the data query
	suffix string
	wrap   func(err error, msg string) error
}

var dialects = map[Kind]dialect{
	KindPostgres: {
		quote: func(s string) string { return `"` + strings.ReplaceAll(s, `"`, `""`) + `"` },
		text:  func(c string) string { return "COALESCE(" + c + "::text, '')" },
		wrap:  perr.FromPostgres,
	},
	KindClickhouse: {
		quote: func(s string) string { return "`" + strings.ReplaceAll(s, "`", "\\`") + "`" },
		text:  func(c string) string { return "ifNull(toString(" + c + "), '')" },
		// DateTime columns render in the session zone
		suffix: " SETTINGS session_timezone = 'UTC'",
		wrap:   perr.FromClickhouse,
	},
}

func (d dialect) table(t string) string {
	parts := strings.Split(t, ".")
	for i, p := range parts {
		parts[i] = d.quote(p)
	}
	return strings.Join(parts, ".")
}

// openSQL probes the table's columns, then reads the logical columns as text and
// feeds them through the same coercion as delimited files
func openSQL(ctx context.Context, kind Kind, src string, o Options) (dataset.Loaded, error) {
	dsn, table, err := splitTable(src, o.Table)
	if err != nil {
		return dataset.Loaded{}, err
	}
	d := dialects[kind]

	var q store.Querier
	if o.Pool != nil {
		q = o.Pool.For(dsn)
	}
	if q == nil {
		q, err = dial(ctx, dsn, o.AppName, o.Log)
		if err != nil {
			return dataset.Loaded{}, perr.Sourcef(err, "connect %s", Redacted(dsn))
		}
		defer func() { _ = q.Close() }()
	}

	cols, err := probe(ctx, q, d, table)
	if err != nil {
		return dataset.Loaded{}, err
	}
	b, err := dataset.NewBuilder(cols)
	if err != nil {
		return dataset.Loaded{}, err
	}
	picked := b.Selected(cols)

	proj := make([]string, len(picked))
	for i, c := range picked {
		proj[i] = d.text(d.quote(c))
	}
	sql := "SELECT " + strings.Join(proj, ", ") + " FROM " + d.table(table) + d.suffix

	rows, err := q.Query(ctx, sql)
	if err != nil {
		return dataset.Loaded{}, d.wrap(err, "read "+table)
	}
	defer rows.Close()

	b, _ = dataset.NewBuilder(picked)
	vals := make([]string, len(picked))
	dest := make([]any, len(picked))
	for i := range vals {
		dest[i] = &vals[i]
	}
	for rows.Next() {
		if err := rows.Scan(dest...); err != nil {
			b.Skip()
			continue
		}
		b.Add(vals)
	}
	if err := rows.Err(); err != nil {
		return dataset.Loaded{}, d.wrap(err, "read "+table)
	}

	out, err := b.Loaded()
	if out.Dropped > 0 {
		o.Log.Warn().Str("table", table).Int("dropped", out.Dropped).Int("total", out.Total).Msg("rows dropped during coercion")
	}
	return out, err
}

// probe lists the table's column names without reading rows
func probe(ctx context.Context, q store.Querier, d dialect, table string) ([]string, error) {
	rows, err := q.Query(ctx, "SELECT * FROM "+d.table(table)+" LIMIT 0")
	if err != nil {
		return nil, d.wrap(err, "inspect "+table)
	}
	cols := rows.Columns()
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, d.wrap(err, "inspect "+table)
	}
	return cols, nil
}
