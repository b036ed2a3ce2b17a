package dataset

import (
	"bufio"
	"encoding/csv"
	"errors"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	perr "datax/internal/platform/errors"
	"datax/internal/platform/logger"

	"golang.org/x/text/cases"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// LoadOption tunes Load
type LoadOption func(*loadConfig)

type loadConfig struct {
	delim rune
	name  string
}

// WithDelimiter forces the field separator instead of sniffing the header
func WithDelimiter(r rune) LoadOption { return func(c *loadConfig) { c.delim = r } }

// WithName labels the source in log lines
func WithName(name string) LoadOption { return func(c *loadConfig) { c.name = name } }

// timestamp layouts tried in order; fractional seconds are accepted after any seconds field
var layouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05Z0700",
	"2006-01-02T15:04:05Z07",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05Z0700",
	"2006-01-02 15:04:05Z07",
	"2006-01-02 15:04:05 -0700 MST",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	time.DateOnly,
}

// ParseTimestamp coerces an ISO-8601-like value to UTC.
// Values without an offset are read as UTC. 0001-01-01T00:00:00Z is the zero
// time.Time and is refused so a loaded Timestamp never reads as unset.
func ParseTimestamp(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, l := range layouts {
		if t, err := time.Parse(l, s); err == nil {
			t = t.UTC()
			return t, !t.IsZero()
		}
	}
	return time.Time{}, false
}

// ParseCount accepts non-negative integers, also when written as "12.0"
func ParseCount(s string) (int64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n, n >= 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || f < 0 || f > math.MaxInt64/2 || f != math.Trunc(f) {
		return 0, false
	}
	return int64(f), true
}

// Builder resolves a header once and coerces records into a Dataset.
// Both the delimited-text path and SQL sources feed it.
type Builder struct {
	ts, count, all, keyword int

	rows    Dataset
	dropped int
	total   int
}

// NewBuilder maps the logical columns onto header positions.
// A missing required column is a schema error naming it.
func NewBuilder(header []string) (*Builder, error) {
	fold := cases.Fold()
	pos := make(map[string]int, len(header))
	for i, h := range header {
		k := fold.String(strings.TrimSpace(h))
		if _, dup := pos[k]; !dup {
			pos[k] = i
		}
	}
	find := func(col string) int {
		if i, ok := pos[fold.String(col)]; ok {
			return i
		}
		return -1
	}

	b := &Builder{
		ts:      find(ColDatetime),
		count:   find(ColArticleCount),
		all:     find(ColAllArticles),
		keyword: find(ColKeyword),
	}
	for _, req := range []struct {
		col string
		at  int
	}{{ColDatetime, b.ts}, {ColArticleCount, b.count}, {ColAllArticles, b.all}} {
		if req.at < 0 {
			return nil, perr.Schemaf(req.col, "missing required column %q", req.col)
		}
	}
	return b, nil
}

// Selected returns the header names backing datetime, Article Count, All Articles and,
// when present, keyword, in that order
func (b *Builder) Selected(header []string) []string {
	out := []string{header[b.ts], header[b.count], header[b.all]}
	if b.keyword >= 0 {
		out = append(out, header[b.keyword])
	}
	return out
}

// Add coerces one record; it reports false when the row was dropped
func (b *Builder) Add(rec []string) bool {
	b.total++
	cell := func(i int) string {
		if i < 0 || i >= len(rec) {
			return ""
		}
		return rec[i]
	}

	ts, ok := ParseTimestamp(cell(b.ts))
	if !ok {
		b.dropped++
		return false
	}
	n, okN := ParseCount(cell(b.count))
	all, okA := ParseCount(cell(b.all))
	if !okN || !okA {
		b.dropped++
		return false
	}
	b.rows = append(b.rows, Row{
		Timestamp:    ts,
		ArticleCount: n,
		AllArticles:  all,
		Keyword:      strings.TrimSpace(cell(b.keyword)),
	})
	return true
}

// Skip counts a line that could not even be split into fields
func (b *Builder) Skip() {
	b.total++
	b.dropped++
}

// Loaded returns the result; zero surviving rows is an empty-dataset error
func (b *Builder) Loaded() (Loaded, error) {
	out := Loaded{Dataset: b.rows, Dropped: b.dropped, Total: b.total}
	if len(b.rows) == 0 {
		return out, perr.EmptyDatasetf("no valid rows after coercion (%d dropped of %d)", b.dropped, b.total)
	}
	if out.Dataset == nil {
		out.Dataset = Dataset{}
	}
	return out, nil
}

// FromRecords builds a Dataset from an already split header and records
func FromRecords(header []string, records [][]string) (Loaded, error) {
	b, err := NewBuilder(header)
	if err != nil {
		return Loaded{}, err
	}
	for _, rec := range records {
		b.Add(rec)
	}
	return b.Loaded()
}

// Load parses delimited text with a header row into a Dataset.
// A leading BOM is honored, the delimiter is sniffed from the header unless forced,
// and rows failing coercion are dropped and counted.
func Load(r io.Reader, opts ...LoadOption) (Loaded, error) {
	cfg := loadConfig{}
	for _, o := range opts {
		o(&cfg)
	}

	br := bufio.NewReader(transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder())))
	head, err := br.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return Loaded{}, perr.Sourcef(err, "read header")
	}
	if strings.TrimSpace(head) == "" {
		return Loaded{}, perr.Schemaf(ColDatetime, "missing header row")
	}

	delim := cfg.delim
	if delim == 0 {
		delim = sniffDelimiter(head)
	}

	cr := csv.NewReader(io.MultiReader(strings.NewReader(head), br))
	cr.Comma = delim
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.ReuseRecord = true

	header, err := cr.Read()
	if err != nil {
		return Loaded{}, perr.Schemaf(ColDatetime, "unreadable header: %v", err)
	}
	b, err := NewBuilder(header)
	if err != nil {
		return Loaded{}, err
	}

	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var pe *csv.ParseError
			if errors.As(err, &pe) {
				b.Skip()
				continue
			}
			return Loaded{}, perr.Sourcef(err, "read rows")
		}
		b.Add(rec)
	}

	out, err := b.Loaded()
	if out.Dropped > 0 {
		logger.Named("dataset").Warn().
			Str("source", cfg.name).
			Int("dropped", out.Dropped).
			Int("total", out.Total).
			Msg("rows dropped during coercion")
	}
	return out, err
}

// sniffDelimiter picks tab when the header has one, otherwise comma
func sniffDelimiter(header string) rune {
	if strings.ContainsRune(header, '\t') {
		return '\t'
	}
	if !strings.ContainsRune(header, ',') && strings.ContainsRune(header, ';') {
		return ';'
	}
	return ','
}
