// Package dataset holds the typed article-count table and the inclusive day-range filter.
// A Dataset is immutable once loaded; every other stage reads it without copying rows back.
package dataset

import (
	"slices"
	"time"

	perr "datax/internal/platform/errors"
	tim "datax/internal/platform/time"
)

// Logical column names, matched case-insensitively against the header
const (
	ColDatetime     = "datetime"
	ColArticleCount = "Article Count"
	ColAllArticles  = "All Articles"
	ColKeyword      = "keyword"
)

var (
	// ErrSchema matches any missing-column failure via errors.Is
	ErrSchema = perr.New(perr.ErrorCodeSchema, "schema error")
	// ErrEmpty matches loads that produced zero valid rows
	ErrEmpty = perr.New(perr.ErrorCodeEmptyDataset, "empty dataset")
)

// Row is one observation; Timestamp is always UTC and never zero
type Row struct {
	Timestamp    time.Time `json:"timestamp"`
	ArticleCount int64     `json:"article_count"`
	AllArticles  int64     `json:"all_articles"`
	Keyword      string    `json:"keyword,omitempty"`
}

// Dataset is a sequence of rows in source order
type Dataset []Row

// Loaded is a Dataset plus the coercion bookkeeping of the load that produced it
type Loaded struct {
	Dataset Dataset
	Dropped int // rows excluded by timestamp or count coercion
	Total   int // data lines seen
}

// DateRange is a pair of calendar days, inclusive on both ends
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// NewRange truncates both bounds to their UTC day
func NewRange(start, end time.Time) DateRange {
	return DateRange{Start: tim.StartOfDay(start), End: tim.StartOfDay(end)}
}

// Swapped reports Start after End
func (r DateRange) Swapped() bool { return tim.StartOfDay(r.Start).After(tim.StartOfDay(r.End)) }

// bounds returns the half-open instant interval [start 00:00, end+1 00:00)
func (r DateRange) bounds() (lo, hi time.Time) {
	lo = tim.StartOfDay(r.Start)
	hi = tim.AddDays(tim.StartOfDay(r.End), 1)
	return lo, hi
}

// Contains reports whether t falls on a day inside the range
func (r DateRange) Contains(t time.Time) bool {
	if r.Swapped() {
		return false
	}
	lo, hi := r.bounds()
	return !t.Before(lo) && t.Before(hi)
}

// Span returns the range from the earliest to the latest row day; ok is false for an empty Dataset
func Span(ds Dataset) (DateRange, bool) {
	if len(ds) == 0 {
		return DateRange{}, false
	}
	lo, hi := ds[0].Timestamp, ds[0].Timestamp
	for _, r := range ds[1:] {
		if r.Timestamp.Before(lo) {
			lo = r.Timestamp
		}
		if r.Timestamp.After(hi) {
			hi = r.Timestamp
		}
	}
	return NewRange(lo, hi), true
}

// Filter keeps rows whose timestamp falls on a day in rng.
// Swapped bounds and empty results yield an empty Dataset, never an error.
func Filter(ds Dataset, rng DateRange) Dataset {
	out := Dataset{}
	if rng.Swapped() {
		return out
	}
	lo, hi := rng.bounds()
	for _, r := range ds {
		if !r.Timestamp.Before(lo) && r.Timestamp.Before(hi) {
			out = append(out, r)
		}
	}
	return out
}

// ByKeyword keeps rows carrying keyword; an empty keyword returns ds unchanged
func ByKeyword(ds Dataset, keyword string) Dataset {
	if keyword == "" {
		return ds
	}
	out := Dataset{}
	for _, r := range ds {
		if r.Keyword == keyword {
			out = append(out, r)
		}
	}
	return out
}

// Keywords lists the distinct non-empty keywords, sorted
func Keywords(ds Dataset) []string {
	seen := map[string]struct{}{}
	for _, r := range ds {
		if r.Keyword != "" {
			seen[r.Keyword] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for k := range seen {
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}
