// Package aggregate buckets a Dataset into fixed-width day windows and derives the coverage ratio.
//
// Buckets are floored from a fixed anchor (the Unix epoch unless WithEpoch says otherwise),
// never from the dataset's own minimum, so boundaries stay put when the caller narrows the
// date range. Empty buckets are absent rather than zero-filled.
package aggregate

import (
	"encoding/json"
	"sort"
	"strconv"
	"time"

	"datax/internal/core/dataset"
	perr "datax/internal/platform/errors"
	tim "datax/internal/platform/time"
)

// ErrInvalidParameter matches bad bucket widths via errors.Is
var ErrInvalidParameter = perr.New(perr.ErrorCodeInvalidArgument, "invalid parameter")

// Ratio is article_count_sum / all_articles_sum, undefined when the denominator is zero
type Ratio struct {
	Value float64
	Valid bool
}

// MarshalJSON renders an undefined ratio as null
func (r Ratio) MarshalJSON() ([]byte, error) {
	if !r.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(r.Value)
}

// UnmarshalJSON accepts null or a number
func (r *Ratio) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*r = Ratio{}
		return nil
	}
	var v float64
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*r = Ratio{Value: v, Valid: true}
	return nil
}

// String renders the ratio for delimited export; undefined is the empty string
func (r Ratio) String() string {
	if !r.Valid {
		return ""
	}
	return strconv.FormatFloat(r.Value, 'f', -1, 64)
}

// Row is one aggregated bucket
type Row struct {
	BucketStart     time.Time `json:"bucket_start"`
	ArticleCountSum float64   `json:"article_count_sum"`
	AllArticlesSum  float64   `json:"all_articles_sum"`
	Ratio           Ratio     `json:"ratio" swaggertype:"number"`
}

// Option tunes Buckets
type Option func(*config)

type config struct{ epoch time.Time }

// WithEpoch anchors bucket boundaries at the day of t instead of 1970-01-01
func WithEpoch(t time.Time) Option {
	return func(c *config) {
		if !t.IsZero() {
			c.epoch = t
		}
	}
}

// Buckets groups rows into bucketDays-wide windows and sums both counts per window.
// Output is ascending by BucketStart whatever the input order.
func Buckets(ds dataset.Dataset, bucketDays int, opts ...Option) ([]Row, error) {
	if bucketDays < 1 {
		return nil, perr.WithField(perr.InvalidArgf("bucket_days must be >= 1, got %d", bucketDays), "bucket_days")
	}
	cfg := config{epoch: tim.Epoch}
	for _, o := range opts {
		o(&cfg)
	}
	anchor := tim.StartOfDay(cfg.epoch)
	width := int64(bucketDays)

	byIdx := make(map[int64]*Row)
	for _, r := range ds {
		idx := tim.FloorDiv(tim.DaysSince(anchor, r.Timestamp), width)
		b, ok := byIdx[idx]
		if !ok {
			b = &Row{BucketStart: tim.AddDays(anchor, int(idx*width))}
			byIdx[idx] = b
		}
		b.ArticleCountSum += float64(r.ArticleCount)
		b.AllArticlesSum += float64(r.AllArticles)
	}

	out := make([]Row, 0, len(byIdx))
	for _, b := range byIdx {
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].BucketStart.Before(out[j].BucketStart) })
	return out, nil
}

// WithRatio returns a copy of rows with Ratio filled in
func WithRatio(rows []Row) []Row {
	out := make([]Row, len(rows))
	for i, r := range rows {
		if r.AllArticlesSum != 0 {
			r.Ratio = Ratio{Value: r.ArticleCountSum / r.AllArticlesSum, Valid: true}
		} else {
			r.Ratio = Ratio{}
		}
		out[i] = r
	}
	return out
}

// Totals sums both columns over rows
func Totals(rows []Row) (articles, all float64) {
	for _, r := range rows {
		articles += r.ArticleCountSum
		all += r.AllArticlesSum
	}
	return articles, all
}
