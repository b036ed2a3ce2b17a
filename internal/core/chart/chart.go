// Package chart composes aggregated series, an optional trend and event markers into a
// declarative chart description. It never renders; see adapters/render for that.
package chart

import (
	"encoding/json"
	"time"

	"datax/internal/core/aggregate"
	"datax/internal/core/events"
	"datax/internal/core/trend"

	"github.com/google/uuid"
)

// Series names and axes
const (
	SeriesCount = "Article Count"
	SeriesRatio = "Ratio"

	AxisPrimary   = "primary"
	AxisSecondary = "secondary"
)

// Default titles, one per view
const (
	TitleCount = "Articles over time"
	TitleRatio = "Articles relative to all articles"
)

var specNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("datax:chart-spec"))

// Point is one plotted value; a nil Y is a gap
type Point struct {
	X time.Time `json:"x"`
	Y *float64  `json:"y"`
}

// Series is a named line on one of the two axes
type Series struct {
	Name   string  `json:"name"`
	Axis   string  `json:"axis"`
	Points []Point `json:"points"`
}

// TrendOverlay is the fitted line evaluated at the data x positions
type TrendOverlay struct {
	Slope     float64 `json:"slope"`
	Intercept float64 `json:"intercept"`
	Points    []Point `json:"points"`
}

// Marker is a vertical event line
type Marker struct {
	Index int       `json:"index"`
	Date  time.Time `json:"date"`
	Label string    `json:"label"`
	Token string    `json:"token"`
}

// Axis is the visible x extent
type Axis struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Spec is a complete, renderer-agnostic chart
type Spec struct {
	ID      string        `json:"id"`
	Title   string        `json:"title"`
	Empty   bool          `json:"empty"`
	XAxis   Axis          `json:"x_axis"`
	Series  []Series      `json:"series"`
	Trend   *TrendOverlay `json:"trend,omitempty"`
	Markers []Marker      `json:"markers"`
}

// Option tunes Compose
type Option func(*Spec)

// WithTitle overrides the default title
func WithTitle(title string) Option {
	return func(s *Spec) {
		if title != "" {
			s.Title = title
		}
	}
}

// Compose builds the Spec. A nil tr omits the overlay; ratio adds the secondary series
// with gaps where the ratio is undefined. An empty series yields Empty=true, not an error.
func Compose(rows []aggregate.Row, tr *trend.Line, evs []events.AnnotatedEvent, ratio bool, opts ...Option) Spec {
	s := Spec{
		Title:   TitleCount,
		Empty:   len(rows) == 0,
		Series:  []Series{},
		Markers: []Marker{},
	}
	if ratio {
		s.Title = TitleRatio
	}
	for _, o := range opts {
		o(&s)
	}

	if len(rows) > 0 {
		s.XAxis = Axis{Start: rows[0].BucketStart, End: rows[len(rows)-1].BucketStart}
	}

	count := Series{Name: SeriesCount, Axis: AxisPrimary, Points: make([]Point, len(rows))}
	for i, r := range rows {
		count.Points[i] = Point{X: r.BucketStart, Y: ptr(r.ArticleCountSum)}
	}
	s.Series = append(s.Series, count)

	if ratio {
		rs := Series{Name: SeriesRatio, Axis: AxisSecondary, Points: make([]Point, len(rows))}
		for i, r := range rows {
			p := Point{X: r.BucketStart}
			if r.Ratio.Valid {
				p.Y = ptr(r.Ratio.Value)
			}
			rs.Points[i] = p
		}
		s.Series = append(s.Series, rs)
	}

	if tr != nil && len(rows) > 0 {
		ys := trend.Points(*tr, len(rows))
		ov := &TrendOverlay{Slope: tr.Slope, Intercept: tr.Intercept, Points: make([]Point, len(rows))}
		for i, r := range rows {
			ov.Points[i] = Point{X: r.BucketStart, Y: ptr(ys[i])}
		}
		s.Trend = ov
	}

	for _, e := range evs {
		s.Markers = append(s.Markers, Marker{Index: e.Index, Date: e.Date, Label: e.Label, Token: e.Token()})
	}

	s.ID = identity(s)
	return s
}

// identity hashes the canonical JSON of the spec (sans ID) into a v5-style UUID
func identity(s Spec) string {
	s.ID = ""
	b, err := json.Marshal(s)
	if err != nil {
		// NaN or Inf in a series; no canonical form
		return uuid.NewString()
	}
	return uuid.NewSHA1(specNamespace, b).String()
}

func ptr(v float64) *float64 { return &v }
