// Package render draws a chart.Spec to PNG or SVG with go-chart.
//
// Axis ranges are always set explicitly: go-chart derives ranges from raw values and a
// single gap would poison them, so gaps are drawn as separate line segments instead.
package render

import (
	"html"
	"io"
	"math"
	"strings"
	"time"

	"datax/internal/core/chart"
	perr "datax/internal/platform/errors"

	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Format is an output image format
type Format string

// Formats
const (
	PNG Format = "png"
	SVG Format = "svg"
)

// Default canvas size
const (
	DefaultWidth  = 1024
	DefaultHeight = 512
)

// NoData is the placeholder text of an empty chart
const NoData = "No data in range"

var (
	colorCount  = gochart.ColorBlue
	colorRatio  = gochart.ColorOrange
	colorTrend  = gochart.ColorRed
	colorMarker = gochart.ColorAlternateGray
)

// ParseFormat accepts png or svg, case-insensitive; empty means png
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "png":
		return PNG, nil
	case "svg":
		return SVG, nil
	}
	return "", perr.WithField(perr.InvalidArgf("unsupported image format %q", s), "format")
}

// FormatFromPath picks the format from a file extension
func FormatFromPath(p string) (Format, bool) {
	switch {
	case strings.HasSuffix(strings.ToLower(p), ".png"):
		return PNG, true
	case strings.HasSuffix(strings.ToLower(p), ".svg"):
		return SVG, true
	}
	return "", false
}

// ContentType is the HTTP media type of the format
func (f Format) ContentType() string {
	if f == SVG {
		return "image/svg+xml"
	}
	return "image/png"
}

func (f Format) provider() gochart.RendererProvider {
	if f == SVG {
		return gochart.SVG
	}
	return gochart.PNG
}

type options struct {
	width, height int
}

// Option tunes Render
type Option func(*options)

// WithSize overrides the canvas size; non-positive values keep the default
func WithSize(w, h int) Option {
	return func(o *options) {
		if w > 0 {
			o.width = w
		}
		if h > 0 {
			o.height = h
		}
	}
}

// Render writes s as an image
func Render(w io.Writer, s chart.Spec, f Format, opts ...Option) error {
	if f != PNG && f != SVG {
		return perr.WithField(perr.InvalidArgf("unsupported image format %q", f), "format")
	}
	o := options{width: DefaultWidth, height: DefaultHeight}
	for _, fn := range opts {
		fn(&o)
	}

	var ch gochart.Chart
	if s.Empty || !hasPoints(s) {
		ch = empty(s.Title)
	} else {
		ch = build(s)
	}
	ch.Width, ch.Height = o.width, o.height
	if f == SVG {
		// svg text nodes are written unescaped
		ch.Title = html.EscapeString(ch.Title)
	}

	if err := ch.Render(f.provider(), w); err != nil {
		return perr.Wrapf(err, perr.ErrorCodeUnknown, "render %s", f)
	}
	return nil
}

func hasPoints(s chart.Spec) bool {
	for _, ser := range s.Series {
		for _, p := range ser.Points {
			if p.Y != nil {
				return true
			}
		}
	}
	return false
}

// bounds tracks a y extent
type bounds struct{ min, max float64 }

func newBounds() bounds { return bounds{min: math.MaxFloat64, max: -math.MaxFloat64} }

func (b *bounds) add(v float64) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return
	}
	b.min = math.Min(b.min, v)
	b.max = math.Max(b.max, v)
}

func (b bounds) ok() bool { return b.min <= b.max }

// rng always includes zero and never collapses
func (b bounds) rng() *gochart.ContinuousRange {
	lo, hi := 0.0, 1.0
	if b.ok() {
		lo, hi = math.Min(0, b.min), math.Max(0, b.max)
	}
	if hi <= lo {
		hi = lo + 1
	}
	return &gochart.ContinuousRange{Min: lo, Max: niceCeil(hi)}
}

// niceCeil rounds up to 1, 2 or 5 times a power of ten
func niceCeil(v float64) float64 {
	if v <= 0 {
		return v
	}
	exp := math.Pow(10, math.Floor(math.Log10(v)))
	for _, m := range []float64{1, 2, 5, 10} {
		if v <= m*exp {
			return m * exp
		}
	}
	return 10 * exp
}

// segments splits points at gaps into contiguous runs
func segments(pts []chart.Point) [][]chart.Point {
	var out [][]chart.Point
	var cur []chart.Point
	for _, p := range pts {
		if p.Y == nil || math.IsNaN(*p.Y) {
			if len(cur) > 0 {
				out = append(out, cur)
				cur = nil
			}
			continue
		}
		cur = append(cur, p)
	}
	if len(cur) > 0 {
		out = append(out, cur)
	}
	return out
}

func timeSeries(name string, pts []chart.Point, st gochart.Style, axis gochart.YAxisType) gochart.TimeSeries {
	ts := gochart.TimeSeries{Name: name, Style: st, YAxis: axis}
	for _, p := range pts {
		ts.XValues = append(ts.XValues, p.X)
		ts.YValues = append(ts.YValues, *p.Y)
	}
	if len(pts) == 1 {
		// lone points have no line to stroke
		ts.Style.DotWidth = 4
		ts.Style.DotColor = st.StrokeColor
	}
	return ts
}

func build(s chart.Spec) gochart.Chart {
	var (
		series  []gochart.Series
		legend  []gochart.Series
		primary = newBounds()
		second  = newBounds()
		minX    = time.Time{}
		maxX    = time.Time{}
	)
	seeX := func(t time.Time) {
		if minX.IsZero() || t.Before(minX) {
			minX = t
		}
		if maxX.IsZero() || t.After(maxX) {
			maxX = t
		}
	}

	for _, ser := range s.Series {
		axis, color := gochart.YAxisPrimary, colorCount
		if ser.Axis == chart.AxisSecondary {
			axis, color = gochart.YAxisSecondary, colorRatio
		}
		st := gochart.Style{StrokeColor: color, StrokeWidth: 2}
		for i, seg := range segments(ser.Points) {
			for _, p := range seg {
				seeX(p.X)
				if axis == gochart.YAxisSecondary {
					second.add(*p.Y)
				} else {
					primary.add(*p.Y)
				}
			}
			ts := timeSeries(ser.Name, seg, st, axis)
			series = append(series, ts)
			if i == 0 {
				legend = append(legend, ts)
			}
		}
	}

	if s.Trend != nil {
		st := gochart.Style{StrokeColor: colorTrend, StrokeWidth: 1.5, StrokeDashArray: []float64{6, 4}}
		for i, seg := range segments(s.Trend.Points) {
			for _, p := range seg {
				primary.add(*p.Y)
			}
			ts := timeSeries("Trend", seg, st, gochart.YAxisPrimary)
			series = append(series, ts)
			if i == 0 {
				legend = append(legend, ts)
			}
		}
	}

	for _, m := range s.Markers {
		seeX(m.Date)
	}
	if !maxX.After(minX) {
		maxX = minX.AddDate(0, 0, 1)
	}

	yr := primary.rng()
	if len(s.Markers) > 0 {
		ann := gochart.AnnotationSeries{Style: gochart.Style{FontSize: 8}}
		for _, m := range s.Markers {
			series = append(series, gochart.TimeSeries{
				Style:   gochart.Style{StrokeColor: colorMarker, StrokeWidth: 1, StrokeDashArray: []float64{2, 3}},
				XValues: []time.Time{m.Date, m.Date},
				YValues: []float64{yr.Min, yr.Max},
			})
			ann.Annotations = append(ann.Annotations, gochart.Value2{
				XValue: gochart.TimeToFloat64(m.Date),
				YValue: yr.Max,
				Label:  m.Token,
			})
		}
		series = append(series, ann)
	}

	ch := gochart.Chart{
		Title:      s.Title,
		Background: gochart.Style{Padding: gochart.Box{Top: 48, Left: 16, Right: 16, Bottom: 16}},
		XAxis: gochart.XAxis{
			ValueFormatter: gochart.TimeDateValueFormatter,
			Range:          &gochart.ContinuousRange{Min: gochart.TimeToFloat64(minX), Max: gochart.TimeToFloat64(maxX)},
		},
		YAxis: gochart.YAxis{Name: chart.SeriesCount, Range: yr},
		YAxisSecondary: gochart.YAxis{
			Style: gochart.Hidden(),
		},
		Series: series,
	}
	if second.ok() {
		ch.YAxisSecondary = gochart.YAxis{
			Name:           chart.SeriesRatio,
			Range:          second.rng(),
			ValueFormatter: gochart.PercentValueFormatter,
		}
	}

	legendChart := ch
	legendChart.Series = legend
	ch.Elements = []gochart.Renderable{gochart.Legend(&legendChart)}
	return ch
}

// empty is a titled canvas carrying only the no-data label
func empty(title string) gochart.Chart {
	return gochart.Chart{
		Title:          title,
		Background:     gochart.Style{Padding: gochart.Box{Top: 48, Left: 16, Right: 16, Bottom: 16}},
		XAxis:          gochart.XAxis{Style: gochart.Hidden(), Range: &gochart.ContinuousRange{Min: 0, Max: 1}},
		YAxis:          gochart.YAxis{Style: gochart.Hidden(), Range: &gochart.ContinuousRange{Min: 0, Max: 1}},
		YAxisSecondary: gochart.YAxis{Style: gochart.Hidden()},
		Series: []gochart.Series{
			gochart.ContinuousSeries{
				Style:   gochart.Style{StrokeColor: drawing.ColorTransparent, StrokeWidth: 1},
				XValues: []float64{0, 1},
				YValues: []float64{0, 0},
			},
			gochart.AnnotationSeries{
				Style:       gochart.Style{FontSize: 14},
				Annotations: []gochart.Value2{{XValue: 0.5, YValue: 0.5, Label: NoData}},
			},
		},
	}
}
