// Package trend fits an ordinary least-squares line over an aggregated series.
// x is the 0-based position in the ascending series, not the timestamp.
package trend

import (
	"datax/internal/core/aggregate"
	perr "datax/internal/platform/errors"

	"gonum.org/v1/gonum/stat"
)

// ErrInsufficientData matches fits over fewer than two points
var ErrInsufficientData = perr.New(perr.ErrorCodeInsufficientData, "insufficient data")

// Line is y = Slope*i + Intercept
type Line struct {
	Slope     float64 `json:"slope"`
	Intercept float64 `json:"intercept"`
}

// Fit regresses ArticleCountSum on series position
func Fit(rows []aggregate.Row) (Line, error) {
	if len(rows) < 2 {
		return Line{}, perr.InsufficientDataf("trend needs at least 2 points, got %d", len(rows))
	}
	xs := make([]float64, len(rows))
	ys := make([]float64, len(rows))
	for i, r := range rows {
		xs[i] = float64(i)
		ys[i] = r.ArticleCountSum
	}
	alpha, beta := stat.LinearRegression(xs, ys, nil, false)
	return Line{Slope: beta, Intercept: alpha}, nil
}

// Evaluate returns the line at position i
func Evaluate(l Line, i int) float64 { return l.Slope*float64(i) + l.Intercept }

// Points evaluates the line at positions 0..n-1
func Points(l Line, n int) []float64 {
	if n <= 0 {
		return nil
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = Evaluate(l, i)
	}
	return out
}
