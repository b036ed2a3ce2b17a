package trend

import (
	"errors"
	"testing"

	"datax/internal/core/aggregate"
	perr "datax/internal/platform/errors"
	"datax/internal/platform/testkit"
)

func series(ys ...float64) []aggregate.Row {
	out := make([]aggregate.Row, len(ys))
	for i, y := range ys {
		out[i] = aggregate.Row{ArticleCountSum: y}
	}
	return out
}

func TestFit_ExactLine(t *testing.T) {
	l, err := Fit(series(1, 3, 5, 7))
	if err != nil {
		t.Fatalf("Fit: %v", err)
	}
	testkit.Approx(t, l.Slope, 2, 1e-9)
	testkit.Approx(t, l.Intercept, 1, 1e-9)
	testkit.Approx(t, Evaluate(l, 10), 21, 1e-9)
}

func TestFit_NoisyAndFlat(t *testing.T) {
	l, err := Fit(series(2, 4, 3, 5))
	if err != nil {
		t.Fatalf("Fit: %v", err)
	}
	// x̄=1.5 ȳ=3.5, Sxy=4, Sxx=5
	testkit.Approx(t, l.Slope, 0.8, 1e-9)
	testkit.Approx(t, l.Intercept, 2.3, 1e-9)

	flat, err := Fit(series(4, 4, 4))
	if err != nil {
		t.Fatalf("Fit flat: %v", err)
	}
	testkit.Approx(t, flat.Slope, 0, 1e-12)
	testkit.Approx(t, flat.Intercept, 4, 1e-12)
}

func TestFit_InsufficientData(t *testing.T) {
	for _, rows := range [][]aggregate.Row{nil, series(9)} {
		_, err := Fit(rows)
		if !errors.Is(err, ErrInsufficientData) {
			t.Fatalf("len %d: want insufficient data, got %v", len(rows), err)
		}
		if perr.CodeOf(err).Fatal() {
			t.Fatalf("insufficient data must be recoverable")
		}
	}
}

func TestPoints(t *testing.T) {
	pts := Points(Line{Slope: -1, Intercept: 3}, 4)
	want := []float64{3, 2, 1, 0}
	for i := range want {
		testkit.Approx(t, pts[i], want[i], 1e-12)
	}
	if Points(Line{}, 0) != nil {
		t.Fatalf("Points(0) should be nil")
	}
}
