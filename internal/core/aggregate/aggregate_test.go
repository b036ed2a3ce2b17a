package aggregate

import (
	"encoding/json"
	"errors"
	"math/rand"
	"slices"
	"testing"
	"time"

	"datax/internal/core/dataset"
	perr "datax/internal/platform/errors"
	"datax/internal/platform/testkit"
	tim "datax/internal/platform/time"
)

func scenario(t *testing.T) dataset.Dataset {
	return dataset.Dataset{
		{Timestamp: testkit.Day(t, "2021-01-01"), ArticleCount: 10, AllArticles: 100},
		{Timestamp: testkit.Day(t, "2021-01-02"), ArticleCount: 5, AllArticles: 50},
		{Timestamp: testkit.Day(t, "2021-01-05"), ArticleCount: 0, AllArticles: 20},
	}
}

func TestBuckets_SevenDayScenario(t *testing.T) {
	rows, err := Buckets(scenario(t), 7, WithEpoch(testkit.Day(t, "2021-01-01")))
	if err != nil {
		t.Fatalf("Buckets: %v", err)
	}
	rows = WithRatio(rows)
	if len(rows) != 1 {
		t.Fatalf("want one bucket, got %d", len(rows))
	}
	r := rows[0]
	if !r.BucketStart.Equal(testkit.Day(t, "2021-01-01")) {
		t.Fatalf("bucket start = %v", r.BucketStart)
	}
	if r.ArticleCountSum != 15 || r.AllArticlesSum != 170 {
		t.Fatalf("sums = %v / %v", r.ArticleCountSum, r.AllArticlesSum)
	}
	if !r.Ratio.Valid {
		t.Fatalf("ratio should be defined")
	}
	testkit.Approx(t, r.Ratio.Value, 0.088, 0.001)
}

func TestBuckets_UnixEpochAnchor(t *testing.T) {
	// 2021-01-01 is a Friday; Unix-anchored 7-day buckets start on Thursdays
	rows, err := Buckets(scenario(t), 7)
	if err != nil {
		t.Fatalf("Buckets: %v", err)
	}
	if len(rows) != 1 || !rows[0].BucketStart.Equal(testkit.Day(t, "2020-12-31")) {
		t.Fatalf("rows = %+v", rows)
	}
	if rows[0].BucketStart.Weekday() != time.Thursday {
		t.Fatalf("weekday = %v", rows[0].BucketStart.Weekday())
	}
}

func TestBuckets_PreEpochFloors(t *testing.T) {
	ds := dataset.Dataset{{Timestamp: testkit.Day(t, "1969-12-31"), ArticleCount: 1, AllArticles: 1}}
	rows, err := Buckets(ds, 7)
	if err != nil {
		t.Fatalf("Buckets: %v", err)
	}
	if !rows[0].BucketStart.Equal(testkit.Day(t, "1969-12-25")) {
		t.Fatalf("pre-epoch bucket start = %v", rows[0].BucketStart)
	}
}

func TestBuckets_CenturiesFromAnchor(t *testing.T) {
	days := []string{"2300-01-01", "2400-06-15", "1600-03-01", "1650-03-01"}
	var ds dataset.Dataset
	for i, d := range days {
		ds = append(ds, dataset.Row{Timestamp: testkit.Day(t, d), ArticleCount: int64(1) << i, AllArticles: 100})
	}
	rows, err := Buckets(ds, 1, WithEpoch(testkit.Day(t, "2021-01-01")))
	if err != nil {
		t.Fatalf("Buckets: %v", err)
	}
	want := []string{"1600-03-01", "1650-03-01", "2300-01-01", "2400-06-15"}
	if len(rows) != len(want) {
		t.Fatalf("want %d buckets, got %+v", len(want), rows)
	}
	for i, r := range rows {
		if got := r.BucketStart.Format(time.DateOnly); got != want[i] {
			t.Fatalf("bucket %d starts %s, want %s", i, got, want[i])
		}
	}

	weekly, err := Buckets(ds, 7, WithEpoch(testkit.Day(t, "2021-01-01")))
	if err != nil {
		t.Fatalf("Buckets weekly: %v", err)
	}
	for _, r := range weekly {
		if n := tim.DaysSince(testkit.Day(t, "2021-01-01"), r.BucketStart); n%7 != 0 {
			t.Fatalf("bucket %v is %d days off the anchor", r.BucketStart, n)
		}
	}
}

func TestBuckets_InvalidWidth(t *testing.T) {
	for _, w := range []int{0, -3} {
		_, err := Buckets(scenario(t), w)
		if !errors.Is(err, ErrInvalidParameter) {
			t.Fatalf("width %d: want invalid parameter, got %v", w, err)
		}
		if e, _ := perr.As(err); e.Field() != "bucket_days" {
			t.Fatalf("error should name bucket_days")
		}
	}
}

func TestBuckets_ConservesSumAndIgnoresOrder(t *testing.T) {
	var ds dataset.Dataset
	var want float64
	base := testkit.Day(t, "2020-02-27")
	for i := 0; i < 60; i++ {
		n := int64(i%9 + 1)
		ds = append(ds, dataset.Row{
			Timestamp:    base.Add(time.Duration(i*13) * time.Hour),
			ArticleCount: n,
			AllArticles:  n * 10,
		})
		want += float64(n)
	}

	rows, err := Buckets(ds, 1)
	if err != nil {
		t.Fatalf("Buckets: %v", err)
	}
	got, _ := Totals(rows)
	if got != want {
		t.Fatalf("sum not conserved: got %v want %v", got, want)
	}

	for _, w := range []int{1, 3, 7, 30} {
		a, _ := Buckets(ds, w)
		shuffled := slices.Clone(ds)
		rand.New(rand.NewSource(int64(w))).Shuffle(len(shuffled), func(i, j int) {
			shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
		})
		b, _ := Buckets(shuffled, w)
		if !slices.Equal(a, b) {
			t.Fatalf("width %d: output depends on input order", w)
		}
		for i := 1; i < len(a); i++ {
			if !a[i-1].BucketStart.Before(a[i].BucketStart) {
				t.Fatalf("width %d: not ascending at %d", w, i)
			}
		}
	}
}

func TestBuckets_EmptyDataset(t *testing.T) {
	rows, err := Buckets(dataset.Dataset{}, 7)
	if err != nil || rows == nil || len(rows) != 0 {
		t.Fatalf("empty input = %#v, %v", rows, err)
	}
}

func TestWithRatio_UndefinedIffZeroDenominator(t *testing.T) {
	in := []Row{
		{ArticleCountSum: 3, AllArticlesSum: 0},
		{ArticleCountSum: 0, AllArticlesSum: 5},
		{ArticleCountSum: 6, AllArticlesSum: 3},
	}
	out := WithRatio(in)
	if out[0].Ratio.Valid {
		t.Fatalf("zero denominator must be undefined")
	}
	if !out[1].Ratio.Valid || out[1].Ratio.Value != 0 {
		t.Fatalf("zero numerator is a real zero: %+v", out[1].Ratio)
	}
	if out[2].Ratio.Value != 2 {
		t.Fatalf("ratio > 1 is valid output, got %v", out[2].Ratio.Value)
	}
	if in[2].Ratio.Valid {
		t.Fatalf("WithRatio mutated its input")
	}
}

func TestRatioEncoding(t *testing.T) {
	b, err := json.Marshal([]Ratio{{}, {Value: 0.5, Valid: true}})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != "[null,0.5]" {
		t.Fatalf("json = %s", b)
	}
	var back []Ratio
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back[0].Valid || !back[1].Valid || back[1].Value != 0.5 {
		t.Fatalf("round trip = %+v", back)
	}
	if (Ratio{}).String() != "" || (Ratio{Value: 0.25, Valid: true}).String() != "0.25" {
		t.Fatalf("String() mismatch")
	}
}
