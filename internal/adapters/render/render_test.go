package render

import (
	"bytes"
	"image/png"
	"strings"
	"testing"

	"datax/internal/core/aggregate"
	"datax/internal/core/chart"
	"datax/internal/core/events"
	"datax/internal/core/trend"
	perr "datax/internal/platform/errors"
	"datax/internal/platform/testkit"
)

func spec(t *testing.T, ratio bool, n int) chart.Spec {
	t.Helper()
	var rows []aggregate.Row
	start := testkit.Day(t, "2021-01-01")
	for i := 0; i < n; i++ {
		all := float64(100 + 10*i)
		if i == 1 {
			all = 0
		}
		rows = append(rows, aggregate.Row{BucketStart: start.AddDate(0, 0, 7*i), ArticleCountSum: float64(5 + i), AllArticlesSum: all})
	}
	rows = aggregate.WithRatio(rows)
	var tr *trend.Line
	if l, err := trend.Fit(rows); err == nil {
		tr = &l
	}
	evs := []events.AnnotatedEvent{{Event: events.Event{Date: testkit.Day(t, "2021-01-10"), Label: "Climate Law"}, Index: 3}}
	return chart.Compose(rows, tr, evs, ratio)
}

func TestRender_PNG(t *testing.T) {
	var buf bytes.Buffer
	if err := Render(&buf, spec(t, true, 6), PNG, WithSize(640, 320)); err != nil {
		t.Fatalf("Render: %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 640 || b.Dy() != 320 {
		t.Fatalf("size = %v", b)
	}
}

func TestRender_SVGCarriesTitleAndMarkerToken(t *testing.T) {
	var buf bytes.Buffer
	if err := Render(&buf, spec(t, false, 4), SVG); err != nil {
		t.Fatalf("Render: %v", err)
	}
	out := buf.String()
	testkit.MustContain(t, out, "<svg")
	testkit.MustContain(t, out, chart.TitleCount)
	testkit.MustContain(t, out, "[3]")
}

func TestRender_SingleBucket(t *testing.T) {
	var buf bytes.Buffer
	if err := Render(&buf, spec(t, true, 1), PNG); err != nil {
		t.Fatalf("single bucket should render: %v", err)
	}
}

func TestRender_Empty(t *testing.T) {
	s := chart.Compose(nil, nil, nil, false)
	var buf bytes.Buffer
	if err := Render(&buf, s, SVG); err != nil {
		t.Fatalf("Render: %v", err)
	}
	testkit.MustContain(t, buf.String(), NoData)

	buf.Reset()
	if err := Render(&buf, s, PNG); err != nil {
		t.Fatalf("Render png: %v", err)
	}
	if _, err := png.Decode(&buf); err != nil {
		t.Fatalf("decode: %v", err)
	}
}

func TestRender_SVGEscapesTitle(t *testing.T) {
	s := spec(t, false, 3)
	s.Title = "Fit & Finish"
	var buf bytes.Buffer
	if err := Render(&buf, s, SVG); err != nil {
		t.Fatalf("Render: %v", err)
	}
	testkit.MustContain(t, buf.String(), "Fit &amp; Finish")
}

func TestFormats(t *testing.T) {
	for in, want := range map[string]Format{"": PNG, "PNG": PNG, " svg ": SVG} {
		if got, err := ParseFormat(in); err != nil || got != want {
			t.Fatalf("ParseFormat(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := ParseFormat("gif"); perr.CodeOf(err) != perr.ErrorCodeInvalidArgument {
		t.Fatalf("gif should be invalid, got %v", err)
	}
	if err := Render(&bytes.Buffer{}, chart.Spec{}, Format("gif")); perr.CodeOf(err) != perr.ErrorCodeInvalidArgument {
		t.Fatalf("Render(gif) should be invalid, got %v", err)
	}
	if f, ok := FormatFromPath("out/Chart.SVG"); !ok || f != SVG || f.ContentType() != "image/svg+xml" {
		t.Fatalf("FormatFromPath = %q, %v", f, ok)
	}
	if _, ok := FormatFromPath("chart.json"); ok {
		t.Fatalf("json is not an image format")
	}
}

func TestSegmentsSplitAtGaps(t *testing.T) {
	v := func(f float64) *float64 { return &f }
	pts := []chart.Point{{Y: v(1)}, {Y: nil}, {Y: v(2)}, {Y: v(3)}, {Y: nil}}
	segs := segments(pts)
	if len(segs) != 2 || len(segs[0]) != 1 || len(segs[1]) != 2 {
		t.Fatalf("segments = %v", segs)
	}
	if niceCeil(7) != 10 || niceCeil(150) != 200 || niceCeil(1000) != 1000 {
		t.Fatalf("niceCeil off: %v %v %v", niceCeil(7), niceCeil(150), niceCeil(1000))
	}
	if !strings.Contains(PNG.ContentType(), "png") {
		t.Fatalf("png content type")
	}
}
