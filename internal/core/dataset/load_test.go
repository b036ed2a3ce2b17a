package dataset

import (
	"errors"
	"strings"
	"testing"
	"time"

	perr "datax/internal/platform/errors"
)

func TestLoad_CommaWithDroppedRows(t *testing.T) {
	in := "datetime,Article Count,All Articles,keyword\n" +
		"2021-01-01,10,100,green deal\n" +
		"not a date,5,50,green deal\n" +
		"2021-01-02 13:45:00,5.0,50,green deal\n" +
		"2021-01-03,-1,50,green deal\n" +
		"2021-01-04,,50,green deal\n" +
		"2021-01-05T08:00:00+02:00,0,20,\n"

	got, err := Load(strings.NewReader(in), WithName("inline"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Total != 6 || got.Dropped != 3 || len(got.Dataset) != 3 {
		t.Fatalf("total=%d dropped=%d rows=%d", got.Total, got.Dropped, len(got.Dataset))
	}
	if got.Dataset[1].ArticleCount != 5 || got.Dataset[1].Timestamp.Hour() != 13 {
		t.Fatalf("row 1 = %+v", got.Dataset[1])
	}
	// offset converted to UTC
	if ts := got.Dataset[2].Timestamp; ts.Location() != time.UTC || ts.Hour() != 6 {
		t.Fatalf("row 2 timestamp = %v", ts)
	}
	if got.Dataset[0].Keyword != "green deal" || got.Dataset[2].Keyword != "" {
		t.Fatalf("keywords = %q, %q", got.Dataset[0].Keyword, got.Dataset[2].Keyword)
	}
}

func TestLoad_TabBOMAndFoldedHeaders(t *testing.T) {
	in := "\ufeffDATETIME\t article count \tall articles\n" +
		"2021-01-01T00:00:00Z\t10\t100\n"

	got, err := Load(strings.NewReader(in))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(got.Dataset) != 1 || got.Dataset[0].AllArticles != 100 {
		t.Fatalf("rows = %+v", got.Dataset)
	}
}

func TestLoad_ForcedDelimiter(t *testing.T) {
	in := "datetime|Article Count|All Articles\n2021-01-01|1|2\n"
	got, err := Load(strings.NewReader(in), WithDelimiter('|'))
	if err != nil || len(got.Dataset) != 1 {
		t.Fatalf("Load = %+v, %v", got, err)
	}
}

func TestLoad_MissingColumnIsSchemaError(t *testing.T) {
	in := "datetime,Article Count\n2021-01-01,1\n"
	_, err := Load(strings.NewReader(in))
	if !errors.Is(err, ErrSchema) {
		t.Fatalf("want schema error, got %v", err)
	}
	e, ok := perr.As(err)
	if !ok || e.Field() != ColAllArticles {
		t.Fatalf("schema error should name the column, got %+v", e)
	}
}

func TestLoad_EmptyInputs(t *testing.T) {
	if _, err := Load(strings.NewReader("")); !errors.Is(err, ErrSchema) {
		t.Fatalf("no header: want schema error, got %v", err)
	}

	_, err := Load(strings.NewReader("datetime,Article Count,All Articles\nnope,1,1\n"))
	if !errors.Is(err, ErrEmpty) {
		t.Fatalf("all rows dropped: want empty dataset error, got %v", err)
	}
	if perr.CodeOf(err) != perr.ErrorCodeEmptyDataset {
		t.Fatalf("code = %v", perr.CodeOf(err))
	}
}

func TestParseTimestampLayouts(t *testing.T) {
	want := time.Date(2021, 3, 4, 5, 6, 7, 0, time.UTC)
	for _, s := range []string{
		"2021-03-04T05:06:07Z",
		"2021-03-04T05:06:07+00:00",
		"2021-03-04T05:06:07+0000",
		"2021-03-04 05:06:07+00:00",
		"2021-03-04 05:06:07",
		"2021-03-04T05:06:07",
		" 2021-03-04 05:06:07 ",
	} {
		got, ok := ParseTimestamp(s)
		if !ok || !got.Equal(want) {
			t.Fatalf("ParseTimestamp(%q) = %v, %v", s, got, ok)
		}
	}
	if got, ok := ParseTimestamp("2021-03-04 05:06:07.250"); !ok || got.Nanosecond() != 250_000_000 {
		t.Fatalf("fractional seconds lost: %v %v", got, ok)
	}
	if got, ok := ParseTimestamp("2021-03-04"); !ok || !got.Equal(time.Date(2021, 3, 4, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("date only = %v %v", got, ok)
	}
	if got, ok := ParseTimestamp("1600-03-01"); !ok || got.Year() != 1600 {
		t.Fatalf("far past day = %v %v", got, ok)
	}
	for _, s := range []string{"", "04/03/2021", "yesterday", "2021-13-01", "0001-01-01", "0001-01-01T00:00:00Z"} {
		if _, ok := ParseTimestamp(s); ok {
			t.Fatalf("ParseTimestamp(%q) should fail", s)
		}
	}
}

func TestParseCount(t *testing.T) {
	cases := []struct {
		in   string
		want int64
		ok   bool
	}{
		{"12", 12, true},
		{" 7 ", 7, true},
		{"12.0", 12, true},
		{"0", 0, true},
		{"12.5", 0, false},
		{"-3", 0, false},
		{"NaN", 0, false},
		{"", 0, false},
		{"abc", 0, false},
	}
	for _, c := range cases {
		got, ok := ParseCount(c.in)
		if ok != c.ok || (ok && got != c.want) {
			t.Fatalf("ParseCount(%q) = %d, %v", c.in, got, ok)
		}
	}
}

func TestFromRecords(t *testing.T) {
	got, err := FromRecords(
		[]string{"datetime", "Article Count", "All Articles"},
		[][]string{{"2021-01-01", "1", "2"}, {"2021-01-02", "3"}},
	)
	if err != nil {
		t.Fatalf("FromRecords: %v", err)
	}
	// short record is missing All Articles and is dropped
	if len(got.Dataset) != 1 || got.Dropped != 1 {
		t.Fatalf("got %+v", got)
	}
}

func TestBuilderSelected(t *testing.T) {
	header := []string{"id", "Keyword", "ALL ARTICLES", "DateTime", "article count"}
	b, err := NewBuilder(header)
	if err != nil {
		t.Fatalf("NewBuilder: %v", err)
	}
	got := b.Selected(header)
	want := []string{"DateTime", "article count", "ALL ARTICLES", "Keyword"}
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Fatalf("Selected = %v", got)
	}
}
