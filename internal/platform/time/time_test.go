package time

import (
	"testing"
	"time"
)

func TestStartOfDayUsesUTC(t *testing.T) {
	t.Parallel()

	berlin := time.FixedZone("CET", 3600)
	in := time.Date(2021, 1, 2, 0, 30, 0, 0, berlin) // 2021-01-01 23:30 UTC
	got := StartOfDay(in)
	if FormatDay(got) != "2021-01-01" || got.Location() != time.UTC {
		t.Fatalf("StartOfDay = %v", got)
	}
}

func TestDaysSinceFloors(t *testing.T) {
	t.Parallel()

	cases := []struct {
		day  string
		want int64
	}{
		{"1970-01-01", 0},
		{"1970-01-08", 7},
		{"2021-01-01", 18628},
		{"1969-12-31", -1},
		{"1969-12-25", -7},
		{"2300-01-01", 120530},
		{"1600-03-01", -135080},
	}
	for _, c := range cases {
		d, err := ParseDay(c.day)
		if err != nil {
			t.Fatal(err)
		}
		if got := DaysSince(Epoch, d.Add(13*time.Hour)); got != c.want {
			t.Fatalf("DaysSince(%s) = %d, want %d", c.day, got, c.want)
		}
	}
}

func TestFloorDiv(t *testing.T) {
	t.Parallel()

	cases := [][3]int64{{7, 7, 1}, {6, 7, 0}, {-1, 7, -1}, {-7, 7, -1}, {-8, 7, -2}, {18628, 7, 2661}}
	for _, c := range cases {
		if got := FloorDiv(c[0], c[1]); got != c[2] {
			t.Fatalf("FloorDiv(%d,%d) = %d, want %d", c[0], c[1], got, c[2])
		}
	}
}

func TestPtr(t *testing.T) {
	t.Parallel()

	if Ptr(time.Time{}) != nil {
		t.Fatalf("zero time should map to nil")
	}
	if p := Ptr(Epoch); p == nil || !p.Equal(Epoch) {
		t.Fatalf("Ptr(Epoch) = %v", p)
	}
}
