package pg

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"datax/internal/platform/testkit"

	"github.com/rs/zerolog"
)

func TestOneLine(t *testing.T) {
	t.Parallel()
	cases := map[string]string{
		"select 1":     "select 1",
		"  select   1": "select 1",
		"SELECT\t\"datetime\"::text\nFROM\r\n\"coverage\"": `SELECT "datetime"::text FROM "coverage"`,
		"": "",
	}
	for in, want := range cases {
		if got := oneLine(in); got != want {
			t.Fatalf("oneLine(%q) = %q, want %q", in, got, want)
		}
	}
}

type logLine struct {
	Level     string  `json:"level"`
	ElapsedMS float64 `json:"elapsed_ms"`
	Slow      bool    `json:"slow"`
	SQL       string  `json:"sql"`
	Args      []any   `json:"args"`
	Error     string  `json:"error"`
	Message   string  `json:"message"`
	Component string  `json:"component"`
}

func TestTracer_LevelsFollowSlowFlag(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	// the tracer must log even when the caller's logger is quieter
	tr := Tracer(zerolog.New(&buf).Level(zerolog.ErrorLevel))
	ev := QueryEvent{
		SQL:       "SELECT COALESCE(\"Article Count\"::text, '')\n  FROM \"coverage\"",
		Args:      []any{7, "green deal"},
		ElapsedUS: 12345,
		Err:       errors.New("boom"),
	}

	for _, slow := range []bool{false, true} {
		buf.Reset()
		ev.Slow = slow
		tr.OnQuery(context.Background(), ev)

		var line logLine
		if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &line); err != nil {
			t.Fatalf("unmarshal: %v\nraw=%s", err, buf.String())
		}
		want := "info"
		if slow {
			want = "warn"
		}
		if line.Level != want || line.Slow != slow {
			t.Fatalf("level=%q slow=%v for slow=%v", line.Level, line.Slow, slow)
		}
		testkit.Approx(t, line.ElapsedMS, 12.345, 1e-6)
		if line.SQL != `SELECT COALESCE("Article Count"::text, '') FROM "coverage"` {
			t.Fatalf("sql = %q", line.SQL)
		}
		if len(line.Args) != 2 || line.Args[1] != "green deal" {
			t.Fatalf("args = %#v", line.Args)
		}
		if line.Error != "boom" || line.Message != "pg query" || line.Component != "pg" {
			t.Fatalf("line = %+v", line)
		}
	}
}
