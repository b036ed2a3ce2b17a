// Package events loads the versioned reference table of calendar events and selects
// the ones visible in a date range. Display indexes come from the full table order.
package events

import (
	_ "embed"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"datax/internal/core/dataset"
	perr "datax/internal/platform/errors"
	tim "datax/internal/platform/time"

	"gopkg.in/yaml.v3"
)

//go:embed events.yaml
var embedded []byte

// Event is a dated label
type Event struct {
	Date  time.Time `json:"date"`
	Label string    `json:"label"`
}

// AnnotatedEvent is an Event with its 1-based position in the full table
type AnnotatedEvent struct {
	Event
	Index int `json:"index"`
}

// Token is the short on-chart marker, e.g. "[3]"
func (a AnnotatedEvent) Token() string { return fmt.Sprintf("[%d]", a.Index) }

// Table is the reference list in display order
type Table struct {
	Version int     `json:"version"`
	Events  []Event `json:"events"`
}

type rawTable struct {
	Version int `yaml:"version"`
	Events  []struct {
		Date  string `yaml:"date"`
		Label string `yaml:"label"`
	} `yaml:"events"`
}

// Parse decodes and validates a YAML table.
// Every event needs a YYYY-MM-DD date and a non-empty label.
func Parse(b []byte) (Table, error) {
	var raw rawTable
	if err := yaml.Unmarshal(b, &raw); err != nil {
		return Table{}, perr.Wrap(err, perr.ErrorCodeSchema, "decode events table")
	}
	if raw.Version < 1 {
		return Table{}, perr.Schemaf("version", "events table needs version >= 1")
	}
	t := Table{Version: raw.Version, Events: make([]Event, 0, len(raw.Events))}
	for i, e := range raw.Events {
		d, err := tim.ParseDay(strings.TrimSpace(e.Date))
		if err != nil {
			return Table{}, perr.Schemaf(fmt.Sprintf("events[%d].date", i), "bad event date %q", e.Date)
		}
		label := strings.TrimSpace(e.Label)
		if label == "" {
			return Table{}, perr.Schemaf(fmt.Sprintf("events[%d].label", i), "event on %s has no label", e.Date)
		}
		t.Events = append(t.Events, Event{Date: d, Label: label})
	}
	return t, nil
}

var defaultTable = sync.OnceValue(func() Table {
	t, err := Parse(embedded)
	if err != nil {
		panic(fmt.Sprintf("events: embedded table: %v", err))
	}
	return t
})

// Default returns the embedded reference table, parsed once per process
func Default() Table { return defaultTable() }

// LoadFile reads an override table from disk
func LoadFile(path string) (Table, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Table{}, perr.Sourcef(err, "read events file %s", path)
	}
	return Parse(b)
}

// All numbers every event in the table
func All(list Table) []AnnotatedEvent {
	out := make([]AnnotatedEvent, len(list.Events))
	for i, e := range list.Events {
		out[i] = AnnotatedEvent{Event: e, Index: i + 1}
	}
	return out
}

// Annotate keeps events whose day falls in rng, inclusive.
// Indexes are positions in the unfiltered table and are never renumbered.
func Annotate(list Table, rng dataset.DateRange) []AnnotatedEvent {
	out := []AnnotatedEvent{}
	for i, e := range list.Events {
		if rng.Contains(e.Date) {
			out = append(out, AnnotatedEvent{Event: e, Index: i + 1})
		}
	}
	return out
}
