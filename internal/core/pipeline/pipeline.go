// Package pipeline runs filter, aggregate, ratio, trend, events and compose in one call.
// Every surface (API, CLI) goes through Run with a Params value; nothing is cached here.
package pipeline

import (
	"context"
	"errors"
	"time"

	"datax/internal/core/aggregate"
	"datax/internal/core/chart"
	"datax/internal/core/dataset"
	"datax/internal/core/events"
	"datax/internal/core/trend"
	"datax/internal/platform/logger"
	tim "datax/internal/platform/time"
)

// Params is the full set of caller choices
type Params struct {
	Range      dataset.DateRange
	BucketDays int
	ShowTrend  bool
	ShowEvents bool
	ShowRatio  bool

	// Keyword narrows rows before aggregation; empty keeps all
	Keyword string
	// Epoch anchors bucket boundaries; zero means 1970-01-01
	Epoch time.Time
	// Events is the reference table consulted when ShowEvents is set
	Events events.Table
	// Title overrides the chart title
	Title string
}

// Result is the chart plus the rows it was drawn from
type Result struct {
	Chart chart.Spec
	Rows  []aggregate.Row
	// InRange counts dataset rows that survived the range and keyword filters
	InRange int
	// TrendOmitted is set when a trend was asked for but the series was too short
	TrendOmitted bool
}

// Run executes the pipeline over an immutable Dataset.
// Only an invalid bucket width is an error; empty ranges and short series degrade.
func Run(ctx context.Context, ds dataset.Dataset, p Params) (Result, error) {
	log := logger.C(ctx)
	log.Debug().
		Str("start", tim.FormatDay(p.Range.Start)).
		Str("end", tim.FormatDay(p.Range.End)).
		Int("bucket_days", p.BucketDays).
		Bool("trend", p.ShowTrend).
		Bool("events", p.ShowEvents).
		Bool("ratio", p.ShowRatio).
		Str("keyword", p.Keyword).
		Msg("pipeline run")

	filtered := dataset.Filter(dataset.ByKeyword(ds, p.Keyword), p.Range)

	rows, err := aggregate.Buckets(filtered, p.BucketDays, aggregate.WithEpoch(p.Epoch))
	if err != nil {
		return Result{}, err
	}
	rows = aggregate.WithRatio(rows)

	res := Result{Rows: rows, InRange: len(filtered)}

	var line *trend.Line
	if p.ShowTrend {
		l, err := trend.Fit(rows)
		switch {
		case err == nil:
			line = &l
		case errors.Is(err, trend.ErrInsufficientData):
			res.TrendOmitted = true
			log.Debug().Int("points", len(rows)).Msg("trend omitted")
		default:
			return Result{}, err
		}
	}

	var evs []events.AnnotatedEvent
	if p.ShowEvents {
		evs = events.Annotate(p.Events, p.Range)
	}

	res.Chart = chart.Compose(rows, line, evs, p.ShowRatio, chart.WithTitle(p.Title))
	return res, nil
}
