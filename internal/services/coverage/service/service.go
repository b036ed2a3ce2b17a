// Package service contains coverage workflows shared by the API and the cli
package service

import (
	"bytes"
	"context"
	"strings"
	"time"

	"datax/internal/adapters/export"
	"datax/internal/adapters/render"
	"datax/internal/adapters/source"
	"datax/internal/core/dataset"
	"datax/internal/core/events"
	"datax/internal/core/pipeline"
	perr "datax/internal/platform/errors"
	"datax/internal/platform/logger"
	"datax/internal/platform/metrics"
	tim "datax/internal/platform/time"
	"datax/internal/services/coverage/domain"
)

// Service defines the coverage service contract
type Service interface {
	domain.ServicePort
}

// Options configures New
type Options struct {
	// DefaultSource is used when a request names none
	DefaultSource string
	// Events is the reference table; zero uses events.Default()
	Events events.Table
	// CacheEntries bounds the dataset cache
	CacheEntries int
	// SourceOptions are passed to every source.Open
	SourceOptions []source.Option
	// Loader replaces source.Open
	Loader Loader
	// Restrict limits requests to DefaultSource and AllowedSources
	Restrict bool
	// AllowedSources are extra paths, URL prefixes or DSNs a restricted service accepts
	AllowedSources []string
}

// Svc implements the coverage service
type Svc struct {
	defaultSource string
	events        events.Table
	cache         *Cache
	allow         *source.Allowlist // nil when unrestricted
}

var _ Service = (*Svc)(nil)

// New constructs a coverage service
func New(opt Options) *Svc {
	load := opt.Loader
	if load == nil {
		srcOpts := opt.SourceOptions
		load = func(ctx context.Context, src string) (dataset.Loaded, error) {
			kind, _ := source.KindOf(src)
			start := time.Now()
			l, err := source.Open(ctx, src, srcOpts...)
			metrics.RecordLoad(string(kind), err, l.Dropped)
			ev := logger.C(ctx).Info()
			if err != nil {
				ev = logger.C(ctx).Warn().Err(err)
			}
			ev.Str("source", source.Redacted(src)).
				Int("rows", len(l.Dataset)).
				Int("dropped", l.Dropped).
				Dur("elapsed", time.Since(start)).
				Msg("dataset loaded")
			return l, err
		}
	}
	tbl := opt.Events
	if tbl.Version == 0 {
		tbl = events.Default()
	}
	svc := &Svc{
		defaultSource: strings.TrimSpace(opt.DefaultSource),
		events:        tbl,
		cache:         NewCache(load, opt.CacheEntries),
	}
	if opt.Restrict {
		svc.allow = source.NewAllowlist(append([]string{svc.defaultSource}, opt.AllowedSources...)...)
	}
	return svc
}

// Cache exposes the dataset cache
func (s *Svc) Cache() *Cache { return s.cache }

// resolve applies the default source and, when restricted, the allowlist
func (s *Svc) resolve(src string) (string, error) {
	src = strings.TrimSpace(src)
	if src == "" {
		src = s.defaultSource
	}
	if src == "" {
		return "", perr.WithField(perr.InvalidArgf("no source given and no default configured"), "source")
	}
	if s.allow != nil {
		if err := s.allow.Check(src); err != nil {
			return "", err
		}
	}
	return src, nil
}

func (s *Svc) load(ctx context.Context, src string) (dataset.Loaded, error) {
	src, err := s.resolve(src)
	if err != nil {
		return dataset.Loaded{}, err
	}
	return s.cache.Get(ctx, src)
}

func day(s, field string) (time.Time, error) {
	t, err := tim.ParseDay(strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, perr.WithField(perr.InvalidArgf("%s must be YYYY-MM-DD", field), field)
	}
	return t, nil
}

// params resolves request defaults against the loaded dataset:
// empty bounds take the dataset span and a zero bucket width means daily
func (s *Svc) params(ds dataset.Dataset, in domain.ChartInput) (pipeline.Params, error) {
	span, _ := dataset.Span(ds)
	rng := span
	if in.Range.Start != "" {
		t, err := day(in.Range.Start, "start")
		if err != nil {
			return pipeline.Params{}, err
		}
		rng.Start = t
	}
	if in.Range.End != "" {
		t, err := day(in.Range.End, "end")
		if err != nil {
			return pipeline.Params{}, err
		}
		rng.End = t
	}

	p := pipeline.Params{
		Range:      dataset.NewRange(rng.Start, rng.End),
		BucketDays: in.BucketDays,
		ShowTrend:  in.ShowTrend,
		ShowEvents: in.ShowEvents,
		ShowRatio:  in.ShowRatio,
		Keyword:    strings.TrimSpace(in.Keyword),
		Events:     s.events,
		Title:      in.Title,
	}
	if p.BucketDays == 0 {
		p.BucketDays = 1
	}
	if in.Epoch != "" {
		t, err := day(in.Epoch, "epoch")
		if err != nil {
			return pipeline.Params{}, err
		}
		p.Epoch = t
	}
	return p, nil
}

// Chart runs the pipeline for one request
func (s *Svc) Chart(ctx context.Context, in domain.ChartInput) (domain.ChartOutput, error) {
	l, err := s.load(ctx, in.Source)
	if err != nil {
		return domain.ChartOutput{}, err
	}
	p, err := s.params(l.Dataset, in)
	if err != nil {
		return domain.ChartOutput{}, err
	}

	start := time.Now()
	res, err := pipeline.Run(ctx, l.Dataset, p)
	outcome := metrics.OutcomeOK
	switch {
	case err != nil:
		outcome = metrics.OutcomeError
	case res.Chart.Empty:
		outcome = metrics.OutcomeEmpty
	}
	metrics.RecordRun(outcome, time.Since(start))
	if err != nil {
		return domain.ChartOutput{}, err
	}

	return domain.ChartOutput{
		Chart: res.Chart,
		Rows:  res.Rows,
		Range: domain.DateRange{
			Start: tim.FormatDay(p.Range.Start),
			End:   tim.FormatDay(p.Range.End),
		},
		InRange:      res.InRange,
		Dropped:      l.Dropped,
		Total:        l.Total,
		TrendOmitted: res.TrendOmitted,
	}, nil
}

// Render draws the chart as png or svg
func (s *Svc) Render(ctx context.Context, in domain.RenderInput) (domain.File, error) {
	f, err := render.ParseFormat(in.Format)
	if err != nil {
		return domain.File{}, err
	}
	out, err := s.Chart(ctx, in.ChartInput)
	if err != nil {
		return domain.File{}, err
	}
	var buf bytes.Buffer
	if err := render.Render(&buf, out.Chart, f, render.WithSize(in.Width, in.Height)); err != nil {
		return domain.File{}, err
	}
	return domain.File{ContentType: f.ContentType(), Name: "coverage." + string(f), Bytes: buf.Bytes()}, nil
}

var delimiters = map[string]rune{"": ',', "comma": ',', "tab": '\t', "semicolon": ';'}

// ExportCSV writes the aggregated rows as delimited text
func (s *Svc) ExportCSV(ctx context.Context, in domain.ExportInput) (domain.File, error) {
	delim, ok := delimiters[in.Delimiter]
	if !ok {
		return domain.File{}, perr.WithField(perr.InvalidArgf("unsupported delimiter %q", in.Delimiter), "delimiter")
	}
	out, err := s.Chart(ctx, in.ChartInput)
	if err != nil {
		return domain.File{}, err
	}
	var buf bytes.Buffer
	if err := export.WriteCSV(&buf, out.Rows, delim); err != nil {
		return domain.File{}, err
	}
	ct, name := "text/csv; charset=utf-8", "coverage.csv"
	if delim == '\t' {
		ct, name = "text/tab-separated-values; charset=utf-8", "coverage.tsv"
	}
	return domain.File{ContentType: ct, Name: name, Bytes: buf.Bytes()}, nil
}

// XLSXContentType is the media type of workbooks
const XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportXLSX writes the aggregated rows, plus the in-range events when asked, as a workbook
func (s *Svc) ExportXLSX(ctx context.Context, in domain.ExportInput) (domain.File, error) {
	out, err := s.Chart(ctx, in.ChartInput)
	if err != nil {
		return domain.File{}, err
	}
	var opts []export.XLSXOption
	if in.ShowEvents {
		evs := make([]events.AnnotatedEvent, 0, len(out.Chart.Markers))
		for _, m := range out.Chart.Markers {
			evs = append(evs, events.AnnotatedEvent{Event: events.Event{Date: m.Date, Label: m.Label}, Index: m.Index})
		}
		opts = append(opts, export.WithEvents(evs))
	}
	var buf bytes.Buffer
	if err := export.WriteXLSX(&buf, out.Rows, opts...); err != nil {
		return domain.File{}, err
	}
	return domain.File{ContentType: XLSXContentType, Name: "coverage.xlsx", Bytes: buf.Bytes()}, nil
}

// Summary describes the dataset behind a source
func (s *Svc) Summary(ctx context.Context, in domain.SummaryInput) (domain.SummaryOutput, error) {
	src, err := s.resolve(in.Source)
	if err != nil {
		return domain.SummaryOutput{}, err
	}
	l, err := s.cache.Get(ctx, src)
	if err != nil {
		return domain.SummaryOutput{}, err
	}
	out := domain.SummaryOutput{
		Source:   source.Redacted(source.Identity(src)),
		Rows:     len(l.Dataset),
		Dropped:  l.Dropped,
		Total:    l.Total,
		Keywords: dataset.Keywords(l.Dataset),
	}
	if span, ok := dataset.Span(l.Dataset); ok {
		out.MinDay, out.MaxDay = tim.FormatDay(span.Start), tim.FormatDay(span.End)
	}
	return out, nil
}

// Events lists the active reference table with display indexes
func (s *Svc) Events(_ context.Context) (domain.EventsOutput, error) {
	all := events.All(s.events)
	out := domain.EventsOutput{Version: s.events.Version, Events: make([]domain.EventRow, 0, len(all))}
	for _, e := range all {
		out.Events = append(out.Events, domain.EventRow{
			Index: e.Index,
			Token: e.Token(),
			Date:  tim.FormatDay(e.Date),
			Label: e.Label,
		})
	}
	return out, nil
}
