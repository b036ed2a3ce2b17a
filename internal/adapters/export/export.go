// Package export writes aggregated rows as delimited text or an XLSX workbook.
package export

import (
	"encoding/csv"
	"io"
	"strconv"
	"time"

	"datax/internal/core/aggregate"
	"datax/internal/core/events"
	perr "datax/internal/platform/errors"

	"github.com/xuri/excelize/v2"
)

// Header is the column order of every export
var Header = []string{"bucket_start", "article_count_sum", "all_articles_sum", "ratio"}

// Sheet names
const (
	SheetRows   = "Coverage"
	SheetEvents = "Events"
)

// DateLayout renders bucket starts
const DateLayout = time.DateOnly

func num(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }

// Record renders one row in Header order; an undefined ratio is an empty cell
func Record(r aggregate.Row) []string {
	return []string{
		r.BucketStart.UTC().Format(DateLayout),
		num(r.ArticleCountSum),
		num(r.AllArticlesSum),
		r.Ratio.String(),
	}
}

// WriteCSV writes Header then one record per row. A zero delim means comma.
func WriteCSV(w io.Writer, rows []aggregate.Row, delim rune) error {
	cw := csv.NewWriter(w)
	if delim != 0 {
		cw.Comma = delim
	}
	if err := cw.Write(Header); err != nil {
		return perr.Wrap(err, perr.ErrorCodeUnknown, "write csv header")
	}
	for _, r := range rows {
		if err := cw.Write(Record(r)); err != nil {
			return perr.Wrap(err, perr.ErrorCodeUnknown, "write csv row")
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return perr.Wrap(err, perr.ErrorCodeUnknown, "flush csv")
	}
	return nil
}

// XLSXOption tunes WriteXLSX
type XLSXOption func(*xlsxConfig)

type xlsxConfig struct {
	events []events.AnnotatedEvent
}

// WithEvents adds a sheet listing the annotated events
func WithEvents(evs []events.AnnotatedEvent) XLSXOption {
	return func(c *xlsxConfig) { c.events = evs }
}

// WriteXLSX writes the rows to a single-sheet workbook with a frozen header row.
// Counts and ratios are numeric cells; an undefined ratio is left blank.
func WriteXLSX(w io.Writer, rows []aggregate.Row, opts ...XLSXOption) error {
	cfg := xlsxConfig{}
	for _, o := range opts {
		o(&cfg)
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", SheetRows); err != nil {
		return xlsxErr(err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return xlsxErr(err)
	}
	if err := header(f, SheetRows, Header, bold); err != nil {
		return err
	}
	for i, r := range rows {
		at := i + 2
		cell, _ := excelize.CoordinatesToCellName(1, at)
		vals := []any{r.BucketStart.UTC().Format(DateLayout), r.ArticleCountSum, r.AllArticlesSum}
		if err := f.SetSheetRow(SheetRows, cell, &vals); err != nil {
			return xlsxErr(err)
		}
		if r.Ratio.Valid {
			cell, _ = excelize.CoordinatesToCellName(4, at)
			if err := f.SetCellFloat(SheetRows, cell, r.Ratio.Value, -1, 64); err != nil {
				return xlsxErr(err)
			}
		}
	}
	if err := f.SetColWidth(SheetRows, "A", "D", 18); err != nil {
		return xlsxErr(err)
	}

	if len(cfg.events) > 0 {
		if _, err := f.NewSheet(SheetEvents); err != nil {
			return xlsxErr(err)
		}
		if err := header(f, SheetEvents, []string{"index", "date", "label"}, bold); err != nil {
			return err
		}
		for i, e := range cfg.events {
			cell, _ := excelize.CoordinatesToCellName(1, i+2)
			vals := []any{e.Index, e.Date.UTC().Format(DateLayout), e.Label}
			if err := f.SetSheetRow(SheetEvents, cell, &vals); err != nil {
				return xlsxErr(err)
			}
		}
		if err := f.SetColWidth(SheetEvents, "C", "C", 60); err != nil {
			return xlsxErr(err)
		}
	}

	if err := f.Write(w); err != nil {
		return perr.Wrap(err, perr.ErrorCodeUnknown, "write xlsx")
	}
	return nil
}

func header(f *excelize.File, sheet string, cols []string, style int) error {
	if err := f.SetSheetRow(sheet, "A1", &cols); err != nil {
		return xlsxErr(err)
	}
	if err := f.SetRowStyle(sheet, 1, 1, style); err != nil {
		return xlsxErr(err)
	}
	if err := f.SetPanes(sheet, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"}); err != nil {
		return xlsxErr(err)
	}
	return nil
}

func xlsxErr(err error) error { return perr.Wrap(err, perr.ErrorCodeUnknown, "build xlsx") }
