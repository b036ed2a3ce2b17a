package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"datax/internal/adapters/export"
	"datax/internal/core/aggregate"
	perr "datax/internal/platform/errors"
	tim "datax/internal/platform/time"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

var (
	warnColor = color.New(color.FgYellow, color.Bold)
	errColor  = color.New(color.FgRed, color.Bold)
	dimColor  = color.New(color.Faint)
)

// Exit codes
const (
	exitFailure = 1
	exitUsage   = 2
)

func errorLine(err error) string {
	msg := err.Error()
	if e, ok := perr.As(err); ok && e.Field() != "" {
		msg += " (" + e.Field() + ")"
	}
	return errColor.Sprint("error: ") + msg
}

func exitCode(err error) int {
	switch perr.CodeOf(err) {
	case perr.ErrorCodeInvalidArgument, perr.ErrorCodeValidation:
		return exitUsage
	}
	return exitFailure
}

func newTable(w io.Writer) *tablewriter.Table {
	return tablewriter.NewTable(w,
		tablewriter.WithConfig(tablewriter.Config{
			Row: tw.CellConfig{
				Formatting: tw.CellFormatting{AutoWrap: tw.WrapNone},
				Alignment:  tw.CellAlignment{Global: tw.AlignRight},
			},
			Header: tw.CellConfig{
				Formatting: tw.CellFormatting{AutoFormat: tw.On},
				Alignment:  tw.CellAlignment{Global: tw.AlignLeft},
			},
		}),
		tablewriter.WithRendition(tw.Rendition{Borders: tw.BorderNone}),
	)
}

// printRows writes aggregated rows as an aligned table; undefined ratios print as "-"
func printRows(w io.Writer, rows []aggregate.Row) error {
	t := newTable(w)
	t.Header(export.Header)
	data := make([][]string, 0, len(rows))
	for _, r := range rows {
		ratio := "-"
		if r.Ratio.Valid {
			ratio = strconv.FormatFloat(r.Ratio.Value*100, 'f', 2, 64) + "%"
		}
		data = append(data, []string{
			tim.FormatDay(r.BucketStart),
			strconv.FormatFloat(r.ArticleCountSum, 'f', -1, 64),
			strconv.FormatFloat(r.AllArticlesSum, 'f', -1, 64),
			ratio,
		})
	}
	if err := t.Bulk(data); err != nil {
		return err
	}
	return t.Render()
}

// warnDropped reports coerced-away rows on stderr
func warnDropped(w io.Writer, dropped, total int) {
	if dropped == 0 {
		return
	}
	warnColor.Fprintf(w, "warning: ")
	fmt.Fprintf(w, "%d of %d rows dropped (unparseable date or count)\n", dropped, total)
}

// writeFile writes b to path; "-" means w
func writeFile(w io.Writer, path string, b []byte) error {
	if path == "-" {
		_, err := w.Write(b)
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return errors.Join(fmt.Errorf("write %s", path), err)
	}
	return nil
}
