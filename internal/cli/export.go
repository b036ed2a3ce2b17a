package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	perr "datax/internal/platform/errors"
	"datax/internal/services/coverage/domain"

	"github.com/spf13/cobra"
)

func newExportCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the aggregated rows as csv, tsv or xlsx",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runExport(cmd)
		},
	}
	addChartFlags(cmd.Flags())
	cmd.Flags().StringP("out", "o", "", "output file, - for stdout (required)")
	cmd.Flags().String("format", "", "csv, tsv or xlsx (default: from --out extension)")
	_ = cmd.MarkFlagRequired("out")
	return cmd
}

// exportFormat picks the format from the flag or the output extension
func exportFormat(flag, out string) (string, error) {
	f := strings.ToLower(strings.TrimSpace(flag))
	if f == "" {
		f = strings.TrimPrefix(strings.ToLower(filepath.Ext(out)), ".")
	}
	switch f {
	case "csv", "tsv", "xlsx":
		return f, nil
	case "":
		return "csv", nil
	}
	return "", perr.WithField(perr.InvalidArgf("unsupported export format %q", f), "format")
}

func (a *app) runExport(cmd *cobra.Command) error {
	out := a.v.GetString("out")
	format, err := exportFormat(a.v.GetString("format"), out)
	if err != nil {
		return err
	}
	svc, err := a.service()
	if err != nil {
		return err
	}

	ci, err := a.chartInput()
	if err != nil {
		return err
	}
	in := domain.ExportInput{ChartInput: ci}
	var file domain.File
	switch format {
	case "xlsx":
		file, err = svc.ExportXLSX(cmd.Context(), in)
	case "tsv":
		in.Delimiter = "tab"
		file, err = svc.ExportCSV(cmd.Context(), in)
	default:
		file, err = svc.ExportCSV(cmd.Context(), in)
	}
	if err != nil {
		return err
	}
	if err := writeFile(cmd.OutOrStdout(), out, file.Bytes); err != nil {
		return err
	}
	if out != "-" {
		fmt.Fprintf(cmd.ErrOrStderr(), "%s %s\n", dimColor.Sprint("wrote"), out)
	}
	return nil
}
