package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"datax/internal/adapters/render"
	perr "datax/internal/platform/errors"
	"datax/internal/services/coverage/domain"

	"github.com/spf13/cobra"
)

func newChartCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chart",
		Short: "Render the coverage chart to png, svg or json",
		Long: `Render the coverage chart. The format follows the --out extension:
.png and .svg are images, .json (or "-" for stdout) is the chart spec with its rows.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runChart(cmd)
		},
	}
	addChartFlags(cmd.Flags())
	cmd.Flags().StringP("out", "o", "-", "output file (.png, .svg, .json) or - for json on stdout")
	cmd.Flags().Int("width", render.DefaultWidth, "image width in pixels")
	cmd.Flags().Int("height", render.DefaultHeight, "image height in pixels")
	return cmd
}

func (a *app) runChart(cmd *cobra.Command) error {
	in, err := a.chartInput()
	if err != nil {
		return err
	}
	svc, err := a.service()
	if err != nil {
		return err
	}
	out := a.v.GetString("out")

	if f, ok := render.FormatFromPath(out); ok {
		file, err := svc.Render(cmd.Context(), domain.RenderInput{
			ChartInput: in,
			Format:     string(f),
			Width:      a.v.GetInt("width"),
			Height:     a.v.GetInt("height"),
		})
		if err != nil {
			return err
		}
		if err := writeFile(cmd.OutOrStdout(), out, file.Bytes); err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "%s %s\n", dimColor.Sprint("wrote"), out)
		return nil
	}
	if out != "-" && !strings.HasSuffix(strings.ToLower(out), ".json") {
		return perr.WithField(perr.InvalidArgf("cannot infer format from %q; use .png, .svg or .json", out), "out")
	}

	res, err := svc.Chart(cmd.Context(), in)
	if err != nil {
		return err
	}
	warnDropped(cmd.ErrOrStderr(), res.Dropped, res.Total)
	b, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return err
	}
	return writeFile(cmd.OutOrStdout(), out, append(b, '\n'))
}
