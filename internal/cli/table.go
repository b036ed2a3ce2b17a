package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newTableCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "table",
		Short: "Print the aggregated rows as a terminal table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			in, err := a.chartInput()
			if err != nil {
				return err
			}
			svc, err := a.service()
			if err != nil {
				return err
			}
			res, err := svc.Chart(cmd.Context(), in)
			if err != nil {
				return err
			}
			warnDropped(cmd.ErrOrStderr(), res.Dropped, res.Total)
			if len(res.Rows) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "no data between %s and %s\n", res.Range.Start, res.Range.End)
				return nil
			}
			if err := printRows(cmd.OutOrStdout(), res.Rows); err != nil {
				return err
			}
			if res.TrendOmitted {
				warnColor.Fprint(cmd.ErrOrStderr(), "note: ")
				fmt.Fprintln(cmd.ErrOrStderr(), "trend omitted, fewer than two buckets")
			} else if t := res.Chart.Trend; t != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "\ntrend: slope %.4f per bucket, intercept %.4f\n", t.Slope, t.Intercept)
			}
			for _, m := range res.Chart.Markers {
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n", m.Token, m.Date.Format("2006-01-02"), m.Label)
			}
			return nil
		},
	}
	addChartFlags(cmd.Flags())
	return cmd
}
