package cli

import (
	"strconv"

	"github.com/spf13/cobra"
)

func newEventsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "events",
		Short: "List the reference events with their marker tokens",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := a.service()
			if err != nil {
				return err
			}
			evs, err := svc.Events(cmd.Context())
			if err != nil {
				return err
			}
			t := newTable(cmd.OutOrStdout())
			t.Header([]string{"index", "token", "date", "label"})
			rows := make([][]string, 0, len(evs.Events))
			for _, e := range evs.Events {
				rows = append(rows, []string{strconv.Itoa(e.Index), e.Token, e.Date, e.Label})
			}
			if err := t.Bulk(rows); err != nil {
				return err
			}
			if err := t.Render(); err != nil {
				return err
			}
			dimColor.Fprintf(cmd.OutOrStdout(), "table version %d\n", evs.Version)
			return nil
		},
	}
}
