package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/atomicstack/eventdesk/internal/format/table"
)

func newEventsCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "events",
		Short: "Print the event table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rows, err := s.client.ListEvents(cmd.Context())
			if err != nil {
				return fmt.Errorf("list events: %w", err)
			}
			out := cmd.OutOrStdout()
			if len(rows) == 0 {
				fmt.Fprintln(out, "No events.")
				return nil
			}
			cells := make([][]string, 0, len(rows)+1)
			cells = append(cells, []string{"ID", "NAME", "DATE", "TIME", "LOCATION", "REGISTRATIONS", "STATUS"})
			for _, e := range rows {
				cells = append(cells, []string{e.ID, e.Name, e.Date, e.Time, e.Location, e.Registrations, e.Status})
			}
			aligns := []table.Alignment{
				table.AlignRight, table.AlignLeft, table.AlignLeft, table.AlignLeft,
				table.AlignLeft, table.AlignRight, table.AlignLeft,
			}
			for _, line := range table.Format(cells, aligns) {
				fmt.Fprintln(out, strings.TrimRight(line, " "))
			}
			return nil
		},
	}
}
