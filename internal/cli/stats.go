package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

func newStatsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show task statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.openStore()
			if err != nil {
				return err
			}
			st := s.Stats()
			if a.jsonMode {
				return writeJSON(cmd, st)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Total tasks: %d\n", st.Total)
			fmt.Fprintf(out, "Completed:   %d\n", st.Completed)
			fmt.Fprintf(out, "Pending:     %d\n", st.Pending)
			if st.Total == 0 {
				return nil
			}
			fmt.Fprintf(out, "Completion rate: %.1f%%\n", st.CompletionRate())

			names := make([]string, 0, len(st.Categories))
			for name := range st.Categories {
				names = append(names, name)
			}
			sort.Strings(names)
			fmt.Fprintln(out, "By category:")
			for _, name := range names {
				c := st.Categories[name]
				fmt.Fprintf(out, "   %s: %d/%d (%.1f%%)\n", name, c.Completed, c.Total, c.CompletionRate())
			}
			return nil
		},
	}
}
