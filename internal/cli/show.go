package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/todo/pkg/types"
)

func newShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			s, err := a.openStore()
			if err != nil {
				return err
			}
			task, ok := s.GetTask(id)
			if !ok {
				return notFound(id)
			}
			if a.jsonMode {
				return writeJSON(cmd, task)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, formatTask(task))
			fmt.Fprintf(out, "    Created:   %s\n", task.CreatedAt.Local().Format(types.TimeLayout))
			if task.CompletedAt != nil {
				fmt.Fprintf(out, "    Completed: %s\n", task.CompletedAt.Local().Format(types.TimeLayout))
			}
			return nil
		},
	}
}
