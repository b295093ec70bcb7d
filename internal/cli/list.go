package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/todo/internal/store"
)

func newListCmd(a *app) *cobra.Command {
	var opts store.ListOptions

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List tasks in priority order",
		Long:    "List tasks. Pending tasks come first, then by priority and creation time.",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.openStore()
			if err != nil {
				return err
			}
			tasks := s.ListTasks(opts)
			if a.jsonMode {
				return writeJSON(cmd, tasks)
			}

			out := cmd.OutOrStdout()
			if len(tasks) == 0 {
				fmt.Fprintln(out, "No tasks found.")
				return nil
			}
			fmt.Fprintf(out, "Found %d task(s):\n", len(tasks))
			for _, t := range tasks {
				fmt.Fprintln(out, formatTask(t))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&opts.HideCompleted, "pending", false, "hide completed tasks")
	cmd.Flags().StringVarP(&opts.Category, "category", "c", "", "only tasks in this category (case-insensitive)")
	return cmd
}
