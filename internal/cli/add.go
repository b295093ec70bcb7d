package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/todo/pkg/types"
)

func newAddCmd(a *app) *cobra.Command {
	var in types.TaskInput

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a task",
		Long:  "Add a task. Words after the command form the title; remaining fields come from flags.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in.Title = strings.Join(args, " ")
			s, err := a.openStore()
			if err != nil {
				return err
			}
			task, err := s.AddTask(in)
			if errors.Is(err, types.ErrInvalidTitle) {
				return userError("%w", err)
			}
			if err != nil {
				return err
			}
			if a.jsonMode {
				return writeJSON(cmd, task)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Task added successfully with ID: %d\n", task.ID)
			return nil
		},
	}

	cmd.Flags().StringVarP(&in.Description, "description", "d", "", "task description")
	cmd.Flags().StringVarP(&in.Category, "category", "c", "", "task category (default: General)")
	cmd.Flags().StringVarP(&in.Priority, "priority", "p", "", "priority: High, Medium or Low (default: Medium)")
	cmd.Flags().StringVar(&in.DueDate, "due", "", "due date, e.g. 2026-12-31")
	return cmd
}
