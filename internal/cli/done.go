package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/todo/internal/store"
)

func newDoneCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "done <id>",
		Short: "Mark a task complete",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return setCompletion(cmd, a, args[0], "complete", (*store.Store).MarkComplete)
		},
	}
}

func newUndoCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "undo <id>",
		Short: "Mark a task incomplete",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return setCompletion(cmd, a, args[0], "incomplete", (*store.Store).MarkIncomplete)
		},
	}
}

// setCompletion applies mark to the task named by arg and reports the result.
func setCompletion(cmd *cobra.Command, a *app, arg, state string, mark func(*store.Store, int) (bool, error)) error {
	id, err := parseID(arg)
	if err != nil {
		return err
	}
	s, err := a.openStore()
	if err != nil {
		return err
	}
	ok, err := mark(s, id)
	if err != nil {
		return err
	}
	if !ok {
		return notFound(id)
	}
	if a.jsonMode {
		task, _ := s.GetTask(id)
		return writeJSON(cmd, task)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Task %d marked as %s!\n", id, state)
	return nil
}
