package cli

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newRemoveCmd(a *app) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:     "remove <id>",
		Aliases: []string{"rm"},
		Short:   "Remove a task",
		Long:    "Remove a task after confirmation. Its id is never reused.",
		Args:    cobra.ExactArgs(1),
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

			out := cmd.OutOrStdout()
			if !yes {
				// The prompt goes to stderr in JSON mode so stdout stays parseable.
				prompt := out
				if a.jsonMode {
					prompt = cmd.ErrOrStderr()
				}
				fmt.Fprintln(prompt, "Task to remove:")
				fmt.Fprintln(prompt, formatTask(task))
				fmt.Fprint(prompt, "Are you sure you want to remove this task? (y/N): ")
				if !confirmed(cmd) {
					fmt.Fprintln(prompt, "Task removal cancelled.")
					return nil
				}
			}

			if _, err := s.RemoveTask(id); err != nil {
				return err
			}
			if a.jsonMode {
				return writeJSON(cmd, task)
			}
			fmt.Fprintf(out, "Task %d removed successfully!\n", id)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "remove without asking for confirmation")
	return cmd
}

// confirmed reads one line from the command's stdin and reports whether it
// starts with y or Y.
func confirmed(cmd *cobra.Command) bool {
	line, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(line)), "y")
}
