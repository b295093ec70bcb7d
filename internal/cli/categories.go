package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newCategoriesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List the categories in use",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.openStore()
			if err != nil {
				return err
			}
			cats := s.Categories()
			if a.jsonMode {
				return writeJSON(cmd, cats)
			}
			out := cmd.OutOrStdout()
			if len(cats) == 0 {
				fmt.Fprintln(out, "No categories.")
				return nil
			}
			for _, c := range cats {
				fmt.Fprintln(out, c)
			}
			return nil
		},
	}
}
