package main

import (
	"fmt"

	"github.com/aretw0/kefschema/internal/presentation/tui"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the available actions",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := setup(cmd, nil)
		if err != nil {
			return err
		}

		long, _ := cmd.Flags().GetBool("long")
		if !long {
			for _, name := range a.registry.Names() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		}
		return render(cmd, tui.ListMarkdown(a.registry.Actions()))
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().BoolP("long", "l", false, "Include descriptions")
}
