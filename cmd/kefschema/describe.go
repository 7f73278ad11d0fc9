package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/aretw0/kefschema/internal/presentation/tui"
	"github.com/spf13/cobra"
)

var describeCmd = &cobra.Command{
	Use:   "describe <action>",
	Short: "Show the fields of an action",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := setup(cmd, nil)
		if err != nil {
			return err
		}
		def, err := a.registry.Describe(args[0])
		if err != nil {
			return err
		}

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(def)
		}
		return render(cmd, tui.ActionMarkdown(def))
	},
}

func init() {
	rootCmd.AddCommand(describeCmd)
	describeCmd.Flags().Bool("json", false, "Print the definition as JSON")
}

// render prints markdown, styled when stdout is a terminal.
func render(cmd *cobra.Command, markdown string) error {
	out := cmd.OutOrStdout()
	tty := false
	if f, ok := out.(*os.File); ok {
		tty = tui.IsTerminal(f)
	}
	r, err := tui.NewRenderer(tty)
	if err != nil {
		return fmt.Errorf("creating renderer: %w", err)
	}
	s, err := r(markdown)
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(out, s)
	return err
}
