package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/kefschema"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of kefschema",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "kefschema version %s\n", strings.TrimSpace(kefschema.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
