package main

import (
	"fmt"

	"github.com/aretw0/kefschema/pkg/registry"
	"github.com/aretw0/kefschema/pkg/schema"
	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check [file]",
	Short: "Check the descriptor for consistency",
	Long: `Loads the descriptor and reports duplicate names, blank descriptions and
examples that are not primitive. With --strict, every example must also fall
within the domain its description documents.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 1 {
			if err := cmd.Flags().Set("schema", args[0]); err != nil {
				return err
			}
		}
		a, err := setup(cmd, nil)
		if err != nil {
			return fmt.Errorf("descriptor is invalid: %w", err)
		}

		strict, _ := cmd.Flags().GetBool("strict")
		if problems := checkExamples(a.registry, strict); len(problems) > 0 {
			for _, p := range problems {
				fmt.Fprintln(cmd.ErrOrStderr(), "  -", p)
			}
			return fmt.Errorf("%d example(s) inconsistent with their description", len(problems))
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Descriptor is valid: %d actions ✅\n", a.registry.Len())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().Bool("strict", false, "Also validate examples against their documented domain")
}

func checkExamples(reg *registry.Registry, strict bool) []string {
	var problems []string
	for _, def := range reg.Actions() {
		for _, f := range def.Fields {
			if !registry.ValidateExample(f) {
				problems = append(problems, fmt.Sprintf("%s.%s: example is not a primitive", def.Name, f.Name))
				continue
			}
			if !strict || !f.Example.IsSet() {
				continue
			}
			if err := schema.FieldType(f).Validate(f.Example.Interface()); err != nil {
				problems = append(problems, fmt.Sprintf("%s.%s: %v", def.Name, f.Name, err))
			}
		}
	}
	return problems
}
