package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/aretw0/kefschema"
	"github.com/aretw0/kefschema/internal/presentation/graph"
	"github.com/aretw0/kefschema/pkg/openapi"
	"github.com/aretw0/kefschema/pkg/registry"
	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the descriptor",
	Long: `Writes the loaded descriptor to stdout in one of these formats:
- yaml: the persisted descriptor document
- json: the definitions with their derived bounds and options
- openapi: an OpenAPI 3 document with one operation per action
- mermaid: a flowchart of actions and their fields
- jsonschema: the JSON Schema every descriptor document must satisfy`,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")
		if format == "jsonschema" {
			_, err := io.WriteString(cmd.OutOrStdout(), registry.DescriptorSchema())
			return err
		}

		a, err := setup(cmd, nil)
		if err != nil {
			return err
		}
		if format == "mermaid" {
			highlight, _ := cmd.Flags().GetStringSlice("highlight")
			_, err := io.WriteString(cmd.OutOrStdout(), graph.GenerateMermaid(a.registry.Actions(), &graph.Highlight{Actions: highlight}))
			return err
		}
		return export(cmd.OutOrStdout(), a.registry, format)
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringP("format", "f", "yaml", "Output format: yaml, json, openapi, mermaid, jsonschema")
	exportCmd.Flags().StringSlice("highlight", nil, "Actions to highlight in the mermaid diagram")
}

func export(w io.Writer, reg *registry.Registry, format string) error {
	switch format {
	case "yaml":
		doc, err := reg.Document()
		if err != nil {
			return err
		}
		_, err = w.Write(doc)
		return err
	case "json":
		return writeIndented(w, reg.Actions())
	case "openapi":
		return writeIndented(w, openapi.Build(reg, kefschema.Version))
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}

func writeIndented(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
