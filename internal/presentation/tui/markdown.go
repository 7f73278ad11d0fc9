package tui

import (
	"fmt"
	"strings"

	"github.com/aretw0/kefschema/pkg/domain"
)

// ActionMarkdown documents an action as a markdown section with one table row
// per field.
func ActionMarkdown(def domain.ActionDefinition) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n%s\n\n", def.Name, def.Description)
	sb.WriteString("| Field | Type | Domain | Example | Description |\n")
	sb.WriteString("|---|---|---|---|---|\n")
	for _, f := range def.Fields {
		example := ""
		if f.Example.IsSet() {
			example = "`" + f.Example.Literal() + "`"
		}
		fmt.Fprintf(&sb, "| `%s` | %s | %s | %s | %s |\n",
			f.Name, f.Kind, fieldDomain(f), example, escapeCell(f.Description))
	}
	return sb.String()
}

// ListMarkdown renders a bullet list of actions and their descriptions.
func ListMarkdown(defs []domain.ActionDefinition) string {
	var sb strings.Builder
	for _, def := range defs {
		fmt.Fprintf(&sb, "- **%s**: %s\n", def.Name, def.Description)
	}
	return sb.String()
}

func fieldDomain(f domain.FieldDefinition) string {
	switch {
	case f.Kind == domain.FieldEntity:
		return domain.EntityDomain + ".*, required"
	case f.Bounds != nil:
		d := fmt.Sprintf("%g..%g step %g", f.Bounds.Min, f.Bounds.Max, f.Bounds.Step)
		if f.Unit != "" {
			d += " " + f.Unit
		}
		return d
	case len(f.Options) > 0:
		return strings.Join(f.Options, " / ")
	case f.Kind == domain.FieldBoolean:
		return "true / false"
	default:
		return ""
	}
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
