package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/kefschema/pkg/domain"
)

// Highlight marks actions to emphasise on the diagram, e.g. the action a
// documentation page is about.
type Highlight struct {
	Actions []string
}

// GenerateMermaid produces a Mermaid flowchart linking every action to its fields.
// It applies semantic styling:
// - Action: [[Subroutine]]
// - Entity: ((Circle))
// - Boolean: {Rhombus}
// - Number: [/Parallelogram/], labelled with its range
// - Default: [Rectangle], labelled with its options if any
func GenerateMermaid(defs []domain.ActionDefinition, highlight *Highlight) string {
	var sb strings.Builder
	sb.WriteString("graph LR\n")

	for _, def := range defs {
		actionID := sanitizeMermaidID(def.Name)
		sb.WriteString(fmt.Sprintf("    %s[[\"%s\"]]\n", actionID, def.Name))

		for _, f := range def.Fields {
			fieldID := actionID + "__" + sanitizeMermaidID(f.Name)

			opener, closer := "[", "]"
			switch f.Kind {
			case domain.FieldEntity:
				opener, closer = "((", "))"
			case domain.FieldBoolean:
				opener, closer = "{", "}"
			case domain.FieldNumber:
				opener, closer = "[/", "/]"
			}

			sb.WriteString(fmt.Sprintf("    %s%s\"%s\"%s\n", fieldID, opener, fieldLabel(f), closer))

			arrow := "-->"
			if f.Optional() {
				arrow = "-.->"
			}
			sb.WriteString(fmt.Sprintf("    %s %s %s\n", actionID, arrow, fieldID))
		}
	}

	if highlight != nil && len(highlight.Actions) > 0 {
		sb.WriteString("\n    %% Highlight Styles\n")
		// Force black text (color:#000) for high-contrast on light backgrounds, regardless of theme (Light/Dark)
		sb.WriteString("    classDef selected fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")

		seen := make(map[string]bool)
		for _, name := range highlight.Actions {
			id := sanitizeMermaidID(name)
			if !seen[id] && id != "" {
				seen[id] = true
				sb.WriteString(fmt.Sprintf("    class %s selected;\n", id))
			}
		}
	}

	return sb.String()
}

func fieldLabel(f domain.FieldDefinition) string {
	label := f.Name
	switch {
	case f.Bounds != nil:
		label += fmt.Sprintf(" <br/> %g..%g / %g", f.Bounds.Min, f.Bounds.Max, f.Bounds.Step)
		if f.Unit != "" {
			label += " " + f.Unit
		}
	case len(f.Options) > 0:
		label += " <br/> " + strings.Join(f.Options, " | ")
	}
	// Mermaid labels are double-quoted.
	return strings.ReplaceAll(label, "\"", "'")
}

func sanitizeMermaidID(id string) string {
	s := strings.ReplaceAll(id, ".", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, " ", "_")
	return s
}
