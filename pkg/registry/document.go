package registry

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/aretw0/kefschema/internal/dto"
	"github.com/aretw0/kefschema/pkg/domain"
	"gopkg.in/yaml.v3"
)

// Parse decodes a descriptor document into action definitions, in document order.
// Every failure is a *domain.MalformedSchemaError.
func Parse(src []byte) ([]domain.ActionDefinition, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(src, &root); err != nil {
		return nil, &domain.MalformedSchemaError{Reason: "invalid YAML: " + err.Error()}
	}
	if root.Kind != yaml.DocumentNode || len(root.Content) == 0 {
		return nil, &domain.MalformedSchemaError{Reason: "empty document"}
	}
	top, err := newResolver().resolve(root.Content[0], 0)
	if err != nil {
		return nil, err
	}
	if top.Kind != yaml.MappingNode {
		return nil, &domain.MalformedSchemaError{Reason: "top level must be a mapping of action names", Line: top.Line}
	}

	// Duplicates first: generic decoding would reject them without a location.
	if err := checkDuplicates(top); err != nil {
		return nil, err
	}

	var generic map[string]any
	if err := top.Decode(&generic); err != nil {
		return nil, &domain.MalformedSchemaError{Reason: err.Error(), Line: top.Line}
	}
	if err := checkShape(generic); err != nil {
		return nil, err
	}

	defs := make([]domain.ActionDefinition, 0, len(top.Content)/2)
	for i := 0; i < len(top.Content); i += 2 {
		name, body := top.Content[i].Value, top.Content[i+1]
		def, err := parseAction(name, body, generic[name])
		if err != nil {
			return nil, err
		}
		defs = append(defs, def)
	}
	return defs, nil
}

func parseAction(name string, body *yaml.Node, raw any) (domain.ActionDefinition, error) {
	doc, err := dto.DecodeAction(raw)
	if err != nil {
		return domain.ActionDefinition{}, &domain.MalformedSchemaError{Action: name, Reason: err.Error(), Line: body.Line}
	}

	def := domain.ActionDefinition{
		Name:        name,
		Description: doc.Description,
	}

	fields := mappingValue(body, domain.KeyFields)
	if fields == nil || fields.Kind != yaml.MappingNode {
		return def, nil
	}
	def.Fields = make([]domain.FieldDefinition, 0, len(fields.Content)/2)
	for i := 0; i < len(fields.Content); i += 2 {
		fname := fields.Content[i].Value
		fbody := fields.Content[i+1]

		example, err := scalarValue(mappingValue(fbody, domain.KeyExample))
		if err != nil {
			return domain.ActionDefinition{}, &domain.MalformedSchemaError{Action: name, Field: fname, Reason: err.Error(), Line: fbody.Line}
		}
		def.Fields = append(def.Fields, domain.FieldDefinition{
			Name:        fname,
			Description: doc.Fields[fname].Description,
			Example:     example,
		})
	}
	return def, nil
}

// checkDuplicates rejects repeated action names and repeated field names.
func checkDuplicates(top *yaml.Node) error {
	actions := make(map[string]int)
	for i := 0; i < len(top.Content); i += 2 {
		key := top.Content[i]
		if line, dup := actions[key.Value]; dup {
			return &domain.MalformedSchemaError{
				Action: key.Value,
				Reason: fmt.Sprintf("duplicate action name (first defined on line %d)", line),
				Line:   key.Line,
			}
		}
		actions[key.Value] = key.Line

		body := top.Content[i+1]
		if body.Kind != yaml.MappingNode {
			continue
		}
		if err := uniqueKeys(body, key.Value, ""); err != nil {
			return err
		}
		fields := mappingValue(body, domain.KeyFields)
		if fields == nil || fields.Kind != yaml.MappingNode {
			continue
		}
		if err := uniqueKeys(fields, key.Value, "field name"); err != nil {
			return err
		}
		for j := 1; j < len(fields.Content); j += 2 {
			if fields.Content[j].Kind == yaml.MappingNode {
				if err := uniqueKeys(fields.Content[j], key.Value, ""); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func uniqueKeys(m *yaml.Node, action, what string) error {
	seen := make(map[string]bool, len(m.Content)/2)
	for i := 0; i < len(m.Content); i += 2 {
		k := m.Content[i]
		if seen[k.Value] {
			err := &domain.MalformedSchemaError{Action: action, Line: k.Line}
			if what != "" {
				err.Field = k.Value
				err.Reason = "duplicate " + what
			} else {
				err.Reason = fmt.Sprintf("duplicate key %q", k.Value)
			}
			return err
		}
		seen[k.Value] = true
	}
	return nil
}

func mappingValue(m *yaml.Node, key string) *yaml.Node {
	if m == nil || m.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(m.Content); i += 2 {
		if m.Content[i].Value == key {
			return m.Content[i+1]
		}
	}
	return nil
}

// maxResolveDepth and maxResolveNodes bound alias expansion; a
// self-referencing anchor or an alias bomb fails instead of looping.
const (
	maxResolveDepth = 64
	maxResolveNodes = 1 << 16
)

// resolver rewrites a node tree without aliases or merge keys, so the
// structural walk sees exactly what a generic decode sees.
type resolver struct {
	nodes int
}

func newResolver() *resolver { return &resolver{} }

func (r *resolver) resolve(n *yaml.Node, depth int) (*yaml.Node, error) {
	r.nodes++
	if depth > maxResolveDepth || r.nodes > maxResolveNodes {
		return nil, &domain.MalformedSchemaError{Reason: "aliases expand too deeply", Line: n.Line}
	}
	switch n.Kind {
	case yaml.AliasNode:
		if n.Alias == nil {
			return nil, &domain.MalformedSchemaError{Reason: fmt.Sprintf("unknown anchor %q", n.Value), Line: n.Line}
		}
		return r.resolve(n.Alias, depth+1)
	case yaml.MappingNode:
		return r.resolveMapping(n, depth)
	case yaml.SequenceNode, yaml.DocumentNode:
		out := *n
		out.Content = make([]*yaml.Node, len(n.Content))
		for i, c := range n.Content {
			rc, err := r.resolve(c, depth+1)
			if err != nil {
				return nil, err
			}
			out.Content[i] = rc
		}
		return &out, nil
	default:
		return n, nil
	}
}

// resolveMapping expands "<<" merge keys in place. Explicit keys win over
// merged ones, and earlier merge sources win over later ones.
func (r *resolver) resolveMapping(n *yaml.Node, depth int) (*yaml.Node, error) {
	keys := make([]*yaml.Node, len(n.Content)/2)
	explicit := make(map[string]bool, len(keys))
	for i := range keys {
		k, err := r.resolve(n.Content[2*i], depth+1)
		if err != nil {
			return nil, err
		}
		keys[i] = k
		if !isMergeKey(k) {
			explicit[k.Value] = true
		}
	}

	out := *n
	out.Content = make([]*yaml.Node, 0, len(n.Content))
	merged := make(map[string]bool)
	for i, k := range keys {
		v, err := r.resolve(n.Content[2*i+1], depth+1)
		if err != nil {
			return nil, err
		}
		if !isMergeKey(k) {
			out.Content = append(out.Content, k, v)
			continue
		}
		sources := []*yaml.Node{v}
		if v.Kind == yaml.SequenceNode {
			sources = v.Content
		}
		for _, src := range sources {
			if src.Kind != yaml.MappingNode {
				return nil, &domain.MalformedSchemaError{Reason: "merge key value must be a mapping", Line: src.Line}
			}
			for j := 0; j+1 < len(src.Content); j += 2 {
				name := src.Content[j].Value
				if explicit[name] || merged[name] {
					continue
				}
				merged[name] = true
				out.Content = append(out.Content, src.Content[j], src.Content[j+1])
			}
		}
	}
	return &out, nil
}

func isMergeKey(k *yaml.Node) bool {
	return k.Kind == yaml.ScalarNode && k.ShortTag() == "!!merge"
}

// scalarValue converts an example node, keeping numeric literals as written
// when they are already valid JSON numbers.
func scalarValue(n *yaml.Node) (domain.Value, error) {
	if n == nil {
		return domain.Value{}, nil
	}
	if n.Kind != yaml.ScalarNode {
		return domain.Value{}, fmt.Errorf("example must be a boolean, number or string")
	}
	switch n.ShortTag() {
	case "!!null":
		return domain.Value{}, nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return domain.Value{}, err
		}
		return domain.BoolValue(b), nil
	case "!!int", "!!float":
		var f float64
		if err := n.Decode(&f); err != nil {
			return domain.Value{}, err
		}
		return domain.LiteralNumber(n.Value, f)
	default:
		return domain.StringValue(n.Value), nil
	}
}

// Encode renders definitions in the persisted descriptor shape.
// Only Name, Description and Example are written; derived attributes are not.
func Encode(defs []domain.ActionDefinition) ([]byte, error) {
	top := &yaml.Node{Kind: yaml.MappingNode}
	for _, def := range defs {
		body := &yaml.Node{Kind: yaml.MappingNode}
		body.Content = append(body.Content, str(domain.KeyDescription), str(def.Description))

		if len(def.Fields) > 0 {
			fields := &yaml.Node{Kind: yaml.MappingNode}
			for _, f := range def.Fields {
				fbody := &yaml.Node{Kind: yaml.MappingNode}
				fbody.Content = append(fbody.Content, str(domain.KeyDescription), str(f.Description))
				if f.Example.IsSet() {
					fbody.Content = append(fbody.Content, str(domain.KeyExample), exampleNode(f.Example))
				}
				fields.Content = append(fields.Content, str(f.Name), fbody)
			}
			body.Content = append(body.Content, str(domain.KeyFields), fields)
		}
		top.Content = append(top.Content, str(def.Name), body)
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(&yaml.Node{Kind: yaml.DocumentNode, Content: []*yaml.Node{top}}); err != nil {
		return nil, fmt.Errorf("encoding descriptor: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encoding descriptor: %w", err)
	}
	return buf.Bytes(), nil
}

func str(s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
}

func exampleNode(v domain.Value) *yaml.Node {
	switch v.Kind {
	case domain.KindBool:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: v.Literal()}
	case domain.KindNumber:
		tag := "!!int"
		if strings.ContainsAny(v.Literal(), ".eE") {
			tag = "!!float"
		}
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: v.Literal()}
	default:
		return str(v.Literal())
	}
}
