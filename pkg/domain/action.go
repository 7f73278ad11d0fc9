package domain

// FieldKind is the value domain of a field as understood by UIs and validators.
type FieldKind string

const (
	FieldBoolean FieldKind = "boolean"
	FieldNumber  FieldKind = "number"
	FieldString  FieldKind = "string"
	FieldEntity  FieldKind = "entity"
)

// FieldDefinition documents one parameter of an action.
//
// Name, Description and Example are what the descriptor stores. Kind, Unit,
// Bounds and Options are derived from the prose by Infer and never rendered.
type FieldDefinition struct {
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Example     Value     `json:"example"`
	Kind        FieldKind `json:"kind"`
	Unit        string    `json:"unit,omitempty"`
	Bounds      *Bounds   `json:"bounds,omitempty"`
	Options     []string  `json:"options,omitempty"`
}

// Optional reports whether callers may omit the field when invoking the action.
func (f FieldDefinition) Optional() bool {
	return f.Kind != FieldEntity
}

// ActionDefinition documents one invocable speaker service.
// Fields keep the order in which they were declared.
type ActionDefinition struct {
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Fields      []FieldDefinition `json:"fields"`
}

// Field looks up a field by name.
func (a ActionDefinition) Field(name string) (FieldDefinition, bool) {
	for _, f := range a.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return FieldDefinition{}, false
}

// FieldNames returns the field names in declaration order.
func (a ActionDefinition) FieldNames() []string {
	names := make([]string, len(a.Fields))
	for i, f := range a.Fields {
		names[i] = f.Name
	}
	return names
}

// Clone returns a deep copy so callers cannot alias registry internals.
func (a ActionDefinition) Clone() ActionDefinition {
	out := a
	out.Fields = make([]FieldDefinition, len(a.Fields))
	for i, f := range a.Fields {
		if f.Bounds != nil {
			b := *f.Bounds
			f.Bounds = &b
		}
		if f.Options != nil {
			f.Options = append([]string(nil), f.Options...)
		}
		out.Fields[i] = f
	}
	return out
}

// Infer fills the derived attributes of every field from the prose of the
// action and field descriptions.
func (a ActionDefinition) Infer() ActionDefinition {
	out := a.Clone()
	unit := ParseUnit(a.Description)
	for i := range out.Fields {
		out.Fields[i] = out.Fields[i].infer(unit)
	}
	return out
}

func (f FieldDefinition) infer(unit string) FieldDefinition {
	f.Bounds, f.Options, f.Unit = nil, nil, ""
	if f.Name == FieldEntityID {
		f.Kind = FieldEntity
		return f
	}
	if b, ok := ParseBounds(f.Description); ok {
		f.Kind = FieldNumber
		f.Bounds = &b
		f.Unit = unit
		return f
	}
	if opts := ParseOptions(f.Description); len(opts) > 0 {
		f.Kind = FieldString
		f.Options = opts
		return f
	}
	switch f.Example.Kind {
	case KindBool:
		f.Kind = FieldBoolean
	case KindNumber:
		f.Kind = FieldNumber
	default:
		f.Kind = FieldString
	}
	return f
}
