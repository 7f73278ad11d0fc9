package registry

import (
	"context"
	"fmt"
	"log/slog"
	"reflect"
	"sort"
	"strings"

	"github.com/aretw0/kefschema/internal/logging"
	"github.com/aretw0/kefschema/pkg/domain"
	"github.com/aretw0/kefschema/pkg/observability"
	"github.com/aretw0/kefschema/pkg/ports"
)

// Registry holds the loaded action definitions.
// It is immutable once constructed, so concurrent reads need no locking.
type Registry struct {
	actions map[string]domain.ActionDefinition
	names   []string
	logger  *slog.Logger
	metrics *observability.Metrics
}

// Option configures a Registry at load time.
type Option func(*Registry)

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Registry) {
		r.logger = logger
	}
}

// WithMetrics attaches Prometheus collectors.
func WithMetrics(m *observability.Metrics) Option {
	return func(r *Registry) {
		r.metrics = m
	}
}

// Load parses a descriptor document and builds a Registry.
// It fails with an error matching domain.ErrMalformedSchema if the document
// is not a valid descriptor, names are duplicated or a description is missing.
func Load(src []byte, opts ...Option) (*Registry, error) {
	defs, err := Parse(src)
	if err != nil {
		return nil, err
	}
	return New(defs, opts...)
}

// LoadSource reads the document from source and loads it.
func LoadSource(ctx context.Context, source ports.Source, opts ...Option) (*Registry, error) {
	data, err := source.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", source.Name(), err)
	}
	reg, err := Load(data, opts...)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", source.Name(), err)
	}
	reg.logger.Info("registry loaded", "source", source.Name(), "actions", reg.Len())
	return reg, nil
}

// New builds a Registry from in-memory definitions, enforcing the same
// invariants as Load. Derived field attributes are (re)computed from prose.
func New(defs []domain.ActionDefinition, opts ...Option) (*Registry, error) {
	r := &Registry{
		actions: make(map[string]domain.ActionDefinition, len(defs)),
		names:   make([]string, 0, len(defs)),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = logging.NewNop()
	}

	for _, def := range defs {
		if err := check(def); err != nil {
			return nil, err
		}
		if _, dup := r.actions[def.Name]; dup {
			return nil, &domain.MalformedSchemaError{Action: def.Name, Reason: "duplicate action name"}
		}
		r.actions[def.Name] = def.Infer()
		r.names = append(r.names, def.Name)
	}
	sort.Strings(r.names)

	r.metrics.SetActions(len(r.names))
	r.logger.Debug("registry built", "actions", len(r.names))
	return r, nil
}

func check(def domain.ActionDefinition) error {
	if strings.TrimSpace(def.Name) == "" {
		return &domain.MalformedSchemaError{Reason: "missing action name"}
	}
	if strings.TrimSpace(def.Description) == "" {
		return &domain.MalformedSchemaError{Action: def.Name, Reason: "missing description"}
	}
	seen := make(map[string]bool, len(def.Fields))
	for _, f := range def.Fields {
		if strings.TrimSpace(f.Name) == "" {
			return &domain.MalformedSchemaError{Action: def.Name, Reason: "missing field name"}
		}
		if seen[f.Name] {
			return &domain.MalformedSchemaError{Action: def.Name, Field: f.Name, Reason: "duplicate field name"}
		}
		seen[f.Name] = true
		if strings.TrimSpace(f.Description) == "" {
			return &domain.MalformedSchemaError{Action: def.Name, Field: f.Name, Reason: "missing description"}
		}
		if !ValidateExample(f) {
			return &domain.MalformedSchemaError{Action: def.Name, Field: f.Name, Reason: "example must be a boolean, number or string"}
		}
	}
	return nil
}

// ValidateExample reports whether the field's example is one of the primitive
// kinds the descriptor supports. A field without an example is valid.
func ValidateExample(f domain.FieldDefinition) bool {
	switch f.Example.Kind {
	case domain.KindNone, domain.KindBool, domain.KindNumber, domain.KindString:
		return true
	default:
		return false
	}
}

// Describe returns the definition of the named action.
// It fails with an error matching domain.ErrNotFound if the name is absent.
func (r *Registry) Describe(name string) (domain.ActionDefinition, error) {
	def, ok := r.actions[name]
	r.metrics.ObserveLookup(ok)
	if !ok {
		r.logger.Debug("action lookup missed", "action", name)
		return domain.ActionDefinition{}, &domain.NotFoundError{Action: name}
	}
	return def.Clone(), nil
}

// Names returns the action names, sorted.
func (r *Registry) Names() []string {
	return append([]string(nil), r.names...)
}

// Actions returns copies of every definition, sorted by name.
func (r *Registry) Actions() []domain.ActionDefinition {
	out := make([]domain.ActionDefinition, len(r.names))
	for i, name := range r.names {
		out[i] = r.actions[name].Clone()
	}
	return out
}

// Len returns the number of actions.
func (r *Registry) Len() int { return len(r.names) }

// Equal reports whether both registries hold the same definitions.
func (r *Registry) Equal(other *Registry) bool {
	if r == nil || other == nil {
		return r == other
	}
	return reflect.DeepEqual(r.actions, other.actions)
}

// Document renders the registry back into the persisted descriptor shape,
// with actions sorted by name.
func (r *Registry) Document() ([]byte, error) {
	return Encode(r.Actions())
}

// Publish saves every definition to store.
func (r *Registry) Publish(ctx context.Context, store ports.DefinitionStore) error {
	for _, name := range r.names {
		if err := store.Save(ctx, r.actions[name]); err != nil {
			return fmt.Errorf("publishing %s: %w", name, err)
		}
	}
	r.logger.Info("registry published", "actions", len(r.names))
	return nil
}
