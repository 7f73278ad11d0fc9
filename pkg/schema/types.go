package schema

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/aretw0/kefschema/pkg/domain"
)

// Type defines the contract for field validation.
// Implementations determine how values are validated against a type.
type Type interface {
	// Name returns the type name used when a schema is serialized.
	Name() string
	// Validate checks if a value conforms to this type.
	Validate(value any) error
}

// --- Built-in Type Implementations ---

// StringType validates string values.
type StringType struct{}

func (t *StringType) Name() string { return "string" }

func (t *StringType) Validate(value any) error {
	_, ok := value.(string)
	if !ok {
		return fmt.Errorf("expected string, got %T", value)
	}
	return nil
}

// FloatType validates numeric values.
type FloatType struct{}

func (t *FloatType) Name() string { return "float" }

func (t *FloatType) Validate(value any) error {
	if _, ok := toFloat(value); !ok {
		return fmt.Errorf("expected float, got %T", value)
	}
	return nil
}

// BoolType validates boolean values.
type BoolType struct{}

func (t *BoolType) Name() string { return "bool" }

func (t *BoolType) Validate(value any) error {
	_, ok := value.(bool)
	if !ok {
		return fmt.Errorf("expected bool, got %T", value)
	}
	return nil
}

// NumberType validates a slider value against its documented bounds.
type NumberType struct {
	bounds domain.Bounds
}

func (t *NumberType) Name() string {
	return fmt.Sprintf("number(%s:%s:%s)", formatFloat(t.bounds.Min), formatFloat(t.bounds.Max), formatFloat(t.bounds.Step))
}

func (t *NumberType) Validate(value any) error {
	f, ok := toFloat(value)
	if !ok {
		return fmt.Errorf("expected number, got %T", value)
	}
	if !t.bounds.Contains(f) {
		return fmt.Errorf("%s out of range [%s, %s]", formatFloat(f), formatFloat(t.bounds.Min), formatFloat(t.bounds.Max))
	}
	if !t.bounds.OnStep(f) {
		return fmt.Errorf("%s is not a multiple of %s from %s", formatFloat(f), formatFloat(t.bounds.Step), formatFloat(t.bounds.Min))
	}
	return nil
}

// EnumType validates a string against a fixed set of choices.
type EnumType struct {
	options []string
}

func (t *EnumType) Name() string {
	return "enum(" + strings.Join(t.options, "|") + ")"
}

func (t *EnumType) Validate(value any) error {
	s, ok := value.(string)
	if !ok {
		return fmt.Errorf("expected string, got %T", value)
	}
	for _, o := range t.options {
		if s == o {
			return nil
		}
	}
	return fmt.Errorf("%q is not one of %s", s, strings.Join(quoteAll(t.options), ", "))
}

var objectIDPattern = regexp.MustCompile(`^[a-z0-9_]+$`)

// EntityType validates a platform entity reference such as "media_player.kef_lsx".
type EntityType struct {
	domain string
}

func (t *EntityType) Name() string { return "entity(" + t.domain + ")" }

func (t *EntityType) Validate(value any) error {
	s, ok := value.(string)
	if !ok {
		return fmt.Errorf("expected entity id string, got %T", value)
	}
	prefix := t.domain + "."
	if !strings.HasPrefix(s, prefix) {
		return fmt.Errorf("entity %q is not in domain %s", s, t.domain)
	}
	if !objectIDPattern.MatchString(strings.TrimPrefix(s, prefix)) {
		return fmt.Errorf("entity %q has an invalid object id", s)
	}
	return nil
}

// --- Factory Functions ---

// String creates a string type validator.
func String() Type { return &StringType{} }

// Float creates a float type validator.
func Float() Type { return &FloatType{} }

// Bool creates a boolean type validator.
func Bool() Type { return &BoolType{} }

// Number creates a bounded slider validator.
func Number(b domain.Bounds) Type { return &NumberType{bounds: b} }

// Enum creates a validator accepting only the given strings.
func Enum(options ...string) Type {
	return &EnumType{options: append([]string(nil), options...)}
}

// EntityID creates a validator for entity references in the given domain.
func EntityID(entityDomain string) Type { return &EntityType{domain: entityDomain} }

func toFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case int:
		return float64(v), true
	case int8:
		return float64(v), true
	case int16:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case float32:
		return float64(v), true
	case float64:
		return v, true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func quoteAll(ss []string) []string {
	out := make([]string, len(ss))
	for i, s := range ss {
		out[i] = strconv.Quote(s)
	}
	return out
}
