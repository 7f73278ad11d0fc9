package schema

import (
	"sort"

	"github.com/aretw0/kefschema/pkg/domain"
)

// Schema is a map of field names to their expected types.
// Example: {"entity_id": EntityID("media_player"), "db": Number(bounds)}
type Schema map[string]Type

// ValidateFields validates only specific fields from data against the schema.
// Missing fields are treated as an error.
func ValidateFields(schema Schema, data map[string]any, fields ...string) error {
	if len(fields) == 0 {
		// No fields to validate
		return nil
	}

	var errs []error

	for _, fieldName := range fields {
		fieldType, exists := schema[fieldName]
		if !exists {
			// Field not defined in schema
			errs = append(errs, &ValidationError{
				Key:    fieldName,
				Reason: "not defined in schema",
			})
			continue
		}

		value, fieldExists := data[fieldName]
		if !fieldExists {
			errs = append(errs, &ValidationError{
				Key:    fieldName,
				Reason: "required",
			})
			continue
		}

		if err := fieldType.Validate(value); err != nil {
			errs = append(errs, &ValidationError{
				Key:    fieldName,
				Reason: err.Error(),
				Value:  value,
			})
		}
	}

	if len(errs) > 0 {
		return &AggregateError{Errors: errs}
	}

	return nil
}

// FieldType maps a field definition to the type that enforces its documented domain.
func FieldType(f domain.FieldDefinition) Type {
	switch f.Kind {
	case domain.FieldEntity:
		return EntityID(domain.EntityDomain)
	case domain.FieldBoolean:
		return Bool()
	case domain.FieldNumber:
		if f.Bounds != nil {
			return Number(*f.Bounds)
		}
		return Float()
	default:
		if len(f.Options) > 0 {
			return Enum(f.Options...)
		}
		return String()
	}
}

// ForAction derives the invocation schema of an action.
func ForAction(def domain.ActionDefinition) Schema {
	s := make(Schema, len(def.Fields))
	for _, f := range def.Fields {
		s[f.Name] = FieldType(f)
	}
	return s
}

// ValidateInvocation checks a service call payload against an action definition.
// Unknown fields are rejected, required fields must be present and every
// supplied value must match its field's documented domain.
func ValidateInvocation(def domain.ActionDefinition, data map[string]any) error {
	s := ForAction(def)

	var errs []error
	var present []string

	unknown := make([]string, 0)
	for key := range data {
		if _, ok := s[key]; !ok {
			unknown = append(unknown, key)
		}
	}
	sort.Strings(unknown)
	for _, key := range unknown {
		errs = append(errs, &ValidationError{Key: key, Reason: "not defined for action " + def.Name, Value: data[key]})
	}

	for _, f := range def.Fields {
		if _, ok := data[f.Name]; ok {
			present = append(present, f.Name)
			continue
		}
		if !f.Optional() {
			errs = append(errs, &ValidationError{Key: f.Name, Reason: "required"})
		}
	}

	if err := ValidateFields(s, data, present...); err != nil {
		errs = append(errs, ValidationErrors(err)...)
	}

	if len(errs) > 0 {
		return &AggregateError{Action: def.Name, Errors: errs}
	}
	return nil
}
