package schema

import (
	"fmt"
	"strings"
)

// ValidationError represents a single field validation failure.
type ValidationError struct {
	Key    string `json:"field"`            // Field name
	Reason string `json:"reason"`           // Human-readable reason for failure
	Value  any    `json:"value,omitempty"` // The value that failed validation
}

func (e *ValidationError) Error() string {
	if e.Value == nil {
		return fmt.Sprintf("field %q: %s", e.Key, e.Reason)
	}
	return fmt.Sprintf("field %q: %s (got %T)", e.Key, e.Reason, e.Value)
}

// AggregateError represents multiple validation failures of one invocation.
type AggregateError struct {
	Action string
	Errors []error
}

func (e *AggregateError) Error() string {
	prefix := ""
	if e.Action != "" {
		prefix = e.Action + ": "
	}
	if len(e.Errors) == 1 {
		return prefix + e.Errors[0].Error()
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s%d validation errors:\n", prefix, len(e.Errors))
	for i, err := range e.Errors {
		fmt.Fprintf(&sb, "  %d. %s\n", i+1, err.Error())
	}
	return sb.String()
}

// Unwrap exposes the individual failures to errors.Is/As.
func (e *AggregateError) Unwrap() []error { return e.Errors }

// ValidationErrors returns all validation errors if err is an AggregateError.
// Otherwise returns nil.
func ValidationErrors(err error) []error {
	if aggr, ok := err.(*AggregateError); ok {
		return aggr.Errors
	}
	return nil
}

// FieldErrors flattens err into its ValidationErrors, for JSON responses.
func FieldErrors(err error) []*ValidationError {
	var out []*ValidationError
	for _, e := range ValidationErrors(err) {
		if ve, ok := e.(*ValidationError); ok {
			out = append(out, ve)
		}
	}
	return out
}
