package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMalformedSchema is returned when the static definitions cannot be loaded.
var ErrMalformedSchema = errors.New("malformed schema")

// ErrNotFound is returned when an action name is not defined in the registry.
var ErrNotFound = errors.New("action not found")

// MalformedSchemaError describes where and why a descriptor was rejected.
// It matches ErrMalformedSchema with errors.Is.
type MalformedSchemaError struct {
	Action string
	Field  string
	Reason string
	Line   int
}

func (e *MalformedSchemaError) Error() string {
	var sb strings.Builder
	sb.WriteString(ErrMalformedSchema.Error())
	if e.Action != "" {
		fmt.Fprintf(&sb, ": action %q", e.Action)
	}
	if e.Field != "" {
		fmt.Fprintf(&sb, " field %q", e.Field)
	}
	sb.WriteString(": ")
	sb.WriteString(e.Reason)
	if e.Line > 0 {
		fmt.Fprintf(&sb, " (line %d)", e.Line)
	}
	return sb.String()
}

func (e *MalformedSchemaError) Unwrap() error { return ErrMalformedSchema }

// NotFoundError reports a lookup of an undefined action.
// It matches ErrNotFound with errors.Is.
type NotFoundError struct {
	Action string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s: %q", ErrNotFound.Error(), e.Action)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }
