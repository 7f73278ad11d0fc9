package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strconv"
)

// Kind tags the primitive type held by a Value.
type Kind int

const (
	KindNone Kind = iota
	KindBool
	KindNumber
	KindString
)

func (k Kind) String() string {
	switch k {
	case KindBool:
		return "boolean"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	default:
		return "none"
	}
}

// Value is a loosely typed example value: a boolean, a number or a string.
// For numbers, Text keeps the literal as written (e.g. "0.0") so documents
// render back exactly; Number holds the parsed value. Text is always a valid
// JSON number: other spellings are normalized when the Value is built.
type Value struct {
	Kind   Kind
	Bool   bool
	Number float64
	Text   string
}

// BoolValue wraps a boolean.
func BoolValue(b bool) Value {
	return Value{Kind: KindBool, Bool: b}
}

// StringValue wraps a string.
func StringValue(s string) Value {
	return Value{Kind: KindString, Text: s}
}

var jsonNumber = regexp.MustCompile(`^-?(0|[1-9][0-9]*)(\.[0-9]+)?([eE][+-]?[0-9]+)?$`)

// NumberValue parses a numeric literal, keeping it for rendering.
// Literals such as ".5", "+5" or "1." are rewritten in their shortest decimal form.
func NumberValue(literal string) (Value, error) {
	f, err := strconv.ParseFloat(literal, 64)
	if err != nil {
		return Value{}, fmt.Errorf("invalid number literal %q: %w", literal, err)
	}
	return LiteralNumber(literal, f)
}

// LiteralNumber pairs an already decoded number with the literal it came from.
// The literal is kept only when it is a valid JSON number; infinities and NaN are rejected.
func LiteralNumber(literal string, f float64) (Value, error) {
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return Value{}, fmt.Errorf("number %q is not finite", literal)
	}
	if !jsonNumber.MatchString(literal) {
		return FloatValue(f), nil
	}
	return Value{Kind: KindNumber, Number: f, Text: literal}, nil
}

// MustNumber is like NumberValue but panics on a bad literal.
// It is meant for static definitions.
func MustNumber(literal string) Value {
	v, err := NumberValue(literal)
	if err != nil {
		panic(err)
	}
	return v
}

// FloatValue wraps a float using its shortest decimal form.
func FloatValue(f float64) Value {
	return Value{Kind: KindNumber, Number: f, Text: strconv.FormatFloat(f, 'f', -1, 64)}
}

// ValueOf converts a decoded primitive into a Value.
// Only bool, numeric and string inputs are accepted; nil yields an unset Value.
func ValueOf(v any) (Value, error) {
	switch x := v.(type) {
	case nil:
		return Value{}, nil
	case bool:
		return BoolValue(x), nil
	case string:
		return StringValue(x), nil
	case json.Number:
		return NumberValue(x.String())
	case int:
		return FloatValue(float64(x)), nil
	case int64:
		return FloatValue(float64(x)), nil
	case uint64:
		return FloatValue(float64(x)), nil
	case float32:
		return FloatValue(float64(x)), nil
	case float64:
		return FloatValue(x), nil
	default:
		return Value{}, fmt.Errorf("unsupported example type %T", v)
	}
}

// IsSet reports whether the value holds anything.
func (v Value) IsSet() bool { return v.Kind != KindNone }

// Interface returns the value as a plain Go primitive (bool, float64, string or nil).
func (v Value) Interface() any {
	switch v.Kind {
	case KindBool:
		return v.Bool
	case KindNumber:
		return v.Number
	case KindString:
		return v.Text
	default:
		return nil
	}
}

// Literal returns the textual form used in rendered documents.
func (v Value) Literal() string {
	switch v.Kind {
	case KindBool:
		return strconv.FormatBool(v.Bool)
	case KindNumber, KindString:
		return v.Text
	default:
		return ""
	}
}

func (v Value) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case KindNumber:
		if jsonNumber.MatchString(v.Text) {
			return []byte(v.Text), nil
		}
		return json.Marshal(v.Number)
	default:
		return json.Marshal(v.Interface())
	}
}

func (v *Value) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw any
	if err := dec.Decode(&raw); err != nil {
		return err
	}
	parsed, err := ValueOf(raw)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}
