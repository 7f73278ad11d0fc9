package registry

import (
	"fmt"
	"strings"
	"sync"

	"github.com/aretw0/kefschema/pkg/domain"
	"github.com/xeipuuv/gojsonschema"
)

// descriptorSchema is the JSON Schema of the persisted descriptor shape.
const descriptorSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "minProperties": 1,
  "additionalProperties": {
    "type": "object",
    "required": ["description"],
    "additionalProperties": false,
    "properties": {
      "description": {"type": "string", "pattern": "\\S"},
      "fields": {
        "type": ["object", "null"],
        "additionalProperties": {
          "type": "object",
          "required": ["description"],
          "additionalProperties": false,
          "properties": {
            "description": {"type": "string", "pattern": "\\S"},
            "example": {"type": ["boolean", "number", "string", "null"]}
          }
        }
      }
    }
  }
}`

var (
	shapeOnce   sync.Once
	shapeSchema *gojsonschema.Schema
	shapeErr    error
)

func loadShape() (*gojsonschema.Schema, error) {
	shapeOnce.Do(func() {
		shapeSchema, shapeErr = gojsonschema.NewSchema(gojsonschema.NewStringLoader(descriptorSchema))
	})
	return shapeSchema, shapeErr
}

// DescriptorSchema returns the JSON Schema used to check documents.
func DescriptorSchema() string { return descriptorSchema }

// checkShape validates a generically decoded document against descriptorSchema.
func checkShape(doc any) error {
	schema, err := loadShape()
	if err != nil {
		return fmt.Errorf("loading descriptor schema: %w", err)
	}

	result, err := schema.Validate(gojsonschema.NewGoLoader(doc))
	if err != nil {
		return &domain.MalformedSchemaError{Reason: err.Error()}
	}
	if result.Valid() {
		return nil
	}

	errs := result.Errors()
	messages := make([]string, len(errs))
	for i, e := range errs {
		messages[i] = e.String()
	}

	action, field := locate(errs[0].Field())
	return &domain.MalformedSchemaError{
		Action: action,
		Field:  field,
		Reason: "does not match descriptor: " + strings.Join(messages, "; "),
	}
}

// locate maps a gojsonschema field path such as "set_mode.fields.desk_mode"
// back to an action and field name.
func locate(path string) (action, field string) {
	if path == "" || path == "(root)" {
		return "", ""
	}
	parts := strings.Split(path, ".")
	action = parts[0]
	if len(parts) >= 3 && parts[1] == domain.KeyFields {
		field = parts[2]
	}
	return action, field
}
