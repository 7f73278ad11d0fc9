// Package openapi describes the speaker services as an OpenAPI 3 document.
//
// Each action becomes one POST operation whose request body mirrors the
// invocation schema: sliders carry minimum, maximum and multipleOf, enums carry
// their choices and entity_id is a required, patterned string.
package openapi

import (
	"fmt"
	"net/http"
	"regexp"

	"github.com/aretw0/kefschema/pkg/domain"
	"github.com/aretw0/kefschema/pkg/registry"
	"github.com/getkin/kin-openapi/openapi3"
)

// Title is the document title.
const Title = "KEF speaker services"

// EntityPattern matches entity references of the speaker domain.
var EntityPattern = "^" + regexp.QuoteMeta(domain.EntityDomain+".") + "[a-z0-9_]+$"

// Build renders reg as an OpenAPI document.
func Build(reg *registry.Registry, version string) *openapi3.T {
	if version == "" {
		version = "dev"
	}
	doc := &openapi3.T{
		OpenAPI: "3.0.3",
		Info: &openapi3.Info{
			Title:       Title,
			Version:     version,
			Description: "Custom actions exposed for KEF wireless speakers.",
		},
		Paths: openapi3.NewPaths(),
	}

	for _, def := range reg.Actions() {
		doc.AddOperation(Path(def.Name), http.MethodPost, operation(def))
	}
	return doc
}

// Path returns the route of an action.
func Path(action string) string {
	return "/services/" + action
}

func operation(def domain.ActionDefinition) *openapi3.Operation {
	op := openapi3.NewOperation()
	op.OperationID = def.Name
	op.Summary = def.Description
	op.Tags = []string{"services"}
	op.RequestBody = &openapi3.RequestBodyRef{
		Value: openapi3.NewRequestBody().
			WithRequired(true).
			WithJSONSchema(RequestSchema(def)),
	}
	op.Responses = openapi3.NewResponses(
		openapi3.WithStatus(http.StatusOK, &openapi3.ResponseRef{
			Value: openapi3.NewResponse().WithDescription("The call was accepted."),
		}),
		openapi3.WithStatus(http.StatusUnprocessableEntity, &openapi3.ResponseRef{
			Value: openapi3.NewResponse().WithDescription("A field is unknown, missing or outside its documented domain."),
		}),
	)
	return op
}

// RequestSchema returns the JSON schema of an action's call payload.
func RequestSchema(def domain.ActionDefinition) *openapi3.Schema {
	obj := openapi3.NewObjectSchema()
	obj.Description = def.Description
	obj.AdditionalProperties = openapi3.AdditionalProperties{Has: openapi3.BoolPtr(false)}
	for _, f := range def.Fields {
		obj.WithProperty(f.Name, FieldSchema(f))
		if !f.Optional() {
			obj.Required = append(obj.Required, f.Name)
		}
	}
	return obj
}

// FieldSchema maps a field's derived domain to a JSON schema.
func FieldSchema(f domain.FieldDefinition) *openapi3.Schema {
	var s *openapi3.Schema
	switch f.Kind {
	case domain.FieldEntity:
		s = openapi3.NewStringSchema().WithPattern(EntityPattern)
	case domain.FieldBoolean:
		s = openapi3.NewBoolSchema()
	case domain.FieldNumber:
		s = openapi3.NewFloat64Schema()
		if b := f.Bounds; b != nil {
			s = s.WithMin(b.Min).WithMax(b.Max)
			if step, ok := b.MultipleOf(); ok {
				s.MultipleOf = &step
			}
		}
	default:
		s = openapi3.NewStringSchema()
		if len(f.Options) > 0 {
			opts := make([]any, len(f.Options))
			for i, o := range f.Options {
				opts[i] = o
			}
			s = s.WithEnum(opts...)
		}
	}
	s.Description = f.Description
	if f.Unit != "" {
		s.Description = fmt.Sprintf("%s Unit: %s.", f.Description, f.Unit)
	}
	if f.Example.IsSet() {
		s.Example = f.Example.Interface()
	}
	return s
}
