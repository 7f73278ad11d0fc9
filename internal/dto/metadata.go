package dto

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// ActionDoc is the body of one action entry in the service descriptor.
// It uses "mapstructure" tags to match the descriptor keys.
type ActionDoc struct {
	Description string              `json:"description" mapstructure:"description"`
	Fields      map[string]FieldDoc `json:"fields" mapstructure:"fields"`
}

// FieldDoc is the body of one field entry.
type FieldDoc struct {
	Description string `json:"description" mapstructure:"description"`
	Example     any    `json:"example" mapstructure:"example"`
}

// DecodeAction converts a generic decoded mapping into an ActionDoc.
// Unknown keys are rejected.
func DecodeAction(raw any) (ActionDoc, error) {
	var doc ActionDoc
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      &doc,
		ErrorUnused: true,
	})
	if err != nil {
		return ActionDoc{}, err
	}
	if err := dec.Decode(raw); err != nil {
		return ActionDoc{}, fmt.Errorf("decoding action: %w", err)
	}
	return doc, nil
}
