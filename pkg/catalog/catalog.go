// Package catalog holds the static service definitions of the KEF speaker integration.
//
// set_mode toggles the speaker's DSP modes. The six calibration sliders share a
// single Slider template. The checked-in services.yaml is the persisted form of
// the same definitions.
package catalog

import (
	_ "embed"
	"fmt"
	"strconv"

	"github.com/aretw0/kefschema/pkg/domain"
	"github.com/aretw0/kefschema/pkg/registry"
)

//go:embed services.yaml
var embedded []byte

// ExampleEntity is the example target used by every action.
const ExampleEntity = "media_player.kef_lsx"

// Slider is the template shared by every numeric calibration action.
type Slider struct {
	Action  string
	Field   string
	Subject string
	Unit    string
	Min     float64
	Max     float64
	Step    float64
	// Example is the numeric literal as it appears in the descriptor.
	Example string
}

// Definition expands the template into an action definition.
func (s Slider) Definition() domain.ActionDefinition {
	return domain.ActionDefinition{
		Name:        s.Action,
		Description: fmt.Sprintf("Set the %q slider of the speaker in %s.", s.Subject, s.Unit),
		Fields: []domain.FieldDefinition{
			entityField(),
			{
				Name: s.Field,
				Description: fmt.Sprintf("Value of the slider (%s to %s with steps of %s)",
					num(s.Min), num(s.Max), num(s.Step)),
				Example: domain.MustNumber(s.Example),
			},
		},
	}
}

func num(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func entityField() domain.FieldDefinition {
	return domain.FieldDefinition{
		Name:        domain.FieldEntityID,
		Description: "The entity_id of the KEF speaker.",
		Example:     domain.StringValue(ExampleEntity),
	}
}

// Sliders lists the calibration sliders exposed by the speaker.
func Sliders() []Slider {
	return []Slider{
		{Action: "set_desk_db", Field: "db", Subject: "Desk mode", Unit: "dB", Min: -6, Max: 0, Step: 0.5, Example: "0.0"},
		{Action: "set_wall_db", Field: "db", Subject: "Wall mode", Unit: "dB", Min: -6, Max: 0, Step: 0.5, Example: "0.0"},
		{Action: "set_treble_db", Field: "db", Subject: "Treble", Unit: "dB", Min: -2, Max: 2, Step: 0.5, Example: "0.0"},
		{Action: "set_high_hz", Field: "hz", Subject: "High-pass mode", Unit: "Hz", Min: 50, Max: 120, Step: 5, Example: "95"},
		{Action: "set_low_hz", Field: "hz", Subject: "Sub out low-pass frequency", Unit: "Hz", Min: 40, Max: 250, Step: 5, Example: "80"},
		{Action: "set_sub_db", Field: "db", Subject: "Sub gain", Unit: "dB", Min: -10, Max: 10, Step: 1, Example: "0"},
	}
}

func toggle(name, label string) domain.FieldDefinition {
	return domain.FieldDefinition{
		Name:        name,
		Description: fmt.Sprintf("%q (true or false)", label),
		Example:     domain.BoolValue(true),
	}
}

// SetMode returns the definition of the mode toggle action.
func SetMode() domain.ActionDefinition {
	return domain.ActionDefinition{
		Name:        "set_mode",
		Description: "Set the mode of the speaker.",
		Fields: []domain.FieldDefinition{
			entityField(),
			toggle("desk_mode", "Desk mode"),
			toggle("wall_mode", "Wall mode"),
			toggle("phase_correction", "Phase correction"),
			toggle("high_pass", "High-pass mode"),
			{
				Name:        "sub_polarity",
				Description: `"Sub polarity" ("-" or "+")`,
				Example:     domain.StringValue("+"),
			},
			{
				Name:        "bass_extension",
				Description: `"Bass extension" selector ("Less", "Standard", or "Extra")`,
				Example:     domain.StringValue("Extra"),
			},
		},
	}
}

// Definitions returns every action, set_mode first, then sliders in declaration order.
func Definitions() []domain.ActionDefinition {
	defs := []domain.ActionDefinition{SetMode()}
	for _, s := range Sliders() {
		defs = append(defs, s.Definition())
	}
	return defs
}

// Document renders Definitions in the persisted descriptor shape.
func Document() ([]byte, error) {
	return registry.Encode(Definitions())
}

// Embedded returns a copy of the checked-in services.yaml.
func Embedded() []byte {
	return append([]byte(nil), embedded...)
}
