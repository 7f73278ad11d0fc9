package schema

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/aretw0/kefschema/pkg/domain"
)

func deskDefinition() domain.ActionDefinition {
	return domain.ActionDefinition{
		Name:        "set_desk_db",
		Description: `Set the "Desk mode" slider of the speaker in dB.`,
		Fields: []domain.FieldDefinition{
			{Name: "entity_id", Description: "The entity_id of the KEF speaker.", Example: domain.StringValue("media_player.kef_lsx")},
			{Name: "db", Description: "Value of the slider (-6 to 0 with steps of 0.5)", Example: domain.MustNumber("0.0")},
		},
	}.Infer()
}

func modeDefinition() domain.ActionDefinition {
	return domain.ActionDefinition{
		Name:        "set_mode",
		Description: "Set the mode of the speaker.",
		Fields: []domain.FieldDefinition{
			{Name: "entity_id", Description: "The entity_id of the KEF speaker."},
			{Name: "desk_mode", Description: `"Desk mode" (true or false)`, Example: domain.BoolValue(true)},
			{Name: "sub_polarity", Description: `"Sub polarity" ("-" or "+")`, Example: domain.StringValue("+")},
		},
	}.Infer()
}

func TestValidateFields_UndefinedField(t *testing.T) {
	err := ValidateFields(Schema{"db": Float()}, map[string]any{}, "hz")
	errs := FieldErrors(err)
	if len(errs) != 1 || errs[0].Reason != "not defined in schema" {
		t.Errorf("unexpected errors: %v", err)
	}
}

func TestForAction(t *testing.T) {
	s := ForAction(modeDefinition())

	want := map[string]string{
		"entity_id":    "entity(media_player)",
		"desk_mode":    "bool",
		"sub_polarity": "enum(-|+)",
	}
	for k, name := range want {
		if s[k] == nil || s[k].Name() != name {
			t.Errorf("ForAction()[%s] = %v, want %s", k, s[k], name)
		}
	}
}

func TestValidateInvocation_Slider(t *testing.T) {
	def := deskDefinition()

	tests := []struct {
		name     string
		data     map[string]any
		wantKeys []string
	}{
		{"valid", map[string]any{"entity_id": "media_player.kef_lsx", "db": -3.5}, nil},
		{"optional value omitted", map[string]any{"entity_id": "media_player.kef_lsx"}, nil},
		{"missing entity", map[string]any{"db": -3.5}, []string{"entity_id"}},
		{"out of range", map[string]any{"entity_id": "media_player.kef_lsx", "db": 1.0}, []string{"db"}},
		{"off step", map[string]any{"entity_id": "media_player.kef_lsx", "db": -3.25}, []string{"db"}},
		{"unknown field", map[string]any{"entity_id": "media_player.kef_lsx", "hz": 95}, []string{"hz"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateInvocation(def, tt.data)
			if tt.wantKeys == nil {
				if err != nil {
					t.Fatalf("ValidateInvocation() error = %v, want nil", err)
				}
				return
			}
			errs := FieldErrors(err)
			if len(errs) != len(tt.wantKeys) {
				t.Fatalf("ValidateInvocation() = %v, want keys %v", err, tt.wantKeys)
			}
			for i, k := range tt.wantKeys {
				if errs[i].Key != k {
					t.Errorf("error %d key = %q, want %q", i, errs[i].Key, k)
				}
			}
		})
	}
}

func TestValidateInvocation_ErrorShape(t *testing.T) {
	err := ValidateInvocation(modeDefinition(), map[string]any{
		"entity_id":    "media_player.kef_lsx",
		"desk_mode":    "yes",
		"sub_polarity": "~",
	})

	var aggr *AggregateError
	if !errors.As(err, &aggr) {
		t.Fatalf("error should be *AggregateError, got %T", err)
	}
	if aggr.Action != "set_mode" {
		t.Errorf("Action = %q", aggr.Action)
	}
	if !strings.HasPrefix(err.Error(), "set_mode: 2 validation errors") {
		t.Errorf("Error() = %q", err.Error())
	}

	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Error("AggregateError should unwrap to *ValidationError")
	}
}

func TestSchemaMarshalJSON(t *testing.T) {
	data, err := json.Marshal(ForAction(deskDefinition()))
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if string(data) != `{"db":"number(-6:0:0.5)","entity_id":"entity(media_player)"}` {
		t.Errorf("Marshal() = %s", data)
	}

	data, err = json.Marshal(ForAction(modeDefinition()))
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if string(data) != `{"desk_mode":"bool","entity_id":"entity(media_player)","sub_polarity":"enum(-|+)"}` {
		t.Errorf("Marshal() = %s", data)
	}

	if _, err := json.Marshal(Schema{"db": nil}); err == nil {
		t.Error("Marshal() should fail on a nil type")
	}
}
