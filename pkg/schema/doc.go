// Package schema validates speaker service invocations against their definitions.
//
// It defines a small type system (string, float, bool) extended
// with the value domains found in the KEF descriptor: bounded numeric sliders,
// enumerated choices and entity references. A Schema maps field names to types.
//
// Derive a schema from a registry definition and validate a payload:
//
//	def, _ := reg.Describe("set_desk_db")
//	err := schema.ValidateInvocation(def, map[string]any{
//	    "entity_id": "media_player.kef_lsx",
//	    "db":        -1.5,
//	})
//
// Schemas serialize as plain maps of type names, as served by the HTTP adapter:
//
//	{"entity_id": "entity(media_player)", "db": "number(-6:0:0.5)", "sub_polarity": "enum(-|+)"}
//
// The registry itself never enforces ranges; this package plays the external
// validator's role for adapters that need it.
package schema
