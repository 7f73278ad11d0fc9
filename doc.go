/*
Package kefschema is the service-schema registry of a KEF wireless speaker integration.

It describes the custom actions ("services") a home-automation platform exposes
for the speaker: set_mode toggles the DSP modes and six calibration sliders
(set_desk_db, set_wall_db, set_treble_db, set_high_hz, set_low_hz, set_sub_db)
adjust their values. Each action documents its fields with a description,
an example value and, in prose, the value domain.

# Usage

Open the built-in catalog, or a descriptor file, and query it:

	reg, err := kefschema.Open(ctx, "")
	if err != nil {
		log.Fatal(err)
	}
	def, err := reg.Describe("set_high_hz")

The registry is immutable once loaded and safe for concurrent reads. It never
talks to the speaker: validated calls are handed to a ports.Dispatcher.

# Surfaces

  - pkg/registry: Load, Describe, ValidateExample.
  - pkg/schema: invocation validation against the documented ranges.
  - pkg/adapters/http: JSON API, OpenAPI document and Prometheus metrics.
  - pkg/adapters/mcp: one MCP tool per action.
  - pkg/adapters/redis: publishes the definitions for other processes.
*/
package kefschema
