/*
Package domain contains the entity model of the KEF service-schema registry.

It defines what an invocable speaker action looks like and how its parameters
are documented. The package is pure and free of I/O; loaders, renderers and
validators live in sibling packages.

# Key Entities

  - ActionDefinition: a named service (e.g. "set_mode") with a description and its fields.
  - FieldDefinition: a named parameter with a description and an optional example.
  - Value: a tagged variant holding an example as bool, number or string.
  - Bounds: the (min, max, step) triple of a slider, parsed from prose.
*/
package domain
