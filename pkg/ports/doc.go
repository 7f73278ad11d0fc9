/*
Package ports defines the driven ports (interfaces) of the service-schema registry.

These interfaces decouple the registry from where its definitions come from and
from what the platform does with them.

# Key Interfaces

  - Source: yields the raw descriptor document (e.g., from a file or memory).
  - DefinitionStore: publishes loaded action definitions for other processes.
  - Dispatcher: the device control client that actually performs an action.
*/
package ports
