// Package observability exposes Prometheus collectors for the service-schema registry.
//
// Collectors are registered against an injected prometheus.Registerer so that
// tests and embedders never share global state.
package observability
