package ports

import "context"

// Source defines how the registry retrieves its static definitions.
type Source interface {
	// Read returns the raw descriptor document.
	Read(ctx context.Context) ([]byte, error)

	// Name identifies the source in logs and errors (e.g. a file path).
	Name() string
}
