package ports

import (
	"context"

	"github.com/aretw0/kefschema/pkg/domain"
)

// DefinitionStore defines the interface for publishing action definitions
// so that other platform processes can read them without loading the descriptor.
type DefinitionStore interface {
	// Save persists the definition under its name, replacing any previous one.
	Save(ctx context.Context, def domain.ActionDefinition) error

	// Load retrieves a definition by action name.
	// Returns an error matching domain.ErrNotFound if it does not exist.
	Load(ctx context.Context, name string) (domain.ActionDefinition, error)

	// Delete removes a definition. Deleting a missing name is not an error.
	Delete(ctx context.Context, name string) error

	// List returns the names of all stored definitions, sorted.
	List(ctx context.Context) ([]string, error)
}
