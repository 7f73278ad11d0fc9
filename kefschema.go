package kefschema

import (
	"context"

	"github.com/aretw0/kefschema/pkg/adapters/file"
	"github.com/aretw0/kefschema/pkg/adapters/memory"
	"github.com/aretw0/kefschema/pkg/catalog"
	"github.com/aretw0/kefschema/pkg/ports"
	"github.com/aretw0/kefschema/pkg/registry"
)

// Version is the release of the module, overridden at build time with
// -ldflags "-X github.com/aretw0/kefschema.Version=...".
var Version = "0.1.0"

// BuiltinName names the embedded catalog source.
const BuiltinName = "builtin:services.yaml"

// Source returns the descriptor source for path.
// An empty path selects the embedded catalog.
func Source(path string) ports.Source {
	if path == "" {
		return memory.NewSource(BuiltinName, catalog.Embedded())
	}
	return file.New(path)
}

// Open loads the descriptor at path, or the embedded catalog when path is empty.
func Open(ctx context.Context, path string, opts ...registry.Option) (*registry.Registry, error) {
	return registry.LoadSource(ctx, Source(path), opts...)
}
