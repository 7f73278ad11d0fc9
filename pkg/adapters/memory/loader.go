package memory

import (
	"context"
)

// Source implements ports.Source over an in-memory document.
type Source struct {
	name string
	data []byte
}

// NewSource creates a Source serving a copy of data.
func NewSource(name string, data []byte) *Source {
	if name == "" {
		name = "memory"
	}
	return &Source{
		name: name,
		data: append([]byte(nil), data...),
	}
}

// Read returns a copy of the document.
func (s *Source) Read(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return append([]byte(nil), s.data...), nil
}

// Name returns the label given at construction.
func (s *Source) Name() string { return s.name }
