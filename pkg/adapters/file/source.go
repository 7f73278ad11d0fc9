package file

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// DefaultName is the conventional descriptor file name.
const DefaultName = "services.yaml"

// Source implements ports.Source by reading a descriptor from the local filesystem.
type Source struct {
	Path string
}

// New creates a Source for path.
// If path is a directory, DefaultName inside it is used.
func New(path string) *Source {
	if path == "" {
		path = DefaultName
	}
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		path = filepath.Join(path, DefaultName)
	}
	return &Source{Path: path}
}

// Read returns the file contents.
func (s *Source) Read(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("reading descriptor: %w", err)
	}
	return data, nil
}

// Name returns the file path.
func (s *Source) Name() string { return s.Path }
