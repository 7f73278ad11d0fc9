package file_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/kefschema/pkg/adapters/file"
	contract "github.com/aretw0/kefschema/pkg/ports/tests"
)

func TestFileSource_Contract(t *testing.T) {
	dir := t.TempDir()
	doc := []byte("set_mode:\n  description: Set the mode of the speaker.\n")
	path := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(path, doc, 0o644))

	contract.SourceContractTest(t, file.New(path), doc)
}

func TestFileSource_DirectoryUsesDefaultName(t *testing.T) {
	dir := t.TempDir()
	doc := []byte("x: 1\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, file.DefaultName), doc, 0o644))

	src := file.New(dir)
	assert.Equal(t, filepath.Join(dir, file.DefaultName), src.Name())

	got, err := src.Read(context.Background())
	require.NoError(t, err)
	assert.Equal(t, doc, got)
}

func TestFileSource_Missing(t *testing.T) {
	src := file.New(filepath.Join(t.TempDir(), "missing.yaml"))
	_, err := src.Read(context.Background())
	assert.ErrorIs(t, err, os.ErrNotExist)
}
