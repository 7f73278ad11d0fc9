package tests

import (
	"context"
	"testing"

	"github.com/aretw0/kefschema/pkg/ports"
)

// SourceContractTest is a reusable test suite that verifies if an adapter complies with ports.Source.
func SourceContractTest(t *testing.T, source ports.Source, want []byte) {
	t.Helper()

	t.Run("Read_Success", func(t *testing.T) {
		got, err := source.Read(context.Background())
		if err != nil {
			t.Fatalf("unexpected error reading %s: %v", source.Name(), err)
		}
		if string(got) != string(want) {
			t.Errorf("content mismatch for %s. got %q, want %q", source.Name(), got, want)
		}
	})

	t.Run("Read_Cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		if _, err := source.Read(ctx); err == nil {
			t.Error("expected error for cancelled context, got nil")
		}
	})

	t.Run("Name", func(t *testing.T) {
		if source.Name() == "" {
			t.Error("expected a non-empty source name")
		}
	})
}
