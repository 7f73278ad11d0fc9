package catalog_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/kefschema/pkg/catalog"
	"github.com/aretw0/kefschema/pkg/domain"
	"github.com/aretw0/kefschema/pkg/registry"
)

func TestEmbeddedMatchesDefinitions(t *testing.T) {
	fromEmbedded, err := registry.Load(catalog.Embedded())
	require.NoError(t, err)

	fromGo, err := registry.New(catalog.Definitions())
	require.NoError(t, err)

	doc, err := catalog.Document()
	require.NoError(t, err)
	fromDocument, err := registry.Load(doc)
	require.NoError(t, err)

	if diff := cmp.Diff(fromGo.Actions(), fromEmbedded.Actions()); diff != "" {
		t.Errorf("embedded services.yaml drifted from catalog (-go +yaml):\n%s", diff)
	}
	assert.True(t, fromGo.Equal(fromDocument), "rendered document should load back to the same registry")
}

func TestSliders_UniformShape(t *testing.T) {
	sliders := catalog.Sliders()
	require.Len(t, sliders, 6)

	for _, s := range sliders {
		def := s.Definition().Infer()
		assert.Equal(t, []string{domain.FieldEntityID, s.Field}, def.FieldNames(), s.Action)

		f, ok := def.Field(s.Field)
		require.True(t, ok)
		require.NotNil(t, f.Bounds, s.Action)
		assert.Equal(t, domain.Bounds{Min: s.Min, Max: s.Max, Step: s.Step}, *f.Bounds, s.Action)
		assert.Equal(t, s.Unit, f.Unit, s.Action)
		assert.True(t, f.Bounds.Contains(f.Example.Number), "%s example within bounds", s.Action)
		assert.True(t, f.Bounds.OnStep(f.Example.Number), "%s example on step", s.Action)
	}
}

func TestDefinitions_Names(t *testing.T) {
	var names []string
	for _, d := range catalog.Definitions() {
		names = append(names, d.Name)
	}
	assert.Equal(t, []string{
		"set_mode", "set_desk_db", "set_wall_db", "set_treble_db",
		"set_high_hz", "set_low_hz", "set_sub_db",
	}, names)
}

func TestEmbeddedIsCopy(t *testing.T) {
	a := catalog.Embedded()
	a[0] = 'X'
	assert.NotEqual(t, a[0], catalog.Embedded()[0])
}
