package openapi

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/aretw0/kefschema/pkg/catalog"
	"github.com/aretw0/kefschema/pkg/domain"
	"github.com/aretw0/kefschema/pkg/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadCatalog(t *testing.T) *registry.Registry {
	t.Helper()
	reg, err := registry.New(catalog.Definitions())
	require.NoError(t, err)
	return reg
}

func TestBuild_Validates(t *testing.T) {
	doc := Build(loadCatalog(t), "1.2.3")

	require.NoError(t, doc.Validate(context.Background()))
	assert.Equal(t, "1.2.3", doc.Info.Version)
	assert.Equal(t, 7, doc.Paths.Len())
}

func TestBuild_DefaultVersion(t *testing.T) {
	doc := Build(loadCatalog(t), "")
	assert.Equal(t, "dev", doc.Info.Version)
}

func TestBuild_SliderBounds(t *testing.T) {
	doc := Build(loadCatalog(t), "test")

	item := doc.Paths.Find(Path("set_high_hz"))
	require.NotNil(t, item)
	require.NotNil(t, item.Post)
	assert.Equal(t, "set_high_hz", item.Post.OperationID)

	body := item.Post.RequestBody.Value.Content.Get("application/json").Schema.Value
	assert.Equal(t, []string{"entity_id"}, body.Required)

	hz := body.Properties["hz"].Value
	require.NotNil(t, hz.Min)
	require.NotNil(t, hz.Max)
	require.NotNil(t, hz.MultipleOf)
	assert.Equal(t, 50.0, *hz.Min)
	assert.Equal(t, 120.0, *hz.Max)
	assert.Equal(t, 5.0, *hz.MultipleOf)
	assert.Equal(t, 95.0, hz.Example)
	assert.Contains(t, hz.Description, "Unit: Hz.")
}

func TestFieldSchema_OffGridMinOmitsMultipleOf(t *testing.T) {
	def := domain.ActionDefinition{
		Name:        "set_level",
		Description: "Set a level.",
		Fields: []domain.FieldDefinition{
			{Name: "level", Description: "Level (1 to 10 with steps of 2)", Example: domain.MustNumber("3")},
		},
	}.Infer()

	s := FieldSchema(def.Fields[0])
	require.NotNil(t, s.Min)
	assert.Equal(t, 1.0, *s.Min)
	assert.Nil(t, s.MultipleOf)
	assert.NoError(t, s.VisitJSON(3.0))
}

func TestBuild_SetModeEnums(t *testing.T) {
	doc := Build(loadCatalog(t), "test")

	body := doc.Paths.Find(Path("set_mode")).Post.RequestBody.Value.Content.Get("application/json").Schema.Value

	assert.Equal(t, []any{"-", "+"}, body.Properties["sub_polarity"].Value.Enum)
	assert.Equal(t, []any{"Less", "Standard", "Extra"}, body.Properties["bass_extension"].Value.Enum)
	assert.Equal(t, true, body.Properties["desk_mode"].Value.Example)
	assert.Equal(t, EntityPattern, body.Properties["entity_id"].Value.Pattern)
}

func TestBuild_JSON(t *testing.T) {
	data, err := json.Marshal(Build(loadCatalog(t), "test"))
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, "3.0.3", raw["openapi"])
	assert.Contains(t, raw["paths"], "/services/set_desk_db")
}
