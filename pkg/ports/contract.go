package ports

import (
	"context"
	"testing"

	"github.com/aretw0/kefschema/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func contractDefinition(name string) domain.ActionDefinition {
	return domain.ActionDefinition{
		Name:        name,
		Description: `Set the "Sub gain" slider of the speaker in dB.`,
		Fields: []domain.FieldDefinition{
			{Name: domain.FieldEntityID, Description: "The entity_id of the KEF speaker.", Example: domain.StringValue("media_player.kef_lsx")},
			{Name: "db", Description: "Value of the slider (-10 to 10 with steps of 1)", Example: domain.MustNumber("0")},
		},
	}.Infer()
}

// RunDefinitionStoreContract runs a suite of tests to verify that a DefinitionStore
// implementation adheres to the defined interface contract.
func RunDefinitionStoreContract(t *testing.T, store DefinitionStore) {
	ctx := context.Background()

	t.Run("Save and Load", func(t *testing.T) {
		def := contractDefinition("contract_set_sub_db")

		err := store.Save(ctx, def)
		require.NoError(t, err, "Save should not return error")

		loaded, err := store.Load(ctx, def.Name)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, def, loaded)
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "contract_missing")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		def := contractDefinition("contract_delete")
		require.NoError(t, store.Save(ctx, def))

		err := store.Delete(ctx, def.Name)
		require.NoError(t, err, "Delete should not return error")

		_, err = store.Load(ctx, def.Name)
		assert.ErrorIs(t, err, domain.ErrNotFound, "Load after Delete should return ErrNotFound")

		assert.NoError(t, store.Delete(ctx, def.Name), "Deleting twice is not an error")
	})

	t.Run("List", func(t *testing.T) {
		a := contractDefinition("contract_list_a")
		b := contractDefinition("contract_list_b")
		require.NoError(t, store.Save(ctx, b))
		require.NoError(t, store.Save(ctx, a))

		defer func() {
			_ = store.Delete(ctx, a.Name)
			_ = store.Delete(ctx, b.Name)
		}()

		names, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, names, a.Name)
		assert.Contains(t, names, b.Name)
		assert.IsNonDecreasing(t, names)
	})
}
