package dto_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/kefschema/internal/dto"
)

func TestDecodeAction(t *testing.T) {
	raw := map[string]any{
		"description": "Set the mode of the speaker.",
		"fields": map[string]any{
			"desk_mode": map[string]any{
				"description": `"Desk mode" (true or false)`,
				"example":     true,
			},
		},
	}

	doc, err := dto.DecodeAction(raw)
	require.NoError(t, err)
	assert.Equal(t, "Set the mode of the speaker.", doc.Description)
	require.Contains(t, doc.Fields, "desk_mode")
	assert.Equal(t, true, doc.Fields["desk_mode"].Example)
}

func TestDecodeAction_UnknownKey(t *testing.T) {
	_, err := dto.DecodeAction(map[string]any{
		"description": "x",
		"target":      "y",
	})
	assert.Error(t, err)
}
