package mcp

import (
	"context"
	"errors"
	"testing"

	"github.com/aretw0/kefschema/pkg/adapters/memory"
	"github.com/aretw0/kefschema/pkg/catalog"
	"github.com/aretw0/kefschema/pkg/domain"
	"github.com/aretw0/kefschema/pkg/registry"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingDispatcher struct{}

func (failingDispatcher) Dispatch(ctx context.Context, action string, args map[string]any) error {
	return errors.New("speaker offline")
}

func newTestServer(t *testing.T) (*Server, *memory.LogDispatcher) {
	t.Helper()
	reg, err := registry.New(catalog.Definitions())
	require.NoError(t, err)
	d := memory.NewLogDispatcher(nil)
	return NewServer(reg, d, "test"), d
}

func textOf(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, res.Content)
	text, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected text content, got %T", res.Content[0])
	return text.Text
}

func TestTools(t *testing.T) {
	s, _ := newTestServer(t)

	tools := s.Tools()
	require.Len(t, tools, 7)
	assert.Equal(t, "set_desk_db", tools[0].Name)

	var mode mcp.Tool
	for _, tool := range tools {
		if tool.Name == "set_mode" {
			mode = tool
		}
	}
	assert.Equal(t, []string{"entity_id"}, mode.InputSchema.Required)
	assert.Len(t, mode.InputSchema.Properties, 7)

	polarity, ok := mode.InputSchema.Properties["sub_polarity"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "string", polarity["type"])
	assert.Equal(t, []string{"-", "+"}, polarity["enum"])
}

func TestNewTool_SliderBounds(t *testing.T) {
	tool := NewTool(catalog.Sliders()[3].Definition().Infer())
	assert.Equal(t, "set_high_hz", tool.Name)

	hz, ok := tool.InputSchema.Properties["hz"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "number", hz["type"])
	assert.Equal(t, 50.0, hz["minimum"])
	assert.Equal(t, 120.0, hz["maximum"])
	assert.Equal(t, 5.0, hz["multipleOf"])
}

func TestNewTool_OffGridMinOmitsMultipleOf(t *testing.T) {
	tool := NewTool(domain.ActionDefinition{
		Name:        "set_level",
		Description: "Set a level.",
		Fields: []domain.FieldDefinition{
			{Name: "level", Description: "Level (1 to 10 with steps of 2)", Example: domain.MustNumber("3")},
		},
	}.Infer())

	level, ok := tool.InputSchema.Properties["level"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, 1.0, level["minimum"])
	assert.NotContains(t, level, "multipleOf")
}

func TestCall_Dispatches(t *testing.T) {
	s, d := newTestServer(t)
	def := catalog.SetMode().Infer()

	res, err := s.call(context.Background(), def, map[string]any{
		"entity_id":      "media_player.kef_lsx",
		"bass_extension": "Less",
		"desk_mode":      true,
	})
	require.NoError(t, err)
	assert.False(t, res.IsError)
	assert.Equal(t, "set_mode dispatched", textOf(t, res))

	calls := d.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "Less", calls[0].Args["bass_extension"])
}

func TestCall_RejectsInvalid(t *testing.T) {
	s, d := newTestServer(t)
	def := catalog.Sliders()[0].Definition().Infer()

	res, err := s.call(context.Background(), def, map[string]any{
		"entity_id": "media_player.kef_lsx",
		"db":        2.0,
	})
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Contains(t, textOf(t, res), "out of range")
	assert.Empty(t, d.Calls())

	res, err = s.call(context.Background(), def, nil)
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Contains(t, textOf(t, res), "required")
}

func TestCall_DispatchFailure(t *testing.T) {
	reg, err := registry.New(catalog.Definitions())
	require.NoError(t, err)
	s := NewServer(reg, failingDispatcher{}, "test")

	res, err := s.call(context.Background(), catalog.SetMode().Infer(), map[string]any{
		"entity_id": "media_player.kef_lsx",
	})
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Contains(t, textOf(t, res), "speaker offline")
}
