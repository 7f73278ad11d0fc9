package memory

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogDispatcher(t *testing.T) {
	d := NewLogDispatcher(nil)
	args := map[string]any{"entity_id": "media_player.kef_lsx", "hz": 95.0}

	require.NoError(t, d.Dispatch(context.Background(), "set_high_hz", args))
	args["hz"] = 100.0

	calls := d.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "set_high_hz", calls[0].Action)
	assert.Equal(t, 95.0, calls[0].Args["hz"])
}

func TestLogDispatcher_Cancelled(t *testing.T) {
	d := NewLogDispatcher(nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.Error(t, d.Dispatch(ctx, "set_mode", nil))
	assert.Empty(t, d.Calls())
}

func TestLogDispatcher_HistoryIsBounded(t *testing.T) {
	d := NewLogDispatcher(nil, WithHistory(3))
	for i := range 10 {
		require.NoError(t, d.Dispatch(context.Background(), fmt.Sprintf("call_%d", i), nil))
	}

	calls := d.Calls()
	require.Len(t, calls, 3)
	assert.Equal(t, "call_7", calls[0].Action)
	assert.Equal(t, "call_9", calls[2].Action)
}

func TestLogDispatcher_DefaultHistory(t *testing.T) {
	d := NewLogDispatcher(nil)
	for range DefaultHistory + 5 {
		require.NoError(t, d.Dispatch(context.Background(), "set_mode", nil))
	}
	assert.Len(t, d.Calls(), DefaultHistory)
}

func TestLogDispatcher_RecordingDisabled(t *testing.T) {
	d := NewLogDispatcher(nil, WithHistory(0))
	require.NoError(t, d.Dispatch(context.Background(), "set_mode", map[string]any{"desk_mode": true}))
	assert.Empty(t, d.Calls())
}
