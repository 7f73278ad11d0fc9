package ports

import "context"

// Dispatcher is the device control client.
// It receives an already validated invocation and performs it against the speaker.
type Dispatcher interface {
	Dispatch(ctx context.Context, action string, args map[string]any) error
}
