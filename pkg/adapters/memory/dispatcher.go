package memory

import (
	"context"
	"log/slog"
	"maps"
	"sync"

	"github.com/aretw0/kefschema/internal/logging"
)

// Call is one dispatched invocation.
type Call struct {
	Action string
	Args   map[string]any
}

// DefaultHistory is how many recent calls a LogDispatcher keeps.
const DefaultHistory = 100

// LogDispatcher implements ports.Dispatcher without a device behind it.
// It logs every call and keeps the most recent ones, which is what the CLI
// uses when no speaker transport is wired.
type LogDispatcher struct {
	logger  *slog.Logger
	history int

	mu    sync.Mutex
	calls []Call
}

// DispatcherOption configures a LogDispatcher.
type DispatcherOption func(*LogDispatcher)

// WithHistory caps the recorded calls at n, dropping the oldest first.
// n <= 0 disables recording.
func WithHistory(n int) DispatcherOption {
	return func(d *LogDispatcher) {
		d.history = n
	}
}

// NewLogDispatcher creates a dispatcher that logs to logger (nil discards).
func NewLogDispatcher(logger *slog.Logger, opts ...DispatcherOption) *LogDispatcher {
	if logger == nil {
		logger = logging.NewNop()
	}
	d := &LogDispatcher{logger: logger, history: DefaultHistory}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Dispatch records the call.
func (d *LogDispatcher) Dispatch(ctx context.Context, action string, args map[string]any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	d.record(Call{Action: action, Args: maps.Clone(args)})

	d.logger.Info("service call", "action", action, "args", args)
	return nil
}

func (d *LogDispatcher) record(c Call) {
	if d.history <= 0 {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.calls) >= d.history {
		n := copy(d.calls, d.calls[len(d.calls)-d.history+1:])
		d.calls = d.calls[:n]
	}
	d.calls = append(d.calls, c)
}

// Calls returns the recorded calls in dispatch order, oldest first.
func (d *LogDispatcher) Calls() []Call {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]Call(nil), d.calls...)
}
