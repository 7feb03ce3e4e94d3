package debug

import (
	"context"
	"log/slog"
	"os"
	"sync"
)

var (
	mu     sync.Mutex
	path   = "/tmp/llamadeck-debug.log"
	target slog.Handler

	logger = slog.New(handler{})
)

// SetPath points the debug log at a new file. Loggers already handed out by
// GetLogger pick up the new destination on their next record.
func SetPath(p string) {
	if p == "" {
		return
	}
	mu.Lock()
	defer mu.Unlock()
	path = p
	target = nil
}

// GetLogger returns the shared debug logger.
func GetLogger() *slog.Logger {
	return logger
}

// resolve opens the log file on first use. Packages grab the logger at init,
// before main has parsed the configured path, so the file must not be bound
// any earlier than the first record.
func resolve() slog.Handler {
	mu.Lock()
	defer mu.Unlock()
	if target == nil {
		f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
		if err != nil {
			target = slog.DiscardHandler
			return target
		}
		target = slog.NewTextHandler(f, &slog.HandlerOptions{
			Level:     slog.LevelDebug,
			AddSource: true,
		})
	}
	return target
}

// handler forwards every call to the currently resolved destination.
type handler struct{}

func (handler) Enabled(ctx context.Context, level slog.Level) bool {
	return resolve().Enabled(ctx, level)
}

func (handler) Handle(ctx context.Context, record slog.Record) error {
	return resolve().Handle(ctx, record)
}

func (handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return resolve().WithAttrs(attrs)
}

func (handler) WithGroup(name string) slog.Handler {
	return resolve().WithGroup(name)
}
