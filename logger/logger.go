package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
	"sync/atomic"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

const operationKey contextKey = "operation"

type operation struct {
	name string
	id   uint64
}

// Defaults used when Init has not been called.
const (
	DefaultLevel  = "ERROR"
	DefaultFormat = "text"
)

var (
	logger *slog.Logger
	once   sync.Once
	nextID atomic.Uint64
)

// Init initializes the global logger with the given level and format
// ("text" or "json"). Only the first call has any effect.
func Init(level, format string) {
	once.Do(func() {
		logger = newLogger(os.Stderr, level, format)
	})
}

func newLogger(w io.Writer, level, format string) *slog.Logger {
	var logLevel slog.Level
	switch strings.ToUpper(level) {
	case "DEBUG":
		logLevel = slog.LevelDebug
	case "INFO":
		logLevel = slog.LevelInfo
	case "WARN":
		logLevel = slog.LevelWarn
	case "ERROR":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{
		Level: logLevel,
	}

	var handler slog.Handler
	if strings.EqualFold(format, "json") {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(&operationHandler{handler})
}

// GetLogger returns the global logger, initializing it with DefaultLevel
// and DefaultFormat if Init has not run yet.
func GetLogger() *slog.Logger {
	Init(DefaultLevel, DefaultFormat)
	return logger
}

// operationHandler tags every record logged with a context carrying an
// operation.
type operationHandler struct {
	slog.Handler
}

func (h *operationHandler) Handle(ctx context.Context, r slog.Record) error {
	if op, ok := ctx.Value(operationKey).(operation); ok {
		r.AddAttrs(slog.String("operation", op.name), slog.Uint64("op_id", op.id))
	}
	return h.Handler.Handle(ctx, r)
}

func (h *operationHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &operationHandler{h.Handler.WithAttrs(attrs)}
}

func (h *operationHandler) WithGroup(name string) slog.Handler {
	return &operationHandler{h.Handler.WithGroup(name)}
}

// WithOperation returns a new context tagged with an operation name and a
// fresh process-unique ID.
func WithOperation(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, operationKey, operation{name: name, id: nextID.Add(1)})
}

// OperationFromContext extracts the operation name and ID from context.
func OperationFromContext(ctx context.Context) (string, uint64) {
	if op, ok := ctx.Value(operationKey).(operation); ok {
		return op.name, op.id
	}
	return "", 0
}

// LogAttrs logs a message with slog.Attr attributes. The handler adds the
// context's operation, if any.
func LogAttrs(ctx context.Context, level slog.Level, msg string, attrs ...slog.Attr) {
	GetLogger().LogAttrs(ctx, level, msg, attrs...)
}
