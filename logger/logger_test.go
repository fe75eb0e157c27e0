package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"sync"
	"testing"
)

func TestNewLoggerLevels(t *testing.T) {
	tests := []struct {
		level   string
		debug   bool
		info    bool
		warning bool
	}{
		{level: "DEBUG", debug: true, info: true, warning: true},
		{level: "info", info: true, warning: true},
		{level: "WARN", warning: true},
		{level: "ERROR"},
		{level: "bogus", info: true, warning: true},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			var buf bytes.Buffer
			l := newLogger(&buf, tt.level, "text")
			ctx := context.Background()
			if got := l.Enabled(ctx, slog.LevelDebug); got != tt.debug {
				t.Fatalf("debug enabled = %v, want %v", got, tt.debug)
			}
			if got := l.Enabled(ctx, slog.LevelInfo); got != tt.info {
				t.Fatalf("info enabled = %v, want %v", got, tt.info)
			}
			if got := l.Enabled(ctx, slog.LevelWarn); got != tt.warning {
				t.Fatalf("warn enabled = %v, want %v", got, tt.warning)
			}
		})
	}
}

func TestOperationAttrs(t *testing.T) {
	var buf bytes.Buffer
	l := newLogger(&buf, "INFO", "json")

	ctx := WithOperation(context.Background(), "encrypt")
	name, id := OperationFromContext(ctx)
	if name != "encrypt" || id == 0 {
		t.Fatalf("OperationFromContext() = %q, %d", name, id)
	}

	l.With("file", "in.hex").LogAttrs(ctx, slog.LevelInfo, "done", slog.Int("bytes", 32))

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("json.Unmarshal(%q) error = %v", buf.String(), err)
	}
	if rec["operation"] != "encrypt" || rec["file"] != "in.hex" || rec["bytes"] != float64(32) {
		t.Fatalf("record = %v", rec)
	}
	if rec["op_id"] != float64(id) {
		t.Fatalf("op_id = %v, want %d", rec["op_id"], id)
	}
}

func TestOperationIDsAreUnique(t *testing.T) {
	_, a := OperationFromContext(WithOperation(context.Background(), "x"))
	_, b := OperationFromContext(WithOperation(context.Background(), "x"))
	if a == b {
		t.Fatalf("operation IDs collide: %d", a)
	}
	if name, id := OperationFromContext(context.Background()); name != "" || id != 0 {
		t.Fatalf("OperationFromContext(empty) = %q, %d", name, id)
	}
}

func TestTextFormat(t *testing.T) {
	var buf bytes.Buffer
	l := newLogger(&buf, "INFO", "text")
	l.InfoContext(WithOperation(context.Background(), "digest"), "hashed")
	if out := buf.String(); !strings.Contains(out, "operation=digest") || !strings.Contains(out, "msg=hashed") {
		t.Fatalf("text output = %q", out)
	}
}

func TestOperationAttrsAppearOnce(t *testing.T) {
	var buf bytes.Buffer
	l := newLogger(&buf, "INFO", "text")
	ctx := WithOperation(context.Background(), "encrypt")

	l.InfoContext(ctx, "plain")
	l.With("file", "in.hex").InfoContext(ctx, "derived")
	l.LogAttrs(ctx, slog.LevelInfo, "attrs", slog.Int("bytes", 32))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3:\n%s", len(lines), buf.String())
	}
	for _, line := range lines {
		for _, key := range []string{"operation=", "op_id="} {
			if n := strings.Count(line, key); n != 1 {
				t.Fatalf("%q appears %d times in %q, want 1", key, n, line)
			}
		}
	}
}

func TestGetLoggerDefaults(t *testing.T) {
	var wg sync.WaitGroup
	loggers := make([]*slog.Logger, 8)
	for i := range loggers {
		wg.Go(func() { loggers[i] = GetLogger() })
	}
	wg.Wait()
	for _, l := range loggers {
		if l != loggers[0] || l == nil {
			t.Fatal("GetLogger() returned different loggers")
		}
	}

	ctx := context.Background()
	if !loggers[0].Enabled(ctx, slog.LevelError) || loggers[0].Enabled(ctx, slog.LevelWarn) {
		t.Fatalf("default logger level does not match DefaultLevel %q", DefaultLevel)
	}
}
