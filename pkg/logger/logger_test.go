package logger

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tracectx "github.com/arcentrix/workpipe/pkg/trace/context"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// TestSetDefaults verifies default logger configuration.
func TestSetDefaults(t *testing.T) {
	conf := SetDefaults()
	if conf.Output != "stdout" {
		t.Fatalf("expected output stdout, got %s", conf.Output)
	}
	if conf.Level != "INFO" {
		t.Fatalf("expected level INFO, got %s", conf.Level)
	}
	if conf.Filename == "" {
		t.Fatal("expected default filename to be set")
	}
}

// TestConfValidate verifies config validation and normalization.
func TestConfValidate(t *testing.T) {
	conf := &Conf{Output: "file", Path: "/tmp/test-logger"}
	if err := conf.Validate(); err != nil {
		t.Fatalf("validate should pass: %v", err)
	}
	if conf.RotateSize <= 0 || conf.RotateNum <= 0 || conf.KeepHours <= 0 {
		t.Fatal("expected file rotation values to be auto-filled")
	}
}

// TestNewFileOutput verifies file output works with slog backend.
func TestNewFileOutput(t *testing.T) {
	tmpDir := t.TempDir()
	conf := &Conf{
		Output:   "file",
		Path:     tmpDir,
		Filename: "logger.log",
		Level:    "INFO",
	}

	l, err := New(conf)
	if err != nil {
		t.Fatalf("New() should not fail: %v", err)
	}

	l.Info("file output test")
	logFile := filepath.Join(tmpDir, "logger.log")
	content, err := os.ReadFile(logFile)
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	if len(content) == 0 {
		t.Fatal("expected log file content to be non-empty")
	}
}

// TestParseLogLevel verifies log-level parsing behavior.
func TestParseLogLevel(t *testing.T) {
	if parseLogLevel("debug") != slog.LevelDebug {
		t.Fatal("expected DEBUG to map to slog.LevelDebug")
	}
	if parseLogLevel("warn") != slog.LevelWarn {
		t.Fatal("expected WARN to map to slog.LevelWarn")
	}
	if parseLogLevel("unknown") != slog.LevelInfo {
		t.Fatal("expected unknown level to map to slog.LevelInfo")
	}
}

// TestSpanHandlerWithContext verifies trace fields are injected from context.
func TestSpanHandlerWithContext(t *testing.T) {
	var buf bytes.Buffer
	h := newSpanHandler(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	l := slog.New(h)

	tp := sdktrace.NewTracerProvider()
	defer func() {
		_ = tp.Shutdown(context.Background())
	}()
	ctx, span := tp.Tracer("logger-test").Start(context.Background(), "span")
	l.InfoContext(ctx, "hello")
	span.End()

	logLine := buf.String()
	if !strings.Contains(logLine, "trace_id=") {
		t.Fatalf("expected trace_id in log line: %s", logLine)
	}
	if !strings.Contains(logLine, "span_id=") {
		t.Fatalf("expected span_id in log line: %s", logLine)
	}
}

// TestSpanHandlerGoroutineFallback verifies worker-style logging picks
// up the goroutine-local span when no context is threaded through.
func TestSpanHandlerGoroutineFallback(t *testing.T) {
	var buf bytes.Buffer
	h := newSpanHandler(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	l := slog.New(h)

	tp := sdktrace.NewTracerProvider()
	defer func() {
		_ = tp.Shutdown(context.Background())
	}()
	ctx, span := tp.Tracer("logger-test").Start(context.Background(), "fallback-span")
	tracectx.SetContext(ctx)
	defer tracectx.ClearContext()

	l.Info("hello without explicit context")
	span.End()

	logLine := buf.String()
	if !strings.Contains(logLine, "trace_id=") {
		t.Fatalf("expected trace_id in fallback log line: %s", logLine)
	}
}

// TestComponentScope verifies component-scoped loggers tag records.
func TestComponentScope(t *testing.T) {
	var buf bytes.Buffer
	base := slog.New(newSpanHandler(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	l := &Logger{Logger: base}

	l.Component("dispatcher").Infow("dispatcher started", "workers", 4)

	logLine := buf.String()
	if !strings.Contains(logLine, "component=dispatcher") {
		t.Fatalf("expected component field in log line: %s", logLine)
	}
	if !strings.Contains(logLine, "workers=4") {
		t.Fatalf("expected structured field in log line: %s", logLine)
	}
}
