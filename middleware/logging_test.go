package middleware

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/felixgeelhaar/arri-go/schema"
)

// mockLogger captures log calls for testing.
type mockLogger struct {
	entries []logEntry
}

type logEntry struct {
	level   string
	message string
	fields  []Field
}

func (l *mockLogger) Info(msg string, fields ...Field) {
	l.entries = append(l.entries, logEntry{level: "info", message: msg, fields: fields})
}

func (l *mockLogger) Error(msg string, fields ...Field) {
	l.entries = append(l.entries, logEntry{level: "error", message: msg, fields: fields})
}

func (l *mockLogger) Debug(msg string, fields ...Field) {
	l.entries = append(l.entries, logEntry{level: "debug", message: msg, fields: fields})
}

func (l *mockLogger) Warn(msg string, fields ...Field) {
	l.entries = append(l.entries, logEntry{level: "warn", message: msg, fields: fields})
}

func fieldValue(fields []Field, key string) (any, bool) {
	for _, f := range fields {
		if f.Key == key {
			return f.Value, true
		}
	}
	return nil, false
}

func TestLogging(t *testing.T) {
	t.Run("logs successful exports", func(t *testing.T) {
		logger := &mockLogger{}

		wrapped := Logging(logger)(okExport)
		_, _ = wrapped(context.Background(), stringType)

		if len(logger.entries) != 1 {
			t.Fatalf("expected 1 log entry, got %d", len(logger.entries))
		}

		entry := logger.entries[0]
		if entry.level != "info" {
			t.Errorf("level = %q, want %q", entry.level, "info")
		}
		if entry.message != "export completed" {
			t.Errorf("message = %q, want %q", entry.message, "export completed")
		}
		if v, _ := fieldValue(entry.fields, "type"); v != "string" {
			t.Errorf("type = %v, want %q", v, "string")
		}
		if v, _ := fieldValue(entry.fields, "form"); v != "type" {
			t.Errorf("form = %v, want %q", v, "type")
		}
		if v, ok := fieldValue(entry.fields, "duration"); !ok {
			t.Error("expected duration field")
		} else if _, isDuration := v.(time.Duration); !isDuration {
			t.Errorf("duration = %T, want time.Duration", v)
		}
	})

	t.Run("logs failed exports at error level", func(t *testing.T) {
		logger := &mockLogger{}

		wrapped := Logging(logger)(func(context.Context, reflect.Type) (schema.Node, error) {
			return nil, errors.New("boom")
		})
		_, err := wrapped(context.Background(), stringType)
		if err == nil {
			t.Fatal("expected error")
		}

		entry := logger.entries[0]
		if entry.level != "error" {
			t.Errorf("level = %q, want %q", entry.level, "error")
		}
		if v, _ := fieldValue(entry.fields, "error"); v != "boom" {
			t.Errorf("error = %v, want %q", v, "boom")
		}
	})

	t.Run("includes request id from context", func(t *testing.T) {
		logger := &mockLogger{}

		ctx := ContextWithRequestID(context.Background(), "req-1")
		_, _ = Logging(logger)(okExport)(ctx, stringType)

		if v, _ := fieldValue(logger.entries[0].fields, "request_id"); v != "req-1" {
			t.Errorf("request_id = %v, want %q", v, "req-1")
		}
	})

	t.Run("nop logger discards", func(t *testing.T) {
		var l Logger = NopLogger{}
		l.Info("x")
		l.Error("x")
		l.Debug("x")
		l.Warn("x")
	})
}

func TestSlogLogger(t *testing.T) {
	var buf bytes.Buffer
	handler := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	logger := NewSlogLogger(slog.New(handler))

	logger.Info("exported", F("type", "User"))
	logger.Debug("recursion", F("ref", "Node"))
	logger.Warn("slow")
	logger.Error("failed", F("error", "boom"))

	out := buf.String()
	for _, want := range []string{
		"level=INFO msg=exported type=User",
		"level=DEBUG msg=recursion ref=Node",
		"level=WARN msg=slow",
		"level=ERROR msg=failed error=boom",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	if NewSlogLogger(nil) == nil {
		t.Error("NewSlogLogger(nil) returned nil")
	}
}
