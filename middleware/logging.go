package middleware

import (
	"context"
	"reflect"
	"time"

	"github.com/felixgeelhaar/arri-go/schema"
)

// Logger is the interface for structured logging.
type Logger interface {
	Info(msg string, fields ...Field)
	Error(msg string, fields ...Field)
	Debug(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
}

// Field represents a key-value pair for structured logging.
type Field struct {
	Key   string
	Value any
}

// F creates a new Field with the given key and value.
func F(key string, value any) Field {
	return Field{Key: key, Value: value}
}

// Logging returns middleware that logs each export.
// Successful exports are logged at info level, errors at error level.
func Logging(logger Logger) Middleware {
	return func(next ExportFunc) ExportFunc {
		return func(ctx context.Context, t reflect.Type) (schema.Node, error) {
			start := time.Now()

			n, err := next(ctx, t)

			duration := time.Since(start)

			fields := []Field{
				F("type", typeName(t)),
				F("duration", duration),
			}

			if requestID := RequestIDFromContext(ctx); requestID != "" {
				fields = append(fields, F("request_id", requestID))
			}

			if err != nil {
				fields = append(fields, F("error", err.Error()))
				logger.Error("export failed", fields...)
			} else {
				fields = append(fields, F("form", schema.Form(n)))
				logger.Info("export completed", fields...)
			}

			return n, err
		}
	}
}

func typeName(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}
	return t.String()
}

// NopLogger is a logger that discards all log entries.
type NopLogger struct{}

func (NopLogger) Info(msg string, fields ...Field)  {}
func (NopLogger) Error(msg string, fields ...Field) {}
func (NopLogger) Debug(msg string, fields ...Field) {}
func (NopLogger) Warn(msg string, fields ...Field)  {}
