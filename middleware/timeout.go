package middleware

import (
	"context"
	"reflect"
	"time"

	"github.com/felixgeelhaar/arri-go/schema"
)

// Timeout returns middleware that enforces an export deadline.
// The exporter checks the context as it descends into each type, so a
// type graph that takes too long fails with context.DeadlineExceeded.
func Timeout(d time.Duration) Middleware {
	return func(next ExportFunc) ExportFunc {
		return func(ctx context.Context, t reflect.Type) (schema.Node, error) {
			ctx, cancel := context.WithTimeout(ctx, d)
			defer cancel()
			return next(ctx, t)
		}
	}
}
