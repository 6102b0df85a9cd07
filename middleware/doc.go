// Package middleware provides middleware around root schema exports.
//
// Middleware follows the standard pattern where each middleware wraps the
// next ExportFunc in the chain, allowing work before and after a type is
// exported.
//
// # Basic Usage
//
// Create and compose middleware, then hand the chain to the exporter:
//
//	exp := export.New(export.WithMiddleware(
//	    middleware.RequestID(),
//	    middleware.Logging(logger),
//	    middleware.OTel(),
//	))
//
// # Available Middleware
//
//   - RequestID: Injects a unique request ID into the context
//   - Timeout: Bounds how long a single export may run
//   - Logging: Logs the exported type, duration and outcome
//   - RateLimit: Throttles exports with a token bucket
//   - OTel: Adds tracing spans and export metrics
//
// Panics are deliberately not recovered. A panic from the schema package
// reports a *schema.ContractViolation, which is a programming error.
//
// # Custom Middleware
//
//	func Cache(store map[reflect.Type]schema.Node) middleware.Middleware {
//	    return func(next middleware.ExportFunc) middleware.ExportFunc {
//	        return func(ctx context.Context, t reflect.Type) (schema.Node, error) {
//	            if n, ok := store[t]; ok {
//	                return n, nil
//	            }
//	            return next(ctx, t)
//	        }
//	    }
//	}
package middleware
