// Package middleware provides middleware utilities for schema exports.
package middleware

import (
	"context"
	"reflect"

	"github.com/felixgeelhaar/arri-go/schema"
)

// ExportFunc is the signature of a root export.
type ExportFunc func(ctx context.Context, t reflect.Type) (schema.Node, error)

// Middleware wraps an export with additional behavior.
type Middleware func(next ExportFunc) ExportFunc

// Chain composes multiple middleware into a single middleware.
// Middleware are applied in order, so Chain(m1, m2, m3) results in
// m1 wrapping m2 wrapping m3 wrapping the final export.
func Chain(middlewares ...Middleware) Middleware {
	return func(final ExportFunc) ExportFunc {
		for i := len(middlewares) - 1; i >= 0; i-- {
			final = middlewares[i](final)
		}
		return final
	}
}

// MiddlewareChain provides a fluent API for building middleware chains.
type MiddlewareChain struct {
	middlewares []Middleware
}

// Use creates a new middleware chain starting with the given middleware.
func Use(middlewares ...Middleware) *MiddlewareChain {
	return &MiddlewareChain{
		middlewares: middlewares,
	}
}

// Append adds middleware to the chain and returns the updated chain.
func (c *MiddlewareChain) Append(middlewares ...Middleware) *MiddlewareChain {
	c.middlewares = append(c.middlewares, middlewares...)
	return c
}

// Middlewares returns the middleware in application order.
func (c *MiddlewareChain) Middlewares() []Middleware {
	return append([]Middleware(nil), c.middlewares...)
}

// Then applies the middleware chain to an export and returns the wrapped export.
func (c *MiddlewareChain) Then(fn ExportFunc) ExportFunc {
	return Chain(c.middlewares...)(fn)
}
