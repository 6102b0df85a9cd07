// Package arri builds Arri Type Definition schemas from Go types.
//
// An Arri schema is a JSON document describing data shapes for code
// generators in other languages. This package exports Go types into that
// format:
//
//	type User struct {
//	    ID    string
//	    Email *string `arri:"nullable"`
//	    Tags  []string
//	}
//
//	out, err := arri.ExportJSON[User]()
//	// {"properties":{"id":{"type":"string"},"tags":{"elements":{"type":"string"}}},
//	//  "optionalProperties":{"email":{"type":"string","isNullable":true}},
//	//  "metadata":{"id":"User"}}
//
// Sum types and enums are registered on the exporter:
//
//	e := arri.NewExporter(
//	    arri.RegisterEnum[Color]("Red", "DarkBlue"),
//	    arri.RegisterUnion[Shape](
//	        arri.Variant("Circle", arri.TypeOf[Circle]()),
//	        arri.Variant("Square", arri.TypeOf[Square]()),
//	    ),
//	)
//
// Whole applications publish a registry of definitions:
//
//	reg := arri.NewRegistry(e)
//	_ = arri.Register[User](reg)
//	arri.ServeHTTP(ctx, reg, ":8080")
package arri

import (
	"context"
	"reflect"
	"time"

	"github.com/felixgeelhaar/arri-go/casing"
	"github.com/felixgeelhaar/arri-go/export"
	"github.com/felixgeelhaar/arri-go/middleware"
	"github.com/felixgeelhaar/arri-go/protocol"
	"github.com/felixgeelhaar/arri-go/registry"
	"github.com/felixgeelhaar/arri-go/schema"
	"github.com/felixgeelhaar/arri-go/transport"
	"github.com/felixgeelhaar/arri-go/value"
)

// Re-export core types for convenience

// Node is an exported schema node.
type Node = schema.Node

// Metadata holds id, description and deprecation details.
type Metadata = schema.Metadata

// Exporter turns Go types into schema nodes.
type Exporter = export.Exporter

// Option configures an Exporter.
type Option = export.Option

// Context is the recursion guarded export context passed to Exportable.
type Context = export.Context

// Error is a construction-time failure.
type Error = protocol.Error

// Registry holds named top-level definitions.
type Registry = registry.Registry

// Document is an exported set of definitions.
type Document = registry.Document

// Value is a dynamic JSON value exported as the any schema.
type Value = value.Value

// Transform is a string case transform.
type Transform = casing.Transform

// Type and sum options
type (
	TypeOption = export.TypeOption
	SumOption  = export.SumOption
)

// Option re-exports for convenience.
var (
	WithType        = export.WithType
	WithSum         = export.WithSum
	WithMapping     = export.WithMapping
	WithTransparent = export.WithTransparent
	Named           = export.Named
	Strict          = export.Strict
	RenameAll       = export.RenameAll
	RenameAllNamed  = export.RenameAllNamed
	Description     = export.Description
	Deprecated      = export.Deprecated
	Variant         = export.Variant
	BareVariant     = export.BareVariant
	VariantCase     = export.Transform
	Discriminator   = export.Discriminator
	VariantMetadata = export.VariantMetadata
)

// Middleware types
type (
	Middleware = middleware.Middleware
	Logger     = middleware.Logger
	LogField   = middleware.Field
)

// Middleware re-exports for convenience.
var (
	RequestID     = middleware.RequestID
	Logging       = middleware.Logging
	NewSlogLogger = middleware.NewSlogLogger
	OTel          = middleware.OTel
	RateLimit     = middleware.RateLimit
)

// Timeout returns middleware that bounds each root export.
func Timeout(d time.Duration) Middleware {
	return middleware.Timeout(d)
}

// DefaultMiddleware returns the recommended export middleware stack.
func DefaultMiddleware(logger Logger) []Middleware {
	return middleware.DefaultStack(logger)
}

// LogF creates a new log field with the given key and value.
func LogF(key string, value any) LogField {
	return middleware.F(key, value)
}

// WithMiddleware wraps every root export in the given middleware.
func WithMiddleware(m ...Middleware) Option {
	return export.WithMiddleware(m...)
}

// WithLogger sets the exporter's debug logger.
func WithLogger(l Logger) Option {
	return export.WithLogger(l)
}

// TypeOf returns the reflect.Type of T, including interface types.
func TypeOf[T any]() reflect.Type {
	return export.TypeOf[T]()
}

// NewExporter creates an exporter with the default mapping table.
func NewExporter(opts ...Option) *Exporter {
	return export.New(opts...)
}

var defaultExporter = export.New()

func exporterFor(opts []Option) *Exporter {
	if len(opts) == 0 {
		return defaultExporter
	}
	return export.New(opts...)
}

// Export exports T. Without options a shared default exporter is used.
func Export[T any](opts ...Option) (Node, error) {
	return exporterFor(opts).Export(export.TypeOf[T]())
}

// ExportContext is Export with a caller supplied context.
func ExportContext[T any](ctx context.Context, opts ...Option) (Node, error) {
	return exporterFor(opts).ExportContext(ctx, export.TypeOf[T]())
}

// ExportJSON exports T and serializes the result.
func ExportJSON[T any](opts ...Option) (string, error) {
	n, err := Export[T](opts...)
	if err != nil {
		return "", err
	}
	out, _ := n.Serialize()
	return out, nil
}

// MustExport is Export that panics on error. It is meant for package
// level variables and tests.
func MustExport[T any](opts ...Option) Node {
	n, err := Export[T](opts...)
	if err != nil {
		panic(err)
	}
	return n
}

// RegisterUnion registers T as a sum type with the given variants.
func RegisterUnion[T any](opts ...SumOption) Option {
	return export.WithSum(export.TypeOf[T](), opts...)
}

// RegisterEnum registers T as an enum of the given bare variants.
func RegisterEnum[T any](variants ...string) Option {
	return export.WithSum(export.TypeOf[T](), export.BareVariant(variants...))
}

// NewRegistry creates an empty definitions registry.
func NewRegistry(e *Exporter, opts ...registry.Option) *Registry {
	return registry.New(e, opts...)
}

// Register adds T to r under its exported name.
func Register[T any](r *Registry) error {
	return registry.Register[T](r)
}

// HTTPOption configures the HTTP transport.
type HTTPOption = transport.HTTPOption

// WebSocketOption configures the WebSocket transport.
type WebSocketOption = transport.WebSocketOption

// ServeHTTP serves the definitions of src over HTTP.
// This blocks until the context is canceled or an error occurs.
func ServeHTTP(ctx context.Context, src transport.Source, addr string, opts ...HTTPOption) error {
	return transport.NewHTTP(addr, opts...).Serve(ctx, src)
}

// ServeWebSocket pushes the definitions of src to WebSocket clients.
// This blocks until the context is canceled or an error occurs.
func ServeWebSocket(ctx context.Context, src transport.Source, addr string, opts ...WebSocketOption) error {
	return transport.NewWebSocket(addr, opts...).Serve(ctx, src)
}

// WithReadTimeout sets the read timeout for HTTP requests.
func WithReadTimeout(d time.Duration) HTTPOption {
	return transport.WithReadTimeout(d)
}

// WithWriteTimeout sets the write timeout for HTTP responses.
func WithWriteTimeout(d time.Duration) HTTPOption {
	return transport.WithWriteTimeout(d)
}
