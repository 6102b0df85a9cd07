package export

import (
	"context"
	"reflect"

	"github.com/felixgeelhaar/arri-go/middleware"
	"github.com/felixgeelhaar/arri-go/protocol"
	"github.com/felixgeelhaar/arri-go/schema"
)

// Exporter turns Go types into schema nodes. It is immutable after New
// and safe for concurrent use; each root export runs with its own Context.
type Exporter struct {
	mappings    map[reflect.Type]func() schema.Node
	types       map[reflect.Type]*typeConfig
	sums        map[reflect.Type]*sumConfig
	transparent map[reflect.Type]bool
	logger      middleware.Logger
	middlewares []middleware.Middleware
	root        middleware.ExportFunc
}

// New creates an Exporter with the default mapping table.
func New(opts ...Option) *Exporter {
	e := &Exporter{
		mappings:    defaultMappings(),
		types:       make(map[reflect.Type]*typeConfig),
		sums:        make(map[reflect.Type]*sumConfig),
		transparent: make(map[reflect.Type]bool),
		logger:      middleware.NopLogger{},
	}
	for _, opt := range opts {
		opt(e)
	}
	e.root = middleware.Chain(e.middlewares...)(e.exportRoot)
	return e
}

// Export exports t with a background context.
func (e *Exporter) Export(t reflect.Type) (schema.Node, error) {
	return e.ExportContext(context.Background(), t)
}

// ExportContext exports t through the configured middleware. The context
// is checked each time the export descends into a named type.
func (e *Exporter) ExportContext(ctx context.Context, t reflect.Type) (schema.Node, error) {
	if t == nil {
		return nil, protocol.NewUnsupportedType("cannot export a nil type")
	}
	return e.root(ctx, t)
}

// Name returns the name t is published under: the Named option when set,
// the display name otherwise.
func (e *Exporter) Name(t reflect.Type) string {
	for t.Kind() == reflect.Pointer && t.Name() == "" {
		t = t.Elem()
	}
	if cfg := e.types[t]; cfg != nil && cfg.name != "" {
		return cfg.name
	}
	return DisplayName(t)
}

func (e *Exporter) exportRoot(ctx context.Context, t reflect.Type) (schema.Node, error) {
	return newContext(ctx, e).Export(t)
}

// typeMetadata collects the type level metadata for t: Documented first,
// then WithType options, then the id.
func (e *Exporter) typeMetadata(t reflect.Type) schema.Metadata {
	meta := e.documented(t)
	if cfg := e.types[t]; cfg != nil {
		meta = meta.Merge(cfg.metadata)
	}
	return meta.WithID(e.Name(t))
}

// documented returns the Documented metadata of t without its id.
func (e *Exporter) documented(t reflect.Type) schema.Metadata {
	d, ok := zeroAs[Documented](t, documentedType)
	if !ok {
		return schema.NewMetadata()
	}
	meta := d.ArriMetadata()
	meta.ID = nil
	return meta
}

func (e *Exporter) typeConfig(t reflect.Type) *typeConfig {
	if cfg := e.types[t]; cfg != nil {
		return cfg
	}
	return &typeConfig{}
}
