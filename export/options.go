package export

import (
	"reflect"

	"github.com/felixgeelhaar/arri-go/casing"
	"github.com/felixgeelhaar/arri-go/middleware"
	"github.com/felixgeelhaar/arri-go/protocol"
	"github.com/felixgeelhaar/arri-go/schema"
)

// Option configures an Exporter.
type Option func(*Exporter)

// WithLogger sets the logger used for debug output, such as recursive
// types being replaced by references.
func WithLogger(l middleware.Logger) Option {
	return func(e *Exporter) {
		e.logger = l
	}
}

// WithMiddleware wraps every root export in the given middleware.
func WithMiddleware(mws ...middleware.Middleware) Option {
	return func(e *Exporter) {
		e.middlewares = append(e.middlewares, mws...)
	}
}

// WithMapping registers a fixed schema for t, overriding the default
// mapping table. build is called once per occurrence.
func WithMapping(t reflect.Type, build func() schema.Node) Option {
	return func(e *Exporter) {
		e.mappings[t] = build
	}
}

// WithTransparent marks a single-field struct as a newtype that exports
// exactly as its field.
func WithTransparent(t reflect.Type) Option {
	return func(e *Exporter) {
		e.transparent[t] = true
	}
}

// WithType attaches type level options to t.
func WithType(t reflect.Type, opts ...TypeOption) Option {
	return func(e *Exporter) {
		cfg := e.types[t]
		if cfg == nil {
			cfg = &typeConfig{}
			e.types[t] = cfg
		}
		for _, opt := range opts {
			opt(cfg)
		}
	}
}

// TypeOption configures how a single type exports.
type TypeOption func(*typeConfig)

type typeConfig struct {
	name       string
	strict     bool
	renameAll  []casing.Transform
	metadata   schema.Metadata
	configErrs []error
}

// Named overrides the display name of the type, which is used for its
// metadata id and for references to it.
func Named(name string) TypeOption {
	return func(c *typeConfig) {
		c.name = name
	}
}

// Strict marks the exported object as rejecting unknown keys.
func Strict() TypeOption {
	return func(c *typeConfig) {
		c.strict = true
	}
}

// RenameAll applies transforms to every field name that has no explicit
// rename or json tag name.
func RenameAll(transforms ...casing.Transform) TypeOption {
	return func(c *typeConfig) {
		c.renameAll = transforms
	}
}

// RenameAllNamed is RenameAll with transforms given by name, as accepted
// by casing.Parse. Unknown names fail every export of the type.
func RenameAllNamed(names ...string) TypeOption {
	return func(c *typeConfig) {
		transforms, err := casing.ParseAll(names...)
		if err != nil {
			c.configErrs = append(c.configErrs, err)
			return
		}
		c.renameAll = transforms
	}
}

// Description sets the type description.
func Description(text string) TypeOption {
	return func(c *typeConfig) {
		c.metadata = c.metadata.WithDescription(text)
	}
}

// Deprecated marks the type deprecated. Empty since or note are omitted.
func Deprecated(since, note string) TypeOption {
	return func(c *typeConfig) {
		c.metadata = c.metadata.WithDeprecated(true)
		if since != "" {
			c.metadata = c.metadata.WithDeprecatedSince(since)
		}
		if note != "" {
			c.metadata = c.metadata.WithDeprecatedMessage(note)
		}
	}
}

// WithSum registers t as a sum type built from the given variants.
func WithSum(t reflect.Type, opts ...SumOption) Option {
	return func(e *Exporter) {
		cfg := &sumConfig{
			discriminator: schema.DefaultDiscriminator,
			metadata:      make(map[string]schema.Metadata),
		}
		for _, opt := range opts {
			opt(cfg)
		}
		e.sums[t] = cfg
	}
}

// SumOption configures a sum type.
type SumOption func(*sumConfig)

type sumConfig struct {
	variants      []variant
	transforms    []casing.Transform
	discriminator string
	metadata      map[string]schema.Metadata
	configErrs    []error
}

type variant struct {
	name    string
	payload reflect.Type // nil for a bare variant
}

// Variant adds a payload-carrying variant. Struct payloads contribute
// their fields; any other payload becomes a single "value" property.
func Variant(name string, payload reflect.Type) SumOption {
	return func(c *sumConfig) {
		if payload == nil {
			c.configErrs = append(c.configErrs,
				protocol.NewMalformedAttribute("variant "+name+" has a nil payload type, use BareVariant"))
			return
		}
		c.variants = append(c.variants, variant{name: name, payload: payload})
	}
}

// BareVariant adds a variant without payload.
func BareVariant(names ...string) SumOption {
	return func(c *sumConfig) {
		for _, name := range names {
			c.variants = append(c.variants, variant{name: name})
		}
	}
}

// Transform sets the casing transforms applied to variant names.
func Transform(transforms ...casing.Transform) SumOption {
	return func(c *sumConfig) {
		c.transforms = transforms
	}
}

// TransformNamed is Transform with transforms given by name. Unknown
// names fail every export of the type.
func TransformNamed(names ...string) SumOption {
	return func(c *sumConfig) {
		transforms, err := casing.ParseAll(names...)
		if err != nil {
			c.configErrs = append(c.configErrs, err)
			return
		}
		c.transforms = transforms
	}
}

// Discriminator overrides the tagged union discriminator key.
func Discriminator(key string) SumOption {
	return func(c *sumConfig) {
		c.discriminator = key
	}
}

// VariantMetadata attaches metadata to a payload variant, keyed by its
// untransformed name.
func VariantMetadata(name string, m schema.Metadata) SumOption {
	return func(c *sumConfig) {
		c.metadata[name] = c.metadata[name].Merge(m)
	}
}
