package export

import (
	"errors"
	"reflect"

	"github.com/felixgeelhaar/arri-go/protocol"
	"github.com/felixgeelhaar/arri-go/schema"
)

// exportSum builds an enum from bare variants or a tagged union from
// payload variants.
func (c *Context) exportSum(t reflect.Type, sum *sumConfig) (schema.Node, error) {
	e := c.exporter
	name := e.Name(t)
	if len(sum.configErrs) > 0 {
		return nil, attribute(errors.Join(sum.configErrs...), name, "")
	}

	bare := 0
	for _, v := range sum.variants {
		if v.payload == nil {
			bare++
		}
	}

	switch {
	case bare == len(sum.variants):
		enum := schema.NewEnum().SetTransforms(sum.transforms...)
		for _, v := range sum.variants {
			enum.AddVariant(v.name)
		}
		enum.SetMetadata(e.typeMetadata(t))
		return enum, nil

	case bare == 0:
		union := schema.NewTaggedUnion().
			SetDiscriminator(sum.discriminator).
			SetTransforms(sum.transforms...)
		for _, v := range sum.variants {
			payload, err := c.variantPayload(v, sum.metadata[v.name])
			if err != nil {
				return nil, attribute(err, name, v.name)
			}
			union.AddMapping(v.name, payload)
		}
		union.SetMetadata(e.typeMetadata(t))
		return union, nil

	default:
		return nil, protocol.NewMixedVariants(
			"all variants must be either all-bare or all-payload-carrying",
		).WithType(name)
	}
}

// variantPayload builds the object for one payload variant. Struct
// payloads contribute their fields; other payloads are wrapped in a
// single "value" property.
func (c *Context) variantPayload(v variant, meta schema.Metadata) (schema.Node, error) {
	e := c.exporter
	p := v.payload
	for p.Kind() == reflect.Pointer {
		p = p.Elem()
	}

	var (
		n   schema.Node
		err error
	)
	if isPlainStruct(e, p) {
		meta = e.documented(p).Merge(meta)
		n, err = c.Guard(p, func() (schema.Node, error) {
			return c.structProperties(p)
		})
	} else {
		var value schema.Node
		value, err = c.Export(p)
		if err == nil {
			n = schema.NewProperties().SetProperty("value", value)
		}
	}
	if err != nil {
		return nil, err
	}

	if !meta.IsZero() && schema.Supports(n, "SetMetadata") {
		schema.SetMetadata(n, meta)
	}
	return n, nil
}

// isPlainStruct reports whether t exports through struct assembly rather
// than a mapping, a sum registration or its own export.
func isPlainStruct(e *Exporter, t reflect.Type) bool {
	if t.Kind() != reflect.Struct || t.NumField() == 0 {
		return false
	}
	if _, ok := e.mappings[t]; ok {
		return false
	}
	if _, ok := e.sums[t]; ok {
		return false
	}
	if e.transparent[t] {
		return false
	}
	if t.Implements(exportableType) || reflect.PointerTo(t).Implements(exportableType) {
		return false
	}
	return true
}
