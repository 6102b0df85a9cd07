package export

import (
	"encoding"
	"errors"
	"fmt"
	"reflect"

	"github.com/felixgeelhaar/arri-go/protocol"
	"github.com/felixgeelhaar/arri-go/schema"
)

var textMarshalerType = reflect.TypeOf((*encoding.TextMarshaler)(nil)).Elem()

// Export exports t within this context. Exportable implementations call
// it for the types they are built from so recursion stays guarded.
func (c *Context) Export(t reflect.Type) (schema.Node, error) {
	if t == nil {
		return nil, protocol.NewUnsupportedType("cannot export a nil type")
	}
	e := c.exporter

	// Pointers are transparent; the guard on the named pointee breaks cycles.
	for t.Kind() == reflect.Pointer {
		if _, ok := e.mappings[t]; ok {
			break
		}
		t = t.Elem()
	}

	if build, ok := e.mappings[t]; ok {
		return build(), nil
	}

	if cfg := e.types[t]; cfg != nil && len(cfg.configErrs) > 0 {
		return nil, attribute(errors.Join(cfg.configErrs...), e.Name(t), "")
	}

	if x, ok := zeroAs[Exportable](t, exportableType); ok {
		return c.Guard(t, func() (schema.Node, error) {
			n, err := x.ExportArri(c)
			return n, attribute(err, e.Name(t), "")
		})
	}

	if sum, ok := e.sums[t]; ok {
		return c.Guard(t, func() (schema.Node, error) {
			return c.exportSum(t, sum)
		})
	}

	if en, ok := zeroAs[Enumerated](t, enumeratedType); ok {
		enum := schema.NewEnum(en.ArriVariants()...)
		enum.SetMetadata(e.typeMetadata(t))
		return enum, nil
	}

	if e.transparent[t] {
		return c.Guard(t, func() (schema.Node, error) {
			return c.exportTransparent(t)
		})
	}

	if kind, ok := kindScalars[t.Kind()]; ok {
		return schema.NewType(kind), nil
	}

	switch t.Kind() {
	case reflect.Slice:
		if t.Elem().Kind() == reflect.Uint8 {
			return schema.NewType(schema.KindString), nil
		}
		return c.guardNamed(t, func() (schema.Node, error) {
			elem, err := c.Export(t.Elem())
			if err != nil {
				return nil, err
			}
			return schema.NewElements(elem), nil
		})

	case reflect.Array:
		return c.guardNamed(t, func() (schema.Node, error) {
			elem, err := c.Export(t.Elem())
			if err != nil {
				return nil, err
			}
			return schema.NewElements(elem), nil
		})

	case reflect.Map:
		if !validMapKey(t.Key()) {
			return nil, protocol.NewUnsupportedType(
				fmt.Sprintf("map key %s is not a string, integer or encoding.TextMarshaler", t.Key()),
			).WithType(e.Name(t))
		}
		return c.guardNamed(t, func() (schema.Node, error) {
			value, err := c.Export(t.Elem())
			if err != nil {
				return nil, err
			}
			return schema.NewValues(value), nil
		})

	case reflect.Struct:
		if t.NumField() == 0 {
			return schema.NewEmpty(), nil
		}
		return c.Guard(t, func() (schema.Node, error) {
			return c.exportStruct(t)
		})

	case reflect.Interface:
		if t.NumMethod() == 0 {
			return schema.NewEmpty(), nil
		}
		return nil, protocol.NewUnsupportedType(
			fmt.Sprintf("interface %s has no sum type registration", t),
		)

	default:
		return nil, protocol.NewUnsupportedType(fmt.Sprintf("%s values have no schema", t.Kind()))
	}
}

// guardNamed guards named collection types, which can refer to themselves.
func (c *Context) guardNamed(t reflect.Type, build func() (schema.Node, error)) (schema.Node, error) {
	if t.Name() == "" {
		return build()
	}
	return c.Guard(t, build)
}

func validMapKey(k reflect.Type) bool {
	switch k.Kind() {
	case reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return true
	}
	return k.Implements(textMarshalerType) || reflect.PointerTo(k).Implements(textMarshalerType)
}

func (c *Context) exportTransparent(t reflect.Type) (schema.Node, error) {
	if t.Kind() != reflect.Struct || t.NumField() != 1 {
		return nil, protocol.NewMalformedAttribute(
			"a transparent type must be a struct with exactly one field",
		).WithType(c.exporter.Name(t))
	}
	return c.Export(t.Field(0).Type)
}

// attribute fills in the type and field of a protocol error that does not
// name them yet. Other errors pass through unchanged.
func attribute(err error, typeName, field string) error {
	if err == nil {
		return nil
	}
	perr, ok := err.(*protocol.Error)
	if !ok || perr.Type != "" {
		return err
	}
	attributed := perr.WithType(typeName)
	if field != "" {
		attributed = attributed.WithField(field)
	}
	return attributed
}
