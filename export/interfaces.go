package export

import (
	"reflect"

	"github.com/felixgeelhaar/arri-go/schema"
)

// Exportable is implemented by types that build their own schema. The
// method is called on the zero value, under the recursion guard.
type Exportable interface {
	ExportArri(c *Context) (schema.Node, error)
}

// Documented is implemented by types that carry type level metadata. The
// returned id is ignored; the id is always the display name.
type Documented interface {
	ArriMetadata() schema.Metadata
}

// Enumerated is implemented by string-like types with a closed set of
// values. The type exports as an enum of those values.
type Enumerated interface {
	ArriVariants() []string
}

var (
	exportableType = reflect.TypeOf((*Exportable)(nil)).Elem()
	documentedType = reflect.TypeOf((*Documented)(nil)).Elem()
	enumeratedType = reflect.TypeOf((*Enumerated)(nil)).Elem()
)

// TypeOf returns the reflect.Type for T. Unlike reflect.TypeOf it works
// for interface types.
func TypeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// zeroAs returns the zero value of t as an I when t or *t implements it.
// Interface types are never instantiated.
func zeroAs[I any](t reflect.Type, iface reflect.Type) (I, bool) {
	var none I
	if t.Kind() == reflect.Interface {
		return none, false
	}
	if t.Implements(iface) {
		v, ok := reflect.New(t).Elem().Interface().(I)
		return v, ok
	}
	if reflect.PointerTo(t).Implements(iface) {
		v, ok := reflect.New(t).Interface().(I)
		return v, ok
	}
	return none, false
}
