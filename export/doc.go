// Package export builds Arri schemas from Go types using reflection.
//
// An Exporter walks a reflect.Type and produces a schema.Node:
//
//	type User struct {
//	    Name  string
//	    Email *string `arri:"nullable"`
//	}
//
//	exp := export.New()
//	n, err := exp.Export(reflect.TypeOf(User{}))
//	// {"properties":{"name":{"type":"string"}},
//	//  "optionalProperties":{"email":{"type":"string","isNullable":true}},
//	//  "metadata":{"id":"User"}}
//
// # Recursion
//
// Every root export gets a fresh Context. A named type that is reached
// again while it is still being built is emitted as a reference to its
// display name, so self-referential types terminate:
//
//	type Node struct {
//	    Next *Node
//	}
//	// {"properties":{},"optionalProperties":{"next":{"ref":"Node"}},"metadata":{"id":"Node"}}
//
// # Field tags
//
// Struct fields read the arri tag, a comma separated list of:
//
//	-                      skip the field
//	optional               place the field under optionalProperties
//	nullable[=bool]        mark an optional field nullable
//	rename=NAME            override the property key
//	description=TEXT       field description (quote with '' to embed commas)
//	deprecated[=bool]      mark the field deprecated
//	deprecatedSince=VER    version the field was deprecated in
//	deprecatedNote=TEXT    deprecation note
//
// Pointer fields and fields tagged json:",omitempty" or json:",omitzero"
// are optional without an arri tag.
//
// # Sum types
//
// Go has no native sum type. Register one with WithSum, usually on an
// interface type implemented by each variant:
//
//	exp := export.New(export.WithSum(export.TypeOf[Shape](),
//	    export.Variant("Circle", reflect.TypeOf(Circle{})),
//	    export.Variant("Square", reflect.TypeOf(Square{})),
//	))
//
// Sums made only of BareVariant entries export as an enum, sums made only of
// payload variants export as a tagged union, and mixing the two is an error.
package export
