// Package schema provides the Arri Type Definition object model and its
// JSON serializer.
//
// A schema is a tree of Node values. The node set is closed:
//
//   - Type: a primitive scalar ({"type":"string"})
//   - Enum: a closed set of string variants ({"enum":["A","B"]})
//   - TaggedUnion: a discriminated union ({"discriminator":"type","mapping":{...}})
//   - Properties: an object with required and optional properties
//   - Elements: a homogeneous list ({"elements":{...}})
//   - Values: a homogeneous string-keyed map ({"values":{...}})
//   - Ref: a reference to a named definition ({"ref":"Node"})
//   - Empty (alias Any): accepts anything ({})
//
// # Serialization
//
// Every node implements Serializable. Serialize returns false when the value
// must be omitted from the enclosing object, never emitting null:
//
//	props := schema.NewProperties()
//	props.SetProperty("name", schema.NewType(schema.KindString))
//	props.SetMetadata(schema.NewMetadata().WithID("User"))
//
//	out, _ := props.Serialize()
//	// {"properties":{"name":{"type":"string"}},"optionalProperties":{},"metadata":{"id":"User"}}
//
// Keys are emitted in a fixed order per node kind, and map-shaped fields keep
// insertion order.
//
// # Mutators
//
// SetMetadata, SetNullable and SetRename are only defined on the nodes that
// carry the attribute. The package level functions of the same name accept
// any Node and panic with a *ContractViolation when the node does not support
// the attribute; that panic marks a bug in the caller, not bad input.
package schema
