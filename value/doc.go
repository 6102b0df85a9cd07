// Package value holds arbitrary JSON data whose shape is unknown until
// runtime.
//
// A Value is one of null, boolean, number, string, array or object.
// Numbers keep their integer or floating-point form. Object keys are
// always emitted in sorted order.
//
//	v := value.Object(map[string]value.Value{
//	    "enabled": value.Bool(true),
//	    "count":   value.PosInt(42),
//	})
//	out, _ := v.Serialize() // {"count":42,"enabled":true}
//
// A struct field of type Value exports to the empty schema {}, which
// accepts any JSON value.
package value
