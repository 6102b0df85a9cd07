// Package protocol defines the Arri wire vocabulary shared by the other
// packages: the schema version, the definitions document message and the
// structured error type returned when building an exporter fails.
//
// # Errors
//
// Every configuration or construction failure is an *Error carrying a Kind:
//
//	KindUnknownTransform     // unknown case transform name
//	KindNullableNotOptional  // nullable attribute on a required field
//	KindMixedVariants        // bare and payload variants in one sum type
//	KindMalformedAttribute   // bad arri struct tag syntax
//	KindInvalidRename        // rename value that is not a valid identifier
//	KindUnsupportedType      // Go type with no schema mapping
//	KindDanglingReference    // ref target that is not a definition
//	KindDuplicateDefinition  // definition name registered twice
//	KindNotFound             // unknown definition name
//	KindRateLimited          // export or request throttled
//	KindInternal             // anything else, such as a canceled export
//
// Errors compare by kind with errors.Is:
//
//	if errors.Is(err, protocol.ErrNullableNotOptional) {
//	    // ...
//	}
//
// # Definitions
//
// A definitions document is the JSON object served by the transport package:
//
//	{"schemaVersion":"0.0.8","definitions":{"User":{...},"Post":{...}}}
package protocol
