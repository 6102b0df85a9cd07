package protocol

import "fmt"

// Kind classifies a construction-time failure.
type Kind string

// Error kinds.
const (
	KindUnknownTransform    Kind = "unknown_transform"
	KindNullableNotOptional Kind = "nullable_not_optional"
	KindMixedVariants       Kind = "mixed_variants"
	KindMalformedAttribute  Kind = "malformed_attribute"
	KindInvalidRename       Kind = "invalid_rename"
	KindUnsupportedType     Kind = "unsupported_type"
	KindDanglingReference   Kind = "dangling_reference"
	KindDuplicateDefinition Kind = "duplicate_definition"
	KindNotFound            Kind = "not_found"
	KindRateLimited         Kind = "rate_limited"
	KindInternal            Kind = "internal"
)

// Sentinel errors for errors.Is comparisons.
var (
	ErrUnknownTransform    = &Error{Kind: KindUnknownTransform}
	ErrNullableNotOptional = &Error{Kind: KindNullableNotOptional}
	ErrMixedVariants       = &Error{Kind: KindMixedVariants}
	ErrMalformedAttribute  = &Error{Kind: KindMalformedAttribute}
	ErrInvalidRename       = &Error{Kind: KindInvalidRename}
	ErrUnsupportedType     = &Error{Kind: KindUnsupportedType}
	ErrDanglingReference   = &Error{Kind: KindDanglingReference}
	ErrDuplicateDefinition = &Error{Kind: KindDuplicateDefinition}
	ErrNotFound            = &Error{Kind: KindNotFound}
	ErrRateLimited         = &Error{Kind: KindRateLimited}
	ErrInternal            = &Error{Kind: KindInternal}
)

// Error is a structured construction-time failure.
type Error struct {
	Kind    Kind   `json:"kind"`
	Message string `json:"message"`
	Type    string `json:"type,omitempty"`  // Go type being exported, if known
	Field   string `json:"field,omitempty"` // struct field, if known
}

// Error implements the error interface.
func (e *Error) Error() string {
	switch {
	case e.Type != "" && e.Field != "":
		return fmt.Sprintf("arri: %s.%s: %s (kind: %s)", e.Type, e.Field, e.Message, e.Kind)
	case e.Type != "":
		return fmt.Sprintf("arri: %s: %s (kind: %s)", e.Type, e.Message, e.Kind)
	default:
		return fmt.Sprintf("arri: %s (kind: %s)", e.Message, e.Kind)
	}
}

// Is implements errors.Is comparison by kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// WithType returns a copy of the error attributed to the given type.
func (e *Error) WithType(typeName string) *Error {
	c := *e
	c.Type = typeName
	return &c
}

// WithField returns a copy of the error attributed to the given field.
func (e *Error) WithField(field string) *Error {
	c := *e
	c.Field = field
	return &c
}

// NewUnknownTransform creates an unknown transformation error.
func NewUnknownTransform(name string) *Error {
	return &Error{Kind: KindUnknownTransform, Message: "unknown transformation: " + name}
}

// NewNullableNotOptional creates the error for a nullable attribute on a required field.
func NewNullableNotOptional(typeName string) *Error {
	return &Error{
		Kind:    KindNullableNotOptional,
		Message: fmt.Sprintf("only an optional type can be nullable, use *%s instead of %s", typeName, typeName),
	}
}

// NewMixedVariants creates the error for a sum type mixing bare and payload variants.
func NewMixedVariants(msg string) *Error {
	return &Error{Kind: KindMixedVariants, Message: msg}
}

// NewMalformedAttribute creates a malformed attribute error.
func NewMalformedAttribute(msg string) *Error {
	return &Error{Kind: KindMalformedAttribute, Message: msg}
}

// NewInvalidRename creates an invalid rename error.
func NewInvalidRename(msg string) *Error {
	return &Error{Kind: KindInvalidRename, Message: msg}
}

// NewUnsupportedType creates an unsupported type error.
func NewUnsupportedType(msg string) *Error {
	return &Error{Kind: KindUnsupportedType, Message: msg}
}

// NewDanglingReference creates a dangling reference error.
func NewDanglingReference(target string) *Error {
	return &Error{Kind: KindDanglingReference, Message: "reference to undefined type " + target}
}

// NewDuplicateDefinition creates a duplicate definition error.
func NewDuplicateDefinition(name string) *Error {
	return &Error{Kind: KindDuplicateDefinition, Message: "definition already registered: " + name}
}

// NewNotFound creates a not found error.
func NewNotFound(msg string) *Error {
	return &Error{Kind: KindNotFound, Message: msg}
}

// NewRateLimited creates the error returned when an export is throttled.
func NewRateLimited(typeName string) *Error {
	return &Error{Kind: KindRateLimited, Message: "rate limit exceeded", Type: typeName}
}

// NewInternal creates an error for failures outside the other kinds.
func NewInternal(msg string) *Error {
	return &Error{Kind: KindInternal, Message: msg}
}
