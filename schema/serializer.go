package schema

import "strings"

// Builder accumulates "key":value pairs into a JSON object. It is the only
// place object literals are assembled; the order of Set calls is the order
// of keys in the output.
type Builder struct {
	buf strings.Builder
}

// NewBuilder creates a builder seeded with the opening brace.
func NewBuilder() *Builder {
	b := &Builder{}
	b.buf.WriteByte('{')
	return b
}

// Set appends key and the serialization of value. Values that serialize to
// nothing are skipped, so absent fields vanish instead of becoming null.
func (b *Builder) Set(key string, value any) *Builder {
	if s, ok := Serialize(value); ok {
		b.buf.WriteString(EscapeString(key))
		b.buf.WriteByte(':')
		b.buf.WriteString(s)
		b.buf.WriteByte(',')
	}
	return b
}

// Build closes the object. An object without fields is exactly "{}".
func (b *Builder) Build() string {
	return strings.TrimSuffix(b.buf.String(), ",") + "}"
}
