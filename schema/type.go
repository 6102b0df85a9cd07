package schema

// Kind is a primitive scalar type name.
type Kind string

const (
	KindString    Kind = "string"
	KindBoolean   Kind = "boolean"
	KindTimestamp Kind = "timestamp"
	KindFloat32   Kind = "float32"
	KindFloat64   Kind = "float64"
	KindInt8      Kind = "int8"
	KindUint8     Kind = "uint8"
	KindInt16     Kind = "int16"
	KindUint16    Kind = "uint16"
	KindInt32     Kind = "int32"
	KindUint32    Kind = "uint32"
	KindInt64     Kind = "int64"
	KindUint64    Kind = "uint64"
)

var kinds = map[Kind]bool{
	KindString: true, KindBoolean: true, KindTimestamp: true,
	KindFloat32: true, KindFloat64: true,
	KindInt8: true, KindUint8: true, KindInt16: true, KindUint16: true,
	KindInt32: true, KindUint32: true, KindInt64: true, KindUint64: true,
}

// Valid reports whether k is one of the defined scalar kinds.
func (k Kind) Valid() bool {
	return kinds[k]
}

func (k Kind) Serialize() (string, bool) {
	return EscapeString(string(k)), true
}

// Type is the scalar form: {"type":...,"metadata":...,"isNullable":...}.
type Type struct {
	described
	nullability
	kind Kind
}

// NewType creates a scalar node of the given kind.
func NewType(kind Kind) *Type {
	return &Type{kind: kind}
}

// Kind returns the scalar kind of t.
func (t *Type) Kind() Kind { return t.kind }

func (t *Type) form() string { return "type" }

func (t *Type) Serialize() (string, bool) {
	return NewBuilder().
		Set("type", t.kind).
		Set("metadata", t.metadata).
		Set("isNullable", t.nullable).
		Build(), true
}
