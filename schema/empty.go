package schema

// Empty accepts any value. It serializes to {} or {"metadata":...}.
type Empty struct {
	described
}

// Any is the same form as Empty.
type Any = Empty

// NewEmpty creates a node that accepts any value.
func NewEmpty() *Empty { return &Empty{} }

// NewAny is NewEmpty under its Any name.
func NewAny() *Any { return &Any{} }

func (e *Empty) form() string { return "empty" }

func (e *Empty) Serialize() (string, bool) {
	return NewBuilder().Set("metadata", e.metadata).Build(), true
}
