package schema

import "github.com/felixgeelhaar/arri-go/casing"

// Enum is the closed string set form: {"enum":[...],"metadata":...,"isNullable":...}.
type Enum struct {
	described
	nullability
	variants   []string
	transforms []casing.Transform
}

// NewEnum creates an enum with the given variants, in order.
func NewEnum(variants ...string) *Enum {
	e := &Enum{}
	for _, v := range variants {
		e.AddVariant(v)
	}
	return e
}

// SetTransforms sets the casing transforms applied to variants added from
// now on. Variants already present are not rewritten.
func (e *Enum) SetTransforms(transforms ...casing.Transform) *Enum {
	e.transforms = transforms
	return e
}

// AddVariant appends a variant after applying the current transforms.
func (e *Enum) AddVariant(name string) *Enum {
	e.variants = append(e.variants, casing.ApplyAll(name, e.transforms...))
	return e
}

// Variants returns the variants in declaration order.
func (e *Enum) Variants() []string {
	return append([]string(nil), e.variants...)
}

func (e *Enum) form() string { return "enum" }

func (e *Enum) Serialize() (string, bool) {
	variants := e.variants
	if variants == nil {
		variants = []string{}
	}
	return NewBuilder().
		Set("enum", variants).
		Set("metadata", e.metadata).
		Set("isNullable", e.nullable).
		Build(), true
}
