package schema

// Elements is the homogeneous list form: {"elements":...,"metadata":...,"isNullable":...}.
type Elements struct {
	described
	nullability
	element Node
}

// NewElements creates a list of element.
func NewElements(element Node) *Elements {
	return &Elements{element: element}
}

// Element returns the schema of each array element.
func (e *Elements) Element() Node { return e.element }

func (e *Elements) form() string { return "elements" }

func (e *Elements) Serialize() (string, bool) {
	return NewBuilder().
		Set("elements", e.element).
		Set("metadata", e.metadata).
		Set("isNullable", e.nullable).
		Build(), true
}

// Values is the string-keyed map form: {"values":...,"metadata":...,"isNullable":...}.
type Values struct {
	described
	nullability
	value Node
}

// NewValues creates a map whose values are value.
func NewValues(value Node) *Values {
	return &Values{value: value}
}

// Value returns the schema of each map value.
func (v *Values) Value() Node { return v.value }

func (v *Values) form() string { return "values" }

func (v *Values) Serialize() (string, bool) {
	return NewBuilder().
		Set("values", v.value).
		Set("metadata", v.metadata).
		Set("isNullable", v.nullable).
		Build(), true
}
