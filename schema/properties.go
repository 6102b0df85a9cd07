package schema

import orderedmap "github.com/wk8/go-ordered-map/v2"

// Properties is the object form:
// {"properties":{...},"optionalProperties":{...},"isStrict":...,"metadata":...,"isNullable":...}.
//
// optionalProperties is always emitted, as {} when empty.
type Properties struct {
	described
	nullability
	properties *orderedmap.OrderedMap[string, Node]
	optional   *orderedmap.OrderedMap[string, Node]
	strict     *bool
}

// NewProperties creates an object with no properties.
func NewProperties() *Properties {
	return &Properties{
		properties: orderedmap.New[string, Node](),
		optional:   orderedmap.New[string, Node](),
	}
}

// SetProperty adds a required property. Re-adding a key replaces it in place.
func (p *Properties) SetProperty(key string, n Node) *Properties {
	p.properties.Set(key, n)
	return p
}

// SetOptionalProperty adds an optional property.
func (p *Properties) SetOptionalProperty(key string, n Node) *Properties {
	p.optional.Set(key, n)
	return p
}

// SetStrict sets isStrict; a strict object rejects unknown keys.
func (p *Properties) SetStrict(strict bool) *Properties {
	p.strict = &strict
	return p
}

// Strict reports whether unknown keys are rejected.
func (p *Properties) Strict() bool { return p.strict != nil && *p.strict }

// Property returns the required property stored under key.
func (p *Properties) Property(key string) (Node, bool) {
	return p.properties.Get(key)
}

// OptionalProperty returns the optional property stored under key.
func (p *Properties) OptionalProperty(key string) (Node, bool) {
	return p.optional.Get(key)
}

// Keys returns the required property keys in insertion order.
func (p *Properties) Keys() []string {
	return keys(p.properties)
}

// OptionalKeys returns the optional property keys in insertion order.
func (p *Properties) OptionalKeys() []string {
	return keys(p.optional)
}

func keys(m *orderedmap.OrderedMap[string, Node]) []string {
	out := make([]string, 0, m.Len())
	for pair := m.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, pair.Key)
	}
	return out
}

func (p *Properties) form() string { return "properties" }

func (p *Properties) Serialize() (string, bool) {
	props, _ := SerializeOrdered(p.properties)
	optional, _ := SerializeOrdered(p.optional)
	return NewBuilder().
		Set("properties", rawJSON(props)).
		Set("optionalProperties", rawJSON(optional)).
		Set("isStrict", p.strict).
		Set("metadata", p.metadata).
		Set("isNullable", p.nullable).
		Build(), true
}
