package schema

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/felixgeelhaar/arri-go/casing"
)

// DefaultDiscriminator is the discriminator key used when none is set.
const DefaultDiscriminator = "type"

// TaggedUnion is the discriminated union form:
// {"discriminator":...,"mapping":{tag: node},"metadata":...}.
//
// Tagged unions are never nullable; SetNullable panics for this form.
type TaggedUnion struct {
	described
	discriminator string
	mapping       *orderedmap.OrderedMap[string, Node]
	transforms    []casing.Transform
}

// NewTaggedUnion creates an empty union with the default discriminator.
func NewTaggedUnion() *TaggedUnion {
	return &TaggedUnion{
		discriminator: DefaultDiscriminator,
		mapping:       orderedmap.New[string, Node](),
	}
}

// SetDiscriminator overrides the discriminator key.
func (u *TaggedUnion) SetDiscriminator(key string) *TaggedUnion {
	u.discriminator = key
	return u
}

// SetTransforms sets the casing transforms applied to tags added from now on.
func (u *TaggedUnion) SetTransforms(transforms ...casing.Transform) *TaggedUnion {
	u.transforms = transforms
	return u
}

// AddMapping appends a variant under tag after applying the current
// transforms. Re-adding a tag replaces its node in place.
func (u *TaggedUnion) AddMapping(tag string, n Node) *TaggedUnion {
	u.mapping.Set(casing.ApplyAll(tag, u.transforms...), n)
	return u
}

// Discriminator returns the tag key.
func (u *TaggedUnion) Discriminator() string { return u.discriminator }

// Mapping returns the node for tag.
func (u *TaggedUnion) Mapping(tag string) (Node, bool) {
	return u.mapping.Get(tag)
}

// Tags returns the mapping keys in insertion order.
func (u *TaggedUnion) Tags() []string {
	tags := make([]string, 0, u.mapping.Len())
	for pair := u.mapping.Oldest(); pair != nil; pair = pair.Next() {
		tags = append(tags, pair.Key)
	}
	return tags
}

func (u *TaggedUnion) form() string { return "taggedUnion" }

func (u *TaggedUnion) Serialize() (string, bool) {
	mapping, _ := SerializeOrdered(u.mapping)
	return NewBuilder().
		Set("discriminator", u.discriminator).
		Set("mapping", rawJSON(mapping)).
		Set("metadata", u.metadata).
		Build(), true
}

// rawJSON is an already serialized fragment.
type rawJSON string

func (r rawJSON) Serialize() (string, bool) { return string(r), true }
