package registry

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/felixgeelhaar/arri-go/protocol"
	"github.com/felixgeelhaar/arri-go/schema"
)

// Document is an ordered set of exported definitions.
type Document struct {
	definitions *orderedmap.OrderedMap[string, schema.Node]
}

func newDocument() *Document {
	return &Document{definitions: orderedmap.New[string, schema.Node]()}
}

// Get returns the definition stored under name.
func (d *Document) Get(name string) (schema.Node, bool) {
	return d.definitions.Get(name)
}

// Names returns the definition names in registration order.
func (d *Document) Names() []string {
	names := make([]string, 0, d.definitions.Len())
	for pair := d.definitions.Oldest(); pair != nil; pair = pair.Next() {
		names = append(names, pair.Key)
	}
	return names
}

// Len returns the number of definitions.
func (d *Document) Len() int { return d.definitions.Len() }

// DefinitionsJSON returns the definitions object alone.
func (d *Document) DefinitionsJSON() string {
	out, _ := schema.SerializeOrdered(d.definitions)
	return out
}

// Serialize emits {"schemaVersion":...,"definitions":{...}}.
func (d *Document) Serialize() (string, bool) {
	return schema.NewBuilder().
		Set(protocol.KeySchemaVersion, protocol.SchemaVersion).
		Set(protocol.KeyDefinitions, rawJSON(d.DefinitionsJSON())).
		Build(), true
}

type rawJSON string

func (r rawJSON) Serialize() (string, bool) { return string(r), true }
