package schema

import (
	"fmt"
)

// Node is one of the schema forms: *Type, *Enum, *TaggedUnion, *Properties,
// *Elements, *Values, *Ref or *Empty. The set is closed.
type Node interface {
	Serializable
	form() string
}

// MetadataSetter is implemented by nodes that carry metadata.
type MetadataSetter interface {
	SetMetadata(Metadata)
}

// NullableSetter is implemented by nodes that carry isNullable.
type NullableSetter interface {
	SetNullable(bool)
}

// Renamer is implemented by nodes whose name can be retargeted.
type Renamer interface {
	SetRename(string)
}

// Form names the node's schema form ("type", "enum", "taggedUnion",
// "properties", "elements", "values", "ref" or "empty").
func Form(n Node) string {
	if n == nil {
		return "undefined"
	}
	return n.form()
}

// SetMetadata applies m to n. It panics with a *ContractViolation when n
// does not carry metadata.
func SetMetadata(n Node, m Metadata) {
	if s, ok := n.(MetadataSetter); ok {
		s.SetMetadata(m)
		return
	}
	violate("SetMetadata", n, m)
}

// SetNullable applies the isNullable flag to n. It panics with a
// *ContractViolation when n does not carry the flag.
func SetNullable(n Node, nullable bool) {
	if s, ok := n.(NullableSetter); ok {
		s.SetNullable(nullable)
		return
	}
	violate("SetNullable", n, nullable)
}

// SetRename renames n. It panics with a *ContractViolation when n cannot
// be renamed.
func SetRename(n Node, name string) {
	if s, ok := n.(Renamer); ok {
		s.SetRename(name)
		return
	}
	violate("SetRename", n, name)
}

// Supports reports whether n accepts the given mutator ("SetMetadata",
// "SetNullable" or "SetRename") without panicking.
func Supports(n Node, op string) bool {
	switch op {
	case "SetMetadata":
		_, ok := n.(MetadataSetter)
		return ok
	case "SetNullable":
		_, ok := n.(NullableSetter)
		return ok
	case "SetRename":
		_, ok := n.(Renamer)
		return ok
	}
	return false
}

// ContractViolation is the panic value raised when a mutator is applied to
// a node that does not support it.
type ContractViolation struct {
	Op         string
	Form       string
	Serialized string
	Value      any
}

func (c *ContractViolation) Error() string {
	return fmt.Sprintf("%s is not supported for %s\nthis is a bug in the exporter\nserialized: %s\nvalue: %#v",
		c.Op, c.Form, c.Serialized, c.Value)
}

func violate(op string, n Node, value any) {
	serialized := "undefined"
	if n != nil {
		if s, ok := n.Serialize(); ok {
			serialized = s
		}
	}
	panic(&ContractViolation{Op: op, Form: Form(n), Serialized: serialized, Value: value})
}

// Equal reports whether a and b serialize identically.
func Equal(a, b Node) bool {
	sa, oka := Serialize(a)
	sb, okb := Serialize(b)
	return oka == okb && sa == sb
}

// Walk visits n and every node beneath it in depth-first order. Returning
// false from fn skips the children of the current node.
func Walk(n Node, fn func(Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	switch x := n.(type) {
	case *TaggedUnion:
		for pair := x.mapping.Oldest(); pair != nil; pair = pair.Next() {
			Walk(pair.Value, fn)
		}
	case *Properties:
		for pair := x.properties.Oldest(); pair != nil; pair = pair.Next() {
			Walk(pair.Value, fn)
		}
		for pair := x.optional.Oldest(); pair != nil; pair = pair.Next() {
			Walk(pair.Value, fn)
		}
	case *Elements:
		Walk(x.element, fn)
	case *Values:
		Walk(x.value, fn)
	}
}

// Refs returns the targets of every Ref beneath n, in visit order and
// without duplicates.
func Refs(n Node) []string {
	var targets []string
	seen := make(map[string]bool)
	Walk(n, func(child Node) bool {
		if r, ok := child.(*Ref); ok && !seen[r.target] {
			seen[r.target] = true
			targets = append(targets, r.target)
		}
		return true
	})
	return targets
}
