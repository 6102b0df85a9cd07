// Package registry holds the named top-level definitions of an
// application and exports them as one Arri definitions document.
//
//	reg := registry.New(export.New())
//	_ = registry.Register[User](reg)
//	_ = registry.Register[Node](reg)
//
//	doc, err := reg.Definitions(ctx)
//	out, _ := doc.Serialize()
//	// {"schemaVersion":"0.0.8","definitions":{"User":{...},"Node":{...}}}
//
// Definitions are exported concurrently, each with its own recursion
// guard. Every reference in the result must name a registered definition.
package registry
