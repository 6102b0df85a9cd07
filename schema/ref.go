package schema

// Ref names another definition: {"ref":"Name"}. It is emitted where a type
// recurses into itself. Refs carry no metadata and are not nullable.
type Ref struct {
	target string
}

// NewRef creates a reference to target.
func NewRef(target string) *Ref {
	return &Ref{target: target}
}

func (r *Ref) Target() string { return r.target }

// SetRename retargets the reference.
func (r *Ref) SetRename(name string) {
	r.target = name
}

func (r *Ref) form() string { return "ref" }

func (r *Ref) Serialize() (string, bool) {
	return NewBuilder().Set("ref", r.target).Build(), true
}
