package value

// Visitor receives the variant held by a Value.
type Visitor interface {
	VisitNull() error
	VisitBool(b bool) error
	VisitNumber(n Number) error
	VisitString(s string) error
	VisitArray(elems []Value) error
	// VisitObject receives the keys in sorted order.
	VisitObject(keys []string, fields map[string]Value) error
}

// Accept dispatches v to the matching Visitor method.
func (v Value) Accept(vis Visitor) error {
	switch v.kind {
	case KindBool:
		return vis.VisitBool(v.b)
	case KindNumber:
		return vis.VisitNumber(v.n)
	case KindString:
		return vis.VisitString(v.s)
	case KindArray:
		return vis.VisitArray(v.array)
	case KindObject:
		return vis.VisitObject(v.Keys(), v.object)
	default:
		return vis.VisitNull()
	}
}

// Walk calls fn for v and every nested value in depth-first order, with
// object fields visited in sorted key order. Returning false from fn
// skips the children of that value.
func Walk(v Value, fn func(Value) bool) {
	if !fn(v) {
		return
	}
	switch v.kind {
	case KindArray:
		for _, e := range v.array {
			Walk(e, fn)
		}
	case KindObject:
		for _, k := range v.Keys() {
			Walk(v.object[k], fn)
		}
	}
}
