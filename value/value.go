package value

import (
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/felixgeelhaar/arri-go/export"
	"github.com/felixgeelhaar/arri-go/schema"
)

// Kind identifies the variant held by a Value.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Value is a dynamic JSON value. The zero Value is null.
type Value struct {
	kind   Kind
	b      bool
	n      Number
	s      string
	array  []Value
	object map[string]Value
}

// Null returns the null value.
func Null() Value { return Value{} }

// Bool returns a boolean value.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// String returns a string value.
func String(s string) Value { return Value{kind: KindString, s: s} }

// Num wraps a Number.
func Num(n Number) Value { return Value{kind: KindNumber, n: n} }

// PosInt returns a non-negative integer value.
func PosInt(u uint64) Value { return Num(Number{kind: NumberPosInt, u: u}) }

// NegInt returns an integer value. Non-negative inputs are stored as PosInt.
func NegInt(i int64) Value { return Num(intNumber(i)) }

// Int is NegInt under a friendlier name.
func Int(i int64) Value { return Num(intNumber(i)) }

// Float returns a floating-point value.
func Float(f float64) Value { return Num(Number{kind: NumberFloat, f: f}) }

// Array returns an array of elems.
func Array(elems ...Value) Value {
	if elems == nil {
		elems = []Value{}
	}
	return Value{kind: KindArray, array: elems}
}

// Object returns an object holding fields. The map is not copied.
func Object(fields map[string]Value) Value {
	if fields == nil {
		fields = map[string]Value{}
	}
	return Value{kind: KindObject, object: fields}
}

// Kind returns the variant held by v.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is null.
func (v Value) IsNull() bool { return v.kind == KindNull }

// AsBool returns the boolean held by v.
func (v Value) AsBool() (bool, bool) { return v.b, v.kind == KindBool }

// AsNumber returns the number held by v.
func (v Value) AsNumber() (Number, bool) { return v.n, v.kind == KindNumber }

// AsString returns the string held by v.
func (v Value) AsString() (string, bool) { return v.s, v.kind == KindString }

// Elements returns the elements of an array, or nil.
func (v Value) Elements() []Value { return v.array }

// Len returns the number of elements or fields, zero for scalars.
func (v Value) Len() int {
	switch v.kind {
	case KindArray:
		return len(v.array)
	case KindObject:
		return len(v.object)
	default:
		return 0
	}
}

// Get returns the field key of an object.
func (v Value) Get(key string) (Value, bool) {
	if v.kind != KindObject {
		return Value{}, false
	}
	f, ok := v.object[key]
	return f, ok
}

// Keys returns the sorted field names of an object.
func (v Value) Keys() []string {
	if v.kind != KindObject {
		return nil
	}
	keys := make([]string, 0, len(v.object))
	for k := range v.object {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Equal reports whether v and other hold the same JSON value. Numbers
// compare by variant and payload, so PosInt(1) differs from Float(1).
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindBool:
		return v.b == other.b
	case KindNumber:
		return v.n == other.n
	case KindString:
		return v.s == other.s
	case KindArray:
		return slices.EqualFunc(v.array, other.array, Value.Equal)
	case KindObject:
		if len(v.object) != len(other.object) {
			return false
		}
		for k, a := range v.object {
			b, ok := other.object[k]
			if !ok || !a.Equal(b) {
				return false
			}
		}
		return true
	}
	return false
}

// Serialize emits v as JSON. It never reports absence: null is "null".
func (v Value) Serialize() (string, bool) {
	var sb strings.Builder
	v.write(&sb)
	return sb.String(), true
}

func (v Value) write(sb *strings.Builder) {
	switch v.kind {
	case KindNull:
		sb.WriteString("null")
	case KindBool:
		sb.WriteString(strconv.FormatBool(v.b))
	case KindNumber:
		sb.WriteString(v.n.String())
	case KindString:
		sb.WriteString(schema.EscapeString(v.s))
	case KindArray:
		sb.WriteByte('[')
		for i, e := range v.array {
			if i > 0 {
				sb.WriteByte(',')
			}
			e.write(sb)
		}
		sb.WriteByte(']')
	case KindObject:
		sb.WriteByte('{')
		for i, k := range v.Keys() {
			if i > 0 {
				sb.WriteByte(',')
			}
			sb.WriteString(schema.EscapeString(k))
			sb.WriteByte(':')
			v.object[k].write(sb)
		}
		sb.WriteByte('}')
	}
}

// ExportArri exports Value as the empty schema.
func (Value) ExportArri(*export.Context) (schema.Node, error) {
	return schema.NewAny(), nil
}

// NumberKind distinguishes the representations of a Number.
type NumberKind int

const (
	NumberPosInt NumberKind = iota
	NumberNegInt
	NumberFloat
)

// Number is a JSON number kept in its source representation.
type Number struct {
	kind NumberKind
	u    uint64
	i    int64
	f    float64
}

func intNumber(i int64) Number {
	if i >= 0 {
		return Number{kind: NumberPosInt, u: uint64(i)}
	}
	return Number{kind: NumberNegInt, i: i}
}

// Kind returns the representation of n.
func (n Number) Kind() NumberKind { return n.kind }

// Uint64 returns n as a non-negative integer.
func (n Number) Uint64() (uint64, bool) {
	return n.u, n.kind == NumberPosInt
}

// Int64 returns n as a signed integer. PosInt values above math.MaxInt64
// do not fit.
func (n Number) Int64() (int64, bool) {
	switch n.kind {
	case NumberPosInt:
		if n.u > math.MaxInt64 {
			return 0, false
		}
		return int64(n.u), true
	case NumberNegInt:
		return n.i, true
	default:
		return 0, false
	}
}

// Float64 returns n converted to a float.
func (n Number) Float64() float64 {
	switch n.kind {
	case NumberPosInt:
		return float64(n.u)
	case NumberNegInt:
		return float64(n.i)
	default:
		return n.f
	}
}

// String returns the JSON text of n. NaN and infinities have no JSON form
// and render as null.
func (n Number) String() string {
	switch n.kind {
	case NumberPosInt:
		return strconv.FormatUint(n.u, 10)
	case NumberNegInt:
		return strconv.FormatInt(n.i, 10)
	default:
		if math.IsNaN(n.f) || math.IsInf(n.f, 0) {
			return "null"
		}
		out, _ := schema.Serialize(n.f)
		return out
	}
}

// ParseNumber parses a JSON number literal, keeping integers exact when
// they fit in 64 bits.
func ParseNumber(s string) (Number, error) {
	if !strings.ContainsAny(s, ".eE") {
		if strings.HasPrefix(s, "-") {
			if i, err := strconv.ParseInt(s, 10, 64); err == nil {
				return intNumber(i), nil
			}
		} else if u, err := strconv.ParseUint(s, 10, 64); err == nil {
			return Number{kind: NumberPosInt, u: u}, nil
		}
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return Number{}, err
	}
	return Number{kind: NumberFloat, f: f}, nil
}
