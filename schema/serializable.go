package schema

import (
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"unicode"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/felixgeelhaar/arri-go/casing"
)

// Serializable produces a JSON fragment. A false result means the value is
// absent and the enclosing field must be omitted.
type Serializable interface {
	Serialize() (string, bool)
}

// Serialize renders any supported Go value as a JSON fragment.
//
// Strings are escaped, booleans and numbers use their canonical decimal
// form, nil pointers and nil interfaces are absent, slices drop absent
// elements, maps are emitted in sorted key order and structs emit their
// exported fields in declaration order under casing.JSONKey names.
func Serialize(v any) (string, bool) {
	switch x := v.(type) {
	case nil:
		return "", false
	case Serializable:
		if isNilPointer(x) {
			return "", false
		}
		return x.Serialize()
	case string:
		return EscapeString(x), true
	case *string:
		if x == nil {
			return "", false
		}
		return EscapeString(*x), true
	case bool:
		return strconv.FormatBool(x), true
	case *bool:
		if x == nil {
			return "", false
		}
		return strconv.FormatBool(*x), true
	case int:
		return strconv.Itoa(x), true
	case int64:
		return strconv.FormatInt(x, 10), true
	case uint64:
		return strconv.FormatUint(x, 10), true
	case float32:
		return formatFloat(float64(x), 32), true
	case float64:
		return formatFloat(x, 64), true
	}
	return serializeValue(reflect.ValueOf(v))
}

// SerializeOrdered renders an ordered map as an object in insertion order.
func SerializeOrdered[V any](m *orderedmap.OrderedMap[string, V]) (string, bool) {
	b := NewBuilder()
	if m != nil {
		for pair := m.Oldest(); pair != nil; pair = pair.Next() {
			b.Set(pair.Key, pair.Value)
		}
	}
	return b.Build(), true
}

// formatFloat writes the shortest decimal text that round-trips, never in
// exponent form.
func formatFloat(f float64, bits int) string {
	return strconv.FormatFloat(f, 'f', -1, bits)
}

func serializeValue(rv reflect.Value) (string, bool) {
	if !rv.IsValid() {
		return "", false
	}
	if s, ok := asSerializable(rv); ok {
		return Serialize(s)
	}

	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return "", false
		}
		return serializeValue(rv.Elem())
	case reflect.String:
		return EscapeString(rv.String()), true
	case reflect.Bool:
		return strconv.FormatBool(rv.Bool()), true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return strconv.FormatUint(rv.Uint(), 10), true
	case reflect.Float32:
		return formatFloat(rv.Float(), 32), true
	case reflect.Float64:
		return formatFloat(rv.Float(), 64), true
	case reflect.Slice, reflect.Array:
		parts := make([]string, 0, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			if s, ok := serializeValue(rv.Index(i)); ok {
				parts = append(parts, s)
			}
		}
		return "[" + strings.Join(parts, ",") + "]", true
	case reflect.Map:
		return serializeMap(rv)
	case reflect.Struct:
		return serializeStruct(rv)
	default:
		return "", false
	}
}

func serializeMap(rv reflect.Value) (string, bool) {
	keys := make([]string, 0, rv.Len())
	values := make(map[string]reflect.Value, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		k := fmt.Sprint(iter.Key().Interface())
		keys = append(keys, k)
		values[k] = iter.Value()
	}
	sort.Strings(keys)

	b := NewBuilder()
	for _, k := range keys {
		b.Set(k, values[k].Interface())
	}
	return b.Build(), true
}

func serializeStruct(rv reflect.Value) (string, bool) {
	t := rv.Type()
	if t.NumField() == 0 {
		return "null", true
	}

	b := NewBuilder()
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() || field.Tag.Get("arri") == "-" {
			continue
		}
		b.Set(casing.JSONKey(field.Name), rv.Field(i).Interface())
	}
	return b.Build(), true
}

// asSerializable reports whether rv (or its address) implements Serializable.
func asSerializable(rv reflect.Value) (Serializable, bool) {
	if rv.Kind() == reflect.Interface || !rv.CanInterface() {
		return nil, false
	}
	if s, ok := rv.Interface().(Serializable); ok {
		return s, true
	}
	if rv.CanAddr() {
		if s, ok := rv.Addr().Interface().(Serializable); ok {
			return s, true
		}
	}
	return nil, false
}

func isNilPointer(v any) bool {
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Pointer && rv.IsNil()
}

// EscapeString quotes s as a JSON string. Unlike encoding/json the forward
// slash is escaped, and non-ASCII text passes through unescaped.
func EscapeString(s string) string {
	var sb strings.Builder
	sb.Grow(len(s) + 2)
	sb.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			sb.WriteString(`\"`)
		case '\\':
			sb.WriteString(`\\`)
		case '/':
			sb.WriteString(`\/`)
		case '\b':
			sb.WriteString(`\b`)
		case '\f':
			sb.WriteString(`\f`)
		case '\n':
			sb.WriteString(`\n`)
		case '\r':
			sb.WriteString(`\r`)
		case '\t':
			sb.WriteString(`\t`)
		default:
			if unicode.IsControl(r) {
				fmt.Fprintf(&sb, `\u%04x`, r)
				continue
			}
			sb.WriteRune(r)
		}
	}
	sb.WriteByte('"')
	return sb.String()
}
