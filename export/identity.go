package export

import (
	"reflect"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Identity returns the recursion guard key for t. Named types use their
// package path and name, so generic instantiations keep their fully
// qualified type arguments; unnamed types use their type string.
func Identity(t reflect.Type) string {
	if t.Name() != "" && t.PkgPath() != "" {
		return t.PkgPath() + "." + t.Name()
	}
	return t.String()
}

// DisplayName returns the readable name of t used for metadata ids and
// references. Package qualifiers are dropped and every type name is
// capitalized before ShortName collapses the result:
//
//	Container[string]                  -> ContainerString
//	Outer[Inner[example.com/pkg.Foo]]  -> OuterInnerFoo
func DisplayName(t reflect.Type) string {
	name := t.Name()
	if name == "" {
		name = t.String()
	}

	tokens := strings.FieldsFunc(name, func(r rune) bool {
		return strings.ContainsRune("[]*, ", r)
	})
	var sb strings.Builder
	for _, tok := range tokens {
		if i := strings.LastIndexByte(tok, '.'); i >= 0 {
			tok = tok[i+1:]
		}
		sb.WriteString(capitalize(tok))
		sb.WriteByte(' ')
	}
	return ShortName(sb.String())
}

// ShortName extracts the capitalized segments of an identity and joins
// them. Segments are runs of letters, digits and underscores; segments
// that do not start with an uppercase letter are dropped.
func ShortName(identity string) string {
	segments := strings.FieldsFunc(identity, func(r rune) bool {
		return !(unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_')
	})
	var sb strings.Builder
	for _, seg := range segments {
		if r, _ := utf8.DecodeRuneInString(seg); unicode.IsUpper(r) {
			sb.WriteString(seg)
		}
	}
	return sb.String()
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
