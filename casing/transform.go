// Package casing implements the string case transforms applied to enum
// variants, union tags and field names, plus the field-name-to-JSON-key
// mapping used when serializing struct-shaped values.
package casing

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/felixgeelhaar/arri-go/protocol"
)

// Transform is a pure string rewriting function.
type Transform int

// Supported transforms.
const (
	Uppercase Transform = iota + 1
	Lowercase
	SnakeCase
	CamelCase
	PascalCase
	KebabCase
	ScreamingSnakeCase
	ScreamingKebabCase
)

var names = map[Transform]string{
	Uppercase:          "uppercase",
	Lowercase:          "lowercase",
	SnakeCase:          "snake_case",
	CamelCase:          "camelCase",
	PascalCase:         "PascalCase",
	KebabCase:          "kebab-case",
	ScreamingSnakeCase: "SCREAMING_SNAKE_CASE",
	ScreamingKebabCase: "SCREAMING-KEBAB-CASE",
}

// lookup is keyed by the normalized form produced by normalize.
var lookup = map[string]Transform{
	"uppercase":            Uppercase,
	"lowercase":            Lowercase,
	"snake_case":           SnakeCase,
	"snakecase":            SnakeCase,
	"camelcase":            CamelCase,
	"camel_case":           CamelCase,
	"pascalcase":           PascalCase,
	"pascal_case":          PascalCase,
	"kebab_case":           KebabCase,
	"kebabcase":            KebabCase,
	"screaming_snake_case": ScreamingSnakeCase,
	"screamingsnakecase":   ScreamingSnakeCase,
	"screaming_kebab_case": ScreamingKebabCase,
	"screamingkebabcase":   ScreamingKebabCase,
}

// String returns the canonical configuration identifier.
func (t Transform) String() string {
	if name, ok := names[t]; ok {
		return name
	}
	return "unknown"
}

// Parse converts a configuration identifier into a Transform.
// Matching ignores case, and spaces, dashes and underscores are equivalent.
func Parse(name string) (Transform, error) {
	if t, ok := lookup[normalize(name)]; ok {
		return t, nil
	}
	return 0, protocol.NewUnknownTransform(name)
}

// ParseAll parses every identifier, failing on the first unknown one.
func ParseAll(names ...string) ([]Transform, error) {
	out := make([]Transform, 0, len(names))
	for _, name := range names {
		t, err := Parse(name)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

func normalize(name string) string {
	name = strings.NewReplacer(" ", "_", "-", "_").Replace(strings.TrimSpace(name))
	return strings.ToLower(name)
}

// Apply rewrites value according to the transform.
func (t Transform) Apply(value string) string {
	switch t {
	case Uppercase:
		return upperWord(value)
	case Lowercase:
		return lowerWord(value)
	case SnakeCase:
		return join(Words(value), "_", lowerWord)
	case KebabCase:
		return join(Words(value), "-", lowerWord)
	case ScreamingSnakeCase:
		return join(Words(value), "_", upperWord)
	case ScreamingKebabCase:
		return join(Words(value), "-", upperWord)
	case PascalCase:
		return join(Words(value), "", titleWord)
	case CamelCase:
		words := Words(value)
		if len(words) == 0 {
			return ""
		}
		return lowerWord(words[0]) + join(words[1:], "", titleWord)
	default:
		return value
	}
}

// ApplyAll folds the transforms over value from left to right.
func ApplyAll(value string, transforms ...Transform) string {
	for _, t := range transforms {
		value = t.Apply(value)
	}
	return value
}

// Words splits value into words on separators and case boundaries.
// "HTTPServerError" splits into "HTTP", "Server", "Error"; digits stay
// attached to the word they follow.
func Words(value string) []string {
	runes := []rune(value)
	var (
		words []string
		start = -1
	)
	flush := func(end int) {
		if start >= 0 {
			words = append(words, string(runes[start:end]))
			start = -1
		}
	}

	for i, r := range runes {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			flush(i)
			continue
		}
		if start < 0 {
			start = i
			continue
		}
		prev := runes[i-1]
		switch {
		case unicode.IsUpper(r) && (unicode.IsLower(prev) || unicode.IsDigit(prev)):
			flush(i)
			start = i
		case unicode.IsUpper(r) && unicode.IsUpper(prev) && i+1 < len(runes) && unicode.IsLower(runes[i+1]):
			flush(i)
			start = i
		}
	}
	flush(len(runes))
	return words
}

func join(words []string, sep string, fn func(string) string) string {
	out := make([]string, len(words))
	for i, w := range words {
		out[i] = fn(w)
	}
	return strings.Join(out, sep)
}

// A cases.Caser is stateful and must not be shared between goroutines.
func lowerWord(w string) string { return cases.Lower(language.Und).String(w) }

func upperWord(w string) string { return cases.Upper(language.Und).String(w) }

func titleWord(w string) string {
	runes := []rune(lowerWord(w))
	if len(runes) == 0 {
		return ""
	}
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
