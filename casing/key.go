package casing

import "strings"

// keyOverrides maps snake_case field names whose JSON key is not their
// plain camelCase form.
var keyOverrides = map[string]string{
	"is_deprecated":       "isDeprecated",
	"deprecated_since":    "deprecatedSince",
	"deprecated_message":  "deprecatedNote",
	"nullable":            "isNullable",
	"is_nullable":         "isNullable",
	"is_strict":           "isStrict",
	"optional_properties": "optionalProperties",
}

// JSONKey maps a native field name (snake_case or a Go identifier) to its
// JSON key. A trailing underscore, the escape for reserved words such as
// "type_", is dropped first. Leading underscores are kept verbatim and the
// remainder is camelCased.
func JSONKey(field string) string {
	if len(strings.Trim(field, "_")) == 0 {
		return field
	}
	field = strings.TrimRight(field, "_")

	rest := strings.TrimLeft(field, "_")
	leading := field[:len(field)-len(rest)]

	if leading == "" {
		if key, ok := keyOverrides[SnakeCase.Apply(rest)]; ok {
			return key
		}
	}
	return leading + CamelCase.Apply(rest)
}
