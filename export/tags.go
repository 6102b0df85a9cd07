package export

import (
	"reflect"
	"strconv"
	"strings"
	"unicode"

	"github.com/felixgeelhaar/arri-go/protocol"
	"github.com/felixgeelhaar/arri-go/schema"
)

// fieldTag is the parsed arri tag of a struct field.
type fieldTag struct {
	skip     bool
	optional bool
	nullable bool
	rename   string
	metadata schema.Metadata
}

func parseFieldTag(tag string) (fieldTag, error) {
	var ft fieldTag
	if tag == "" {
		return ft, nil
	}
	if tag == "-" {
		ft.skip = true
		return ft, nil
	}

	items, err := splitTag(tag)
	if err != nil {
		return ft, err
	}

	deprecationDetail := false
	deprecatedSet := false
	for _, item := range items {
		key, value, hasValue := strings.Cut(item, "=")
		key = strings.TrimSpace(key)

		switch key {
		case "optional":
			if hasValue {
				return ft, protocol.NewMalformedAttribute("optional takes no value")
			}
			ft.optional = true
		case "nullable":
			b, err := flag(key, value, hasValue)
			if err != nil {
				return ft, err
			}
			ft.nullable = b
		case "rename":
			if !hasValue {
				return ft, protocol.NewMalformedAttribute("expected '=' after 'rename'")
			}
			if err := validateRename(value); err != nil {
				return ft, err
			}
			ft.rename = value
		case "description":
			if !hasValue {
				return ft, protocol.NewMalformedAttribute("expected '=' after 'description'")
			}
			ft.metadata = ft.metadata.WithDescription(value)
		case "deprecated":
			b, err := flag(key, value, hasValue)
			if err != nil {
				return ft, err
			}
			ft.metadata = ft.metadata.WithDeprecated(b)
			deprecatedSet = true
		case "deprecatedSince":
			if !hasValue {
				return ft, protocol.NewMalformedAttribute("expected '=' after 'deprecatedSince'")
			}
			ft.metadata = ft.metadata.WithDeprecatedSince(value)
			deprecationDetail = true
		case "deprecatedNote":
			if !hasValue {
				return ft, protocol.NewMalformedAttribute("expected '=' after 'deprecatedNote'")
			}
			ft.metadata = ft.metadata.WithDeprecatedMessage(value)
			deprecationDetail = true
		case "-":
			return ft, protocol.NewMalformedAttribute("'-' must be the whole tag")
		default:
			return ft, protocol.NewMalformedAttribute("unknown attribute: " + key)
		}
	}

	if deprecationDetail && !deprecatedSet {
		ft.metadata = ft.metadata.WithDeprecated(true)
	}
	return ft, nil
}

// splitTag splits a tag on commas. Single quotes group a value that
// contains commas; the quotes are removed.
func splitTag(tag string) ([]string, error) {
	var (
		items   []string
		current strings.Builder
		quoted  bool
	)
	for _, r := range tag {
		switch {
		case r == '\'':
			quoted = !quoted
		case r == ',' && !quoted:
			items = append(items, current.String())
			current.Reset()
		default:
			current.WriteRune(r)
		}
	}
	if quoted {
		return nil, protocol.NewMalformedAttribute("unterminated quote in tag: " + tag)
	}
	items = append(items, current.String())

	for _, item := range items {
		if strings.TrimSpace(item) == "" {
			return nil, protocol.NewMalformedAttribute("empty attribute in tag: " + tag)
		}
	}
	return items, nil
}

func flag(key, value string, hasValue bool) (bool, error) {
	if !hasValue {
		return true, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, protocol.NewMalformedAttribute(key + " expects true or false, got " + strconv.Quote(value))
	}
	return b, nil
}

func validateRename(name string) error {
	switch {
	case name == "":
		return protocol.NewInvalidRename("a rename cannot be empty")
	case strings.Contains(name, " "):
		return protocol.NewInvalidRename("a rename cannot contain spaces")
	case unicode.IsDigit([]rune(name)[0]):
		return protocol.NewInvalidRename("a rename cannot start with a number")
	}
	for _, r := range name {
		if !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9') {
			return protocol.NewInvalidRename("a rename can only contain a-z, A-Z and 0-9")
		}
	}
	return nil
}

// jsonTag returns the name and omit options of a json struct tag.
func jsonTag(f reflect.StructField) (name string, omit bool, skip bool) {
	tag, ok := f.Tag.Lookup("json")
	if !ok {
		return "", false, false
	}
	if tag == "-" {
		return "", false, true
	}
	name, opts, _ := strings.Cut(tag, ",")
	for _, opt := range strings.Split(opts, ",") {
		if opt == "omitempty" || opt == "omitzero" {
			omit = true
		}
	}
	return name, omit, false
}
