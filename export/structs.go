package export

import (
	"reflect"

	"github.com/felixgeelhaar/arri-go/casing"
	"github.com/felixgeelhaar/arri-go/middleware"
	"github.com/felixgeelhaar/arri-go/protocol"
	"github.com/felixgeelhaar/arri-go/schema"
)

// structField is one property candidate after embedded structs are
// flattened.
type structField struct {
	field reflect.StructField
	key   string
	depth int
	tag   fieldTag
	omit  bool
}

// exportStruct exports a struct type as an object carrying its type
// metadata.
func (c *Context) exportStruct(t reflect.Type) (schema.Node, error) {
	props, err := c.structProperties(t)
	if err != nil {
		return nil, err
	}
	props.SetMetadata(c.exporter.typeMetadata(t))
	return props, nil
}

// structProperties builds the object for t without type metadata. Variant
// payloads use it directly.
func (c *Context) structProperties(t reflect.Type) (*schema.Properties, error) {
	e := c.exporter
	cfg := e.typeConfig(t)
	name := e.Name(t)

	fields, err := collectFields(t, cfg.renameAll, 0, map[reflect.Type]bool{t: true})
	if err != nil {
		return nil, attribute(err, name, "")
	}

	// Shallower fields hide deeper ones with the same key, like encoding/json.
	shallowest := make(map[string]int, len(fields))
	for _, f := range fields {
		if d, ok := shallowest[f.key]; !ok || f.depth < d {
			shallowest[f.key] = f.depth
		}
	}

	props := schema.NewProperties()
	if cfg.strict {
		props.SetStrict(true)
	}

	seen := make(map[string]bool, len(fields))
	for _, f := range fields {
		if f.depth != shallowest[f.key] || seen[f.key] {
			continue
		}
		seen[f.key] = true

		n, err := c.exportField(f)
		if err != nil {
			return nil, attribute(err, name, f.field.Name)
		}

		if f.optional() {
			props.SetOptionalProperty(f.key, n)
		} else {
			props.SetProperty(f.key, n)
		}
	}
	return props, nil
}

func (f structField) optional() bool {
	return f.tag.optional || f.omit || f.field.Type.Kind() == reflect.Pointer
}

func (c *Context) exportField(f structField) (schema.Node, error) {
	if f.tag.nullable && !f.optional() {
		return nil, protocol.NewNullableNotOptional(f.field.Type.String())
	}

	n, err := c.Export(f.field.Type)
	if err != nil {
		return nil, err
	}

	if !f.tag.metadata.IsZero() {
		if schema.Supports(n, "SetMetadata") {
			schema.SetMetadata(n, f.tag.metadata)
		} else {
			c.exporter.logger.Debug("field metadata dropped on reference",
				middleware.F("field", f.field.Name),
				middleware.F("form", schema.Form(n)),
			)
		}
	}

	if f.tag.nullable {
		switch n.(type) {
		case *schema.TaggedUnion:
			return nil, protocol.NewMalformedAttribute("a tagged union cannot be nullable")
		case *schema.Empty:
			// Already accepts null.
		case *schema.Ref:
			c.exporter.logger.Debug("nullable dropped on reference",
				middleware.F("field", f.field.Name),
			)
		default:
			schema.SetNullable(n, true)
		}
	}
	return n, nil
}

// collectFields lists the exported fields of t in declaration order,
// flattening embedded structs that have no explicit name.
func collectFields(t reflect.Type, renameAll []casing.Transform, depth int, visiting map[reflect.Type]bool) ([]structField, error) {
	var out []structField
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)

		tag, err := parseFieldTag(sf.Tag.Get("arri"))
		if err != nil {
			return nil, attribute(err, "", sf.Name)
		}
		jsonName, omit, jsonSkip := jsonTag(sf)
		if tag.skip || jsonSkip {
			continue
		}

		if sf.Anonymous && jsonName == "" && tag.rename == "" {
			et := sf.Type
			if et.Kind() == reflect.Pointer {
				et = et.Elem()
			}
			if et.Kind() == reflect.Struct {
				if visiting[et] {
					continue
				}
				visiting[et] = true
				embedded, err := collectFields(et, renameAll, depth+1, visiting)
				delete(visiting, et)
				if err != nil {
					return nil, err
				}
				out = append(out, embedded...)
				continue
			}
		}

		if !sf.IsExported() {
			continue
		}

		out = append(out, structField{
			field: sf,
			key:   fieldKey(sf, tag, jsonName, renameAll),
			depth: depth,
			tag:   tag,
			omit:  omit,
		})
	}
	return out, nil
}

// fieldKey picks the property key: rename, then the json tag name, then
// the Go field name under the rename-all transforms or casing.JSONKey.
func fieldKey(sf reflect.StructField, tag fieldTag, jsonName string, renameAll []casing.Transform) string {
	switch {
	case tag.rename != "":
		return tag.rename
	case jsonName != "":
		return jsonName
	case len(renameAll) > 0:
		return casing.ApplyAll(sf.Name, renameAll...)
	default:
		return casing.JSONKey(sf.Name)
	}
}
