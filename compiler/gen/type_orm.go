package gen

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/syssam/schemagen/compiler/load"
)

// ormDecl is the declaration head of a document-mapper definition.
const ormDecl = "export const %s: SchemaDefinition ="

// ormName returns the definition constant of a type, e.g. "UserDef".
func (b *builder) ormName(name string) string {
	return name + b.cfg.ORMTypeSuffix()
}

// ormType maps a type token to its document-mapper schema type.
func (b *builder) ormType(t load.Type) string {
	switch t := t.(type) {
	case load.ArrayOf:
		return "[" + b.ormType(t.Elem) + "]"
	case load.Primitive:
		switch t {
		case load.TypeID:
			return "String"
		case load.TypeAny:
			return "{}"
		default:
			return titleCase(string(t))
		}
	case load.Reference:
		return b.ormName(string(t))
	default:
		panic(fmt.Sprintf("gen: unexpected field type %T", t))
	}
}

// ormValue renders the value of one definition member. Bare tokens are
// rendered bare, wrapped ones in object form. The required flag is only
// emitted with FeatureORMRequired.
func (b *builder) ormValue(t load.Type) string {
	inner, required := load.Unwrap(t)
	if _, ok := inner.(load.ArrayOf); !ok && !required {
		return b.ormType(inner)
	}
	opts := []string{"type: " + b.ormType(inner)}
	if required && b.ormRequired {
		opts = append(opts, "required: true")
	}
	return "{ " + strings.Join(opts, ", ") + " }"
}

// ormRecord renders a record as a document-mapper definition. Parent
// definitions are spread in first, and a record without fields of its own
// is the parent definition itself.
func (b *builder) ormRecord(d *load.Definition) string {
	head := fmt.Sprintf(ormDecl, b.ormName(d.Name))
	if !d.HasFields() && d.Extends != "" {
		return head + " " + b.ormName(d.Extends) + ";"
	}
	members := make([]string, 0, len(d.Fields)+1)
	if d.Extends != "" {
		members = append(members, "..."+b.ormName(d.Extends)+",")
	}
	for _, f := range d.Fields {
		members = append(members, f.Name+": "+b.ormValue(f.Type)+",")
	}
	return block(head, members, ";")
}

// ormEnum renders an enum as a string field constrained to its values.
func (b *builder) ormEnum(d *load.Definition) string {
	values := make([]string, 0, len(d.Values))
	for _, v := range d.Values {
		values = append(values, strconv.Quote(v))
	}
	return block(fmt.Sprintf(ormDecl, b.ormName(d.Name)), []string{
		"type: String,",
		"enum: [" + strings.Join(values, ", ") + "],",
	}, ";")
}
