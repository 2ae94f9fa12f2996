package gen

import (
	"fmt"

	"github.com/syssam/schemagen/compiler/load"
)

// anyScalar is the custom scalar standing in for the "any" primitive.
const anyScalar = "Any"

// Provenance markers bracketing inherited fields in flattened SDL types.
const (
	inheritStart = "# START Inherited from %s"
	inheritEnd   = "# END Inherited from %s"
)

// sdlType maps a field type to its SDL type reference.
func (b *builder) sdlType(t load.Type) string {
	switch t := t.(type) {
	case load.Required:
		return b.sdlType(t.Type) + "!"
	case load.ArrayOf:
		return "[" + b.sdlType(t.Elem) + "!]"
	case load.Primitive:
		switch t {
		case load.TypeID:
			return "ID"
		case load.TypeNumber:
			return "Int"
		case load.TypeAny:
			b.usesAny = true
			return anyScalar
		default:
			return titleCase(string(t))
		}
	case load.Reference:
		return string(t)
	default:
		panic(fmt.Sprintf("gen: unexpected field type %T", t))
	}
}

// sdlRecord renders a record as an SDL object type. SDL has no inheritance,
// so the flattened field lines of the parent are inlined first, and the
// full flattened list of this type is registered for its own children.
func (b *builder) sdlRecord(d *load.Definition) (string, error) {
	var lines []string
	if d.Meta.DBBase {
		lines = append(lines, b.cfg.IDFieldName()+": ID!")
	}
	if d.Extends != "" {
		inherited, err := b.registry.lookup(d.Extends)
		if err != nil {
			return "", err
		}
		lines = append(lines, fmt.Sprintf(inheritStart, d.Extends))
		lines = append(lines, inherited...)
		lines = append(lines, fmt.Sprintf(inheritEnd, d.Extends), "")
	}
	for _, f := range d.Fields {
		lines = append(lines, f.Name+": "+b.sdlType(f.Type))
	}
	if err := b.registry.register(d.Name, lines); err != nil {
		return "", err
	}
	if len(lines) == 0 {
		return "type " + d.Name, nil
	}
	return block("type "+d.Name, lines, ""), nil
}

// sdlEnum renders an enum block listing each value.
func (b *builder) sdlEnum(d *load.Definition) string {
	return block("enum "+d.Name, d.Values, "")
}
