package gen

import (
	"fmt"
	"strconv"

	"github.com/syssam/schemagen/compiler/load"
)

// nativeType maps a field type to its native (TypeScript) type expression.
// Optionality is expressed on the member name, not on the type.
func nativeType(t load.Type) string {
	switch t := t.(type) {
	case load.Required:
		return nativeType(t.Type)
	case load.ArrayOf:
		return nativeType(t.Elem) + "[]"
	case load.Primitive:
		if t == load.TypeID {
			return "string"
		}
		return string(t)
	case load.Reference:
		return string(t)
	default:
		panic(fmt.Sprintf("gen: unexpected field type %T", t))
	}
}

// nativeMember renders one interface member, e.g. "age?: number;".
func nativeMember(f *load.Field) string {
	sep := "?:"
	if f.IsRequired() {
		sep = ":"
	}
	return f.Name + sep + " " + nativeType(f.Type) + ";"
}

// nativeRecord renders a record as an interface, or as a type alias to its
// parent when it declares no fields of its own.
func nativeRecord(d *load.Definition) string {
	if !d.HasFields() && d.Extends != "" {
		return fmt.Sprintf("export type %s = %s;", d.Name, d.Extends)
	}
	head := "export interface " + d.Name
	if d.Extends != "" {
		head += " extends " + d.Extends
	}
	members := make([]string, 0, len(d.Fields))
	for _, f := range d.Fields {
		members = append(members, nativeMember(f))
	}
	return block(head, members, "")
}

// nativeEnum renders an enum whose members map to their own names.
func nativeEnum(d *load.Definition) string {
	members := make([]string, 0, len(d.Values))
	for _, v := range d.Values {
		members = append(members, v+" = "+strconv.Quote(v)+",")
	}
	return block("export enum "+d.Name, members, "")
}
