package gen

import (
	"fmt"

	"github.com/dave/jennifer/jen"

	"github.com/syssam/schemagen/compiler/load"
)

// newGoFile creates the Jennifer file holding the Go declarations.
func (b *builder) newGoFile() *jen.File {
	f := jen.NewFile(b.cfg.GoPackageName())
	f.HeaderComment("Code generated by schemagen. DO NOT EDIT.")
	return f
}

// goBaseType returns the Go type of a field type, ignoring optionality.
func goBaseType(t load.Type) jen.Code {
	switch t := t.(type) {
	case load.Required:
		return goBaseType(t.Type)
	case load.ArrayOf:
		return jen.Index().Add(goBaseType(t.Elem))
	case load.Primitive:
		switch t {
		case load.TypeNumber:
			return jen.Float64()
		case load.TypeBoolean:
			return jen.Bool()
		case load.TypeAny:
			return jen.Any()
		default:
			return jen.String()
		}
	case load.Reference:
		return jen.Id(string(t))
	default:
		panic(fmt.Sprintf("gen: unexpected field type %T", t))
	}
}

// goFieldType returns the Go type of a struct field. Optional scalars and
// references are pointers; slices and any are nillable already.
func goFieldType(t load.Type) jen.Code {
	inner, required := load.Unwrap(t)
	if required || inner == load.TypeAny {
		return goBaseType(inner)
	}
	if _, ok := inner.(load.ArrayOf); ok {
		return goBaseType(inner)
	}
	return jen.Op("*").Add(goBaseType(inner))
}

// goStructTags returns the struct tags for a field.
func goStructTags(name string, required bool) map[string]string {
	if required {
		return map[string]string{"json": name}
	}
	return map[string]string{"json": name + ",omitempty"}
}

// goRecord declares a struct embedding its parent, or an alias of the
// parent when the record declares no fields of its own.
func (b *builder) goRecord(d *load.Definition) {
	if !d.HasFields() && d.Extends != "" {
		b.goFile.Commentf("%s is an alias of %s.", d.Name, d.Extends)
		b.goFile.Type().Id(d.Name).Op("=").Id(d.Extends)
		return
	}
	var fields []jen.Code
	if d.Meta.DBBase {
		id := b.cfg.IDFieldName()
		fields = append(fields, jen.Id("ID").String().Tag(map[string]string{"json": id, "bson": id}))
	}
	if d.Extends != "" {
		fields = append(fields, jen.Id(d.Extends))
	}
	for _, f := range d.Fields {
		fields = append(fields, jen.Id(goName(f.Name)).Add(goFieldType(f.Type)).Tag(goStructTags(f.Name, f.IsRequired())))
	}
	b.goFile.Commentf("%s is the Go declaration of the %s type.", d.Name, d.Name)
	b.goFile.Type().Id(d.Name).Struct(fields...)
}

// goEnum declares a string type with one constant per value and a Values
// method listing them in order.
func (b *builder) goEnum(d *load.Definition) {
	b.goFile.Commentf("%s is an enumeration of string values.", d.Name)
	b.goFile.Type().Id(d.Name).String()
	b.goFile.Const().DefsFunc(func(g *jen.Group) {
		for _, v := range d.Values {
			g.Id(goEnumConst(d.Name, v)).Id(d.Name).Op("=").Lit(v)
		}
	})
	b.goFile.Commentf("Values returns the %s values in declaration order.", d.Name)
	b.goFile.Func().Params(jen.Id(d.Name)).Id("Values").Params().Index().Id(d.Name).Block(
		jen.Return(jen.Index().Id(d.Name).ValuesFunc(func(g *jen.Group) {
			for _, v := range d.Values {
				g.Id(goEnumConst(d.Name, v))
			}
		})),
	)
}
