// Package load holds the in-memory schema model consumed by the code
// generator, together with the decoders that build it from JSON or YAML
// definition documents.
package load

import "slices"

// Type describes the type of a field. It is a closed set of cases:
// Primitive, Reference, ArrayOf and Required.
type Type interface {
	// String returns the canonical token form of the type,
	// e.g. "number", "User", "[string]" or "number!".
	String() string
	isType()
}

type (
	// Primitive is one of the fixed base types that need no further expansion.
	Primitive string

	// Reference names another type defined in the model.
	Reference string

	// ArrayOf is a list of Elem.
	ArrayOf struct {
		Elem Type
	}

	// Required marks the wrapped type as non-optional.
	Required struct {
		Type Type
	}
)

// Primitive types.
const (
	TypeString  Primitive = "string"
	TypeNumber  Primitive = "number"
	TypeBoolean Primitive = "boolean"
	TypeID      Primitive = "id"
	TypeAny     Primitive = "any"
)

// arrayToken is the object-form token that introduces an ArrayOf.
const arrayToken = "array"

var primitives = map[string]Primitive{
	string(TypeString):  TypeString,
	string(TypeNumber):  TypeNumber,
	string(TypeBoolean): TypeBoolean,
	string(TypeID):      TypeID,
	string(TypeAny):     TypeAny,
}

// Token returns the Type for a bare type token: a Primitive if the token
// names one, a Reference otherwise.
func Token(s string) Type {
	if p, ok := primitives[s]; ok {
		return p
	}
	return Reference(s)
}

// IsPrimitive reports whether s names a primitive type.
func IsPrimitive(s string) bool {
	_, ok := primitives[s]
	return ok
}

func (p Primitive) String() string { return string(p) }
func (r Reference) String() string { return string(r) }
func (a ArrayOf) String() string   { return "[" + a.Elem.String() + "]" }
func (r Required) String() string  { return r.Type.String() + "!" }

func (Primitive) isType() {}
func (Reference) isType() {}
func (ArrayOf) isType()   {}
func (Required) isType()  {}

// Unwrap strips a Required wrapper, reporting whether one was present.
func Unwrap(t Type) (Type, bool) {
	if r, ok := t.(Required); ok {
		return r.Type, true
	}
	return t, false
}

// Field is a single named member of a record definition.
type Field struct {
	Name string
	Type Type
}

// IsRequired reports whether the field is non-optional.
func (f *Field) IsRequired() bool {
	_, ok := f.Type.(Required)
	return ok
}

// Meta holds definition-level markers.
type Meta struct {
	// DBBase marks a persisted root type that needs an identity field.
	DBBase bool
}

// Kind classifies the shape of a Definition.
type Kind uint8

// Definition kinds.
const (
	KindInvalid Kind = iota
	KindRecord
	KindEnum
)

// String implements fmt.Stringer.
func (k Kind) String() string {
	switch k {
	case KindRecord:
		return "record"
	case KindEnum:
		return "enum"
	default:
		return "invalid"
	}
}

// Definition is a named type declaration: either a record with fields and
// an optional parent, or an enum with an ordered list of values.
type Definition struct {
	Name string
	// Fields holds the record fields in declaration order. A nil slice means
	// the definition has no fields key at all; an empty one means "fields: {}".
	Fields []*Field
	// Extends names the parent type, if any.
	Extends string
	// Values holds the enum literals in declaration order.
	Values []string
	Meta   Meta
	// Pos is the "file:line" the definition was decoded from.
	Pos string
}

// Kind returns the shape of the definition.
func (d *Definition) Kind() Kind {
	record := d.Fields != nil || d.Extends != ""
	switch {
	case d.Values != nil && record:
		return KindInvalid
	case d.Values != nil:
		return KindEnum
	case record:
		return KindRecord
	default:
		return KindInvalid
	}
}

// HasFields reports whether the definition declares at least one field.
func (d *Definition) HasFields() bool {
	return len(d.Fields) > 0
}

// Model maps type names to their definitions. It is read-only once loaded.
type Model struct {
	defs map[string]*Definition
}

// NewModel returns a model holding the given definitions. A later
// definition replaces an earlier one with the same name.
func NewModel(defs ...*Definition) *Model {
	m := &Model{defs: make(map[string]*Definition, len(defs))}
	for _, d := range defs {
		m.Add(d)
	}
	return m
}

// Add inserts or replaces a definition.
func (m *Model) Add(d *Definition) {
	if m.defs == nil {
		m.defs = make(map[string]*Definition)
	}
	m.defs[d.Name] = d
}

// Merge adds all definitions of o into m, replacing those with the same name.
func (m *Model) Merge(o *Model) {
	for _, name := range o.Names() {
		m.Add(o.defs[name])
	}
}

// Get returns the definition with the given name.
func (m *Model) Get(name string) (*Definition, bool) {
	d, ok := m.defs[name]
	return d, ok
}

// Has reports whether the model defines name.
func (m *Model) Has(name string) bool {
	_, ok := m.defs[name]
	return ok
}

// Len returns the number of definitions.
func (m *Model) Len() int {
	return len(m.defs)
}

// Names returns all type names in lexical order.
func (m *Model) Names() []string {
	names := make([]string, 0, len(m.defs))
	for name := range m.defs {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
