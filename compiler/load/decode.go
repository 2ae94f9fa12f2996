package load

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// DecodeError describes a malformed definition document.
type DecodeError struct {
	Source  string // Document name
	Line    int    // 1-based line, 0 if unknown
	Type    string // Type name (if applicable)
	Field   string // Field name (if applicable)
	Message string
}

// Error implements the error interface.
func (e *DecodeError) Error() string {
	var b strings.Builder
	b.WriteString("load: ")
	b.WriteString(e.Source)
	if e.Line > 0 {
		b.WriteString(":")
		b.WriteString(strconv.Itoa(e.Line))
	}
	if e.Type != "" {
		b.WriteString(": type ")
		b.WriteString(e.Type)
	}
	if e.Field != "" {
		b.WriteString(" field ")
		b.WriteString(e.Field)
	}
	b.WriteString(": ")
	b.WriteString(e.Message)
	return b.String()
}

// ParseDocument decodes a JSON or YAML document mapping type names to
// definitions. Definitions are returned in document order and field order
// is preserved as declared.
func ParseDocument(source string, data []byte) ([]*Definition, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &DecodeError{Source: source, Message: err.Error()}
	}
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return nil, nil
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, &DecodeError{Source: source, Line: root.Line, Message: "document must be a mapping of type names to definitions"}
	}
	d := &decoder{source: source}
	defs := make([]*Definition, 0, len(root.Content)/2)
	seen := make(map[string]bool, len(root.Content)/2)
	for i := 0; i+1 < len(root.Content); i += 2 {
		key, val := root.Content[i], root.Content[i+1]
		if !isIdent(key.Value) {
			return nil, d.errorf(key, "", "", "invalid type name %q", key.Value)
		}
		if seen[key.Value] {
			return nil, d.errorf(key, key.Value, "", "type defined more than once")
		}
		seen[key.Value] = true
		def, err := d.definition(key, val)
		if err != nil {
			return nil, err
		}
		defs = append(defs, def)
	}
	return defs, nil
}

type decoder struct {
	source string
}

func (d *decoder) errorf(n *yaml.Node, typ, field, format string, args ...any) *DecodeError {
	return &DecodeError{
		Source:  d.source,
		Line:    n.Line,
		Type:    typ,
		Field:   field,
		Message: fmt.Sprintf(format, args...),
	}
}

func (d *decoder) definition(key, n *yaml.Node) (*Definition, error) {
	name := key.Value
	if n.Kind != yaml.MappingNode {
		return nil, d.errorf(n, name, "", "definition must be a mapping")
	}
	def := &Definition{
		Name: name,
		Pos:  fmt.Sprintf("%s:%d", d.source, key.Line),
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		k, v := n.Content[i], n.Content[i+1]
		switch k.Value {
		case "fields":
			fields, err := d.fields(name, v)
			if err != nil {
				return nil, err
			}
			def.Fields = fields
		case "extends":
			if v.Kind != yaml.ScalarNode || !isIdent(v.Value) {
				return nil, d.errorf(v, name, "", "extends must name a type")
			}
			def.Extends = v.Value
		case "values":
			values, err := d.values(name, v)
			if err != nil {
				return nil, err
			}
			def.Values = values
		case "meta":
			meta, err := d.meta(name, v)
			if err != nil {
				return nil, err
			}
			def.Meta = meta
		}
	}
	return def, nil
}

func (d *decoder) fields(typ string, n *yaml.Node) ([]*Field, error) {
	if n.Kind != yaml.MappingNode {
		return nil, d.errorf(n, typ, "", "fields must be a mapping")
	}
	fields := make([]*Field, 0, len(n.Content)/2)
	seen := make(map[string]bool, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		k, v := n.Content[i], n.Content[i+1]
		if !isIdent(k.Value) {
			return nil, d.errorf(k, typ, "", "invalid field name %q", k.Value)
		}
		if seen[k.Value] {
			return nil, d.errorf(k, typ, k.Value, "field declared more than once")
		}
		seen[k.Value] = true
		t, err := d.fieldType(typ, k.Value, v)
		if err != nil {
			return nil, err
		}
		fields = append(fields, &Field{Name: k.Value, Type: t})
	}
	return fields, nil
}

// fieldType decodes either a bare token or the object form
// {type, arrayType, required}.
func (d *decoder) fieldType(typ, field string, n *yaml.Node) (Type, error) {
	switch n.Kind {
	case yaml.ScalarNode:
		if n.Value == arrayToken {
			return nil, d.errorf(n, typ, field, "type array requires the object form with arrayType")
		}
		if !isIdent(n.Value) {
			return nil, d.errorf(n, typ, field, "invalid type token %q", n.Value)
		}
		return Token(n.Value), nil
	case yaml.MappingNode:
	default:
		return nil, d.errorf(n, typ, field, "field type must be a type token or an object")
	}
	var (
		token, elem string
		required    bool
	)
	for i := 0; i+1 < len(n.Content); i += 2 {
		k, v := n.Content[i], n.Content[i+1]
		switch k.Value {
		case "type":
			token = v.Value
		case "arrayType":
			elem = v.Value
		case "required":
			if err := v.Decode(&required); err != nil {
				return nil, d.errorf(v, typ, field, "required must be a boolean")
			}
		}
	}
	var t Type
	switch {
	case token == "":
		return nil, d.errorf(n, typ, field, "missing type")
	case token == arrayToken:
		if elem == "" {
			return nil, d.errorf(n, typ, field, "type array requires arrayType")
		}
		if elem == arrayToken || !isIdent(elem) {
			return nil, d.errorf(n, typ, field, "invalid arrayType %q", elem)
		}
		t = ArrayOf{Elem: Token(elem)}
	case elem != "":
		return nil, d.errorf(n, typ, field, "arrayType is only valid with type array")
	case !isIdent(token):
		return nil, d.errorf(n, typ, field, "invalid type token %q", token)
	default:
		t = Token(token)
	}
	if required {
		t = Required{Type: t}
	}
	return t, nil
}

func (d *decoder) values(typ string, n *yaml.Node) ([]string, error) {
	if n.Kind != yaml.SequenceNode {
		return nil, d.errorf(n, typ, "", "values must be a list")
	}
	values := make([]string, 0, len(n.Content))
	seen := make(map[string]bool, len(n.Content))
	for _, v := range n.Content {
		if v.Kind != yaml.ScalarNode || !isIdent(v.Value) {
			return nil, d.errorf(v, typ, "", "invalid enum value %q", v.Value)
		}
		if seen[v.Value] {
			return nil, d.errorf(v, typ, "", "duplicate enum value %q", v.Value)
		}
		seen[v.Value] = true
		values = append(values, v.Value)
	}
	return values, nil
}

func (d *decoder) meta(typ string, n *yaml.Node) (Meta, error) {
	var meta Meta
	if n.Kind != yaml.MappingNode {
		return meta, d.errorf(n, typ, "", "meta must be a mapping")
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		k, v := n.Content[i], n.Content[i+1]
		if k.Value == "dbBase" {
			if err := v.Decode(&meta.DBBase); err != nil {
				return meta, d.errorf(v, typ, "", "meta.dbBase must be a boolean")
			}
		}
	}
	return meta, nil
}

// isIdent reports whether s is a valid identifier in all output targets.
func isIdent(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case i > 0 && r >= '0' && r <= '9':
		default:
			return false
		}
	}
	return true
}
