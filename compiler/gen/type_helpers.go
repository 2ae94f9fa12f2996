package gen

import (
	"fmt"
	"strings"

	"github.com/go-openapi/inflect"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/syssam/schemagen/compiler/load"
)

// indent is the indentation of members inside generated declarations.
const indent = "  "

// titleCase capitalizes the first letter of a primitive token,
// e.g. "boolean" -> "Boolean".
func titleCase(s string) string {
	return cases.Title(language.English, cases.NoLower).String(s)
}

// goName returns the exported Go identifier for a schema name,
// e.g. "first_name" -> "FirstName".
func goName(s string) string {
	return inflect.Camelize(s)
}

// goEnumConst returns the Go constant name of an enum value,
// e.g. ("Color", "LIGHT_BLUE") -> "ColorLightBlue".
func goEnumConst(typ, value string) string {
	return typ + inflect.Camelize(strings.ToLower(value))
}

// block renders a brace-delimited declaration with one indented member per
// line. Empty lines stay empty.
func block(head string, members []string, tail string) string {
	if len(members) == 0 {
		return head + " {}" + tail
	}
	var b strings.Builder
	b.WriteString(head)
	b.WriteString(" {\n")
	for _, m := range members {
		if m != "" {
			b.WriteString(indent)
			b.WriteString(m)
		}
		b.WriteString("\n")
	}
	b.WriteString("}")
	b.WriteString(tail)
	return b.String()
}

// checkType verifies a field type is one of the shapes the backends render:
// an optional Required wrapper around either a token or an array of tokens.
func checkType(t load.Type) error {
	inner, _ := load.Unwrap(t)
	switch inner := inner.(type) {
	case load.Primitive, load.Reference:
		return checkToken(inner)
	case load.ArrayOf:
		switch elem := inner.Elem.(type) {
		case load.Primitive, load.Reference:
			return checkToken(elem)
		default:
			return fmt.Errorf("array element must be a type token, got %v", inner.Elem)
		}
	case nil:
		return fmt.Errorf("missing type")
	default:
		return fmt.Errorf("unsupported type %v", inner)
	}
}

func checkToken(t load.Type) error {
	switch t := t.(type) {
	case load.Primitive:
		if !load.IsPrimitive(string(t)) {
			return fmt.Errorf("unknown primitive %q", string(t))
		}
	case load.Reference:
		if t == "" {
			return fmt.Errorf("empty type reference")
		}
	}
	return nil
}
