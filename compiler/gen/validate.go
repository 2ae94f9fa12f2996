package gen

import (
	"strings"

	"github.com/vektah/gqlparser/v2"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/parser"
)

// sdlSourceName is the source name reported in SDL validation errors.
const sdlSourceName = "schema.graphql"

// ValidateSDL loads the SDL document with gqlparser and reports any schema
// error, such as references to undefined types or objects without fields.
// The given custom scalars are declared before the document is loaded.
func ValidateSDL(sdl string, scalars ...string) error {
	sources := make([]*ast.Source, 0, 2)
	if len(scalars) > 0 {
		var b strings.Builder
		for _, s := range scalars {
			b.WriteString("scalar ")
			b.WriteString(s)
			b.WriteString("\n")
		}
		sources = append(sources, &ast.Source{Name: "scalars.graphql", Input: b.String()})
	}
	sources = append(sources, &ast.Source{Name: sdlSourceName, Input: sdl})
	if _, err := gqlparser.LoadSchema(sources...); err != nil {
		return &ValidationError{Target: "sdl", Message: "invalid schema", Cause: err}
	}
	return nil
}

// ParseSDL checks the SDL document is syntactically valid and returns the
// names of the types it declares, in declaration order.
func ParseSDL(sdl string) ([]string, error) {
	doc, err := parser.ParseSchema(&ast.Source{Name: sdlSourceName, Input: sdl})
	if err != nil {
		return nil, &ValidationError{Target: "sdl", Message: "syntax error", Cause: err}
	}
	names := make([]string, 0, len(doc.Definitions))
	for _, def := range doc.Definitions {
		names = append(names, def.Name)
	}
	return names, nil
}
