package gen

import (
	"slices"
	"strings"

	"github.com/dave/jennifer/jen"

	"github.com/syssam/schemagen/compiler/load"
)

// Result holds the output of a build. Every sequence is in tree order, so a
// parent's fragment always precedes the fragments of its descendants.
type Result struct {
	// Order lists the type names in emission order.
	Order []string
	// Native holds the native (TypeScript) declarations.
	Native []string
	// ORM holds the document-mapper definitions.
	ORM []string
	// Fragments interleaves Native and ORM per type.
	Fragments []string
	// SDL holds the SDL fragment of every type.
	SDL []string
	// SDLDocument wraps all SDL fragments in one exported literal.
	SDLDocument string
	// Go holds the Go declarations, nil unless FeatureGoStructs is enabled.
	Go *jen.File
	// Scalars lists the custom SDL scalars the document references.
	Scalars []string
	// MaxDepth is the longest extends chain of the model, 0 when no type
	// extends another.
	MaxDepth int
}

// Lines returns the body of the main artifact: the interleaved fragments
// followed by the wrapped SDL document.
func (r *Result) Lines() []string {
	return append(slices.Clone(r.Fragments), r.SDLDocument)
}

// SDLSource returns the SDL fragments as one unwrapped document.
func (r *Result) SDLSource() string {
	return strings.Join(r.SDL, "\n")
}

// builder holds the state of a single build.
type builder struct {
	cfg         *Config
	registry    *registry
	res         *Result
	goFile      *jen.File
	ormRequired bool
	usesAny     bool
}

func newBuilder(cfg *Config) *builder {
	b := &builder{
		cfg:         cfg,
		registry:    newRegistry(),
		res:         &Result{},
		ormRequired: cfg.featureOn(FeatureORMRequired.Name),
	}
	if cfg.featureOn(FeatureGoStructs.Name) {
		b.goFile = b.newGoFile()
	}
	return b
}

// Build synthesizes the native declarations, document-mapper definitions
// and SDL document of a model. It is a pure function of its inputs and
// fails as a whole: no partial result is returned with an error.
// A nil config selects the defaults.
func Build(cfg *Config, m *load.Model) (*Result, error) {
	if m == nil {
		return nil, NewConfigError("Model", nil, "model cannot be nil")
	}
	tree, err := NewTree(m)
	if err != nil {
		return nil, err
	}
	b := newBuilder(cfg)
	if err := tree.Walk(b.emit); err != nil {
		return nil, err
	}
	res := b.finish()
	if cfg.featureOn(FeatureSDLValidate.Name) {
		if err := ValidateSDL(res.SDLSource(), res.Scalars...); err != nil {
			return nil, err
		}
	}
	return res, nil
}

// emit dispatches one tree node to every backend.
func (b *builder) emit(n *Node) error {
	if err := check(n, b.cfg.IDFieldName()); err != nil {
		return err
	}
	d := n.Def
	var native, orm, sdl string
	switch d.Kind() {
	case load.KindRecord:
		var err error
		if sdl, err = b.sdlRecord(d); err != nil {
			return err
		}
		native, orm = nativeRecord(d), b.ormRecord(d)
		if b.goFile != nil {
			b.goRecord(d)
		}
	case load.KindEnum:
		native, orm, sdl = nativeEnum(d), b.ormEnum(d), b.sdlEnum(d)
		if b.goFile != nil {
			b.goEnum(d)
		}
	}
	b.res.MaxDepth = max(b.res.MaxDepth, n.Depth())
	b.res.Order = append(b.res.Order, d.Name)
	b.res.Native = append(b.res.Native, native)
	b.res.ORM = append(b.res.ORM, orm)
	b.res.Fragments = append(b.res.Fragments, native, orm)
	b.res.SDL = append(b.res.SDL, sdl)
	return nil
}

// finish wraps the SDL fragments into the exported document.
func (b *builder) finish() *Result {
	lines := make([]string, 0, len(b.res.SDL)+2)
	lines = append(lines, "export const "+b.cfg.SDLExportName()+" = gql`")
	lines = append(lines, b.res.SDL...)
	lines = append(lines, "`;")
	b.res.SDLDocument = strings.Join(lines, "\n")
	b.res.Go = b.goFile
	if b.usesAny {
		b.res.Scalars = []string{anyScalar}
	}
	return b.res
}

// check verifies the definition of a node has a shape every backend can render.
// A record may not declare a field, or the identity field, that it already
// has through its ancestors or its own field list.
func check(n *Node, idField string) error {
	d := n.Def
	switch d.Kind() {
	case load.KindInvalid:
		if d.Values != nil {
			return NewDefinitionError(d.Name, "", "enum values cannot be combined with fields or extends")
		}
		return NewDefinitionError(d.Name, "", "definition must declare fields or values")
	case load.KindEnum:
		if len(d.Values) == 0 {
			return NewDefinitionError(d.Name, "", "enum must declare at least one value")
		}
	case load.KindRecord:
		if p := n.Parent; !p.IsRoot() && p.Def.Kind() == load.KindEnum {
			return NewDefinitionError(d.Name, "", "cannot extend enum type "+p.Name)
		}
		owner := inheritedFields(n, idField)
		if d.Meta.DBBase {
			if by, ok := owner[idField]; ok {
				return NewDefinitionError(d.Name, idField, "identity field already inherited from "+by)
			}
			owner[idField] = d.Name
		}
		for _, f := range d.Fields {
			if err := checkType(f.Type); err != nil {
				return NewDefinitionError(d.Name, f.Name, err.Error())
			}
			switch by, ok := owner[f.Name]; {
			case ok && by == d.Name && f.Name == idField && d.Meta.DBBase:
				return NewDefinitionError(d.Name, f.Name, "field collides with the identity field")
			case ok && by == d.Name:
				return NewDefinitionError(d.Name, f.Name, "field declared more than once")
			case ok:
				return NewDefinitionError(d.Name, f.Name, "field already inherited from "+by)
			}
			owner[f.Name] = d.Name
		}
	}
	return nil
}

// inheritedFields maps every field name a node inherits to the ancestor
// declaring it. The identity field of a persisted ancestor is included.
func inheritedFields(n *Node, idField string) map[string]string {
	owner := make(map[string]string)
	for p := n.Parent; p != nil && !p.IsRoot(); p = p.Parent {
		if p.Def.Meta.DBBase {
			owner[idField] = p.Name
		}
		for _, f := range p.Def.Fields {
			owner[f.Name] = p.Name
		}
	}
	return owner
}
