package gen

// registry accumulates the emitted SDL field lines per type, so children can
// inline the fields of their parents. It lives for a single build.
type registry struct {
	lines map[string][]string
}

func newRegistry() *registry {
	return &registry{lines: make(map[string][]string)}
}

// register records the flattened field lines of a type. A type is
// registered exactly once.
func (r *registry) register(name string, lines []string) error {
	if _, ok := r.lines[name]; ok {
		return NewGenerationError("registry", "", "type "+name+" registered twice", nil)
	}
	r.lines[name] = lines
	return nil
}

// lookup returns the flattened field lines of a registered type.
func (r *registry) lookup(name string) ([]string, error) {
	lines, ok := r.lines[name]
	if !ok {
		return nil, NewGenerationError("registry", "", "type "+name+" used before it was emitted", nil)
	}
	return lines, nil
}
