package gen

import (
	"slices"
	"strings"

	"github.com/syssam/schemagen/compiler/load"
)

// Node is an entry of the inheritance tree. The root node is synthetic,
// has an empty name and emits nothing.
type Node struct {
	// Name of the type, empty for the root.
	Name string
	// Parent is nil for the root.
	Parent *Node
	// Children are the types extending this one, in emission order.
	Children []*Node
	// Def holds the type definition, nil for the root.
	Def *load.Definition
}

// IsRoot reports whether n is the synthetic root.
func (n *Node) IsRoot() bool {
	return n.Parent == nil
}

// Depth returns the number of extends hops from a top-level type (0).
// The root has depth -1.
func (n *Node) Depth() int {
	d := -1
	for p := n; p.Parent != nil; p = p.Parent {
		d++
	}
	return d
}

// Ancestors returns the ancestor names of n, nearest first.
func (n *Node) Ancestors() []string {
	var names []string
	for p := n.Parent; p != nil && !p.IsRoot(); p = p.Parent {
		names = append(names, p.Name)
	}
	return names
}

// Tree expresses the "extends" relationships of a model as a single tree
// rooted at a synthetic node. It is built once and never mutated afterwards.
type Tree struct {
	Root *Node

	model *load.Model
	// index maps every inserted name to its node.
	index map[string]*Node
	// resolving holds the names whose insertion is in progress, in order.
	resolving []string
}

// NewTree builds the inheritance tree of the model. Types are inserted in
// lexical order and parents are resolved on demand, so definitions may
// reference parents declared anywhere in the model. Siblings are ordered
// lexically by name.
func NewTree(m *load.Model) (*Tree, error) {
	t := &Tree{
		Root:  &Node{},
		model: m,
		index: make(map[string]*Node, m.Len()),
	}
	for _, name := range m.Names() {
		if err := t.insert(name); err != nil {
			return nil, err
		}
	}
	t.sort(t.Root)
	return t, nil
}

// insert adds name to the tree, inserting its parent chain first.
// It is a no-op for names already present.
func (t *Tree) insert(name string) error {
	if _, ok := t.index[name]; ok {
		return nil
	}
	if i := slices.Index(t.resolving, name); i >= 0 {
		chain := append(slices.Clone(t.resolving[i:]), name)
		return &CycleError{Chain: chain}
	}
	def, _ := t.model.Get(name)
	t.resolving = append(t.resolving, name)
	defer func() { t.resolving = t.resolving[:len(t.resolving)-1] }()

	parent := t.Root
	if ext := def.Extends; ext != "" {
		p, ok := t.index[ext]
		if !ok {
			if !t.model.Has(ext) {
				return &MissingParentError{Type: name, Parent: ext}
			}
			if err := t.insert(ext); err != nil {
				return err
			}
			p = t.index[ext]
		}
		parent = p
	}
	n := &Node{Name: name, Parent: parent, Def: def}
	parent.Children = append(parent.Children, n)
	t.index[name] = n
	return nil
}

// sort orders siblings lexically. Reordering siblings never moves a child
// ahead of its parent.
func (t *Tree) sort(n *Node) {
	slices.SortFunc(n.Children, func(a, b *Node) int {
		return strings.Compare(a.Name, b.Name)
	})
	for _, c := range n.Children {
		t.sort(c)
	}
}

// Node returns the node of the named type.
func (t *Tree) Node(name string) (*Node, bool) {
	n, ok := t.index[name]
	return n, ok
}

// Len returns the number of types in the tree, root excluded.
func (t *Tree) Len() int {
	return len(t.index)
}

// Walk visits every type in pre-order, so a parent is always visited
// before its descendants. The root is skipped. Walk stops at the first error.
func (t *Tree) Walk(fn func(*Node) error) error {
	return t.walk(t.Root, fn)
}

func (t *Tree) walk(n *Node, fn func(*Node) error) error {
	if !n.IsRoot() {
		if err := fn(n); err != nil {
			return err
		}
	}
	for _, c := range n.Children {
		if err := t.walk(c, fn); err != nil {
			return err
		}
	}
	return nil
}

// Names returns the type names in walk order.
func (t *Tree) Names() []string {
	names := make([]string, 0, t.Len())
	_ = t.Walk(func(n *Node) error {
		names = append(names, n.Name)
		return nil
	})
	return names
}
