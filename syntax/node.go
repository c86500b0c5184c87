package syntax

import (
	"fmt"
	"slices"
)

// Node is one node of a syntax tree. Its fields and children are fixed by
// its kind's schema. Nodes are immutable once constructed.
type Node struct {
	kind     Kind
	fields   []Field
	children []*Node
}

// New returns a node of the given kind. It panics if fields or children do
// not match the kind's schema, which is a programming error in the caller.
func New(kind Kind, fields []Field, children ...*Node) *Node {
	if msg := checkShape(kind, fields, children); msg != "" {
		panic(fmt.Sprintf("syntax: %s", msg))
	}
	return &Node{
		kind:     kind,
		fields:   slices.Clone(fields),
		children: slices.Clone(children),
	}
}

// NewNone returns the marker node standing in for an absent child.
func NewNone() *Node {
	return &Node{kind: KindNone}
}

// NewUnsupported returns a node for a construct the schema does not model.
// An empty description is replaced with the category name so the
// description is never empty.
func NewUnsupported(category Category, description string) *Node {
	if description == "" {
		description = string(category)
	}
	return New(KindUnsupported, []Field{
		F("category", Text(string(category))),
		F("description", Text(description)),
	})
}

// Kind returns the node's kind.
func (n *Node) Kind() Kind { return n.kind }

// Label returns the node's kind label, for example "Function".
func (n *Node) Label() string { return n.kind.String() }

// Fields returns a copy of the node's fields in rendering order.
func (n *Node) Fields() []Field { return slices.Clone(n.fields) }

// Field returns the value of the named field.
func (n *Node) Field(name string) (Value, bool) {
	for _, f := range n.fields {
		if f.Name == name {
			return f.Value, true
		}
	}
	return Value{}, false
}

// Children returns a copy of the node's children in source order.
func (n *Node) Children() []*Node { return slices.Clone(n.children) }

// NumChildren returns the number of children.
func (n *Node) NumChildren() int { return len(n.children) }

// Child returns the i'th child.
func (n *Node) Child(i int) *Node { return n.children[i] }

// String returns the node's outline line without indentation, for example
// "Binary: op=+".
func (n *Node) String() string {
	if len(n.fields) == 0 {
		return n.Label() + ":"
	}
	buf := make([]byte, 0, 64)
	buf = append(buf, n.Label()...)
	buf = append(buf, ": "...)
	for i, f := range n.fields {
		if i > 0 {
			buf = append(buf, ", "...)
		}
		buf = append(buf, f.Name...)
		buf = append(buf, '=')
		buf = append(buf, f.Value.String()...)
	}
	return string(buf)
}
