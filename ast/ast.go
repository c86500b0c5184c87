// Package ast defines the abstract syntax tree produced by parsing Rust
// source code.
package ast

import (
	"strings"

	"github.com/rustyast/rustyast/token"
)

// Node represents a portion of the syntax tree. All nodes have position
// information indicating where they appear in the source code.
type Node interface {
	// Pos returns the position of the first character belonging to the node.
	Pos() token.Position

	// End returns the position of the first character immediately after the node.
	End() token.Position

	// String returns a human friendly representation of the Node. This should
	// be similar to the original source code, but not necessarily identical.
	String() string
}

// Item represents a top-level declaration such as a function or struct.
type Item interface {
	Node
	itemNode()
}

// Stmt represents a statement inside a block.
type Stmt interface {
	Node
	stmtNode()
}

// Expr represents an expression node. Expressions evaluate to a value
// and may be embedded within other expressions.
type Expr interface {
	Node
	exprNode()
}

// Type represents a type annotation.
type Type interface {
	Node
	typeNode()
}

// File is the root node of a parsed source unit.
type File struct {
	Items []Item
	Start token.Position // start of the input
	EOF   token.Position // end of the input
}

func (f *File) Pos() token.Position { return f.Start }
func (f *File) End() token.Position { return f.EOF }

func (f *File) String() string {
	parts := make([]string, 0, len(f.Items))
	for _, item := range f.Items {
		parts = append(parts, item.String())
	}
	return strings.Join(parts, "\n")
}

// Ident is a bare identifier such as a function or field name.
type Ident struct {
	NamePos token.Position
	Name    string
}

func (x *Ident) Pos() token.Position { return x.NamePos }
func (x *Ident) End() token.Position { return x.NamePos.Advance(len(x.Name)) }
func (x *Ident) String() string      { return x.Name }

// Pattern is a binding pattern as written in let statements, parameters and
// for loops. Only simple identifier patterns are broken down further; all
// other patterns keep their source text.
type Pattern struct {
	From    token.Position
	To      token.Position
	Text    string // source text, whitespace collapsed
	Name    string // bound name, set only when Simple is true
	Mutable bool   // "mut name"
	ByRef   bool   // "ref name"
	Simple  bool   // the pattern binds exactly one identifier
}

func (p *Pattern) Pos() token.Position { return p.From }
func (p *Pattern) End() token.Position { return p.To }
func (p *Pattern) String() string      { return p.Text }

// Verbatim is a construct the parser recognizes only far enough to skip it.
// It implements Item, Expr and Type so it may stand in for any of them.
type Verbatim struct {
	Keyword string // leading keyword, for example "impl" or "use"
	From    token.Position
	To      token.Position
	Text    string // source text, whitespace collapsed
}

func (x *Verbatim) itemNode() {}
func (x *Verbatim) exprNode() {}
func (x *Verbatim) typeNode() {}

func (x *Verbatim) Pos() token.Position { return x.From }
func (x *Verbatim) End() token.Position { return x.To }
func (x *Verbatim) String() string      { return x.Text }

