package ast

import (
	"strings"

	"github.com/rustyast/rustyast/token"
)

// PathType is a named type such as i32, Vec<T> or std::io::Result<()>.
// Args holds the generic arguments of the final path segment.
type PathType struct {
	From token.Position
	To   token.Position
	Name string // path without generic arguments
	Args []Type
}

func (x *PathType) typeNode() {}

func (x *PathType) Pos() token.Position { return x.From }
func (x *PathType) End() token.Position { return x.To }

func (x *PathType) String() string {
	if len(x.Args) == 0 {
		return x.Name
	}
	return x.Name + "<" + joinTypes(x.Args) + ">"
}

// RefType is a reference type: &T, &mut T or &'a T.
type RefType struct {
	Amp      token.Position
	Lifetime string
	Mutable  bool
	Elem     Type
}

func (x *RefType) typeNode() {}

func (x *RefType) Pos() token.Position { return x.Amp }
func (x *RefType) End() token.Position { return x.Elem.End() }

func (x *RefType) String() string {
	s := "&"
	if x.Lifetime != "" {
		s += x.Lifetime + " "
	}
	if x.Mutable {
		s += "mut "
	}
	return s + x.Elem.String()
}

// TupleType is a tuple type. The unit type () has no elements.
type TupleType struct {
	Lparen token.Position
	Elems  []Type
	Rparen token.Position
}

func (x *TupleType) typeNode() {}

func (x *TupleType) Pos() token.Position { return x.Lparen }
func (x *TupleType) End() token.Position { return x.Rparen.Advance(1) }

func (x *TupleType) String() string {
	if len(x.Elems) == 1 {
		return "(" + x.Elems[0].String() + ",)"
	}
	return "(" + joinTypes(x.Elems) + ")"
}

// ArrayType is a fixed-length array type: [T; N].
type ArrayType struct {
	Lbrack token.Position
	Elem   Type
	Len    Expr
	Rbrack token.Position
}

func (x *ArrayType) typeNode() {}

func (x *ArrayType) Pos() token.Position { return x.Lbrack }
func (x *ArrayType) End() token.Position { return x.Rbrack.Advance(1) }
func (x *ArrayType) String() string      { return "[" + x.Elem.String() + "; " + x.Len.String() + "]" }

// SliceType is a slice type: [T].
type SliceType struct {
	Lbrack token.Position
	Elem   Type
	Rbrack token.Position
}

func (x *SliceType) typeNode() {}

func (x *SliceType) Pos() token.Position { return x.Lbrack }
func (x *SliceType) End() token.Position { return x.Rbrack.Advance(1) }
func (x *SliceType) String() string      { return "[" + x.Elem.String() + "]" }

func joinTypes(types []Type) string {
	parts := make([]string, 0, len(types))
	for _, t := range types {
		parts = append(parts, t.String())
	}
	return strings.Join(parts, ", ")
}
