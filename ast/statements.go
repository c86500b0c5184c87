package ast

import (
	"bytes"

	"github.com/rustyast/rustyast/token"
)

// Let is a local variable declaration: let pattern: Type = value else { .. };
type Let struct {
	LetPos  token.Position
	Pattern *Pattern
	Type    Type   // nil when not annotated
	Value   Expr   // nil when not initialized
	Else    *Block // diverging block of a let-else, otherwise nil
	Semi    token.Position
}

func (s *Let) stmtNode() {}

func (s *Let) Pos() token.Position { return s.LetPos }
func (s *Let) End() token.Position { return s.Semi.Advance(1) }

func (s *Let) String() string {
	var out bytes.Buffer
	out.WriteString("let ")
	out.WriteString(s.Pattern.String())
	if s.Type != nil {
		out.WriteString(": " + s.Type.String())
	}
	if s.Value != nil {
		out.WriteString(" = " + s.Value.String())
	}
	if s.Else != nil {
		out.WriteString(" else " + s.Else.String())
	}
	out.WriteString(";")
	return out.String()
}

// ExprStmt is an expression in statement position. Semicolon reports whether
// it was terminated by ";". The final expression of a block without a
// semicolon is the block's value.
type ExprStmt struct {
	X         Expr
	Semicolon bool
	Semi      token.Position
}

func (s *ExprStmt) stmtNode() {}

func (s *ExprStmt) Pos() token.Position { return s.X.Pos() }

func (s *ExprStmt) End() token.Position {
	if s.Semicolon {
		return s.Semi.Advance(1)
	}
	return s.X.End()
}

func (s *ExprStmt) String() string {
	if s.Semicolon {
		return s.X.String() + ";"
	}
	return s.X.String()
}

// ItemStmt is an item declared inside a block.
type ItemStmt struct {
	Item Item
}

func (s *ItemStmt) stmtNode() {}

func (s *ItemStmt) Pos() token.Position { return s.Item.Pos() }
func (s *ItemStmt) End() token.Position { return s.Item.End() }
func (s *ItemStmt) String() string      { return s.Item.String() }
