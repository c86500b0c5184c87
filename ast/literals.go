package ast

import (
	"strconv"

	"github.com/rustyast/rustyast/token"
)

// IntLit is an integer literal. Literal is the source text including any
// base prefix, underscores and type suffix.
type IntLit struct {
	ValuePos token.Position
	Literal  string
}

func (x *IntLit) exprNode() {}

func (x *IntLit) Pos() token.Position { return x.ValuePos }
func (x *IntLit) End() token.Position { return x.ValuePos.Advance(len(x.Literal)) }
func (x *IntLit) String() string      { return x.Literal }

// FloatLit is a floating point literal as written in the source.
type FloatLit struct {
	ValuePos token.Position
	Literal  string
}

func (x *FloatLit) exprNode() {}

func (x *FloatLit) Pos() token.Position { return x.ValuePos }
func (x *FloatLit) End() token.Position { return x.ValuePos.Advance(len(x.Literal)) }
func (x *FloatLit) String() string      { return x.Literal }

// StrLit is a string literal. Kind is token.STRING, token.RAWSTRING or
// token.BYTESTR and Literal keeps the quotes and prefix.
type StrLit struct {
	ValuePos token.Position
	Kind     token.Type
	Literal  string
}

func (x *StrLit) exprNode() {}

func (x *StrLit) Pos() token.Position { return x.ValuePos }
func (x *StrLit) End() token.Position { return x.ValuePos.Advance(len(x.Literal)) }
func (x *StrLit) String() string      { return x.Literal }

// CharLit is a character or byte literal including its quotes.
type CharLit struct {
	ValuePos token.Position
	Byte     bool
	Literal  string
}

func (x *CharLit) exprNode() {}

func (x *CharLit) Pos() token.Position { return x.ValuePos }
func (x *CharLit) End() token.Position { return x.ValuePos.Advance(len(x.Literal)) }
func (x *CharLit) String() string      { return x.Literal }

// BoolLit is true or false.
type BoolLit struct {
	ValuePos token.Position
	Value    bool
}

func (x *BoolLit) exprNode() {}

func (x *BoolLit) Pos() token.Position { return x.ValuePos }
func (x *BoolLit) End() token.Position { return x.ValuePos.Advance(len(x.String())) }
func (x *BoolLit) String() string      { return strconv.FormatBool(x.Value) }
