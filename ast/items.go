package ast

import (
	"bytes"
	"strings"

	"github.com/rustyast/rustyast/token"
)

// StructKind distinguishes the three shapes of struct and variant bodies.
type StructKind int

const (
	UnitStruct  StructKind = iota // struct S; / Variant
	TupleStruct                   // struct S(T); / Variant(T)
	NamedStruct                   // struct S { f: T } / Variant { f: T }
)

func (k StructKind) String() string {
	switch k {
	case TupleStruct:
		return "tuple"
	case NamedStruct:
		return "named"
	default:
		return "unit"
	}
}

// Generics holds the generic parameter list and where clause of an item as
// source text. Both are empty when absent.
type Generics struct {
	Params string // "<T: Clone, 'a>"
	Where  string // "where T: Debug"
}

func (g Generics) String() string {
	switch {
	case g.Params != "" && g.Where != "":
		return g.Params + " " + g.Where
	case g.Where != "":
		return g.Where
	default:
		return g.Params
	}
}

// Fn is a function declaration.
type Fn struct {
	Visibility string   // "", "pub", "pub(crate)", ...
	Qualifiers []string // "const", "async", "unsafe", "extern \"C\""
	FnPos      token.Position
	Name       *Ident
	Generics   Generics
	Params     []Param
	Rparen     token.Position
	Return     Type   // nil when the function returns unit implicitly
	Body       *Block // nil for a declaration without a body
	Semi       token.Position
}

func (x *Fn) itemNode() {}

func (x *Fn) Pos() token.Position { return x.FnPos }

func (x *Fn) End() token.Position {
	if x.Body != nil {
		return x.Body.End()
	}
	return x.Semi.Advance(1)
}

func (x *Fn) String() string {
	var out bytes.Buffer
	if x.Visibility != "" {
		out.WriteString(x.Visibility + " ")
	}
	for _, q := range x.Qualifiers {
		out.WriteString(q + " ")
	}
	out.WriteString("fn ")
	out.WriteString(x.Name.Name)
	out.WriteString(x.Generics.Params)
	params := make([]string, 0, len(x.Params))
	for _, p := range x.Params {
		params = append(params, p.String())
	}
	out.WriteString("(" + strings.Join(params, ", ") + ")")
	if x.Return != nil {
		out.WriteString(" -> " + x.Return.String())
	}
	if x.Generics.Where != "" {
		out.WriteString(" " + x.Generics.Where)
	}
	if x.Body == nil {
		out.WriteString(";")
	} else {
		out.WriteString(" " + x.Body.String())
	}
	return out.String()
}

// Param is a function parameter: either a *TypedParam or a *SelfParam.
type Param interface {
	Node
	paramNode()
}

// TypedParam is a parameter of the form "pattern: Type".
type TypedParam struct {
	Pattern *Pattern
	Type    Type
}

func (x *TypedParam) paramNode() {}

func (x *TypedParam) Pos() token.Position { return x.Pattern.Pos() }
func (x *TypedParam) End() token.Position { return x.Type.End() }
func (x *TypedParam) String() string      { return x.Pattern.String() + ": " + x.Type.String() }

// SelfParam is a method receiver: self, mut self, &self, &mut self, &'a self
// or self: Type.
type SelfParam struct {
	From      token.Position
	To        token.Position
	Reference bool
	Lifetime  string
	Mutable   bool
	Type      Type // explicit "self: Type", otherwise nil
}

func (x *SelfParam) paramNode() {}

func (x *SelfParam) Pos() token.Position { return x.From }
func (x *SelfParam) End() token.Position { return x.To }

func (x *SelfParam) String() string {
	var out bytes.Buffer
	if x.Reference {
		out.WriteString("&")
		if x.Lifetime != "" {
			out.WriteString(x.Lifetime + " ")
		}
	}
	if x.Mutable {
		out.WriteString("mut ")
	}
	out.WriteString("self")
	if x.Type != nil {
		out.WriteString(": " + x.Type.String())
	}
	return out.String()
}

// Struct is a struct declaration.
type Struct struct {
	Visibility string
	StructPos  token.Position
	Name       *Ident
	Generics   Generics
	Kind       StructKind
	Fields     []*StructField
	Close      token.Position // position of the closing "}" or ";"
}

func (x *Struct) itemNode() {}

func (x *Struct) Pos() token.Position { return x.StructPos }
func (x *Struct) End() token.Position { return x.Close.Advance(1) }

func (x *Struct) String() string {
	var out bytes.Buffer
	if x.Visibility != "" {
		out.WriteString(x.Visibility + " ")
	}
	out.WriteString("struct " + x.Name.Name + x.Generics.Params)
	out.WriteString(fieldList(x.Kind, x.Fields))
	if x.Kind != NamedStruct {
		out.WriteString(";")
	}
	return out.String()
}

// StructField is a field of a struct or enum variant. Name is nil for tuple
// fields.
type StructField struct {
	Visibility string
	From       token.Position
	Name       *Ident
	Type       Type
}

func (x *StructField) Pos() token.Position { return x.From }
func (x *StructField) End() token.Position { return x.Type.End() }

func (x *StructField) String() string {
	var out bytes.Buffer
	if x.Visibility != "" {
		out.WriteString(x.Visibility + " ")
	}
	if x.Name != nil {
		out.WriteString(x.Name.Name + ": ")
	}
	out.WriteString(x.Type.String())
	return out.String()
}

// Enum is an enum declaration.
type Enum struct {
	Visibility string
	EnumPos    token.Position
	Name       *Ident
	Generics   Generics
	Variants   []*Variant
	Rbrace     token.Position
}

func (x *Enum) itemNode() {}

func (x *Enum) Pos() token.Position { return x.EnumPos }
func (x *Enum) End() token.Position { return x.Rbrace.Advance(1) }

func (x *Enum) String() string {
	var out bytes.Buffer
	if x.Visibility != "" {
		out.WriteString(x.Visibility + " ")
	}
	out.WriteString("enum " + x.Name.Name + x.Generics.Params + " { ")
	variants := make([]string, 0, len(x.Variants))
	for _, v := range x.Variants {
		variants = append(variants, v.String())
	}
	out.WriteString(strings.Join(variants, ", "))
	out.WriteString(" }")
	return out.String()
}

// Variant is one enum variant.
type Variant struct {
	Name         *Ident
	Kind         StructKind
	Fields       []*StructField
	Discriminant Expr // "= value", otherwise nil
	To           token.Position
}

func (x *Variant) Pos() token.Position { return x.Name.Pos() }
func (x *Variant) End() token.Position { return x.To }

func (x *Variant) String() string {
	s := x.Name.Name + fieldList(x.Kind, x.Fields)
	if x.Discriminant != nil {
		s += " = " + x.Discriminant.String()
	}
	return s
}

func fieldList(kind StructKind, fields []*StructField) string {
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f.String())
	}
	switch kind {
	case TupleStruct:
		return "(" + strings.Join(parts, ", ") + ")"
	case NamedStruct:
		return " { " + strings.Join(parts, ", ") + " }"
	default:
		return ""
	}
}
