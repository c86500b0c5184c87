package syntax

import (
	"strconv"

	"github.com/rustyast/rustyast/ast"
	"github.com/rustyast/rustyast/token"
)

// FromAST converts a parsed file into a syntax tree. src is the source the
// file was parsed from; it supplies the description of constructs the
// schema does not model.
func FromAST(file *ast.File, src string) *Node {
	c := &converter{src: src}
	items := make([]*Node, 0, len(file.Items))
	for _, item := range file.Items {
		items = append(items, c.item(item))
	}
	return New(KindFile, nil, items...)
}

type converter struct {
	src string
}

// text returns the collapsed source text of n.
func (c *converter) text(n ast.Node) string {
	from, to := n.Pos().Char, n.End().Char
	if from < 0 || to > len(c.src) || from >= to {
		return ast.CollapseSpace(n.String())
	}
	return ast.CollapseSpace(c.src[from:to])
}

func (c *converter) unsupported(category Category, n ast.Node) *Node {
	return NewUnsupported(category, c.text(n))
}

func (c *converter) item(item ast.Item) *Node {
	switch x := item.(type) {
	case *ast.Fn:
		if len(x.Qualifiers) > 0 {
			return c.unsupported(CategoryItem, x)
		}
		return c.function(x)
	case *ast.Struct:
		return New(KindStruct, []Field{
			F("name", Ident(x.Name.Name)),
			F("visibility", OptionalText(x.Visibility)),
			F("generics", OptionalText(x.Generics.String())),
			F("shape", Ident(x.Kind.String())),
		}, c.fields(x.Fields))
	case *ast.Enum:
		variants := make([]*Node, 0, len(x.Variants))
		for _, v := range x.Variants {
			variants = append(variants, New(KindVariant, []Field{
				F("name", Ident(v.Name.Name)),
				F("shape", Ident(v.Kind.String())),
			}, c.fields(v.Fields), c.optExpr(v.Discriminant)))
		}
		return New(KindEnum, []Field{
			F("name", Ident(x.Name.Name)),
			F("visibility", OptionalText(x.Visibility)),
			F("generics", OptionalText(x.Generics.String())),
		}, New(KindVariants, nil, variants...))
	}
	return c.unsupported(CategoryItem, item)
}

func (c *converter) function(fn *ast.Fn) *Node {
	params := make([]*Node, 0, len(fn.Params))
	for _, p := range fn.Params {
		params = append(params, c.param(p))
	}
	body := NewNone()
	if fn.Body != nil {
		body = c.block(fn.Body)
	}
	returnType := None()
	if fn.Return != nil {
		returnType = Text(c.text(fn.Return))
	}
	return New(KindFunction, []Field{
		F("name", Ident(fn.Name.Name)),
		F("visibility", OptionalText(fn.Visibility)),
		F("generics", OptionalText(fn.Generics.String())),
		F("return_type", returnType),
	}, New(KindParameters, nil, params...), body)
}

func (c *converter) param(p ast.Param) *Node {
	switch x := p.(type) {
	case *ast.SelfParam:
		if x.Type != nil {
			// self: Box<Self> carries a type like any other parameter
			return New(KindParameter, []Field{
				F("name", Ident("self")),
				F("mutable", Bool(x.Mutable)),
			}, c.typ(x.Type))
		}
		return New(KindSelfParameter, []Field{
			F("reference", Bool(x.Reference)),
			F("mutable", Bool(x.Mutable)),
		})
	case *ast.TypedParam:
		return New(KindParameter, []Field{
			F("name", patternName(x.Pattern)),
			F("mutable", Bool(x.Pattern.Mutable)),
		}, c.typ(x.Type))
	}
	return c.unsupported(CategoryItem, p)
}

// patternName returns the bound name of a simple pattern, or the pattern's
// text for anything else.
func patternName(p *ast.Pattern) Value {
	if p.Simple && !p.ByRef {
		return Ident(p.Name)
	}
	return Text(p.Text)
}

func (c *converter) fields(fields []*ast.StructField) *Node {
	nodes := make([]*Node, 0, len(fields))
	for i, f := range fields {
		name := strconv.Itoa(i)
		if f.Name != nil {
			name = f.Name.Name
		}
		nodes = append(nodes, New(KindField, []Field{
			F("name", Ident(name)),
			F("visibility", OptionalText(f.Visibility)),
		}, c.typ(f.Type)))
	}
	return New(KindFields, nil, nodes...)
}

func (c *converter) block(b *ast.Block) *Node {
	stmts := make([]*Node, 0, len(b.Stmts))
	for _, s := range b.Stmts {
		stmts = append(stmts, c.stmt(s))
	}
	return New(KindBlock, nil, stmts...)
}

func (c *converter) stmt(s ast.Stmt) *Node {
	switch x := s.(type) {
	case *ast.Let:
		if x.Else != nil {
			return c.unsupported(CategoryStatement, x)
		}
		return New(KindLet, []Field{
			F("name", patternName(x.Pattern)),
			F("mutable", Bool(x.Pattern.Mutable)),
		}, c.optType(x.Type), c.optExpr(x.Value))
	case *ast.ExprStmt:
		return New(KindExprStmt, []Field{F("semicolon", Bool(x.Semicolon))}, c.expr(x.X))
	case *ast.ItemStmt:
		return New(KindItemStmt, nil, c.item(x.Item))
	}
	return c.unsupported(CategoryStatement, s)
}

func (c *converter) optExpr(e ast.Expr) *Node {
	if e == nil {
		return NewNone()
	}
	return c.expr(e)
}

func (c *converter) optType(t ast.Type) *Node {
	if t == nil {
		return NewNone()
	}
	return c.typ(t)
}

func (c *converter) exprs(kind Kind, exprs []ast.Expr) *Node {
	nodes := make([]*Node, 0, len(exprs))
	for _, e := range exprs {
		nodes = append(nodes, c.expr(e))
	}
	return New(kind, nil, nodes...)
}

func (c *converter) expr(e ast.Expr) *Node {
	switch x := e.(type) {
	case *ast.Binary:
		return New(KindBinary, []Field{F("op", Symbol(x.Op))}, c.expr(x.X), c.expr(x.Y))
	case *ast.Unary:
		return New(KindUnary, []Field{F("op", Symbol(x.Op))}, c.expr(x.X))
	case *ast.Assign:
		return New(KindAssign, []Field{F("op", Symbol(x.Op))}, c.expr(x.X), c.expr(x.Y))
	case *ast.Call:
		return New(KindCall, nil, c.expr(x.Fun), c.exprs(KindArguments, x.Args))
	case *ast.MethodCall:
		method := Ident(x.Name.Name)
		if x.Turbofish != "" {
			method = Text(x.Name.Name + x.Turbofish)
		}
		return New(KindMethodCall, []Field{F("method", method)}, c.expr(x.X), c.exprs(KindArguments, x.Args))
	case *ast.FieldExpr:
		return New(KindFieldAccess, []Field{F("name", Ident(x.Name.Name))}, c.expr(x.X))
	case *ast.IndexExpr:
		return New(KindIndex, nil, c.expr(x.X), c.expr(x.Index))
	case *ast.Path:
		return New(KindPath, []Field{F("name", Ident(x.Text))})
	case *ast.ParenExpr:
		return New(KindParen, nil, c.expr(x.X))
	case *ast.TupleExpr:
		return c.exprs(KindTuple, x.Elems)
	case *ast.ArrayExpr:
		return c.exprs(KindArray, x.Elems)
	case *ast.ArrayRepeat:
		return New(KindArrayRepeat, nil, c.expr(x.Elem), c.expr(x.Len))
	case *ast.RangeExpr:
		return New(KindRange, []Field{F("limits", Symbol(x.Op))}, c.optExpr(x.Low), c.optExpr(x.High))
	case *ast.CastExpr:
		return New(KindCast, nil, c.expr(x.X), c.typ(x.Type))
	case *ast.Block:
		if x.Label != "" || x.Unsafe {
			return c.unsupported(CategoryExpression, x)
		}
		return c.block(x)
	case *ast.IfExpr:
		return New(KindIf, nil, c.expr(x.Cond), c.block(x.Then), c.optExpr(x.Else))
	case *ast.WhileExpr:
		return New(KindWhile, []Field{F("label", OptionalText(x.Label))}, c.expr(x.Cond), c.block(x.Body))
	case *ast.LoopExpr:
		return New(KindLoop, []Field{F("label", OptionalText(x.Label))}, c.block(x.Body))
	case *ast.ForExpr:
		return New(KindFor, []Field{
			F("label", OptionalText(x.Label)),
			F("pattern", patternName(x.Pattern)),
		}, c.expr(x.Iter), c.block(x.Body))
	case *ast.ReturnExpr:
		return New(KindReturn, nil, c.optExpr(x.Value))
	case *ast.BreakExpr:
		return New(KindBreak, []Field{F("label", OptionalText(x.Label))}, c.optExpr(x.Value))
	case *ast.ContinueExpr:
		return New(KindContinue, []Field{F("label", OptionalText(x.Label))})
	case *ast.MacroCall:
		return New(KindMacro, []Field{
			F("name", Ident(x.Path.Text)),
			F("tokens", OptionalText(x.Tokens)),
		})
	case *ast.IntLit:
		digits, suffix, ok := normalizeInt(x.Literal)
		if !ok {
			return c.unsupported(CategoryLiteral, x)
		}
		return New(KindInt, []Field{F("value", Int(digits)), F("suffix", OptionalText(suffix))})
	case *ast.FloatLit:
		value, suffix, ok := normalizeFloat(x.Literal)
		if !ok {
			return c.unsupported(CategoryLiteral, x)
		}
		return New(KindFloat, []Field{F("value", Float(value)), F("suffix", OptionalText(suffix))})
	case *ast.StrLit:
		if x.Kind == token.BYTESTR {
			return c.unsupported(CategoryLiteral, x)
		}
		return New(KindStr, []Field{F("value", Text(x.Literal))})
	case *ast.CharLit:
		return New(KindChar, []Field{F("value", Text(x.Literal))})
	case *ast.BoolLit:
		return New(KindBool, []Field{F("value", Bool(x.Value))})
	}
	return c.unsupported(CategoryExpression, e)
}

func (c *converter) typ(t ast.Type) *Node {
	switch x := t.(type) {
	case *ast.PathType:
		args := make([]*Node, 0, len(x.Args))
		for _, arg := range x.Args {
			args = append(args, c.typ(arg))
		}
		return New(KindNamedType, []Field{F("name", Ident(x.Name))}, New(KindTypeArguments, nil, args...))
	case *ast.RefType:
		return New(KindReferenceType, []Field{
			F("lifetime", OptionalText(x.Lifetime)),
			F("mutable", Bool(x.Mutable)),
		}, c.typ(x.Elem))
	case *ast.TupleType:
		elems := make([]*Node, 0, len(x.Elems))
		for _, elem := range x.Elems {
			elems = append(elems, c.typ(elem))
		}
		return New(KindTupleType, nil, elems...)
	case *ast.ArrayType:
		return New(KindArrayType, nil, c.typ(x.Elem), c.expr(x.Len))
	case *ast.SliceType:
		return New(KindSliceType, nil, c.typ(x.Elem))
	}
	return c.unsupported(CategoryType, t)
}
