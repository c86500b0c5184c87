package ast

import (
	"bytes"
	"strings"

	"github.com/rustyast/rustyast/token"
)

// Path is a possibly qualified name such as x, self, Vec::new or
// Vec::<i32>::new.
type Path struct {
	From     token.Position
	To       token.Position
	Segments []string // segment names without generic arguments
	Text     string   // source text, whitespace collapsed
}

func (x *Path) exprNode() {}

func (x *Path) Pos() token.Position { return x.From }
func (x *Path) End() token.Position { return x.To }
func (x *Path) String() string      { return x.Text }

// Binary is an expression node that describes a binary operation between
// two expressions.
type Binary struct {
	X     Expr           // left operand
	OpPos token.Position // position of operator
	Op    string         // operator
	Y     Expr           // right operand
}

func (x *Binary) exprNode() {}

func (x *Binary) Pos() token.Position { return x.X.Pos() }
func (x *Binary) End() token.Position { return x.Y.End() }

func (x *Binary) String() string {
	return "(" + x.X.String() + " " + x.Op + " " + x.Y.String() + ")"
}

// Unary is a prefix operation: -x, !x, *x, &x or &mut x.
type Unary struct {
	OpPos token.Position
	Op    string
	X     Expr
}

func (x *Unary) exprNode() {}

func (x *Unary) Pos() token.Position { return x.OpPos }
func (x *Unary) End() token.Position { return x.X.End() }

func (x *Unary) String() string {
	if x.Op == "&mut" {
		return "(&mut " + x.X.String() + ")"
	}
	return "(" + x.Op + x.X.String() + ")"
}

// Assign is a plain or compound assignment such as x = 1 or x += 1.
type Assign struct {
	X     Expr
	OpPos token.Position
	Op    string
	Y     Expr
}

func (x *Assign) exprNode() {}

func (x *Assign) Pos() token.Position { return x.X.Pos() }
func (x *Assign) End() token.Position { return x.Y.End() }

func (x *Assign) String() string {
	return x.X.String() + " " + x.Op + " " + x.Y.String()
}

// Call is an expression node that describes the invocation of a function.
type Call struct {
	Fun    Expr
	Lparen token.Position
	Args   []Expr
	Rparen token.Position
}

func (x *Call) exprNode() {}

func (x *Call) Pos() token.Position { return x.Fun.Pos() }
func (x *Call) End() token.Position { return x.Rparen.Advance(1) }

func (x *Call) String() string {
	return x.Fun.String() + "(" + joinExprs(x.Args) + ")"
}

// MethodCall is a method invocation on a receiver: x.method::<T>(args).
type MethodCall struct {
	X         Expr
	Name      *Ident
	Turbofish string // "::<T>", or empty
	Lparen    token.Position
	Args      []Expr
	Rparen    token.Position
}

func (x *MethodCall) exprNode() {}

func (x *MethodCall) Pos() token.Position { return x.X.Pos() }
func (x *MethodCall) End() token.Position { return x.Rparen.Advance(1) }

func (x *MethodCall) String() string {
	return x.X.String() + "." + x.Name.Name + x.Turbofish + "(" + joinExprs(x.Args) + ")"
}

// FieldExpr is a field access. Tuple indexes use their digits as the name.
type FieldExpr struct {
	X    Expr
	Name *Ident
}

func (x *FieldExpr) exprNode() {}

func (x *FieldExpr) Pos() token.Position { return x.X.Pos() }
func (x *FieldExpr) End() token.Position { return x.Name.End() }
func (x *FieldExpr) String() string      { return x.X.String() + "." + x.Name.Name }

// IndexExpr is an expression node that describes indexing on a value.
type IndexExpr struct {
	X      Expr
	Lbrack token.Position
	Index  Expr
	Rbrack token.Position
}

func (x *IndexExpr) exprNode() {}

func (x *IndexExpr) Pos() token.Position { return x.X.Pos() }
func (x *IndexExpr) End() token.Position { return x.Rbrack.Advance(1) }
func (x *IndexExpr) String() string      { return x.X.String() + "[" + x.Index.String() + "]" }

// ParenExpr is a parenthesized expression.
type ParenExpr struct {
	Lparen token.Position
	X      Expr
	Rparen token.Position
}

func (x *ParenExpr) exprNode() {}

func (x *ParenExpr) Pos() token.Position { return x.Lparen }
func (x *ParenExpr) End() token.Position { return x.Rparen.Advance(1) }
func (x *ParenExpr) String() string      { return "(" + x.X.String() + ")" }

// TupleExpr is a tuple expression. The unit value () has no elements.
type TupleExpr struct {
	Lparen token.Position
	Elems  []Expr
	Rparen token.Position
}

func (x *TupleExpr) exprNode() {}

func (x *TupleExpr) Pos() token.Position { return x.Lparen }
func (x *TupleExpr) End() token.Position { return x.Rparen.Advance(1) }

func (x *TupleExpr) String() string {
	if len(x.Elems) == 1 {
		return "(" + x.Elems[0].String() + ",)"
	}
	return "(" + joinExprs(x.Elems) + ")"
}

// ArrayExpr is an array literal listing its elements.
type ArrayExpr struct {
	Lbrack token.Position
	Elems  []Expr
	Rbrack token.Position
}

func (x *ArrayExpr) exprNode() {}

func (x *ArrayExpr) Pos() token.Position { return x.Lbrack }
func (x *ArrayExpr) End() token.Position { return x.Rbrack.Advance(1) }
func (x *ArrayExpr) String() string      { return "[" + joinExprs(x.Elems) + "]" }

// ArrayRepeat is an array literal of the form [value; length].
type ArrayRepeat struct {
	Lbrack token.Position
	Elem   Expr
	Len    Expr
	Rbrack token.Position
}

func (x *ArrayRepeat) exprNode() {}

func (x *ArrayRepeat) Pos() token.Position { return x.Lbrack }
func (x *ArrayRepeat) End() token.Position { return x.Rbrack.Advance(1) }
func (x *ArrayRepeat) String() string      { return "[" + x.Elem.String() + "; " + x.Len.String() + "]" }

// RangeExpr is a range with optional bounds: a..b, a.., ..b, .., a..=b.
type RangeExpr struct {
	From token.Position
	Low  Expr // nil when open
	Op   string
	High Expr // nil when open
	To   token.Position
}

func (x *RangeExpr) exprNode() {}

func (x *RangeExpr) Pos() token.Position { return x.From }
func (x *RangeExpr) End() token.Position { return x.To }

func (x *RangeExpr) String() string {
	var out bytes.Buffer
	if x.Low != nil {
		out.WriteString(x.Low.String())
	}
	out.WriteString(x.Op)
	if x.High != nil {
		out.WriteString(x.High.String())
	}
	return out.String()
}

// CastExpr is a type cast: x as T.
type CastExpr struct {
	X    Expr
	Type Type
}

func (x *CastExpr) exprNode() {}

func (x *CastExpr) Pos() token.Position { return x.X.Pos() }
func (x *CastExpr) End() token.Position { return x.Type.End() }
func (x *CastExpr) String() string      { return "(" + x.X.String() + " as " + x.Type.String() + ")" }

// Block is a brace-delimited sequence of statements. Blocks may be labeled
// or marked unsafe when used as expressions.
type Block struct {
	From   token.Position // start of the label, "unsafe" or "{"
	Label  string
	Unsafe bool
	Lbrace token.Position
	Stmts  []Stmt
	Rbrace token.Position
}

func (x *Block) exprNode() {}

func (x *Block) Pos() token.Position { return x.From }
func (x *Block) End() token.Position { return x.Rbrace.Advance(1) }

func (x *Block) String() string {
	var out bytes.Buffer
	if x.Label != "" {
		out.WriteString(x.Label + ": ")
	}
	if x.Unsafe {
		out.WriteString("unsafe ")
	}
	out.WriteString("{")
	for _, s := range x.Stmts {
		out.WriteString(" " + s.String())
	}
	out.WriteString(" }")
	return out.String()
}

// IfExpr is an if expression. Else is nil, a *Block or another *IfExpr.
type IfExpr struct {
	IfPos token.Position
	Cond  Expr
	Then  *Block
	Else  Expr
}

func (x *IfExpr) exprNode() {}

func (x *IfExpr) Pos() token.Position { return x.IfPos }

func (x *IfExpr) End() token.Position {
	if x.Else != nil {
		return x.Else.End()
	}
	return x.Then.End()
}

func (x *IfExpr) String() string {
	s := "if " + x.Cond.String() + " " + x.Then.String()
	if x.Else != nil {
		s += " else " + x.Else.String()
	}
	return s
}

// LetCond is a let binding used as a condition: if let Some(x) = y.
type LetCond struct {
	LetPos  token.Position
	Pattern *Pattern
	Value   Expr
}

func (x *LetCond) exprNode() {}

func (x *LetCond) Pos() token.Position { return x.LetPos }
func (x *LetCond) End() token.Position { return x.Value.End() }
func (x *LetCond) String() string      { return "let " + x.Pattern.String() + " = " + x.Value.String() }

// WhileExpr is a while loop.
type WhileExpr struct {
	From  token.Position
	Label string
	Cond  Expr
	Body  *Block
}

func (x *WhileExpr) exprNode() {}

func (x *WhileExpr) Pos() token.Position { return x.From }
func (x *WhileExpr) End() token.Position { return x.Body.End() }

func (x *WhileExpr) String() string {
	return labelPrefix(x.Label) + "while " + x.Cond.String() + " " + x.Body.String()
}

// LoopExpr is an infinite loop.
type LoopExpr struct {
	From  token.Position
	Label string
	Body  *Block
}

func (x *LoopExpr) exprNode() {}

func (x *LoopExpr) Pos() token.Position { return x.From }
func (x *LoopExpr) End() token.Position { return x.Body.End() }
func (x *LoopExpr) String() string      { return labelPrefix(x.Label) + "loop " + x.Body.String() }

// ForExpr is an iterator loop: for pattern in iter { .. }.
type ForExpr struct {
	From    token.Position
	Label   string
	Pattern *Pattern
	Iter    Expr
	Body    *Block
}

func (x *ForExpr) exprNode() {}

func (x *ForExpr) Pos() token.Position { return x.From }
func (x *ForExpr) End() token.Position { return x.Body.End() }

func (x *ForExpr) String() string {
	return labelPrefix(x.Label) + "for " + x.Pattern.String() + " in " + x.Iter.String() + " " + x.Body.String()
}

// ReturnExpr is a return with an optional value.
type ReturnExpr struct {
	ReturnPos token.Position
	Value     Expr
}

func (x *ReturnExpr) exprNode() {}

func (x *ReturnExpr) Pos() token.Position { return x.ReturnPos }

func (x *ReturnExpr) End() token.Position {
	if x.Value != nil {
		return x.Value.End()
	}
	return x.ReturnPos.Advance(len("return"))
}

func (x *ReturnExpr) String() string {
	if x.Value != nil {
		return "return " + x.Value.String()
	}
	return "return"
}

// BreakExpr is a break with an optional label and value.
type BreakExpr struct {
	BreakPos token.Position
	Label    string
	Value    Expr
	To       token.Position
}

func (x *BreakExpr) exprNode() {}

func (x *BreakExpr) Pos() token.Position { return x.BreakPos }
func (x *BreakExpr) End() token.Position { return x.To }

func (x *BreakExpr) String() string {
	s := "break"
	if x.Label != "" {
		s += " " + x.Label
	}
	if x.Value != nil {
		s += " " + x.Value.String()
	}
	return s
}

// ContinueExpr is a continue with an optional label.
type ContinueExpr struct {
	ContinuePos token.Position
	Label       string
	To          token.Position
}

func (x *ContinueExpr) exprNode() {}

func (x *ContinueExpr) Pos() token.Position { return x.ContinuePos }
func (x *ContinueExpr) End() token.Position { return x.To }

func (x *ContinueExpr) String() string {
	if x.Label != "" {
		return "continue " + x.Label
	}
	return "continue"
}

// MacroCall is a macro invocation. Its arguments are kept as source text.
type MacroCall struct {
	Path   *Path
	Open   string // "(", "[" or "{"
	Tokens string // text between the delimiters, whitespace collapsed
	Close  token.Position
}

func (x *MacroCall) exprNode() {}

func (x *MacroCall) Pos() token.Position { return x.Path.Pos() }
func (x *MacroCall) End() token.Position { return x.Close.Advance(1) }

func (x *MacroCall) String() string {
	return x.Path.String() + "!" + x.Open + x.Tokens + closingDelim(x.Open)
}

// ClosureExpr is a closure: move |a, b: T| -> R { .. }.
type ClosureExpr struct {
	From   token.Position
	Move   bool
	Params []*ClosureParam
	Return Type
	Body   Expr
}

func (x *ClosureExpr) exprNode() {}

func (x *ClosureExpr) Pos() token.Position { return x.From }
func (x *ClosureExpr) End() token.Position { return x.Body.End() }

func (x *ClosureExpr) String() string {
	var out bytes.Buffer
	if x.Move {
		out.WriteString("move ")
	}
	params := make([]string, 0, len(x.Params))
	for _, p := range x.Params {
		params = append(params, p.String())
	}
	out.WriteString("|" + strings.Join(params, ", ") + "| ")
	if x.Return != nil {
		out.WriteString("-> " + x.Return.String() + " ")
	}
	out.WriteString(x.Body.String())
	return out.String()
}

// ClosureParam is a closure parameter with an optional type.
type ClosureParam struct {
	Pattern *Pattern
	Type    Type
}

func (x *ClosureParam) Pos() token.Position { return x.Pattern.Pos() }

func (x *ClosureParam) End() token.Position {
	if x.Type != nil {
		return x.Type.End()
	}
	return x.Pattern.End()
}

func (x *ClosureParam) String() string {
	if x.Type != nil {
		return x.Pattern.String() + ": " + x.Type.String()
	}
	return x.Pattern.String()
}

// MatchExpr is a match expression.
type MatchExpr struct {
	MatchPos token.Position
	X        Expr
	Arms     []*MatchArm
	Rbrace   token.Position
}

func (x *MatchExpr) exprNode() {}

func (x *MatchExpr) Pos() token.Position { return x.MatchPos }
func (x *MatchExpr) End() token.Position { return x.Rbrace.Advance(1) }

func (x *MatchExpr) String() string {
	arms := make([]string, 0, len(x.Arms))
	for _, a := range x.Arms {
		arms = append(arms, a.String())
	}
	return "match " + x.X.String() + " { " + strings.Join(arms, ", ") + " }"
}

// MatchArm is one arm of a match expression.
type MatchArm struct {
	Pattern *Pattern
	Guard   Expr
	Body    Expr
}

func (x *MatchArm) Pos() token.Position { return x.Pattern.Pos() }
func (x *MatchArm) End() token.Position { return x.Body.End() }

func (x *MatchArm) String() string {
	s := x.Pattern.String()
	if x.Guard != nil {
		s += " if " + x.Guard.String()
	}
	return s + " => " + x.Body.String()
}

// StructLit is a struct literal: Path { field: value, ..base }.
type StructLit struct {
	Path   *Path
	Fields []*FieldInit
	Base   Expr
	Rbrace token.Position
}

func (x *StructLit) exprNode() {}

func (x *StructLit) Pos() token.Position { return x.Path.Pos() }
func (x *StructLit) End() token.Position { return x.Rbrace.Advance(1) }

func (x *StructLit) String() string {
	parts := make([]string, 0, len(x.Fields)+1)
	for _, f := range x.Fields {
		parts = append(parts, f.String())
	}
	if x.Base != nil {
		parts = append(parts, ".."+x.Base.String())
	}
	return x.Path.String() + " { " + strings.Join(parts, ", ") + " }"
}

// FieldInit is one field of a struct literal. Value is nil for shorthand
// initializers.
type FieldInit struct {
	Name  *Ident
	Value Expr
}

func (x *FieldInit) Pos() token.Position { return x.Name.Pos() }

func (x *FieldInit) End() token.Position {
	if x.Value != nil {
		return x.Value.End()
	}
	return x.Name.End()
}

func (x *FieldInit) String() string {
	if x.Value != nil {
		return x.Name.Name + ": " + x.Value.String()
	}
	return x.Name.Name
}

// TryExpr is the error propagation operator: x?.
type TryExpr struct {
	X        Expr
	Question token.Position
}

func (x *TryExpr) exprNode() {}

func (x *TryExpr) Pos() token.Position { return x.X.Pos() }
func (x *TryExpr) End() token.Position { return x.Question.Advance(1) }
func (x *TryExpr) String() string      { return x.X.String() + "?" }

func joinExprs(exprs []Expr) string {
	parts := make([]string, 0, len(exprs))
	for _, e := range exprs {
		parts = append(parts, e.String())
	}
	return strings.Join(parts, ", ")
}

func labelPrefix(label string) string {
	if label == "" {
		return ""
	}
	return label + ": "
}

func closingDelim(open string) string {
	switch open {
	case "[":
		return "]"
	case "{":
		return "}"
	default:
		return ")"
	}
}
