package parser

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyast/rustyast/ast"
	"github.com/rustyast/rustyast/errors"
)

func parseFile(t *testing.T, input string) *ast.File {
	t.Helper()
	file, err := Parse(context.Background(), input)
	require.NoError(t, err, input)
	return file
}

func parseFn(t *testing.T, input string) *ast.Fn {
	t.Helper()
	file := parseFile(t, input)
	require.Len(t, file.Items, 1)
	fn, ok := file.Items[0].(*ast.Fn)
	require.True(t, ok, "got %T", file.Items[0])
	return fn
}

// parseExpr parses input as the single statement of a function body and
// returns its expression.
func parseExpr(t *testing.T, input string) ast.Expr {
	t.Helper()
	fn := parseFn(t, "fn f() { "+input+" }")
	require.Len(t, fn.Body.Stmts, 1, input)
	stmt, ok := fn.Body.Stmts[0].(*ast.ExprStmt)
	require.True(t, ok, "got %T", fn.Body.Stmts[0])
	return stmt.X
}

func parseErrors(t *testing.T, input string) *Errors {
	t.Helper()
	_, err := Parse(context.Background(), input, WithFilename("test.rs"))
	require.Error(t, err, input)
	perrs, ok := err.(*Errors)
	require.True(t, ok, "got %T", err)
	return perrs
}

func TestFunction(t *testing.T) {
	fn := parseFn(t, "pub fn add<T: Add>(a: T, mut b: T) -> T where T: Copy { a + b }")
	assert.Equal(t, "pub", fn.Visibility)
	assert.Equal(t, "add", fn.Name.Name)
	assert.Equal(t, "<T: Add>", fn.Generics.Params)
	assert.Equal(t, "where T: Copy", fn.Generics.Where)
	require.Len(t, fn.Params, 2)

	a := fn.Params[0].(*ast.TypedParam)
	assert.Equal(t, "a", a.Pattern.Name)
	assert.False(t, a.Pattern.Mutable)
	b := fn.Params[1].(*ast.TypedParam)
	assert.Equal(t, "b", b.Pattern.Name)
	assert.True(t, b.Pattern.Mutable)

	assert.Equal(t, "T", fn.Return.String())
	require.Len(t, fn.Body.Stmts, 1)
	stmt := fn.Body.Stmts[0].(*ast.ExprStmt)
	assert.False(t, stmt.Semicolon)
	assert.Equal(t, "(a + b)", stmt.X.String())
}

func TestSelfParams(t *testing.T) {
	tests := []struct {
		input     string
		reference bool
		mutable   bool
		typ       string
	}{
		{"fn f(self) {}", false, false, ""},
		{"fn f(mut self) {}", false, true, ""},
		{"fn f(&self) {}", true, false, ""},
		{"fn f(&mut self) {}", true, true, ""},
		{"fn f(&'a self) {}", true, false, ""},
		{"fn f(self: Box<Self>) {}", false, false, "Box<Self>"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			fn := parseFn(t, tt.input)
			require.Len(t, fn.Params, 1)
			self, ok := fn.Params[0].(*ast.SelfParam)
			require.True(t, ok)
			assert.Equal(t, tt.reference, self.Reference)
			assert.Equal(t, tt.mutable, self.Mutable)
			if tt.typ == "" {
				assert.Nil(t, self.Type)
			} else {
				assert.Equal(t, tt.typ, self.Type.String())
			}
		})
	}
}

func TestFnDeclaration(t *testing.T) {
	fn := parseFn(t, "fn decl(x: u8);")
	assert.Nil(t, fn.Body)
	assert.Nil(t, fn.Return)
}

func TestFnQualifiers(t *testing.T) {
	fn := parseFn(t, `pub(crate) const unsafe extern "C" fn raw() {}`)
	assert.Equal(t, "pub(crate)", fn.Visibility)
	assert.Equal(t, []string{"const", "unsafe", `extern "C"`}, fn.Qualifiers)
}

func TestStructs(t *testing.T) {
	file := parseFile(t, `
struct Unit;
pub struct Pair<T>(pub T, T);
struct Point { pub x: f64, y: f64, }
`)
	require.Len(t, file.Items, 3)

	unit := file.Items[0].(*ast.Struct)
	assert.Equal(t, ast.UnitStruct, unit.Kind)
	assert.Empty(t, unit.Fields)

	pair := file.Items[1].(*ast.Struct)
	assert.Equal(t, ast.TupleStruct, pair.Kind)
	assert.Equal(t, "<T>", pair.Generics.Params)
	require.Len(t, pair.Fields, 2)
	assert.Nil(t, pair.Fields[0].Name)
	assert.Equal(t, "pub", pair.Fields[0].Visibility)

	point := file.Items[2].(*ast.Struct)
	assert.Equal(t, ast.NamedStruct, point.Kind)
	require.Len(t, point.Fields, 2)
	assert.Equal(t, "x", point.Fields[0].Name.Name)
	assert.Equal(t, "f64", point.Fields[1].Type.String())
}

func TestEnum(t *testing.T) {
	file := parseFile(t, `
enum Message {
    Quit,
    Move { x: i32, y: i32 },
    Write(String),
    Code = 4,
}`)
	enum := file.Items[0].(*ast.Enum)
	require.Len(t, enum.Variants, 4)
	assert.Equal(t, ast.UnitStruct, enum.Variants[0].Kind)
	assert.Equal(t, ast.NamedStruct, enum.Variants[1].Kind)
	assert.Len(t, enum.Variants[1].Fields, 2)
	assert.Equal(t, ast.TupleStruct, enum.Variants[2].Kind)
	assert.Equal(t, "4", enum.Variants[3].Discriminant.String())
}

func TestVerbatimItems(t *testing.T) {
	file := parseFile(t, `
#[derive(Debug)]
use std::collections::HashMap;
impl<T> Trait for Foo<T> { fn a(&self) -> u8 { if x { 1 } else { 2 } } }
mod inner { fn g() {} }
static LIMIT: u32 = 10;
macro_rules! m { () => {}; }
extern "C" { fn abs(x: i32) -> i32; }
fn after() {}
`)
	require.Len(t, file.Items, 7)
	keywords := []string{"use", "impl", "mod", "static", "macro_rules", "extern"}
	for i, kw := range keywords {
		v, ok := file.Items[i].(*ast.Verbatim)
		require.True(t, ok, "item %d is %T", i, file.Items[i])
		assert.Equal(t, kw, v.Keyword)
	}
	assert.Equal(t, "use std::collections::HashMap;", file.Items[0].(*ast.Verbatim).Text)
	assert.Equal(t, "after", file.Items[6].(*ast.Fn).Name.Name)
}

func TestOperatorPrecedence(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"a + b * c", "(a + (b * c))"},
		{"a * b + c", "((a * b) + c)"},
		{"a - b - c", "((a - b) - c)"},
		{"-a * b", "((-a) * b)"},
		{"!a && b || c", "(((!a) && b) || c)"},
		{"a == b && c != d", "((a == b) && (c != d))"},
		{"a | b ^ c & d", "(a | (b ^ (c & d)))"},
		{"a << 2 + b", "(a << (2 + b))"},
		{"a as u64 * b", "((a as u64) * b)"},
		{"-x as i32", "((-x) as i32)"},
		{"*p + 1", "((*p) + 1)"},
		{"&mut v", "(&mut v)"},
		{"&&x", "(&(&x))"},
		{"a.b.c(1, 2)", "a.b.c(1, 2)"},
		{"v[i + 1]", "v[(i + 1)]"},
		{"f(x)(y)", "f(x)(y)"},
		{"x.0.1", "x.0.1"},
		{"iter.collect::<Vec<_>>()", "iter.collect::<Vec<_>>()"},
		{"a..b", "a..b"},
		{"..=n", "..=n"},
		{"a + 1..", "(a + 1).."},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, parseExpr(t, tt.input).String())
		})
	}
}

func TestAssignment(t *testing.T) {
	x := parseExpr(t, "a = b = c;")
	assign, ok := x.(*ast.Assign)
	require.True(t, ok)
	assert.Equal(t, "=", assign.Op)
	inner, ok := assign.Y.(*ast.Assign)
	require.True(t, ok)
	assert.Equal(t, "b", inner.X.String())

	compound := parseExpr(t, "total += x * 2;").(*ast.Assign)
	assert.Equal(t, "+=", compound.Op)
	assert.Equal(t, "(x * 2)", compound.Y.String())
}

func TestStatements(t *testing.T) {
	fn := parseFn(t, `fn f() {
    let x;
    let mut y: Vec<u8> = Vec::new();
    let (a, b) = pair;
    let Some(v) = opt else { return; };
    ;
    y.push(1);
    if x { y } else { z }
    fn nested() {}
    x
}`)
	require.Len(t, fn.Body.Stmts, 8)

	let0 := fn.Body.Stmts[0].(*ast.Let)
	assert.Equal(t, "x", let0.Pattern.Name)
	assert.Nil(t, let0.Type)
	assert.Nil(t, let0.Value)

	let1 := fn.Body.Stmts[1].(*ast.Let)
	assert.True(t, let1.Pattern.Mutable)
	assert.Equal(t, "Vec<u8>", let1.Type.String())
	assert.Equal(t, "Vec::new()", let1.Value.String())

	let2 := fn.Body.Stmts[2].(*ast.Let)
	assert.False(t, let2.Pattern.Simple)
	assert.Equal(t, "(a, b)", let2.Pattern.Text)

	let3 := fn.Body.Stmts[3].(*ast.Let)
	assert.NotNil(t, let3.Else)

	assert.True(t, fn.Body.Stmts[4].(*ast.ExprStmt).Semicolon)
	assert.False(t, fn.Body.Stmts[5].(*ast.ExprStmt).Semicolon)
	assert.IsType(t, &ast.IfExpr{}, fn.Body.Stmts[5].(*ast.ExprStmt).X)
	assert.IsType(t, &ast.ItemStmt{}, fn.Body.Stmts[6])
	assert.False(t, fn.Body.Stmts[7].(*ast.ExprStmt).Semicolon)
}

func TestBlockLikeStatements(t *testing.T) {
	// A block-like expression ends its statement, so the "- 1" below starts
	// a new expression statement rather than a subtraction.
	fn := parseFn(t, "fn f() { if a { b } - 1 }")
	require.Len(t, fn.Body.Stmts, 2)
	assert.IsType(t, &ast.IfExpr{}, fn.Body.Stmts[0].(*ast.ExprStmt).X)
	assert.Equal(t, "(-1)", fn.Body.Stmts[1].(*ast.ExprStmt).X.String())

	// Method calls continue a block-like expression.
	fn = parseFn(t, "fn f() { match x { _ => v }.len() }")
	require.Len(t, fn.Body.Stmts, 1)
	assert.IsType(t, &ast.MethodCall{}, fn.Body.Stmts[0].(*ast.ExprStmt).X)
}

func TestControlFlow(t *testing.T) {
	ifx := parseExpr(t, "if a < b { 1 } else if let Some(x) = y { 2 } else { 3 }").(*ast.IfExpr)
	assert.Equal(t, "(a < b)", ifx.Cond.String())
	elseIf, ok := ifx.Else.(*ast.IfExpr)
	require.True(t, ok)
	letCond, ok := elseIf.Cond.(*ast.LetCond)
	require.True(t, ok)
	assert.Equal(t, "Some(x)", letCond.Pattern.Text)
	assert.IsType(t, &ast.Block{}, elseIf.Else)

	loop := parseExpr(t, "'outer: loop { break 'outer 5; }").(*ast.LoopExpr)
	assert.Equal(t, "'outer", loop.Label)
	brk := loop.Body.Stmts[0].(*ast.ExprStmt).X.(*ast.BreakExpr)
	assert.Equal(t, "'outer", brk.Label)
	assert.Equal(t, "5", brk.Value.String())

	forx := parseExpr(t, "for (i, v) in items.iter().enumerate() { continue; }").(*ast.ForExpr)
	assert.Equal(t, "(i, v)", forx.Pattern.Text)
	assert.Equal(t, "items.iter().enumerate()", forx.Iter.String())

	while := parseExpr(t, "while n > 0 { n -= 1; }").(*ast.WhileExpr)
	assert.Equal(t, "(n > 0)", while.Cond.String())
}

func TestStructLiteralAmbiguity(t *testing.T) {
	// In a condition, "x {" starts the block rather than a struct literal.
	ifx := parseExpr(t, "if x == y { a }").(*ast.IfExpr)
	assert.Equal(t, "(x == y)", ifx.Cond.String())

	lit := parseExpr(t, "Point { x: 1, y }").(*ast.StructLit)
	assert.Equal(t, "Point", lit.Path.Text)
	assert.Len(t, lit.Fields, 2)

	// Parentheses re-enable struct literals inside a condition.
	ifx = parseExpr(t, "if (S { a: 1 }).ok() { b }").(*ast.IfExpr)
	assert.IsType(t, &ast.MethodCall{}, ifx.Cond)
}

func TestClosureAndMatch(t *testing.T) {
	c := parseExpr(t, "move |a, b: u8| -> u8 { a + b }").(*ast.ClosureExpr)
	assert.True(t, c.Move)
	require.Len(t, c.Params, 2)
	assert.Equal(t, "u8", c.Params[1].Type.String())

	m := parseExpr(t, "match v { 0 => a, n if n > 9 => { b } _ => c }").(*ast.MatchExpr)
	require.Len(t, m.Arms, 3)
	assert.NotNil(t, m.Arms[1].Guard)
	assert.Equal(t, "_", m.Arms[2].Pattern.Text)
}

func TestLiterals(t *testing.T) {
	tests := []struct {
		input    string
		expected any
	}{
		{"42", &ast.IntLit{}},
		{"0xff_u8", &ast.IntLit{}},
		{"1.5e3", &ast.FloatLit{}},
		{`"hi\n"`, &ast.StrLit{}},
		{`r#"raw"#`, &ast.StrLit{}},
		{`b"bytes"`, &ast.StrLit{}},
		{"'c'", &ast.CharLit{}},
		{"b'c'", &ast.CharLit{}},
		{"true", &ast.BoolLit{}},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			x := parseExpr(t, tt.input)
			assert.IsType(t, tt.expected, x)
			assert.Equal(t, tt.input, x.String())
		})
	}
}

func TestCollections(t *testing.T) {
	assert.IsType(t, &ast.TupleExpr{}, parseExpr(t, "()"))
	assert.IsType(t, &ast.ParenExpr{}, parseExpr(t, "(a)"))
	tuple := parseExpr(t, "(a,)").(*ast.TupleExpr)
	assert.Len(t, tuple.Elems, 1)
	arr := parseExpr(t, "[1, 2, 3]").(*ast.ArrayExpr)
	assert.Len(t, arr.Elems, 3)
	rep := parseExpr(t, "[0u8; 16]").(*ast.ArrayRepeat)
	assert.Equal(t, "16", rep.Len.String())
}

func TestMacros(t *testing.T) {
	m := parseExpr(t, `println!("{} {}", a,   b)`).(*ast.MacroCall)
	assert.Equal(t, "println", m.Path.Text)
	assert.Equal(t, "(", m.Open)
	assert.Equal(t, `"{} {}", a, b`, m.Tokens)

	fn := parseFn(t, "fn f() { vec![1, 2]; }")
	assert.IsType(t, &ast.MacroCall{}, fn.Body.Stmts[0].(*ast.ExprStmt).X)
}

func TestTypes(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"u8", "u8"},
		{"&'a mut str", "&'a mut str"},
		{"Vec<Vec<u8>>", "Vec<Vec<u8>>"},
		{"HashMap<String, Vec<Option<i32>>>", "HashMap<String, Vec<Option<i32>>>"},
		{"std::io::Result<()>", "std::io::Result<()>"},
		{"(i32, f64)", "(i32, f64)"},
		{"[u8; 4]", "[u8; 4]"},
		{"&[T]", "&[T]"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			fn := parseFn(t, "fn f(x: "+tt.input+") {}")
			assert.Equal(t, tt.expected, fn.Params[0].(*ast.TypedParam).Type.String())
		})
	}
}

func TestVerbatimTypes(t *testing.T) {
	for _, input := range []string{"impl Fn(u8) -> u8", "Box<dyn Error + Send>", "fn(i32) -> i32", "*const u8", "!"} {
		t.Run(input, func(t *testing.T) {
			parseFn(t, "fn f(x: "+input+") {}")
		})
	}
}

func TestShiftVersusGenerics(t *testing.T) {
	x := parseExpr(t, "a >> b")
	assert.Equal(t, "(a >> b)", x.String())

	fn := parseFn(t, "fn f() { let v: Vec<Vec<u8>>= Vec::new(); }")
	let := fn.Body.Stmts[0].(*ast.Let)
	assert.Equal(t, "Vec<Vec<u8>>", let.Type.String())
	assert.Equal(t, "Vec::new()", let.Value.String())
}

func TestErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		code  errors.ErrorCode
		line  int
		col   int
		msg   string
	}{
		{"missing operand", "fn f() {\n    1 +;\n}", errors.E1004, 2, 8, "expected expression"},
		{"missing name", "fn (a: u8) {}", errors.E1006, 1, 4, ""},
		{"unclosed block", "fn f() {\n    let x = 1;\n", errors.E1007, 1, 8, "unclosed delimiter"},
		{"stray item", "let x = 1;", errors.E1003, 1, 1, ""},
		{"bad type", "fn f(a: 3) {}", errors.E1005, 1, 9, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			perrs := parseErrors(t, tt.input)
			first := perrs.First()
			assert.Equal(t, tt.code, first.Code())
			assert.Equal(t, tt.line, first.StartPosition().LineNumber())
			assert.Equal(t, tt.col, first.StartPosition().ColumnNumber())
			assert.Equal(t, "test.rs", first.File())
			if tt.msg != "" {
				assert.Contains(t, first.Message(), tt.msg)
			}
		})
	}
}

func TestErrorRecovery(t *testing.T) {
	input := "fn a() { 1 + }\nfn b(x: u8) {}\nstruct S { x }\nfn c() {}\n"
	perrs := parseErrors(t, input)
	assert.Equal(t, 2, perrs.Count())
	assert.Equal(t, errors.E1004, perrs.Errors()[0].Code())
	assert.Equal(t, 3, perrs.Errors()[1].StartPosition().LineNumber())

	file, _ := Parse(context.Background(), input)
	require.NotNil(t, file)
	var names []string
	for _, item := range file.Items {
		if fn, ok := item.(*ast.Fn); ok {
			names = append(names, fn.Name.Name)
		}
	}
	assert.Equal(t, []string{"b", "c"}, names)
}

func TestErrorLimit(t *testing.T) {
	input := strings.Repeat("fn (\n", 30)
	perrs := parseErrors(t, input)
	assert.LessOrEqual(t, perrs.Count(), MaxErrors)
}

func TestMaxDepth(t *testing.T) {
	input := "fn f() { " + strings.Repeat("[", 40) + strings.Repeat("]", 40) + " }"
	_, err := Parse(context.Background(), input)
	require.NoError(t, err)

	_, err = Parse(context.Background(), input, WithMaxDepth(10))
	require.Error(t, err)
	assert.Equal(t, errors.E1009, err.(*Errors).First().Code())
}

func TestCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Parse(ctx, "fn f() {}")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFormattedError(t *testing.T) {
	perrs := parseErrors(t, "fn main() {\n    let = 1;\n}")
	msg := perrs.First().FriendlyErrorMessage()
	assert.Contains(t, msg, "error[E1003]")
	assert.Contains(t, msg, "--> test.rs:2:9")
	assert.Contains(t, msg, "let = 1;")
}

func TestFormattedErrors(t *testing.T) {
	perrs := parseErrors(t, "fn a() { 1 + }\nfn b(x: u8) {}\nstruct S { x }\nfn c() {}\n")
	require.Equal(t, 2, perrs.Count())
	formatted := perrs.ToFormattedMultiple()
	require.Len(t, formatted, 2)
	assert.Equal(t, errors.E1004, formatted[0].Code)
	assert.Equal(t, 3, formatted[1].Line)
	assert.Equal(t, "struct S { x }", formatted[1].SourceLines[0].Text)

	msg := perrs.FriendlyErrorMessage()
	assert.Contains(t, msg, "error[E1004][1/2]: ")
	assert.Contains(t, msg, "--> test.rs:3:")
	assert.True(t, strings.HasSuffix(msg, "found 2 errors\n"))
}

func TestInspect(t *testing.T) {
	file := parseFile(t, "fn f(a: u8) -> u8 { let b = a * 2; b + g(a) }")
	var idents []string
	ast.Inspect(file, func(n ast.Node) bool {
		if p, ok := n.(*ast.Path); ok {
			idents = append(idents, p.Text)
		}
		return true
	})
	assert.Equal(t, []string{"a", "b", "g", "a"}, idents)

	count := 0
	for n := range ast.Preorder(file) {
		if _, ok := n.(*ast.Binary); ok {
			count++
		}
	}
	assert.Equal(t, 2, count)
}
