package syntax

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyast/rustyast/parser"
)

func convert(t *testing.T, src string) *Node {
	t.Helper()
	file, err := parser.Parse(context.Background(), src)
	require.NoError(t, err, src)
	root := FromAST(file, src)
	require.NoError(t, Validate(root))
	return root
}

// outline renders the tree one node per line, indented by depth.
func outline(root *Node) string {
	var b strings.Builder
	for depth, n := range Preorder(root) {
		b.WriteString(strings.Repeat("  ", depth))
		b.WriteString(n.String())
		b.WriteString("\n")
	}
	return b.String()
}

func TestFromASTFunction(t *testing.T) {
	root := convert(t, "fn add(a: i32, b: i32) -> i32 { a + b }")
	assert.Equal(t, `File:
  Function: name=add, visibility=∅, generics=∅, return_type=i32
    Parameters:
      Parameter: name=a, mutable=false
        NamedType: name=i32
          TypeArguments:
      Parameter: name=b, mutable=false
        NamedType: name=i32
          TypeArguments:
    Block:
      ExprStmt: semicolon=false
        Binary: op=+
          Path: name=a
          Path: name=b
`, outline(root))
}

func TestFromASTItems(t *testing.T) {
	root := convert(t, `
pub struct Pair<T>(pub T, T);
enum E { A, B(u8) = 2 }
fn decl();
impl Foo {}
`)
	require.Equal(t, 4, root.NumChildren())

	pair := root.Child(0)
	assert.Equal(t, "Struct: name=Pair, visibility=pub, generics=<T>, shape=tuple", pair.String())
	fields := pair.Child(0)
	require.Equal(t, 2, fields.NumChildren())
	assert.Equal(t, "Field: name=0, visibility=pub", fields.Child(0).String())
	assert.Equal(t, "Field: name=1, visibility=∅", fields.Child(1).String())

	variants := root.Child(1).Child(0)
	require.Equal(t, 2, variants.NumChildren())
	assert.Equal(t, "Variant: name=A, shape=unit", variants.Child(0).String())
	assert.Equal(t, KindNone, variants.Child(0).Child(1).Kind())
	assert.Equal(t, "Int: value=2, suffix=∅", variants.Child(1).Child(1).String())

	decl := root.Child(2)
	assert.Equal(t, KindNone, decl.Child(1).Kind())

	assert.Equal(t, "Unsupported: category=item, description=impl Foo {}", root.Child(3).String())
}

func TestFromASTParameters(t *testing.T) {
	root := convert(t, "fn m(&mut self, (x, y): (u8, u8), self: Box<Self>) {}")
	params := root.Child(0).Child(0)
	require.Equal(t, 3, params.NumChildren())
	assert.Equal(t, "SelfParameter: reference=true, mutable=true", params.Child(0).String())
	assert.Equal(t, "Parameter: name=(x, y), mutable=false", params.Child(1).String())
	assert.Equal(t, KindTupleType, params.Child(1).Child(0).Kind())
	assert.Equal(t, "Parameter: name=self, mutable=false", params.Child(2).String())
	assert.Equal(t, "NamedType: name=Box", params.Child(2).Child(0).String())
}

func TestFromASTStatements(t *testing.T) {
	root := convert(t, `fn f() {
    let mut x: u8 = 1;
    let y;
    let Some(z) = o else { return; };
    unsafe { g() }
    x += 2;
}`)
	block := root.Child(0).Child(1)
	require.Equal(t, 5, block.NumChildren())

	let := block.Child(0)
	assert.Equal(t, "Let: name=x, mutable=true", let.String())
	assert.Equal(t, KindNamedType, let.Child(0).Kind())
	assert.Equal(t, KindInt, let.Child(1).Kind())

	bare := block.Child(1)
	assert.Equal(t, KindNone, bare.Child(0).Kind())
	assert.Equal(t, KindNone, bare.Child(1).Kind())

	letElse := block.Child(2)
	assert.Equal(t, KindUnsupported, letElse.Kind())
	desc, _ := letElse.Field("description")
	assert.True(t, strings.HasPrefix(desc.String(), "let Some(z) = o else"), desc.String())

	unsafeStmt := block.Child(3)
	assert.Equal(t, KindUnsupported, unsafeStmt.Child(0).Kind())

	assign := block.Child(4)
	assert.Equal(t, "ExprStmt: semicolon=true", assign.String())
	assert.Equal(t, "Assign: op=+=", assign.Child(0).String())
}

func TestFromASTExpressions(t *testing.T) {
	tests := []struct {
		src      string
		expected string
	}{
		{"-x", "Unary: op=-\n  Path: name=x\n"},
		{"&mut v", "Unary: op=&mut\n  Path: name=v\n"},
		{"f(1)", "Call:\n  Path: name=f\n  Arguments:\n    Int: value=1, suffix=∅\n"},
		{"v.iter::<u8>()", "MethodCall: method=iter::<u8>\n  Path: name=v\n  Arguments:\n"},
		{"p.x", "FieldAccess: name=x\n  Path: name=p\n"},
		{"t.0", "FieldAccess: name=0\n  Path: name=t\n"},
		{"a[0]", "Index:\n  Path: name=a\n  Int: value=0, suffix=∅\n"},
		{"(a)", "Paren:\n  Path: name=a\n"},
		{"()", "Tuple:\n"},
		{"[0; 2]", "ArrayRepeat:\n  Int: value=0, suffix=∅\n  Int: value=2, suffix=∅\n"},
		{"..n", "Range: limits=..\n  None:\n  Path: name=n\n"},
		{"x as f64", "Cast:\n  Path: name=x\n  NamedType: name=f64\n    TypeArguments:\n"},
		{"if a { b }", "If:\n  Path: name=a\n  Block:\n    ExprStmt: semicolon=false\n      Path: name=b\n  None:\n"},
		{"'l: loop {}", "Loop: label='l\n  Block:\n"},
		{"for i in v {}", "For: label=∅, pattern=i\n  Path: name=v\n  Block:\n"},
		{"return", "Return:\n  None:\n"},
		{"break 'a", "Break: label='a\n  None:\n"},
		{"continue", "Continue: label=∅\n"},
		{"println!(\"{}\", x)", "Macro: name=println, tokens=\"{}\", x\n"},
		{"std::mem::swap", "Path: name=std::mem::swap\n"},
		{"0xFFu8", "Int: value=255, suffix=u8\n"},
		{"1e3", "Float: value=1.0e3, suffix=∅\n"},
		{"'a'", "Char: value='a'\n"},
		{"\"s\"", "Str: value=\"s\"\n"},
		{"true", "Bool: value=true\n"},
		{"b\"x\"", "Unsupported: category=literal, description=b\"x\"\n"},
		{"|x| x", "Unsupported: category=expression, description=|x| x\n"},
		{"x?", "Unsupported: category=expression, description=x?\n"},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			root := convert(t, "fn f() { "+tt.src+" }")
			stmt := root.Child(0).Child(1).Child(0)
			assert.Equal(t, tt.expected, outline(stmt.Child(0)))
		})
	}
}

func TestFromASTTypes(t *testing.T) {
	tests := []struct {
		typ      string
		expected string
	}{
		{"Vec<u8>", "NamedType: name=Vec\n  TypeArguments:\n    NamedType: name=u8\n      TypeArguments:\n"},
		{"&'a str", "ReferenceType: lifetime='a, mutable=false\n  NamedType: name=str\n    TypeArguments:\n"},
		{"()", "TupleType:\n"},
		{"[u8; 4]", "ArrayType:\n  NamedType: name=u8\n    TypeArguments:\n  Int: value=4, suffix=∅\n"},
		{"&mut [T]", "ReferenceType: lifetime=∅, mutable=true\n  SliceType:\n    NamedType: name=T\n      TypeArguments:\n"},
		{"impl Fn()", "Unsupported: category=type, description=impl Fn()\n"},
	}
	for _, tt := range tests {
		t.Run(tt.typ, func(t *testing.T) {
			root := convert(t, "fn f(x: "+tt.typ+") {}")
			param := root.Child(0).Child(0).Child(0)
			assert.Equal(t, tt.expected, outline(param.Child(0)))
		})
	}
}

func TestFromASTUnsupportedItems(t *testing.T) {
	root := convert(t, "const fn c() {}\nuse a::b;\nstatic N: u8 = 1;\n")
	require.Equal(t, 3, root.NumChildren())
	for i := range root.NumChildren() {
		assert.Equal(t, KindUnsupported, root.Child(i).Kind())
	}
	desc, _ := root.Child(1).Field("description")
	assert.Equal(t, "use a::b;", desc.String())
}

func TestNormalizeInt(t *testing.T) {
	tests := []struct {
		lit    string
		digits string
		suffix string
		ok     bool
	}{
		{"42", "42", "", true},
		{"1_000", "1000", "", true},
		{"1_000i64", "1000", "i64", true},
		{"0xFF_u8", "255", "u8", true},
		{"0xff", "255", "", true},
		{"0o17", "15", "", true},
		{"0b1010_1010", "170", "", true},
		{"7usize", "7", "usize", true},
		{"340282366920938463463374607431768211455u128", "340282366920938463463374607431768211455", "u128", true},
		{"0x", "", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.lit, func(t *testing.T) {
			digits, suffix, ok := normalizeInt(tt.lit)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.digits, digits)
			assert.Equal(t, tt.suffix, suffix)
		})
	}
}

func TestNormalizeFloat(t *testing.T) {
	tests := []struct {
		lit    string
		value  string
		suffix string
		ok     bool
	}{
		{"1.5", "1.5", "", true},
		{"0.0", "0.0", "", true},
		{"1_000.25f64", "1000.25", "f64", true},
		{"1f32", "1.0", "f32", true},
		{"1e3", "1.0e3", "", true},
		{"2.5E-07", "2.5e-7", "", true},
		{"6.02e+23", "6.02e23", "", true},
		{"007.50", "7.50", "", true},
		{"1e", "", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.lit, func(t *testing.T) {
			value, suffix, ok := normalizeFloat(tt.lit)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.value, value)
			assert.Equal(t, tt.suffix, suffix)
		})
	}
}
