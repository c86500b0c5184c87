package render

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/rustyast/rustyast/errors"
	"github.com/rustyast/rustyast/syntax"
)

func namedType(name string) *syntax.Node {
	return syntax.New(syntax.KindNamedType, []syntax.Field{syntax.F("name", syntax.Ident(name))},
		syntax.New(syntax.KindTypeArguments, nil))
}

func path(name string) *syntax.Node {
	return syntax.New(syntax.KindPath, []syntax.Field{syntax.F("name", syntax.Ident(name))})
}

func param(name string) *syntax.Node {
	return syntax.New(syntax.KindParameter, []syntax.Field{
		syntax.F("name", syntax.Ident(name)),
		syntax.F("mutable", syntax.Bool(false)),
	}, namedType("i32"))
}

// addFn is the tree of: fn add(a: i32, b: i32) -> i32 { a + b }
func addFn() *syntax.Node {
	fn := syntax.New(syntax.KindFunction, []syntax.Field{
		syntax.F("name", syntax.Ident("add")),
		syntax.F("visibility", syntax.None()),
		syntax.F("generics", syntax.None()),
		syntax.F("return_type", syntax.Text("i32")),
	},
		syntax.New(syntax.KindParameters, nil, param("a"), param("b")),
		syntax.New(syntax.KindBlock, nil,
			syntax.New(syntax.KindExprStmt, []syntax.Field{syntax.F("semicolon", syntax.Bool(false))},
				syntax.New(syntax.KindBinary, []syntax.Field{syntax.F("op", syntax.Symbol("+"))},
					path("a"), path("b")))),
	)
	return syntax.New(syntax.KindFile, nil, fn)
}

const addFnText = `Function: name=add, visibility=∅, generics=∅, return_type=i32
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
`

// literals is a tree exercising every value kind.
func literals() *syntax.Node {
	lit := func(kind syntax.Kind, v, suffix syntax.Value) *syntax.Node {
		return syntax.New(kind, []syntax.Field{syntax.F("value", v), syntax.F("suffix", suffix)})
	}
	return syntax.New(syntax.KindFile, nil,
		syntax.New(syntax.KindStruct, []syntax.Field{
			syntax.F("name", syntax.Ident("Wrapper")),
			syntax.F("visibility", syntax.Text("pub")),
			syntax.F("generics", syntax.Text("<T>")),
			syntax.F("shape", syntax.Ident("tuple")),
		}, syntax.New(syntax.KindFields, nil,
			syntax.New(syntax.KindField, []syntax.Field{
				syntax.F("name", syntax.Ident("0")),
				syntax.F("visibility", syntax.None()),
			}, syntax.New(syntax.KindArrayType, nil,
				namedType("u8"),
				lit(syntax.KindInt, syntax.Int("255"), syntax.Text("usize")))),
		)),
		syntax.New(syntax.KindEnum, []syntax.Field{
			syntax.F("name", syntax.Ident("E")),
			syntax.F("visibility", syntax.None()),
			syntax.F("generics", syntax.None()),
		}, syntax.New(syntax.KindVariants, nil,
			syntax.New(syntax.KindVariant, []syntax.Field{
				syntax.F("name", syntax.Ident("A")),
				syntax.F("shape", syntax.Ident("unit")),
			}, syntax.New(syntax.KindFields, nil), lit(syntax.KindFloat, syntax.Float("1.5e3"), syntax.None())),
		)),
		syntax.NewUnsupported(syntax.CategoryItem, `static S: &str = "<&>";`),
	)
}

func TestTextScenario(t *testing.T) {
	out, err := Text(addFn())
	require.NoError(t, err)
	assert.Equal(t, addFnText, out)
}

func TestTextEmptyFile(t *testing.T) {
	out, err := Text(syntax.New(syntax.KindFile, nil))
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestTextSubtreeRoot(t *testing.T) {
	root := syntax.New(syntax.KindBinary, []syntax.Field{syntax.F("op", syntax.Symbol("*"))}, path("x"), path("y"))
	out, err := Text(root, WithIndent(4))
	require.NoError(t, err)
	assert.Equal(t, "Binary: op=*\n    Path: name=x\n    Path: name=y\n", out)
}

func TestTextIndentLaw(t *testing.T) {
	for _, tree := range []*syntax.Node{addFn(), literals()} {
		two, err := Text(tree, WithIndent(2))
		require.NoError(t, err)
		four, err := Text(tree, WithIndent(4))
		require.NoError(t, err)

		a := strings.Split(two, "\n")
		b := strings.Split(four, "\n")
		require.Len(t, b, len(a))
		for i := range a {
			lead := len(a[i]) - len(strings.TrimLeft(a[i], " "))
			assert.Equal(t, 2*lead, len(b[i])-len(strings.TrimLeft(b[i], " ")), "line %d", i)
			assert.Equal(t, strings.TrimLeft(a[i], " "), strings.TrimLeft(b[i], " "), "line %d", i)
		}
	}
}

func TestTextColor(t *testing.T) {
	plain, err := Text(addFn())
	require.NoError(t, err)
	colored, err := Text(addFn(), WithColor(true))
	require.NoError(t, err)

	assert.NotEqual(t, plain, colored)
	assert.Contains(t, colored, "\x1b[")
	assert.Equal(t, plain, stripANSI(colored))
}

func stripANSI(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == 0x1b {
			for i < len(s) && s[i] != 'm' {
				i++
			}
			continue
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

func TestJSONScenario(t *testing.T) {
	out, err := JSON(addFn())
	require.NoError(t, err)
	require.True(t, strings.HasSuffix(out, "\n"))

	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Equal(t, "File", doc["kind"])
	assert.Equal(t, map[string]any{}, doc["fields"])

	fn := doc["children"].([]any)[0].(map[string]any)
	assert.Equal(t, "Function", fn["kind"])
	fields := fn["fields"].(map[string]any)
	assert.Equal(t, "add", fields["name"])
	assert.Equal(t, syntax.Placeholder, fields["visibility"])

	children := fn["children"].([]any)
	require.Len(t, children, 2)
	params := children[0].(map[string]any)
	assert.Equal(t, "Parameters", params["kind"])
	assert.Len(t, params["children"], 2)

	stmt := children[1].(map[string]any)["children"].([]any)[0].(map[string]any)
	binary := stmt["children"].([]any)[0].(map[string]any)
	assert.Equal(t, "Binary", binary["kind"])
	assert.Equal(t, false, stmt["fields"].(map[string]any)["semicolon"])
}

func TestJSONEmptyFile(t *testing.T) {
	out, err := JSON(syntax.New(syntax.KindFile, nil), WithCompact(true))
	require.NoError(t, err)
	assert.Equal(t, `{"kind":"File","fields":{},"children":[]}`+"\n", out)
}

func TestJSONKeyOrderAndIndent(t *testing.T) {
	root := syntax.New(syntax.KindFile, nil, syntax.New(syntax.KindInt, []syntax.Field{
		syntax.F("value", syntax.Int("42")),
		syntax.F("suffix", syntax.None()),
	}))
	out, err := JSON(root, WithIndent(4))
	require.NoError(t, err)
	expected := `{
    "kind": "File",
    "fields": {},
    "children": [
        {
            "kind": "Int",
            "fields": {
                "value": 42,
                "suffix": "∅"
            },
            "children": []
        }
    ]
}
`
	assert.Equal(t, expected, out)
}

func TestJSONValueTypes(t *testing.T) {
	out, err := JSON(literals(), WithCompact(true))
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(out, "\n"))
	assert.Contains(t, out, `"value":255`)
	assert.Contains(t, out, `"value":1.5e3`)
	assert.Contains(t, out, `"shape":"tuple"`)

	var doc any
	dec := json.NewDecoder(strings.NewReader(out))
	dec.UseNumber()
	require.NoError(t, dec.Decode(&doc))
	unsupported := doc.(map[string]any)["children"].([]any)[2].(map[string]any)
	assert.Equal(t, "Unsupported", unsupported["kind"])
	assert.Equal(t, `static S: &str = "<&>";`, unsupported["fields"].(map[string]any)["description"])
}

// jsonNode decodes the rendered JSON while keeping field order.
type jsonNode struct {
	Kind     string                                         `json:"kind"`
	Fields   *orderedmap.OrderedMap[string, json.RawMessage] `json:"fields"`
	Children []jsonNode                                     `json:"children"`
}

// outline rebuilds the text outline from a decoded JSON document.
func outline(t *testing.T, n jsonNode, depth, indent int, b *strings.Builder) {
	t.Helper()
	if depth > 0 {
		b.WriteString(strings.Repeat(" ", (depth-1)*indent))
		b.WriteString(n.Kind + ":")
		i := 0
		for pair := n.Fields.Oldest(); pair != nil; pair = pair.Next() {
			if i == 0 {
				b.WriteByte(' ')
			} else {
				b.WriteString(", ")
			}
			i++
			value := string(pair.Value)
			if strings.HasPrefix(value, `"`) {
				require.NoError(t, json.Unmarshal(pair.Value, &value))
				value = escapeControl(value)
			}
			b.WriteString(pair.Key + "=" + value)
		}
		b.WriteByte('\n')
	}
	for _, child := range n.Children {
		outline(t, child, depth+1, indent, b)
	}
}

func TestFormatEquivalence(t *testing.T) {
	for _, tree := range []*syntax.Node{addFn(), literals(), syntax.New(syntax.KindFile, nil)} {
		text, err := Text(tree, WithIndent(3))
		require.NoError(t, err)
		out, err := JSON(tree)
		require.NoError(t, err)

		var doc jsonNode
		require.NoError(t, json.Unmarshal([]byte(out), &doc))
		var b strings.Builder
		outline(t, doc, 0, 3, &b)
		assert.Equal(t, text, b.String())
	}
}

func TestDeterminism(t *testing.T) {
	for _, format := range Formats() {
		first, err := Render(literals(), format)
		require.NoError(t, err)
		for i := 0; i < 5; i++ {
			again, err := Render(literals(), format)
			require.NoError(t, err)
			assert.Equal(t, first, again)
		}
	}
}

func TestNoSilentDrops(t *testing.T) {
	tree := literals()
	text, err := Text(tree)
	require.NoError(t, err)
	// every node but the File root has exactly one line
	assert.Equal(t, syntax.Count(tree)-1, strings.Count(text, "\n"))

	out, err := JSON(tree, WithCompact(true))
	require.NoError(t, err)
	assert.Equal(t, syntax.Count(tree), strings.Count(out, `"kind":`))
}

func TestOptionsValidate(t *testing.T) {
	tests := []struct {
		indent int
		ok     bool
	}{
		{0, false},
		{1, true},
		{2, true},
		{16, true},
		{17, false},
		{-4, false},
	}
	for _, tt := range tests {
		_, err := Text(addFn(), WithIndent(tt.indent))
		if tt.ok {
			assert.NoError(t, err, "indent %d", tt.indent)
			continue
		}
		require.Error(t, err, "indent %d", tt.indent)
		assert.True(t, errors.IsKind(err, errors.InvalidConfiguration))
		re, _ := errors.AsRenderError(err)
		assert.Equal(t, errors.E2001, re.Code)
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input    string
		expected Format
		hint     string
	}{
		{"text", FormatText, ""},
		{"JSON", FormatJSON, ""},
		{" json ", FormatJSON, ""},
		{"jsn", "", "Did you mean 'json'?"},
		{"txt", "", "Did you mean 'text'?"},
		{"yaml", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			f, err := ParseFormat(tt.input)
			if tt.expected != "" {
				require.NoError(t, err)
				assert.Equal(t, tt.expected, f)
				return
			}
			require.Error(t, err)
			re, ok := errors.AsRenderError(err)
			require.True(t, ok)
			assert.Equal(t, errors.InvalidConfiguration, re.Kind)
			assert.Equal(t, errors.E2002, re.Code)
			assert.Equal(t, tt.hint, re.Hint)
		})
	}
}

func TestRenderUnknownFormat(t *testing.T) {
	_, err := Render(addFn(), Format("xml"))
	require.Error(t, err)
	assert.True(t, errors.IsKind(err, errors.InvalidConfiguration))
}

func TestTextEscapesControlCharacters(t *testing.T) {
	str := func(lit string) *syntax.Node {
		return syntax.New(syntax.KindStr, []syntax.Field{syntax.F("value", syntax.Text(lit))})
	}
	tree := syntax.New(syntax.KindFile, nil,
		syntax.New(syntax.KindExprStmt, []syntax.Field{syntax.F("semicolon", syntax.Bool(true))}, str("\"a\nb\"")),
		syntax.New(syntax.KindExprStmt, []syntax.Field{syntax.F("semicolon", syntax.Bool(true))}, str("r\"\t\r\n  x\x00\"")),
	)
	text, err := Text(tree)
	require.NoError(t, err)
	assert.Equal(t, syntax.Count(tree)-1, strings.Count(text, "\n"))
	assert.Equal(t, `ExprStmt: semicolon=true
  Str: value="a\nb"
ExprStmt: semicolon=true
  Str: value=r"\t\r\n  x\u{0}"
`, text)

	out, err := JSON(tree, WithCompact(true))
	require.NoError(t, err)
	assert.Contains(t, out, `"value":"\"a\nb\""`)
}

func TestEscapeControl(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"plain", "plain"},
		{"", ""},
		{"a\nb", `a\nb`},
		{"\x7f", `\u{7f}`},
		{"\u0085", `\u{85}`},
		{"tab\there", `tab\there`},
		{"∅ é", "∅ é"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, escapeControl(tt.input), "%q", tt.input)
	}
}
