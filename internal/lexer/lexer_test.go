package lexer

import (
	"testing"

	"github.com/rustyast/rustyast/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type expectedToken struct {
	typ     token.Type
	literal string
}

func lexAll(t *testing.T, input string) []token.Token {
	t.Helper()
	l := New(input)
	var tokens []token.Token
	for {
		tok, err := l.Next()
		require.NoError(t, err)
		tokens = append(tokens, tok)
		if tok.Type == token.EOF {
			return tokens
		}
	}
}

func checkTokens(t *testing.T, input string, expected []expectedToken) {
	t.Helper()
	tokens := lexAll(t, input)
	require.Len(t, tokens, len(expected), "input: %s", input)
	for i, exp := range expected {
		assert.Equal(t, exp.typ, tokens[i].Type, "tokens[%d] type", i)
		assert.Equal(t, exp.literal, tokens[i].Literal, "tokens[%d] literal", i)
	}
}

func TestFunctionHeader(t *testing.T) {
	checkTokens(t, "pub fn add(a: i32, b: &mut i32) -> i32 {}", []expectedToken{
		{token.PUB, "pub"},
		{token.FN, "fn"},
		{token.IDENT, "add"},
		{token.LPAREN, "("},
		{token.IDENT, "a"},
		{token.COLON, ":"},
		{token.IDENT, "i32"},
		{token.COMMA, ","},
		{token.IDENT, "b"},
		{token.COLON, ":"},
		{token.AMPERSAND, "&"},
		{token.MUT, "mut"},
		{token.IDENT, "i32"},
		{token.RPAREN, ")"},
		{token.ARROW, "->"},
		{token.IDENT, "i32"},
		{token.LBRACE, "{"},
		{token.RBRACE, "}"},
		{token.EOF, ""},
	})
}

func TestPunctuationLongestMatch(t *testing.T) {
	checkTokens(t, "<<= >>= ..= ... .. :: -> => == != <= >= && || += -= *= /= %= ^= &= |= << >>", []expectedToken{
		{token.SHL_EQ, "<<="},
		{token.SHR_EQ, ">>="},
		{token.DOTDOTEQ, "..="},
		{token.ELLIPSIS, "..."},
		{token.DOTDOT, ".."},
		{token.PATHSEP, "::"},
		{token.ARROW, "->"},
		{token.FAT_ARROW, "=>"},
		{token.EQ, "=="},
		{token.NOT_EQ, "!="},
		{token.LT_EQ, "<="},
		{token.GT_EQ, ">="},
		{token.AND, "&&"},
		{token.OR, "||"},
		{token.PLUS_EQ, "+="},
		{token.MINUS_EQ, "-="},
		{token.ASTERISK_EQ, "*="},
		{token.SLASH_EQ, "/="},
		{token.PERCENT_EQ, "%="},
		{token.CARET_EQ, "^="},
		{token.AMPERSAND_EQ, "&="},
		{token.PIPE_EQ, "|="},
		{token.SHL, "<<"},
		{token.SHR, ">>"},
		{token.EOF, ""},
	})
}

func TestNumbers(t *testing.T) {
	tests := []struct {
		input string
		typ   token.Type
	}{
		{"42", token.INT},
		{"1_000_000", token.INT},
		{"0xff", token.INT},
		{"0o17", token.INT},
		{"0b1010_1010", token.INT},
		{"7u8", token.INT},
		{"0xffu32", token.INT},
		{"3.14", token.FLOAT},
		{"2.5e10", token.FLOAT},
		{"1e-3", token.FLOAT},
		{"1f32", token.FLOAT},
		{"6.02E+23f64", token.FLOAT},
		{"1.", token.FLOAT},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			checkTokens(t, tt.input, []expectedToken{{tt.typ, tt.input}, {token.EOF, ""}})
		})
	}
}

func TestNumberFollowedByRangeOrMethod(t *testing.T) {
	checkTokens(t, "0..10", []expectedToken{
		{token.INT, "0"},
		{token.DOTDOT, ".."},
		{token.INT, "10"},
		{token.EOF, ""},
	})
	checkTokens(t, "1.max(2)", []expectedToken{
		{token.INT, "1"},
		{token.PERIOD, "."},
		{token.IDENT, "max"},
		{token.LPAREN, "("},
		{token.INT, "2"},
		{token.RPAREN, ")"},
		{token.EOF, ""},
	})
}

func TestInvalidNumber(t *testing.T) {
	l := New("0x")
	tok, err := l.Next()
	require.Error(t, err)
	assert.Equal(t, token.Type(token.ILLEGAL), tok.Type)
	assert.Contains(t, err.Error(), "invalid number literal")
}

func TestStringsAndChars(t *testing.T) {
	checkTokens(t, `"hi \"there\"" r"raw" r#"a "quoted" b"# b"bytes" br"raw" 'x' '\n' b'a' '\u{1F600}'`, []expectedToken{
		{token.STRING, `"hi \"there\""`},
		{token.RAWSTRING, `r"raw"`},
		{token.RAWSTRING, `r#"a "quoted" b"#`},
		{token.BYTESTR, `b"bytes"`},
		{token.BYTESTR, `br"raw"`},
		{token.CHAR, `'x'`},
		{token.CHAR, `'\n'`},
		{token.BYTE, `b'a'`},
		{token.CHAR, `'\u{1F600}'`},
		{token.EOF, ""},
	})
}

func TestLifetimes(t *testing.T) {
	checkTokens(t, "&'a str 'outer: loop", []expectedToken{
		{token.AMPERSAND, "&"},
		{token.LIFETIME, "'a"},
		{token.IDENT, "str"},
		{token.LIFETIME, "'outer"},
		{token.COLON, ":"},
		{token.LOOP, "loop"},
		{token.EOF, ""},
	})
}

func TestKeywordsAndIdentifiers(t *testing.T) {
	checkTokens(t, "let mut self Self r#match _ _x", []expectedToken{
		{token.LET, "let"},
		{token.MUT, "mut"},
		{token.SELF, "self"},
		{token.SELFTYPE, "Self"},
		{token.IDENT, "r#match"},
		{token.UNDERSCORE, "_"},
		{token.IDENT, "_x"},
		{token.EOF, ""},
	})
}

func TestComments(t *testing.T) {
	input := `// line comment
/* block /* nested */ still comment */ x /// doc
y`
	tokens := lexAll(t, input)
	require.Len(t, tokens, 3)
	assert.Equal(t, "x", tokens[0].Literal)
	assert.Equal(t, 1, tokens[0].StartPosition.Line)
	assert.Equal(t, "y", tokens[1].Literal)
	assert.Equal(t, 2, tokens[1].StartPosition.Line)
	assert.Equal(t, 0, tokens[1].StartPosition.Column)
}

func TestLexErrors(t *testing.T) {
	tests := []struct {
		input string
		msg   string
	}{
		{`"open`, "unterminated string literal"},
		{"/* open", "unterminated block comment"},
		{"r#\"open", "unterminated raw string literal"},
		{"'a", ""},
		{"€", "invalid character"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			l := New(tt.input)
			_, err := l.Next()
			if tt.msg == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

func TestPositions(t *testing.T) {
	l := New("fn main() {\n    let x = 1;\n}")
	l.SetFilename("main.rs")
	var let token.Token
	for {
		tok, err := l.Next()
		require.NoError(t, err)
		if tok.Type == token.LET {
			let = tok
			break
		}
	}
	assert.Equal(t, 1, let.StartPosition.Line)
	assert.Equal(t, 4, let.StartPosition.Column)
	assert.Equal(t, 2, let.StartPosition.LineNumber())
	assert.Equal(t, 5, let.StartPosition.ColumnNumber())
	assert.Equal(t, 16, let.StartPosition.Char)
	assert.Equal(t, 19, let.EndPosition.Char)
	assert.Equal(t, "main.rs", let.StartPosition.File)
	assert.Equal(t, "    let x = 1;", l.GetLineText(let))
}

func TestMultiLineStringAdvancesLine(t *testing.T) {
	tokens := lexAll(t, "\"a\nb\" c")
	require.Len(t, tokens, 3)
	assert.Equal(t, token.Type(token.STRING), tokens[0].Type)
	assert.Equal(t, 1, tokens[1].StartPosition.Line)
	assert.Equal(t, 3, tokens[1].StartPosition.Column)
}

func TestShebang(t *testing.T) {
	tokens := lexAll(t, "#!/usr/bin/env run-cargo-script\nfn")
	require.Len(t, tokens, 2)
	assert.Equal(t, token.Type(token.FN), tokens[0].Type)

	tokens = lexAll(t, "#![allow(dead_code)]")
	assert.Equal(t, token.Type(token.POUND), tokens[0].Type)
	assert.Equal(t, token.Type(token.BANG), tokens[1].Type)
}

func TestSaveRestoreState(t *testing.T) {
	l := New("a b c")
	first, err := l.Next()
	require.NoError(t, err)
	assert.Equal(t, "a", first.Literal)
	state := l.SaveState()
	second, err := l.Next()
	require.NoError(t, err)
	l.RestoreState(state)
	again, err := l.Next()
	require.NoError(t, err)
	assert.Equal(t, second, again)
}

func TestEmptyInputRepeatsEOF(t *testing.T) {
	l := New("  \n\t")
	for i := 0; i < 3; i++ {
		tok, err := l.Next()
		require.NoError(t, err)
		assert.Equal(t, token.Type(token.EOF), tok.Type)
	}
}
