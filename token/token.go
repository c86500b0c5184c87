// Package token defines the keywords and tokens produced when lexing Rust
// source code.
package token

// Type describes the type of a token as a string.
type Type string

// Position points to a particular location in an input string.
type Position struct {
	Char      int // byte offset into the input
	LineStart int // byte offset of the first character on this line
	Line      int // 0-indexed line number
	Column    int // 0-indexed column, counted in bytes
	File      string
}

// LineNumber returns the 1-indexed line number for this position in the input.
func (p Position) LineNumber() int {
	return p.Line + 1
}

// ColumnNumber returns the 1-indexed column number for this position in the input.
func (p Position) ColumnNumber() int {
	return p.Column + 1
}

// Advance returns the position n bytes further along the same line.
func (p Position) Advance(n int) Position {
	p.Char += n
	p.Column += n
	return p
}

// Token represents one token lexed from the input source code.
type Token struct {
	Type          Type
	Literal       string
	StartPosition Position
	EndPosition   Position // position immediately after the last character
}

// Token types
const (
	EOF     = "EOF"
	ILLEGAL = "ILLEGAL"

	IDENT     = "IDENT"
	LIFETIME  = "LIFETIME"
	INT       = "INT"
	FLOAT     = "FLOAT"
	STRING    = "STRING"
	RAWSTRING = "RAWSTRING"
	BYTESTR   = "BYTESTR"
	CHAR      = "CHAR"
	BYTE      = "BYTE"

	// Operators and punctuation
	PLUS         = "+"
	MINUS        = "-"
	ASTERISK     = "*"
	SLASH        = "/"
	PERCENT      = "%"
	CARET        = "^"
	BANG         = "!"
	AMPERSAND    = "&"
	PIPE         = "|"
	AND          = "&&"
	OR           = "||"
	SHL          = "<<"
	SHR          = ">>"
	PLUS_EQ      = "+="
	MINUS_EQ     = "-="
	ASTERISK_EQ  = "*="
	SLASH_EQ     = "/="
	PERCENT_EQ   = "%="
	CARET_EQ     = "^="
	AMPERSAND_EQ = "&="
	PIPE_EQ      = "|="
	SHL_EQ       = "<<="
	SHR_EQ       = ">>="
	ASSIGN       = "="
	EQ           = "=="
	NOT_EQ       = "!="
	GT           = ">"
	LT           = "<"
	GT_EQ        = ">="
	LT_EQ        = "<="
	AT           = "@"
	UNDERSCORE   = "_"
	PERIOD       = "."
	DOTDOT       = ".."
	ELLIPSIS     = "..."
	DOTDOTEQ     = "..="
	COMMA        = ","
	SEMICOLON    = ";"
	COLON        = ":"
	PATHSEP      = "::"
	ARROW        = "->"
	FAT_ARROW    = "=>"
	POUND        = "#"
	DOLLAR       = "$"
	QUESTION     = "?"
	TILDE        = "~"
	LBRACE       = "{"
	RBRACE       = "}"
	LBRACKET     = "["
	RBRACKET     = "]"
	LPAREN       = "("
	RPAREN       = ")"

	// Keywords
	AS       = "AS"
	ASYNC    = "ASYNC"
	BREAK    = "BREAK"
	CONST    = "CONST"
	CONTINUE = "CONTINUE"
	CRATE    = "CRATE"
	DYN      = "DYN"
	ELSE     = "ELSE"
	ENUM     = "ENUM"
	EXTERN   = "EXTERN"
	FALSE    = "FALSE"
	FN       = "FN"
	FOR      = "FOR"
	IF       = "IF"
	IMPL     = "IMPL"
	IN       = "IN"
	LET      = "LET"
	LOOP     = "LOOP"
	MATCH    = "MATCH"
	MOD      = "MOD"
	MOVE     = "MOVE"
	MUT      = "MUT"
	PUB      = "PUB"
	REF      = "REF"
	RETURN   = "RETURN"
	SELF     = "SELF"
	SELFTYPE = "SELFTYPE"
	STATIC   = "STATIC"
	STRUCT   = "STRUCT"
	SUPER    = "SUPER"
	TRAIT    = "TRAIT"
	TRUE     = "TRUE"
	TYPE     = "TYPE"
	UNSAFE   = "UNSAFE"
	USE      = "USE"
	WHERE    = "WHERE"
	WHILE    = "WHILE"
)

// Reserved keywords
var keywords = map[string]Type{
	"as":       AS,
	"async":    ASYNC,
	"break":    BREAK,
	"const":    CONST,
	"continue": CONTINUE,
	"crate":    CRATE,
	"dyn":      DYN,
	"else":     ELSE,
	"enum":     ENUM,
	"extern":   EXTERN,
	"false":    FALSE,
	"fn":       FN,
	"for":      FOR,
	"if":       IF,
	"impl":     IMPL,
	"in":       IN,
	"let":      LET,
	"loop":     LOOP,
	"match":    MATCH,
	"mod":      MOD,
	"move":     MOVE,
	"mut":      MUT,
	"pub":      PUB,
	"ref":      REF,
	"return":   RETURN,
	"self":     SELF,
	"Self":     SELFTYPE,
	"static":   STATIC,
	"struct":   STRUCT,
	"super":    SUPER,
	"trait":    TRAIT,
	"true":     TRUE,
	"type":     TYPE,
	"unsafe":   UNSAFE,
	"use":      USE,
	"where":    WHERE,
	"while":    WHILE,
}

// LookupIdentifier reports whether identifier is a keyword. It returns the
// keyword's type, or IDENT for ordinary identifiers.
func LookupIdentifier(identifier string) Type {
	if tok, ok := keywords[identifier]; ok {
		return tok
	}
	return IDENT
}

// IsKeyword reports whether the token type is a reserved keyword.
func IsKeyword(t Type) bool {
	for _, kw := range keywords {
		if kw == t {
			return true
		}
	}
	return false
}
