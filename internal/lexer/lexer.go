// Package lexer converts Rust source text into a stream of tokens.
package lexer

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/rustyast/rustyast/token"
)

// Lexer tokenizes one source unit. It is not safe for concurrent use.
type Lexer struct {
	input     string
	position  int // offset of the current character
	line      int
	lineStart int
	filename  string
}

// State is a snapshot of the lexer position that may be restored later.
type State struct {
	position  int
	line      int
	lineStart int
}

// New returns a Lexer for the given input.
func New(input string) *Lexer {
	l := &Lexer{input: input}
	l.skipShebang()
	return l
}

// SetFilename sets the file name recorded on token positions.
func (l *Lexer) SetFilename(filename string) {
	l.filename = filename
}

// Filename returns the file name recorded on token positions.
func (l *Lexer) Filename() string {
	return l.filename
}

// SaveState captures the current lexer position.
func (l *Lexer) SaveState() State {
	return State{position: l.position, line: l.line, lineStart: l.lineStart}
}

// RestoreState rewinds the lexer to a previously saved position.
func (l *Lexer) RestoreState(s State) {
	l.position = s.position
	l.line = s.line
	l.lineStart = s.lineStart
}

// Source returns the complete input.
func (l *Lexer) Source() string {
	return l.input
}

// GetLineText returns the full line of source containing the token.
func (l *Lexer) GetLineText(tok token.Token) string {
	start := tok.StartPosition.LineStart
	if start < 0 || start > len(l.input) {
		return ""
	}
	end := strings.IndexByte(l.input[start:], '\n')
	if end < 0 {
		return strings.TrimRight(l.input[start:], "\r")
	}
	return strings.TrimRight(l.input[start:start+end], "\r")
}

// Next returns the next token. At the end of the input it returns an EOF
// token on every call.
func (l *Lexer) Next() (token.Token, error) {
	if err := l.skipTrivia(); err != nil {
		pos := l.pos()
		return token.Token{Type: token.ILLEGAL, StartPosition: pos, EndPosition: l.endPos()}, err
	}
	start := l.pos()
	if l.position >= len(l.input) {
		return token.Token{Type: token.EOF, StartPosition: start, EndPosition: start}, nil
	}
	ch, _ := l.peekRune(0)

	switch {
	case ch == 'b' && (l.byteAt(1) == '"' || l.byteAt(1) == '\''):
		l.position++
		if l.byteAt(0) == '"' {
			return l.readString(start, token.BYTESTR)
		}
		return l.readChar(start, token.BYTE)
	case ch == 'b' && l.byteAt(1) == 'r' && (l.byteAt(2) == '"' || l.byteAt(2) == '#'):
		l.position += 2
		return l.readRawString(start, token.BYTESTR)
	case ch == 'r' && (l.byteAt(1) == '"' || (l.byteAt(1) == '#' && (l.byteAt(2) == '"' || l.byteAt(2) == '#'))):
		l.position++
		return l.readRawString(start, token.RAWSTRING)
	case ch == 'r' && l.byteAt(1) == '#' && isIdentStart(l.runeAt(2)):
		l.position += 2
		l.readIdentChars()
		return l.newToken(token.IDENT, start), nil
	case isIdentStart(ch):
		l.readIdentChars()
		lit := l.input[start.Char:l.position]
		if lit == "_" {
			return l.newToken(token.UNDERSCORE, start), nil
		}
		return l.newToken(token.LookupIdentifier(lit), start), nil
	case isDigit(ch):
		return l.readNumber(start)
	case ch == '"':
		return l.readString(start, token.STRING)
	case ch == '\'':
		return l.readCharOrLifetime(start)
	}
	return l.readPunct(start)
}

func (l *Lexer) skipShebang() {
	if strings.HasPrefix(l.input, "#!") && !strings.HasPrefix(strings.TrimLeft(l.input[2:], " \t"), "[") {
		for l.position < len(l.input) && l.input[l.position] != '\n' {
			l.position++
		}
	}
}

// skipTrivia skips whitespace and comments, tracking line numbers.
func (l *Lexer) skipTrivia() error {
	for l.position < len(l.input) {
		c := l.input[l.position]
		switch {
		case c == '\n':
			l.position++
			l.line++
			l.lineStart = l.position
		case c == ' ' || c == '\t' || c == '\r':
			l.position++
		case c == '/' && l.byteAt(1) == '/':
			for l.position < len(l.input) && l.input[l.position] != '\n' {
				l.position++
			}
		case c == '/' && l.byteAt(1) == '*':
			if err := l.skipBlockComment(); err != nil {
				return err
			}
		default:
			r, size := l.peekRune(0)
			if size > 1 && unicode.IsSpace(r) {
				l.position += size
				continue
			}
			return nil
		}
	}
	return nil
}

// Block comments nest in Rust.
func (l *Lexer) skipBlockComment() error {
	depth := 0
	for l.position < len(l.input) {
		switch {
		case l.input[l.position] == '/' && l.byteAt(1) == '*':
			depth++
			l.position += 2
		case l.input[l.position] == '*' && l.byteAt(1) == '/':
			depth--
			l.position += 2
			if depth == 0 {
				return nil
			}
		case l.input[l.position] == '\n':
			l.position++
			l.line++
			l.lineStart = l.position
		default:
			l.position++
		}
	}
	return fmt.Errorf("unterminated block comment")
}

func (l *Lexer) readIdentChars() {
	for l.position < len(l.input) {
		r, size := l.peekRune(0)
		if !isIdentChar(r) {
			return
		}
		l.position += size
	}
}

func (l *Lexer) readNumber(start token.Position) (token.Token, error) {
	if l.input[l.position] == '0' && strings.ContainsRune("xob", rune(l.byteAt(1))) {
		base := l.byteAt(1)
		l.position += 2
		digits := 0
		for l.position < len(l.input) {
			c := l.input[l.position]
			if c == '_' || isBaseDigit(c, base) {
				if c != '_' {
					digits++
				}
				l.position++
				continue
			}
			break
		}
		if digits == 0 {
			return l.newToken(token.ILLEGAL, start), fmt.Errorf("invalid number literal %q", l.input[start.Char:l.position])
		}
		l.readIdentChars() // suffix
		return l.newToken(token.INT, start), nil
	}

	typ := token.Type(token.INT)
	l.readDecimalDigits()
	if l.byteAt(0) == '.' && l.byteAt(1) != '.' && !isIdentStart(l.runeAt(1)) {
		typ = token.FLOAT
		l.position++
		l.readDecimalDigits()
	}
	if c := l.byteAt(0); c == 'e' || c == 'E' {
		next := l.byteAt(1)
		if isDigit(rune(next)) || ((next == '+' || next == '-') && isDigit(rune(l.byteAt(2)))) {
			typ = token.FLOAT
			l.position += 2
			l.readDecimalDigits()
		}
	}
	suffixStart := l.position
	l.readIdentChars()
	if suffix := l.input[suffixStart:l.position]; suffix == "f32" || suffix == "f64" {
		typ = token.FLOAT
	}
	return l.newToken(typ, start), nil
}

func (l *Lexer) readDecimalDigits() {
	for l.position < len(l.input) {
		c := l.input[l.position]
		if (c >= '0' && c <= '9') || c == '_' {
			l.position++
			continue
		}
		return
	}
}

// readString reads a quoted string starting at the opening quote. Escapes
// are validated only far enough to find the closing quote.
func (l *Lexer) readString(start token.Position, typ token.Type) (token.Token, error) {
	l.position++ // opening quote
	for l.position < len(l.input) {
		c := l.input[l.position]
		switch c {
		case '\\':
			if l.byteAt(1) == '\n' {
				l.line++
				l.lineStart = l.position + 2
			}
			l.position += 2
			continue
		case '"':
			l.position++
			l.readIdentChars() // suffix
			return l.newToken(typ, start), nil
		case '\n':
			l.line++
			l.lineStart = l.position + 1
		}
		l.position++
	}
	l.position = len(l.input)
	return l.newToken(token.ILLEGAL, start), fmt.Errorf("unterminated string literal")
}

func (l *Lexer) readRawString(start token.Position, typ token.Type) (token.Token, error) {
	hashes := 0
	for l.byteAt(0) == '#' {
		hashes++
		l.position++
	}
	if l.byteAt(0) != '"' {
		return l.newToken(token.ILLEGAL, start), fmt.Errorf("invalid raw string literal")
	}
	l.position++
	closing := "\"" + strings.Repeat("#", hashes)
	for l.position < len(l.input) {
		if strings.HasPrefix(l.input[l.position:], closing) {
			l.position += len(closing)
			return l.newToken(typ, start), nil
		}
		if l.input[l.position] == '\n' {
			l.line++
			l.lineStart = l.position + 1
		}
		l.position++
	}
	return l.newToken(token.ILLEGAL, start), fmt.Errorf("unterminated raw string literal")
}

func (l *Lexer) readCharOrLifetime(start token.Position) (token.Token, error) {
	if l.byteAt(1) == '\\' {
		return l.readChar(start, token.CHAR)
	}
	r, size := l.peekRune(1)
	if size > 0 && l.byteAt(1+size) == '\'' {
		return l.readChar(start, token.CHAR)
	}
	if isIdentStart(r) {
		l.position++
		l.readIdentChars()
		return l.newToken(token.LIFETIME, start), nil
	}
	return l.readChar(start, token.CHAR)
}

func (l *Lexer) readChar(start token.Position, typ token.Type) (token.Token, error) {
	l.position++ // opening quote
	for l.position < len(l.input) {
		c := l.input[l.position]
		switch c {
		case '\\':
			l.position += 2
			continue
		case '\'':
			l.position++
			return l.newToken(typ, start), nil
		case '\n':
			return l.newToken(token.ILLEGAL, start), fmt.Errorf("unterminated character literal")
		}
		l.position++
	}
	return l.newToken(token.ILLEGAL, start), fmt.Errorf("unterminated character literal")
}

// Punctuation, longest match first.
var puncts = []string{
	"<<=", ">>=", "...", "..=",
	"::", "->", "=>", "==", "!=", "<=", ">=", "&&", "||", "+=", "-=", "*=",
	"/=", "%=", "^=", "&=", "|=", "<<", ">>", "..",
	"+", "-", "*", "/", "%", "^", "!", "&", "|", "=", ">", "<", "@", ".",
	",", ";", ":", "#", "$", "?", "~", "{", "}", "[", "]", "(", ")",
}

func (l *Lexer) readPunct(start token.Position) (token.Token, error) {
	rest := l.input[l.position:]
	for _, p := range puncts {
		if strings.HasPrefix(rest, p) {
			l.position += len(p)
			return l.newToken(token.Type(p), start), nil
		}
	}
	_, size := l.peekRune(0)
	if size == 0 {
		size = 1
	}
	l.position += size
	tok := l.newToken(token.ILLEGAL, start)
	return tok, fmt.Errorf("invalid character %q", tok.Literal)
}

func (l *Lexer) newToken(typ token.Type, start token.Position) token.Token {
	return token.Token{
		Type:          typ,
		Literal:       l.input[start.Char:l.position],
		StartPosition: start,
		EndPosition:   l.endPos(),
	}
}

func (l *Lexer) pos() token.Position {
	return token.Position{
		Char:      l.position,
		LineStart: l.lineStart,
		Line:      l.line,
		Column:    l.position - l.lineStart,
		File:      l.filename,
	}
}

// endPos is the position just past the last consumed character. For tokens
// spanning lines it is still expressed on the current line.
func (l *Lexer) endPos() token.Position {
	return l.pos()
}

func (l *Lexer) byteAt(offset int) byte {
	if i := l.position + offset; i < len(l.input) {
		return l.input[i]
	}
	return 0
}

func (l *Lexer) peekRune(offset int) (rune, int) {
	i := l.position + offset
	if i >= len(l.input) {
		return 0, 0
	}
	return utf8.DecodeRuneInString(l.input[i:])
}

func (l *Lexer) runeAt(offset int) rune {
	r, _ := l.peekRune(offset)
	return r
}

func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentChar(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isBaseDigit(c byte, base byte) bool {
	switch base {
	case 'b':
		return c == '0' || c == '1'
	case 'o':
		return c >= '0' && c <= '7'
	default:
		return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
	}
}
