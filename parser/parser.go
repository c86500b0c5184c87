// Package parser is used to generate the abstract syntax tree (AST) for a
// Rust source file.
//
// A parser is created by calling New() with a lexer as input. The parser should
// then be used only once, by calling parser.Parse() to produce the AST.
package parser

import (
	"context"
	"fmt"

	"github.com/rustyast/rustyast/ast"
	"github.com/rustyast/rustyast/errors"
	"github.com/rustyast/rustyast/internal/lexer"
	"github.com/rustyast/rustyast/token"
)

type (
	prefixParseFn func() ast.Expr
	infixParseFn  func(ast.Expr) ast.Expr
)

// itemStarts holds the tokens that may begin an item. Error recovery skips
// ahead to one of these.
var itemStarts = map[token.Type]bool{
	token.FN:     true,
	token.STRUCT: true,
	token.ENUM:   true,
	token.IMPL:   true,
	token.USE:    true,
	token.MOD:    true,
	token.TRAIT:  true,
	token.PUB:    true,
	token.CONST:  true,
	token.STATIC: true,
	token.TYPE:   true,
	token.EXTERN: true,
	token.UNSAFE: true,
	token.ASYNC:  true,
	token.POUND:  true,
}

// Parse the provided input as Rust source code and return the AST. This is
// shorthand way to create a Lexer and Parser and then call Parse on that.
func Parse(ctx context.Context, input string, options ...Option) (*ast.File, error) {
	// Extract filename from options before creating the parser, so that lexer
	// errors in the first tokens have proper location context.
	var probe Parser
	for _, opt := range options {
		opt(&probe)
	}
	l := lexer.New(input)
	if probe.filename != "" {
		l.SetFilename(probe.filename)
	}
	p := New(l, options...)
	return p.Parse(ctx)
}

// Option is a configuration function for a Parser.
type Option func(*Parser)

// WithFilename sets the file name recorded in positions and errors.
func WithFilename(filename string) Option {
	return func(p *Parser) {
		p.filename = filename
	}
}

// WithMaxDepth sets the maximum nesting depth for the parser.
// This prevents stack overflow on deeply nested input.
// The default is 500.
func WithMaxDepth(depth int) Option {
	return func(p *Parser) {
		p.maxDepth = depth
	}
}

// DefaultMaxDepth is the default maximum nesting depth for parsing.
const DefaultMaxDepth = 500

// MaxErrors is the maximum number of errors to collect before stopping.
const MaxErrors = 10

// Parser object
type Parser struct {
	// the Context supplied in the Parse() call
	ctx context.Context

	// l is our lexer
	l *lexer.Lexer

	// prevToken holds the previous token, which we already processed.
	prevToken token.Token

	// curToken holds the current token from the lexer.
	curToken token.Token

	// peekToken holds the next token from the lexer.
	peekToken token.Token

	// pending holds tokens produced by splitting a compound token such as
	// ">>" while closing generic arguments. They are consumed before the
	// lexer is asked for more.
	pending []token.Token

	// parsing errors collected during parsing
	errors []ParserError

	// itemErrorCount is the error count when the current item started.
	itemErrorCount int

	prefixParseFns map[token.Type]prefixParseFn
	infixParseFns  map[token.Type]infixParseFn

	// noStructLit is set while parsing the condition of if, while, for and
	// match, where "{" opens the body rather than a struct literal.
	noStructLit bool

	// The filename of the input
	filename string

	// Current recursion depth
	depth int

	// Maximum allowed recursion depth
	maxDepth int
}

// New returns a Parser for the program provided by the given Lexer.
func New(l *lexer.Lexer, options ...Option) *Parser {
	p := &Parser{
		l:              l,
		prefixParseFns: map[token.Type]prefixParseFn{},
		infixParseFns:  map[token.Type]infixParseFn{},
		maxDepth:       DefaultMaxDepth,
	}
	for _, opt := range options {
		opt(p)
	}
	if p.filename != "" && l.Filename() == "" {
		l.SetFilename(p.filename)
	}

	// Prime the token pump
	p.nextToken() // makes curToken=<empty>, peekToken=token[0]
	p.nextToken() // makes curToken=token[0], peekToken=token[1]

	// Register prefix-functions
	for _, t := range []token.Type{token.IDENT, token.SELF, token.SELFTYPE, token.CRATE, token.SUPER, token.PATHSEP, token.LT} {
		p.registerPrefix(t, p.parsePathExpr)
	}
	p.registerPrefix(token.INT, p.parseInt)
	p.registerPrefix(token.FLOAT, p.parseFloat)
	p.registerPrefix(token.STRING, p.parseString)
	p.registerPrefix(token.RAWSTRING, p.parseString)
	p.registerPrefix(token.BYTESTR, p.parseString)
	p.registerPrefix(token.CHAR, p.parseChar)
	p.registerPrefix(token.BYTE, p.parseChar)
	p.registerPrefix(token.TRUE, p.parseBoolean)
	p.registerPrefix(token.FALSE, p.parseBoolean)
	p.registerPrefix(token.LPAREN, p.parseGroupedExpr)
	p.registerPrefix(token.LBRACKET, p.parseArray)
	p.registerPrefix(token.LBRACE, p.parseBlockExpr)
	p.registerPrefix(token.MINUS, p.parsePrefixExpr)
	p.registerPrefix(token.BANG, p.parsePrefixExpr)
	p.registerPrefix(token.ASTERISK, p.parsePrefixExpr)
	p.registerPrefix(token.AMPERSAND, p.parseBorrow)
	p.registerPrefix(token.AND, p.parseBorrow)
	p.registerPrefix(token.IF, p.parseIf)
	p.registerPrefix(token.WHILE, p.parseWhileExpr)
	p.registerPrefix(token.LOOP, p.parseLoopExpr)
	p.registerPrefix(token.FOR, p.parseForExpr)
	p.registerPrefix(token.MATCH, p.parseMatch)
	p.registerPrefix(token.LIFETIME, p.parseLabeled)
	p.registerPrefix(token.UNSAFE, p.parseUnsafeBlock)
	p.registerPrefix(token.ASYNC, p.parseAsyncBlock)
	p.registerPrefix(token.RETURN, p.parseReturn)
	p.registerPrefix(token.BREAK, p.parseBreak)
	p.registerPrefix(token.CONTINUE, p.parseContinue)
	p.registerPrefix(token.PIPE, p.parseClosure)
	p.registerPrefix(token.OR, p.parseClosure)
	p.registerPrefix(token.MOVE, p.parseClosure)
	p.registerPrefix(token.DOTDOT, p.parsePrefixRange)
	p.registerPrefix(token.DOTDOTEQ, p.parsePrefixRange)
	p.registerPrefix(token.LET, p.parseLetCond)

	// Register infix functions
	for _, t := range []token.Type{
		token.PLUS, token.MINUS, token.ASTERISK, token.SLASH, token.PERCENT,
		token.CARET, token.AMPERSAND, token.PIPE, token.SHL, token.SHR,
		token.AND, token.OR, token.EQ, token.NOT_EQ, token.LT, token.GT,
		token.LT_EQ, token.GT_EQ,
	} {
		p.registerInfix(t, p.parseInfixExpr)
	}
	for _, t := range []token.Type{
		token.ASSIGN, token.PLUS_EQ, token.MINUS_EQ, token.ASTERISK_EQ,
		token.SLASH_EQ, token.PERCENT_EQ, token.CARET_EQ, token.AMPERSAND_EQ,
		token.PIPE_EQ, token.SHL_EQ, token.SHR_EQ,
	} {
		p.registerInfix(t, p.parseAssign)
	}
	p.registerInfix(token.DOTDOT, p.parseRange)
	p.registerInfix(token.DOTDOTEQ, p.parseRange)
	p.registerInfix(token.AS, p.parseCast)
	p.registerInfix(token.LPAREN, p.parseCall)
	p.registerInfix(token.LBRACKET, p.parseIndex)
	p.registerInfix(token.PERIOD, p.parsePeriod)
	p.registerInfix(token.QUESTION, p.parseTry)

	return p
}

// nextToken moves to the next token, updating all of prevToken, curToken,
// and peekToken.
func (p *Parser) nextToken() {
	p.prevToken = p.curToken
	p.curToken = p.peekToken
	if len(p.pending) > 0 {
		p.peekToken = p.pending[0]
		p.pending = p.pending[1:]
		return
	}
	var err error
	p.peekToken, err = p.l.Next()
	if err == nil {
		return
	}
	// The lexer encountered an error. We consider all lexer errors
	// "syntax errors" and parsing will now be considered broken.
	p.addError(NewSyntaxError(ErrorOpts{
		Code:          lexErrorCode(err),
		Cause:         err,
		File:          p.l.Filename(),
		StartPosition: p.peekToken.StartPosition,
		EndPosition:   p.peekToken.EndPosition,
		SourceCode:    p.l.GetLineText(p.peekToken),
	}))
}

// peekSecond returns the token after peekToken without consuming anything.
func (p *Parser) peekSecond() token.Token {
	if len(p.pending) > 0 {
		return p.pending[0]
	}
	state := p.l.SaveState()
	tok, _ := p.l.Next()
	p.l.RestoreState(state)
	return tok
}

// splitPeek splits a compound peek token that starts with ">" into ">" and
// the remainder, so that nested generic argument lists can close one level
// at a time.
func (p *Parser) splitPeek() {
	tok := p.peekToken
	first := token.Token{
		Type:          token.GT,
		Literal:       ">",
		StartPosition: tok.StartPosition,
		EndPosition:   tok.StartPosition.Advance(1),
	}
	rest := token.Token{
		Type:          token.Type(tok.Literal[1:]),
		Literal:       tok.Literal[1:],
		StartPosition: tok.StartPosition.Advance(1),
		EndPosition:   tok.EndPosition,
	}
	p.peekToken = first
	p.pending = append([]token.Token{rest}, p.pending...)
}

// Parse the program that is provided via the lexer.
// Returns the AST and any errors encountered. If there are errors, the AST
// may be partial (containing only successfully parsed items).
func (p *Parser) Parse(ctx context.Context) (*ast.File, error) {
	p.ctx = ctx
	file := &ast.File{Start: token.Position{File: p.l.Filename()}}
	for !p.curTokenIs(token.EOF) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if p.tooManyErrors() {
			break
		}
		p.itemErrorCount = len(p.errors)
		item := p.parseItem()
		if p.hadNewError() || item == nil {
			p.synchronize()
			continue
		}
		file.Items = append(file.Items, item)
		p.nextToken()
	}
	file.EOF = p.curToken.EndPosition
	if p.hasErrors() {
		return file, NewErrors(p.errors)
	}
	return file, nil
}

// registerPrefix registers a function for handling a prefix-based expression.
func (p *Parser) registerPrefix(tokenType token.Type, fn prefixParseFn) {
	p.prefixParseFns[tokenType] = fn
}

// registerInfix registers a function for handling an infix-based expression.
func (p *Parser) registerInfix(tokenType token.Type, fn infixParseFn) {
	p.infixParseFns[tokenType] = fn
}

// addError appends an error to the errors slice.
func (p *Parser) addError(err ParserError) {
	p.errors = append(p.errors, err)
}

// hasErrors returns true if any errors have been recorded.
func (p *Parser) hasErrors() bool {
	return len(p.errors) > 0
}

// tooManyErrors returns true if error limit has been reached.
func (p *Parser) tooManyErrors() bool {
	return len(p.errors) >= MaxErrors
}

// hadNewError returns true if an error was added during the current item.
func (p *Parser) hadNewError() bool {
	return len(p.errors) > p.itemErrorCount
}

// synchronize skips tokens until the start of another item is reached at the
// current brace depth. This is used for error recovery to continue parsing
// after an error.
func (p *Parser) synchronize() {
	depth := 0
	for !p.curTokenIs(token.EOF) {
		switch p.curToken.Type {
		case token.LBRACE:
			depth++
		case token.RBRACE:
			if depth > 0 {
				depth--
			}
		}
		p.nextToken()
		if depth == 0 && itemStarts[p.curToken.Type] {
			return
		}
	}
}

// setTokenError records an error located at the given token.
func (p *Parser) setTokenError(t token.Token, code errors.ErrorCode, msg string, args ...any) {
	p.addError(NewSyntaxError(ErrorOpts{
		Code:          code,
		Message:       fmt.Sprintf(msg, args...),
		File:          p.l.Filename(),
		StartPosition: t.StartPosition,
		EndPosition:   t.EndPosition,
		SourceCode:    p.l.GetLineText(t),
	}))
}

func (p *Parser) noPrefixParseFnError(t token.Token) {
	if t.Type == token.ILLEGAL {
		// Already reported by the lexer.
		p.itemErrorCount = -1
		return
	}
	p.setTokenError(t, errors.E1004, "expected expression, found %s", tokenDescription(t))
}

// peekError records an error for an unexpected next token.
func (p *Parser) peekError(expected string) {
	if p.peekToken.Type == token.ILLEGAL {
		p.itemErrorCount = -1
		return
	}
	code := errors.E1001
	if p.peekToken.Type == token.EOF {
		code = errors.E1007
	}
	p.setTokenError(p.peekToken, code, "expected %s, found %s", expected, tokenDescription(p.peekToken))
}

// curError records an error for an unexpected current token.
func (p *Parser) curError(code errors.ErrorCode, expected string) {
	if p.curToken.Type == token.ILLEGAL {
		p.itemErrorCount = -1
		return
	}
	p.setTokenError(p.curToken, code, "expected %s, found %s", expected, tokenDescription(p.curToken))
}

// enter increments the nesting depth, failing when it exceeds maxDepth.
func (p *Parser) enter() bool {
	p.depth++
	if p.depth > p.maxDepth {
		p.setTokenError(p.curToken, errors.E1009, "maximum nesting depth exceeded")
		return false
	}
	return true
}

func (p *Parser) exit() {
	p.depth--
}

// cancelled reports whether the context passed to Parse is done.
func (p *Parser) cancelled() bool {
	return p.ctx != nil && p.ctx.Err() != nil
}

// newIdent creates a new Ident node from a token.
func (p *Parser) newIdent(tok token.Token) *ast.Ident {
	return &ast.Ident{NamePos: tok.StartPosition, Name: tok.Literal}
}

// text returns the source between two positions with whitespace collapsed.
func (p *Parser) text(from, to token.Position) string {
	src := p.l.Source()
	if from.Char < 0 || to.Char > len(src) || from.Char > to.Char {
		return ""
	}
	return ast.CollapseSpace(src[from.Char:to.Char])
}

// curTokenIs returns true if the current token has the given type.
func (p *Parser) curTokenIs(t token.Type) bool {
	return p.curToken.Type == t
}

// peekTokenIs returns true if the next token has the given type.
func (p *Parser) peekTokenIs(t token.Type) bool {
	return p.peekToken.Type == t
}

// expectPeek validates if the next token is of the given type, and advances if
// it is. If it's a different type, then an error is stored.
func (p *Parser) expectPeek(t token.Type) bool {
	if p.peekTokenIs(t) {
		p.nextToken()
		return true
	}
	p.peekError(tokenTypeDescription(t))
	return false
}

// expectPeekIdent advances onto an identifier or records an error.
func (p *Parser) expectPeekIdent(what string) bool {
	if p.peekTokenIs(token.IDENT) {
		p.nextToken()
		return true
	}
	if p.peekToken.Type == token.ILLEGAL {
		p.itemErrorCount = -1
		return false
	}
	p.setTokenError(p.peekToken, errors.E1006, "expected %s, found %s", what, tokenDescription(p.peekToken))
	return false
}

// peekPrecedence returns the precedence of the next token.
func (p *Parser) peekPrecedence() int {
	if p, ok := precedences[p.peekToken.Type]; ok {
		return p
	}
	return LOWEST
}

// currentPrecedence returns the precedence of the current token.
func (p *Parser) currentPrecedence() int {
	if p, ok := precedences[p.curToken.Type]; ok {
		return p
	}
	return LOWEST
}

// skipBalanced advances from an opening delimiter at curToken to its
// matching closing delimiter.
func (p *Parser) skipBalanced() bool {
	open := p.curToken
	depth := 0
	for {
		switch p.curToken.Type {
		case token.LPAREN, token.LBRACKET, token.LBRACE:
			depth++
		case token.RPAREN, token.RBRACKET, token.RBRACE:
			depth--
			if depth == 0 {
				return true
			}
		case token.EOF:
			p.setTokenError(open, errors.E1007, "unclosed delimiter %s", tokenDescription(open))
			return false
		case token.ILLEGAL:
			p.itemErrorCount = -1
			return false
		}
		p.nextToken()
	}
}

// skipAngles advances from "<" at curToken to the matching ">".
func (p *Parser) skipAngles() bool {
	open := p.curToken
	depth := 0
	for {
		switch p.curToken.Type {
		case token.LT:
			depth++
		case token.SHL:
			depth += 2
		case token.GT:
			depth--
		case token.SHR:
			depth -= 2
		case token.EOF:
			p.setTokenError(open, errors.E1007, "unclosed delimiter %s", tokenDescription(open))
			return false
		case token.ILLEGAL:
			p.itemErrorCount = -1
			return false
		}
		if depth <= 0 {
			return true
		}
		p.nextToken()
	}
}

// skipAttributes skips outer and inner attributes such as #[derive(Debug)]
// and #![allow(dead_code)].
func (p *Parser) skipAttributes() bool {
	for p.curTokenIs(token.POUND) {
		if p.peekTokenIs(token.BANG) {
			p.nextToken()
		}
		if !p.expectPeek(token.LBRACKET) {
			return false
		}
		if !p.skipBalanced() {
			return false
		}
		p.nextToken()
	}
	return true
}
