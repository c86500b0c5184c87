package parser

import (
	"strings"

	"github.com/rustyast/rustyast/ast"
	"github.com/rustyast/rustyast/errors"
	"github.com/rustyast/rustyast/token"
)

// Statement parsing methods for the Parser.
// This file contains methods that parse the contents of blocks:
// - Let statements, including let-else
// - Items declared inside a function body
// - Expression statements and tail expressions

// parseBlock parses a block. curToken is "{" on entry and "}" on exit.
func (p *Parser) parseBlock() *ast.Block {
	if !p.enter() {
		return nil
	}
	defer p.exit()
	saved := p.noStructLit
	p.noStructLit = false
	defer func() { p.noStructLit = saved }()

	open := p.curToken
	block := &ast.Block{From: open.StartPosition, Lbrace: open.StartPosition}
	p.nextToken() // move past the '{'
	for !p.curTokenIs(token.RBRACE) {
		if p.cancelled() {
			return nil
		}
		switch p.curToken.Type {
		case token.EOF:
			p.setTokenError(open, errors.E1007, "unclosed delimiter '{'")
			return nil
		case token.SEMICOLON:
			p.nextToken()
			continue
		}
		stmt := p.parseStatement()
		if stmt == nil {
			return nil
		}
		block.Stmts = append(block.Stmts, stmt)
		p.nextToken()
	}
	block.Rbrace = p.curToken.StartPosition
	return block
}

func (p *Parser) parseStatement() ast.Stmt {
	if !p.skipAttributes() {
		return nil
	}
	switch {
	case p.curTokenIs(token.LET):
		if let := p.parseLet(); let != nil {
			return let
		}
		return nil
	case p.isItemStart():
		item := p.parseItem()
		if item == nil {
			return nil
		}
		return &ast.ItemStmt{Item: item}
	}
	return p.parseExpressionStatement()
}

func (p *Parser) parseLet() *ast.Let {
	let := &ast.Let{LetPos: p.curToken.StartPosition}
	p.nextToken()
	if let.Pattern = p.parsePattern(token.COLON, token.ASSIGN, token.SEMICOLON); let.Pattern == nil {
		return nil
	}
	if p.peekTokenIs(token.COLON) {
		p.nextToken()
		p.nextToken()
		if let.Type = p.parseType(); let.Type == nil {
			return nil
		}
	}
	if p.peekTokenIs(token.ASSIGN) {
		p.nextToken()
		p.nextToken()
		if let.Value = p.parseExpression(LOWEST); let.Value == nil {
			return nil
		}
		if p.peekTokenIs(token.ELSE) {
			p.nextToken()
			if !p.expectPeek(token.LBRACE) {
				return nil
			}
			if let.Else = p.parseBlock(); let.Else == nil {
				return nil
			}
		}
	}
	if !p.expectPeek(token.SEMICOLON) {
		return nil
	}
	let.Semi = p.curToken.StartPosition
	return let
}

func (p *Parser) parseExpressionStatement() ast.Stmt {
	var x ast.Expr
	if p.startsBlockLike() {
		x = p.parseBlockLikeExpr()
	} else {
		x = p.parseExpression(LOWEST)
	}
	if x == nil {
		return nil
	}
	stmt := &ast.ExprStmt{X: x}
	switch {
	case p.peekTokenIs(token.SEMICOLON):
		p.nextToken()
		stmt.Semicolon = true
		stmt.Semi = p.curToken.StartPosition
	case p.peekTokenIs(token.RBRACE), blockLike(x):
	default:
		p.peekError("';' or '}'")
		return nil
	}
	return stmt
}

// startsBlockLike reports whether curToken begins an expression that ends
// with a block and so may end a statement without a semicolon.
func (p *Parser) startsBlockLike() bool {
	switch p.curToken.Type {
	case token.LBRACE, token.IF, token.WHILE, token.LOOP, token.FOR, token.MATCH:
		return true
	case token.UNSAFE:
		return p.peekTokenIs(token.LBRACE)
	case token.ASYNC:
		return p.peekTokenIs(token.LBRACE) || p.peekTokenIs(token.MOVE)
	case token.LIFETIME:
		return p.peekTokenIs(token.COLON)
	}
	return false
}

// parseBlockLikeExpr parses a block-like expression in statement position.
// Binary operators after the closing brace are not applied to it, but method
// calls, field access and "?" are.
func (p *Parser) parseBlockLikeExpr() ast.Expr {
	if !p.enter() {
		return nil
	}
	defer p.exit()
	x := p.prefixParseFns[p.curToken.Type]()
	if x == nil {
		return nil
	}
	if p.peekTokenIs(token.PERIOD) || p.peekTokenIs(token.QUESTION) {
		return p.parseInfixLoop(x, LOWEST)
	}
	return x
}

// blockLike reports whether x ends with a block.
func blockLike(x ast.Expr) bool {
	switch x := x.(type) {
	case *ast.Block, *ast.IfExpr, *ast.WhileExpr, *ast.LoopExpr, *ast.ForExpr, *ast.MatchExpr:
		return true
	case *ast.MacroCall:
		return x.Open == "{"
	case *ast.Verbatim:
		return strings.HasSuffix(x.Text, "}")
	}
	return false
}
