package parser

import (
	"strings"

	"github.com/rustyast/rustyast/ast"
	"github.com/rustyast/rustyast/errors"
	"github.com/rustyast/rustyast/token"
)

// Expression parsing methods for the Parser.
// This file contains the Pratt parser core along with the prefix and infix
// functions registered in New.

func (p *Parser) parseExpression(precedence int) ast.Expr {
	if !p.enter() {
		return nil
	}
	defer p.exit()
	prefix := p.prefixParseFns[p.curToken.Type]
	if prefix == nil {
		p.noPrefixParseFnError(p.curToken)
		return nil
	}
	left := prefix()
	if left == nil {
		return nil
	}
	return p.parseInfixLoop(left, precedence)
}

// parseInfixLoop applies infix operators binding tighter than precedence.
func (p *Parser) parseInfixLoop(left ast.Expr, precedence int) ast.Expr {
	for !p.peekTokenIs(token.SEMICOLON) && precedence < p.peekPrecedence() {
		infix := p.infixParseFns[p.peekToken.Type]
		if infix == nil {
			return left
		}
		p.nextToken()
		if left = infix(left); left == nil {
			return nil
		}
	}
	return left
}

// canStartExpr reports whether tok may begin an expression in the current
// context. Used for optional operands such as the value of a return.
func (p *Parser) canStartExpr(tok token.Token) bool {
	if tok.Type == token.LBRACE && p.noStructLit {
		return false
	}
	_, ok := p.prefixParseFns[tok.Type]
	return ok
}

// parseCondition parses the head of an if, while, for or match, where a
// "{" begins the body rather than a struct literal.
func (p *Parser) parseCondition() ast.Expr {
	saved := p.noStructLit
	p.noStructLit = true
	defer func() { p.noStructLit = saved }()
	return p.parseExpression(LOWEST)
}

// allowStructLit clears noStructLit until the returned function is called.
// Delimited contexts such as parentheses re-enable struct literals.
func (p *Parser) allowStructLit() func() {
	saved := p.noStructLit
	p.noStructLit = false
	return func() { p.noStructLit = saved }
}

func (p *Parser) parsePathExpr() ast.Expr {
	path := p.parsePath()
	if path == nil {
		return nil
	}
	switch {
	case p.peekTokenIs(token.BANG):
		return p.parseMacroCall(path)
	case p.peekTokenIs(token.LBRACE) && !p.noStructLit && p.structLitAhead():
		return p.parseStructLit(path)
	}
	return path
}

// parsePath parses a path expression such as x, Self::new, ::std::mem or
// <T as Trait>::method. Generic arguments are recorded only in the text.
func (p *Parser) parsePath() *ast.Path {
	path := &ast.Path{From: p.curToken.StartPosition}
	switch p.curToken.Type {
	case token.LT:
		if !p.skipAngles() {
			return nil
		}
		path.Segments = append(path.Segments, p.text(path.From, p.curToken.EndPosition))
		if !p.expectPeek(token.PATHSEP) || !p.expectPathSegment() {
			return nil
		}
	case token.PATHSEP:
		if !p.expectPathSegment() {
			return nil
		}
	}
	path.Segments = append(path.Segments, p.curToken.Literal)
	for p.peekTokenIs(token.PATHSEP) {
		p.nextToken()
		if p.peekTokenIs(token.LT) {
			p.nextToken()
			if !p.skipAngles() {
				return nil
			}
			continue
		}
		if !p.expectPathSegment() {
			return nil
		}
		path.Segments = append(path.Segments, p.curToken.Literal)
	}
	path.To = p.curToken.EndPosition
	path.Text = p.text(path.From, path.To)
	return path
}

// expectPathSegment advances onto the next segment of a path.
func (p *Parser) expectPathSegment() bool {
	switch p.peekToken.Type {
	case token.IDENT, token.SELF, token.SELFTYPE, token.SUPER, token.CRATE:
		p.nextToken()
		return true
	case token.ILLEGAL:
		p.itemErrorCount = -1
		return false
	}
	p.setTokenError(p.peekToken, errors.E1006, "expected identifier, found %s", tokenDescription(p.peekToken))
	return false
}

// structLitAhead reports whether the "{" in peekToken opens a struct
// literal body rather than a block.
func (p *Parser) structLitAhead() bool {
	switch p.peekSecond().Type {
	case token.RBRACE, token.IDENT, token.INT, token.DOTDOT:
		return true
	}
	return false
}

func (p *Parser) parseMacroCall(path *ast.Path) ast.Expr {
	p.nextToken() // '!'
	switch p.peekToken.Type {
	case token.LPAREN, token.LBRACKET, token.LBRACE:
	default:
		p.peekError("'(', '[' or '{'")
		return nil
	}
	p.nextToken()
	open := p.curToken
	if !p.skipBalanced() {
		return nil
	}
	return &ast.MacroCall{
		Path:   path,
		Open:   open.Literal,
		Tokens: p.text(open.EndPosition, p.curToken.StartPosition),
		Close:  p.curToken.StartPosition,
	}
}

func (p *Parser) parseStructLit(path *ast.Path) ast.Expr {
	p.nextToken() // '{'
	defer p.allowStructLit()()
	lit := &ast.StructLit{Path: path}
	for {
		if p.peekTokenIs(token.RBRACE) {
			p.nextToken()
			break
		}
		p.nextToken()
		if p.curTokenIs(token.DOTDOT) {
			p.nextToken()
			if lit.Base = p.parseExpression(LOWEST); lit.Base == nil {
				return nil
			}
			if !p.expectPeek(token.RBRACE) {
				return nil
			}
			break
		}
		if !p.curTokenIs(token.IDENT) && !p.curTokenIs(token.INT) {
			p.curError(errors.E1006, "field name")
			return nil
		}
		field := &ast.FieldInit{Name: p.newIdent(p.curToken)}
		if p.peekTokenIs(token.COLON) {
			p.nextToken()
			p.nextToken()
			if field.Value = p.parseExpression(LOWEST); field.Value == nil {
				return nil
			}
		}
		lit.Fields = append(lit.Fields, field)
		if p.peekTokenIs(token.COMMA) {
			p.nextToken()
			continue
		}
		if !p.expectPeek(token.RBRACE) {
			return nil
		}
		break
	}
	lit.Rbrace = p.curToken.StartPosition
	return lit
}

func (p *Parser) parseInt() ast.Expr {
	return &ast.IntLit{ValuePos: p.curToken.StartPosition, Literal: p.curToken.Literal}
}

func (p *Parser) parseFloat() ast.Expr {
	return &ast.FloatLit{ValuePos: p.curToken.StartPosition, Literal: p.curToken.Literal}
}

func (p *Parser) parseString() ast.Expr {
	return &ast.StrLit{
		ValuePos: p.curToken.StartPosition,
		Kind:     p.curToken.Type,
		Literal:  p.curToken.Literal,
	}
}

func (p *Parser) parseChar() ast.Expr {
	return &ast.CharLit{
		ValuePos: p.curToken.StartPosition,
		Byte:     p.curTokenIs(token.BYTE),
		Literal:  p.curToken.Literal,
	}
}

func (p *Parser) parseBoolean() ast.Expr {
	return &ast.BoolLit{ValuePos: p.curToken.StartPosition, Value: p.curTokenIs(token.TRUE)}
}

func (p *Parser) parseGroupedExpr() ast.Expr {
	lparen := p.curToken.StartPosition
	if p.peekTokenIs(token.RPAREN) {
		p.nextToken()
		return &ast.TupleExpr{Lparen: lparen, Rparen: p.curToken.StartPosition}
	}
	defer p.allowStructLit()()
	p.nextToken()
	first := p.parseExpression(LOWEST)
	if first == nil {
		return nil
	}
	if p.peekTokenIs(token.RPAREN) {
		p.nextToken()
		return &ast.ParenExpr{Lparen: lparen, X: first, Rparen: p.curToken.StartPosition}
	}
	elems := []ast.Expr{first}
	for p.peekTokenIs(token.COMMA) {
		p.nextToken()
		if p.peekTokenIs(token.RPAREN) {
			break
		}
		p.nextToken()
		elem := p.parseExpression(LOWEST)
		if elem == nil {
			return nil
		}
		elems = append(elems, elem)
	}
	if !p.expectPeek(token.RPAREN) {
		return nil
	}
	return &ast.TupleExpr{Lparen: lparen, Elems: elems, Rparen: p.curToken.StartPosition}
}

func (p *Parser) parseArray() ast.Expr {
	lbrack := p.curToken.StartPosition
	if p.peekTokenIs(token.RBRACKET) {
		p.nextToken()
		return &ast.ArrayExpr{Lbrack: lbrack, Rbrack: p.curToken.StartPosition}
	}
	defer p.allowStructLit()()
	p.nextToken()
	first := p.parseExpression(LOWEST)
	if first == nil {
		return nil
	}
	if p.peekTokenIs(token.SEMICOLON) {
		p.nextToken()
		p.nextToken()
		length := p.parseExpression(LOWEST)
		if length == nil {
			return nil
		}
		if !p.expectPeek(token.RBRACKET) {
			return nil
		}
		return &ast.ArrayRepeat{Lbrack: lbrack, Elem: first, Len: length, Rbrack: p.curToken.StartPosition}
	}
	elems := []ast.Expr{first}
	for p.peekTokenIs(token.COMMA) {
		p.nextToken()
		if p.peekTokenIs(token.RBRACKET) {
			break
		}
		p.nextToken()
		elem := p.parseExpression(LOWEST)
		if elem == nil {
			return nil
		}
		elems = append(elems, elem)
	}
	if !p.expectPeek(token.RBRACKET) {
		return nil
	}
	return &ast.ArrayExpr{Lbrack: lbrack, Elems: elems, Rbrack: p.curToken.StartPosition}
}

func (p *Parser) parseBlockExpr() ast.Expr {
	block := p.parseBlock()
	if block == nil {
		return nil
	}
	return block
}

func (p *Parser) parsePrefixExpr() ast.Expr {
	op := p.curToken
	p.nextToken()
	x := p.parseExpression(PREFIX)
	if x == nil {
		return nil
	}
	return &ast.Unary{OpPos: op.StartPosition, Op: op.Literal, X: x}
}

// parseBorrow parses &x, &mut x and &&x, which is a borrow of a borrow.
func (p *Parser) parseBorrow() ast.Expr {
	amp := p.curToken
	op := "&"
	if p.peekTokenIs(token.MUT) {
		p.nextToken()
		op = "&mut"
	}
	p.nextToken()
	x := p.parseExpression(PREFIX)
	if x == nil {
		return nil
	}
	if amp.Type == token.AND {
		inner := &ast.Unary{OpPos: amp.StartPosition.Advance(1), Op: op, X: x}
		return &ast.Unary{OpPos: amp.StartPosition, Op: "&", X: inner}
	}
	return &ast.Unary{OpPos: amp.StartPosition, Op: op, X: x}
}

func (p *Parser) parseIf() ast.Expr {
	expr := &ast.IfExpr{IfPos: p.curToken.StartPosition}
	p.nextToken()
	if expr.Cond = p.parseCondition(); expr.Cond == nil {
		return nil
	}
	if !p.expectPeek(token.LBRACE) {
		return nil
	}
	if expr.Then = p.parseBlock(); expr.Then == nil {
		return nil
	}
	if !p.peekTokenIs(token.ELSE) {
		return expr
	}
	p.nextToken()
	if p.peekTokenIs(token.IF) {
		p.nextToken()
		alt := p.parseIf()
		if alt == nil {
			return nil
		}
		expr.Else = alt
		return expr
	}
	if !p.expectPeek(token.LBRACE) {
		return nil
	}
	alt := p.parseBlock()
	if alt == nil {
		return nil
	}
	expr.Else = alt
	return expr
}

func (p *Parser) parseLetCond() ast.Expr {
	cond := &ast.LetCond{LetPos: p.curToken.StartPosition}
	p.nextToken()
	if cond.Pattern = p.parsePattern(token.ASSIGN); cond.Pattern == nil {
		return nil
	}
	if !p.expectPeek(token.ASSIGN) {
		return nil
	}
	p.nextToken()
	if cond.Value = p.parseExpression(LOGICAL_AND); cond.Value == nil {
		return nil
	}
	return cond
}

func (p *Parser) parseWhileExpr() ast.Expr {
	return p.parseWhile(p.curToken.StartPosition, "")
}

func (p *Parser) parseWhile(from token.Position, label string) ast.Expr {
	expr := &ast.WhileExpr{From: from, Label: label}
	p.nextToken()
	if expr.Cond = p.parseCondition(); expr.Cond == nil {
		return nil
	}
	if !p.expectPeek(token.LBRACE) {
		return nil
	}
	if expr.Body = p.parseBlock(); expr.Body == nil {
		return nil
	}
	return expr
}

func (p *Parser) parseLoopExpr() ast.Expr {
	return p.parseLoop(p.curToken.StartPosition, "")
}

func (p *Parser) parseLoop(from token.Position, label string) ast.Expr {
	expr := &ast.LoopExpr{From: from, Label: label}
	if !p.expectPeek(token.LBRACE) {
		return nil
	}
	if expr.Body = p.parseBlock(); expr.Body == nil {
		return nil
	}
	return expr
}

func (p *Parser) parseForExpr() ast.Expr {
	return p.parseFor(p.curToken.StartPosition, "")
}

func (p *Parser) parseFor(from token.Position, label string) ast.Expr {
	expr := &ast.ForExpr{From: from, Label: label}
	p.nextToken()
	if expr.Pattern = p.parsePattern(token.IN); expr.Pattern == nil {
		return nil
	}
	if !p.expectPeek(token.IN) {
		return nil
	}
	p.nextToken()
	if expr.Iter = p.parseCondition(); expr.Iter == nil {
		return nil
	}
	if !p.expectPeek(token.LBRACE) {
		return nil
	}
	if expr.Body = p.parseBlock(); expr.Body == nil {
		return nil
	}
	return expr
}

// parseLabeled parses a labeled loop or block: 'outer: loop { .. }.
func (p *Parser) parseLabeled() ast.Expr {
	label := p.curToken
	if !p.expectPeek(token.COLON) {
		return nil
	}
	p.nextToken()
	switch p.curToken.Type {
	case token.WHILE:
		return p.parseWhile(label.StartPosition, label.Literal)
	case token.LOOP:
		return p.parseLoop(label.StartPosition, label.Literal)
	case token.FOR:
		return p.parseFor(label.StartPosition, label.Literal)
	case token.LBRACE:
		block := p.parseBlock()
		if block == nil {
			return nil
		}
		block.Label = label.Literal
		block.From = label.StartPosition
		return block
	}
	p.curError(errors.E1003, "loop or block after label")
	return nil
}

func (p *Parser) parseUnsafeBlock() ast.Expr {
	from := p.curToken.StartPosition
	if !p.expectPeek(token.LBRACE) {
		return nil
	}
	block := p.parseBlock()
	if block == nil {
		return nil
	}
	block.Unsafe = true
	block.From = from
	return block
}

// parseAsyncBlock skips an async block, which the tree keeps as text.
func (p *Parser) parseAsyncBlock() ast.Expr {
	from := p.curToken.StartPosition
	if p.peekTokenIs(token.MOVE) {
		p.nextToken()
	}
	if !p.expectPeek(token.LBRACE) {
		return nil
	}
	if !p.skipBalanced() {
		return nil
	}
	return p.verbatim("async", from)
}

func (p *Parser) parseReturn() ast.Expr {
	expr := &ast.ReturnExpr{ReturnPos: p.curToken.StartPosition}
	if p.canStartExpr(p.peekToken) {
		p.nextToken()
		if expr.Value = p.parseExpression(LOWEST); expr.Value == nil {
			return nil
		}
	}
	return expr
}

func (p *Parser) parseBreak() ast.Expr {
	expr := &ast.BreakExpr{BreakPos: p.curToken.StartPosition}
	if p.peekTokenIs(token.LIFETIME) {
		p.nextToken()
		expr.Label = p.curToken.Literal
	}
	if p.canStartExpr(p.peekToken) {
		p.nextToken()
		if expr.Value = p.parseExpression(LOWEST); expr.Value == nil {
			return nil
		}
		expr.To = expr.Value.End()
		return expr
	}
	expr.To = p.curToken.EndPosition
	return expr
}

func (p *Parser) parseContinue() ast.Expr {
	expr := &ast.ContinueExpr{ContinuePos: p.curToken.StartPosition}
	if p.peekTokenIs(token.LIFETIME) {
		p.nextToken()
		expr.Label = p.curToken.Literal
	}
	expr.To = p.curToken.EndPosition
	return expr
}

func (p *Parser) parseClosure() ast.Expr {
	expr := &ast.ClosureExpr{From: p.curToken.StartPosition}
	if p.curTokenIs(token.MOVE) {
		expr.Move = true
		p.nextToken()
	}
	switch p.curToken.Type {
	case token.OR:
		// no parameters
	case token.PIPE:
		params, ok := p.parseClosureParams()
		if !ok {
			return nil
		}
		expr.Params = params
	default:
		p.curError(errors.E1003, "closure parameters")
		return nil
	}
	if p.peekTokenIs(token.ARROW) {
		p.nextToken()
		p.nextToken()
		if expr.Return = p.parseType(); expr.Return == nil {
			return nil
		}
		if !p.expectPeek(token.LBRACE) {
			return nil
		}
		body := p.parseBlock()
		if body == nil {
			return nil
		}
		expr.Body = body
		return expr
	}
	p.nextToken()
	if expr.Body = p.parseExpression(LOWEST); expr.Body == nil {
		return nil
	}
	return expr
}

// parseClosureParams parses "|a, b: T|". curToken is the opening "|" on
// entry and the closing "|" on exit.
func (p *Parser) parseClosureParams() ([]*ast.ClosureParam, bool) {
	var params []*ast.ClosureParam
	for {
		if p.peekTokenIs(token.PIPE) {
			p.nextToken()
			return params, true
		}
		p.nextToken()
		pattern := p.parsePattern(token.COMMA, token.PIPE, token.COLON)
		if pattern == nil {
			return nil, false
		}
		param := &ast.ClosureParam{Pattern: pattern}
		if p.peekTokenIs(token.COLON) {
			p.nextToken()
			p.nextToken()
			if param.Type = p.parseType(); param.Type == nil {
				return nil, false
			}
		}
		params = append(params, param)
		if p.peekTokenIs(token.COMMA) {
			p.nextToken()
			continue
		}
		if !p.expectPeek(token.PIPE) {
			return nil, false
		}
		return params, true
	}
}

func (p *Parser) parseMatch() ast.Expr {
	expr := &ast.MatchExpr{MatchPos: p.curToken.StartPosition}
	p.nextToken()
	if expr.X = p.parseCondition(); expr.X == nil {
		return nil
	}
	if !p.expectPeek(token.LBRACE) {
		return nil
	}
	defer p.allowStructLit()()
	for {
		if p.peekTokenIs(token.RBRACE) {
			p.nextToken()
			break
		}
		if p.cancelled() {
			return nil
		}
		p.nextToken()
		if !p.skipAttributes() {
			return nil
		}
		arm := p.parseMatchArm()
		if arm == nil {
			return nil
		}
		expr.Arms = append(expr.Arms, arm)
		switch {
		case p.peekTokenIs(token.COMMA):
			p.nextToken()
		case p.peekTokenIs(token.RBRACE), blockLike(arm.Body):
		default:
			p.peekError("',' or '}'")
			return nil
		}
	}
	expr.Rbrace = p.curToken.StartPosition
	return expr
}

func (p *Parser) parseMatchArm() *ast.MatchArm {
	arm := &ast.MatchArm{}
	if arm.Pattern = p.parsePattern(token.FAT_ARROW, token.IF); arm.Pattern == nil {
		return nil
	}
	if p.peekTokenIs(token.IF) {
		p.nextToken()
		p.nextToken()
		if arm.Guard = p.parseExpression(LOWEST); arm.Guard == nil {
			return nil
		}
	}
	if !p.expectPeek(token.FAT_ARROW) {
		return nil
	}
	p.nextToken()
	if p.startsBlockLike() {
		arm.Body = p.parseBlockLikeExpr()
	} else {
		arm.Body = p.parseExpression(LOWEST)
	}
	if arm.Body == nil {
		return nil
	}
	return arm
}

func (p *Parser) parsePrefixRange() ast.Expr {
	op := p.curToken
	expr := &ast.RangeExpr{From: op.StartPosition, Op: op.Literal, To: op.EndPosition}
	if !p.canStartExpr(p.peekToken) {
		return expr
	}
	p.nextToken()
	if expr.High = p.parseExpression(RANGE); expr.High == nil {
		return nil
	}
	expr.To = expr.High.End()
	return expr
}

func (p *Parser) parseRange(low ast.Expr) ast.Expr {
	op := p.curToken
	expr := &ast.RangeExpr{From: low.Pos(), Low: low, Op: op.Literal, To: op.EndPosition}
	if !p.canStartExpr(p.peekToken) {
		return expr
	}
	p.nextToken()
	if expr.High = p.parseExpression(RANGE); expr.High == nil {
		return nil
	}
	expr.To = expr.High.End()
	return expr
}

func (p *Parser) parseInfixExpr(left ast.Expr) ast.Expr {
	op := p.curToken
	precedence := p.currentPrecedence()
	p.nextToken()
	right := p.parseExpression(precedence)
	if right == nil {
		return nil
	}
	return &ast.Binary{X: left, OpPos: op.StartPosition, Op: op.Literal, Y: right}
}

// parseAssign parses an assignment. Assignment is right associative.
func (p *Parser) parseAssign(left ast.Expr) ast.Expr {
	op := p.curToken
	p.nextToken()
	right := p.parseExpression(LOWEST)
	if right == nil {
		return nil
	}
	return &ast.Assign{X: left, OpPos: op.StartPosition, Op: op.Literal, Y: right}
}

func (p *Parser) parseCast(left ast.Expr) ast.Expr {
	p.nextToken()
	typ := p.parseType()
	if typ == nil {
		return nil
	}
	return &ast.CastExpr{X: left, Type: typ}
}

func (p *Parser) parseCall(fun ast.Expr) ast.Expr {
	lparen := p.curToken.StartPosition
	args, ok := p.parseExprList(token.RPAREN)
	if !ok {
		return nil
	}
	return &ast.Call{Fun: fun, Lparen: lparen, Args: args, Rparen: p.curToken.StartPosition}
}

// parseExprList parses comma separated expressions up to the closing
// delimiter end. A trailing comma is allowed.
func (p *Parser) parseExprList(end token.Type) ([]ast.Expr, bool) {
	defer p.allowStructLit()()
	var list []ast.Expr
	for {
		if p.peekTokenIs(end) {
			p.nextToken()
			return list, true
		}
		p.nextToken()
		expr := p.parseExpression(LOWEST)
		if expr == nil {
			return nil, false
		}
		list = append(list, expr)
		if p.peekTokenIs(token.COMMA) {
			p.nextToken()
			continue
		}
		if !p.expectPeek(end) {
			return nil, false
		}
		return list, true
	}
}

func (p *Parser) parseIndex(x ast.Expr) ast.Expr {
	lbrack := p.curToken.StartPosition
	restore := p.allowStructLit()
	p.nextToken()
	index := p.parseExpression(LOWEST)
	restore()
	if index == nil {
		return nil
	}
	if !p.expectPeek(token.RBRACKET) {
		return nil
	}
	return &ast.IndexExpr{X: x, Lbrack: lbrack, Index: index, Rbrack: p.curToken.StartPosition}
}

// parsePeriod parses field access, tuple indexing and method calls.
func (p *Parser) parsePeriod(x ast.Expr) ast.Expr {
	switch p.peekToken.Type {
	case token.IDENT:
		p.nextToken()
		name := p.newIdent(p.curToken)
		turbofish := ""
		if p.peekTokenIs(token.PATHSEP) {
			p.nextToken()
			from := p.curToken.StartPosition
			if !p.expectPeek(token.LT) || !p.skipAngles() {
				return nil
			}
			turbofish = p.text(from, p.curToken.EndPosition)
			if !p.peekTokenIs(token.LPAREN) {
				p.peekError("'('")
				return nil
			}
		}
		if !p.peekTokenIs(token.LPAREN) {
			return &ast.FieldExpr{X: x, Name: name}
		}
		p.nextToken()
		lparen := p.curToken.StartPosition
		args, ok := p.parseExprList(token.RPAREN)
		if !ok {
			return nil
		}
		return &ast.MethodCall{
			X:         x,
			Name:      name,
			Turbofish: turbofish,
			Lparen:    lparen,
			Args:      args,
			Rparen:    p.curToken.StartPosition,
		}
	case token.INT:
		p.nextToken()
		return &ast.FieldExpr{X: x, Name: p.newIdent(p.curToken)}
	case token.FLOAT:
		// x.0.1 lexes the indexes as one float literal
		p.nextToken()
		tok := p.curToken
		first, second, ok := strings.Cut(tok.Literal, ".")
		if !ok || !isDigits(first) || !isDigits(second) {
			p.setTokenError(tok, errors.E1003, "invalid tuple index '%s'", tok.Literal)
			return nil
		}
		inner := &ast.FieldExpr{X: x, Name: &ast.Ident{NamePos: tok.StartPosition, Name: first}}
		return &ast.FieldExpr{
			X:    inner,
			Name: &ast.Ident{NamePos: tok.StartPosition.Advance(len(first) + 1), Name: second},
		}
	}
	p.peekError("field name or method")
	return nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

func (p *Parser) parseTry(x ast.Expr) ast.Expr {
	return &ast.TryExpr{X: x, Question: p.curToken.StartPosition}
}
