package parser

import (
	"strings"

	"github.com/rustyast/rustyast/ast"
	"github.com/rustyast/rustyast/errors"
	"github.com/rustyast/rustyast/token"
)

// parseType parses a type starting at curToken and leaves curToken on the
// type's last token. Types the tree does not break down are kept as
// Verbatim nodes.
func (p *Parser) parseType() ast.Type {
	if !p.enter() {
		return nil
	}
	defer p.exit()
	start := p.curToken
	switch start.Type {
	case token.AMPERSAND, token.AND:
		return p.parseRefType()
	case token.LPAREN:
		return p.parseTupleType()
	case token.LBRACKET:
		return p.parseArrayType()
	case token.IDENT:
		if isFnTrait(start.Literal) && p.peekTokenIs(token.LPAREN) {
			return p.parseFnTraitType()
		}
		return p.parsePathType()
	case token.SELFTYPE, token.SELF, token.CRATE, token.SUPER, token.PATHSEP:
		return p.parsePathType()
	case token.BANG, token.UNDERSCORE:
		return p.verbatim(start.Literal, start.StartPosition)
	case token.ASTERISK:
		// raw pointer: *const T or *mut T
		if !p.peekTokenIs(token.CONST) && !p.peekTokenIs(token.MUT) {
			p.peekError("'const' or 'mut'")
			return nil
		}
		p.nextToken()
		p.nextToken()
		if p.parseType() == nil {
			return nil
		}
		return p.verbatim("*", start.StartPosition)
	case token.FN, token.UNSAFE, token.EXTERN:
		return p.parseFnPointerType()
	case token.DYN, token.IMPL:
		p.nextToken()
		if !p.parseBounds() {
			return nil
		}
		return p.verbatim(start.Literal, start.StartPosition)
	case token.FOR:
		// higher-ranked: for<'a> fn(&'a T)
		if !p.expectPeek(token.LT) || !p.skipAngles() {
			return nil
		}
		p.nextToken()
		if p.parseType() == nil {
			return nil
		}
		return p.verbatim("for", start.StartPosition)
	case token.LT:
		// qualified path: <T as Trait>::Assoc
		if !p.skipAngles() {
			return nil
		}
		if !p.expectPeek(token.PATHSEP) || !p.expectPathSegment() {
			return nil
		}
		for p.peekTokenIs(token.PATHSEP) {
			p.nextToken()
			if !p.expectPathSegment() {
				return nil
			}
		}
		return p.verbatim("<", start.StartPosition)
	case token.ILLEGAL:
		p.itemErrorCount = -1
		return nil
	}
	p.curError(errors.E1005, "type")
	return nil
}

func isFnTrait(name string) bool {
	return name == "Fn" || name == "FnMut" || name == "FnOnce"
}

// parseFnTraitType parses the parenthesized sugar Fn(A, B) -> R.
func (p *Parser) parseFnTraitType() ast.Type {
	start := p.curToken
	p.nextToken()
	if !p.skipBalanced() {
		return nil
	}
	if !p.parseOptionalReturnType() {
		return nil
	}
	return p.verbatim(start.Literal, start.StartPosition)
}

// parseFnPointerType parses unsafe extern "C" fn(A) -> R.
func (p *Parser) parseFnPointerType() ast.Type {
	start := p.curToken
	for !p.curTokenIs(token.FN) {
		switch p.curToken.Type {
		case token.UNSAFE, token.STRING:
		case token.EXTERN:
			if p.peekTokenIs(token.STRING) {
				p.nextToken()
			}
		default:
			p.curError(errors.E1005, "'fn'")
			return nil
		}
		p.nextToken()
	}
	if !p.expectPeek(token.LPAREN) || !p.skipBalanced() {
		return nil
	}
	if !p.parseOptionalReturnType() {
		return nil
	}
	return p.verbatim("fn", start.StartPosition)
}

func (p *Parser) parseOptionalReturnType() bool {
	if !p.peekTokenIs(token.ARROW) {
		return true
	}
	p.nextToken()
	p.nextToken()
	return p.parseType() != nil
}

// parseBounds parses a "+" separated list of trait and lifetime bounds.
func (p *Parser) parseBounds() bool {
	for {
		switch p.curToken.Type {
		case token.LIFETIME:
		case token.QUESTION:
			p.nextToken()
			if p.parseType() == nil {
				return false
			}
		case token.LPAREN:
			if !p.skipBalanced() {
				return false
			}
		default:
			if p.parseType() == nil {
				return false
			}
		}
		if !p.peekTokenIs(token.PLUS) {
			return true
		}
		p.nextToken()
		p.nextToken()
	}
}

func (p *Parser) parseRefType() ast.Type {
	amp := p.curToken
	ref := &ast.RefType{Amp: amp.StartPosition}
	p.nextToken()
	if p.curTokenIs(token.LIFETIME) {
		ref.Lifetime = p.curToken.Literal
		p.nextToken()
	}
	if p.curTokenIs(token.MUT) {
		ref.Mutable = true
		p.nextToken()
	}
	if ref.Elem = p.parseType(); ref.Elem == nil {
		return nil
	}
	if amp.Type == token.AND {
		// && is a reference to a reference
		ref.Amp = amp.StartPosition.Advance(1)
		return &ast.RefType{Amp: amp.StartPosition, Elem: ref}
	}
	return ref
}

func (p *Parser) parseTupleType() ast.Type {
	lparen := p.curToken.StartPosition
	if p.peekTokenIs(token.RPAREN) {
		p.nextToken()
		return &ast.TupleType{Lparen: lparen, Rparen: p.curToken.StartPosition}
	}
	p.nextToken()
	first := p.parseType()
	if first == nil {
		return nil
	}
	if p.peekTokenIs(token.RPAREN) {
		// a parenthesized type is the type itself
		p.nextToken()
		return first
	}
	elems := []ast.Type{first}
	for p.peekTokenIs(token.COMMA) {
		p.nextToken()
		if p.peekTokenIs(token.RPAREN) {
			break
		}
		p.nextToken()
		elem := p.parseType()
		if elem == nil {
			return nil
		}
		elems = append(elems, elem)
	}
	if !p.expectPeek(token.RPAREN) {
		return nil
	}
	return &ast.TupleType{Lparen: lparen, Elems: elems, Rparen: p.curToken.StartPosition}
}

func (p *Parser) parseArrayType() ast.Type {
	lbrack := p.curToken.StartPosition
	p.nextToken()
	elem := p.parseType()
	if elem == nil {
		return nil
	}
	if !p.peekTokenIs(token.SEMICOLON) {
		if !p.expectPeek(token.RBRACKET) {
			return nil
		}
		return &ast.SliceType{Lbrack: lbrack, Elem: elem, Rbrack: p.curToken.StartPosition}
	}
	p.nextToken()
	p.nextToken()
	length := p.parseExpression(LOWEST)
	if length == nil {
		return nil
	}
	if !p.expectPeek(token.RBRACKET) {
		return nil
	}
	return &ast.ArrayType{Lbrack: lbrack, Elem: elem, Len: length, Rbrack: p.curToken.StartPosition}
}

// parsePathType parses a named type with optional generic arguments, such
// as i32, Vec<T> or std::collections::HashMap<K, V>.
func (p *Parser) parsePathType() ast.Type {
	typ := &ast.PathType{From: p.curToken.StartPosition}
	var name strings.Builder
	if p.curTokenIs(token.PATHSEP) {
		name.WriteString("::")
		if !p.expectPathSegment() {
			return nil
		}
	}
	name.WriteString(p.curToken.Literal)
	for {
		if p.peekTokenIs(token.LT) || (p.peekTokenIs(token.PATHSEP) && p.peekSecond().Type == token.LT) {
			if p.peekTokenIs(token.PATHSEP) {
				p.nextToken()
			}
			p.nextToken()
			args, ok := p.parseGenericArgs()
			if !ok {
				return nil
			}
			typ.Args = args
		}
		if !p.peekTokenIs(token.PATHSEP) {
			break
		}
		p.nextToken()
		if !p.expectPathSegment() {
			return nil
		}
		name.WriteString("::" + p.curToken.Literal)
		typ.Args = nil
	}
	typ.Name = name.String()
	typ.To = p.curToken.EndPosition
	return typ
}

// parseGenericArgs parses "<A, B>". curToken is "<" on entry and the
// closing ">" on exit. A closing ">>", ">=" or ">>=" is split so the
// outer list can see its own ">".
func (p *Parser) parseGenericArgs() ([]ast.Type, bool) {
	var args []ast.Type
	for {
		if p.closeAngle() {
			return args, true
		}
		p.nextToken()
		arg := p.parseGenericArg()
		if arg == nil {
			return nil, false
		}
		args = append(args, arg)
		if p.peekTokenIs(token.COMMA) {
			p.nextToken()
			continue
		}
		if !p.closeAngle() {
			p.peekError("',' or '>'")
			return nil, false
		}
		return args, true
	}
}

// closeAngle advances onto a closing ">" if peekToken begins with one.
func (p *Parser) closeAngle() bool {
	switch p.peekToken.Type {
	case token.GT:
	case token.SHR, token.GT_EQ, token.SHR_EQ:
		p.splitPeek()
	default:
		return false
	}
	p.nextToken()
	return true
}

func (p *Parser) parseGenericArg() ast.Type {
	start := p.curToken
	switch start.Type {
	case token.LIFETIME:
		return p.verbatim("lifetime", start.StartPosition)
	case token.INT, token.STRING, token.CHAR, token.TRUE, token.FALSE:
		return p.verbatim("const", start.StartPosition)
	case token.MINUS:
		if !p.expectPeek(token.INT) {
			return nil
		}
		return p.verbatim("const", start.StartPosition)
	case token.LBRACE:
		if !p.skipBalanced() {
			return nil
		}
		return p.verbatim("const", start.StartPosition)
	case token.IDENT:
		switch {
		case p.peekTokenIs(token.ASSIGN):
			// associated type binding: Item = T
			p.nextToken()
			p.nextToken()
			if p.parseType() == nil {
				return nil
			}
			return p.verbatim("binding", start.StartPosition)
		case p.peekTokenIs(token.COLON):
			// associated type bound: Item: Display
			p.nextToken()
			p.nextToken()
			if !p.parseBounds() {
				return nil
			}
			return p.verbatim("binding", start.StartPosition)
		}
	}
	return p.parseType()
}
