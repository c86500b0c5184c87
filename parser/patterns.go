package parser

import (
	"slices"

	"github.com/rustyast/rustyast/ast"
	"github.com/rustyast/rustyast/errors"
	"github.com/rustyast/rustyast/token"
)

// parsePattern scans a pattern starting at curToken. Scanning stops before
// the first terminator found outside of any delimiters, leaving curToken on
// the pattern's last token. Identifier patterns, optionally marked ref or
// mut, are recognized as simple bindings.
func (p *Parser) parsePattern(terminators ...token.Type) *ast.Pattern {
	first := p.curToken
	if first.Type == token.EOF || slices.Contains(terminators, first.Type) {
		p.curError(errors.E1003, "pattern")
		return nil
	}
	var kinds []token.Type
	depth := 0
	for {
		switch p.curToken.Type {
		case token.ILLEGAL:
			p.itemErrorCount = -1
			return nil
		case token.LPAREN, token.LBRACKET, token.LBRACE:
			depth++
		case token.RPAREN, token.RBRACKET, token.RBRACE:
			depth--
			if depth < 0 {
				p.curError(errors.E1001, "pattern")
				return nil
			}
		}
		kinds = append(kinds, p.curToken.Type)
		if p.peekTokenIs(token.EOF) {
			break
		}
		if depth == 0 && slices.Contains(terminators, p.peekToken.Type) {
			break
		}
		p.nextToken()
	}

	pattern := &ast.Pattern{
		From: first.StartPosition,
		To:   p.curToken.EndPosition,
		Text: p.text(first.StartPosition, p.curToken.EndPosition),
	}
	switch {
	case slices.Equal(kinds, []token.Type{token.IDENT}):
	case slices.Equal(kinds, []token.Type{token.MUT, token.IDENT}):
		pattern.Mutable = true
	case slices.Equal(kinds, []token.Type{token.REF, token.IDENT}):
		pattern.ByRef = true
	case slices.Equal(kinds, []token.Type{token.REF, token.MUT, token.IDENT}):
		pattern.ByRef, pattern.Mutable = true, true
	default:
		return pattern
	}
	pattern.Simple = true
	pattern.Name = p.curToken.Literal
	return pattern
}
