package parser

import (
	"github.com/rustyast/rustyast/ast"
	"github.com/rustyast/rustyast/errors"
	"github.com/rustyast/rustyast/token"
)

// parseItem parses one item starting at curToken and leaves curToken on the
// item's last token.
func (p *Parser) parseItem() ast.Item {
	if !p.skipAttributes() {
		return nil
	}
	if p.curTokenIs(token.EOF) {
		p.setTokenError(p.prevToken, errors.E1003, "expected item after attributes")
		return nil
	}
	start := p.curToken.StartPosition
	vis, ok := p.parseVisibility()
	if !ok {
		return nil
	}
	switch p.curToken.Type {
	case token.FN:
		return nilItem(p.parseFn(start, vis, nil))
	case token.STRUCT:
		return nilItem(p.parseStruct(start, vis))
	case token.ENUM:
		return nilItem(p.parseEnum(start, vis))
	case token.CONST, token.ASYNC, token.UNSAFE, token.EXTERN:
		keyword := p.curToken.Literal
		quals := p.parseQualifiers()
		if p.curTokenIs(token.FN) {
			return nilItem(p.parseFn(start, vis, quals))
		}
		return nilItem(p.parseVerbatimItem(start, keyword))
	case token.USE, token.IMPL, token.TRAIT, token.MOD, token.TYPE, token.STATIC:
		return nilItem(p.parseVerbatimItem(start, p.curToken.Literal))
	case token.IDENT:
		// Item macros (macro_rules!, lazy_static!) and contextual keywords
		// such as union.
		if p.peekTokenIs(token.BANG) || (p.curToken.Literal == "union" && p.peekTokenIs(token.IDENT)) {
			return nilItem(p.parseVerbatimItem(start, p.curToken.Literal))
		}
	}
	p.curError(errors.E1003, "item")
	return nil
}

// nilItem converts a typed nil item pointer into a nil interface.
func nilItem[T interface {
	ast.Item
	comparable
}](item T) ast.Item {
	var zero T
	if item == zero {
		return nil
	}
	return item
}

// isItemStart reports whether curToken begins an item inside a block.
func (p *Parser) isItemStart() bool {
	switch p.curToken.Type {
	case token.FN, token.STRUCT, token.ENUM, token.USE, token.IMPL, token.TRAIT,
		token.MOD, token.TYPE, token.STATIC, token.PUB, token.EXTERN:
		return true
	case token.CONST:
		// const blocks are expressions
		return !p.peekTokenIs(token.LBRACE)
	case token.UNSAFE, token.ASYNC:
		return !p.peekTokenIs(token.LBRACE) && !p.peekTokenIs(token.MOVE)
	case token.IDENT:
		if p.curToken.Literal == "macro_rules" && p.peekTokenIs(token.BANG) {
			return true
		}
		return p.curToken.Literal == "union" && p.peekTokenIs(token.IDENT)
	}
	return false
}

// parseVisibility consumes pub, pub(crate), pub(super), pub(self) or
// pub(in path) and leaves curToken on the following token.
func (p *Parser) parseVisibility() (string, bool) {
	if !p.curTokenIs(token.PUB) {
		return "", true
	}
	start := p.curToken.StartPosition
	if p.peekTokenIs(token.LPAREN) {
		switch p.peekSecond().Type {
		case token.CRATE, token.SUPER, token.SELF, token.IN:
			p.nextToken()
			if !p.skipBalanced() {
				return "", false
			}
		}
	}
	vis := p.text(start, p.curToken.EndPosition)
	p.nextToken()
	return vis, true
}

// parseQualifiers consumes function qualifiers and leaves curToken on the
// first token that is not one.
func (p *Parser) parseQualifiers() []string {
	var quals []string
	for {
		switch p.curToken.Type {
		case token.CONST, token.ASYNC, token.UNSAFE:
			if !p.peekTokenIs(token.FN) && !p.peekTokenIs(token.UNSAFE) &&
				!p.peekTokenIs(token.ASYNC) && !p.peekTokenIs(token.EXTERN) {
				return quals
			}
			quals = append(quals, p.curToken.Literal)
		case token.EXTERN:
			q := p.curToken.Literal
			if p.peekTokenIs(token.STRING) || p.peekTokenIs(token.RAWSTRING) {
				p.nextToken()
				q += " " + p.curToken.Literal
			}
			if !p.peekTokenIs(token.FN) {
				return quals
			}
			quals = append(quals, q)
		default:
			return quals
		}
		p.nextToken()
	}
}

func (p *Parser) parseFn(start token.Position, vis string, quals []string) *ast.Fn {
	fn := &ast.Fn{Visibility: vis, Qualifiers: quals, FnPos: start}
	if !p.expectPeekIdent("function name") {
		return nil
	}
	fn.Name = p.newIdent(p.curToken)
	if p.peekTokenIs(token.LT) {
		p.nextToken()
		params, ok := p.parseGenericParams()
		if !ok {
			return nil
		}
		fn.Generics.Params = params
	}
	if !p.expectPeek(token.LPAREN) {
		return nil
	}
	params, ok := p.parseFnParams()
	if !ok {
		return nil
	}
	fn.Params = params
	fn.Rparen = p.curToken.StartPosition
	if p.peekTokenIs(token.ARROW) {
		p.nextToken()
		p.nextToken()
		if fn.Return = p.parseType(); fn.Return == nil {
			return nil
		}
	}
	if p.peekTokenIs(token.WHERE) {
		p.nextToken()
		where, ok := p.parseWhereClause()
		if !ok {
			return nil
		}
		fn.Generics.Where = where
	}
	if p.peekTokenIs(token.SEMICOLON) {
		p.nextToken()
		fn.Semi = p.curToken.StartPosition
		return fn
	}
	if !p.expectPeek(token.LBRACE) {
		return nil
	}
	if fn.Body = p.parseBlock(); fn.Body == nil {
		return nil
	}
	return fn
}

// parseGenericParams captures a generic parameter list as source text.
// curToken is "<" on entry and the closing ">" on exit.
func (p *Parser) parseGenericParams() (string, bool) {
	start := p.curToken.StartPosition
	if !p.skipAngles() {
		return "", false
	}
	return p.text(start, p.curToken.EndPosition), true
}

// parseWhereClause captures a where clause as source text, stopping before
// the "{" or ";" that follows it.
func (p *Parser) parseWhereClause() (string, bool) {
	start := p.curToken.StartPosition
	depth := 0
	for {
		switch p.peekToken.Type {
		case token.EOF:
			p.peekError("'{'")
			return "", false
		case token.LPAREN, token.LBRACKET, token.LT:
			depth++
		case token.RPAREN, token.RBRACKET, token.GT:
			depth--
		case token.SHR:
			depth -= 2
		case token.LBRACE, token.SEMICOLON:
			if depth <= 0 {
				return p.text(start, p.curToken.EndPosition), true
			}
		}
		p.nextToken()
	}
}

// parseFnParams parses a parameter list. curToken is "(" on entry and ")"
// on exit.
func (p *Parser) parseFnParams() ([]ast.Param, bool) {
	var params []ast.Param
	for {
		if p.peekTokenIs(token.RPAREN) {
			p.nextToken()
			return params, true
		}
		p.nextToken()
		if !p.skipAttributes() {
			return nil, false
		}
		param := p.parseFnParam()
		if param == nil {
			return nil, false
		}
		params = append(params, param)
		if p.peekTokenIs(token.COMMA) {
			p.nextToken()
			continue
		}
		if !p.expectPeek(token.RPAREN) {
			return nil, false
		}
		return params, true
	}
}

func (p *Parser) parseFnParam() ast.Param {
	if p.isSelfParam() {
		return p.parseSelfParam()
	}
	pattern := p.parsePattern(token.COLON, token.COMMA, token.RPAREN)
	if pattern == nil {
		return nil
	}
	if !p.expectPeek(token.COLON) {
		return nil
	}
	p.nextToken()
	typ := p.parseType()
	if typ == nil {
		return nil
	}
	return &ast.TypedParam{Pattern: pattern, Type: typ}
}

func (p *Parser) isSelfParam() bool {
	switch p.curToken.Type {
	case token.SELF:
		return true
	case token.MUT:
		return p.peekTokenIs(token.SELF)
	case token.AMPERSAND:
		switch p.peekToken.Type {
		case token.SELF, token.LIFETIME:
			return true
		case token.MUT:
			return p.peekSecond().Type == token.SELF
		}
	}
	return false
}

func (p *Parser) parseSelfParam() ast.Param {
	param := &ast.SelfParam{From: p.curToken.StartPosition}
	if p.curTokenIs(token.AMPERSAND) {
		param.Reference = true
		p.nextToken()
		if p.curTokenIs(token.LIFETIME) {
			param.Lifetime = p.curToken.Literal
			p.nextToken()
		}
	}
	if p.curTokenIs(token.MUT) {
		param.Mutable = true
		p.nextToken()
	}
	if !p.curTokenIs(token.SELF) {
		p.curError(errors.E1003, "'self'")
		return nil
	}
	if !param.Reference && p.peekTokenIs(token.COLON) {
		p.nextToken()
		p.nextToken()
		if param.Type = p.parseType(); param.Type == nil {
			return nil
		}
	}
	param.To = p.curToken.EndPosition
	return param
}

func (p *Parser) parseStruct(start token.Position, vis string) *ast.Struct {
	s := &ast.Struct{Visibility: vis, StructPos: start}
	if !p.expectPeekIdent("struct name") {
		return nil
	}
	s.Name = p.newIdent(p.curToken)
	if p.peekTokenIs(token.LT) {
		p.nextToken()
		params, ok := p.parseGenericParams()
		if !ok {
			return nil
		}
		s.Generics.Params = params
	}
	if p.peekTokenIs(token.WHERE) {
		p.nextToken()
		where, ok := p.parseWhereClause()
		if !ok {
			return nil
		}
		s.Generics.Where = where
	}
	switch {
	case p.peekTokenIs(token.SEMICOLON):
		p.nextToken()
		s.Kind = ast.UnitStruct
	case p.peekTokenIs(token.LBRACE):
		p.nextToken()
		fields, ok := p.parseNamedFields()
		if !ok {
			return nil
		}
		s.Kind, s.Fields = ast.NamedStruct, fields
	case p.peekTokenIs(token.LPAREN):
		p.nextToken()
		fields, ok := p.parseTupleFields()
		if !ok {
			return nil
		}
		s.Kind, s.Fields = ast.TupleStruct, fields
		if p.peekTokenIs(token.WHERE) {
			p.nextToken()
			where, ok := p.parseWhereClause()
			if !ok {
				return nil
			}
			s.Generics.Where = where
		}
		if !p.expectPeek(token.SEMICOLON) {
			return nil
		}
	default:
		p.peekError("'{', '(' or ';'")
		return nil
	}
	s.Close = p.curToken.StartPosition
	return s
}

// parseNamedFields parses "{ name: Type, ... }". curToken is "{" on entry
// and "}" on exit.
func (p *Parser) parseNamedFields() ([]*ast.StructField, bool) {
	var fields []*ast.StructField
	for {
		if p.peekTokenIs(token.RBRACE) {
			p.nextToken()
			return fields, true
		}
		p.nextToken()
		if !p.skipAttributes() {
			return nil, false
		}
		from := p.curToken.StartPosition
		vis, ok := p.parseVisibility()
		if !ok {
			return nil, false
		}
		if !p.curTokenIs(token.IDENT) {
			p.curError(errors.E1006, "field name")
			return nil, false
		}
		field := &ast.StructField{Visibility: vis, From: from, Name: p.newIdent(p.curToken)}
		if !p.expectPeek(token.COLON) {
			return nil, false
		}
		p.nextToken()
		if field.Type = p.parseType(); field.Type == nil {
			return nil, false
		}
		fields = append(fields, field)
		if p.peekTokenIs(token.COMMA) {
			p.nextToken()
			continue
		}
		if !p.expectPeek(token.RBRACE) {
			return nil, false
		}
		return fields, true
	}
}

// parseTupleFields parses "(Type, ...)". curToken is "(" on entry and ")"
// on exit.
func (p *Parser) parseTupleFields() ([]*ast.StructField, bool) {
	var fields []*ast.StructField
	for {
		if p.peekTokenIs(token.RPAREN) {
			p.nextToken()
			return fields, true
		}
		p.nextToken()
		if !p.skipAttributes() {
			return nil, false
		}
		from := p.curToken.StartPosition
		vis, ok := p.parseVisibility()
		if !ok {
			return nil, false
		}
		field := &ast.StructField{Visibility: vis, From: from}
		if field.Type = p.parseType(); field.Type == nil {
			return nil, false
		}
		fields = append(fields, field)
		if p.peekTokenIs(token.COMMA) {
			p.nextToken()
			continue
		}
		if !p.expectPeek(token.RPAREN) {
			return nil, false
		}
		return fields, true
	}
}

func (p *Parser) parseEnum(start token.Position, vis string) *ast.Enum {
	e := &ast.Enum{Visibility: vis, EnumPos: start}
	if !p.expectPeekIdent("enum name") {
		return nil
	}
	e.Name = p.newIdent(p.curToken)
	if p.peekTokenIs(token.LT) {
		p.nextToken()
		params, ok := p.parseGenericParams()
		if !ok {
			return nil
		}
		e.Generics.Params = params
	}
	if p.peekTokenIs(token.WHERE) {
		p.nextToken()
		where, ok := p.parseWhereClause()
		if !ok {
			return nil
		}
		e.Generics.Where = where
	}
	if !p.expectPeek(token.LBRACE) {
		return nil
	}
	for {
		if p.peekTokenIs(token.RBRACE) {
			p.nextToken()
			break
		}
		p.nextToken()
		if !p.skipAttributes() {
			return nil
		}
		v := p.parseVariant()
		if v == nil {
			return nil
		}
		e.Variants = append(e.Variants, v)
		if p.peekTokenIs(token.COMMA) {
			p.nextToken()
			continue
		}
		if !p.expectPeek(token.RBRACE) {
			return nil
		}
		break
	}
	e.Rbrace = p.curToken.StartPosition
	return e
}

func (p *Parser) parseVariant() *ast.Variant {
	if !p.curTokenIs(token.IDENT) {
		p.curError(errors.E1006, "variant name")
		return nil
	}
	v := &ast.Variant{Name: p.newIdent(p.curToken)}
	switch {
	case p.peekTokenIs(token.LBRACE):
		p.nextToken()
		fields, ok := p.parseNamedFields()
		if !ok {
			return nil
		}
		v.Kind, v.Fields = ast.NamedStruct, fields
	case p.peekTokenIs(token.LPAREN):
		p.nextToken()
		fields, ok := p.parseTupleFields()
		if !ok {
			return nil
		}
		v.Kind, v.Fields = ast.TupleStruct, fields
	}
	if p.peekTokenIs(token.ASSIGN) {
		p.nextToken()
		p.nextToken()
		if v.Discriminant = p.parseExpression(LOWEST); v.Discriminant == nil {
			return nil
		}
	}
	v.To = p.curToken.EndPosition
	return v
}

// parseVerbatimItem skips an item the tree does not model, ending at its
// terminating ";" or closing "}".
func (p *Parser) parseVerbatimItem(start token.Position, keyword string) *ast.Verbatim {
	depth := 0
	for {
		switch p.curToken.Type {
		case token.EOF:
			p.curError(errors.E1007, "';' or '}'")
			return nil
		case token.ILLEGAL:
			p.itemErrorCount = -1
			return nil
		case token.LPAREN, token.LBRACKET, token.LBRACE:
			depth++
		case token.RPAREN, token.RBRACKET:
			depth--
		case token.RBRACE:
			depth--
			if depth == 0 {
				if p.peekTokenIs(token.SEMICOLON) {
					p.nextToken()
				}
				return p.verbatim(keyword, start)
			}
		case token.SEMICOLON:
			if depth == 0 {
				return p.verbatim(keyword, start)
			}
		}
		if depth < 0 {
			p.curError(errors.E1001, "';' or '}'")
			return nil
		}
		p.nextToken()
	}
}

// verbatim builds a Verbatim node spanning start to the end of curToken.
func (p *Parser) verbatim(keyword string, start token.Position) *ast.Verbatim {
	return &ast.Verbatim{
		Keyword: keyword,
		From:    start,
		To:      p.curToken.EndPosition,
		Text:    p.text(start, p.curToken.EndPosition),
	}
}
