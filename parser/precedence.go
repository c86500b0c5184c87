package parser

import "github.com/rustyast/rustyast/token"

// Precedence order for operators, lowest binding first.
const (
	_ int = iota
	LOWEST
	ASSIGN      // = += -= ...
	RANGE       // .. ..=
	LOGICAL_OR  // ||
	LOGICAL_AND // &&
	COMPARE     // == != < > <= >=
	BIT_OR      // |
	BIT_XOR     // ^
	BIT_AND     // &
	SHIFT       // << >>
	SUM         // + -
	PRODUCT     // * / %
	CAST        // as
	PREFIX      // -X !X *X &X
	POSTFIX     // x.f x() x[i] x?
)

// Precedences for each token type
var precedences = map[token.Type]int{
	token.ASSIGN:       ASSIGN,
	token.PLUS_EQ:      ASSIGN,
	token.MINUS_EQ:     ASSIGN,
	token.ASTERISK_EQ:  ASSIGN,
	token.SLASH_EQ:     ASSIGN,
	token.PERCENT_EQ:   ASSIGN,
	token.CARET_EQ:     ASSIGN,
	token.AMPERSAND_EQ: ASSIGN,
	token.PIPE_EQ:      ASSIGN,
	token.SHL_EQ:       ASSIGN,
	token.SHR_EQ:       ASSIGN,
	token.DOTDOT:       RANGE,
	token.DOTDOTEQ:     RANGE,
	token.OR:           LOGICAL_OR,
	token.AND:          LOGICAL_AND,
	token.EQ:           COMPARE,
	token.NOT_EQ:       COMPARE,
	token.LT:           COMPARE,
	token.GT:           COMPARE,
	token.LT_EQ:        COMPARE,
	token.GT_EQ:        COMPARE,
	token.PIPE:         BIT_OR,
	token.CARET:        BIT_XOR,
	token.AMPERSAND:    BIT_AND,
	token.SHL:          SHIFT,
	token.SHR:          SHIFT,
	token.PLUS:         SUM,
	token.MINUS:        SUM,
	token.ASTERISK:     PRODUCT,
	token.SLASH:        PRODUCT,
	token.PERCENT:      PRODUCT,
	token.AS:           CAST,
	token.PERIOD:       POSTFIX,
	token.LPAREN:       POSTFIX,
	token.LBRACKET:     POSTFIX,
	token.QUESTION:     POSTFIX,
}
