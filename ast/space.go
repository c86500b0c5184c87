package ast

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// CollapseSpace replaces each run of whitespace in s with a single space and
// trims both ends. The contents of string and character literals are copied
// unchanged; comments are collapsed like the surrounding code.
func CollapseSpace(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	pending := false
	prevIdent := false
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if unicode.IsSpace(r) {
			pending = b.Len() > 0
			prevIdent = false
			i += size
			continue
		}
		if pending {
			b.WriteByte(' ')
			pending = false
		}
		if n := commentLen(s[i:]); n > 0 {
			b.WriteString(strings.Join(strings.Fields(s[i:i+n]), " "))
			i += n
			prevIdent = false
			continue
		}
		if !prevIdent {
			if n := literalLen(s[i:]); n > 0 {
				b.WriteString(s[i : i+n])
				i += n
				prevIdent = false
				continue
			}
		}
		b.WriteString(s[i : i+size])
		prevIdent = r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
		i += size
	}
	return b.String()
}

// commentLen returns the length of the comment s starts with, or 0.
func commentLen(s string) int {
	switch {
	case strings.HasPrefix(s, "//"):
		if end := strings.IndexByte(s, '\n'); end >= 0 {
			return end
		}
		return len(s)
	case strings.HasPrefix(s, "/*"):
		depth := 0
		for i := 0; i+1 < len(s); i++ {
			switch s[i : i+2] {
			case "/*":
				depth++
				i++
			case "*/":
				depth--
				i++
				if depth == 0 {
					return i + 1
				}
			}
		}
		return len(s)
	}
	return 0
}

// literalLen returns the length of the string, raw string or character
// literal s starts with, or 0. An unterminated literal runs to the end of s.
func literalLen(s string) int {
	prefix := 0
	switch {
	case strings.HasPrefix(s, "br"), strings.HasPrefix(s, "cr"):
		prefix = 2
	case strings.HasPrefix(s, "b"), strings.HasPrefix(s, "c"), strings.HasPrefix(s, "r"):
		prefix = 1
	}
	rest := s[prefix:]
	switch {
	case prefix > 0 && s[prefix-1] == 'r' && (strings.HasPrefix(rest, "\"") || strings.HasPrefix(rest, "#")):
		hashes := len(rest) - len(strings.TrimLeft(rest, "#"))
		if !strings.HasPrefix(rest[hashes:], "\"") {
			return 0
		}
		closing := "\"" + strings.Repeat("#", hashes)
		body := rest[hashes+1:]
		if end := strings.Index(body, closing); end >= 0 {
			return prefix + hashes + 1 + end + len(closing)
		}
		return len(s)
	case strings.HasPrefix(rest, "\""):
		return prefix + quotedLen(rest, '"')
	case strings.HasPrefix(rest, "'") && (prefix == 0 || s[0] == 'b'):
		if n := charLen(rest); n > 0 {
			return prefix + n
		}
	}
	return 0
}

// quotedLen returns the length of the escaped literal s starts with,
// including both quotes.
func quotedLen(s string, quote byte) int {
	for i := 1; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++
		case quote:
			return i + 1
		}
	}
	return len(s)
}

// charLen returns the length of the character literal s starts with, or 0
// when the quote begins a lifetime or label.
func charLen(s string) int {
	if len(s) < 3 {
		return 0
	}
	if s[1] == '\\' {
		if len(s) < 4 {
			return 0
		}
		if end := strings.IndexByte(s[3:], '\''); end >= 0 {
			return end + 4
		}
		return 0
	}
	_, size := utf8.DecodeRuneInString(s[1:])
	if 1+size < len(s) && s[1+size] == '\'' {
		return size + 2
	}
	return 0
}
