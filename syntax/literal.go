package syntax

import (
	"math/big"
	"strings"
)

// normalizeInt splits an integer literal into its base-10 value and type
// suffix: 0xFF_u8 becomes ("255", "u8").
func normalizeInt(lit string) (digits, suffix string, ok bool) {
	base, body := 10, lit
	switch {
	case strings.HasPrefix(lit, "0x"):
		base, body = 16, lit[2:]
	case strings.HasPrefix(lit, "0o"):
		base, body = 8, lit[2:]
	case strings.HasPrefix(lit, "0b"):
		base, body = 2, lit[2:]
	}
	end := 0
	for end < len(body) && (body[end] == '_' || isDigitIn(body[end], base)) {
		end++
	}
	n, ok := new(big.Int).SetString(strings.ReplaceAll(body[:end], "_", ""), base)
	if !ok {
		return "", "", false
	}
	return n.String(), strings.TrimPrefix(body[end:], "_"), true
}

func isDigitIn(c byte, base int) bool {
	var v int
	switch {
	case c >= '0' && c <= '9':
		v = int(c - '0')
	case c >= 'a' && c <= 'f':
		v = int(c-'a') + 10
	case c >= 'A' && c <= 'F':
		v = int(c-'A') + 10
	default:
		return false
	}
	return v < base
}

// normalizeFloat splits a float literal into a decimal form that is also a
// valid JSON number and its type suffix: 1_000.5f64 becomes ("1000.5", "f64")
// and 1e3 becomes ("1.0e3", "").
func normalizeFloat(lit string) (value, suffix string, ok bool) {
	s := lit
	for _, sfx := range []string{"f32", "f64"} {
		if strings.HasSuffix(s, sfx) {
			suffix, s = sfx, strings.TrimSuffix(s, sfx)
			break
		}
	}
	s = strings.ReplaceAll(s, "_", "")
	mantissa, exp, hasExp := strings.Cut(strings.ToLower(s), "e")
	whole, frac, _ := strings.Cut(mantissa, ".")
	if whole = strings.TrimLeft(whole, "0"); whole == "" {
		whole = "0"
	}
	if frac == "" {
		frac = "0"
	}
	if !allDigits(whole) || !allDigits(frac) {
		return "", "", false
	}
	value = whole + "." + frac
	if !hasExp {
		return value, suffix, true
	}
	sign := ""
	if exp != "" && (exp[0] == '+' || exp[0] == '-') {
		if exp[0] == '-' {
			sign = "-"
		}
		exp = exp[1:]
	}
	if !allDigits(exp) {
		return "", "", false
	}
	if exp = strings.TrimLeft(exp, "0"); exp == "" {
		exp = "0"
	}
	return value + "e" + sign + exp, suffix, true
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
