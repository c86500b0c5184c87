package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCollapseSpace(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"", ""},
		{"  a \n\t b  ", "a b"},
		{`"a    b",   x`, `"a    b", x`},
		{"\"line1\nline2\"", "\"line1\nline2\""},
		{`"esc \"  q\"  "  y`, `"esc \"  q\"  " y`},
		{"r#\"a \"  b\"#   z", "r#\"a \"  b\"# z"},
		{"br\"  \"", "br\"  \""},
		{"b\"  x\"", "b\"  x\""},
		{"' '  ,  '\\''", "' ' , '\\''"},
		{"b' '", "b' '"},
		{"&'a   str", "&'a str"},
		{"'outer:  loop", "'outer: loop"},
		{"for    x", "for x"},
		{"r#type   ", "r#type"},
		{"a /*  x\n  y */  b", "a /* x y */ b"},
		{"// note   here\n  c", "// note here c"},
		{`"open   `, `"open   `},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, CollapseSpace(tt.input))
		})
	}
}
