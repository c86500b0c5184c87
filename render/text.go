package render

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/fatih/color"

	"github.com/rustyast/rustyast/syntax"
)

// Text renders root as an indented outline with one line per node. The File
// root has no line of its own, so top-level items start in column 0 and a
// node at depth d is indented by (d-1)*indent spaces. Any other root is
// rendered from column 0. Control characters inside field values are
// written as escapes so that a value never spans lines.
func Text(root *syntax.Node, opts ...Option) (string, error) {
	o := NewOptions(opts...)
	if err := o.Validate(); err != nil {
		return "", err
	}
	return renderText(root, o), nil
}

type textWriter struct {
	b      strings.Builder
	indent int
	skip   int // levels without a line of their own
	label  *color.Color
}

func renderText(root *syntax.Node, o Options) string {
	w := &textWriter{indent: o.Indent}
	if root.Kind() == syntax.KindFile {
		w.skip = 1
	}
	if o.Color {
		w.label = color.New(color.FgCyan, color.Bold)
		w.label.EnableColor()
	}
	syntax.Walk(root, syntax.HandlerFuncs{EnterFunc: w.enter})
	return w.b.String()
}

func (w *textWriter) enter(n *syntax.Node, depth int) {
	level := depth - w.skip
	if level < 0 {
		return
	}
	w.b.WriteString(strings.Repeat(" ", level*w.indent))
	if w.label != nil {
		w.b.WriteString(w.label.Sprint(n.Label()))
	} else {
		w.b.WriteString(n.Label())
	}
	w.b.WriteByte(':')
	for i, f := range n.Fields() {
		if i == 0 {
			w.b.WriteByte(' ')
		} else {
			w.b.WriteString(", ")
		}
		w.b.WriteString(f.Name)
		w.b.WriteByte('=')
		w.b.WriteString(escapeControl(f.Value.String()))
	}
	w.b.WriteByte('\n')
}

// escapeControl rewrites control characters in s as Rust escapes: \n, \r
// and \t by name, anything else as \u{..}.
func escapeControl(s string) string {
	if strings.IndexFunc(s, unicode.IsControl) < 0 {
		return s
	}
	var b strings.Builder
	for _, r := range s {
		switch {
		case r == '\n':
			b.WriteString(`\n`)
		case r == '\r':
			b.WriteString(`\r`)
		case r == '\t':
			b.WriteString(`\t`)
		case unicode.IsControl(r):
			fmt.Fprintf(&b, `\u{%x}`, r)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
