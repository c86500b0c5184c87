// Package render turns a syntax tree into its text outline or JSON document.
// Both renderers are driven by syntax.Walk and produce equivalent content.
package render

import (
	"strings"

	"github.com/rustyast/rustyast/errors"
	"github.com/rustyast/rustyast/syntax"
)

// Format selects the output representation.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// Formats returns the supported formats.
func Formats() []Format {
	return []Format{FormatText, FormatJSON}
}

// ParseFormat resolves a format name, ignoring case. An unknown name is an
// InvalidConfiguration error carrying a suggestion when one is close enough.
func ParseFormat(name string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(name)))
	if f.Valid() {
		return f, nil
	}
	return "", unknownFormat(name)
}

// Valid reports whether f is a supported format.
func (f Format) Valid() bool {
	return f == FormatText || f == FormatJSON
}

func (f Format) String() string { return string(f) }

func unknownFormat(name string) *errors.RenderError {
	err := errors.NewConfigError(errors.E2002, "unknown output format %q (expected text or json)", name)
	names := make([]string, 0, len(Formats()))
	for _, f := range Formats() {
		names = append(names, string(f))
	}
	if hint := errors.FormatSuggestions(errors.SuggestSimilar(name, names)); hint != "" {
		err.WithHint(hint)
	}
	return err
}

const (
	DefaultIndent = 2
	MinIndent     = 1
	MaxIndent     = 16
)

// Options control the rendered output.
type Options struct {
	Indent  int  // spaces per nesting level
	Color   bool // colour node labels in text output
	Compact bool // emit JSON on a single line
}

// Option configures rendering.
type Option func(*Options)

// WithIndent sets the number of spaces per nesting level.
func WithIndent(n int) Option {
	return func(o *Options) {
		o.Indent = n
	}
}

// WithColor enables ANSI colouring of node labels in text output.
func WithColor(enabled bool) Option {
	return func(o *Options) {
		o.Color = enabled
	}
}

// WithCompact emits JSON on a single line.
func WithCompact(enabled bool) Option {
	return func(o *Options) {
		o.Compact = enabled
	}
}

// NewOptions applies opts over the defaults.
func NewOptions(opts ...Option) Options {
	o := Options{Indent: DefaultIndent}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Validate checks the options, returning an InvalidConfiguration error when
// the indent is out of range.
func (o Options) Validate() error {
	if o.Indent < MinIndent || o.Indent > MaxIndent {
		return errors.NewConfigError(errors.E2001,
			"indent must be between %d and %d, got %d", MinIndent, MaxIndent, o.Indent)
	}
	return nil
}

// Render renders root in the given format.
func Render(root *syntax.Node, format Format, opts ...Option) (string, error) {
	o := NewOptions(opts...)
	if err := o.Validate(); err != nil {
		return "", err
	}
	switch format {
	case FormatText:
		return renderText(root, o), nil
	case FormatJSON:
		return renderJSON(root, o)
	default:
		return "", unknownFormat(string(format))
	}
}
