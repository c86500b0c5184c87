package rustyast

import (
	"github.com/rustyast/rustyast/parser"
	"github.com/rustyast/rustyast/render"
)

// Option configures how a source unit is parsed and rendered.
type Option func(*options)

type options struct {
	format   render.Format
	indent   int
	filename string
	color    bool
	compact  bool
	maxDepth int
}

func collectOptions(opts ...Option) *options {
	o := &options{
		format:   render.FormatText,
		indent:   render.DefaultIndent,
		maxDepth: parser.DefaultMaxDepth,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(o)
		}
	}
	return o
}

// validate rejects bad options before any parsing happens and normalizes
// the format name.
func (o *options) validate() error {
	format, err := render.ParseFormat(string(o.format))
	if err != nil {
		return err
	}
	o.format = format
	return render.NewOptions(o.renderOpts()...).Validate()
}

func (o *options) renderOpts() []render.Option {
	return []render.Option{
		render.WithIndent(o.indent),
		render.WithColor(o.color),
		render.WithCompact(o.compact),
	}
}

func (o *options) parserOpts() []parser.Option {
	opts := []parser.Option{parser.WithMaxDepth(o.maxDepth)}
	if o.filename != "" {
		opts = append(opts, parser.WithFilename(o.filename))
	}
	return opts
}

// WithFormat selects text or JSON output. The default is text.
func WithFormat(format render.Format) Option {
	return func(o *options) {
		o.format = format
	}
}

// WithIndent sets the spaces per nesting level, between 1 and 16. The
// default is 2.
func WithIndent(n int) Option {
	return func(o *options) {
		o.indent = n
	}
}

// WithFilename sets the file name reported in parse errors.
func WithFilename(filename string) Option {
	return func(o *options) {
		o.filename = filename
	}
}

// WithColor colours node labels in text output.
func WithColor(enabled bool) Option {
	return func(o *options) {
		o.color = enabled
	}
}

// WithCompactJSON emits JSON output on a single line.
func WithCompactJSON(enabled bool) Option {
	return func(o *options) {
		o.compact = enabled
	}
}

// WithMaxDepth limits how deeply the parser follows nested constructs.
func WithMaxDepth(depth int) Option {
	return func(o *options) {
		o.maxDepth = depth
	}
}
