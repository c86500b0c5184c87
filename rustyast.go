// Package rustyast renders the syntax tree of a Rust source unit as an
// indented text outline or an equivalent JSON document.
//
//	out, err := rustyast.Render(ctx, "fn add(a: i32, b: i32) -> i32 { a + b }")
//
// A source unit that fails to parse produces a ParseFailed error and no
// output. Constructs outside the modelled subset never fail: they render as
// Unsupported nodes carrying their source text.
package rustyast

import (
	"context"
	goerrors "errors"
	"fmt"
	"os"

	"github.com/rustyast/rustyast/errors"
	"github.com/rustyast/rustyast/parser"
	"github.com/rustyast/rustyast/render"
	"github.com/rustyast/rustyast/syntax"
	"github.com/rustyast/rustyast/token"
)

// Render parses source and renders its syntax tree.
func Render(ctx context.Context, source string, opts ...Option) (string, error) {
	o := collectOptions(opts...)
	if err := o.validate(); err != nil {
		return "", err
	}
	root, err := parse(ctx, source, o)
	if err != nil {
		return "", err
	}
	return render.Render(root, o.format, o.renderOpts()...)
}

// RenderFile reads the file at path and renders its syntax tree. The path is
// used as the file name in errors unless WithFilename overrides it.
func RenderFile(ctx context.Context, path string, opts ...Option) (string, error) {
	o := collectOptions(opts...)
	if err := o.validate(); err != nil {
		return "", err
	}
	source, err := ReadSource(path)
	if err != nil {
		return "", err
	}
	if o.filename == "" {
		o.filename = path
	}
	root, err := parse(ctx, source, o)
	if err != nil {
		return "", err
	}
	return render.Render(root, o.format, o.renderOpts()...)
}

// Parse parses source into a syntax tree without rendering it. Only the
// filename and max depth options apply.
func Parse(ctx context.Context, source string, opts ...Option) (*syntax.Node, error) {
	return parse(ctx, source, collectOptions(opts...))
}

// ReadSource reads a source unit from disk. Failures are UnreadableInput
// errors.
func ReadSource(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", errors.NewInputError(errors.E3001, path, err)
	}
	if !info.Mode().IsRegular() {
		return "", errors.NewInputError(errors.E3002, path, nil)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", errors.NewInputError(errors.E3001, path, err)
	}
	return string(data), nil
}

func parse(ctx context.Context, source string, o *options) (*syntax.Node, error) {
	file, err := parser.Parse(ctx, source, o.parserOpts()...)
	if err != nil {
		return nil, parseFailure(err)
	}
	return syntax.FromAST(file, source), nil
}

// parseFailure converts parser errors into a ParseFailed error located at
// the first problem. Context errors pass through unchanged.
func parseFailure(err error) error {
	if goerrors.Is(err, context.Canceled) || goerrors.Is(err, context.DeadlineExceeded) {
		return err
	}
	var perrs *parser.Errors
	if !goerrors.As(err, &perrs) || perrs.Count() == 0 {
		return &errors.RenderError{Kind: errors.ParseFailed, Code: errors.E1003, Message: err.Error(), Cause: err}
	}
	first := perrs.First()
	start := first.StartPosition()
	message := first.Message()
	if message == "" {
		message = first.Error()
	}
	re := errors.NewParseError(first.Code(), message, errors.SourceLocation{
		Filename:  first.File(),
		Line:      start.LineNumber(),
		Column:    start.ColumnNumber(),
		EndColumn: endColumn(start, first.EndPosition()),
		Source:    first.SourceCode(),
	}).WithCause(err)
	if n := perrs.Count(); n > 1 {
		re.WithNote(fmt.Sprintf("%d more parse errors not shown", n-1))
	}
	return re
}

func endColumn(start, end token.Position) int {
	if end.Line != start.Line || end.Column <= start.Column {
		return start.ColumnNumber()
	}
	return end.Column
}
