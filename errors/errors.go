// Package errors defines the error kinds surfaced when rendering a source
// unit, together with a rust-style diagnostic formatter.
package errors

import (
	goerrors "errors"
	"fmt"
)

// SourceLocation represents a position in source code.
type SourceLocation struct {
	Filename  string
	Line      int    // 1-based line number
	Column    int    // 1-based column number
	EndColumn int    // 1-based column of the last character, 0 if unknown
	Source    string // The line of source code
}

// String returns a formatted string representation of the source location.
func (s SourceLocation) String() string {
	if s.Filename != "" {
		return fmt.Sprintf("%s:%d:%d", s.Filename, s.Line, s.Column)
	}
	return fmt.Sprintf("%d:%d", s.Line, s.Column)
}

// IsZero returns true if the location has not been set.
func (s SourceLocation) IsZero() bool {
	return s.Line == 0 && s.Column == 0
}

// FriendlyError is an interface for errors that have a human friendly message
// in addition to a the lower level default error message.
type FriendlyError interface {
	Error() string
	FriendlyErrorMessage() string
}

// FormattableError is an interface for errors that can be formatted with
// the enhanced error formatter (with colors, source context, etc).
type FormattableError interface {
	Error() string
	ToFormatted() *FormattedError
}

// ErrorKind represents the category of a RenderError.
type ErrorKind int

const (
	// ParseFailed indicates the source unit could not be parsed.
	ParseFailed ErrorKind = iota + 1
	// InvalidConfiguration indicates rejected options, reported before parsing.
	InvalidConfiguration
	// UnreadableInput indicates a source unit that could not be read.
	UnreadableInput
)

// String returns the string representation of the error kind.
func (k ErrorKind) String() string {
	switch k {
	case ParseFailed:
		return "parse error"
	case InvalidConfiguration:
		return "configuration error"
	case UnreadableInput:
		return "input error"
	default:
		return "error"
	}
}

// RenderError is the single error type returned when a source unit cannot be
// rendered.
type RenderError struct {
	Kind     ErrorKind
	Code     ErrorCode
	Message  string
	Location SourceLocation
	Hint     string
	Note     string
	Cause    error
}

// Error implements the error interface.
func (e *RenderError) Error() string {
	switch {
	case !e.Location.IsZero():
		return fmt.Sprintf("%s: %s (%s)", e.Kind, e.Message, e.Location)
	case e.Location.Filename != "":
		return fmt.Sprintf("%s: %s: %s", e.Kind, e.Location.Filename, e.Message)
	default:
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	}
}

// Unwrap returns the underlying cause of the error.
func (e *RenderError) Unwrap() error {
	return e.Cause
}

// ToFormatted converts the error to a FormattedError for display.
func (e *RenderError) ToFormatted() *FormattedError {
	f := &FormattedError{
		Code:      e.Code,
		Kind:      "error",
		Message:   e.Message,
		Filename:  e.Location.Filename,
		Line:      e.Location.Line,
		Column:    e.Location.Column,
		EndColumn: e.Location.EndColumn,
		Hint:      e.Hint,
		Note:      e.Note,
	}
	if e.Location.Source != "" && e.Location.Line > 0 {
		f.SourceLines = []SourceLineEntry{
			{Number: e.Location.Line, Text: e.Location.Source, IsMain: true},
		}
	}
	return f
}

// FriendlyErrorMessage returns the uncolored diagnostic for the error.
func (e *RenderError) FriendlyErrorMessage() string {
	return NewFormatter(false).Format(e.ToFormatted())
}

// NewParseError returns a ParseFailed error located at loc.
func NewParseError(code ErrorCode, message string, loc SourceLocation) *RenderError {
	return &RenderError{Kind: ParseFailed, Code: code, Message: message, Location: loc}
}

// NewConfigError returns an InvalidConfiguration error.
func NewConfigError(code ErrorCode, format string, args ...any) *RenderError {
	return &RenderError{Kind: InvalidConfiguration, Code: code, Message: fmt.Sprintf(format, args...)}
}

// NewInputError returns an UnreadableInput error wrapping cause.
func NewInputError(code ErrorCode, filename string, cause error) *RenderError {
	msg := code.Description()
	if cause != nil {
		msg = cause.Error()
	}
	return &RenderError{
		Kind:     UnreadableInput,
		Code:     code,
		Message:  msg,
		Location: SourceLocation{Filename: filename},
		Cause:    cause,
	}
}

// WithHint sets the hint shown below the diagnostic.
func (e *RenderError) WithHint(hint string) *RenderError {
	e.Hint = hint
	return e
}

// WithNote sets the note shown below the diagnostic.
func (e *RenderError) WithNote(note string) *RenderError {
	e.Note = note
	return e
}

// WithCause wraps the error with a cause.
func (e *RenderError) WithCause(cause error) *RenderError {
	e.Cause = cause
	return e
}

// IsKind reports whether any error in err's chain is a RenderError of the
// given kind.
func IsKind(err error, kind ErrorKind) bool {
	var re *RenderError
	if !goerrors.As(err, &re) {
		return false
	}
	return re.Kind == kind
}

// AsRenderError returns the first RenderError in err's chain.
func AsRenderError(err error) (*RenderError, bool) {
	var re *RenderError
	ok := goerrors.As(err, &re)
	return re, ok
}
