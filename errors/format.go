package errors

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/fatih/color"
)

// Formatter writes diagnostics in the layout rustc uses: a header, a
// location arrow, the offending source line with carets, then hint and note.
type Formatter struct {
	// UseColor enables ANSI color codes in output.
	UseColor bool
}

// NewFormatter creates a new error formatter.
func NewFormatter(useColor bool) *Formatter {
	return &Formatter{UseColor: useColor}
}

// Styles are forced on so that UseColor alone decides whether escape codes
// are written, independent of the terminal color detects.
var (
	styleLabel    = forced(color.FgHiRed, color.Bold)
	styleColon    = forced(color.FgRed)
	styleDim      = forced(color.FgHiBlack)
	styleLocation = forced(color.FgCyan)
	styleSource   = forced(color.FgWhite)
	styleCaret    = forced(color.FgHiRed)
	styleHint     = forced(color.FgHiYellow)
	styleNote     = forced(color.FgHiBlue)
)

func forced(attrs ...color.Attribute) *color.Color {
	c := color.New(attrs...)
	c.EnableColor()
	return c
}

// FormattedError represents an error ready for display.
type FormattedError struct {
	Code        ErrorCode
	Kind        string // "error", "warning", etc.
	Message     string
	Filename    string
	Line        int
	Column      int
	EndColumn   int // last underlined column
	SourceLines []SourceLineEntry
	Hint        string
	Note        string
}

// SourceLineEntry represents a line of source code with its number.
type SourceLineEntry struct {
	Number int
	Text   string
	IsMain bool // carets go under this line
}

// Format formats a single diagnostic.
func (f *Formatter) Format(err *FormattedError) string {
	return f.FormatWithPrefix(err, "")
}

// FormatWithPrefix formats a diagnostic whose header carries a position in
// a series, such as "1/3", after the error code.
func (f *Formatter) FormatWithPrefix(err *FormattedError, prefix string) string {
	var b strings.Builder
	gutter := strings.Repeat(" ", gutterWidth(err))
	f.writeHeader(&b, err, prefix)
	f.writeLocation(&b, err, gutter)
	f.writeSource(&b, err, gutter)
	if err.Hint != "" {
		b.WriteString(f.paint(styleDim, gutter+" |") + "\n")
		f.writeAnnotation(&b, gutter, styleHint, "hint", err.Hint)
	}
	if err.Note != "" {
		f.writeAnnotation(&b, gutter, styleNote, "note", err.Note)
	}
	return b.String()
}

func gutterWidth(err *FormattedError) int {
	width := len(strconv.Itoa(err.Line))
	for _, line := range err.SourceLines {
		width = max(width, len(strconv.Itoa(line.Number)))
	}
	return max(width, 2)
}

func (f *Formatter) paint(c *color.Color, s string) string {
	if !f.UseColor {
		return s
	}
	return c.Sprint(s)
}

// writeHeader writes "error[E1004]: msg", "error[E1004][2/3]: msg" or,
// without a code, "error[2/3]: msg".
func (f *Formatter) writeHeader(b *strings.Builder, err *FormattedError, prefix string) {
	label := "error"
	if err.Kind != "" {
		label = err.Kind
	}
	b.WriteString(f.paint(styleLabel, label))
	if err.Code != "" {
		b.WriteString(f.paint(styleDim, "["+string(err.Code)+"]"))
	}
	if prefix != "" {
		b.WriteString(f.paint(styleDim, "["+prefix+"]"))
	}
	b.WriteString(f.paint(styleColon, ": "))
	b.WriteString(err.Message)
	b.WriteByte('\n')
}

func (f *Formatter) writeLocation(b *strings.Builder, err *FormattedError, gutter string) {
	var loc string
	switch {
	case err.Filename != "" && err.Line > 0:
		loc = fmt.Sprintf("%s:%d:%d", err.Filename, err.Line, err.Column)
	case err.Filename != "":
		loc = err.Filename
	case err.Line > 0:
		loc = fmt.Sprintf("%d:%d", err.Line, err.Column)
	default:
		return
	}
	b.WriteString(gutter)
	b.WriteString(f.paint(styleLocation, "-->"))
	b.WriteByte(' ')
	b.WriteString(f.paint(styleLocation, loc))
	b.WriteByte('\n')
}

func (f *Formatter) writeSource(b *strings.Builder, err *FormattedError, gutter string) {
	if len(err.SourceLines) == 0 {
		return
	}
	pipe := f.paint(styleDim, " | ")
	b.WriteString(f.paint(styleDim, gutter+" |") + "\n")
	for _, line := range err.SourceLines {
		b.WriteString(f.paint(styleDim, fmt.Sprintf("%*d", len(gutter), line.Number)))
		b.WriteString(pipe)
		b.WriteString(f.paint(styleSource, line.Text))
		b.WriteByte('\n')
		if !line.IsMain || err.Column <= 0 {
			continue
		}
		width := 1
		if err.EndColumn > err.Column {
			width = err.EndColumn - err.Column + 1
		}
		b.WriteString(gutter)
		b.WriteString(pipe)
		b.WriteString(strings.Repeat(" ", err.Column-1))
		b.WriteString(f.paint(styleCaret, strings.Repeat("^", width)))
		b.WriteByte('\n')
	}
}

func (f *Formatter) writeAnnotation(b *strings.Builder, gutter string, c *color.Color, label, text string) {
	b.WriteString(gutter)
	b.WriteString(f.paint(styleDim, " = "))
	b.WriteString(f.paint(c, label+": "))
	b.WriteString(text)
	b.WriteByte('\n')
}

// FormatMultiple formats a series of diagnostics, numbering each one and
// ending with a count. A single diagnostic is formatted as by Format.
func (f *Formatter) FormatMultiple(errs []*FormattedError) string {
	switch len(errs) {
	case 0:
		return ""
	case 1:
		return f.Format(errs[0])
	}
	var b strings.Builder
	for i, err := range errs {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(f.FormatWithPrefix(err, fmt.Sprintf("%d/%d", i+1, len(errs))))
	}
	b.WriteByte('\n')
	b.WriteString(f.paint(styleLabel, fmt.Sprintf("found %d errors", len(errs))))
	b.WriteByte('\n')
	return b.String()
}
