package errors

// ErrorCode represents a unique identifier for error types.
// Codes are organized by category:
//   - E1xxx: Parse errors
//   - E2xxx: Configuration errors
//   - E3xxx: Input errors
type ErrorCode string

const (
	// Parse errors (E1xxx)
	E1001 ErrorCode = "E1001" // Unexpected token
	E1002 ErrorCode = "E1002" // Unterminated literal or comment
	E1003 ErrorCode = "E1003" // Invalid syntax
	E1004 ErrorCode = "E1004" // Missing expression
	E1005 ErrorCode = "E1005" // Expected type
	E1006 ErrorCode = "E1006" // Expected identifier
	E1007 ErrorCode = "E1007" // Unclosed delimiter
	E1008 ErrorCode = "E1008" // Invalid number literal
	E1009 ErrorCode = "E1009" // Maximum nesting depth exceeded
	E1010 ErrorCode = "E1010" // Invalid character

	// Configuration errors (E2xxx)
	E2001 ErrorCode = "E2001" // Invalid indent width
	E2002 ErrorCode = "E2002" // Unknown output format
	E2003 ErrorCode = "E2003" // Invalid worker count
	E2004 ErrorCode = "E2004" // Invalid input selection

	// Input errors (E3xxx)
	E3001 ErrorCode = "E3001" // Unreadable input
	E3002 ErrorCode = "E3002" // Not a regular file
	E3003 ErrorCode = "E3003" // No source files found
)

// codeDescriptions maps error codes to their short descriptions.
var codeDescriptions = map[ErrorCode]string{
	E1001: "unexpected token",
	E1002: "unterminated literal",
	E1003: "invalid syntax",
	E1004: "missing expression",
	E1005: "expected type",
	E1006: "expected identifier",
	E1007: "unclosed delimiter",
	E1008: "invalid number literal",
	E1009: "maximum nesting depth exceeded",
	E1010: "invalid character",

	E2001: "invalid indent width",
	E2002: "unknown output format",
	E2003: "invalid worker count",
	E2004: "invalid input selection",

	E3001: "unreadable input",
	E3002: "not a regular file",
	E3003: "no source files found",
}

// Description returns the short description for an error code.
func (c ErrorCode) Description() string {
	if desc, ok := codeDescriptions[c]; ok {
		return desc
	}
	return "unknown error"
}

// String returns the error code as a string.
func (c ErrorCode) String() string {
	return string(c)
}

// Category returns the error category based on the code prefix.
func (c ErrorCode) Category() string {
	if len(c) < 2 {
		return "unknown"
	}
	switch c[1] {
	case '1':
		return "parse"
	case '2':
		return "configuration"
	case '3':
		return "input"
	default:
		return "unknown"
	}
}
