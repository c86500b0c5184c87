package syntax

// ValueKind tags the scalar held by a Value.
type ValueKind uint8

const (
	NoneValue   ValueKind = iota // the empty marker
	IdentValue                   // identifier or path
	SymbolValue                  // operator or punctuation
	TextValue                    // raw source text
	IntValue                     // base-10 integer digits
	FloatValue                   // normalized decimal number
	BoolValue                    // true or false
)

func (k ValueKind) String() string {
	switch k {
	case IdentValue:
		return "ident"
	case SymbolValue:
		return "symbol"
	case TextValue:
		return "text"
	case IntValue:
		return "int"
	case FloatValue:
		return "float"
	case BoolValue:
		return "bool"
	default:
		return "none"
	}
}

// Placeholder is how the None value is written in text output. The lexer
// rejects this character outside literals and comments, and every other value
// is either generated or a span of valid tokens, so no present value can be
// spelled this way.
const Placeholder = "∅"

// Value is a tagged scalar field value. The zero Value is None.
type Value struct {
	kind ValueKind
	text string
}

// None returns the empty marker.
func None() Value { return Value{} }

// Ident returns an identifier value.
func Ident(s string) Value { return Value{kind: IdentValue, text: s} }

// Symbol returns an operator or punctuation value.
func Symbol(s string) Value { return Value{kind: SymbolValue, text: s} }

// Text returns a raw source text value.
func Text(s string) Value { return Value{kind: TextValue, text: s} }

// Int returns an integer value. digits must be a base-10 integer.
func Int(digits string) Value { return Value{kind: IntValue, text: digits} }

// Float returns a floating point value in normalized decimal form.
func Float(s string) Value { return Value{kind: FloatValue, text: s} }

// Bool returns a boolean value.
func Bool(b bool) Value {
	if b {
		return Value{kind: BoolValue, text: "true"}
	}
	return Value{kind: BoolValue, text: "false"}
}

// OptionalText returns Text(s), or None when s is empty.
func OptionalText(s string) Value {
	if s == "" {
		return None()
	}
	return Text(s)
}

// OptionalIdent returns Ident(s), or None when s is empty.
func OptionalIdent(s string) Value {
	if s == "" {
		return None()
	}
	return Ident(s)
}

// Kind returns the value's tag.
func (v Value) Kind() ValueKind { return v.kind }

// IsNone reports whether v is the empty marker.
func (v Value) IsNone() bool { return v.kind == NoneValue }

// IsNumber reports whether v renders as a JSON number.
func (v Value) IsNumber() bool { return v.kind == IntValue || v.kind == FloatValue }

// String returns the literal textual form of the value.
func (v Value) String() string {
	if v.kind == NoneValue {
		return Placeholder
	}
	return v.text
}

// Field is one named scalar of a node.
type Field struct {
	Name  string
	Value Value
}

// F is shorthand for constructing a Field.
func F(name string, value Value) Field {
	return Field{Name: name, Value: value}
}
