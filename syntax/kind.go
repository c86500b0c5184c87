// Package syntax defines the node model that renderers consume: a closed set
// of node kinds, each with a fixed schema of named scalar fields and
// ordered children, plus the depth-first traversal that drives rendering.
package syntax

// Kind identifies the syntactic category of a Node.
type Kind int

const (
	KindInvalid Kind = iota

	// Root and structure
	KindFile
	KindNone
	KindParameters
	KindBlock
	KindFields
	KindVariants
	KindArguments
	KindTypeArguments
	KindUnsupported

	// Items
	KindFunction
	KindStruct
	KindEnum
	KindParameter
	KindSelfParameter
	KindField
	KindVariant

	// Statements
	KindLet
	KindExprStmt
	KindItemStmt

	// Expressions
	KindBinary
	KindUnary
	KindAssign
	KindCall
	KindMethodCall
	KindFieldAccess
	KindIndex
	KindPath
	KindParen
	KindTuple
	KindArray
	KindArrayRepeat
	KindRange
	KindCast
	KindIf
	KindWhile
	KindLoop
	KindFor
	KindReturn
	KindBreak
	KindContinue
	KindMacro

	// Literals
	KindInt
	KindFloat
	KindStr
	KindChar
	KindBool

	// Types
	KindNamedType
	KindReferenceType
	KindTupleType
	KindArrayType
	KindSliceType

	kindCount
)

// Kinds returns every valid kind in declaration order.
func Kinds() []Kind {
	kinds := make([]Kind, 0, kindCount-1)
	for k := KindInvalid + 1; k < kindCount; k++ {
		kinds = append(kinds, k)
	}
	return kinds
}

// Valid reports whether k is one of the declared kinds.
func (k Kind) Valid() bool {
	return k > KindInvalid && k < kindCount
}

// String returns the label used for the kind in rendered output.
func (k Kind) String() string {
	if !k.Valid() {
		return "Invalid"
	}
	return schemas[k].label
}

// Category returns the syntactic category the kind belongs to.
func (k Kind) Category() Category {
	if !k.Valid() {
		return ""
	}
	return schemas[k].category
}

// Category groups kinds by the part of the grammar they come from.
type Category string

const (
	CategoryStructure  Category = "structure"
	CategoryItem       Category = "item"
	CategoryStatement  Category = "statement"
	CategoryExpression Category = "expression"
	CategoryLiteral    Category = "literal"
	CategoryType       Category = "type"
)
