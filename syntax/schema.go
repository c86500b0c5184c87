package syntax

import (
	"fmt"
	"slices"
)

// list marks a kind whose children form a homogeneous list of any length.
const list = -1

type schema struct {
	label    string
	category Category
	fields   []string
	children int // fixed child count, or list
}

// schemas is the single table describing every kind. Adding a kind means
// adding its entry here and its conversion in convert.go.
var schemas = [kindCount]schema{
	KindFile:          {"File", CategoryStructure, nil, list},
	KindNone:          {"None", CategoryStructure, nil, 0},
	KindParameters:    {"Parameters", CategoryStructure, nil, list},
	KindBlock:         {"Block", CategoryStructure, nil, list},
	KindFields:        {"Fields", CategoryStructure, nil, list},
	KindVariants:      {"Variants", CategoryStructure, nil, list},
	KindArguments:     {"Arguments", CategoryStructure, nil, list},
	KindTypeArguments: {"TypeArguments", CategoryStructure, nil, list},
	KindUnsupported:   {"Unsupported", CategoryStructure, []string{"category", "description"}, 0},

	KindFunction:      {"Function", CategoryItem, []string{"name", "visibility", "generics", "return_type"}, 2},
	KindStruct:        {"Struct", CategoryItem, []string{"name", "visibility", "generics", "shape"}, 1},
	KindEnum:          {"Enum", CategoryItem, []string{"name", "visibility", "generics"}, 1},
	KindParameter:     {"Parameter", CategoryItem, []string{"name", "mutable"}, 1},
	KindSelfParameter: {"SelfParameter", CategoryItem, []string{"reference", "mutable"}, 0},
	KindField:         {"Field", CategoryItem, []string{"name", "visibility"}, 1},
	KindVariant:       {"Variant", CategoryItem, []string{"name", "shape"}, 2},

	KindLet:      {"Let", CategoryStatement, []string{"name", "mutable"}, 2},
	KindExprStmt: {"ExprStmt", CategoryStatement, []string{"semicolon"}, 1},
	KindItemStmt: {"ItemStmt", CategoryStatement, nil, 1},

	KindBinary:      {"Binary", CategoryExpression, []string{"op"}, 2},
	KindUnary:       {"Unary", CategoryExpression, []string{"op"}, 1},
	KindAssign:      {"Assign", CategoryExpression, []string{"op"}, 2},
	KindCall:        {"Call", CategoryExpression, nil, 2},
	KindMethodCall:  {"MethodCall", CategoryExpression, []string{"method"}, 2},
	KindFieldAccess: {"FieldAccess", CategoryExpression, []string{"name"}, 1},
	KindIndex:       {"Index", CategoryExpression, nil, 2},
	KindPath:        {"Path", CategoryExpression, []string{"name"}, 0},
	KindParen:       {"Paren", CategoryExpression, nil, 1},
	KindTuple:       {"Tuple", CategoryExpression, nil, list},
	KindArray:       {"Array", CategoryExpression, nil, list},
	KindArrayRepeat: {"ArrayRepeat", CategoryExpression, nil, 2},
	KindRange:       {"Range", CategoryExpression, []string{"limits"}, 2},
	KindCast:        {"Cast", CategoryExpression, nil, 2},
	KindIf:          {"If", CategoryExpression, nil, 3},
	KindWhile:       {"While", CategoryExpression, []string{"label"}, 2},
	KindLoop:        {"Loop", CategoryExpression, []string{"label"}, 1},
	KindFor:         {"For", CategoryExpression, []string{"label", "pattern"}, 2},
	KindReturn:      {"Return", CategoryExpression, nil, 1},
	KindBreak:       {"Break", CategoryExpression, []string{"label"}, 1},
	KindContinue:    {"Continue", CategoryExpression, []string{"label"}, 0},
	KindMacro:       {"Macro", CategoryExpression, []string{"name", "tokens"}, 0},

	KindInt:   {"Int", CategoryLiteral, []string{"value", "suffix"}, 0},
	KindFloat: {"Float", CategoryLiteral, []string{"value", "suffix"}, 0},
	KindStr:   {"Str", CategoryLiteral, []string{"value"}, 0},
	KindChar:  {"Char", CategoryLiteral, []string{"value"}, 0},
	KindBool:  {"Bool", CategoryLiteral, []string{"value"}, 0},

	KindNamedType:     {"NamedType", CategoryType, []string{"name"}, 1},
	KindReferenceType: {"ReferenceType", CategoryType, []string{"lifetime", "mutable"}, 1},
	KindTupleType:     {"TupleType", CategoryType, nil, list},
	KindArrayType:     {"ArrayType", CategoryType, nil, 2},
	KindSliceType:     {"SliceType", CategoryType, nil, 1},
}

// FieldNames returns the ordered field names every node of kind k carries.
func (k Kind) FieldNames() []string {
	if !k.Valid() {
		return nil
	}
	return slices.Clone(schemas[k].fields)
}

// Arity returns the fixed number of children of kind k. For list kinds
// (isList) the kind takes any number of children instead.
func (k Kind) Arity() (n int, isList bool) {
	if !k.Valid() {
		return 0, false
	}
	if schemas[k].children == list {
		return 0, true
	}
	return schemas[k].children, false
}

// KindByLabel returns the kind with the given label.
func KindByLabel(label string) (Kind, bool) {
	for _, k := range Kinds() {
		if schemas[k].label == label {
			return k, true
		}
	}
	return KindInvalid, false
}

// checkShape returns a description of how fields and children violate the
// schema of kind, or "" when they conform.
func checkShape(kind Kind, fields []Field, children []*Node) string {
	if !kind.Valid() {
		return "invalid kind"
	}
	s := schemas[kind]
	if len(fields) != len(s.fields) {
		return fmt.Sprintf("%s takes %d fields, got %d", s.label, len(s.fields), len(fields))
	}
	for i, f := range fields {
		if f.Name != s.fields[i] {
			return fmt.Sprintf("%s field %d is %q, got %q", s.label, i, s.fields[i], f.Name)
		}
	}
	if s.children != list && len(children) != s.children {
		return fmt.Sprintf("%s takes %d children, got %d", s.label, s.children, len(children))
	}
	for i, c := range children {
		if c == nil {
			return fmt.Sprintf("%s child %d is nil", s.label, i)
		}
	}
	return ""
}
