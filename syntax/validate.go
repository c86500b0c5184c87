package syntax

import (
	"fmt"
	"slices"
	"strings"
)

// childRoles lists the kinds allowed at each fixed child position, for the
// kinds whose children have structural roles. Positions not listed accept
// any kind.
var childRoles = map[Kind][][]Kind{
	KindFunction:   {{KindParameters}, {KindBlock, KindNone}},
	KindStruct:     {{KindFields}},
	KindEnum:       {{KindVariants}},
	KindVariant:    {{KindFields}},
	KindCall:       {nil, {KindArguments}},
	KindMethodCall: {nil, {KindArguments}},
	KindIf:         {nil, {KindBlock}, {KindIf, KindBlock, KindNone}},
	KindWhile:      {nil, {KindBlock}},
	KindLoop:       {{KindBlock}},
	KindFor:        {nil, {KindBlock}},
	KindNamedType:  {{KindTypeArguments}},
}

// listMembers lists the kinds allowed in list kinds with a restricted
// membership.
var listMembers = map[Kind][]Kind{
	KindParameters: {KindParameter, KindSelfParameter},
	KindFields:     {KindField},
	KindVariants:   {KindVariant},
	KindBlock:      {KindLet, KindExprStmt, KindItemStmt, KindUnsupported},
	KindFile:       {KindFunction, KindStruct, KindEnum, KindUnsupported},
}

// boolFields names the fields that always hold a Bool.
var boolFields = []string{"mutable", "reference", "semicolon"}

// Validate checks every node of the tree rooted at root against the schema.
// It returns nil when the tree conforms, otherwise a *ValidationErrors.
func Validate(root *Node) error {
	if root == nil {
		return NewValidationErrors([]ValidationError{{Message: "nil node"}})
	}
	var errs []ValidationError
	var check func(n *Node, path string)
	check = func(n *Node, path string) {
		if n == nil {
			errs = append(errs, ValidationError{Message: "nil node", Path: path})
			return
		}
		if msg := checkShape(n.kind, n.fields, n.children); msg != "" {
			errs = append(errs, ValidationError{Message: msg, Path: path})
			return
		}
		if msg := checkValues(n); msg != "" {
			errs = append(errs, ValidationError{Message: msg, Path: path})
		}
		for i, child := range n.children {
			if child == nil {
				check(nil, fmt.Sprintf("%s/%d", path, i))
				continue
			}
			childPath := fmt.Sprintf("%s/%d:%s", path, i, child.Label())
			if allowed := allowedAt(n.kind, i); allowed != nil && !slices.Contains(allowed, child.kind) {
				errs = append(errs, ValidationError{
					Message: fmt.Sprintf("%s may not appear as child %d of %s", child.Label(), i, n.Label()),
					Path:    childPath,
				})
			}
			check(child, childPath)
		}
	}
	check(root, root.Label())
	if len(errs) == 0 {
		return nil
	}
	return NewValidationErrors(errs)
}

func allowedAt(parent Kind, i int) []Kind {
	if members, ok := listMembers[parent]; ok {
		return members
	}
	roles := childRoles[parent]
	if i < len(roles) {
		return roles[i]
	}
	return nil
}

func checkValues(n *Node) string {
	for _, f := range n.fields {
		if slices.Contains(boolFields, f.Name) && f.Value.Kind() != BoolValue {
			return fmt.Sprintf("field %s of %s must be a bool", f.Name, n.Label())
		}
	}
	switch n.kind {
	case KindInt, KindFloat, KindBool:
		want := map[Kind]ValueKind{KindInt: IntValue, KindFloat: FloatValue, KindBool: BoolValue}[n.kind]
		if v, _ := n.Field("value"); v.Kind() != want {
			return fmt.Sprintf("value of %s must be %s, got %s", n.Label(), want, v.Kind())
		}
	case KindUnsupported:
		if v, _ := n.Field("description"); v.IsNone() || v.String() == "" {
			return "unsupported node has an empty description"
		}
	}
	return ""
}

// ValidationError describes one schema violation.
type ValidationError struct {
	Message string // description of the violation
	Path    string // location of the node, for example "File/0:Function/1:Block"
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s at %s", e.Message, e.Path)
}

// ValidationErrors wraps multiple validation errors.
type ValidationErrors struct {
	Errors []ValidationError
}

// NewValidationErrors creates a ValidationErrors from a slice of errors.
func NewValidationErrors(errs []ValidationError) *ValidationErrors {
	return &ValidationErrors{Errors: errs}
}

// Error implements the error interface.
func (e *ValidationErrors) Error() string {
	switch len(e.Errors) {
	case 0:
		return "no validation errors"
	case 1:
		return e.Errors[0].Error()
	default:
		var b strings.Builder
		fmt.Fprintf(&b, "%d validation errors:\n", len(e.Errors))
		for _, err := range e.Errors {
			fmt.Fprintf(&b, "  - %s\n", err.Error())
		}
		return b.String()
	}
}

// Unwrap returns the first error for errors.Is/As compatibility.
func (e *ValidationErrors) Unwrap() error {
	if len(e.Errors) > 0 {
		return &e.Errors[0]
	}
	return nil
}
