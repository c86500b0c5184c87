package ast

import "iter"

// Visitor defines the interface for AST traversal. If Visit returns nil,
// children of the node are not visited. Otherwise, the returned Visitor
// is used to visit children.
type Visitor interface {
	Visit(node Node) (w Visitor)
}

// Walk traverses an AST in depth-first order. It starts by calling
// v.Visit(node); if the returned visitor w is not nil, Walk is invoked
// recursively with visitor w for each of the non-nil children of node.
func Walk(v Visitor, node Node) {
	if v = v.Visit(node); v == nil {
		return
	}
	for _, child := range Children(node) {
		Walk(v, child)
	}
}

// Inspect traverses an AST in depth-first order. It calls f(node) for each
// node; if f returns true, Inspect invokes f recursively for each of the
// non-nil children of node.
func Inspect(node Node, f func(Node) bool) {
	Walk(inspector(f), node)
}

type inspector func(Node) bool

func (f inspector) Visit(node Node) Visitor {
	if f(node) {
		return f
	}
	return nil
}

// Preorder returns an iterator over all the nodes of the AST rooted at node
// in depth-first preorder.
func Preorder(root Node) iter.Seq[Node] {
	return func(yield func(Node) bool) {
		var visit func(Node) bool
		visit = func(n Node) bool {
			if !yield(n) {
				return false
			}
			for _, child := range Children(n) {
				if !visit(child) {
					return false
				}
			}
			return true
		}
		visit(root)
	}
}

// Children returns the non-nil direct children of node in source order.
func Children(node Node) []Node {
	var out []Node
	add := func(nodes ...Node) {
		for _, n := range nodes {
			if !isNil(n) {
				out = append(out, n)
			}
		}
	}

	switch n := node.(type) {
	case *File:
		for _, item := range n.Items {
			add(item)
		}

	// Items
	case *Fn:
		add(n.Name)
		for _, p := range n.Params {
			add(p)
		}
		add(n.Return, n.Body)
	case *TypedParam:
		add(n.Pattern, n.Type)
	case *SelfParam:
		add(n.Type)
	case *Struct:
		add(n.Name)
		for _, f := range n.Fields {
			add(f)
		}
	case *StructField:
		add(n.Name, n.Type)
	case *Enum:
		add(n.Name)
		for _, v := range n.Variants {
			add(v)
		}
	case *Variant:
		add(n.Name)
		for _, f := range n.Fields {
			add(f)
		}
		add(n.Discriminant)

	// Statements
	case *Let:
		add(n.Pattern, n.Type, n.Value, n.Else)
	case *ExprStmt:
		add(n.X)
	case *ItemStmt:
		add(n.Item)

	// Expressions
	case *Binary:
		add(n.X, n.Y)
	case *Unary:
		add(n.X)
	case *Assign:
		add(n.X, n.Y)
	case *Call:
		add(n.Fun)
		for _, a := range n.Args {
			add(a)
		}
	case *MethodCall:
		add(n.X, n.Name)
		for _, a := range n.Args {
			add(a)
		}
	case *FieldExpr:
		add(n.X, n.Name)
	case *IndexExpr:
		add(n.X, n.Index)
	case *ParenExpr:
		add(n.X)
	case *TupleExpr:
		for _, e := range n.Elems {
			add(e)
		}
	case *ArrayExpr:
		for _, e := range n.Elems {
			add(e)
		}
	case *ArrayRepeat:
		add(n.Elem, n.Len)
	case *RangeExpr:
		add(n.Low, n.High)
	case *CastExpr:
		add(n.X, n.Type)
	case *Block:
		for _, s := range n.Stmts {
			add(s)
		}
	case *IfExpr:
		add(n.Cond, n.Then, n.Else)
	case *LetCond:
		add(n.Pattern, n.Value)
	case *WhileExpr:
		add(n.Cond, n.Body)
	case *LoopExpr:
		add(n.Body)
	case *ForExpr:
		add(n.Pattern, n.Iter, n.Body)
	case *ReturnExpr:
		add(n.Value)
	case *BreakExpr:
		add(n.Value)
	case *MacroCall:
		add(n.Path)
	case *ClosureExpr:
		for _, p := range n.Params {
			add(p)
		}
		add(n.Return, n.Body)
	case *ClosureParam:
		add(n.Pattern, n.Type)
	case *MatchExpr:
		add(n.X)
		for _, a := range n.Arms {
			add(a)
		}
	case *MatchArm:
		add(n.Pattern, n.Guard, n.Body)
	case *StructLit:
		add(n.Path)
		for _, f := range n.Fields {
			add(f)
		}
		add(n.Base)
	case *FieldInit:
		add(n.Name, n.Value)
	case *TryExpr:
		add(n.X)

	// Types
	case *PathType:
		for _, a := range n.Args {
			add(a)
		}
	case *RefType:
		add(n.Elem)
	case *TupleType:
		for _, e := range n.Elems {
			add(e)
		}
	case *ArrayType:
		add(n.Elem, n.Len)
	case *SliceType:
		add(n.Elem)
	}
	return out
}

// isNil reports whether n is nil or an interface holding a nil pointer.
func isNil(n Node) bool {
	switch v := n.(type) {
	case nil:
		return true
	case *Ident:
		return v == nil
	case *Pattern:
		return v == nil
	case *Block:
		return v == nil
	case *Path:
		return v == nil
	}
	return false
}
