package syntax

import "iter"

// Handler receives traversal events. Enter is called before a node's
// children are visited and Exit after. The root is at depth 0.
type Handler interface {
	Enter(n *Node, depth int)
	Exit(n *Node, depth int)
}

// HandlerFuncs adapts plain functions to the Handler interface. Either
// function may be nil.
type HandlerFuncs struct {
	EnterFunc func(n *Node, depth int)
	ExitFunc  func(n *Node, depth int)
}

// Enter calls h.EnterFunc if it is set.
func (h HandlerFuncs) Enter(n *Node, depth int) {
	if h.EnterFunc != nil {
		h.EnterFunc(n, depth)
	}
}

// Exit calls h.ExitFunc if it is set.
func (h HandlerFuncs) Exit(n *Node, depth int) {
	if h.ExitFunc != nil {
		h.ExitFunc(n, depth)
	}
}

// Walk traverses the tree rooted at root in depth-first preorder, calling
// h.Enter for each node and h.Exit once all of its children are done.
func Walk(root *Node, h Handler) {
	walk(root, h, 0)
}

func walk(n *Node, h Handler, depth int) {
	h.Enter(n, depth)
	for _, child := range n.children {
		walk(child, h, depth+1)
	}
	h.Exit(n, depth)
}

// Count returns the number of nodes in the tree rooted at root.
func Count(root *Node) int {
	count := 0
	Walk(root, HandlerFuncs{EnterFunc: func(*Node, int) { count++ }})
	return count
}

// Preorder returns an iterator over the nodes of the tree rooted at root in
// depth-first preorder, paired with their depth.
func Preorder(root *Node) iter.Seq2[int, *Node] {
	return func(yield func(int, *Node) bool) {
		var visit func(n *Node, depth int) bool
		visit = func(n *Node, depth int) bool {
			if !yield(depth, n) {
				return false
			}
			for _, child := range n.children {
				if !visit(child, depth+1) {
					return false
				}
			}
			return true
		}
		visit(root, 0)
	}
}
