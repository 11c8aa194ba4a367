package fp

import (
	"context"
	"fmt"

	"github.com/npillmayer/compdata/sig"
	"github.com/npillmayer/compdata/term"
)

// TreeSeq is a type which represents a tree walk as a sequence.
type TreeSeq[A any] struct {
	node TreeNode[A]
	seq  TreeGenerator[A]
}

// A TreeNode represents a node of a tree walk. Its parent node is available
// with a call to Parent().
type TreeNode[A any] struct {
	Node   *term.Cxt[A]
	Path   []int // child indices from the root of the walk
	parent *term.Cxt[A]
}

// Parent returns the parent of a tree node, or nil for the root.
func (n TreeNode[A]) Parent() *term.Cxt[A] {
	return n.parent
}

// Depth returns the distance of a node from the root of the walk.
func (n TreeNode[A]) Depth() int {
	return len(n.Path)
}

func (n TreeNode[A]) String() string {
	if n.Node == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%v@%v", n.Node, n.Path)
}

// TreeGenerator is a generator function type to iterate over trees.
type TreeGenerator[A any] func() TreeSeq[A]

// Direction is the order of a tree walk.
type Direction int

// Flags for tree traversal, either top-down (pre-order) or depth-first
// (post-order, i.e. bottom-up).
const (
	DepthFirstDir Direction = iota
	TopDownDir
)

// Traverse creates a sequence from a context. For DepthFirstDir the
// sequence traverses the tree in depth-first post-order, for TopDownDir
// in pre-order. Children are visited from left to right. Nodes are
// produced lazily; a sequence and its copies share the state of the walk
// and may be consumed only once.
func Traverse[A any](c *term.Cxt[A], dir Direction) TreeSeq[A] {
	if c == nil {
		return TreeSeq[A]{}
	}
	w := &walker[A]{dir: dir}
	w.stack = append(w.stack, frame[A]{node: TreeNode[A]{Node: c}})
	var T TreeGenerator[A]
	T = func() TreeSeq[A] {
		node, ok := w.next()
		if !ok {
			return TreeSeq[A]{}
		}
		return TreeSeq[A]{node: node, seq: T}
	}
	return T()
}

type frame[A any] struct {
	node     TreeNode[A]
	expanded bool
}

type walker[A any] struct {
	dir   Direction
	stack []frame[A]
}

func (w *walker[A]) next() (TreeNode[A], bool) {
	for len(w.stack) > 0 {
		top := w.stack[len(w.stack)-1]
		w.stack = w.stack[:len(w.stack)-1]
		if w.dir == TopDownDir {
			w.pushChildren(top.node)
			return top.node, true
		}
		if top.expanded {
			return top.node, true
		}
		top.expanded = true
		w.stack = append(w.stack, top)
		w.pushChildren(top.node)
	}
	return TreeNode[A]{}, false
}

// pushChildren pushes the children of a node in reverse order, so that the
// leftmost child is on top of the stack.
func (w *walker[A]) pushChildren(n TreeNode[A]) {
	kids := n.Node.Children()
	for i := len(kids) - 1; i >= 0; i-- {
		path := make([]int, len(n.Path), len(n.Path)+1)
		copy(path, n.Path)
		w.stack = append(w.stack, frame[A]{node: TreeNode[A]{
			Node:   kids[i],
			Path:   append(path, i),
			parent: n.Node,
		}})
	}
}

// Break stops a traversing sequence.
func (seq *TreeSeq[A]) Break() {
	seq.seq = nil
}

// Done returns true if a traversing sequence is stopped.
func (seq *TreeSeq[A]) Done() bool {
	return seq.seq == nil
}

// First returns the first node of a tree traversal.
func (seq TreeSeq[A]) First() (TreeNode[A], TreeSeq[A]) {
	return seq.node, seq
}

// Next returns the next node of a tree traversal.
func (seq *TreeSeq[A]) Next() TreeNode[A] {
	if seq.Done() {
		return TreeNode[A]{}
	}
	next := seq.seq()
	seq.node, seq.seq = next.node, next.seq
	return seq.node
}

// List returns all the sub-contexts of a tree walk.
func (seq TreeSeq[A]) List() []*term.Cxt[A] {
	var l []*term.Cxt[A]
	for node, T := seq.First(); !T.Done(); node = T.Next() {
		l = append(l, node.Node)
	}
	return l
}

// Nodes returns all the nodes of a tree walk.
func (seq TreeSeq[A]) Nodes() []TreeNode[A] {
	var l []TreeNode[A]
	for node, T := seq.First(); !T.Done(); node = T.Next() {
		l = append(l, node)
	}
	return l
}

// A NodeFilter filters nodes from a sequence of tree traversal nodes.
type NodeFilter[A any] func(node TreeNode[A]) bool

// IsLeaf is a filter for tree nodes which only accepts nodes without
// children. Holes are leafs.
func IsLeaf[A any]() NodeFilter[A] {
	return func(node TreeNode[A]) bool {
		return len(node.Node.Children()) == 0
	}
}

// IsHole is a filter for tree nodes which only accepts holes.
func IsHole[A any]() NodeFilter[A] {
	return func(node TreeNode[A]) bool {
		return node.Node.IsHole()
	}
}

// OfKind is a filter for tree nodes which only accepts nodes of node-kind k.
func OfKind[A any](k *sig.Kind) NodeFilter[A] {
	return func(node TreeNode[A]) bool {
		con := node.Node.Con()
		return con != nil && con.Kind() == k
	}
}

// OfCon is a filter for tree nodes which only accepts nodes built with
// constructor con.
func OfCon[A any](con *sig.Constructor) NodeFilter[A] {
	return func(node TreeNode[A]) bool {
		return node.Node.Con() == con
	}
}

// Where applies a filter to a tree walk.
func (seq TreeSeq[A]) Where(filt NodeFilter[A]) TreeSeq[A] {
	if seq.Done() {
		return seq
	}
	inner := seq
	var T TreeGenerator[A]
	T = func() TreeSeq[A] {
		node := inner.Next()
		for !inner.Done() && !filt(node) {
			node = inner.Next()
		}
		if inner.Done() {
			return TreeSeq[A]{}
		}
		return TreeSeq[A]{node: node, seq: T}
	}
	if filt(seq.node) {
		return TreeSeq[A]{node: seq.node, seq: T}
	}
	return T()
}

// NodeMapper is a function returning a tree node from an input tree node.
type NodeMapper[A any] func(node TreeNode[A]) TreeNode[A]

// Print prints a node to the tracer and returns the input node.
func Print[A any]() NodeMapper[A] {
	return func(node TreeNode[A]) TreeNode[A] {
		tracer().Debugf("tree node = %s", node)
		return node
	}
}

// Map applies a mapper to all nodes of a tree walk.
func (seq TreeSeq[A]) Map(mapper NodeMapper[A]) TreeSeq[A] {
	if seq.Done() {
		return seq
	}
	inner := seq
	var T TreeGenerator[A]
	T = func() TreeSeq[A] {
		node := inner.Next()
		if inner.Done() {
			return TreeSeq[A]{}
		}
		return TreeSeq[A]{node: mapper(node), seq: T}
	}
	return TreeSeq[A]{node: mapper(seq.node), seq: T}
}

// Range produces the nodes of a walk on a channel. The producing goroutine
// stops when the walk is exhausted or ctx is cancelled.
func (seq TreeSeq[A]) Range(ctx context.Context) <-chan TreeNode[A] {
	channel := make(chan TreeNode[A])
	go func() {
		defer close(channel)
		for node, T := seq.First(); !T.Done(); node = T.Next() {
			select {
			case channel <- node:
			case <-ctx.Done():
				return
			}
		}
	}()
	return channel
}
