package fp

import (
	"github.com/npillmayer/compdata/term"
	"github.com/pkg/errors"
)

// Subterms returns all sub-contexts of c in pre-order, c included.
func Subterms[A any](c *term.Cxt[A]) []*term.Cxt[A] {
	return Traverse(c, TopDownDir).List()
}

// Transform applies f bottom-up to every node of c. Children are
// transformed before their parent is passed to f. Holes are not passed to f.
func Transform[A any](f func(*term.Cxt[A]) *term.Cxt[A], c *term.Cxt[A]) *term.Cxt[A] {
	if c.IsHole() {
		return c
	}
	return f(term.In(term.Fmap(c.Out(), func(kid *term.Cxt[A]) *term.Cxt[A] {
		return Transform(f, kid)
	})))
}

// Query applies q to every node of c in pre-order and combines the results
// from left to right.
func Query[A, R any](q func(*term.Cxt[A]) R, combine func(R, R) R, c *term.Cxt[A]) R {
	r := q(c)
	for _, kid := range c.Children() {
		r = combine(r, Query(q, combine, kid))
	}
	return r
}

// At returns the sub-context at a path of child indices.
func At[A any](c *term.Cxt[A], path []int) (*term.Cxt[A], bool) {
	for _, i := range path {
		kids := c.Children()
		if i < 0 || i >= len(kids) {
			return nil, false
		}
		c = kids[i]
	}
	return c, true
}

// ReplaceAt returns a copy of c with the sub-context at path replaced by
// repl. Nodes off the path are shared with c.
func ReplaceAt[A any](c *term.Cxt[A], path []int, repl *term.Cxt[A]) (*term.Cxt[A], error) {
	if len(path) == 0 {
		return repl, nil
	}
	kids := c.Children()
	if path[0] < 0 || path[0] >= len(kids) {
		return nil, errors.Errorf("no child %d at node %v", path[0], c.Con())
	}
	kid, err := ReplaceAt(kids[path[0]], path[1:], repl)
	if err != nil {
		return nil, err
	}
	i := 0
	return term.In(term.Fmap(c.Out(), func(k *term.Cxt[A]) *term.Cxt[A] {
		defer func() { i++ }()
		if i == path[0] {
			return kid
		}
		return k
	})), nil
}

// ReplaceWith replaces the node of a walk within the walk's root. It returns
// the new root.
func (n TreeNode[A]) ReplaceWith(root, repl *term.Cxt[A]) (*term.Cxt[A], error) {
	tracer().Debugf("replacing node at %v", n.Path)
	return ReplaceAt(root, n.Path, repl)
}
