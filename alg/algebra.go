package alg

import (
	"fmt"

	"github.com/npillmayer/compdata/sig"
	"github.com/npillmayer/compdata/term"
)

// Alg is an algebra with carrier R.
type Alg[R any] func(term.Functor[R]) R

// AlgM is an algebra which may fail.
type AlgM[R any] func(term.Functor[R]) (R, error)

// Cata folds a term bottom-up with an algebra.
func Cata[R any](alg Alg[R], t *term.Term) R {
	return CataCxt(alg, func(term.Void) R {
		panic("hole in closed term")
	}, t)
}

// CataCxt folds a context bottom-up with an algebra. Holes are collapsed by
// function hole.
func CataCxt[A, R any](alg Alg[R], hole func(A) R, c *term.Cxt[A]) R {
	if a, ok := c.HoleValue(); ok {
		return hole(a)
	}
	return alg(term.Fmap(c.Out(), func(kid *term.Cxt[A]) R {
		return CataCxt(alg, hole, kid)
	}))
}

// CataM folds a term with an algebra which may fail. Children are folded
// from left to right; the first error stops the fold.
func CataM[R any](alg AlgM[R], t *term.Term) (R, error) {
	if t.IsHole() {
		panic("hole in closed term")
	}
	f, err := term.FmapM(t.Out(), func(kid *term.Term) (R, error) {
		return CataM(alg, kid)
	})
	if err != nil {
		var r R
		return r, err
	}
	return alg(f)
}

// --- Algebras by case ------------------------------------------------------

// Cases assembles an algebra from functions per constructor. It is the Go
// rendition of defining an algebra for a sum of node-kinds by defining it
// for each summand. Layers with a constructor missing from the map are
// passed to the default function, if any.
type Cases[R any] struct {
	Con     map[*sig.Constructor]func(*term.Node[R]) R
	Default func(*term.Node[R]) R
}

// Alg returns the algebra for a set of cases. It panics on layers without a
// matching case.
func (cs Cases[R]) Alg() Alg[R] {
	return func(f term.Functor[R]) R {
		n := term.Base(f)
		if c, ok := cs.Con[n.Con]; ok {
			return c(n)
		}
		if cs.Default != nil {
			return cs.Default(n)
		}
		panic(fmt.Sprintf("algebra has no case for %s", n.Con.QualifiedName()))
	}
}

// Size is an algebra counting the nodes of a term.
func Size(f term.Functor[int]) int {
	n := 1
	for _, k := range f.Children() {
		n += k
	}
	return n
}

// Depth is an algebra computing the height of a term. Leaves have depth 1.
func Depth(f term.Functor[int]) int {
	d := 0
	for _, k := range f.Children() {
		if k > d {
			d = k
		}
	}
	return d + 1
}
