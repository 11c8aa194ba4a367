package term

import (
	"fmt"

	"github.com/npillmayer/compdata/sig"
	"github.com/pkg/errors"
)

// Cxt is a context: either a hole carrying a value of type A, or a layer
// whose children are contexts. Contexts are immutable; every node
// exclusively owns its children.
type Cxt[A any] struct {
	hole bool
	val  A
	f    Functor[*Cxt[A]]
}

// Void is the hole type of closed terms. No value of type Void is ever
// constructed by this module, which makes terms hole-free.
type Void interface {
	void()
}

// Term is a closed term, i.e. a context without holes.
type Term = Cxt[Void]

// Hole creates a hole, i.e. a placeholder carrying a value.
func Hole[A any](a A) *Cxt[A] {
	return &Cxt[A]{hole: true, val: a}
}

// In creates a context node from a layer.
func In[A any](f Functor[*Cxt[A]]) *Cxt[A] {
	if f == nil {
		panic("cannot create context node from nil layer")
	}
	return &Cxt[A]{f: f}
}

// IsHole is a predicate: is c a hole?
func (c *Cxt[A]) IsHole() bool {
	return c.hole
}

// HoleValue returns the value of a hole. ok is false if c is not a hole.
func (c *Cxt[A]) HoleValue() (a A, ok bool) {
	if !c.hole {
		return a, false
	}
	return c.val, true
}

// Out returns the top-most layer of c, or nil if c is a hole.
func (c *Cxt[A]) Out() Functor[*Cxt[A]] {
	return c.f
}

// Con returns the constructor of the top-most node, or nil for holes.
func (c *Cxt[A]) Con() *sig.Constructor {
	if c.hole {
		return nil
	}
	return Con(c.f)
}

// Children returns the children of the top-most node; holes have none.
func (c *Cxt[A]) Children() []*Cxt[A] {
	if c.hole {
		return nil
	}
	return c.f.Children()
}

func (c *Cxt[A]) String() string {
	return Show(func(a A) string {
		return fmt.Sprintf("%v", a)
	}, c)
}

// IsClosed is a predicate: does c contain no holes?
func IsClosed[A any](c *Cxt[A]) bool {
	if c.hole {
		return false
	}
	for _, kid := range c.f.Children() {
		if !IsClosed(kid) {
			return false
		}
	}
	return true
}

// Close converts a context without holes into a term.
func Close[A any](c *Cxt[A]) (*Term, error) {
	if c.hole {
		return nil, errors.Errorf("context is not closed: hole %v", c.val)
	}
	f, err := FmapM(c.f, Close[A])
	if err != nil {
		return nil, err
	}
	return In(f), nil
}

// Open converts a term into a context for any hole type.
func Open[A any](t *Term) *Cxt[A] {
	if t.hole {
		panic("hole in closed term")
	}
	return In(Fmap(t.f, Open[A]))
}

// Bind substitutes every hole of c by the context f produces for the hole's
// value. Non-hole nodes are rebuilt with the same layers.
func Bind[A, B any](c *Cxt[A], f func(A) *Cxt[B]) *Cxt[B] {
	if c.hole {
		return f(c.val)
	}
	return In(Fmap(c.f, func(kid *Cxt[A]) *Cxt[B] {
		return Bind(kid, f)
	}))
}

// Holes returns the values of all holes of c, from left to right.
func Holes[A any](c *Cxt[A]) []A {
	var holes []A
	var collect func(*Cxt[A])
	collect = func(c *Cxt[A]) {
		if c.hole {
			holes = append(holes, c.val)
			return
		}
		for _, kid := range c.f.Children() {
			collect(kid)
		}
	}
	collect(c)
	return holes
}

// --- Smart construction ----------------------------------------------------

// Make creates a context node for constructor con, injected into signature s.
// Fields are given in declaration order; child positions take *Cxt[A].
func Make[A any](s Signature, con *sig.Constructor, fields ...interface{}) (*Cxt[A], error) {
	n, err := NewNode[*Cxt[A]](con, fields...)
	if err != nil {
		return nil, err
	}
	f, err := Inject[*Cxt[A]](s, n)
	if err != nil {
		return nil, err
	}
	return In(f), nil
}

// MustMake is like Make, but panics on error.
func MustMake[A any](s Signature, con *sig.Constructor, fields ...interface{}) *Cxt[A] {
	c, err := Make[A](s, con, fields...)
	if err != nil {
		panic(err)
	}
	return c
}

// MakeTerm creates a term node for constructor con, injected into s.
// Child positions take *Term.
func MakeTerm(s Signature, con *sig.Constructor, fields ...interface{}) (*Term, error) {
	return Make[Void](s, con, fields...)
}

// MustMakeTerm is like MakeTerm, but panics on error.
func MustMakeTerm(s Signature, con *sig.Constructor, fields ...interface{}) *Term {
	return MustMake[Void](s, con, fields...)
}
