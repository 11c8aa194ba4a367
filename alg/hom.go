package alg

import (
	"github.com/npillmayer/compdata/sig"
	"github.com/npillmayer/compdata/term"
)

// Child stands for the i-th child of the layer a homomorphism rewrites.
type Child int

// Hom is a term homomorphism. It maps a single layer to a context, the
// holes of which refer to the children of the layer.
type Hom func(term.Functor[Child]) *term.Cxt[Child]

// HomM is a term homomorphism which may fail.
type HomM func(term.Functor[Child]) (*term.Cxt[Child], error)

// Kid creates a hole referring to the i-th child of the rewritten layer.
func Kid(i int) *term.Cxt[Child] {
	return term.Hole(Child(i))
}

// Rebuild is the identity homomorphism: it returns the layer with its
// children in place.
func Rebuild(f term.Functor[Child]) *term.Cxt[Child] {
	return term.In(term.Fmap(f, term.Hole[Child]))
}

// indexed replaces the children of a layer by their positions.
func indexed[A any](f term.Functor[A]) term.Functor[Child] {
	i := 0
	return term.Fmap(f, func(A) Child {
		c := Child(i)
		i++
		return c
	})
}

// AppCxt flattens a context whose holes are contexts.
func AppCxt[A any](c *term.Cxt[*term.Cxt[A]]) *term.Cxt[A] {
	return term.Bind(c, func(h *term.Cxt[A]) *term.Cxt[A] {
		return h
	})
}

// AppHom applies a homomorphism to a context, bottom-up. Holes are left
// untouched.
func AppHom[A any](h Hom, c *term.Cxt[A]) *term.Cxt[A] {
	if c.IsHole() {
		return c
	}
	kids := make([]*term.Cxt[A], 0, len(c.Children()))
	for _, kid := range c.Children() {
		kids = append(kids, AppHom(h, kid))
	}
	return term.Bind(h(indexed(c.Out())), func(i Child) *term.Cxt[A] {
		return kids[i]
	})
}

// AppHomTerm applies a homomorphism to a term.
func AppHomTerm(h Hom, t *term.Term) *term.Term {
	return AppHom(h, t)
}

// AppHomM applies a homomorphism which may fail. The first error stops the
// rewrite.
func AppHomM[A any](h HomM, c *term.Cxt[A]) (*term.Cxt[A], error) {
	if c.IsHole() {
		return c, nil
	}
	kids := make([]*term.Cxt[A], 0, len(c.Children()))
	for _, kid := range c.Children() {
		k, err := AppHomM(h, kid)
		if err != nil {
			return nil, err
		}
		kids = append(kids, k)
	}
	r, err := h(indexed(c.Out()))
	if err != nil {
		tracer().Debugf("homomorphism failed at %s: %v", term.Con(c.Out()).QualifiedName(), err)
		return nil, err
	}
	return term.Bind(r, func(i Child) *term.Cxt[A] {
		return kids[i]
	}), nil
}

// --- Composition -----------------------------------------------------------

// ComposeAlgHom composes an algebra with a homomorphism: folding with the
// result equals folding with alg after applying h, but traverses the term
// only once.
func ComposeAlgHom[R any](alg Alg[R], h Hom) Alg[R] {
	return func(f term.Functor[R]) R {
		rs := f.Children()
		return CataCxt(alg, func(i Child) R {
			return rs[i]
		}, h(indexed(f)))
	}
}

// ComposeHoms composes two homomorphisms: applying the result equals
// applying h1 first and h2 afterwards.
func ComposeHoms(h2, h1 Hom) Hom {
	return func(f term.Functor[Child]) *term.Cxt[Child] {
		return AppHom(h2, h1(f))
	}
}

// ProductHom lifts a homomorphism F → G to annotated signatures
// F :&: P → G :&: P. Every node a rewrite step creates receives the
// annotation of the rewritten node; children keep their own annotations.
// Layers without annotation are rewritten un-annotated.
func ProductHom(pt *sig.PayloadType, h Hom) Hom {
	return func(f term.Functor[Child]) *term.Cxt[Child] {
		p, ok := term.Payload(f)
		r := h(term.StripLayer(f))
		if !ok {
			return r
		}
		return annotateNew(pt, p, r)
	}
}

func annotateNew(pt *sig.PayloadType, p interface{}, c *term.Cxt[Child]) *term.Cxt[Child] {
	if c.IsHole() {
		return c
	}
	f := term.Fmap(c.Out(), func(kid *term.Cxt[Child]) *term.Cxt[Child] {
		return annotateNew(pt, p, kid)
	})
	return term.In[Child](term.Annotate(pt, p, f))
}

// --- Signature functions ---------------------------------------------------

// SigFun is a signature function: it maps a layer to a layer with the same
// children, e.g. renaming constructors.
type SigFun func(term.Functor[Child]) term.Functor[Child]

// HomFromSigFun turns a signature function into a homomorphism.
func HomFromSigFun(sf SigFun) Hom {
	return func(f term.Functor[Child]) *term.Cxt[Child] {
		return term.In(term.Fmap(sf(f), term.Hole[Child]))
	}
}
