package term

import (
	"fmt"

	"github.com/npillmayer/compdata/sig"
	"github.com/pkg/errors"
)

// ErrNotSubsumed is returned when a layer cannot be injected into a
// signature, because its node-kind is not part of the signature.
var ErrNotSubsumed = errors.New("node-kind not part of signature")

// --- One level of sums -----------------------------------------------------

// InjectL tags a layer of F as a layer of F :+: G. It always succeeds.
func InjectL[A any](f Functor[A]) *Inj[A] {
	return &Inj[A]{Side: Left, F: f}
}

// InjectR tags a layer of G as a layer of F :+: G. It always succeeds.
func InjectR[A any](f Functor[A]) *Inj[A] {
	return &Inj[A]{Side: Right, F: f}
}

// ProjectLeft un-tags a layer of F :+: G, if it is tagged Left.
func ProjectLeft[A any](f Functor[A]) (Functor[A], bool) {
	if inj, ok := f.(*Inj[A]); ok && inj.Side == Left {
		return inj.F, true
	}
	return nil, false
}

// ProjectRight un-tags a layer of F :+: G, if it is tagged Right.
func ProjectRight[A any](f Functor[A]) (Functor[A], bool) {
	if inj, ok := f.(*Inj[A]); ok && inj.Side == Right {
		return inj.F, true
	}
	return nil, false
}

// --- Injection into and projection from signatures -------------------------

// Inject tags a layer for signature s. The layer may be an atomic layer, or a
// layer already tagged for some other signature; existing sum tags are
// replaced by the path to the layer's node-kind within s. Annotations are
// kept where s is annotated.
//
// Inject returns ErrNotSubsumed if the layer's node-kind is not part of s.
func Inject[A any](s Signature, f Functor[A]) (Functor[A], error) {
	f = stripInj(f)
	switch x := s.(type) {
	case *sig.Kind:
		n, ok := f.(*Node[A])
		if !ok {
			return nil, errors.Errorf("cannot inject %T into node-kind %s", f, x)
		}
		if n.Con.Kind() != x {
			return nil, errors.Wrapf(ErrNotSubsumed, "%s into %s", n.Con.QualifiedName(), x)
		}
		return n, nil
	case *Sum:
		k := Base(f).Con.Kind()
		if Contains(x.L, k) {
			inner, err := Inject(x.L, f)
			if err != nil {
				return nil, err
			}
			return InjectL(inner), nil
		}
		if Contains(x.R, k) {
			inner, err := Inject(x.R, f)
			if err != nil {
				return nil, err
			}
			return InjectR(inner), nil
		}
		return nil, errors.Wrapf(ErrNotSubsumed, "%s into %s", k, s)
	case *Annotated:
		ann, ok := f.(*Ann[A])
		if !ok {
			return nil, errors.Errorf("cannot inject un-annotated layer into %s", x)
		}
		inner, err := Inject(x.F, ann.F)
		if err != nil {
			return nil, err
		}
		return &Ann[A]{F: inner, P: ann.P, Type: ann.Type}, nil
	}
	panic(fmt.Sprintf("unknown signature type %T", s))
}

// stripInj removes all sum tags down to an atomic or an annotated layer.
func stripInj[A any](f Functor[A]) Functor[A] {
	for {
		inj, ok := f.(*Inj[A])
		if !ok {
			return f
		}
		f = inj.F
	}
}

// Project follows the sum tags of a layer to its atomic layer and returns it,
// if it is a layer of node-kind k. Annotations are skipped.
func Project[A any](k *sig.Kind, f Functor[A]) (*Node[A], bool) {
	n := Base(f)
	if n.Con.Kind() != k {
		return nil, false
	}
	return n, true
}

// ProjectInto re-tags a layer for a sub-signature s, if its node-kind is part
// of s.
func ProjectInto[A any](s Signature, f Functor[A]) (Functor[A], bool) {
	if !Contains(s, Base(f).Con.Kind()) {
		return nil, false
	}
	g, err := Inject(s, f)
	if err != nil {
		return nil, false
	}
	return g, true
}

// --- Term level ------------------------------------------------------------

// InjectTerm injects the top-most layer of a context node into signature s.
// The children are left untouched; use DeepInject to re-tag a whole context.
func InjectTerm[A any](s Signature, c *Cxt[A]) (*Cxt[A], error) {
	if c.hole {
		return c, nil
	}
	f, err := Inject(s, c.f)
	if err != nil {
		return nil, err
	}
	return In(f), nil
}

// DeepInject re-tags every layer of a context for signature s. This lifts a
// context over a sub-signature of s to a context over s.
func DeepInject[A any](s Signature, c *Cxt[A]) (*Cxt[A], error) {
	if c.hole {
		return c, nil
	}
	f, err := FmapM(c.f, func(kid *Cxt[A]) (*Cxt[A], error) {
		return DeepInject(s, kid)
	})
	if err != nil {
		return nil, err
	}
	if f, err = Inject(s, f); err != nil {
		return nil, err
	}
	return In(f), nil
}

// ProjectTerm projects the top-most layer of a context node onto node-kind k.
func ProjectTerm[A any](k *sig.Kind, c *Cxt[A]) (*Node[*Cxt[A]], bool) {
	if c.hole {
		return nil, false
	}
	return Project(k, c.f)
}

// DeepProject re-tags every layer of a context for a sub-signature s. It
// fails if any node's kind is not part of s.
func DeepProject[A any](s Signature, c *Cxt[A]) (*Cxt[A], bool) {
	c, err := DeepInject(s, c)
	return c, err == nil
}

// StripTags removes all sum tags from a context, leaving atomic and
// annotated layers.
func StripTags[A any](c *Cxt[A]) *Cxt[A] {
	if c.hole {
		return c
	}
	return In(stripTagsLayer(Fmap(c.f, StripTags[A])))
}

func stripTagsLayer[A any](f Functor[A]) Functor[A] {
	switch x := f.(type) {
	case *Inj[A]:
		return stripTagsLayer(x.F)
	case *Ann[A]:
		return &Ann[A]{F: stripTagsLayer(x.F), P: x.P, Type: x.Type}
	}
	return f
}
