package term

import (
	"fmt"

	"github.com/npillmayer/compdata"
	"github.com/npillmayer/compdata/sig"
)

// Annotate pairs a layer with a payload p of type pt, i.e. it injects a layer
// of F into F :&: P.
func Annotate[A any](pt *sig.PayloadType, p interface{}, f Functor[A]) *Ann[A] {
	if pt == nil || !pt.Accepts(p) {
		panic(fmt.Sprintf("annotation %v does not match payload type %v", p, pt))
	}
	return &Ann[A]{F: f, P: p, Type: pt}
}

// Payload returns the annotation of the outermost annotated layer of f,
// looking through sum tags.
func Payload[A any](f Functor[A]) (interface{}, bool) {
	for {
		switch x := f.(type) {
		case *Ann[A]:
			return x.P, true
		case *Inj[A]:
			f = x.F
		default:
			return nil, false
		}
	}
}

// StripLayer removes all annotations from a layer, keeping sum tags.
func StripLayer[A any](f Functor[A]) Functor[A] {
	switch x := f.(type) {
	case *Ann[A]:
		return StripLayer(x.F)
	case *Inj[A]:
		return &Inj[A]{Side: x.Side, F: StripLayer(x.F)}
	}
	return f
}

// StripAnn removes all annotations from a context. The result is a context
// over the un-annotated signature.
func StripAnn[A any](c *Cxt[A]) *Cxt[A] {
	if c.hole {
		return c
	}
	return In(StripLayer(Fmap(c.f, StripAnn[A])))
}

// AnnotateAll annotates every node of a context with the same payload p.
// The context is re-tagged for the annotated signature NewAnnotated(s, pt).
func AnnotateAll[A any](s Signature, pt *sig.PayloadType, p interface{}, c *Cxt[A]) (*Cxt[A], error) {
	if c.hole {
		return c, nil
	}
	f, err := FmapM(c.f, func(kid *Cxt[A]) (*Cxt[A], error) {
		return AnnotateAll(s, pt, p, kid)
	})
	if err != nil {
		return nil, err
	}
	if f, err = Inject(s, StripLayer(f)); err != nil {
		return nil, err
	}
	return In[A](Annotate(pt, p, f)), nil
}

// AnnotationOf returns the annotation of the root node of a context.
func AnnotationOf[A any](c *Cxt[A]) (interface{}, bool) {
	if c.hole {
		return nil, false
	}
	return Payload(c.f)
}

// CoverSpans fills in missing source positions. Working bottom-up, every node
// annotated with a null compdata.Span gets the smallest span covering the
// spans of its children. Nodes with a non-null span and nodes annotated with
// payloads of other types are left as they are.
func CoverSpans[A any](c *Cxt[A]) *Cxt[A] {
	if c.hole {
		return c
	}
	return In(coverLayer(Fmap(c.f, CoverSpans[A])))
}

func coverLayer[A any](f Functor[*Cxt[A]]) Functor[*Cxt[A]] {
	switch x := f.(type) {
	case *Inj[*Cxt[A]]:
		return &Inj[*Cxt[A]]{Side: x.Side, F: coverLayer(x.F)}
	case *Ann[*Cxt[A]]:
		span, ok := x.P.(compdata.Span)
		if x.Type != sig.SpanType || !ok || !span.IsNull() {
			return x
		}
		for _, kid := range x.Children() {
			p, _ := AnnotationOf(kid)
			if ks, ok := p.(compdata.Span); ok && !ks.IsNull() {
				if span.IsNull() {
					span = ks
				} else {
					span = span.Extend(ks)
				}
			}
		}
		return &Ann[*Cxt[A]]{F: x.F, P: span, Type: x.Type}
	}
	return f
}
