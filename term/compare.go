package term

import (
	"fmt"
	"strings"
)

// --- Equality --------------------------------------------------------------

// EqualF decides equality of two layers, using eq for the children. Atomic
// layers are compared by the equality capability of their node-kind, sum
// layers by tag and then by their inner layers. Annotated layers are equal if
// both their inner layers and their payloads are equal.
func EqualF[A any](eq func(A, A) bool, f, g Functor[A]) bool {
	switch x := f.(type) {
	case *Node[A]:
		y, ok := g.(*Node[A])
		if !ok || x.Kind() != y.Kind() {
			return false
		}
		return InstancesFor(x.Kind()).Eq.EqualShape(x.Shape(), y.Shape(), func(i int) bool {
			return eq(x.Kids[i], y.Kids[i])
		})
	case *Inj[A]:
		y, ok := g.(*Inj[A])
		return ok && x.Side == y.Side && EqualF(eq, x.F, y.F)
	case *Ann[A]:
		y, ok := g.(*Ann[A])
		return ok && EqualF(eq, x.F, y.F) && x.Type.Equal(x.P, y.P)
	}
	panic(fmt.Sprintf("unknown layer type %T", f))
}

// EqualCxt decides structural equality of two contexts. Holes are compared
// with eqA; a hole never equals a non-hole node.
func EqualCxt[A any](eqA func(A, A) bool, x, y *Cxt[A]) bool {
	if x.hole || y.hole {
		return x.hole && y.hole && eqA(x.val, y.val)
	}
	return EqualF(func(a, b *Cxt[A]) bool {
		return EqualCxt(eqA, a, b)
	}, x.f, y.f)
}

// EqualTerms decides structural equality of two terms.
func EqualTerms(x, y *Term) bool {
	return EqualCxt(noHoles[bool], x, y)
}

// --- Ordering --------------------------------------------------------------

// CompareF compares two layers, using cmp for the children.
//
// Atomic layers of the same node-kind are compared by the order capability
// of the kind. Sum layers are ordered by tag first, Left before Right, and
// then by their inner layers. Annotated layers are ordered by their inner
// layers, payloads breaking ties. Layers of different node-kinds, which only
// occur in ill-tagged comparisons, are ordered by kind name, then by
// constructor position, then by order of declaration of the kinds.
func CompareF[A any](cmp func(A, A) Ordering, f, g Functor[A]) Ordering {
	if rf, rg := layerRank(f), layerRank(g); rf != rg {
		return OrderOf(rf - rg)
	}
	switch x := f.(type) {
	case *Node[A]:
		y := g.(*Node[A])
		if kx, ky := x.Kind(), y.Kind(); kx != ky {
			return CompList(
				func() Ordering { return OrderOf(strings.Compare(kx.Name, ky.Name)) },
				func() Ordering { return OrderOf(x.Con.Ordinal() - y.Con.Ordinal()) },
				func() Ordering { return OrderOf(int(kx.SeqNo()) - int(ky.SeqNo())) },
			)
		}
		return InstancesFor(x.Kind()).Ord.CompareShape(x.Shape(), y.Shape(), func(i int) Ordering {
			return cmp(x.Kids[i], y.Kids[i])
		})
	case *Inj[A]:
		y := g.(*Inj[A])
		if x.Side != y.Side {
			return OrderOf(int(x.Side) - int(y.Side))
		}
		return CompareF(cmp, x.F, y.F)
	case *Ann[A]:
		y := g.(*Ann[A])
		return CompList(
			func() Ordering { return CompareF(cmp, x.F, y.F) },
			func() Ordering { return OrderOf(x.Type.Compare(x.P, y.P)) },
		)
	}
	panic(fmt.Sprintf("unknown layer type %T", f))
}

func layerRank[A any](f Functor[A]) int {
	switch f.(type) {
	case *Node[A]:
		return 0
	case *Inj[A]:
		return 1
	case *Ann[A]:
		return 2
	}
	panic(fmt.Sprintf("unknown layer type %T", f))
}

// Compare is a total order on contexts. Holes are compared with cmpA and
// are ordered before all other nodes.
func Compare[A any](cmpA func(A, A) Ordering, x, y *Cxt[A]) Ordering {
	switch {
	case x.hole && y.hole:
		return cmpA(x.val, y.val)
	case x.hole:
		return Less
	case y.hole:
		return Greater
	}
	return CompareF(func(a, b *Cxt[A]) Ordering {
		return Compare(cmpA, a, b)
	}, x.f, y.f)
}

// CompareTerms is a total order on terms.
func CompareTerms(x, y *Term) Ordering {
	return Compare(noHoles[Ordering], x, y)
}

func noHoles[R any](Void, Void) R {
	panic("hole in closed term")
}

// --- Rendering -------------------------------------------------------------

// ShowF renders a layer, given a rendering function for the children.
// Sum tags are not rendered; annotations are appended as " :&: payload".
func ShowF[A any](show func(A) string, f Functor[A]) string {
	switch x := f.(type) {
	case *Node[A]:
		kids := make([]string, len(x.Kids))
		for i, kid := range x.Kids {
			kids[i] = show(kid)
		}
		return InstancesFor(x.Kind()).Show.ShowShape(x.Shape(), kids)
	case *Inj[A]:
		return ShowF(show, x.F)
	case *Ann[A]:
		return ShowF(show, x.F) + " :&: " + Paren(x.Type.Show(x.P))
	}
	panic(fmt.Sprintf("unknown layer type %T", f))
}

// Show renders a context. Holes are rendered by showA.
func Show[A any](showA func(A) string, c *Cxt[A]) string {
	if c.hole {
		return showA(c.val)
	}
	return ShowF(func(kid *Cxt[A]) string {
		return Show(showA, kid)
	}, c.f)
}

// ShowTerm renders a term.
func ShowTerm(t *Term) string {
	return Show(func(Void) string { panic("hole in closed term") }, t)
}
