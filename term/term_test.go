package term

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/npillmayer/compdata"
	"github.com/npillmayer/compdata/sig"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

var valueKind = func() *sig.Kind {
	b := sig.NewKindBuilder("Value")
	b.Con("Const").P("n", sig.Int).End()
	b.Con("Pair").C("a").C("b").End()
	return b.MustKind()
}()

var opKind = func() *sig.Kind {
	b := sig.NewKindBuilder("Op")
	b.Con("Add").C("x").C("y").End()
	b.Con("Neg").C("x").End()
	return b.MustKind()
}()

var (
	cConst = valueKind.Con("Const")
	cPair  = valueKind.Con("Pair")
	cAdd   = opKind.Con("Add")
	cNeg   = opKind.Con("Neg")
)

func iConst(n int) *Term {
	return MustMakeTerm(valueKind, cConst, n)
}

func iPair(a, b *Term) *Term {
	return MustMakeTerm(valueKind, cPair, a, b)
}

func TestMakeAndShow(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "compdata.term")
	defer teardown()
	//
	p := iPair(iConst(1), iConst(2))
	if s := ShowTerm(p); s != "Pair (Const 1) (Const 2)" {
		t.Errorf("expected Pair (Const 1) (Const 2), have %q", s)
	}
	if p.String() != ShowTerm(p) {
		t.Errorf("String() and ShowTerm differ: %s", p)
	}
	if p.Con() != cPair || len(p.Children()) != 2 {
		t.Errorf("root of pair misconstructed")
	}
	if _, err := MakeTerm(valueKind, cConst, "one"); err == nil {
		t.Errorf("expected payload type error for Const \"one\"")
	}
	if _, err := MakeTerm(valueKind, cPair, iConst(1)); err == nil {
		t.Errorf("expected arity error for Pair with one field")
	}
	if _, err := MakeTerm(valueKind, cAdd, iConst(1), iConst(2)); !errors.Is(err, ErrNotSubsumed) {
		t.Errorf("expected Add not to be injectable into Value, have %v", err)
	}
}

func TestShowStrings(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "compdata.term")
	defer teardown()
	//
	b := sig.NewKindBuilder("Name")
	b.Con("Var").P("id", sig.String).End()
	b.Con("Neg").C("x").End()
	k := b.MustKind()
	v := MustMakeTerm(k, k.Con("Var"), "a b")
	n := MustMakeTerm(k, k.Con("Neg"), MustMakeTerm(k, k.Con("Neg"), v))
	if s := ShowTerm(n); s != `Neg (Neg (Var "a b"))` {
		t.Errorf("unexpected rendering %s", s)
	}
	if Paren("(a) (b)") != "((a) (b))" {
		t.Errorf("expected sequence of parenthesized items to be wrapped")
	}
}

func TestOrderingOfConstructors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "compdata.term")
	defer teardown()
	//
	if o := CompareTerms(iConst(1), iConst(2)); o != Less {
		t.Errorf("expected Const 1 < Const 2, have %s", o)
	}
	if o := CompareTerms(iConst(99), iPair(iConst(0), iConst(0))); o != Less {
		t.Errorf("expected Const to be ordered before Pair, have %s", o)
	}
	x := iPair(iConst(1), iConst(9))
	y := iPair(iConst(2), iConst(0))
	if o := CompareTerms(x, y); o != Less {
		t.Errorf("expected first field to decide, have %s", o)
	}
	if o := CompareTerms(y, x); o != Greater {
		t.Errorf("expected antisymmetry, have %s", o)
	}
	if o := CompareTerms(x, iPair(iConst(1), iConst(9))); o != Equal {
		t.Errorf("expected structurally equal pairs to compare Equal, have %s", o)
	}
}

func sampleTerms() []*Term {
	s := MustSums(valueKind, opKind)
	c := func(n int) *Term { return MustMakeTerm(s, cConst, n) }
	p := func(a, b *Term) *Term { return MustMakeTerm(s, cPair, a, b) }
	add := func(a, b *Term) *Term { return MustMakeTerm(s, cAdd, a, b) }
	neg := func(a *Term) *Term { return MustMakeTerm(s, cNeg, a) }
	return []*Term{
		c(0), c(1), c(2),
		p(c(1), c(2)), p(c(2), c(1)), p(c(1), c(1)),
		add(c(1), c(2)), add(c(1), neg(c(2))), neg(c(0)), neg(neg(c(0))),
		p(add(c(1), c(1)), c(0)), c(1), neg(c(0)),
	}
}

var numKind = func() *sig.Kind {
	b := sig.NewKindBuilder("Num")
	b.Con("Lit").P("x", sig.Float).End()
	b.Con("Two").C("a").C("b").End()
	return b.MustKind()
}()

func numTerms() []*Term {
	lit := func(x float64) *Term { return MustMakeTerm(numKind, numKind.Con("Lit"), x) }
	two := func(a, b *Term) *Term { return MustMakeTerm(numKind, numKind.Con("Two"), a, b) }
	nan := math.NaN()
	return []*Term{
		lit(1), lit(2), lit(nan), lit(math.Inf(-1)), lit(nan),
		two(lit(nan), lit(1)), two(lit(1), lit(nan)), two(lit(nan), lit(nan)),
	}
}

func TestTotalOrderLaws(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "compdata.term")
	defer teardown()
	//
	checkOrderLaws(t, sampleTerms())
	checkOrderLaws(t, numTerms())
	nums := numTerms()
	if EqualTerms(nums[0], nums[2]) || CompareTerms(nums[2], nums[3]) != Less {
		t.Errorf("expected NaN to be distinct from and below all numbers")
	}
	if !EqualTerms(nums[2], nums[4]) {
		t.Errorf("expected NaN literals to be equal")
	}
	if set := NewSet(nums...); set.Size() != len(nums)-1 {
		t.Errorf("expected exactly one duplicate NaN literal to be dropped, have %d terms", set.Size())
	}
}

func checkOrderLaws(t *testing.T, terms []*Term) {
	for _, x := range terms {
		if CompareTerms(x, x) != Equal || !EqualTerms(x, x) {
			t.Errorf("reflexivity violated for %s", x)
		}
		for _, y := range terms {
			o := CompareTerms(x, y)
			if o != CompareTerms(y, x).Reverse() {
				t.Errorf("antisymmetry violated for %s, %s", x, y)
			}
			if (o == Equal) != EqualTerms(x, y) {
				t.Errorf("Equal and Compare disagree for %s, %s", x, y)
			}
			for _, z := range terms {
				if o != Greater && CompareTerms(y, z) != Greater && CompareTerms(x, z) == Greater {
					t.Errorf("transitivity violated for %s <= %s <= %s", x, y, z)
				}
			}
		}
	}
}

func TestSumTagOrdering(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "compdata.term")
	defer teardown()
	//
	s := MustSums(valueKind, opKind)
	c := MustMakeTerm(s, cConst, 1000)
	n := MustMakeTerm(s, cNeg, MustMakeTerm(s, cConst, 0))
	if o := CompareTerms(c, n); o != Less {
		t.Errorf("expected Left-tagged Const < Right-tagged Neg, have %s", o)
	}
	if inj, ok := n.Out().(*Inj[*Term]); !ok || inj.Side != Right {
		t.Errorf("expected Neg to be tagged Right in Value :+: Op")
	}
}

func TestSameNamedKinds(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "compdata.term")
	defer teardown()
	//
	b := sig.NewKindBuilder("Value")
	b.Con("Const").P("n", sig.Int).End()
	b.Con("Pair").C("a").C("b").End()
	twin := b.MustKind()
	x, y := iConst(1), MustMakeTerm(twin, twin.Con("Const"), 1)
	if EqualTerms(x, y) {
		t.Errorf("expected constants of different kinds to differ")
	}
	if o := CompareTerms(x, y); o != Less || CompareTerms(y, x) != Greater {
		t.Errorf("expected earlier declared kind to order first, have %s", o)
	}
	p := MustMakeTerm(twin, twin.Con("Pair"), y, y)
	if o := CompareTerms(p, x); o != Greater {
		t.Errorf("expected constructor position to order same-named kinds, have %s", o)
	}
	checkOrderLaws(t, []*Term{x, y, p, iPair(x, x), iConst(2)})
}

func TestDuplicateKindInSum(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "compdata.term")
	defer teardown()
	//
	if _, err := Sums(valueKind, opKind, valueKind); !errors.Is(err, ErrDuplicateKind) {
		t.Errorf("expected duplicate kind error, have %v", err)
	}
	s := MustSums(valueKind, opKind)
	if !Subsumes(s, opKind) || Subsumes(opKind, s) {
		t.Errorf("subsumption of Op in Value :+: Op wrong")
	}
	if s.String() != "(Value :+: Op)" {
		t.Errorf("unexpected sum rendering %s", s)
	}
}

func TestInjectProjectRoundTrip(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "compdata.term")
	defer teardown()
	//
	s := MustSums(valueKind, opKind)
	p := iPair(iConst(1), iConst(2))
	lifted, err := DeepInject(s, p)
	if err != nil {
		t.Fatal(err)
	}
	if !EqualTerms(p, StripTags(lifted)) {
		t.Errorf("expected lifted term to equal original after stripping tags")
	}
	back, ok := DeepProject(valueKind, lifted)
	if !ok || !EqualTerms(back, p) {
		t.Errorf("expected projection to restore %s, have %v", p, back)
	}
	n, ok := ProjectTerm(valueKind, lifted)
	if !ok || n.Con != cPair {
		t.Errorf("expected top-level projection onto Value to yield Pair")
	}
	if _, ok := ProjectTerm(opKind, lifted); ok {
		t.Errorf("did not expect Pair to project onto Op")
	}
	neg := MustMakeTerm(s, cNeg, lifted)
	if _, ok := DeepProject(valueKind, neg); ok {
		t.Errorf("did not expect Neg to project onto Value")
	}
	if f, ok := ProjectInto(opKind, neg.Out()); !ok || Base(f).Con != cNeg {
		t.Errorf("expected Neg to be re-tagged for Op")
	}
}

func TestAnnotations(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "compdata.term")
	defer teardown()
	//
	p := iPair(iConst(1), iConst(2))
	x, err := AnnotateAll(valueKind, sig.String, "x", p)
	if err != nil {
		t.Fatal(err)
	}
	y, _ := AnnotateAll(valueKind, sig.String, "y", p)
	if a, ok := AnnotationOf(x); !ok || a != "x" {
		t.Errorf("expected annotation x, have %v", a)
	}
	if EqualTerms(x, y) {
		t.Errorf("expected terms with different annotations to differ")
	}
	if CompareTerms(x, y) != Less {
		t.Errorf("expected payload to break the tie between equal shapes")
	}
	if !EqualTerms(StripAnn(x), StripAnn(y)) || !EqualTerms(StripAnn(x), p) {
		t.Errorf("expected stripped terms to be equal")
	}
	if s := ShowTerm(x.Children()[0]); s != `Const 1 :&: "x"` {
		t.Errorf("unexpected rendering of annotated node: %s", s)
	}
	if _, err := Inject[*Term](NewAnnotated(valueKind, sig.String), p.Out()); err == nil {
		t.Errorf("expected un-annotated layer to be rejected by annotated signature")
	}
}

func TestCoverSpans(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "compdata.term")
	defer teardown()
	//
	leaf := func(n int, s compdata.Span) *Term {
		return In[Void](Annotate(sig.SpanType, s, iConst(n).Out()))
	}
	pair := func(a, b *Term, s compdata.Span) *Term {
		n, err := NewNode[*Term](cPair, a, b)
		if err != nil {
			t.Fatal(err)
		}
		return In[Void](Annotate[*Term](sig.SpanType, s, n))
	}
	inner := pair(leaf(2, compdata.Span{}), leaf(3, compdata.Span{8, 12}), compdata.Span{})
	root := CoverSpans(pair(leaf(1, compdata.Span{3, 5}), inner, compdata.Span{}))
	if p, _ := AnnotationOf(root); p != (compdata.Span{3, 12}) {
		t.Errorf("expected root to cover (3…12), have %v", p)
	}
	if p, _ := AnnotationOf(root.Children()[1]); p != (compdata.Span{8, 12}) {
		t.Errorf("expected inner pair to cover (8…12), have %v", p)
	}
	if p, _ := AnnotationOf(root.Children()[1].Children()[0]); p != (compdata.Span{}) {
		t.Errorf("expected leaf without span to stay null, have %v", p)
	}
	fixed := CoverSpans(pair(leaf(1, compdata.Span{3, 5}), inner, compdata.Span{0, 1}))
	if p, _ := AnnotationOf(fixed); p != (compdata.Span{0, 1}) {
		t.Errorf("expected non-null span to be kept, have %v", p)
	}
	if !EqualTerms(StripAnn(root), iPair(iConst(1), iPair(iConst(2), iConst(3)))) {
		t.Errorf("expected shape to be unchanged, have %s", root)
	}
}

func TestHoles(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "compdata.term")
	defer teardown()
	//
	c := MustMake[string](valueKind, cPair, Hole("a"), MustMake[string](valueKind, cPair, Hole("b"),
		MustMake[string](valueKind, cConst, 3)))
	if IsClosed(c) {
		t.Errorf("context with holes reported closed")
	}
	if h := Holes(c); len(h) != 2 || h[0] != "a" || h[1] != "b" {
		t.Errorf("expected holes [a b], have %v", h)
	}
	if s := c.String(); s != "Pair a (Pair b (Const 3))" {
		t.Errorf("unexpected rendering %s", s)
	}
	if _, err := Close(c); err == nil {
		t.Errorf("expected Close to fail on open context")
	}
	filled := Bind(c, func(h string) *Cxt[string] {
		return Open[string](iConst(len(h)))
	})
	closed, err := Close(filled)
	if err != nil {
		t.Fatal(err)
	}
	expected := iPair(iConst(1), iPair(iConst(1), iConst(3)))
	if !EqualTerms(closed, expected) {
		t.Errorf("expected %s, have %s", expected, closed)
	}
	eqS := func(a, b string) bool { return a == b }
	if !EqualCxt(eqS, c, c) {
		t.Errorf("expected context with holes to equal itself")
	}
	if EqualCxt(eqS, c, MustMake[string](valueKind, cPair, Hole("a"), Hole("b"))) {
		t.Errorf("expected hole not to equal a node")
	}
	if Compare(func(a, b string) Ordering {
		return OrderOf(strings.Compare(a, b))
	}, Hole("z"), c) != Less {
		t.Errorf("expected holes to be ordered before nodes")
	}
}

type upperShow struct{}

func (upperShow) ShowShape(x Shape, kids []string) string {
	return strings.ToUpper(x.Con.Name) + "/" + strings.Join(kids, ",")
}

func TestRegisteredInstance(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "compdata.term")
	defer teardown()
	//
	b := sig.NewKindBuilder("Tree")
	b.Con("Leaf").End()
	b.Con("Fork").C("l").C("r").End()
	k := b.MustKind()
	if err := Register(k, Instances{Show: upperShow{}}); err != nil {
		t.Fatal(err)
	}
	leaf := MustMakeTerm(k, k.Con("Leaf"))
	tree := MustMakeTerm(k, k.Con("Fork"), leaf, leaf)
	if s := ShowTerm(tree); s != "FORK/LEAF/,LEAF/" {
		t.Errorf("expected registered show instance to be used, have %s", s)
	}
	if err := Register(k, Instances{Show: Generic}); !errors.Is(err, ErrDuplicateInstance) {
		t.Errorf("expected conflicting instance error, have %v", err)
	}
	if err := Register(k, Instances{Ord: Generic}); err != nil {
		t.Errorf("expected other capability to be registrable, have %v", err)
	}
	if CompareTerms(leaf, tree) != Less {
		t.Errorf("expected Leaf < Fork")
	}
}

func TestSetAndDigest(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "compdata.term")
	defer teardown()
	//
	set := NewSet(sampleTerms()...)
	if set.Size() != len(sampleTerms())-2 {
		t.Errorf("expected duplicates to be dropped, have %d terms", set.Size())
	}
	values := set.Values()
	for i := 1; i < len(values); i++ {
		if CompareTerms(values[i-1], values[i]) != Less {
			t.Errorf("set values not in ascending order at %d", i)
		}
	}
	d1, err := Digest(iPair(iConst(1), iConst(2)))
	if err != nil {
		t.Fatal(err)
	}
	d2, _ := Digest(iPair(iConst(1), iConst(2)))
	d3, _ := Digest(iPair(iConst(2), iConst(1)))
	if d1 != d2 || d1 == d3 {
		t.Errorf("digests do not reflect structure: %s %s %s", d1, d2, d3)
	}
}
