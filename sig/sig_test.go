package sig

import (
	"errors"
	"math"
	"testing"

	"github.com/npillmayer/compdata"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func makeArith(t *testing.T) *Kind {
	b := NewKindBuilder("Arith")
	b.Con("Const").P("n", Int).End()
	b.Con("Pair").C("a").C("b").End()
	k, err := b.Kind()
	if err != nil {
		t.Fatal(err)
	}
	return k
}

func TestKindBuilder(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "compdata.sig")
	defer teardown()
	//
	k := makeArith(t)
	k.Dump()
	if k.Size() != 2 {
		t.Fatalf("expected 2 constructors, have %d", k.Size())
	}
	pair := k.Con("Pair")
	if pair == nil || pair.Ordinal() != 1 || pair.Arity() != 2 || pair.NumPayloads() != 0 {
		t.Errorf("Pair constructor misconstructed: %v", pair)
	}
	if pair.Kind() != k {
		t.Errorf("expected Pair to belong to Arith")
	}
	c := k.Con("Const")
	if c.Ordinal() != 0 || c.Arity() != 0 || c.Payload(0).Type != Int {
		t.Errorf("Const constructor misconstructed: %v", c)
	}
	if pair.Child(1).Name != "b" || pair.Child(1).Slot() != 1 || pair.Child(1).Pos() != 1 {
		t.Errorf("expected field b at slot 1, is %v", pair.Child(1))
	}
	if s := pair.String(); s != "Pair(a, b)" {
		t.Errorf("expected Pair(a, b), have %s", s)
	}
}

func TestMixedFieldSlots(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "compdata.sig")
	defer teardown()
	//
	b := NewKindBuilder("Stmt")
	assign := b.Con("Assign").P("name", String).C("value").P("pos", SpanType).End()
	b.MustKind()
	if assign.Field("value").Pos() != 1 || assign.Field("value").Slot() != 0 {
		t.Errorf("expected value at pos 1, slot 0")
	}
	if assign.Field("pos").Slot() != 1 {
		t.Errorf("expected pos at payload slot 1, is %d", assign.Field("pos").Slot())
	}
}

func TestBuilderErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "compdata.sig")
	defer teardown()
	//
	b := NewKindBuilder("Dup")
	b.Con("A").End()
	b.Con("A").C("x").End()
	if _, err := b.Kind(); err == nil {
		t.Errorf("expected duplicate constructor to be rejected")
	}
	b = NewKindBuilder("DupField")
	b.Con("A").C("x").P("x", Int).End()
	if _, err := b.Kind(); err == nil {
		t.Errorf("expected duplicate field to be rejected")
	}
	b = NewKindBuilder("Empty")
	if _, err := b.Kind(); err == nil {
		t.Errorf("expected kind without constructors to be rejected")
	}
	b = NewKindBuilder("NoType")
	b.Con("A").P("x", nil).End()
	if _, err := b.Kind(); err == nil {
		t.Errorf("expected payload without type to be rejected")
	}
}

func TestPayloadTypes(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "compdata.sig")
	defer teardown()
	//
	if Int.Compare(1, 2) >= 0 || Int.Compare(2, 1) <= 0 || !Int.Equal(5, 5) {
		t.Errorf("int payloads misordered")
	}
	if String.Show("a b") != `"a b"` {
		t.Errorf("expected strings to be quoted, have %s", String.Show("a b"))
	}
	if Bool.Compare(false, true) != -1 {
		t.Errorf("expected false < true")
	}
	s1, s2 := compdata.Span{1, 4}, compdata.Span{1, 7}
	if SpanType.Compare(s1, s2) != -1 {
		t.Errorf("expected %v < %v", s1, s2)
	}
	if !Int.Accepts(3) || Int.Accepts("3") {
		t.Errorf("int payload type accepts wrong values")
	}
	if pt, ok := PayloadByName("int32"); !ok || pt != Rune {
		t.Errorf("expected int32 to resolve to rune payloads")
	}
	nan := math.NaN()
	if Float.Compare(nan, nan) != 0 || Float.Compare(nan, 1.0) != -1 || Float.Compare(2.0, nan) != 1 {
		t.Errorf("expected NaN to be equal to itself and below every other float")
	}
	if Float.Equal(1.0, nan) || Float.Compare(1.0, 2.0) != -1 {
		t.Errorf("float payloads misordered")
	}
	op := Opaque("[]int")
	if op.Compare([]int{1, 2}, []int{1, 2}) != 0 {
		t.Errorf("expected equal opaque payloads to compare equal")
	}
}

func TestRegistry(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "compdata.sig")
	defer teardown()
	//
	reg := NewRegistry()
	k := makeArith(t)
	if err := reg.Register(k); err != nil {
		t.Fatal(err)
	}
	if err := reg.Register(makeArith(t)); !errors.Is(err, ErrDuplicateKind) {
		t.Errorf("expected duplicate registration to fail, have %v", err)
	}
	if found, err := reg.Lookup("Arith"); err != nil || found != k {
		t.Errorf("cannot find Arith in registry")
	}
	if _, err := reg.Lookup("Bool"); !errors.Is(err, ErrUnknownKind) {
		t.Errorf("expected lookup of Bool to fail")
	}
	_, err := reg.Declare("Bool", func(b *KindBuilder) {
		b.Con("True").End()
		b.Con("False").End()
	})
	if err != nil {
		t.Fatal(err)
	}
	kinds := reg.Kinds()
	if len(kinds) != 2 || kinds[0].Name != "Arith" || kinds[1].Name != "Bool" {
		t.Errorf("expected kinds [Arith Bool], have %v", kinds)
	}
}

func TestScopeUpsearch(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "compdata.sig")
	defer teardown()
	//
	tree := &ScopeTree{}
	global := tree.PushNewScope("globals")
	global.DefineTag("Eq Arith")
	local := tree.PushNewScope("local")
	if tag, sc := local.ResolveTag("Eq Arith"); tag == nil || sc != global {
		t.Errorf("expected to find tag in parent scope")
	}
	if tag, _ := local.ResolveTag("Ord Arith"); tag != nil {
		t.Errorf("did not expect to find Ord Arith")
	}
	if tree.PopScope() != local || tree.Current() != global {
		t.Errorf("scope stack inconsistent")
	}
}

func TestSymbolTable(t *testing.T) {
	symtab := NewSymbolTable()
	tag, _ := symtab.DefineTag("new-sym")
	if _, found := symtab.ResolveOrDefineTag(tag.Name()); !found {
		t.Error("cannot find stored tag in table")
	}
	if _, old := symtab.DefineTag("new-sym"); old != tag {
		t.Error("tag should have been replaced")
	}
	if tag, _ := symtab.DefineTag(""); tag != nil {
		t.Error("tags with empty names should not be created")
	}
}
