package derive

import (
	"errors"
	"go/parser"
	"go/token"
	"os"
	"strings"
	"testing"

	"github.com/npillmayer/compdata/sig"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/require"
)

const declSource = `package arith

import (
	"time"

	"github.com/npillmayer/compdata"
)

type Temperature float64

//compdata:kind
type Arith struct {
	Const struct{ N int }
	Pair  struct{ A, B compdata.Child }
	Label struct {
		Name string
		Pos  compdata.Span
		Body compdata.Child
	}
}

// Expr is a typed expression language.
//
//compdata:kind
type Expr struct {
	IConst struct{ N int }                                  ` + "`cdt:\"yields=Int\"`" + `
	BConst struct{ B bool }                                 ` + "`cdt:\"yields=Bool\"`" + `
	If     struct {
		C    compdata.Child ` + "`cdt:\"index=Bool\"`" + `
		T, E compdata.Child ` + "`cdt:\"index=Int\"`" + `
	} ` + "`cdt:\"yields=Int\"`" + `
	Wait   struct{ D time.Duration; T Temperature }         ` + "`cdt:\"yields=Int\"`" + `
}

type NotAKind struct {
	X int
}
`

func loadTestDecls(t *testing.T) (*Decls, *sig.Registry) {
	decls, err := LoadDecls("arith.go", declSource)
	require.NoError(t, err)
	reg := sig.NewRegistry()
	require.NoError(t, decls.Register(reg))
	return decls, reg
}

func TestLoadDecls(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "compdata.derive")
	defer teardown()
	//
	decls, reg := loadTestDecls(t)
	require.Equal(t, "arith", decls.Package)
	require.Len(t, decls.Kinds, 2)
	require.Equal(t, "time", decls.Imports["time"])
	arith, err := reg.Lookup("Arith")
	require.NoError(t, err)
	require.Equal(t, 3, arith.Size())
	pair := arith.Con("Pair")
	require.Equal(t, 2, pair.Arity())
	require.Equal(t, "a", pair.Child(0).Name)
	label := arith.Con("Label")
	require.Equal(t, sig.String, label.Field("name").Type)
	require.Equal(t, sig.SpanType, label.Field("pos").Type)
	require.True(t, label.Field("body").IsChild())
	expr, err := reg.Lookup("Expr")
	require.NoError(t, err)
	require.True(t, expr.IsIndexed())
	cond := expr.Con("If")
	require.Equal(t, "Int", cond.Result())
	require.Equal(t, "Bool", cond.Child(0).Index)
	require.Equal(t, "Int", cond.Child(2).Index)
	require.Equal(t, "time.Duration", expr.Con("Wait").Payload(0).Type.Name)
	require.Equal(t, "Temperature", expr.Con("Wait").Payload(1).Type.Name)
	_, err = reg.Lookup("NotAKind")
	require.ErrorIs(t, err, sig.ErrUnknownKind)
}

func TestLoadDeclErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "compdata.derive")
	defer teardown()
	//
	_, err := LoadDecls("bad.go", "package bad\n//compdata:kind\ntype K int\n")
	require.Error(t, err)
	_, err = LoadDecls("bad.go", "package bad\n//compdata:kind\ntype K struct{ A int }\n")
	require.Error(t, err, "constructor must be a struct")
	_, err = LoadDecls("bad.go", "package bad\n//compdata:kind\ntype K struct{}\n")
	require.Error(t, err, "kind without constructors")
	_, err = LoadDecls("bad.go", "package bad\n\nfunc {")
	require.Error(t, err)
}

func TestParseCaps(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "compdata.derive")
	defer teardown()
	//
	caps, err := ParseCaps("eq, Ord,show,eq")
	require.NoError(t, err)
	require.Equal(t, []Cap{Eq, Ord, Show}, caps)
	caps, err = ParseCaps("all")
	require.NoError(t, err)
	require.Len(t, caps, 5)
	_, err = ParseCaps("eq,hash")
	require.Error(t, err)
	_, err = ParseCaps("")
	require.Error(t, err)
}

func TestDeriveErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "compdata.derive")
	defer teardown()
	//
	_, reg := loadTestDecls(t)
	d := NewDeriver("arith", reg)
	err := d.Derive("Nope", Eq)
	require.ErrorIs(t, err, sig.ErrUnknownKind)
	require.Contains(t, err.Error(), "Nope")
	require.NoError(t, d.Derive("Arith", Eq, Show))
	err = d.Derive("Arith", Ord, Eq)
	require.ErrorIs(t, err, ErrConflictingInstance)
	require.Equal(t, []Cap{Eq, Show}, d.Derived("Arith"), "failed request must not be recorded")
	d.PushScope("nested")
	err = d.Derive("Arith", Show)
	require.ErrorIs(t, err, ErrConflictingInstance, "enclosing scope has Show for Arith")
	require.NoError(t, d.Derive("Arith", Ord))
	require.NoError(t, d.PopScope())
	require.Error(t, d.PopScope())
	err = d.Derive("Arith", Ord)
	require.ErrorIs(t, err, ErrConflictingInstance, "Ord for Arith derived in a closed scope")
	d.PushScope("sibling")
	require.ErrorIs(t, d.Derive("Arith", Ord), ErrConflictingInstance)
	require.NoError(t, d.PopScope())
	require.Equal(t, []Cap{Eq, Ord, Show}, d.Derived("Arith"))
	src, err := d.Generate()
	require.NoError(t, err)
	require.Equal(t, 1, strings.Count(string(src), "func (arithInstances) CompareShape("))
	err = d.Derive("Expr", Eq, Eq)
	require.ErrorIs(t, err, ErrConflictingInstance)
	require.Nil(t, d.Derived("Expr"))
	d.Dump()
}

func TestSmartConsClash(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "compdata.derive")
	defer teardown()
	//
	reg := sig.NewRegistry()
	_, err := reg.Declare("A", func(b *sig.KindBuilder) { b.Con("Leaf").End() })
	require.NoError(t, err)
	_, err = reg.Declare("B", func(b *sig.KindBuilder) { b.Con("Leaf").End() })
	require.NoError(t, err)
	d := NewDeriver("clash", reg)
	require.NoError(t, d.Derive("A", SmartCons))
	require.Error(t, d.Derive("B", SmartCons))
	require.NoError(t, d.Derive("B", Eq))
}

func TestGenerate(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "compdata.derive")
	defer teardown()
	//
	decls, reg := loadTestDecls(t)
	d := NewDeriver(decls.Package, reg)
	d.Imports = decls.Imports
	require.NoError(t, d.Derive("Arith", AllCaps...))
	require.NoError(t, d.Derive("Expr", Eq, Ord, Show, SmartCons))
	src, err := d.Generate()
	require.NoError(t, err)
	gen := string(src)
	_, err = parser.ParseFile(token.NewFileSet(), "arith_cdt.go", src, parser.AllErrors)
	require.NoError(t, err, "generated source:\n%s", gen)
	require.True(t, strings.HasPrefix(gen, "// Code generated by cdtgen. DO NOT EDIT."))
	// N² ordering clauses: 3×3 for Arith, 4×4 for Expr
	require.Equal(t, 9+16, strings.Count(gen, "case x.Con == "))
	require.Equal(t, 3+4, strings.Count(gen, "return term.CompList("))
	require.Contains(t, gen, `b.Con("If").CI("c", "Bool").CI("t", "Int").CI("e", "Int").Yields("Int").End()`)
	require.Contains(t, gen, `b.Con("Wait").P("d", sig.Opaque("time.Duration")).P("t", sig.Opaque("Temperature")).Yields("Int").End()`)
	require.Contains(t, gen, "func IConst[A any](s term.Signature, n int) *term.Cxt[A] {")
	require.Contains(t, gen, "func MatchPair[A any](c *term.Cxt[A]) (a *term.Cxt[A], b *term.Cxt[A], ok bool) {")
	require.Contains(t, gen, "func MapArith[A, B any](node *term.Node[A], fn func(A) B) *term.Node[B] {")
	require.Contains(t, gen, `"github.com/npillmayer/compdata"`)
	require.Contains(t, gen, `"time"`)
	require.Contains(t, gen, "func IWait[A any](s term.Signature, d time.Duration, t Temperature) *term.Cxt[A] {")
	require.Contains(t, gen, "func MatchIf[A any](c *term.Cxt[A]) (c_ *term.Cxt[A], t *term.Cxt[A], e *term.Cxt[A], ok bool) {")
	require.Equal(t, 2, strings.Count(gen, "term.MustRegister("))
	require.False(t, strings.Contains(gen, "func MapExpr"), "Functor not derived for Expr")
}

func TestGenerateNothing(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "compdata.derive")
	defer teardown()
	//
	d := NewDeriver("empty", sig.NewRegistry())
	_, err := d.Generate()
	require.Error(t, err)
	require.False(t, errors.Is(err, ErrConflictingInstance))
}

func TestFixtureUpToDate(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "compdata.derive")
	defer teardown()
	//
	decls, err := LoadDecls("internal/fixture/arith.go", nil)
	require.NoError(t, err)
	reg := sig.NewRegistry()
	require.NoError(t, decls.Register(reg))
	d := NewDeriver(decls.Package, reg)
	d.Imports = decls.Imports
	require.NoError(t, d.Derive("Arith", AllCaps...))
	src, err := d.Generate()
	require.NoError(t, err)
	checkedIn, err := os.ReadFile("internal/fixture/arith_cdt.go")
	require.NoError(t, err)
	require.Equal(t, strings.Fields(string(checkedIn)), strings.Fields(string(src)),
		"internal/fixture/arith_cdt.go is out of date, re-run go generate")
}
