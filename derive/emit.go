package derive

import (
	"bytes"
	"fmt"
	"go/token"
	"path"
	"sort"
	"strings"

	"github.com/iancoleman/strcase"
	"github.com/npillmayer/compdata/sig"
)

// emitter writes generated Go source. Output is not formatted; Generate
// passes it through imports.Process.
type emitter struct {
	bytes.Buffer
	pkg       string
	instTypes map[*sig.Kind]bool
}

func newEmitter(pkg string) *emitter {
	return &emitter{pkg: pkg, instTypes: make(map[*sig.Kind]bool)}
}

func (e *emitter) p(format string, args ...interface{}) {
	fmt.Fprintf(&e.Buffer, format, args...)
	e.WriteByte('\n')
}

// --- Naming ----------------------------------------------------------------

func kindVar(k *sig.Kind) string {
	return strcase.ToCamel(k.Name) + "Kind"
}

func conVar(c *sig.Constructor) string {
	return strcase.ToCamel(c.Kind().Name) + strcase.ToCamel(c.Name)
}

func instType(k *sig.Kind) string {
	return strcase.ToLowerCamel(k.Name) + "Instances"
}

var reservedParams = map[string]bool{
	"s": true, "c": true, "node": true, "found": true, "ok": true, "fn": true,
	"sig": true, "term": true, "compdata": true, "A": true, "B": true,
}

// paramName derives a Go parameter name from a field name.
func paramName(f *sig.Field) string {
	name := strcase.ToLowerCamel(f.Name)
	if !token.IsIdentifier(name) || name == "_" {
		name = fmt.Sprintf("f%d", f.Pos())
	}
	if token.IsKeyword(name) || reservedParams[name] {
		name += "_"
	}
	return name
}

var builtinExprs = map[*sig.PayloadType]string{
	sig.Int:      "sig.Int",
	sig.Int64:    "sig.Int64",
	sig.Uint64:   "sig.Uint64",
	sig.Float:    "sig.Float",
	sig.Rune:     "sig.Rune",
	sig.String:   "sig.String",
	sig.Bool:     "sig.Bool",
	sig.SpanType: "sig.SpanType",
}

// payloadExpr is a Go expression for a payload type. Payload types other
// than the pre-defined ones are re-created as opaque types.
func payloadExpr(pt *sig.PayloadType) string {
	if expr, ok := builtinExprs[pt]; ok {
		return expr
	}
	return fmt.Sprintf("sig.Opaque(%q)", pt.Name)
}

func usesSpan(k *sig.Kind) bool {
	for _, c := range k.Constructors() {
		for i := 0; i < c.NumPayloads(); i++ {
			if c.Payload(i).Type == sig.SpanType {
				return true
			}
		}
	}
	return false
}

// --- Declarations ----------------------------------------------------------

func (e *emitter) header(imps map[string]string) {
	e.p("// Code generated by cdtgen. DO NOT EDIT.")
	e.p("")
	e.p("package %s", e.pkg)
	e.p("")
	names := make([]string, 0, len(imps))
	for name := range imps {
		names = append(names, name)
	}
	sort.Strings(names)
	e.p("import (")
	for _, name := range names {
		if path.Base(imps[name]) == name {
			e.p("\t%q", imps[name])
		} else {
			e.p("\t%s %q", name, imps[name])
		}
	}
	e.p(")")
}

func (e *emitter) kind(k *sig.Kind) {
	e.p("")
	e.p("// %s is node-kind %s.", kindVar(k), k.Name)
	e.p("var %s = sig.Global.MustRegister(func() *sig.Kind {", kindVar(k))
	e.p("b := sig.NewKindBuilder(%q)", k.Name)
	for _, c := range k.Constructors() {
		var b strings.Builder
		fmt.Fprintf(&b, "b.Con(%q)", c.Name)
		for _, f := range c.Fields {
			switch {
			case f.IsChild() && f.Index != "":
				fmt.Fprintf(&b, ".CI(%q, %q)", f.Name, f.Index)
			case f.IsChild():
				fmt.Fprintf(&b, ".C(%q)", f.Name)
			default:
				fmt.Fprintf(&b, ".P(%q, %s)", f.Name, payloadExpr(f.Type))
			}
		}
		if c.Result() != "" {
			fmt.Fprintf(&b, ".Yields(%q)", c.Result())
		}
		b.WriteString(".End()")
		e.p("%s", b.String())
	}
	e.p("return b.MustKind()")
	e.p("}())")
	e.p("")
	e.p("// Constructors of node-kind %s.", k.Name)
	e.p("var (")
	for _, c := range k.Constructors() {
		e.p("%s = %s.Con(%q)", conVar(c), kindVar(k), c.Name)
	}
	e.p(")")
}

func (e *emitter) instanceType(k *sig.Kind) {
	if e.instTypes[k] {
		return
	}
	e.instTypes[k] = true
	e.p("")
	e.p("// %s implements the generic capabilities derived for node-kind %s.", instType(k), k.Name)
	e.p("type %s struct{}", instType(k))
}

func (e *emitter) register(k *sig.Kind, caps []Cap) {
	e.p("")
	e.p("func init() {")
	e.p("term.MustRegister(%s, term.Instances{", kindVar(k))
	for _, c := range caps {
		switch c {
		case Eq:
			e.p("Eq: %s{},", instType(k))
		case Ord:
			e.p("Ord: %s{},", instType(k))
		case Show:
			e.p("Show: %s{},", instType(k))
		}
	}
	e.p("})")
	e.p("}")
}

func payloadAccess(c *sig.Constructor, f *sig.Field, v string) string {
	return fmt.Sprintf("%s.Payload(%d).Type", conVar(c), f.Slot()) + v
}

func (e *emitter) unknownCon(k *sig.Kind) {
	e.p("panic(%q)", "constructor not of node-kind "+k.Name)
}

// --- Equality --------------------------------------------------------------

func (e *emitter) eq(k *sig.Kind) {
	e.instanceType(k)
	e.p("")
	e.p("// EqualShape implements term.EqualCapability for node-kind %s.", k.Name)
	e.p("func (%s) EqualShape(x, y term.Shape, kid func(int) bool) bool {", instType(k))
	e.p("if x.Con != y.Con {")
	e.p("return false")
	e.p("}")
	e.p("switch x.Con {")
	for _, c := range k.Constructors() {
		e.p("case %s:", conVar(c))
		var conj []string
		for _, f := range c.Fields {
			if f.IsChild() {
				conj = append(conj, fmt.Sprintf("kid(%d)", f.Slot()))
			} else {
				conj = append(conj, payloadAccess(c, f,
					fmt.Sprintf(".Equal(x.Args[%d], y.Args[%d])", f.Slot(), f.Slot())))
			}
		}
		if len(conj) == 0 {
			e.p("return true")
		} else {
			e.p("return %s", strings.Join(conj, " && "))
		}
	}
	e.p("}")
	e.unknownCon(k)
	e.p("}")
}

// --- Ordering --------------------------------------------------------------

// ord emits one clause per ordered pair of constructors.
func (e *emitter) ord(k *sig.Kind) {
	e.instanceType(k)
	e.p("")
	e.p("// CompareShape implements term.OrderCapability for node-kind %s.", k.Name)
	e.p("func (%s) CompareShape(x, y term.Shape, kid func(int) term.Ordering) term.Ordering {", instType(k))
	e.p("switch {")
	for _, cx := range k.Constructors() {
		for _, cy := range k.Constructors() {
			e.p("case x.Con == %s && y.Con == %s:", conVar(cx), conVar(cy))
			switch {
			case cx.Ordinal() < cy.Ordinal():
				e.p("return term.Less")
			case cx.Ordinal() > cy.Ordinal():
				e.p("return term.Greater")
			case len(cx.Fields) == 0:
				e.p("return term.Equal")
			default:
				e.p("return term.CompList(")
				for _, f := range cx.Fields {
					if f.IsChild() {
						e.p("func() term.Ordering { return kid(%d) },", f.Slot())
					} else {
						e.p("func() term.Ordering { return term.OrderOf(%s) },", payloadAccess(cx, f,
							fmt.Sprintf(".Compare(x.Args[%d], y.Args[%d])", f.Slot(), f.Slot())))
					}
				}
				e.p(")")
			}
		}
	}
	e.p("}")
	e.unknownCon(k)
	e.p("}")
}

// --- Show ------------------------------------------------------------------

func (e *emitter) show(k *sig.Kind) {
	e.instanceType(k)
	e.p("")
	e.p("// ShowShape implements term.ShowCapability for node-kind %s.", k.Name)
	e.p("func (%s) ShowShape(x term.Shape, kids []string) string {", instType(k))
	e.p("switch x.Con {")
	for _, c := range k.Constructors() {
		e.p("case %s:", conVar(c))
		parts := []string{fmt.Sprintf("%q", c.Name)}
		for _, f := range c.Fields {
			if f.IsChild() {
				parts = append(parts, fmt.Sprintf("term.Paren(kids[%d])", f.Slot()))
			} else {
				parts = append(parts, fmt.Sprintf("term.Paren(%s)", payloadAccess(c, f,
					fmt.Sprintf(".Show(x.Args[%d])", f.Slot()))))
			}
		}
		e.p("return %s", strings.Join(parts, ` + " " + `))
	}
	e.p("}")
	e.unknownCon(k)
	e.p("}")
}

// --- Functor ---------------------------------------------------------------

func (e *emitter) functor(k *sig.Kind) {
	name := "Map" + strcase.ToCamel(k.Name)
	e.p("")
	e.p("// %s maps fn over the child positions of a layer of node-kind %s.", name, k.Name)
	e.p("func %s[A, B any](node *term.Node[A], fn func(A) B) *term.Node[B] {", name)
	e.p("switch node.Con {")
	for _, c := range k.Constructors() {
		e.p("case %s:", conVar(c))
		kids := make([]string, c.Arity())
		for i := range kids {
			kids[i] = fmt.Sprintf("fn(node.Kids[%d])", i)
		}
		e.p("return &term.Node[B]{Con: node.Con, Args: node.Args, Kids: []B{%s}}", strings.Join(kids, ", "))
	}
	e.p("}")
	e.unknownCon(k)
	e.p("}")
}

// --- Smart constructors ----------------------------------------------------

func (e *emitter) smartCons(k *sig.Kind) {
	for _, c := range k.Constructors() {
		params := make([]string, len(c.Fields))
		args := make([]string, len(c.Fields))
		results := make([]string, 0, len(c.Fields)+1)
		values := make([]string, 0, len(c.Fields)+1)
		for i, f := range c.Fields {
			pname := paramName(f)
			args[i] = pname
			if f.IsChild() {
				params[i] = pname + " *term.Cxt[A]"
				values = append(values, fmt.Sprintf("node.Kids[%d]", f.Slot()))
			} else {
				params[i] = pname + " " + f.Type.Name
				values = append(values, fmt.Sprintf("node.Args[%d].(%s)", f.Slot(), f.Type.Name))
			}
			results = append(results, params[i])
		}
		results = append(results, "ok bool")
		values = append(values, "true")
		e.p("")
		e.p("// I%s creates a node %s of node-kind %s, injected into signature s.", c.Name, c.Name, k.Name)
		e.p("func I%s[A any](%s) *term.Cxt[A] {", c.Name, strings.Join(append([]string{"s term.Signature"}, params...), ", "))
		e.p("return term.MustMake[A](%s)", strings.Join(append([]string{"s", conVar(c)}, args...), ", "))
		e.p("}")
		e.p("")
		e.p("// Match%s projects a context node onto constructor %s of node-kind %s.", c.Name, c.Name, k.Name)
		e.p("func Match%s[A any](c *term.Cxt[A]) (%s) {", c.Name, strings.Join(results, ", "))
		e.p("node, found := term.ProjectTerm(%s, c)", kindVar(k))
		e.p("if !found || node.Con != %s {", conVar(c))
		e.p("return")
		e.p("}")
		e.p("return %s", strings.Join(values, ", "))
		e.p("}")
	}
}
