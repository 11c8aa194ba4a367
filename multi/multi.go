package multi

import (
	"reflect"

	"github.com/npillmayer/compdata/alg"
	"github.com/npillmayer/compdata/sig"
	"github.com/npillmayer/compdata/term"
	"github.com/pkg/errors"
)

// Index is the name of an object-level index.
type Index string

// ErrIllIndexed is returned for compositions violating declared indices.
var ErrIllIndexed = errors.New("ill-indexed term")

// IndexOf returns the index named by Go type I.
func IndexOf[I any]() Index {
	return Index(reflect.TypeOf((*I)(nil)).Elem().Name())
}

// IndexOfTerm returns the index of the root of a term, or "" for terms of
// un-indexed node-kinds.
func IndexOfTerm(t *term.Term) Index {
	return Index(t.Con().Result())
}

// Indexed is implemented by indexed terms of any index.
type Indexed interface {
	Unwrap() *term.Term
	Index() Index
}

// Term is a closed term with root index I.
type Term[I any] struct {
	t *term.Term
}

// Unwrap returns the underlying term.
func (t Term[I]) Unwrap() *term.Term {
	return t.t
}

// Index returns I's index name.
func (t Term[I]) Index() Index {
	return IndexOf[I]()
}

func (t Term[I]) String() string {
	return term.ShowTerm(t.t)
}

// Cast checks that a term is well-indexed and has root index I.
func Cast[I any](t *term.Term) (Term[I], error) {
	if err := Check(t); err != nil {
		return Term[I]{}, err
	}
	if ix := IndexOfTerm(t); ix != IndexOf[I]() {
		return Term[I]{}, errors.Wrapf(ErrIllIndexed, "expected root index %s, have %s", IndexOf[I](), ix)
	}
	return Term[I]{t: t}, nil
}

// Node creates an indexed term for constructor con, injected into signature
// s. The constructor has to yield index I. Child positions take values of
// type Indexed or *term.Term; children are checked against the index the
// child position declares.
func Node[I any](s term.Signature, con *sig.Constructor, fields ...interface{}) (Term[I], error) {
	if con == nil {
		return Term[I]{}, errors.New("cannot create node without constructor")
	}
	if Index(con.Result()) != IndexOf[I]() {
		return Term[I]{}, errors.Wrapf(ErrIllIndexed, "%s yields %s, not %s",
			con.QualifiedName(), con.Result(), IndexOf[I]())
	}
	if len(fields) != len(con.Fields) {
		return Term[I]{}, errors.Errorf("%s expects %d fields, have %d", con.QualifiedName(),
			len(con.Fields), len(fields))
	}
	args := make([]interface{}, len(fields))
	for i, f := range con.Fields {
		args[i] = fields[i]
		if !f.IsChild() {
			continue
		}
		var kid *term.Term
		switch x := fields[i].(type) {
		case Indexed:
			kid = x.Unwrap()
		case *term.Term:
			kid = x
		default:
			return Term[I]{}, errors.Errorf("%s: field %s is a child position, have %T",
				con.QualifiedName(), f.Name, fields[i])
		}
		if f.Index != "" && IndexOfTerm(kid) != Index(f.Index) {
			tracer().Debugf("%s: child %s has index %s", con.QualifiedName(), f.Name, IndexOfTerm(kid))
			return Term[I]{}, errors.Wrapf(ErrIllIndexed, "%s: field %s expects index %s, have %s",
				con.QualifiedName(), f.Name, f.Index, IndexOfTerm(kid))
		}
		args[i] = kid
	}
	t, err := term.MakeTerm(s, con, args...)
	if err != nil {
		return Term[I]{}, err
	}
	return Term[I]{t: t}, nil
}

// MustNode is like Node, but panics on error.
func MustNode[I any](s term.Signature, con *sig.Constructor, fields ...interface{}) Term[I] {
	t, err := Node[I](s, con, fields...)
	if err != nil {
		panic(err)
	}
	return t
}

// Check verifies that every child of every node of t has the index its
// child position declares.
func Check(t *term.Term) error {
	if t.IsHole() {
		return errors.New("hole in closed term")
	}
	con := t.Con()
	for i, kid := range t.Children() {
		f := con.Child(i)
		if f.Index != "" && IndexOfTerm(kid) != Index(f.Index) {
			return errors.Wrapf(ErrIllIndexed, "%s: field %s expects index %s, have %s",
				con.QualifiedName(), f.Name, f.Index, IndexOfTerm(kid))
		}
		if err := Check(kid); err != nil {
			return err
		}
	}
	return nil
}

// --- Mirrors of term and alg operations ------------------------------------

// Inject lifts an indexed term to a larger signature s.
func Inject[I any](s term.Signature, t Term[I]) (Term[I], error) {
	u, err := term.DeepInject(s, t.t)
	if err != nil {
		return Term[I]{}, err
	}
	return Term[I]{t: u}, nil
}

// Project projects the root of an indexed term onto node-kind k.
func Project[I any](k *sig.Kind, t Term[I]) (*term.Node[*term.Term], bool) {
	return term.ProjectTerm(k, t.t)
}

// Alg is an algebra for indexed terms. It receives the index of the node
// it collapses; the carrier is shared by all indices.
type Alg[R any] func(Index, term.Functor[R]) R

// Cata folds an indexed term bottom-up.
func Cata[I, R any](a Alg[R], t Term[I]) R {
	return cata(a, t.t)
}

func cata[R any](a Alg[R], t *term.Term) R {
	return a(IndexOfTerm(t), term.Fmap(t.Out(), func(kid *term.Term) R {
		return cata(a, kid)
	}))
}

// AppHom applies a homomorphism to an indexed term. Homomorphisms on
// indexed terms have to preserve indices: the result is checked and an
// error is returned if any node of it is ill-indexed or if the root index
// has changed.
func AppHom[I any](h alg.Hom, t Term[I]) (Term[I], error) {
	return Cast[I](alg.AppHomTerm(h, t.t))
}
