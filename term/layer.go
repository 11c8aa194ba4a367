package term

import (
	"fmt"

	"github.com/npillmayer/compdata/sig"
	"github.com/pkg/errors"
)

// Functor is one layer of a term, its child positions holding values of
// type A. It is implemented by *Node[A], *Inj[A] and *Ann[A], and by nothing
// else.
type Functor[A any] interface {
	// Children returns the values at the child positions, in declaration order.
	Children() []A
	isFunctor()
}

// Shape is the non-generic view of an atomic layer: its constructor and its
// payload values. Capabilities work on shapes and receive results for the
// children separately.
type Shape struct {
	Con  *sig.Constructor
	Args []interface{} // payload values, by payload slot
}

// --- Atomic layers ---------------------------------------------------------

// Node is a layer of an atomic node-kind.
type Node[A any] struct {
	Con  *sig.Constructor
	Args []interface{} // payload values, by payload slot
	Kids []A           // children, by child slot
}

// NewNode creates an atomic layer from a constructor and field values, given
// in declaration order. Child positions have to receive values of type A,
// payloads values accepted by their payload type.
func NewNode[A any](con *sig.Constructor, fields ...interface{}) (*Node[A], error) {
	if con == nil {
		return nil, errors.Errorf("cannot create node without constructor")
	}
	if len(fields) != len(con.Fields) {
		return nil, errors.Errorf("%s expects %d fields, have %d", con.QualifiedName(),
			len(con.Fields), len(fields))
	}
	n := &Node[A]{
		Con:  con,
		Args: make([]interface{}, con.NumPayloads()),
		Kids: make([]A, con.Arity()),
	}
	for i, f := range con.Fields {
		if f.IsChild() {
			kid, ok := fields[i].(A)
			if !ok {
				return nil, errors.Errorf("%s: field %s is a child position, have %T",
					con.QualifiedName(), f.Name, fields[i])
			}
			n.Kids[f.Slot()] = kid
			continue
		}
		if !f.Type.Accepts(fields[i]) {
			return nil, errors.Errorf("%s: field %s expects payload of type %s, have %T",
				con.QualifiedName(), f.Name, f.Type, fields[i])
		}
		n.Args[f.Slot()] = fields[i]
	}
	return n, nil
}

// Children is part of interface Functor.
func (n *Node[A]) Children() []A {
	return n.Kids
}

// Shape returns the non-generic view of n.
func (n *Node[A]) Shape() Shape {
	return Shape{Con: n.Con, Args: n.Args}
}

// Kind returns the node-kind of n.
func (n *Node[A]) Kind() *sig.Kind {
	return n.Con.Kind()
}

func (n *Node[A]) isFunctor() {}

// Arg returns a payload value by field name. It panics if the constructor
// has no such payload field.
func (s Shape) Arg(name string) interface{} {
	f := s.Con.Field(name)
	if f == nil || f.IsChild() {
		panic(fmt.Sprintf("%s has no payload field %s", s.Con.QualifiedName(), name))
	}
	return s.Args[f.Slot()]
}

// --- Sum layers ------------------------------------------------------------

// Side is the tag of a sum layer.
type Side int8

// Layers of a sum F :+: G are either tagged Left (belonging to F) or
// Right (belonging to G). Left is ordered before Right.
const (
	Left Side = iota
	Right
)

func (s Side) String() string {
	if s == Left {
		return "Inl"
	}
	return "Inr"
}

// Inj is a layer of a sum of signatures.
type Inj[A any] struct {
	Side Side
	F    Functor[A]
}

// Children is part of interface Functor.
func (inj *Inj[A]) Children() []A {
	return inj.F.Children()
}

func (inj *Inj[A]) isFunctor() {}

// --- Annotated layers ------------------------------------------------------

// Ann is a layer of an annotated signature F :&: P. Only the node itself
// carries the payload; children are annotated individually.
type Ann[A any] struct {
	F    Functor[A]
	P    interface{}
	Type *sig.PayloadType
}

// Children is part of interface Functor.
func (ann *Ann[A]) Children() []A {
	return ann.F.Children()
}

func (ann *Ann[A]) isFunctor() {}

// --- Generic operations on layers ------------------------------------------

// Fmap maps a function over the child positions of a layer. Payloads and
// tags are left untouched.
func Fmap[A, B any](f Functor[A], fn func(A) B) Functor[B] {
	switch x := f.(type) {
	case *Node[A]:
		kids := make([]B, len(x.Kids))
		for i, kid := range x.Kids {
			kids[i] = fn(kid)
		}
		return &Node[B]{Con: x.Con, Args: x.Args, Kids: kids}
	case *Inj[A]:
		return &Inj[B]{Side: x.Side, F: Fmap(x.F, fn)}
	case *Ann[A]:
		return &Ann[B]{F: Fmap(x.F, fn), P: x.P, Type: x.Type}
	}
	panic(fmt.Sprintf("unknown layer type %T", f))
}

// FmapM maps a function with a possible error over the child positions of a
// layer, in declaration order. It stops at the first error.
func FmapM[A, B any](f Functor[A], fn func(A) (B, error)) (Functor[B], error) {
	switch x := f.(type) {
	case *Node[A]:
		kids := make([]B, len(x.Kids))
		for i, kid := range x.Kids {
			b, err := fn(kid)
			if err != nil {
				return nil, err
			}
			kids[i] = b
		}
		return &Node[B]{Con: x.Con, Args: x.Args, Kids: kids}, nil
	case *Inj[A]:
		inner, err := FmapM(x.F, fn)
		if err != nil {
			return nil, err
		}
		return &Inj[B]{Side: x.Side, F: inner}, nil
	case *Ann[A]:
		inner, err := FmapM(x.F, fn)
		if err != nil {
			return nil, err
		}
		return &Ann[B]{F: inner, P: x.P, Type: x.Type}, nil
	}
	panic(fmt.Sprintf("unknown layer type %T", f))
}

// Base returns the atomic layer below all sum tags and annotations.
func Base[A any](f Functor[A]) *Node[A] {
	for {
		switch x := f.(type) {
		case *Node[A]:
			return x
		case *Inj[A]:
			f = x.F
		case *Ann[A]:
			f = x.F
		default:
			panic(fmt.Sprintf("unknown layer type %T", f))
		}
	}
}

// Con returns the constructor of the atomic layer of f.
func Con[A any](f Functor[A]) *sig.Constructor {
	return Base(f).Con
}
