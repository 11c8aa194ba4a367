package term

import (
	"fmt"

	"github.com/npillmayer/compdata/sig"
	"github.com/pkg/errors"
)

// Signature describes which layers terms may be built from. Node-kinds
// (*sig.Kind) are signatures, as are sums of signatures and annotated
// signatures.
type Signature interface {
	Kinds() []*sig.Kind // atomic node-kinds, left to right
	String() string
}

// ErrDuplicateKind is returned when a node-kind would occur twice in a sum.
var ErrDuplicateKind = errors.New("node-kind occurs more than once in sum")

// Sum is the signature F :+: G.
type Sum struct {
	L, R  Signature
	kinds []*sig.Kind
}

// NewSum creates the sum of two signatures. A node-kind may occur at most
// once in a sum; otherwise projection would be ambiguous and NewSum returns
// an error.
func NewSum(l, r Signature) (*Sum, error) {
	if l == nil || r == nil {
		return nil, errors.New("cannot build sum of nil signatures")
	}
	kinds := make([]*sig.Kind, 0, len(l.Kinds())+len(r.Kinds()))
	kinds = append(kinds, l.Kinds()...)
	for _, k := range r.Kinds() {
		if contains(kinds, k) {
			tracer().Errorf("node-kind %s occurs twice in %s :+: %s", k, l, r)
			return nil, errors.Wrap(ErrDuplicateKind, k.Name)
		}
		kinds = append(kinds, k)
	}
	return &Sum{L: l, R: r, kinds: kinds}, nil
}

// Sums builds a right-nested chain of sums
//
//     s1 :+: (s2 :+: (… :+: sn))
//
// A single signature is returned as is.
func Sums(sigs ...Signature) (Signature, error) {
	if len(sigs) == 0 {
		return nil, errors.New("empty sum")
	}
	if len(sigs) == 1 {
		return sigs[0], nil
	}
	r, err := Sums(sigs[1:]...)
	if err != nil {
		return nil, err
	}
	return NewSum(sigs[0], r)
}

// MustSums is like Sums, but panics on error.
func MustSums(sigs ...Signature) Signature {
	s, err := Sums(sigs...)
	if err != nil {
		panic(err)
	}
	return s
}

// Kinds is part of interface Signature.
func (s *Sum) Kinds() []*sig.Kind {
	return s.kinds
}

func (s *Sum) String() string {
	return fmt.Sprintf("(%s :+: %s)", s.L, s.R)
}

// Annotated is the signature F :&: P, i.e. every node of F is paired with a
// payload of type P.
type Annotated struct {
	F Signature
	P *sig.PayloadType
}

// NewAnnotated creates an annotated signature.
func NewAnnotated(s Signature, pt *sig.PayloadType) *Annotated {
	return &Annotated{F: s, P: pt}
}

// Kinds is part of interface Signature.
func (a *Annotated) Kinds() []*sig.Kind {
	return a.F.Kinds()
}

func (a *Annotated) String() string {
	return fmt.Sprintf("(%s :&: %s)", a.F, a.P)
}

// Contains is a predicate: is node-kind k part of signature s?
func Contains(s Signature, k *sig.Kind) bool {
	return contains(s.Kinds(), k)
}

// Subsumes is a predicate: are all node-kinds of sub part of s?
func Subsumes(s Signature, sub Signature) bool {
	for _, k := range sub.Kinds() {
		if !Contains(s, k) {
			return false
		}
	}
	return true
}

func contains(kinds []*sig.Kind, k *sig.Kind) bool {
	for _, x := range kinds {
		if x == k {
			return true
		}
	}
	return false
}
