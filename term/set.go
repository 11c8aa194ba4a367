package term

import (
	"github.com/cnf/structhash"
	"github.com/emirpasic/gods/sets/treeset"
	"github.com/emirpasic/gods/utils"
)

// TermComparator is a gods comparator for *Term values.
func TermComparator(a, b interface{}) int {
	return int(CompareTerms(a.(*Term), b.(*Term)))
}

// Comparator lifts a comparison function on contexts to a gods comparator.
func Comparator[A any](cmpA func(A, A) Ordering) utils.Comparator {
	return func(a, b interface{}) int {
		return int(Compare(cmpA, a.(*Cxt[A]), b.(*Cxt[A])))
	}
}

// Set is an ordered set of terms, built on the structural term order.
type Set struct {
	terms *treeset.Set
}

// NewSet creates a set of terms.
func NewSet(terms ...*Term) *Set {
	s := &Set{terms: treeset.NewWith(TermComparator)}
	for _, t := range terms {
		s.terms.Add(t)
	}
	return s
}

// Add adds terms to the set. Terms structurally equal to a member are
// not added.
func (s *Set) Add(terms ...*Term) {
	for _, t := range terms {
		s.terms.Add(t)
	}
}

// Contains is a predicate: is a term structurally equal to t member of s?
func (s *Set) Contains(t *Term) bool {
	return s.terms.Contains(t)
}

// Remove removes a term from the set.
func (s *Set) Remove(t *Term) {
	s.terms.Remove(t)
}

// Size returns the number of terms in the set.
func (s *Set) Size() int {
	return s.terms.Size()
}

// Values returns the terms of s in ascending order.
func (s *Set) Values() []*Term {
	values := make([]*Term, 0, s.terms.Size())
	it := s.terms.Iterator()
	for it.Next() {
		values = append(values, it.Value().(*Term))
	}
	return values
}

// Each calls f for every term in ascending order.
func (s *Set) Each(f func(int, *Term)) {
	s.terms.Each(func(i int, v interface{}) {
		f(i, v.(*Term))
	})
}

// --- Digests ---------------------------------------------------------------

type digestNode struct {
	Kind string
	Con  string
	Tags []int
	Args []string
	Ann  string
	Kids []string
}

// Digest computes a structural hash of a term. Structurally equal terms
// have equal digests.
func Digest(t *Term) (string, error) {
	if t.hole {
		panic("hole in closed term")
	}
	kids := make([]string, 0, len(t.f.Children()))
	for _, kid := range t.f.Children() {
		d, err := Digest(kid)
		if err != nil {
			return "", err
		}
		kids = append(kids, d)
	}
	n := Base(t.f)
	dn := digestNode{
		Kind: n.Kind().Name,
		Con:  n.Con.Name,
		Args: make([]string, len(n.Args)),
		Kids: kids,
	}
	for _, f := range n.Con.Fields {
		if !f.IsChild() {
			dn.Args[f.Slot()] = f.Type.Show(n.Args[f.Slot()])
		}
	}
	var f Functor[*Term] = t.f
	for {
		if inj, ok := f.(*Inj[*Term]); ok {
			dn.Tags = append(dn.Tags, int(inj.Side))
			f = inj.F
		} else if ann, ok := f.(*Ann[*Term]); ok {
			dn.Ann += ann.Type.Show(ann.P) + ";"
			f = ann.F
		} else {
			break
		}
	}
	return structhash.Hash(dn, 1)
}
