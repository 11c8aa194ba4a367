package term

import (
	"bytes"
	"strings"
	"sync"

	"github.com/npillmayer/compdata/sig"
	"github.com/pkg/errors"
)

// Ordering is the result of a three-way comparison.
type Ordering int

// Orderings are Less, Equal or Greater.
const (
	Less    Ordering = -1
	Equal   Ordering = 0
	Greater Ordering = 1
)

// OrderOf converts the sign of a comparator result into an Ordering.
func OrderOf(c int) Ordering {
	switch {
	case c < 0:
		return Less
	case c > 0:
		return Greater
	}
	return Equal
}

// Reverse flips Less and Greater.
func (o Ordering) Reverse() Ordering {
	return -o
}

func (o Ordering) String() string {
	switch o {
	case Less:
		return "LT"
	case Greater:
		return "GT"
	}
	return "EQ"
}

// CompList returns the first non-Equal ordering, or Equal. Comparisons are
// evaluated lazily, from left to right.
func CompList(comps ...func() Ordering) Ordering {
	for _, c := range comps {
		if o := c(); o != Equal {
			return o
		}
	}
	return Equal
}

// --- Capabilities ----------------------------------------------------------

// EqualCapability decides equality of two atomic layers of the same
// node-kind. kid(i) reports whether the i-th children are equal; children
// are compared lazily.
type EqualCapability interface {
	EqualShape(x, y Shape, kid func(int) bool) bool
}

// OrderCapability compares two atomic layers of the same node-kind.
// kid(i) compares the i-th children.
type OrderCapability interface {
	CompareShape(x, y Shape, kid func(int) Ordering) Ordering
}

// ShowCapability renders an atomic layer, given the renderings of its
// children.
type ShowCapability interface {
	ShowShape(x Shape, kids []string) string
}

// Instances bundles the capabilities of a node-kind. Nil capabilities are
// served by Generic.
type Instances struct {
	Eq   EqualCapability
	Ord  OrderCapability
	Show ShowCapability
}

// ErrDuplicateInstance is returned when a capability is registered twice for
// the same node-kind.
var ErrDuplicateInstance = errors.New("conflicting instance")

var instances = struct {
	sync.RWMutex
	m map[*sig.Kind]*Instances
}{m: make(map[*sig.Kind]*Instances)}

// Register registers capabilities for a node-kind. Registering a capability
// which is already present for this kind is an error. Registration usually
// happens in init functions of generated code.
func Register(k *sig.Kind, inst Instances) error {
	instances.Lock()
	defer instances.Unlock()
	present, ok := instances.m[k]
	if !ok {
		present = &Instances{}
		instances.m[k] = present
	}
	if (inst.Eq != nil && present.Eq != nil) || (inst.Ord != nil && present.Ord != nil) ||
		(inst.Show != nil && present.Show != nil) {
		tracer().Errorf("conflicting instances for node-kind %s", k)
		return errors.Wrap(ErrDuplicateInstance, k.Name)
	}
	if inst.Eq != nil {
		present.Eq = inst.Eq
	}
	if inst.Ord != nil {
		present.Ord = inst.Ord
	}
	if inst.Show != nil {
		present.Show = inst.Show
	}
	tracer().Debugf("registered instances for node-kind %s", k)
	return nil
}

// MustRegister is like Register, but panics on error.
func MustRegister(k *sig.Kind, inst Instances) {
	if err := Register(k, inst); err != nil {
		panic(err)
	}
}

// InstancesFor returns the capabilities of a node-kind. Capabilities which
// have not been registered are filled in with Generic.
func InstancesFor(k *sig.Kind) Instances {
	instances.RLock()
	defer instances.RUnlock()
	inst := Instances{Eq: Generic, Ord: Generic, Show: Generic}
	if present, ok := instances.m[k]; ok {
		if present.Eq != nil {
			inst.Eq = present.Eq
		}
		if present.Ord != nil {
			inst.Ord = present.Ord
		}
		if present.Show != nil {
			inst.Show = present.Show
		}
	}
	return inst
}

// --- Generic instance ------------------------------------------------------

// Generic implements all capabilities for every node-kind, driven by the
// declaration metadata of the constructors.
var Generic genericInstance

type genericInstance struct{}

// EqualShape is part of EqualCapability. Layers with different constructors
// are unequal; otherwise fields are compared pointwise.
func (genericInstance) EqualShape(x, y Shape, kid func(int) bool) bool {
	if x.Con != y.Con {
		return false
	}
	for _, f := range x.Con.Fields {
		if f.IsChild() {
			if !kid(f.Slot()) {
				return false
			}
		} else if !f.Type.Equal(x.Args[f.Slot()], y.Args[f.Slot()]) {
			return false
		}
	}
	return true
}

// CompareShape is part of OrderCapability. Different constructors are
// ordered by declaration index. For identical constructors fields are
// compared left to right, the first difference deciding.
func (genericInstance) CompareShape(x, y Shape, kid func(int) Ordering) Ordering {
	if x.Con != y.Con {
		return OrderOf(x.Con.Ordinal() - y.Con.Ordinal())
	}
	for _, f := range x.Con.Fields {
		var o Ordering
		if f.IsChild() {
			o = kid(f.Slot())
		} else {
			o = OrderOf(f.Type.Compare(x.Args[f.Slot()], y.Args[f.Slot()]))
		}
		if o != Equal {
			return o
		}
	}
	return Equal
}

// ShowShape is part of ShowCapability. It renders the constructor name
// followed by the fields in declaration order; compound children are
// parenthesized.
func (genericInstance) ShowShape(x Shape, kids []string) string {
	var b bytes.Buffer
	b.WriteString(x.Con.Name)
	for _, f := range x.Con.Fields {
		b.WriteByte(' ')
		if f.IsChild() {
			b.WriteString(Paren(kids[f.Slot()]))
		} else {
			b.WriteString(Paren(f.Type.Show(x.Args[f.Slot()])))
		}
	}
	return b.String()
}

// Paren wraps a rendering in parentheses if it is compound, i.e. contains
// blanks and is not already enclosed in brackets or quotes.
func Paren(s string) string {
	if !strings.ContainsRune(s, ' ') {
		return s
	}
	if (strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") && balanced(s)) ||
		(strings.HasPrefix(s, `"`) && strings.HasSuffix(s, `"`) && len(s) > 1) {
		return s
	}
	return "(" + s + ")"
}

// balanced checks that the opening parenthesis at position 0 closes at the
// end of s, as in "(a b)" but not in "(a) (b)".
func balanced(s string) bool {
	depth := 0
	for i, r := range s {
		switch r {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 && i != len(s)-1 {
				return false
			}
		}
	}
	return depth == 0
}
