package sig

import (
	"fmt"
	"sync/atomic"

	"github.com/pkg/errors"
)

// KindBuilder is a builder type for node-kinds. Clients add constructors
// with Con(…) and finish each constructor with End():
//
//    b := NewKindBuilder("Expr")
//    b.Con("Lit").P("n", Int).End()         // Lit(n: int)
//    b.Con("Add").C("x").C("y").End()       // Add(x, y)
//    b.Con("Neg").C("x").End()              // Neg(x)
//    expr, err := b.Kind()
//
// Errors are collected along the way and reported by Kind().
type KindBuilder struct {
	name   string
	cons   []*Constructor
	byName map[string]*Constructor
	errs   []error
}

// NewKindBuilder creates a builder for a node-kind.
func NewKindBuilder(name string) *KindBuilder {
	b := &KindBuilder{
		name:   name,
		byName: make(map[string]*Constructor),
	}
	if name == "" {
		b.errs = append(b.errs, errors.New("node-kind name may not be empty"))
	}
	return b
}

// Con starts a new constructor.
func (b *KindBuilder) Con(name string) *ConBuilder {
	return &ConBuilder{
		kb:    b,
		con:   &Constructor{Name: name},
		names: make(map[string]bool),
	}
}

// Kind finalizes a node-kind. It returns an error if anything went wrong
// during declaration. The builder should not be used afterwards.
func (b *KindBuilder) Kind() (*Kind, error) {
	if len(b.cons) == 0 {
		b.errs = append(b.errs, errors.Errorf("node-kind %s has no constructors", b.name))
	}
	if len(b.errs) > 0 {
		tracer().Errorf("node-kind %s: %v", b.name, b.errs[0])
		return nil, errors.Wrapf(b.errs[0], "declaration of %s", b.name)
	}
	k := &Kind{
		Name:   b.name,
		cons:   b.cons,
		byName: b.byName,
		seqno:  atomic.AddUint64(&kindSeqNo, 1),
	}
	for i, c := range k.cons {
		c.kind = k
		c.ordinal = i
	}
	tracer().Debugf("declared node-kind %s with %d constructors", k.Name, len(k.cons))
	return k, nil
}

var kindSeqNo uint64

// MustKind is like Kind, but panics on error. It is intended for package
// level declarations and generated code.
func (b *KindBuilder) MustKind() *Kind {
	k, err := b.Kind()
	if err != nil {
		panic(err)
	}
	return k
}

func (b *KindBuilder) add(c *Constructor) {
	if c.Name == "" {
		b.errs = append(b.errs, errors.New("constructor name may not be empty"))
		return
	}
	if _, dup := b.byName[c.Name]; dup {
		b.errs = append(b.errs, errors.Errorf("duplicate constructor %s", c.Name))
		return
	}
	b.byName[c.Name] = c
	b.cons = append(b.cons, c)
}

// --- Constructor builder ---------------------------------------------------

// ConBuilder is a builder for a single constructor, created by
// KindBuilder.Con(…).
type ConBuilder struct {
	kb    *KindBuilder
	con   *Constructor
	names map[string]bool
}

// C appends a child position.
func (cb *ConBuilder) C(name string) *ConBuilder {
	return cb.CI(name, "")
}

// CI appends a child position with an object-level index. Only sub-terms of
// this index may be placed at this position (see package multi).
func (cb *ConBuilder) CI(name string, index string) *ConBuilder {
	f := &Field{Name: name, Role: ChildRole, Index: index}
	f.slot = len(cb.con.children)
	if cb.field(f) {
		cb.con.children = append(cb.con.children, f)
	}
	return cb
}

// P appends a payload field of type pt.
func (cb *ConBuilder) P(name string, pt *PayloadType) *ConBuilder {
	if pt == nil {
		cb.kb.errs = append(cb.kb.errs, errors.Errorf("payload field %s.%s has no type", cb.con.Name, name))
		return cb
	}
	f := &Field{Name: name, Role: PayloadRole, Type: pt}
	f.slot = len(cb.con.payloads)
	if cb.field(f) {
		cb.con.payloads = append(cb.con.payloads, f)
	}
	return cb
}

// Yields sets the object-level index of nodes built with this constructor.
func (cb *ConBuilder) Yields(index string) *ConBuilder {
	cb.con.result = index
	return cb
}

// End finishes a constructor and adds it to the node-kind. It returns the
// constructor; its ordinal and kind will be set when the kind is finalized.
func (cb *ConBuilder) End() *Constructor {
	cb.kb.add(cb.con)
	return cb.con
}

func (cb *ConBuilder) field(f *Field) bool {
	if f.Name == "" {
		f.Name = fmt.Sprintf("_%d", len(cb.con.Fields))
	}
	if cb.names[f.Name] {
		cb.kb.errs = append(cb.kb.errs, errors.Errorf("duplicate field %s.%s", cb.con.Name, f.Name))
		return false
	}
	cb.names[f.Name] = true
	f.pos = len(cb.con.Fields)
	cb.con.Fields = append(cb.con.Fields, f)
	return true
}
