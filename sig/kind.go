package sig

import (
	"bytes"
	"fmt"
)

// Role tells whether a field is a child position or an opaque payload.
type Role int8

// Fields either hold sub-terms (ChildRole) or opaque values (PayloadRole).
const (
	ChildRole Role = iota
	PayloadRole
)

func (r Role) String() string {
	if r == ChildRole {
		return "child"
	}
	return "payload"
}

// --- Fields ----------------------------------------------------------------

// Field is a field of a constructor.
type Field struct {
	Name  string
	Role  Role
	Type  *PayloadType // nil for child positions
	Index string       // object-level index of a child position, if any
	pos   int          // position within the constructor's fields
	slot  int          // position among the children resp. payloads
}

// IsChild is a predicate: does this field denote a child position?
func (f *Field) IsChild() bool {
	return f.Role == ChildRole
}

// Pos returns the declaration position of a field.
func (f *Field) Pos() int {
	return f.pos
}

// Slot returns the position of a field among the child fields (for child
// positions) or among the payload fields (for payloads) of its constructor.
func (f *Field) Slot() int {
	return f.slot
}

func (f *Field) String() string {
	if f.IsChild() {
		if f.Index != "" {
			return fmt.Sprintf("%s:*%s", f.Name, f.Index)
		}
		return f.Name
	}
	return fmt.Sprintf("%s:%s", f.Name, f.Type)
}

// --- Constructors ----------------------------------------------------------

// Constructor is a constructor of a node-kind.
type Constructor struct {
	Name     string
	Fields   []*Field
	result   string // object-level index of nodes built with this constructor
	kind     *Kind
	ordinal  int
	children []*Field
	payloads []*Field
}

// Kind returns the node-kind a constructor belongs to.
func (c *Constructor) Kind() *Kind {
	return c.kind
}

// Ordinal returns the declaration index of a constructor within its kind.
func (c *Constructor) Ordinal() int {
	return c.ordinal
}

// Arity returns the number of child positions of a constructor.
func (c *Constructor) Arity() int {
	return len(c.children)
}

// NumPayloads returns the number of payload fields of a constructor.
func (c *Constructor) NumPayloads() int {
	return len(c.payloads)
}

// Child returns the field for the i-th child position.
func (c *Constructor) Child(i int) *Field {
	return c.children[i]
}

// Payload returns the field for the i-th payload.
func (c *Constructor) Payload(i int) *Field {
	return c.payloads[i]
}

// Field returns a field by name, or nil.
func (c *Constructor) Field(name string) *Field {
	for _, f := range c.Fields {
		if f.Name == name {
			return f
		}
	}
	return nil
}

// Result returns the object-level index of nodes built with this constructor,
// or "" for un-indexed kinds.
func (c *Constructor) Result() string {
	return c.result
}

// QualifiedName returns "Kind.Constructor".
func (c *Constructor) QualifiedName() string {
	return c.kind.Name + "." + c.Name
}

func (c *Constructor) String() string {
	var b bytes.Buffer
	b.WriteString(c.Name)
	b.WriteString("(")
	for i, f := range c.Fields {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(f.String())
	}
	b.WriteString(")")
	if c.result != "" {
		b.WriteString(" : ")
		b.WriteString(c.result)
	}
	return b.String()
}

// --- Kinds -----------------------------------------------------------------

// Kind is a declared node-kind. Kinds are immutable after construction and
// are compared by identity.
type Kind struct {
	Name   string
	cons   []*Constructor
	byName map[string]*Constructor
	seqno  uint64
}

// SeqNo is the sequence number of the declaration of k. Kinds declared
// later have higher sequence numbers.
func (k *Kind) SeqNo() uint64 {
	return k.seqno
}

// Constructors returns the constructors of a kind in declaration order.
func (k *Kind) Constructors() []*Constructor {
	return k.cons
}

// Con returns a constructor by name, or nil.
func (k *Kind) Con(name string) *Constructor {
	return k.byName[name]
}

// Size returns the number of constructors.
func (k *Kind) Size() int {
	return len(k.cons)
}

// IsIndexed is a predicate: does any constructor declare a result index?
func (k *Kind) IsIndexed() bool {
	for _, c := range k.cons {
		if c.result != "" {
			return true
		}
	}
	return false
}

// Kinds returns the kind itself, as the only atomic kind of this signature.
// Together with String, it makes a kind a term signature.
func (k *Kind) Kinds() []*Kind {
	return []*Kind{k}
}

func (k *Kind) String() string {
	return k.Name
}

// Dump is a debugging helper.
func (k *Kind) Dump() {
	tracer().Debugf("--- kind %s -----------", k.Name)
	for _, c := range k.cons {
		tracer().Debugf("%3d: %s", c.ordinal, c)
	}
	tracer().Debugf("-------------------------")
}
