package sig

import (
	"fmt"

	"github.com/emirpasic/gods/utils"
)

// Symbol tables for declarations. Symbol tables are attached to scopes,
// scopes are organized in a tree. The registry of node-kinds is a symbol
// table, and the code generator keeps its derived instances in scopes.

// --- Tags ------------------------------------------------------------------

// Tag is the type of entries in symbol tables. A tag has a name and carries
// a user-defined value, usually a *Kind.
type Tag struct {
	name  string
	Typ   TagType
	UData interface{} // user data
}

// TagType categorizes tags.
type TagType int8

// Pre-defined tag types.
const (
	Undefined TagType = iota
	KindTag
	InstanceTag
)

// NewTag creates a new tag.
func NewTag(nm string) *Tag {
	return &Tag{name: nm}
}

// WithType sets the type of a tag. Use as
//
//    tag := NewTag("Eq Arith").WithType(InstanceTag)
//
func (t *Tag) WithType(typ TagType) *Tag {
	t.Typ = typ
	return t
}

// Name gets the tag's name.
func (t *Tag) Name() string {
	return t.name
}

// String is a debug Stringer for tags.
func (t *Tag) String() string {
	return fmt.Sprintf("<tag '%s':%d>", t.name, t.Typ)
}

// === Symbol Tables =========================================================

// SymbolTable is a symbol table to store tags (map-like semantics).
type SymbolTable struct {
	Table map[string]*Tag
}

// NewSymbolTable creates an empty symbol table.
func NewSymbolTable() *SymbolTable {
	return &SymbolTable{
		Table: make(map[string]*Tag),
	}
}

// ResolveTag checks for a tag in the symbol table.
// Returns a tag or nil.
func (st *SymbolTable) ResolveTag(tagname string) *Tag {
	return st.Table[tagname]
}

// ResolveOrDefineTag finds a tag in the table, inserts a new one if not
// found. Returns the tag and a flag, signalling whether the tag has already
// been present.
func (st *SymbolTable) ResolveOrDefineTag(tagname string) (*Tag, bool) {
	if len(tagname) == 0 {
		return nil, false
	}
	found := true
	tag := st.ResolveTag(tagname)
	if tag == nil {
		tag, _ = st.DefineTag(tagname)
		found = false
	}
	return tag, found
}

// DefineTag creates a new tag to store into the symbol table.
// The tag's name may not be empty. Overwrites an existing tag with this name,
// if any. Returns the new tag and the previously stored tag (or nil).
func (st *SymbolTable) DefineTag(tagname string) (*Tag, *Tag) {
	if len(tagname) == 0 {
		return nil, nil
	}
	tag := NewTag(tagname)
	old := st.InsertTag(tag)
	return tag, old
}

// InsertTag inserts a pre-created tag.
func (st *SymbolTable) InsertTag(tag *Tag) *Tag {
	old := st.ResolveTag(tag.name)
	st.Table[tag.name] = tag
	return old
}

// Size counts the tags in a symbol table.
func (st *SymbolTable) Size() int {
	return len(st.Table)
}

// Each iterates over each tag in the table, in order of tag names,
// executing a mapper function.
func (st *SymbolTable) Each(mapper func(string, *Tag)) {
	names := make([]interface{}, 0, len(st.Table))
	for k := range st.Table {
		names = append(names, k)
	}
	utils.Sort(names, utils.StringComparator)
	for _, k := range names {
		mapper(k.(string), st.Table[k.(string)])
	}
}

// === Scopes ================================================================

// Scope is a named scope, which may contain tag definitions. Scopes link back
// to a parent scope, forming a tree.
type Scope struct {
	Name   string
	Parent *Scope
	symtab *SymbolTable
}

// NewScope creates a new scope.
func NewScope(nm string, parent *Scope) *Scope {
	return &Scope{
		Name:   nm,
		Parent: parent,
		symtab: NewSymbolTable(),
	}
}

// Prettyfied Stringer.
func (s *Scope) String() string {
	return fmt.Sprintf("<scope %s>", s.Name)
}

// Tags returns the symbol table of a scope.
func (s *Scope) Tags() *SymbolTable {
	return s.symtab
}

// DefineTag defines a tag in the scope. Returns the new tag and the previously
// stored tag under this key, if any.
func (s *Scope) DefineTag(tagname string) (*Tag, *Tag) {
	return s.symtab.DefineTag(tagname)
}

// ResolveTag finds a tag. Returns the tag (or nil) and a scope. The scope is
// the scope (of a scope-tree-path) the tag was found in.
func (s *Scope) ResolveTag(tagname string) (*Tag, *Scope) {
	for sc := s; sc != nil; sc = sc.Parent {
		if tag := sc.symtab.ResolveTag(tagname); tag != nil {
			return tag, sc
		}
	}
	return nil, nil
}

// ---------------------------------------------------------------------------

// ScopeTree can be treated as a stack, thus building a tree from scopes which
// are pushed and popped to/from the stack.
type ScopeTree struct {
	ScopeBase *Scope
	ScopeTOS  *Scope
}

// Current gets the current scope of a stack (TOS).
func (scst *ScopeTree) Current() *Scope {
	if scst.ScopeTOS == nil {
		panic("attempt to access scope from empty stack")
	}
	return scst.ScopeTOS
}

// Globals gets the outermost scope.
func (scst *ScopeTree) Globals() *Scope {
	if scst.ScopeBase == nil {
		panic("attempt to access global scope from empty stack")
	}
	return scst.ScopeBase
}

// PushNewScope pushes a new scope onto the stack of scopes.
func (scst *ScopeTree) PushNewScope(nm string) *Scope {
	scp := scst.ScopeTOS
	newsc := NewScope(nm, scp)
	if scp == nil { // the new scope is the global scope
		scst.ScopeBase = newsc
	}
	scst.ScopeTOS = newsc
	tracer().P("scope", newsc.Name).Debugf("pushing new scope")
	return newsc
}

// PopScope pops the top-most (recent) scope.
func (scst *ScopeTree) PopScope() *Scope {
	if scst.ScopeTOS == nil {
		panic("attempt to pop scope from empty stack")
	}
	sc := scst.ScopeTOS
	tracer().Debugf("popping scope [%s]", sc.Name)
	scst.ScopeTOS = scst.ScopeTOS.Parent
	return sc
}
