package derive

import (
	"fmt"
	"sort"

	"github.com/kr/pretty"
	"github.com/npillmayer/compdata/sig"
	"github.com/pkg/errors"
	"golang.org/x/tools/imports"
)

// ErrConflictingInstance is returned if a capability is derived twice for
// the same node-kind within an instance scope.
var ErrConflictingInstance = errors.New("conflicting instance")

// Deriver collects derivation requests and generates Go source for them.
//
// Derived instances are recorded in a tree of instance scopes. A capability
// may be derived for a node-kind at most once along a path of scopes. As all
// derivations end up in a single generated file, a capability derived in a
// closed scope may not be derived again either.
type Deriver struct {
	Package     string            // package clause of the generated file
	Imports     map[string]string // additional imports, name ↦ path
	reg         *sig.Registry
	scopes      sig.ScopeTree
	derivations []*derivation
}

type derivation struct {
	Kind *sig.Kind
	Caps []Cap
}

// NewDeriver creates a deriver for node-kinds of a registry. pkg is the
// package name of the generated code.
func NewDeriver(pkg string, reg *sig.Registry) *Deriver {
	if reg == nil {
		reg = sig.Global
	}
	d := &Deriver{
		Package: pkg,
		Imports: make(map[string]string),
		reg:     reg,
	}
	d.scopes.PushNewScope("instances")
	return d
}

// PushScope opens a nested instance scope.
func (d *Deriver) PushScope(name string) {
	d.scopes.PushNewScope(name)
}

// PopScope closes the current instance scope. The global instance scope
// cannot be closed.
func (d *Deriver) PopScope() error {
	if d.scopes.Current() == d.scopes.Globals() {
		return errors.New("cannot close global instance scope")
	}
	d.scopes.PopScope()
	return nil
}

// Derive requests derivation of capabilities for a node-kind. It fails if
// kindName does not name a node-kind of the registry, or if one of the
// capabilities has already been derived for it, in the current scope, an
// enclosing one or a scope closed before. If Derive fails, nothing is
// recorded.
func (d *Deriver) Derive(kindName string, caps ...Cap) error {
	k, err := d.reg.Lookup(kindName)
	if err != nil {
		tracer().Errorf("cannot derive instances for %s: unknown node-kind", kindName)
		return errors.Wrapf(err, "derive %s", kindName)
	}
	if len(caps) == 0 {
		return errors.Errorf("derive %s: no capabilities requested", kindName)
	}
	scope := d.scopes.Current()
	for i, c := range caps {
		if tag, sc := scope.ResolveTag(instanceName(k, c)); tag != nil {
			tracer().P("scope", sc.Name).Errorf("%s already derived for %s", c, kindName)
			return errors.Wrapf(ErrConflictingInstance, "derive %s: capability %s already derived in %s",
				kindName, c, sc)
		}
		if hasCap(d.Derived(kindName), c) {
			tracer().Errorf("%s already derived for %s in a closed scope", c, kindName)
			return errors.Wrapf(ErrConflictingInstance, "derive %s: capability %s already derived",
				kindName, c)
		}
		for _, prev := range caps[:i] {
			if prev == c {
				return errors.Wrapf(ErrConflictingInstance, "derive %s: capability %s requested twice",
					kindName, c)
			}
		}
	}
	if hasCap(caps, SmartCons) {
		if err := d.checkConsNames(k); err != nil {
			return err
		}
	}
	for _, c := range caps {
		tag, _ := scope.DefineTag(instanceName(k, c))
		tag.WithType(sig.InstanceTag).UData = c
	}
	d.record(k, caps)
	tracer().Infof("derive %s: %v", kindName, caps)
	return nil
}

func instanceName(k *sig.Kind, c Cap) string {
	return k.Name + "#" + c.String()
}

func hasCap(caps []Cap, c Cap) bool {
	for _, x := range caps {
		if x == c {
			return true
		}
	}
	return false
}

// checkConsNames makes sure smart constructors of different node-kinds do not
// clash, as they are named after the constructors only.
func (d *Deriver) checkConsNames(k *sig.Kind) error {
	for _, drv := range d.derivations {
		if drv.Kind == k || !hasCap(drv.Caps, SmartCons) {
			continue
		}
		for _, c := range k.Constructors() {
			if drv.Kind.Con(c.Name) != nil {
				return errors.Errorf("derive %s: smart constructor I%s clashes with node-kind %s",
					k.Name, c.Name, drv.Kind.Name)
			}
		}
	}
	return nil
}

func (d *Deriver) record(k *sig.Kind, caps []Cap) {
	for _, drv := range d.derivations {
		if drv.Kind == k {
			drv.Caps = append(drv.Caps, caps...)
			sort.Slice(drv.Caps, func(i, j int) bool { return drv.Caps[i] < drv.Caps[j] })
			return
		}
	}
	sorted := append([]Cap(nil), caps...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	d.derivations = append(d.derivations, &derivation{Kind: k, Caps: sorted})
}

// Derived returns the capabilities derived so far for a node-kind.
func (d *Deriver) Derived(kindName string) []Cap {
	for _, drv := range d.derivations {
		if drv.Kind.Name == kindName {
			return drv.Caps
		}
	}
	return nil
}

// Generate emits Go source for all derivations, formatted and with imports
// fixed.
func (d *Deriver) Generate() ([]byte, error) {
	if len(d.derivations) == 0 {
		return nil, errors.New("nothing to generate")
	}
	e := newEmitter(d.Package)
	e.header(d.importSpecs())
	for _, drv := range d.derivations {
		e.kind(drv.Kind)
		var inst []Cap
		for _, c := range drv.Caps {
			switch c {
			case Eq:
				e.eq(drv.Kind)
				inst = append(inst, c)
			case Ord:
				e.ord(drv.Kind)
				inst = append(inst, c)
			case Show:
				e.show(drv.Kind)
				inst = append(inst, c)
			case Functor:
				e.functor(drv.Kind)
			case SmartCons:
				e.smartCons(drv.Kind)
			}
		}
		if len(inst) > 0 {
			e.register(drv.Kind, inst)
		}
	}
	src := e.Bytes()
	out, err := imports.Process(fmt.Sprintf("%s_cdt.go", d.Package), src, &imports.Options{
		Comments:  true,
		TabIndent: true,
		TabWidth:  8,
	})
	if err != nil {
		tracer().Errorf("generated source is not valid Go:\n%s", src)
		return nil, errors.Wrap(err, "formatting generated source")
	}
	return out, nil
}

func (d *Deriver) importSpecs() map[string]string {
	imps := map[string]string{
		"sig":  "github.com/npillmayer/compdata/sig",
		"term": "github.com/npillmayer/compdata/term",
	}
	for _, drv := range d.derivations {
		if usesSpan(drv.Kind) {
			imps["compdata"] = "github.com/npillmayer/compdata"
		}
	}
	for name, path := range d.Imports {
		imps[name] = path
	}
	return imps
}

// Dump is a debugging helper.
func (d *Deriver) Dump() {
	type entry struct {
		Kind string
		Caps []string
	}
	entries := make([]entry, len(d.derivations))
	for i, drv := range d.derivations {
		entries[i].Kind = drv.Kind.Name
		for _, c := range drv.Caps {
			entries[i].Caps = append(entries[i].Caps, c.String())
		}
	}
	tracer().Debugf("deriver for package %s: %# v", d.Package, pretty.Formatter(entries))
}
