package rewrite

import (
	"fmt"
	"sort"

	"github.com/npillmayer/compdata/term"
	"github.com/npillmayer/schuko/gconf"
	"github.com/pkg/errors"
)

// Var is a pattern variable.
type Var string

// Pattern is a context whose holes are pattern variables.
type Pattern = term.Cxt[Var]

// V creates a pattern variable.
func V(name string) *Pattern {
	return term.Hole(Var(name))
}

// Subst is a substitution of pattern variables by terms.
type Subst map[Var]*term.Term

// Apply instantiates a pattern. It returns an error if the pattern
// contains a variable which s does not bind.
func (s Subst) Apply(p *Pattern) (*term.Term, error) {
	var unbound Var
	t := term.Bind(p, func(v Var) *term.Term {
		if t, ok := s[v]; ok {
			return t
		}
		unbound = v
		return nil
	})
	if unbound != "" {
		return nil, errors.Errorf("variable %s unbound", unbound)
	}
	return t, nil
}

func (s Subst) String() string {
	vars := make([]string, 0, len(s))
	for v := range s {
		vars = append(vars, string(v))
	}
	sort.Strings(vars)
	str := "{"
	for i, v := range vars {
		if i > 0 {
			str += ", "
		}
		str += fmt.Sprintf("%s ↦ %s", v, s[Var(v)])
	}
	return str + "}"
}

// --- Matching --------------------------------------------------------------

// Match matches a pattern against a term. On success it returns the
// substitution binding the pattern's variables.
func Match(p *Pattern, t *term.Term) (Subst, bool) {
	s := make(Subst)
	if !match(p, t, s) {
		return nil, false
	}
	return s, true
}

func match(p *Pattern, t *term.Term, s Subst) bool {
	if v, ok := p.HoleValue(); ok {
		if bound, ok := s[v]; ok {
			return term.EqualTerms(term.StripAnn(bound), term.StripAnn(t))
		}
		s[v] = t
		return true
	}
	pn, tn := term.Base(p.Out()), term.Base(t.Out())
	if pn.Con != tn.Con {
		return false
	}
	for i := 0; i < pn.Con.NumPayloads(); i++ {
		if !pn.Con.Payload(i).Type.Equal(pn.Args[i], tn.Args[i]) {
			return false
		}
	}
	for i := range pn.Kids {
		if !match(pn.Kids[i], tn.Kids[i], s) {
			return false
		}
	}
	return true
}

func vars(p *Pattern) map[Var]bool {
	vs := make(map[Var]bool)
	for _, v := range term.Holes(p) {
		vs[v] = true
	}
	return vs
}

// --- Rules -----------------------------------------------------------------

// Rule is a rewrite rule LHS → RHS.
type Rule struct {
	Name string
	LHS  *Pattern
	RHS  *Pattern
}

// ErrMalformedRule is returned for rules which are not proper rewrite rules.
var ErrMalformedRule = errors.New("malformed rewrite rule")

// NewRule creates a rewrite rule. The left-hand side may not be a variable,
// and every variable of the right-hand side has to occur in the left-hand
// side.
func NewRule(name string, lhs, rhs *Pattern) (*Rule, error) {
	if lhs == nil || rhs == nil {
		return nil, errors.Wrapf(ErrMalformedRule, "%s: missing side", name)
	}
	if lhs.IsHole() {
		return nil, errors.Wrapf(ErrMalformedRule, "%s: left-hand side is a variable", name)
	}
	lvars := vars(lhs)
	for _, v := range term.Holes(rhs) {
		if !lvars[v] {
			return nil, errors.Wrapf(ErrMalformedRule, "%s: variable %s not bound by left-hand side", name, v)
		}
	}
	return &Rule{Name: name, LHS: lhs, RHS: rhs}, nil
}

// MustRule is like NewRule, but panics on error.
func MustRule(name string, lhs, rhs *Pattern) *Rule {
	r, err := NewRule(name, lhs, rhs)
	if err != nil {
		panic(err)
	}
	return r
}

// Apply applies a rule at the root of t.
func (r *Rule) Apply(t *term.Term) (*term.Term, bool) {
	s, ok := Match(r.LHS, t)
	if !ok {
		return nil, false
	}
	u, err := s.Apply(r.RHS)
	if err != nil { // cannot happen for rules built by NewRule
		panic(err)
	}
	tracer().Debugf("rule %s: %s ⟶ %s", r.Name, t, u)
	return u, true
}

func (r *Rule) String() string {
	return fmt.Sprintf("%s: %s → %s", r.Name, r.LHS, r.RHS)
}

// --- Rewrite systems -------------------------------------------------------

// System is a term rewriting system. Rules are tried in order.
type System []*Rule

// ErrRewriteLimit is returned if normalization exceeds its step limit.
var ErrRewriteLimit = errors.New("rewrite step limit exceeded")

// Step applies the first matching rule at the root of t.
func (sys System) Step(t *term.Term) (*term.Term, bool) {
	for _, r := range sys {
		if u, ok := r.Apply(t); ok {
			return u, true
		}
	}
	return t, false
}

// BottomUp performs one parallel rewrite step: every node, children first,
// is rewritten at most once, by the first matching rule. It reports whether
// any rule applied.
func (sys System) BottomUp(t *term.Term) (*term.Term, bool) {
	changed := false
	var up func(*term.Term) *term.Term
	up = func(t *term.Term) *term.Term {
		u := term.In(term.Fmap(t.Out(), up))
		if v, ok := sys.Step(u); ok {
			changed = true
			return v
		}
		return u
	}
	return up(t), changed
}

// Normalize rewrites t innermost-first until no rule applies. At most limit
// rule applications are performed.
func (sys System) Normalize(t *term.Term, limit int) (*term.Term, error) {
	steps := 0
	var norm func(*term.Term) (*term.Term, error)
	norm = func(t *term.Term) (*term.Term, error) {
		f, err := term.FmapM(t.Out(), norm)
		if err != nil {
			return nil, err
		}
		u := term.In(f)
		v, ok := sys.Step(u)
		if !ok {
			return u, nil
		}
		if steps++; steps > limit {
			return nil, limitExceeded(limit, u)
		}
		return norm(v)
	}
	return norm(t)
}

func limitExceeded(limit int, t *term.Term) error {
	tracer().Errorf("rewriting did not terminate within %d steps at %s", limit, t)
	if gconf.GetBool("panic-on-rewrite-limit") {
		panic(fmt.Sprintf(`Rewriting exceeded its step limit.

Configuration flag panic-on-rewrite-limit is set to true. It is aimed at
helping to debug a non-terminating rewrite system. If you did not expect
this to panic, please unset panic-on-rewrite-limit to its default (false).

limit = %d, redex = %s`, limit, t))
	}
	return errors.Wrapf(ErrRewriteLimit, "limit %d", limit)
}
