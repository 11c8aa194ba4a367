/*
Package rewrite implements term rewriting systems on top of compositional
data types.

A rewrite rule consists of a left-hand side pattern and a right-hand side,
both contexts whose holes are variables:

    // Neg (Neg x) → x
    r := rewrite.MustRule("double-neg",
        term.MustMake[rewrite.Var](expr, cNeg, term.MustMake[rewrite.Var](expr, cNeg, rewrite.V("x"))),
        rewrite.V("x"))

Patterns match on constructors and payloads; sum tags and annotations of
the subject term are ignored. A variable occurring more than once in a
pattern requires structurally equal sub-terms.

A System is an ordered list of rules. Normalize rewrites innermost-first
until no rule applies. As termination cannot be decided in general,
normalization is bounded by a step limit. Exceeding the limit is reported
as an error, or results in a panic if configuration flag
panic-on-rewrite-limit is set.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package rewrite

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'compdata.rewrite'.
func tracer() tracing.Trace {
	return tracing.Select("compdata.rewrite")
}
