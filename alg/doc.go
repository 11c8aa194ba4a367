/*
Package alg implements algebras, catamorphisms and term homomorphisms.

An algebra Alg[R] collapses one layer, whose children have already been
collapsed into values of type R, into a single R. Cata folds a whole term
bottom-up with an algebra.

A term homomorphism maps one layer of a source signature to a context over
the target signature. The holes of this context stand for the children of
the rewritten layer. As homomorphisms must not inspect children, they see
layers with child positions of type Child, i.e. the child indices only:

    // Neg x  ⟶  Add x x
    double := func(f term.Functor[alg.Child]) *term.Cxt[alg.Child] {
        if n, ok := term.Project(opKind, f); ok && n.Con == cNeg {
            return term.MustMake[alg.Child](sig, cAdd, alg.Kid(0), alg.Kid(0))
        }
        return alg.Rebuild(f)
    }

Homomorphisms compose with each other (ComposeHoms) and with algebras
(ComposeAlgHom), which allows fusing a rewrite and a fold into one pass.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package alg

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'compdata.alg'.
func tracer() tracing.Trace {
	return tracing.Select("compdata.alg")
}
