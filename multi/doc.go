/*
Package multi implements the indexed flavor of compositional data types.

Terms of indexed node-kinds carry an object-level index, e.g. the type of
an expression in a typed expression language. Constructors declare the
index they yield and the indices their child positions accept:

    b := sig.NewKindBuilder("Expr")
    b.Con("IConst").P("n", sig.Int).Yields("Int").End()
    b.Con("BConst").P("b", sig.Bool).Yields("Bool").End()
    b.Con("If").CI("c", "Bool").CI("t", "Int").CI("e", "Int").Yields("Int").End()

Indices are named by Go types, usually empty structs:

    type Int struct{}
    type Bool struct{}

A Term[I] is a closed term whose root has index I. Node checks indices on
construction, so ill-indexed compositions are rejected at the point where
they are built. Operations of package term and alg are mirrored for
indexed terms.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package multi

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'compdata.multi'.
func tracer() tracing.Trace {
	return tracing.Select("compdata.multi")
}
