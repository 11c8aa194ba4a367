/*
Package sig lets clients declare node-kinds.

A node-kind is the shape of a tree node, parameterized over the type of its
children: a name plus a closed, ordered list of constructors, each of which
has an ordered list of fields. A field is either a child position (a
recursive position holding a sub-term) or an opaque payload of some
PayloadType.

Node-kinds are declared with a builder, in a style reminiscent of grammar
builders:

    b := sig.NewKindBuilder("Arith")
    b.Con("Const").P("n", sig.Int).End()   // Const(n: int)
    b.Con("Pair").C("a").C("b").End()      // Pair(a, b)
    arith, err := b.Kind()

The order of constructors is load-bearing: generic ordering of terms
considers earlier-declared constructors to be less than later ones.

Declared kinds are usually registered in a Registry, which is what the code
generator of package derive consults.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package sig

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'compdata.sig'.
func tracer() tracing.Trace {
	return tracing.Select("compdata.sig")
}
