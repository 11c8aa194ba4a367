/*
Package derive generates Go source implementing generic capabilities for
node-kinds.

Node-kinds are declared in a registry (see package sig), either by builder
code or by LoadDecls, which reads declarations from Go source:

    //compdata:kind
    type Arith struct {
        Const struct{ N int }
        Pair  struct{ A, B compdata.Child }
    }

Every field of a declaration struct is a constructor, in declaration
order. Fields of type compdata.Child are child positions, all other fields
are payloads. Indexed node-kinds use struct tags:

    If struct {
        C    compdata.Child `cdt:"index=Bool"`
        T, E compdata.Child `cdt:"index=Int"`
    } `cdt:"yields=Int"`

A Deriver collects derivation requests for capabilities (Eq, Ord, Show,
Functor, SmartCons) and generates a Go file containing, per node-kind:

    ▪︎ builder code re-creating the node-kind and registering it with sig.Global
    ▪︎ variables for the constructors
    ▪︎ instances for the requested capabilities, registered with term.Register
    ▪︎ smart constructors I<Con> and matchers Match<Con> (SmartCons)
    ▪︎ a mapping function Map<Kind> (Functor)

Capabilities are generated by enumerating the constructors in declaration
order: one clause per constructor for equality, show, and mapping, and one
clause per pair of constructors for ordering. Clauses for pairs of
different constructors decide by declaration position only.

Requests for unknown node-kinds and requests for capabilities already
derived for a node-kind in the current instance scope are errors, and no
code is generated for the request.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package derive

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'compdata.derive'.
func tracer() tracing.Trace {
	return tracing.Select("compdata.derive")
}
