/*
Package term implements terms and contexts over compositions of node-kinds.

A term is built from layers. A layer is one node of a tree, with its child
positions filled by values of some type A. For a node-kind functor F it is a
value of type F<A>. Layers come in three variants:

    *Node[A]   a node of an atomic node-kind (see package sig)
    *Inj[A]    a layer of a sum F :+: G, tagged Left or Right
    *Ann[A]    a layer of an annotated node-kind F :&: P, carrying a payload

A context Cxt[A] is either a hole, carrying a value of type A, or a layer
whose children are themselves contexts. Terms are contexts without holes.

Signatures describe which layers a term may consist of. A node-kind is a
signature, and so are sums (NewSum) and annotated signatures (NewAnnotated).
Injection tags a layer for a signature, projection un-tags it.

Generic operations (equality, ordering, show) are defined once per node-kind
as capabilities working on a single layer, and lifted to sums, annotations,
and whole contexts by this package. Capabilities are registered per
node-kind; package derive generates specialized implementations, a generic
implementation driven by the declaration metadata is the fallback.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package term

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'compdata.term'.
func tracer() tracing.Trace {
	return tracing.Select("compdata.term")
}
