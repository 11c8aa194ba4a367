/*
Package compdata is a toolbox for compositional data types.

Compositional data types are recursive tree structures (abstract syntax
trees and similar term graphs) whose set of node variants may be extended
modularly. Node-kinds are declared independently, composed with a sum
combinator, optionally annotated with a payload (source positions being the
usual example), and generic operations like equality, ordering, show,
catamorphisms and term homomorphisms work on every composition of them.

Package structure is as follows:

■ sig: Package sig lets clients declare node-kinds: named, ordered lists of
constructors, each with ordered fields. Fields are either child positions or
opaque payloads.

■ term: Package term implements terms and contexts over node-kinds, the sum
and annotation combinators, injection and projection, and the generic
structural operations.

■ alg: Package alg implements catamorphisms, term homomorphisms and their
composition.

■ multi: Package multi implements an indexed flavor of terms, where every
term carries the object-level type of the expression it represents.

■ derive: Package derive generates Go code for node-kinds, in the spirit of
go:generate tools. cmd/cdtgen is its command line front end.

■ fp and rewrite: tree traversals and term rewriting systems on top of terms.

The base package contains data types which are used throughout all the other packages.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package compdata
