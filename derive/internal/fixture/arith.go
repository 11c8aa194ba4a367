/*
Package fixture holds a node-kind declaration together with the code cdtgen
derives for it. Tests of package derive check that arith_cdt.go is what the
generator currently emits; tests of this package exercise the derived code.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package fixture

import "github.com/npillmayer/compdata"

//go:generate go run github.com/npillmayer/compdata/cmd/cdtgen gen arith.go --derive all

// Arith is a tiny expression language with let-bindings.
//
//compdata:kind
type Arith struct {
	Const struct{ N int }
	Pair  struct{ A, B compdata.Child }
	Var   struct{ Name string }
	Let   struct {
		Name string
		Bind compdata.Child
		Body compdata.Child
	}
}
