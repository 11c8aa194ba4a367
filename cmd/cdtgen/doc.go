/*
Command cdtgen generates Go code for node-kinds declared in Go source.

A node-kind is declared as a struct type carrying the kind directive. Every
field of the struct is a constructor; its fields are the constructor's
children (of type compdata.Child) or payloads (any other type).

	//compdata:kind
	type Arith struct {
		Const struct{ N int }
		Add   struct{ X, Y compdata.Child }
	}

Usage:

	cdtgen gen  arith.go [-o arith_cdt.go] [--derive eq,ord,show,functor,cons] [--kind Arith]
	cdtgen list arith.go

gen writes a registration of every node-kind together with the derived
capabilities. list prints the declared node-kinds as a tree.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package main

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'compdata.cdtgen'
func tracer() tracing.Trace {
	return tracing.Select("compdata.cdtgen")
}
