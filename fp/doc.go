/*
Package fp provides functional-style walks and generic traversals over terms
and contexts.

Tree walks are presented as sequences: Traverse returns a TreeSeq, which
may be filtered and mapped lazily before its nodes are fetched:

    leaves := fp.Traverse(t, fp.TopDownDir).Where(fp.IsLeaf[term.Void]())
    for node, T := leaves.First(); !T.Done(); node = T.Next() {
        …
    }

Nodes of a walk know their parent and their position (a path of child
indices from the root), which allows replacing sub-terms by path.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package fp

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'compdata.fp'.
func tracer() tracing.Trace {
	return tracing.Select("compdata.fp")
}
