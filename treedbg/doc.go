/*
Package treedbg implements helpers to debug a page document.

Print renders the node tree as indented text, ToGraphViz as a GraphViz
digraph showing the effective styles of tag elements for a breakpoint tier.

______________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

*/
package treedbg

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'nodetree.treedbg'.
func tracer() tracing.Trace {
	return tracing.Select("nodetree.treedbg")
}
