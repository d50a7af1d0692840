/*
Package node defines the records a page document is made of.

Overview

A document is a tree of nodes: a root, pages (story fragments) composed of
panes, panes composed of markdown containers and decorative backgrounds,
and markdown containers composed of tag elements (paragraphs, headings,
lists, images, links, widgets). Next to these structural nodes live
metadata nodes such as impressions, menus, beliefs, files and resources.

Node is a closed sum type. Every variant embeds Base, which carries the
identity of a node, a reference to its parent and a dirty flag. Client code
discriminates variants with a type switch or by Type(); the set of variants
cannot be extended outside this package.

Nodes are plain values. The document engine owns the stored copies and
never mutates them in place: an edit is a Clone, a change to the clone, and
a replace. Equal compares nodes deeply, ignoring the dirty flag.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

*/
package node

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'nodetree.node'.
func tracer() tracing.Trace {
	return tracing.Select("nodetree.node")
}
