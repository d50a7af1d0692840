/*
Package doctree is an in-memory engine for page documents.

Overview

A Document holds every node of a page document in a flat node store and
keeps the document's shape in a separate child index. Both are changed only
through the mutation API (Add, Modify, Delete, Move and friends), which
keeps them in lockstep, enforces the list-wrapping rules for floating
elements, records a reversible patch per mutation and signals the
notification key of the highest node whose rendering is affected.

	doc := doctree.New()
	doc.Add(&node.Root{Base: node.Base{ID: "root"}})
	doc.Add(&node.StoryFragment{Base: node.Base{ID: "home", ParentID: "root"}})
	sub := doc.Subscribe("home", func(key string) { ... })
	defer sub.Unsubscribe()

Queries hand out clones. To change a node, clone it (or take the one
returned by Get), edit the copy and pass it to Modify.

Errors

Mutations fail closed: a missing node, a type mismatch or a structural
violation is logged and returned as a wrapped sentinel error, and the
document is left untouched. Callers may ignore these errors.

History

Every mutation which changes anything pushes a Patch onto a bounded
history. Patches are data only: lists of commands holding the before- and
after-images of every node, child list and root pointer the mutation
touched. Undo and Redo replay them and re-signal the notifications of the
original mutation.

A Document is not safe for concurrent use. It is owned by a single editing
session.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

*/
package doctree

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'nodetree.doctree'.
func tracer() tracing.Trace {
	return tracing.Select("nodetree.doctree")
}
