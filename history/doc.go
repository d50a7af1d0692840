/*
Package history keeps a bounded undo/redo log.

Overview

A History is a linear list of entries with a cursor. Entries before the
cursor can be undone, entries after it redone. Pushing a new entry drops
the redo branch. When the history is full, the oldest entry is evicted.

History does not know what an entry means; the document engine stores
patches in it and interprets them.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

*/
package history

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'nodetree.history'.
func tracer() tracing.Trace {
	return tracing.Select("nodetree.history")
}
