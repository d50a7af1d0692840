/*
Package tree maintains ordered parent-to-children relations between keys.

Overview

Document nodes are stored flat, keyed by their identifier. The shape of the
document lives in a separate child index: for every parent key it holds the
ordered list of child keys. The index knows nothing about payloads; it only
links and unlinks keys and walks them top-down or bottom-up.

The index is not safe for concurrent use. Owners serialize access.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

*/
package tree

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'nodetree.tree'.
func tracer() tracing.Trace {
	return tracing.Select("nodetree.tree")
}
