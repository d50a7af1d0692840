/*
Package notify delivers change signals to subscribers keyed by node id.

Overview

Views of a document subscribe to the key of the node they render. After a
mutation the document engine notifies the key of the highest node whose
rendering is affected; every listener of that key is called synchronously,
in subscription order. The root of a document is always signalled under
RootKey, never under its own identifier.

Listeners must not subscribe or unsubscribe other listeners of the key
being notified from within the callback; they may do so for other keys.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

*/
package notify

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'nodetree.notify'.
func tracer() tracing.Trace {
	return tracing.Select("nodetree.notify")
}
