/*
Package clickgate tells single from double activations of an element.

Overview

An editor reacts differently to a click (select an element) and a double
click (start editing its copy). A Gate delays the single-click action by a
short window. A second click inside the window cancels the pending action
and runs the double-click action instead. The pending action is the only
deferred work of an editing session; it can be cancelled, e.g. when the
element goes away.

A Gate is safe for concurrent use. Actions run on the scheduler's goroutine
for single clicks and on the caller's goroutine for double clicks.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

*/
package clickgate

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'nodetree.clickgate'.
func tracer() tracing.Trace {
	return tracing.Select("nodetree.clickgate")
}
