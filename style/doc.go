/*
Package style resolves responsive style properties for document nodes.

Overview

Styles in a page document are not stored as class strings but as tables of
property values, one table per breakpoint tier (mobile, tablet, desktop).
A markdown container holds a default table for every tag name it renders,
and each tag element may carry an override table of its own. Resolving the
effective style of an element for a tier merges the two, where an override
for a property always shadows the container default for that property at
that tier. Tiers never inherit from each other here; showing "inferred"
values from a smaller tier is a presentation concern.

Resolution builds on property groups linked to a parent group, much like a
CSS cascade: the override group of an element cascades to the default group
of its container.

Rendering tables into class strings is done elsewhere; this package only
hands out resolved property tables.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

*/
package style

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'nodetree.style'.
func tracer() tracing.Trace {
	return tracing.Select("nodetree.style")
}
