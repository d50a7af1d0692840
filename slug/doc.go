/*
Package slug validates the URL slugs of pages and panes.

Overview

A slug is a lowercase, hyphen-separated word list of 3 to 75 characters.
Slugs of pages and panes share one namespace and must be unique within a
document. Some slugs are reserved for application routes, and the slug of
the home page is fixed.

Validate is a pure function over a flat node list; it may be called at any
time and changes nothing.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

*/
package slug

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'nodetree.slug'.
func tracer() tracing.Trace {
	return tracing.Select("nodetree.slug")
}
