package node

import (
	"strings"

	"golang.org/x/net/html/atom"
)

// TagText is the pseudo tag name of a plain text run.
const TagText = "text"

// Widget tags are rendered by code hooks; they float like images.
var widgetTags = map[string]bool{
	"yt":       true,
	"bunny":    true,
	"belief":   true,
	"signup":   true,
	"identify": true,
	"toggle":   true,
}

func tagAtom(tag string) atom.Atom {
	return atom.Lookup([]byte(strings.ToLower(strings.TrimSpace(tag))))
}

// IsListContainer is true for ul and ol.
func IsListContainer(tag string) bool {
	a := tagAtom(tag)
	return a == atom.Ul || a == atom.Ol
}

// IsListItem is true for li.
func IsListItem(tag string) bool {
	return tagAtom(tag) == atom.Li
}

// IsFloating is true for elements which may not sit directly inside a
// markdown container and have to be wrapped in a list item: images, code
// blocks and widgets.
func IsFloating(tag string) bool {
	switch tagAtom(tag) {
	case atom.Img, atom.Code:
		return true
	}
	return widgetTags[strings.ToLower(tag)]
}

// IsText is true for plain text runs.
func IsText(tag string) bool {
	return tag == TagText
}

// IsLink is true for a and button.
func IsLink(tag string) bool {
	a := tagAtom(tag)
	return a == atom.A || a == atom.Button
}

// IsBlock is true for tags which start a new block, e.g. paragraphs and
// headings.
func IsBlock(tag string) bool {
	switch tagAtom(tag) {
	case atom.P, atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6,
		atom.Ul, atom.Ol, atom.Li, atom.Blockquote, atom.Aside:
		return true
	}
	return false
}

// TagOf returns the tag name of a tag element, or the empty string for
// other node types.
func TagOf(n Node) string {
	if el, ok := n.(*TagElement); ok {
		return el.TagName
	}
	return ""
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
