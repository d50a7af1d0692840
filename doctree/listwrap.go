package doctree

import (
	"fmt"

	"github.com/storykeep/nodetree/node"
)

// Insert adds a tag element as a child of parentID at position at (an
// out-of-range position appends) and returns the element's identifier. An
// element without identifier is given a fresh one.
//
// Insert enforces the list-wrapping rules, synthesizing scaffolding where
// needed:
//
//	floating element into markdown    ul > li > element
//	list item into markdown           ul > li
//	other element into ul or ol       li > element
//
// The element and its scaffolding are added as one patch; undoing it
// removes them all.
func (d *Document) Insert(el *node.TagElement, parentID string, at int) (string, error) {
	if el == nil {
		return "", d.reject(OpAdd, fmt.Errorf("%w: insert nil element", ErrReferenceMissing))
	}
	parent, ok := d.nodes[parentID]
	if !ok {
		return "", d.reject(OpAdd, fmt.Errorf("%w: insert into %q", ErrReferenceMissing, parentID))
	}
	if parent.Type() != node.TypeMarkdown && parent.Type() != node.TypeTagElement {
		return "", d.reject(OpAdd, fmt.Errorf("%w: cannot insert %s into %s",
			ErrTypeMismatch, el.TagName, node.String(parent)))
	}
	c := node.Clone(el).(*node.TagElement)
	if c.ID == "" {
		c.ID = d.ids.NewID()
	}
	if d.Has(c.ID) {
		return "", d.reject(OpAdd, fmt.Errorf("%w: duplicate node id %q", ErrStructuralViolation, c.ID))
	}
	chain := d.scaffold(parent, c) // outermost first
	if err := checkPlacement(parent, chain[0]); err != nil {
		return "", d.reject(OpAdd, err)
	}
	r := d.record(OpAdd)
	for i, n := range chain {
		pos := -1
		if i == 0 {
			pos = at
		}
		r.put(n)
		r.link(n.ParentOf(), n.NodeID(), pos)
	}
	r.markPaneDirty(chain[0])
	r.signal(d.containerKey(parentID))
	r.commit()
	tracer().Debugf("inserted %s with %d wrapper(s)", node.String(c), len(chain)-1)
	return c.ID, nil
}

// InsertRelative inserts a tag element before or after the sibling refID.
// The wrapping rules of Insert apply with respect to refID's parent.
func (d *Document) InsertRelative(el *node.TagElement, refID string, pos Position) (string, error) {
	ref, ok := d.nodes[refID]
	if !ok {
		return "", d.reject(OpAdd, fmt.Errorf("%w: insert relative to %q", ErrReferenceMissing, refID))
	}
	parentID := ref.ParentOf()
	at := d.index.IndexOf(parentID, refID)
	if pos == After {
		at++
	}
	return d.Insert(el, parentID, at)
}

// scaffold returns the nodes to add for el under parent, outermost first,
// with parent links set.
func (d *Document) scaffold(parent node.Node, el *node.TagElement) []node.Node {
	ptag := node.TagOf(parent)
	var chain []*node.TagElement
	switch {
	case parent.Type() == node.TypeMarkdown && node.IsFloating(el.TagName):
		chain = []*node.TagElement{d.wrapper("ul"), d.wrapper("li"), el}
	case parent.Type() == node.TypeMarkdown && node.IsListItem(el.TagName):
		chain = []*node.TagElement{d.wrapper("ul"), el}
	case node.IsListContainer(ptag) && !node.IsListItem(el.TagName):
		chain = []*node.TagElement{d.wrapper("li"), el}
	default:
		chain = []*node.TagElement{el}
	}
	nodes := make([]node.Node, len(chain))
	parentID := parent.NodeID()
	for i, n := range chain {
		n.ParentID = parentID
		parentID = n.ID
		nodes[i] = n
	}
	return nodes
}

func (d *Document) wrapper(tag string) *node.TagElement {
	return &node.TagElement{Base: node.Base{ID: d.ids.NewID()}, TagName: tag}
}
