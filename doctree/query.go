package doctree

import (
	"github.com/storykeep/nodetree/node"
)

// ClosestAncestorOfType walks the parent links up from startID and returns
// the first proper ancestor of type t. Reaching the root without a match is
// a legitimate negative result.
func (d *Document) ClosestAncestorOfType(startID string, t node.Type) (string, bool) {
	return d.closestAncestor(startID, func(n node.Node) bool {
		return n.Type() == t
	})
}

// ClosestAncestorByTag returns the first proper ancestor of startID which
// is a tag element with one of the given tag names.
func (d *Document) ClosestAncestorByTag(startID string, tags ...string) (string, bool) {
	return d.closestAncestor(startID, func(n node.Node) bool {
		return hasTag(n, tags)
	})
}

func (d *Document) closestAncestor(startID string, match func(node.Node) bool) (string, bool) {
	n, ok := d.nodes[startID]
	seen := map[string]bool{startID: true}
	for ok && n.ParentOf() != "" {
		parentID := n.ParentOf()
		if seen[parentID] {
			tracer().Errorf("parent links of %q form a cycle", startID)
			return "", false
		}
		seen[parentID] = true
		if n, ok = d.nodes[parentID]; ok && match(n) {
			return parentID, true
		}
	}
	return "", false
}

// DescendantsOf returns copies of all nodes below id in post-order, deepest
// leaves first. id itself is not included.
func (d *Document) DescendantsOf(id string) []node.Node {
	var nodes []node.Node
	for _, key := range d.index.Descendants(id) {
		if n, ok := d.nodes[key]; ok {
			nodes = append(nodes, node.Clone(n))
		}
	}
	return nodes
}

// ClosestDescendantByTag returns the first node below startID in pre-order
// which is a tag element with one of the given tag names.
func (d *Document) ClosestDescendantByTag(startID string, tags ...string) (string, bool) {
	return d.index.FirstDescendantWith(startID, func(key string) bool {
		return hasTag(d.nodes[key], tags)
	})
}

// DescendantsOfType returns the identifiers of all nodes of type t below
// startID, in pre-order.
func (d *Document) DescendantsOfType(startID string, t node.Type) []string {
	return d.index.DescendantsWith(startID, func(key string) bool {
		n, ok := d.nodes[key]
		return ok && n.Type() == t
	})
}

func hasTag(n node.Node, tags []string) bool {
	tag := node.TagOf(n)
	if tag == "" {
		return false
	}
	for _, t := range tags {
		if t == tag {
			return true
		}
	}
	return false
}

// FindBySlug returns the identifier of the node of type t carrying slug.
func (d *Document) FindBySlug(t node.Type, slug string) (string, bool) {
	for _, id := range d.sortedIDs() {
		n := d.nodes[id]
		if n.Type() != t {
			continue
		}
		if s, ok := node.Slug(n); ok && s == slug {
			return id, true
		}
	}
	return "", false
}

// NodesOfType returns copies of all nodes of type t, sorted by identifier.
func (d *Document) NodesOfType(t node.Type) []node.Node {
	var nodes []node.Node
	for _, id := range d.sortedIDs() {
		if n := d.nodes[id]; n.Type() == t {
			nodes = append(nodes, node.Clone(n))
		}
	}
	return nodes
}

// ImpressionsForPanes returns the impressions attached to any of the given
// panes, sorted by identifier.
func (d *Document) ImpressionsForPanes(paneIDs ...string) []*node.Impression {
	panes := make(map[string]bool, len(paneIDs))
	for _, id := range paneIDs {
		panes[id] = true
	}
	var imps []*node.Impression
	for _, n := range d.NodesOfType(node.TypeImpression) {
		if panes[n.ParentOf()] {
			imps = append(imps, n.(*node.Impression))
		}
	}
	return imps
}

// PaneIDs returns the visual pane order of a page.
func (d *Document) PaneIDs(pageID string) []string {
	if sf, ok := d.nodes[pageID].(*node.StoryFragment); ok {
		return append([]string(nil), sf.PaneIDs...)
	}
	return nil
}
