package doctree

import "github.com/storykeep/nodetree/node"

// notifyTarget returns the notification key for a change of node n:
//
//	Root                                  root key
//	StoryFragment, Pane                   the node itself
//	TractStack, Menu, Belief, File, ...   root key
//	TagElement, Markdown, BgPane,
//	Impression                            the nearest pane, else root key
//
// The identifier of the root node is always mapped to the root key.
func (d *Document) notifyTarget(n node.Node) string {
	var target string
	switch n.Type() {
	case node.TypeStoryFragment, node.TypePane:
		target = n.NodeID()
	case node.TypeTagElement, node.TypeMarkdown, node.TypeBgPane, node.TypeImpression:
		target, _ = d.owningPane(n)
	}
	return d.keyFor(target)
}

// keyFor maps a node identifier to its notification key.
func (d *Document) keyFor(id string) string {
	if id == "" || id == d.rootID {
		return d.cfg.RootKey
	}
	return id
}

// owningPane finds the pane n lives in. n need not be stored yet, but its
// parent has to be.
func (d *Document) owningPane(n node.Node) (string, bool) {
	if n.Type() == node.TypePane {
		return n.NodeID(), true
	}
	parentID := n.ParentOf()
	if p, ok := d.nodes[parentID]; ok && p.Type() == node.TypePane {
		return parentID, true
	}
	return d.ClosestAncestorOfType(parentID, node.TypePane)
}

// cascadesDirt tells if a change of a node of type t dirties its pane.
func cascadesDirt(t node.Type) bool {
	switch t {
	case node.TypeTagElement, node.TypeMarkdown, node.TypeBgPane:
		return true
	}
	return false
}

// markPaneDirty sets the dirty flag of the pane owning n.
func (r *recorder) markPaneDirty(n node.Node) {
	paneID, ok := r.doc.owningPane(n)
	if !ok || paneID == n.NodeID() {
		return
	}
	pane := r.doc.nodes[paneID]
	if pane.Changed() {
		return
	}
	c := node.Clone(pane)
	node.BaseOf(c).IsChanged = true
	r.put(c)
}
