package doctree

import (
	"fmt"
	"slices"

	"github.com/storykeep/nodetree/node"
)

// Add registers a single node. See AddNodes.
func (d *Document) Add(n node.Node) error {
	return d.AddNodes(n)
}

// AddNodes registers a batch of nodes as one patch.
//
// A node without a parent becomes the root, if the document has none yet.
// Every other node is appended to its parent's children, in batch order;
// the parent may be part of the batch. A page lists its panes explicitly:
// every pane named in a page's pane list is re-parented to that page, which
// lets generators build subtrees against placeholder parents, and the
// page's children are ordered by the list.
//
// Nothing is written if any node of the batch is invalid.
func (d *Document) AddNodes(nodes ...node.Node) error {
	if len(nodes) == 0 {
		return nil
	}
	parents, err := d.validateBatch(nodes)
	if err != nil {
		return d.reject(OpAdd, err)
	}
	r := d.record(OpAdd)
	inBatch := make(map[string]bool, len(nodes))
	for _, n := range nodes {
		inBatch[n.NodeID()] = true
	}
	var pages []string
	for _, n := range nodes {
		id := n.NodeID()
		c := node.Clone(n)
		node.BaseOf(c).ParentID = parents[id]
		if parents[id] == "" {
			r.setRoot(id)
			r.put(c)
			tracer().Debugf("root is %s", node.String(c))
			continue
		}
		r.put(c)
		r.link(parents[id], id, -1)
		if c.Type() == node.TypeStoryFragment {
			pages = append(pages, id)
		}
	}
	// panes adopted from another parent
	for _, n := range nodes {
		sf, ok := n.(*node.StoryFragment)
		if !ok {
			continue
		}
		for _, paneID := range sf.PaneIDs {
			if inBatch[paneID] {
				continue
			}
			if err := r.adopt(sf.ID, paneID); err != nil {
				return d.reject(OpAdd, err) // cannot happen after validation
			}
		}
	}
	for _, id := range pages {
		r.syncPanes(id, true, false)
	}
	for _, n := range nodes {
		id := n.NodeID()
		parentID := parents[id]
		if parentID == "" || inBatch[parentID] {
			continue
		}
		if p := d.nodes[parentID]; p.Type() == node.TypeStoryFragment && n.Type() == node.TypePane {
			r.syncPanes(parentID, false, true)
		}
		r.markPaneDirty(d.nodes[id])
		r.signal(d.containerKey(parentID))
	}
	if d.rootID != "" && inBatch[d.rootID] {
		r.signal(d.cfg.RootKey)
	}
	r.commit()
	return nil
}

// validateBatch checks a batch of nodes against the document and returns
// the effective parent of every node.
func (d *Document) validateBatch(nodes []node.Node) (map[string]string, error) {
	byID := make(map[string]node.Node, len(nodes))
	parents := make(map[string]string, len(nodes))
	for _, n := range nodes {
		if n == nil || n.NodeID() == "" {
			return nil, fmt.Errorf("%w: node without identity", ErrStructuralViolation)
		}
		id := n.NodeID()
		if _, dup := byID[id]; dup || d.Has(id) {
			return nil, fmt.Errorf("%w: duplicate node id %q", ErrStructuralViolation, id)
		}
		byID[id] = n
		parents[id] = n.ParentOf()
	}
	for _, n := range nodes {
		sf, ok := n.(*node.StoryFragment)
		if !ok {
			continue
		}
		for _, paneID := range sf.PaneIDs {
			pane, ok := byID[paneID]
			if !ok {
				pane, ok = d.nodes[paneID]
			}
			if !ok {
				return nil, fmt.Errorf("%w: pane %q of %s", ErrReferenceMissing, paneID, node.String(sf))
			}
			if pane.Type() != node.TypePane {
				return nil, fmt.Errorf("%w: %s listed as pane of %s", ErrTypeMismatch, node.String(pane), node.String(sf))
			}
			if _, ok := byID[paneID]; ok {
				parents[paneID] = sf.ID
			}
		}
	}
	hasRoot := d.rootID != ""
	for _, n := range nodes {
		id := n.NodeID()
		parentID := parents[id]
		if parentID == "" {
			if hasRoot {
				return nil, fmt.Errorf("%w: second root %s", ErrStructuralViolation, node.String(n))
			}
			hasRoot = true
			continue
		}
		parent, ok := byID[parentID]
		if !ok {
			parent, ok = d.nodes[parentID]
		}
		if !ok {
			return nil, fmt.Errorf("%w: parent %q of %s", ErrReferenceMissing, parentID, node.String(n))
		}
		if parentID == id {
			return nil, fmt.Errorf("%w: %s is its own parent", ErrStructuralViolation, node.String(n))
		}
		if err := checkPlacement(parent, n); err != nil {
			return nil, err
		}
	}
	ids := make([]string, len(nodes))
	for i, n := range nodes {
		ids[i] = n.NodeID()
	}
	if id, ok := parentCycle(ids, parents); ok {
		return nil, fmt.Errorf("%w: parent chain of %s does not reach the document",
			ErrStructuralViolation, node.String(byID[id]))
	}
	if d.rootID == "" && len(d.nodes) > 0 {
		return nil, ErrRootLost
	}
	return parents, nil
}

// parentCycle follows the parent links of every batch node until they leave
// the batch. It returns a node whose chain runs into a loop instead.
func parentCycle(ids []string, parents map[string]string) (string, bool) {
	anchored := make(map[string]bool, len(ids))
	for _, id := range ids {
		var chain []string
		seen := make(map[string]bool)
		for cur := id; ; cur = parents[cur] {
			if _, inBatch := parents[cur]; !inBatch || anchored[cur] {
				break
			}
			if seen[cur] {
				return id, true
			}
			seen[cur] = true
			chain = append(chain, cur)
		}
		for _, c := range chain {
			anchored[c] = true
		}
	}
	return "", false
}

// checkPlacement enforces the list-wrapping rules on a single parent-child
// pair: floating elements never sit directly in a markdown container, list
// items sit in lists only, and lists hold nothing but list items.
func checkPlacement(parent, child node.Node) error {
	ptag, tag := node.TagOf(parent), node.TagOf(child)
	switch {
	case parent.Type() == node.TypeMarkdown && node.IsFloating(tag):
		return fmt.Errorf("%w: %s must be wrapped in a list item of %s",
			ErrStructuralViolation, node.String(child), node.String(parent))
	case node.IsListItem(tag) && !node.IsListContainer(ptag):
		return fmt.Errorf("%w: list item %s outside of a list, in %s",
			ErrStructuralViolation, node.String(child), node.String(parent))
	case node.IsListContainer(ptag) && !node.IsListItem(tag):
		return fmt.Errorf("%w: %s holds list items only, not %s",
			ErrStructuralViolation, node.String(parent), node.String(child))
	}
	return nil
}

// adopt re-parents a stored pane to a page.
func (r *recorder) adopt(pageID, paneID string) error {
	pane, ok := r.doc.nodes[paneID]
	if !ok {
		return fmt.Errorf("%w: pane %q", ErrReferenceMissing, paneID)
	}
	oldParent := pane.ParentOf()
	if oldParent == pageID {
		return nil
	}
	r.unlink(oldParent, paneID)
	c := node.Clone(pane)
	node.BaseOf(c).ParentID = pageID
	r.put(c)
	r.link(pageID, paneID, -1)
	r.syncPanes(oldParent, false, true)
	r.signal(r.doc.containerKey(oldParent))
	return nil
}

// syncPanes keeps the pane list of a page and the page's children in
// lockstep. With reorder set, the children are first sorted to follow the
// pane list; panes not listed keep their relative order behind the listed
// ones. Then the pane list is rebuilt from the children.
func (r *recorder) syncPanes(pageID string, reorder, markDirty bool) {
	sf, ok := r.doc.nodes[pageID].(*node.StoryFragment)
	if !ok {
		return
	}
	children := r.doc.index.Children(pageID)
	if reorder {
		ordered := make([]string, 0, len(children))
		for _, id := range sf.PaneIDs {
			if slices.Contains(children, id) && !slices.Contains(ordered, id) {
				ordered = append(ordered, id)
			}
		}
		for _, id := range children {
			if !slices.Contains(ordered, id) {
				ordered = append(ordered, id)
			}
		}
		if !slices.Equal(ordered, children) {
			r.setChildren(pageID, ordered)
			children = ordered
		}
	}
	var paneIDs []string
	for _, id := range children {
		if n, ok := r.doc.nodes[id]; ok && n.Type() == node.TypePane {
			paneIDs = append(paneIDs, id)
		}
	}
	if slices.Equal(paneIDs, sf.PaneIDs) {
		return
	}
	c := node.Clone(sf).(*node.StoryFragment)
	c.PaneIDs = paneIDs
	if markDirty {
		c.IsChanged = true
	}
	r.put(c)
	r.signal(r.doc.keyFor(pageID))
}

// containerKey is the notification key signalled when the children of
// parentID change.
func (d *Document) containerKey(parentID string) string {
	if p, ok := d.nodes[parentID]; ok {
		return d.notifyTarget(p)
	}
	return d.cfg.RootKey
}

// Modify replaces stored nodes by the given ones, matched by identifier.
// Nodes deep-equal to their stored copy, ignoring the dirty flag, are
// skipped. Modify never changes structure: parent links and pane lists of
// the incoming nodes are ignored.
//
// A real change sets the node's dirty flag; changes to content of a pane
// also dirty the pane. All changes go into one patch.
func (d *Document) Modify(nodes ...node.Node) error {
	for _, n := range nodes {
		if n == nil {
			return d.reject(OpReplace, fmt.Errorf("%w: modify nil node", ErrReferenceMissing))
		}
		stored, ok := d.nodes[n.NodeID()]
		if !ok {
			return d.reject(OpReplace, fmt.Errorf("%w: modify %s", ErrReferenceMissing, node.String(n)))
		}
		if stored.Type() != n.Type() {
			return d.reject(OpReplace, fmt.Errorf("%w: cannot replace %s by %s",
				ErrTypeMismatch, node.String(stored), node.String(n)))
		}
	}
	r := d.record(OpReplace)
	for _, n := range nodes {
		stored := d.nodes[n.NodeID()]
		c := node.Clone(n)
		node.BaseOf(c).ParentID = stored.ParentOf()
		if sf, ok := c.(*node.StoryFragment); ok {
			sf.PaneIDs = append([]string(nil), stored.(*node.StoryFragment).PaneIDs...)
		}
		if node.Equal(stored, c) {
			tracer().Debugf("modify: %s unchanged", node.String(c))
			continue
		}
		node.BaseOf(c).IsChanged = true
		r.put(c)
		if cascadesDirt(c.Type()) {
			r.markPaneDirty(c)
		}
		r.signal(d.notifyTarget(c))
	}
	r.commit()
	return nil
}

// Delete removes a node together with its subtree.
//
// Deleting the only list item of a list deletes the list. Deleting the
// only significant child of a list item deletes the list item, which may
// in turn delete the list. Whitespace-only text is not significant.
func (d *Document) Delete(id string) error {
	if _, ok := d.nodes[id]; !ok {
		return d.reject(OpRemove, fmt.Errorf("%w: delete %q", ErrReferenceMissing, id))
	}
	target := d.deletionTarget(id)
	if target != id {
		tracer().Debugf("delete %q redirected to %q", id, target)
	}
	n := d.nodes[target]
	parentID := n.ParentOf()
	r := d.record(OpRemove)
	if cascadesDirt(n.Type()) || n.Type() == node.TypeImpression {
		r.markPaneDirty(n)
	}
	for _, desc := range d.index.Descendants(target) {
		r.drop(desc)
	}
	r.drop(target)
	if target == d.rootID {
		r.setRoot("")
		r.signal(d.cfg.RootKey)
		r.commit()
		return nil
	}
	r.unlink(parentID, target)
	r.syncPanes(parentID, false, true)
	r.signal(d.keyFor(parentID))
	r.commit()
	return nil
}

// deletionTarget applies the list redirection rules.
func (d *Document) deletionTarget(id string) string {
	for {
		n := d.nodes[id]
		parentID := n.ParentOf()
		parent, ok := d.nodes[parentID]
		if !ok {
			return id
		}
		tag, ptag := node.TagOf(n), node.TagOf(parent)
		switch {
		case node.IsListItem(tag) && node.IsListContainer(ptag) && d.significantChildren(parentID) == 1:
			id = parentID
		// any significant child counts, not only floating elements
		case node.IsListItem(ptag) && isSignificant(n) && d.significantChildren(parentID) == 1:
			id = parentID
		default:
			return id
		}
	}
}

func (d *Document) significantChildren(parentID string) int {
	count := 0
	for _, id := range d.index.Children(parentID) {
		if isSignificant(d.nodes[id]) {
			count++
		}
	}
	return count
}

func isSignificant(n node.Node) bool {
	if el, ok := n.(*node.TagElement); ok {
		return el.IsSignificant()
	}
	return n != nil
}
