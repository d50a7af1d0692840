package doctree

import (
	"fmt"

	"github.com/storykeep/nodetree/node"
)

// Position of a node relative to a sibling.
type Position uint8

// Positions for Move, MoveStep and InsertRelative.
const (
	Before Position = iota
	After
)

func (pos Position) String() string {
	if pos == After {
		return "after"
	}
	return "before"
}

// Move re-parents node id to sit before or after targetID. Both nodes must
// be of the same type, and the list-wrapping rules hold at the new place.
// Moving a pane keeps the pane lists of the old and the new page in
// lockstep with their children. A list or list item left without
// significant children is removed as Delete would remove it.
func (d *Document) Move(id, targetID string, pos Position) error {
	n, ok := d.nodes[id]
	if !ok {
		return d.reject(OpReplace, fmt.Errorf("%w: move %q", ErrReferenceMissing, id))
	}
	target, ok := d.nodes[targetID]
	if !ok {
		return d.reject(OpReplace, fmt.Errorf("%w: move target %q", ErrReferenceMissing, targetID))
	}
	if n.Type() != target.Type() {
		return d.reject(OpReplace, fmt.Errorf("%w: cannot move %s next to %s",
			ErrTypeMismatch, node.String(n), node.String(target)))
	}
	newParentID := target.ParentOf()
	switch {
	case id == targetID:
		return d.reject(OpReplace, fmt.Errorf("%w: cannot move %s next to itself", ErrStructuralViolation, node.String(n)))
	case newParentID == "" || id == d.rootID:
		return d.reject(OpReplace, fmt.Errorf("%w: cannot move next to or away from the root", ErrStructuralViolation))
	case id == newParentID || d.isAncestor(id, newParentID):
		return d.reject(OpReplace, fmt.Errorf("%w: cannot move %s into its own subtree", ErrStructuralViolation, node.String(n)))
	}
	if err := checkPlacement(d.nodes[newParentID], n); err != nil {
		return d.reject(OpReplace, err)
	}
	oldParentID := n.ParentOf()
	if oldParentID == newParentID && d.inPlace(id, targetID, pos) {
		tracer().Debugf("%s already is %s %q", node.String(n), pos, targetID)
		return nil
	}
	oldKey := d.containerKey(oldParentID)
	r := d.record(OpReplace)
	r.markPaneDirty(n)
	r.unlink(oldParentID, id)
	at := d.index.IndexOf(newParentID, targetID)
	if pos == After {
		at++
	}
	r.link(newParentID, id, at)
	if oldParentID != newParentID {
		c := node.Clone(n)
		node.BaseOf(c).ParentID = newParentID
		r.put(c)
		r.markPaneDirty(c)
		r.pruneEmptied(oldParentID, id)
	}
	if n.Type() == node.TypePane {
		r.syncPanes(oldParentID, false, true)
		r.syncPanes(newParentID, false, true)
	}
	r.signal(oldKey)
	r.signal(d.containerKey(newParentID))
	r.commit()
	return nil
}

// inPlace is true if moving id next to its sibling targetID would not
// change the order of children.
func (d *Document) inPlace(id, targetID string, pos Position) bool {
	parentID := d.nodes[id].ParentOf()
	i, j := d.index.IndexOf(parentID, id), d.index.IndexOf(parentID, targetID)
	if pos == Before {
		return i == j-1
	}
	return i == j+1
}

// MoveStep moves a node one step among its siblings of the same type, e.g.
// a pane up or down on its page. A node already at the edge stays put.
func (d *Document) MoveStep(id string, dir Position) error {
	n, ok := d.nodes[id]
	if !ok {
		return d.reject(OpReplace, fmt.Errorf("%w: move %q", ErrReferenceMissing, id))
	}
	siblings := d.index.Children(n.ParentOf())
	i := d.index.IndexOf(n.ParentOf(), id)
	step := 1
	if dir == Before {
		step = -1
	}
	for j := i + step; i >= 0 && j >= 0 && j < len(siblings); j += step {
		if d.TypeOf(siblings[j]) == n.Type() {
			return d.Move(id, siblings[j], dir)
		}
	}
	tracer().Debugf("%s cannot move further %s", node.String(n), dir)
	return nil
}

// isAncestor is true if ancestorID is a proper ancestor of id.
func (d *Document) isAncestor(ancestorID, id string) bool {
	seen := make(map[string]bool)
	for n, ok := d.nodes[id]; ok && !seen[n.NodeID()]; n, ok = d.nodes[n.ParentOf()] {
		seen[n.NodeID()] = true
		if n.ParentOf() == ancestorID {
			return true
		}
	}
	return false
}

// pruneEmptied removes the list or list item id if it has no significant
// children left, following the delete redirection rules upward. The subtree
// holding kept is never removed.
func (r *recorder) pruneEmptied(id, kept string) {
	d := r.doc
	tag := node.TagOf(d.nodes[id])
	if !node.IsListContainer(tag) && !node.IsListItem(tag) || d.significantChildren(id) > 0 {
		return
	}
	target := d.deletionTarget(id)
	if target == kept || d.isAncestor(target, kept) {
		return
	}
	parentID := d.nodes[target].ParentOf()
	tracer().Debugf("removing emptied %s", node.String(d.nodes[target]))
	for _, desc := range d.index.Descendants(target) {
		r.drop(desc)
	}
	r.drop(target)
	r.unlink(parentID, target)
	r.signal(d.keyFor(parentID))
}
