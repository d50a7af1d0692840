package doctree

import (
	"fmt"

	"github.com/storykeep/nodetree/node"
)

// AddSubtree inserts a generated subtree, e.g. from a pane template or a
// markdown parser, below parentID at position at (out-of-range appends).
//
// The nodes are given fresh identifiers. Exactly one node of the batch has
// to have a parent outside the batch; it becomes the subtree's root and is
// linked to parentID, whatever placeholder parent it carries. Parent links
// and pane lists inside the batch are rewritten to the fresh identifiers.
// A pane inserted into a page also enters the page's pane list at the
// matching position.
//
// AddSubtree returns the new identifier of the subtree's root.
func (d *Document) AddSubtree(parentID string, nodes []node.Node, at int) (string, error) {
	parent, ok := d.nodes[parentID]
	if !ok {
		return "", d.reject(OpAdd, fmt.Errorf("%w: subtree parent %q", ErrReferenceMissing, parentID))
	}
	if len(nodes) == 0 {
		return "", nil
	}
	fresh := make(map[string]string, len(nodes))
	for _, n := range nodes {
		if n == nil || n.NodeID() == "" {
			return "", d.reject(OpAdd, fmt.Errorf("%w: subtree node without identity", ErrStructuralViolation))
		}
		if _, dup := fresh[n.NodeID()]; dup {
			return "", d.reject(OpAdd, fmt.Errorf("%w: duplicate subtree id %q", ErrStructuralViolation, n.NodeID()))
		}
		fresh[n.NodeID()] = d.ids.NewID()
	}
	var top node.Node
	copies := make([]node.Node, len(nodes))
	for i, n := range nodes {
		c := node.Clone(n)
		b := node.BaseOf(c)
		b.ID = fresh[n.NodeID()]
		b.IsChanged = true
		if p, ok := fresh[n.ParentOf()]; ok {
			b.ParentID = p
		} else {
			if top != nil {
				return "", d.reject(OpAdd, fmt.Errorf("%w: subtree has more than one root (%s, %s)",
					ErrStructuralViolation, node.String(top), node.String(n)))
			}
			b.ParentID = parentID
			top = c
		}
		if sf, ok := c.(*node.StoryFragment); ok {
			paneIDs := make([]string, 0, len(sf.PaneIDs))
			for _, id := range sf.PaneIDs {
				p, ok := fresh[id]
				if !ok {
					return "", d.reject(OpAdd, fmt.Errorf("%w: pane %q outside of subtree", ErrReferenceMissing, id))
				}
				paneIDs = append(paneIDs, p)
			}
			sf.PaneIDs = paneIDs
		}
		copies[i] = c
	}
	if top == nil {
		return "", d.reject(OpAdd, fmt.Errorf("%w: subtree without root", ErrStructuralViolation))
	}
	byID := make(map[string]node.Node, len(copies))
	ids := make([]string, len(copies))
	parents := make(map[string]string, len(copies))
	for i, c := range copies {
		byID[c.NodeID()] = c
		ids[i] = c.NodeID()
		parents[c.NodeID()] = c.ParentOf()
	}
	if id, ok := parentCycle(ids, parents); ok {
		return "", d.reject(OpAdd, fmt.Errorf("%w: subtree node %s is not below the subtree root",
			ErrStructuralViolation, node.String(byID[id])))
	}
	for _, c := range copies {
		p := parent
		if c != top {
			p = byID[c.ParentOf()]
		}
		if err := checkPlacement(p, c); err != nil {
			return "", d.reject(OpAdd, err)
		}
	}
	r := d.record(OpAdd)
	for _, c := range copies {
		r.put(c)
		pos := -1
		if c == top {
			pos = at
		}
		r.link(c.ParentOf(), c.NodeID(), pos)
	}
	for _, c := range copies {
		if c.Type() == node.TypeStoryFragment {
			r.syncPanes(c.NodeID(), true, false)
		}
	}
	if parent.Type() == node.TypeStoryFragment {
		r.syncPanes(parentID, false, true)
	}
	r.markPaneDirty(top)
	r.signal(d.containerKey(parentID))
	r.commit()
	tracer().Infof("added subtree %s with %d node(s) below %q", node.String(top), len(copies), parentID)
	return top.NodeID(), nil
}
