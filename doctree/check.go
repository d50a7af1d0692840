package doctree

import (
	"errors"
	"fmt"

	"github.com/storykeep/nodetree/node"
)

// Check validates the structural invariants of the document:
//
//   - there is exactly one root, and the root pointer names it
//   - every non-root node is linked exactly once, into its parent's children
//   - every child list belongs to a stored parent and names stored children
//   - every node is reachable from the root
//   - a page's pane list is a duplicate-free subset of its children
//   - no floating element sits directly in a markdown container, list items
//     sit in lists only, and lists hold list items only
//
// A document holding nodes without a root pointer yields ErrRootLost; such
// a document has to be reloaded.
func (d *Document) Check() error {
	if len(d.nodes) == 0 {
		if d.rootID != "" || d.index.Len() > 0 {
			return fmt.Errorf("%w: empty document with structure", ErrStructuralViolation)
		}
		return nil
	}
	if d.rootID == "" {
		return ErrRootLost
	}
	var errs []error
	violation := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: %s", ErrStructuralViolation, fmt.Sprintf(format, args...)))
	}
	root, ok := d.nodes[d.rootID]
	if !ok {
		return fmt.Errorf("%w: root %q not stored", ErrRootLost, d.rootID)
	}
	if root.ParentOf() != "" {
		violation("root %s has parent %q", node.String(root), root.ParentOf())
	}
	linked := make(map[string]int)
	for _, parentID := range d.index.Parents(func(a, b string) bool { return a < b }) {
		parent, ok := d.nodes[parentID]
		if !ok {
			violation("children listed for missing node %q", parentID)
			continue
		}
		for _, id := range d.index.Children(parentID) {
			linked[id]++
			n, ok := d.nodes[id]
			if !ok {
				violation("%s lists missing child %q", node.String(parent), id)
				continue
			}
			if n.ParentOf() != parentID {
				violation("%s is listed under %q but has parent %q", node.String(n), parentID, n.ParentOf())
			}
			if err := checkPlacement(parent, n); err != nil {
				errs = append(errs, err)
			}
		}
	}
	for _, id := range d.sortedIDs() {
		n := d.nodes[id]
		if sf, ok := n.(*node.StoryFragment); ok {
			seen := make(map[string]bool, len(sf.PaneIDs))
			for _, paneID := range sf.PaneIDs {
				if seen[paneID] || d.index.IndexOf(id, paneID) < 0 {
					violation("pane list of %s out of sync at %q", node.String(sf), paneID)
				}
				seen[paneID] = true
			}
		}
		switch {
		case id == d.rootID:
		case n.ParentOf() == "":
			violation("second root %s", node.String(n))
		case linked[id] != 1:
			violation("%s is linked %d times", node.String(n), linked[id])
		}
	}
	reachable := 1
	if err := d.index.TopDown(d.rootID, func(string, string, int) error {
		reachable++
		return nil
	}); err != nil {
		errs = append(errs, fmt.Errorf("%w: %v", ErrStructuralViolation, err))
	} else if reachable != len(d.nodes) {
		violation("%d of %d nodes unreachable from root", len(d.nodes)-reachable, len(d.nodes))
	}
	return errors.Join(errs...)
}
