package node

import (
	"github.com/storykeep/nodetree/style"
)

// Clone returns a deep copy of n. Clients edit clones and hand them back to
// the document engine; stored nodes are never mutated in place.
func Clone(n Node) Node {
	switch n := n.(type) {
	case nil:
		return nil
	case *Root:
		c := *n
		return &c
	case *TractStack:
		c := *n
		return &c
	case *StoryFragment:
		c := *n
		c.PaneIDs = cloneStrings(n.PaneIDs)
		return &c
	case *Pane:
		c := *n
		c.CodeHookPayload = cloneStringMap(n.CodeHookPayload)
		c.HeldBeliefs = cloneListMap(n.HeldBeliefs)
		c.WithheldBeliefs = cloneListMap(n.WithheldBeliefs)
		return &c
	case *BgPane:
		c := *n
		return &c
	case *Markdown:
		c := *n
		if n.DefaultClasses != nil {
			c.DefaultClasses = make(map[string]*style.ClassTable, len(n.DefaultClasses))
			for tag, ct := range n.DefaultClasses {
				c.DefaultClasses[tag] = ct.Clone()
			}
		}
		if n.ParentClasses != nil {
			c.ParentClasses = make([]*style.ClassTable, len(n.ParentClasses))
			for i, ct := range n.ParentClasses {
				c.ParentClasses[i] = ct.Clone()
			}
		}
		c.ParentCSS = cloneStrings(n.ParentCSS)
		return &c
	case *TagElement:
		c := *n
		c.CodeHookParams = cloneStrings(n.CodeHookParams)
		c.OverrideClasses = n.OverrideClasses.Clone()
		if n.ButtonPayload != nil {
			bp := *n.ButtonPayload
			bp.ButtonClasses = cloneListMap(n.ButtonPayload.ButtonClasses)
			bp.ButtonHoverClasses = cloneListMap(n.ButtonPayload.ButtonHoverClasses)
			c.ButtonPayload = &bp
		}
		return &c
	case *Impression:
		c := *n
		return &c
	case *Menu:
		c := *n
		if n.Links != nil {
			c.Links = append([]MenuLink(nil), n.Links...)
		}
		return &c
	case *Belief:
		c := *n
		c.CustomValues = cloneStrings(n.CustomValues)
		return &c
	case *File:
		c := *n
		return &c
	case *Resource:
		c := *n
		return &c
	}
	tracer().Errorf("clone: unknown node variant %T", n)
	return nil
}

// CloneAll clones a slice of nodes.
func CloneAll(nodes []Node) []Node {
	if nodes == nil {
		return nil
	}
	c := make([]Node, len(nodes))
	for i, n := range nodes {
		c[i] = Clone(n)
	}
	return c
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	return append([]string(nil), s...)
}

func cloneStringMap(m map[string]string) map[string]string {
	if m == nil {
		return nil
	}
	c := make(map[string]string, len(m))
	for k, v := range m {
		c[k] = v
	}
	return c
}

func cloneListMap(m map[string][]string) map[string][]string {
	if m == nil {
		return nil
	}
	c := make(map[string][]string, len(m))
	for k, v := range m {
		c[k] = cloneStrings(v)
	}
	return c
}
