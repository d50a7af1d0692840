package doctree

import (
	"fmt"

	"github.com/storykeep/nodetree/node"
	"github.com/storykeep/nodetree/style"
)

// EffectiveStyle resolves the properties of a tag element for a breakpoint
// tier: the defaults its markdown container holds for the element's tag,
// shadowed per property by the element's own overrides for that tier.
func (d *Document) EffectiveStyle(id string, bp style.Breakpoint) (style.Properties, error) {
	defaults, overrides, err := d.classTables(id)
	if err != nil {
		return nil, err
	}
	return style.Resolve(defaults, overrides, bp), nil
}

// EffectiveProperty resolves a single property of a tag element for a tier.
func (d *Document) EffectiveProperty(id string, bp style.Breakpoint, key string) (style.Property, bool) {
	defaults, overrides, err := d.classTables(id)
	if err != nil {
		return style.NullStyle, false
	}
	return style.ResolveProperty(defaults, overrides, bp, key)
}

func (d *Document) classTables(id string) (defaults, overrides *style.ClassTable, err error) {
	n, ok := d.nodes[id]
	if !ok {
		return nil, nil, fmt.Errorf("%w: style of %q", ErrReferenceMissing, id)
	}
	el, ok := n.(*node.TagElement)
	if !ok {
		return nil, nil, fmt.Errorf("%w: style of %s", ErrTypeMismatch, node.String(n))
	}
	if mdID, ok := d.ClosestAncestorOfType(id, node.TypeMarkdown); ok {
		md := d.nodes[mdID].(*node.Markdown)
		defaults = md.DefaultClasses[el.TagName]
	}
	return defaults, el.OverrideClasses, nil
}

// ParentLayerStyle returns the properties of a wrapping layer of a markdown
// container for a tier. Layer 0 is the outermost one.
func (d *Document) ParentLayerStyle(markdownID string, layer int, bp style.Breakpoint) style.Properties {
	md, ok := d.nodes[markdownID].(*node.Markdown)
	if !ok || layer < 0 || layer >= len(md.ParentClasses) {
		return nil
	}
	return style.Resolve(md.ParentClasses[layer], nil, bp)
}

// InlineStyle returns the inline CSS of a node: the background colour of a
// pane, or the element CSS of a tag element.
func (d *Document) InlineStyle(id string) string {
	switch n := d.nodes[id].(type) {
	case *node.Pane:
		return style.InlineText(style.Declaration("background-color", n.BgColour))
	case *node.TagElement:
		return n.ElementCSS
	}
	return ""
}
