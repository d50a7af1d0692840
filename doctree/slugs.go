package doctree

import (
	"fmt"

	"github.com/storykeep/nodetree/node"
	"github.com/storykeep/nodetree/slug"
)

// SlugRules returns the slug constraints of a configuration.
func (c Config) SlugRules() slug.Rules {
	return slug.Rules{Reserved: c.ReservedSlugs, HomeSlug: c.HomeSlug}
}

// ValidateSlug checks s as the new slug of the page or pane id.
func (d *Document) ValidateSlug(id, s string) error {
	t := d.TypeOf(id)
	if t == node.NoType {
		return fmt.Errorf("%w: slug owner %q", ErrReferenceMissing, id)
	}
	if t != node.TypeStoryFragment && t != node.TypePane {
		return fmt.Errorf("%w: %s %q carries no page slug", ErrTypeMismatch, t, id)
	}
	return slug.Validate(s, id, d.slugOwners(), d.cfg.SlugRules())
}

// UniqueSlug derives a slug from a title which no page or pane uses yet.
// The result passes ValidateSlug for any page or pane but the home page.
func (d *Document) UniqueSlug(title string) string {
	return slug.Unique(slug.Sanitize(title), d.slugOwners(), d.cfg.SlugRules())
}

func (d *Document) slugOwners() []node.Node {
	var owners []node.Node
	for _, id := range d.sortedIDs() {
		if n := d.nodes[id]; n.Type() == node.TypeStoryFragment || n.Type() == node.TypePane {
			owners = append(owners, n)
		}
	}
	return owners
}
