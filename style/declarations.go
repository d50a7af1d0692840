package style

import (
	"fmt"
	"strings"

	"github.com/aymerick/douceur/css"
	"github.com/aymerick/douceur/parser"
)

// Declaration creates a single CSS declaration, e.g.
//
//	Declaration("background-color", "#10120d")
//
// Empty values yield nil.
func Declaration(property, value string) *css.Declaration {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	return &css.Declaration{Property: property, Value: value}
}

// InlineText renders declarations as the text of an HTML style attribute.
// nil entries are skipped.
func InlineText(decls ...*css.Declaration) string {
	parts := make([]string, 0, len(decls))
	for _, d := range decls {
		if d != nil {
			parts = append(parts, d.String())
		}
	}
	return strings.Join(parts, " ")
}

// ParseInline parses the text of a style attribute into a property table.
// Later declarations for the same property win, as in a browser.
func ParseInline(text string) (Properties, error) {
	decls, err := parser.ParseDeclarations(text)
	if err != nil {
		return nil, fmt.Errorf("parsing inline style: %w", err)
	}
	props := make(Properties, len(decls))
	for _, d := range decls {
		props[d.Property] = Property(d.Value)
	}
	return props, nil
}
