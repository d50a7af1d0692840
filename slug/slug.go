package slug

import (
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strings"
	"unicode"

	"github.com/storykeep/nodetree/node"
)

// Length limits of a slug.
const (
	MinLength = 3
	MaxLength = 75
)

// Errors of slug validation.
var (
	ErrTooShort  = errors.New("slug too short")
	ErrTooLong   = errors.New("slug too long")
	ErrMalformed = errors.New("slug malformed")
	ErrReserved  = errors.New("slug reserved")
	ErrHomeSlug  = errors.New("home page slug is fixed")
	ErrTaken     = errors.New("slug taken")
)

var pattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// Rules are the document-wide constraints on slugs.
type Rules struct {
	Reserved []string // slugs of application routes
	HomeSlug string   // slug of the home page
}

// Validate checks slug s for the page or pane with identifier selfID
// against the nodes of a document. A node never conflicts with itself.
//
// The home page keeps the home slug, and no other node may take it.
func Validate(s, selfID string, nodes []node.Node, rules Rules) error {
	switch {
	case len(s) < MinLength:
		return fmt.Errorf("%w: %q has less than %d characters", ErrTooShort, s, MinLength)
	case len(s) > MaxLength:
		return fmt.Errorf("%w: %d characters, at most %d allowed", ErrTooLong, len(s), MaxLength)
	case !pattern.MatchString(s):
		return fmt.Errorf("%w: %q", ErrMalformed, s)
	case slices.Contains(rules.Reserved, s):
		return fmt.Errorf("%w: %q", ErrReserved, s)
	}
	for _, n := range nodes {
		if n == nil || !inNamespace(n) {
			continue
		}
		current, _ := node.Slug(n)
		if n.NodeID() == selfID {
			if rules.HomeSlug != "" && current == rules.HomeSlug && s != current {
				return fmt.Errorf("%w: %s", ErrHomeSlug, node.String(n))
			}
			continue
		}
		if current == s {
			if s == rules.HomeSlug {
				return fmt.Errorf("%w: %q", ErrHomeSlug, s)
			}
			return fmt.Errorf("%w: %q is used by %s", ErrTaken, s, node.String(n))
		}
	}
	tracer().Debugf("slug %q is valid for %q", s, selfID)
	return nil
}

// Fallback is the base of a slug derived from a title without any usable
// characters.
const Fallback = "page"

// Sanitize turns a title into slug form. Letters are lowercased, and runs of
// whitespace, hyphens and underscores become a single hyphen. Every other
// character is dropped, as are leading digits and separators.
//
//	"-- My  Page --"  ->  "my-page"
//	"2024 Report!"    ->  "report"
//
// The result may be empty or shorter than MinLength.
func Sanitize(s string) string {
	var b strings.Builder
	sep := false
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9' && b.Len() > 0:
			if sep && b.Len() > 0 {
				b.WriteByte('-')
			}
			sep = false
			b.WriteRune(r)
		case r == '-', r == '_', unicode.IsSpace(r):
			sep = true
		}
	}
	return b.String()
}

// Truncate shortens s to at most limit bytes, cutting at the last hyphen
// where possible.
func Truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	if limit > 0 && s[limit] != '-' {
		if i := strings.LastIndexByte(s[:limit], '-'); i > 0 {
			limit = i
		}
	}
	return strings.TrimRight(s[:limit], "-")
}

// Unique returns s, or s with the smallest numeric suffix "-1", "-2", ...,
// such that the result passes Validate for a new page or pane: it is long
// enough, not reserved, not the home slug, and no page or pane in nodes
// uses it. s is expected in the form Sanitize returns.
func Unique(s string, nodes []node.Node, rules Rules) string {
	if s == "" {
		s = Fallback
	}
	taken := make(map[string]bool)
	for _, n := range nodes {
		if n != nil && inNamespace(n) {
			sl, _ := node.Slug(n)
			taken[sl] = true
		}
	}
	for _, r := range rules.Reserved {
		taken[r] = true
	}
	if rules.HomeSlug != "" {
		taken[rules.HomeSlug] = true
	}
	if cand := Truncate(s, MaxLength); len(cand) >= MinLength && !taken[cand] {
		return cand
	}
	for i := 1; ; i++ {
		suffix := fmt.Sprintf("-%d", i)
		if cand := Truncate(s, MaxLength-len(suffix)) + suffix; !taken[cand] {
			return cand
		}
	}
}

func inNamespace(n node.Node) bool {
	return n.Type() == node.TypeStoryFragment || n.Type() == node.TypePane
}
