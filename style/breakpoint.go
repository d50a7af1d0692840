package style

import (
	"fmt"
	"strings"
)

// Breakpoint is one of the responsive size classes styles are scoped to.
type Breakpoint uint8

// Breakpoint tiers, smallest first.
const (
	Mobile Breakpoint = iota
	Tablet
	Desktop
)

// Breakpoints lists all tiers, smallest first.
var Breakpoints = [...]Breakpoint{Mobile, Tablet, Desktop}

func (bp Breakpoint) String() string {
	switch bp {
	case Mobile:
		return "mobile"
	case Tablet:
		return "tablet"
	case Desktop:
		return "desktop"
	}
	return fmt.Sprintf("breakpoint(%d)", uint8(bp))
}

// ParseBreakpoint maps a viewport name to a tier. "auto" and the empty
// string select the mobile tier, which is the base tier for all others.
func ParseBreakpoint(s string) (Breakpoint, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "mobile", "auto", "":
		return Mobile, nil
	case "tablet":
		return Tablet, nil
	case "desktop":
		return Desktop, nil
	}
	return Mobile, fmt.Errorf("unknown breakpoint %q", s)
}
