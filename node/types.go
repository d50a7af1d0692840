package node

import "fmt"

// Type is the closed tag discriminating node variants.
type Type uint8

// Node types. The zero value is not a valid node type.
const (
	NoType Type = iota
	TypeRoot
	TypeTractStack
	TypeStoryFragment
	TypePane
	TypeBgPane
	TypeMarkdown
	TypeTagElement
	TypeImpression
	TypeMenu
	TypeBelief
	TypeFile
	TypeResource
)

var typeNames = [...]string{
	NoType:            "",
	TypeRoot:          "Root",
	TypeTractStack:    "TractStack",
	TypeStoryFragment: "StoryFragment",
	TypePane:          "Pane",
	TypeBgPane:        "BgPane",
	TypeMarkdown:      "Markdown",
	TypeTagElement:    "TagElement",
	TypeImpression:    "Impression",
	TypeMenu:          "Menu",
	TypeBelief:        "Belief",
	TypeFile:          "File",
	TypeResource:      "Resource",
}

func (t Type) String() string {
	if int(t) < len(typeNames) {
		return typeNames[t]
	}
	return fmt.Sprintf("Type(%d)", uint8(t))
}

// ParseType maps a type name to a node type.
func ParseType(s string) (Type, error) {
	for i, name := range typeNames {
		if name != "" && name == s {
			return Type(i), nil
		}
	}
	return NoType, fmt.Errorf("unknown node type %q", s)
}

// MarshalText is part of interface encoding.TextMarshaler.
func (t Type) MarshalText() ([]byte, error) {
	if t == NoType || int(t) >= len(typeNames) {
		return nil, fmt.Errorf("cannot marshal node type %d", uint8(t))
	}
	return []byte(t.String()), nil
}

// UnmarshalText is part of interface encoding.TextUnmarshaler.
func (t *Type) UnmarshalText(b []byte) error {
	typ, err := ParseType(string(b))
	if err != nil {
		return err
	}
	*t = typ
	return nil
}

// New returns an empty node of type t, or nil for an invalid type.
func New(t Type) Node {
	switch t {
	case TypeRoot:
		return &Root{}
	case TypeTractStack:
		return &TractStack{}
	case TypeStoryFragment:
		return &StoryFragment{}
	case TypePane:
		return &Pane{}
	case TypeBgPane:
		return &BgPane{}
	case TypeMarkdown:
		return &Markdown{}
	case TypeTagElement:
		return &TagElement{}
	case TypeImpression:
		return &Impression{}
	case TypeMenu:
		return &Menu{}
	case TypeBelief:
		return &Belief{}
	case TypeFile:
		return &File{}
	case TypeResource:
		return &Resource{}
	}
	return nil
}
