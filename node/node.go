package node

import (
	"fmt"

	"github.com/storykeep/nodetree/style"
)

// Node is the sum type of all document node variants.
type Node interface {
	NodeID() string   // unique, immutable identifier
	ParentOf() string // identifier of the parent node, empty for the root
	Changed() bool    // dirty flag
	Type() Type       // variant tag
	base() *Base
}

// Base is embedded in every node variant.
type Base struct {
	ID        string `json:"id"`
	ParentID  string `json:"parentId,omitempty"`
	IsChanged bool   `json:"isChanged,omitempty"`
}

// NodeID returns the node's identifier.
func (b *Base) NodeID() string { return b.ID }

// ParentOf returns the identifier of the node's parent.
func (b *Base) ParentOf() string { return b.ParentID }

// Changed returns the dirty flag.
func (b *Base) Changed() bool { return b.IsChanged }

func (b *Base) base() *Base { return b }

// BaseOf gives access to the common fields of a node.
func BaseOf(n Node) *Base {
	if n == nil {
		return nil
	}
	return n.base()
}

// String is a short description of a node, used for tracing.
func String(n Node) string {
	if n == nil {
		return "<nil>"
	}
	if el, ok := n.(*TagElement); ok {
		return fmt.Sprintf("%s<%s>#%s", n.Type(), el.TagName, n.NodeID())
	}
	return fmt.Sprintf("%s#%s", n.Type(), n.NodeID())
}

// --- Containers -------------------------------------------------------

// Root is the document root.
type Root struct {
	Base
}

// TractStack groups pages of a site.
type TractStack struct {
	Base
	Title           string `json:"title"`
	Slug            string `json:"slug"`
	SocialImagePath string `json:"socialImagePath,omitempty"`
}

// StoryFragment is a page. PaneIDs is the visual order of its panes and
// is kept in lockstep with the page's children.
type StoryFragment struct {
	Base
	Title            string   `json:"title"`
	Slug             string   `json:"slug"`
	HasMenu          bool     `json:"hasMenu,omitempty"`
	PaneIDs          []string `json:"paneIds"`
	MenuID           string   `json:"menuId,omitempty"`
	TailwindBgColour string   `json:"tailwindBgColour,omitempty"`
	SocialImagePath  string   `json:"socialImagePath,omitempty"`
}

// Pane is a horizontal section of a page.
type Pane struct {
	Base
	Title               string              `json:"title"`
	Slug                string              `json:"slug"`
	IsDecorative        bool                `json:"isDecorative,omitempty"`
	BgColour            string              `json:"bgColour,omitempty"`
	IsContextPane       bool                `json:"isContextPane,omitempty"`
	HeightOffsetMobile  int                 `json:"heightOffsetMobile,omitempty"`
	HeightOffsetTablet  int                 `json:"heightOffsetTablet,omitempty"`
	HeightOffsetDesktop int                 `json:"heightOffsetDesktop,omitempty"`
	HeightRatioMobile   string              `json:"heightRatioMobile,omitempty"`
	HeightRatioTablet   string              `json:"heightRatioTablet,omitempty"`
	HeightRatioDesktop  string              `json:"heightRatioDesktop,omitempty"`
	CodeHookTarget      string              `json:"codeHookTarget,omitempty"`
	CodeHookPayload     map[string]string   `json:"codeHookPayload,omitempty"`
	HeldBeliefs         map[string][]string `json:"heldBeliefs,omitempty"`
	WithheldBeliefs     map[string][]string `json:"withheldBeliefs,omitempty"`
}

// Hidden flags a pane fragment as hidden per breakpoint tier.
type Hidden struct {
	HiddenViewportMobile  bool `json:"hiddenViewportMobile,omitempty"`
	HiddenViewportTablet  bool `json:"hiddenViewportTablet,omitempty"`
	HiddenViewportDesktop bool `json:"hiddenViewportDesktop,omitempty"`
}

// IsHidden tells if the fragment is hidden for a tier.
func (h Hidden) IsHidden(bp style.Breakpoint) bool {
	switch bp {
	case style.Tablet:
		return h.HiddenViewportTablet
	case style.Desktop:
		return h.HiddenViewportDesktop
	}
	return h.HiddenViewportMobile
}

// Kinds of decorative background fragments.
const (
	BgVisualBreak     = "visual-break"
	BgBackgroundImage = "background-image"
	BgArtpackImage    = "artpack-image"
)

// BgPane is a decorative background fragment of a pane.
type BgPane struct {
	Base
	Hidden
	Kind       string `json:"type"`
	FileID     string `json:"fileId,omitempty"`
	Src        string `json:"src,omitempty"`
	SrcSet     string `json:"srcSet,omitempty"`
	Alt        string `json:"alt,omitempty"`
	ObjectFit  string `json:"objectFit,omitempty"`
	Collection string `json:"collection,omitempty"`
	Image      string `json:"image,omitempty"`
	SvgFill    string `json:"svgFill,omitempty"`
}

// Markdown is the container of a pane's copy. DefaultClasses holds per-tag
// default styles, ParentClasses the styles of the wrapping layers.
type Markdown struct {
	Base
	Hidden
	MarkdownID     string                       `json:"markdownId,omitempty"`
	DefaultClasses map[string]*style.ClassTable `json:"defaultClasses,omitempty"`
	ParentClasses  []*style.ClassTable          `json:"parentClasses,omitempty"`
	ParentCSS      []string                     `json:"parentCss,omitempty"`
}

// --- Tag elements -----------------------------------------------------

// ButtonPayload configures a link rendered as a button.
type ButtonPayload struct {
	ButtonClasses      map[string][]string `json:"buttonClasses,omitempty"`
	ButtonHoverClasses map[string][]string `json:"buttonHoverClasses,omitempty"`
	CallbackPayload    string              `json:"callbackPayload,omitempty"`
	IsExternalURL      bool                `json:"isExternalUrl,omitempty"`
}

// TagElement is an inline or block element inside a markdown container.
type TagElement struct {
	Base
	TagName         string            `json:"tagName"`
	TagNameCustom   string            `json:"tagNameCustom,omitempty"`
	Copy            string            `json:"copy,omitempty"`
	Src             string            `json:"src,omitempty"`
	SrcSet          string            `json:"srcSet,omitempty"`
	Alt             string            `json:"alt,omitempty"`
	Href            string            `json:"href,omitempty"`
	Text            string            `json:"text,omitempty"`
	FileID          string            `json:"fileId,omitempty"`
	CodeHookParams  []string          `json:"codeHookParams,omitempty"`
	OverrideClasses *style.ClassTable `json:"overrideClasses,omitempty"`
	ElementCSS      string            `json:"elementCss,omitempty"`
	ButtonPayload   *ButtonPayload    `json:"buttonPayload,omitempty"`
}

// IsSignificant is false for whitespace-only text runs.
func (el *TagElement) IsSignificant() bool {
	return !(IsText(el.TagName) && isBlank(el.Copy))
}

// --- Metadata ---------------------------------------------------------

// Impression is a call-to-action attached to a pane.
type Impression struct {
	Base
	Title       string `json:"title"`
	Body        string `json:"body"`
	ButtonText  string `json:"buttonText"`
	ActionsLisp string `json:"actionsLisp"`
}

// MenuLink is an entry of a menu.
type MenuLink struct {
	Name         string `json:"name"`
	Description  string `json:"description,omitempty"`
	FeaturedLink bool   `json:"featured,omitempty"`
	ActionLisp   string `json:"actionLisp,omitempty"`
}

// Menu is a site menu.
type Menu struct {
	Base
	Title string     `json:"title"`
	Theme string     `json:"theme"`
	Links []MenuLink `json:"optionsPayload,omitempty"`
}

// Belief is a tracked visitor belief.
type Belief struct {
	Base
	Title        string   `json:"title"`
	Slug         string   `json:"slug"`
	Scale        string   `json:"scale"`
	CustomValues []string `json:"customValues,omitempty"`
}

// File is an uploaded image.
type File struct {
	Base
	Filename       string `json:"filename"`
	AltDescription string `json:"altDescription"`
	Src            string `json:"src"`
	SrcSet         string `json:"srcSet,omitempty"`
}

// Resource is a generic content resource.
type Resource struct {
	Base
	Title      string `json:"title"`
	Slug       string `json:"slug"`
	Oneliner   string `json:"oneliner,omitempty"`
	Category   string `json:"category,omitempty"`
	ActionLisp string `json:"actionLisp,omitempty"`
}

// Type is part of interface Node.
func (*Root) Type() Type          { return TypeRoot }
func (*TractStack) Type() Type    { return TypeTractStack }
func (*StoryFragment) Type() Type { return TypeStoryFragment }
func (*Pane) Type() Type          { return TypePane }
func (*BgPane) Type() Type        { return TypeBgPane }
func (*Markdown) Type() Type      { return TypeMarkdown }
func (*TagElement) Type() Type    { return TypeTagElement }
func (*Impression) Type() Type    { return TypeImpression }
func (*Menu) Type() Type          { return TypeMenu }
func (*Belief) Type() Type        { return TypeBelief }
func (*File) Type() Type          { return TypeFile }
func (*Resource) Type() Type      { return TypeResource }

// Slug returns the slug of node variants which carry one.
func Slug(n Node) (string, bool) {
	switch n := n.(type) {
	case *StoryFragment:
		return n.Slug, true
	case *Pane:
		return n.Slug, true
	case *TractStack:
		return n.Slug, true
	case *Belief:
		return n.Slug, true
	case *Resource:
		return n.Slug, true
	}
	return "", false
}
