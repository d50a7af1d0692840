package doctree

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/storykeep/nodetree/node"
	"github.com/storykeep/nodetree/style"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestDoc creates a document
//
//	root
//	└── home (StoryFragment, panes [paneA])
//	    └── paneA (Pane)
//	        └── md (Markdown, p defaults to red text on mobile)
//	            └── e1 <p>
//	                └── t1 "Hello"
//
// with a deterministic id generator.
func newTestDoc(t *testing.T, opts ...Option) *Document {
	t.Helper()
	seq := 0
	gen := IDFunc(func() string {
		seq++
		return fmt.Sprintf("gen-%02d", seq)
	})
	d := New(append([]Option{WithIDGenerator(gen)}, opts...)...)
	err := d.AddNodes(
		&node.Root{Base: node.Base{ID: "root"}},
		&node.StoryFragment{Base: node.Base{ID: "home", ParentID: "root"},
			Title: "Home", Slug: "hello", PaneIDs: []string{"paneA"}},
		&node.Pane{Base: node.Base{ID: "paneA", ParentID: "home"},
			Title: "Hero", Slug: "hero", BgColour: "#10120d"},
		&node.Markdown{Base: node.Base{ID: "md", ParentID: "paneA"},
			DefaultClasses: map[string]*style.ClassTable{
				"p": {Mobile: map[string]string{"textCOLOR": "red"}},
			}},
		&node.TagElement{Base: node.Base{ID: "e1", ParentID: "md"}, TagName: "p"},
		&node.TagElement{Base: node.Base{ID: "t1", ParentID: "e1"}, TagName: node.TagText, Copy: "Hello"},
	)
	require.NoError(t, err)
	require.NoError(t, d.Check())
	return d
}

// snapshot captures the complete state of a document.
type snapshot struct {
	Nodes    []node.Node
	Children map[string][]string
	Root     string
}

func snap(d *Document) snapshot {
	s := snapshot{Nodes: d.Nodes(), Children: make(map[string][]string), Root: d.RootID()}
	for _, p := range d.index.Parents(nil) {
		s.Children[p] = d.Children(p)
	}
	return s
}

func diffSnapshots(a, b snapshot) string {
	return cmp.Diff(a, b, cmpopts.EquateEmpty())
}

// listen subscribes to keys and collects every notification.
func listen(d *Document, keys ...string) *[]string {
	var got []string
	for _, k := range keys {
		d.Subscribe(k, func(key string) { got = append(got, key) })
	}
	return &got
}

func TestAddBuildsIndex(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "nodetree.doctree")
	defer teardown()
	//
	d := newTestDoc(t)
	assert.Equal(t, "root", d.RootID())
	assert.Equal(t, 6, d.Len())
	assert.Equal(t, []string{"home"}, d.Children("root"))
	assert.Equal(t, []string{"paneA"}, d.Children("home"))
	assert.Equal(t, []string{"e1"}, d.Children("md"))
	assert.Empty(t, d.Dirty(), "loading nodes does not dirty them")
	assert.Equal(t, 1, d.HistoryLen())
}

func TestAddRelinksPlaceholderPanes(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "nodetree.doctree")
	defer teardown()
	//
	d := newTestDoc(t)
	err := d.AddNodes(
		&node.Pane{Base: node.Base{ID: "p2", ParentID: "placeholder"}, Slug: "two"},
		&node.Pane{Base: node.Base{ID: "p1", ParentID: "placeholder"}, Slug: "one"},
		&node.StoryFragment{Base: node.Base{ID: "about", ParentID: "root"},
			Slug: "about", PaneIDs: []string{"p1", "p2"}},
	)
	require.NoError(t, err)
	assert.Equal(t, []string{"p1", "p2"}, d.Children("about"), "children follow the pane list")
	p2, _ := d.Get("p2")
	assert.Equal(t, "about", p2.ParentOf())
	assert.NoError(t, d.Check())
}

func TestAddAdoptsStoredPane(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "nodetree.doctree")
	defer teardown()
	//
	d := newTestDoc(t)
	err := d.Add(&node.StoryFragment{Base: node.Base{ID: "about", ParentID: "root"},
		Slug: "about", PaneIDs: []string{"paneA"}})
	require.NoError(t, err)
	assert.Empty(t, d.Children("home"))
	assert.Empty(t, d.PaneIDs("home"))
	assert.Equal(t, []string{"paneA"}, d.Children("about"))
	assert.NoError(t, d.Check())
}

func TestAddPaneExtendsPaneList(t *testing.T) {
	d := newTestDoc(t)
	got := listen(d, "home")
	require.NoError(t, d.Add(&node.Pane{Base: node.Base{ID: "paneB", ParentID: "home"}}))
	assert.Equal(t, []string{"paneA", "paneB"}, d.PaneIDs("home"))
	home, _ := d.Get("home")
	assert.True(t, home.Changed())
	assert.Equal(t, []string{"home"}, *got)
}

func TestAddRejectsInvalidBatches(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "nodetree.doctree")
	defer teardown()
	//
	d := newTestDoc(t)
	before := snap(d)
	tests := []struct {
		name  string
		nodes []node.Node
		want  error
	}{
		{"missing parent", []node.Node{&node.Pane{Base: node.Base{ID: "x", ParentID: "nope"}}}, ErrReferenceMissing},
		{"second root", []node.Node{&node.Root{Base: node.Base{ID: "root2"}}}, ErrStructuralViolation},
		{"duplicate id", []node.Node{&node.Pane{Base: node.Base{ID: "paneA", ParentID: "home"}}}, ErrStructuralViolation},
		{"bare image", []node.Node{&node.TagElement{Base: node.Base{ID: "img", ParentID: "md"}, TagName: "img"}}, ErrStructuralViolation},
		{"pane list names markdown", []node.Node{&node.StoryFragment{Base: node.Base{ID: "sf", ParentID: "root"},
			PaneIDs: []string{"md"}}}, ErrTypeMismatch},
		{"parent cycle", []node.Node{
			&node.TagElement{Base: node.Base{ID: "a", ParentID: "b"}, TagName: "p"},
			&node.TagElement{Base: node.Base{ID: "b", ParentID: "a"}, TagName: "p"},
		}, ErrStructuralViolation},
		{"cycle beside a valid chain", []node.Node{
			&node.TagElement{Base: node.Base{ID: "c", ParentID: "md"}, TagName: "p"},
			&node.TagElement{Base: node.Base{ID: "d", ParentID: "c"}, TagName: "em"},
			&node.TagElement{Base: node.Base{ID: "e", ParentID: "f"}, TagName: "em"},
			&node.TagElement{Base: node.Base{ID: "f", ParentID: "g"}, TagName: "em"},
			&node.TagElement{Base: node.Base{ID: "g", ParentID: "e"}, TagName: "em"},
		}, ErrStructuralViolation},
		{"list item outside of a list", []node.Node{
			&node.TagElement{Base: node.Base{ID: "li", ParentID: "md"}, TagName: "li"},
		}, ErrStructuralViolation},
		{"partly valid", []node.Node{
			&node.Pane{Base: node.Base{ID: "ok", ParentID: "home"}},
			&node.Pane{Base: node.Base{ID: "bad", ParentID: "nope"}},
		}, ErrReferenceMissing},
	}
	for _, tt := range tests {
		err := d.AddNodes(tt.nodes...)
		if !errors.Is(err, tt.want) {
			t.Errorf("%s: expected %v, got %v", tt.name, tt.want, err)
		}
	}
	if diff := diffSnapshots(before, snap(d)); diff != "" {
		t.Errorf("rejected adds changed the document:\n%s", diff)
	}
	assert.Equal(t, 1, d.HistoryLen())
}

// Style of a paragraph: container default, then override, then undo.
func TestStyleOverrideScenario(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "nodetree.doctree")
	defer teardown()
	//
	d := New()
	require.NoError(t, d.Add(&node.Root{Base: node.Base{ID: "root"}}))
	require.NoError(t, d.Add(&node.StoryFragment{Base: node.Base{ID: "P", ParentID: "root"}}))
	require.NoError(t, d.Add(&node.Pane{Base: node.Base{ID: "A", ParentID: "P"}}))
	assert.Equal(t, []string{"A"}, d.PaneIDs("P"))
	require.NoError(t, d.Add(&node.Markdown{Base: node.Base{ID: "M", ParentID: "A"},
		DefaultClasses: map[string]*style.ClassTable{"p": {Mobile: map[string]string{"textCOLOR": "red"}}}}))
	require.NoError(t, d.Add(&node.TagElement{Base: node.Base{ID: "E", ParentID: "M"}, TagName: "p"}))
	//
	p, ok := d.EffectiveProperty("E", style.Mobile, "textCOLOR")
	require.True(t, ok)
	assert.Equal(t, style.Property("red"), p)
	//
	n, _ := d.Get("E")
	el := n.(*node.TagElement)
	el.OverrideClasses = &style.ClassTable{Mobile: map[string]string{"textCOLOR": "blue"}}
	require.NoError(t, d.Modify(el))
	p, _ = d.EffectiveProperty("E", style.Mobile, "textCOLOR")
	assert.Equal(t, style.Property("blue"), p)
	_, ok = d.EffectiveProperty("E", style.Tablet, "textCOLOR")
	assert.False(t, ok, "no cross-tier inheritance")
	//
	require.NoError(t, d.Undo())
	p, _ = d.EffectiveProperty("E", style.Mobile, "textCOLOR")
	assert.Equal(t, style.Property("red"), p)
	assert.NoError(t, d.Check())
}

// A bare image inserted into markdown gets list scaffolding, all of which
// is undone at once.
func TestInsertImageScenario(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "nodetree.doctree")
	defer teardown()
	//
	d := newTestDoc(t)
	size, hist := d.Len(), d.HistoryLen()
	id, err := d.Insert(&node.TagElement{TagName: "img", Src: "/logo.png"}, "md", -1)
	require.NoError(t, err)
	assert.Equal(t, size+3, d.Len())
	assert.Equal(t, hist+1, d.HistoryLen())
	chs := d.Children("md")
	require.Len(t, chs, 2)
	ul, _ := d.Get(chs[1])
	assert.Equal(t, "ul", node.TagOf(ul))
	lis := d.Children(ul.NodeID())
	require.Len(t, lis, 1)
	li, _ := d.Get(lis[0])
	assert.Equal(t, "li", node.TagOf(li))
	assert.Equal(t, []string{id}, d.Children(li.NodeID()))
	assert.NoError(t, d.Check())
	//
	require.NoError(t, d.Undo())
	assert.Equal(t, []string{"e1"}, d.Children("md"))
	assert.Equal(t, size, d.Len())
	assert.False(t, d.Has(id))
	assert.NoError(t, d.Check())
}

func TestDirtyAndClean(t *testing.T) {
	d := newTestDoc(t)
	n, _ := d.Get("e1")
	n.(*node.TagElement).Copy = "changed"
	require.NoError(t, d.Modify(n))
	var ids []string
	for _, n := range d.Dirty() {
		ids = append(ids, n.NodeID())
	}
	assert.Equal(t, []string{"e1", "paneA"}, ids, "editing content dirties its pane")
	hist := d.HistoryLen()
	require.NoError(t, d.CleanNode("e1"))
	require.NoError(t, d.CleanNode("paneA"))
	assert.Empty(t, d.Dirty())
	assert.Equal(t, hist, d.HistoryLen(), "cleaning is not an edit")
	assert.ErrorIs(t, d.CleanNode("nope"), ErrReferenceMissing)
}

func TestLoadAndClear(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "nodetree.doctree")
	defer teardown()
	//
	d := newTestDoc(t)
	nodes := d.Nodes()
	d2 := New()
	require.NoError(t, d2.Load(nodes))
	assert.Equal(t, 0, d2.HistoryLen())
	assert.False(t, d2.CanUndo())
	if diff := diffSnapshots(snap(d), snap(d2)); diff != "" {
		t.Errorf("loaded document differs:\n%s", diff)
	}
	d2.Clear()
	assert.Equal(t, 0, d2.Len())
	assert.Equal(t, "", d2.RootID())
	assert.NoError(t, d2.Check())
}

func TestCheckDetectsCorruption(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "nodetree.doctree")
	defer teardown()
	//
	d := newTestDoc(t)
	d.index.Link("md", "paneA", -1)
	assert.ErrorIs(t, d.Check(), ErrStructuralViolation)
	d.index.Unlink("md", "paneA")
	require.NoError(t, d.Check())
	d.rootID = ""
	assert.ErrorIs(t, d.Check(), ErrRootLost)
	err := d.Add(&node.Pane{Base: node.Base{ID: "x", ParentID: "home"}})
	assert.ErrorIs(t, err, ErrRootLost, "a document without root accepts no edits")
}
