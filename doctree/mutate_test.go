package doctree

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/storykeep/nodetree/node"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModifyIsIdempotent(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "nodetree.doctree")
	defer teardown()
	//
	d := newTestDoc(t)
	got := listen(d, "paneA", "home", "md", "e1", d.RootKey())
	hist := d.HistoryLen()
	n, _ := d.Get("e1")
	node.BaseOf(n).IsChanged = true // the dirty flag does not count
	require.NoError(t, d.Modify(n))
	assert.Empty(t, *got)
	assert.Equal(t, hist, d.HistoryLen())
	assert.Empty(t, d.Dirty())
}

func TestModifyKeepsStructure(t *testing.T) {
	d := newTestDoc(t)
	n, _ := d.Get("home")
	sf := n.(*node.StoryFragment)
	sf.Title = "Start"
	sf.PaneIDs = nil
	sf.ParentID = "somewhere"
	require.NoError(t, d.Modify(sf))
	n, _ = d.Get("home")
	assert.Equal(t, "Start", n.(*node.StoryFragment).Title)
	assert.Equal(t, []string{"paneA"}, n.(*node.StoryFragment).PaneIDs)
	assert.Equal(t, "root", n.ParentOf())
	assert.NoError(t, d.Check())
}

func TestModifyRejects(t *testing.T) {
	d := newTestDoc(t)
	err := d.Modify(&node.Pane{Base: node.Base{ID: "nope"}})
	assert.ErrorIs(t, err, ErrReferenceMissing)
	err = d.Modify(&node.Pane{Base: node.Base{ID: "md"}})
	assert.ErrorIs(t, err, ErrTypeMismatch)
	n, _ := d.Get("e1")
	n.(*node.TagElement).Copy = "x"
	err = d.Modify(n, &node.Pane{Base: node.Base{ID: "nope"}})
	assert.ErrorIs(t, err, ErrReferenceMissing)
	e1, _ := d.Get("e1")
	assert.Equal(t, "", e1.(*node.TagElement).Copy, "a rejected batch writes nothing")
}

func TestNotifyTargets(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "nodetree.doctree")
	defer teardown()
	//
	d := newTestDoc(t)
	require.NoError(t, d.Add(&node.Menu{Base: node.Base{ID: "menu", ParentID: "root"}, Title: "Main"}))
	require.NoError(t, d.Add(&node.Impression{Base: node.Base{ID: "imp", ParentID: "paneA"}, Title: "Buy"}))
	tests := []struct {
		id   string
		edit func(node.Node)
		want string
	}{
		{"e1", func(n node.Node) { n.(*node.TagElement).Copy = "x" }, "paneA"},
		{"md", func(n node.Node) { n.(*node.Markdown).MarkdownID = "m-1" }, "paneA"},
		{"imp", func(n node.Node) { n.(*node.Impression).Body = "now" }, "paneA"},
		{"paneA", func(n node.Node) { n.(*node.Pane).Title = "Villain" }, "paneA"},
		{"home", func(n node.Node) { n.(*node.StoryFragment).Title = "Start" }, "home"},
		{"menu", func(n node.Node) { n.(*node.Menu).Theme = "dark" }, d.RootKey()},
	}
	for _, tt := range tests {
		got := listen(d, "paneA", "home", "md", "e1", "imp", "menu", d.RootKey())
		n, ok := d.Get(tt.id)
		require.True(t, ok)
		tt.edit(n)
		require.NoError(t, d.Modify(n))
		if assert.Len(t, *got, 1, "modify %s", tt.id) {
			assert.Equal(t, tt.want, (*got)[0], "modify %s", tt.id)
		}
		d.Notifier().Clear()
	}
}

func TestDeleteIsRecursive(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "nodetree.doctree")
	defer teardown()
	//
	d := newTestDoc(t)
	got := listen(d, "home")
	require.NoError(t, d.Delete("paneA"))
	for _, id := range []string{"paneA", "md", "e1", "t1"} {
		assert.False(t, d.Has(id), "%s must be gone", id)
		assert.Empty(t, d.Children(id))
	}
	for _, n := range d.Nodes() {
		assert.NotContains(t, []string{"paneA", "md", "e1", "t1"}, n.ParentOf())
	}
	assert.Empty(t, d.PaneIDs("home"))
	assert.Contains(t, *got, "home")
	assert.NoError(t, d.Check())
	//
	require.NoError(t, d.Undo())
	assert.Equal(t, 6, d.Len())
	assert.Equal(t, []string{"paneA"}, d.PaneIDs("home"))
	assert.NoError(t, d.Check())
}

func TestDeleteRoot(t *testing.T) {
	d := newTestDoc(t)
	got := listen(d, d.RootKey())
	require.NoError(t, d.Delete("root"))
	assert.Equal(t, 0, d.Len())
	assert.Equal(t, "", d.RootID())
	assert.Equal(t, []string{d.RootKey()}, *got)
	assert.NoError(t, d.Check())
	require.NoError(t, d.Undo())
	assert.Equal(t, "root", d.RootID())
	assert.NoError(t, d.Check())
}

func TestDeleteMissing(t *testing.T) {
	d := newTestDoc(t)
	assert.ErrorIs(t, d.Delete("nope"), ErrReferenceMissing)
	assert.Equal(t, 1, d.HistoryLen())
}

// listDoc adds a list below md:
//
//	ul
//	├── li1
//	│   ├── img1
//	│   └── ws  "  " (whitespace)
//	└── li2
//	    ├── img2
//	    └── p2
func listDoc(t *testing.T) *Document {
	d := newTestDoc(t)
	tag := func(id, parent, name string) *node.TagElement {
		return &node.TagElement{Base: node.Base{ID: id, ParentID: parent}, TagName: name}
	}
	ws := tag("ws", "li1", node.TagText)
	ws.Copy = "  "
	require.NoError(t, d.AddNodes(
		tag("ul", "md", "ul"),
		tag("li1", "ul", "li"),
		tag("img1", "li1", "img"),
		ws,
		tag("li2", "ul", "li"),
		tag("img2", "li2", "img"),
		tag("p2", "li2", "p"),
	))
	return d
}

func TestDeleteListRedirection(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "nodetree.doctree")
	defer teardown()
	//
	d := listDoc(t)
	require.NoError(t, d.Delete("img2"))
	assert.True(t, d.Has("li2"), "li2 keeps its paragraph")
	assert.Equal(t, []string{"p2"}, d.Children("li2"))
	//
	require.NoError(t, d.Delete("img1"))
	assert.False(t, d.Has("li1"), "whitespace does not keep a list item alive")
	assert.False(t, d.Has("ws"))
	assert.Equal(t, []string{"li2"}, d.Children("ul"))
	//
	require.NoError(t, d.Delete("li2"))
	assert.False(t, d.Has("ul"), "deleting the only list item deletes the list")
	assert.Equal(t, []string{"e1"}, d.Children("md"))
	assert.NoError(t, d.Check())
}

func TestDeleteCascadesFromItemToList(t *testing.T) {
	d := listDoc(t)
	require.NoError(t, d.Delete("li1"))
	require.NoError(t, d.Delete("p2"))
	assert.True(t, d.Has("li2"), "img2 is still there")
	require.NoError(t, d.Delete("img2"))
	assert.False(t, d.Has("ul"))
	assert.NoError(t, d.Check())
	for d.CanUndo() {
		require.NoError(t, d.Undo())
	}
	assert.Equal(t, 0, d.Len())
}

// pagesDoc adds panes B and C to home and a second page with pane D.
func pagesDoc(t *testing.T) *Document {
	d := newTestDoc(t)
	require.NoError(t, d.AddNodes(
		&node.Pane{Base: node.Base{ID: "paneB", ParentID: "home"}},
		&node.Pane{Base: node.Base{ID: "paneC", ParentID: "home"}},
		&node.StoryFragment{Base: node.Base{ID: "about", ParentID: "root"}, PaneIDs: []string{"paneD"}},
		&node.Pane{Base: node.Base{ID: "paneD", ParentID: "about"}},
	))
	require.Equal(t, []string{"paneA", "paneB", "paneC"}, d.PaneIDs("home"))
	return d
}

func TestMovePanes(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "nodetree.doctree")
	defer teardown()
	//
	d := pagesDoc(t)
	before := snap(d)
	require.NoError(t, d.Move("paneC", "paneA", Before))
	assert.Equal(t, []string{"paneC", "paneA", "paneB"}, d.Children("home"))
	assert.Equal(t, []string{"paneC", "paneA", "paneB"}, d.PaneIDs("home"))
	//
	got := listen(d, "home", "about")
	require.NoError(t, d.Move("paneA", "paneD", After))
	assert.Equal(t, []string{"paneC", "paneB"}, d.PaneIDs("home"))
	assert.Equal(t, []string{"paneD", "paneA"}, d.PaneIDs("about"))
	paneA, _ := d.Get("paneA")
	assert.Equal(t, "about", paneA.ParentOf())
	assert.ElementsMatch(t, []string{"home", "about"}, *got)
	assert.NoError(t, d.Check())
	//
	require.NoError(t, d.Undo())
	require.NoError(t, d.Undo())
	if diff := diffSnapshots(before, snap(d)); diff != "" {
		t.Errorf("undo of moves does not restore the pages:\n%s", diff)
	}
}

func TestMoveRejects(t *testing.T) {
	d := pagesDoc(t)
	hist := d.HistoryLen()
	assert.ErrorIs(t, d.Move("paneA", "md", After), ErrTypeMismatch)
	assert.ErrorIs(t, d.Move("paneA", "paneA", After), ErrStructuralViolation)
	assert.ErrorIs(t, d.Move("paneA", "nope", After), ErrReferenceMissing)
	require.NoError(t, d.Add(&node.Markdown{Base: node.Base{ID: "md2", ParentID: "paneB"}}))
	require.NoError(t, d.Add(&node.TagElement{Base: node.Base{ID: "p", ParentID: "md2"}, TagName: "p"}))
	require.NoError(t, d.Add(&node.TagElement{Base: node.Base{ID: "em", ParentID: "p"}, TagName: "em"}))
	assert.ErrorIs(t, d.Move("p", "em", After), ErrStructuralViolation, "cannot move into own subtree")
	assert.Equal(t, hist+3, d.HistoryLen())
}

func TestMoveFloatingNeedsWrapper(t *testing.T) {
	d := listDoc(t)
	assert.ErrorIs(t, d.Move("img2", "e1", After), ErrStructuralViolation)
	require.NoError(t, d.Move("img2", "p2", After))
	assert.Equal(t, []string{"p2", "img2"}, d.Children("li2"))
}

func TestMoveKeepsListsWellFormed(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "nodetree.doctree")
	defer teardown()
	//
	d := newTestDoc(t)
	img, err := d.Insert(&node.TagElement{TagName: "img"}, "md", -1)
	require.NoError(t, err)
	n, _ := d.Get(img)
	li := n.ParentOf()
	n, _ = d.Get(li)
	ul := n.ParentOf()
	hist := d.HistoryLen()
	assert.ErrorIs(t, d.Move(li, "e1", After), ErrStructuralViolation, "list item next to a paragraph")
	assert.ErrorIs(t, d.Move("e1", li, Before), ErrStructuralViolation, "paragraph into a list")
	assert.Equal(t, hist, d.HistoryLen())
	assert.Equal(t, []string{li}, d.Children(ul))
	assert.NoError(t, d.Check())
}

func TestMoveRemovesEmptiedList(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "nodetree.doctree")
	defer teardown()
	//
	d := listDoc(t)
	tag := func(id, parent, name string) *node.TagElement {
		return &node.TagElement{Base: node.Base{ID: id, ParentID: parent}, TagName: name}
	}
	require.NoError(t, d.AddNodes(
		tag("ol", "md", "ol"),
		tag("li3", "ol", "li"),
		tag("img3", "li3", "img"),
	))
	before := snap(d)
	require.NoError(t, d.Move("li3", "li1", After))
	assert.False(t, d.Has("ol"), "a list without items is removed")
	assert.Equal(t, []string{"li1", "li3", "li2"}, d.Children("ul"))
	assert.Equal(t, []string{"e1", "ul"}, d.Children("md"))
	assert.NoError(t, d.Check())
	//
	require.NoError(t, d.Move("img1", "img2", After))
	assert.False(t, d.Has("li1"), "whitespace does not keep a list item alive")
	assert.False(t, d.Has("ws"))
	assert.Equal(t, []string{"img2", "img1", "p2"}, d.Children("li2"))
	assert.NoError(t, d.Check())
	//
	require.NoError(t, d.Undo())
	require.NoError(t, d.Undo())
	if diff := diffSnapshots(before, snap(d)); diff != "" {
		t.Errorf("undo does not restore the emptied lists:\n%s", diff)
	}
}

func TestMoveStep(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "nodetree.doctree")
	defer teardown()
	//
	d := pagesDoc(t)
	require.NoError(t, d.MoveStep("paneC", Before))
	assert.Equal(t, []string{"paneA", "paneC", "paneB"}, d.PaneIDs("home"))
	hist := d.HistoryLen()
	require.NoError(t, d.MoveStep("paneA", Before))
	require.NoError(t, d.MoveStep("paneB", After))
	assert.Equal(t, hist, d.HistoryLen(), "moves at the edges are no-ops")
	require.NoError(t, d.MoveStep("paneA", After))
	assert.Equal(t, []string{"paneC", "paneA", "paneB"}, d.PaneIDs("home"))
	require.NoError(t, d.Move("paneC", "paneA", Before))
	assert.Equal(t, hist+1, d.HistoryLen(), "a move to the current position is a no-op")
}
