package treedbg

import (
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/storykeep/nodetree/doctree"
	"github.com/storykeep/nodetree/node"
	"github.com/storykeep/nodetree/style"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDoc(t *testing.T) *doctree.Document {
	d := doctree.New()
	require.NoError(t, d.AddNodes(
		&node.Root{Base: node.Base{ID: "root"}},
		&node.StoryFragment{Base: node.Base{ID: "home", ParentID: "root"}, Slug: "hello", PaneIDs: []string{"hero"}},
		&node.Pane{Base: node.Base{ID: "hero", ParentID: "home"}, Slug: "hero"},
		&node.Markdown{Base: node.Base{ID: "md", ParentID: "hero"},
			DefaultClasses: map[string]*style.ClassTable{"h2": {Desktop: map[string]string{"textSIZE": "4xl"}}}},
		&node.TagElement{Base: node.Base{ID: "h", ParentID: "md"}, TagName: "h2"},
		&node.TagElement{Base: node.Base{ID: "t", ParentID: "h"}, TagName: node.TagText, Copy: "Welcome to the\nshow"},
	))
	return d
}

func TestPrint(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "nodetree.treedbg")
	defer teardown()
	//
	d := testDoc(t)
	out := Print(d)
	t.Logf("document =\n%s", out)
	assert.True(t, strings.HasPrefix(out, "Root#root\n"))
	assert.Contains(t, out, `StoryFragment#home "hello" panes=[hero]`)
	assert.Contains(t, out, `TagElement<text>#t "Welcome to...`)
	assert.Equal(t, 6, strings.Count(out, "\n"))
	assert.Equal(t, "(empty document)\n", Print(doctree.New()))
}

func TestGraphViz(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "nodetree.treedbg")
	defer teardown()
	//
	d := testDoc(t)
	var b strings.Builder
	require.NoError(t, ToGraphViz(d, &b, style.Desktop))
	dot := b.String()
	t.Logf("dot =\n%s", dot)
	assert.True(t, strings.HasPrefix(dot, "digraph g {"))
	assert.True(t, strings.HasSuffix(dot, "}\n"))
	assert.Equal(t, 5, strings.Count(dot, "[weight=1]"), "one edge per parent link")
	assert.Contains(t, dot, "textSIZE:</td><td>4xl")
	assert.Contains(t, dot, "pgnode00005")
	//
	b.Reset()
	require.NoError(t, ToGraphViz(d, &b, style.Mobile))
	assert.NotContains(t, b.String(), "Mrecord", "no styles on mobile")
}
