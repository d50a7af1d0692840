package treedbg

import (
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/storykeep/nodetree/doctree"
	"github.com/storykeep/nodetree/node"
	"github.com/storykeep/nodetree/style"
	tp "github.com/xlab/treeprint"
)

// Print renders the tree of a document as indented text, one node per
// line, starting at the root.
func Print(doc *doctree.Document) string {
	root, ok := doc.Get(doc.RootID())
	if !ok {
		return "(empty document)\n"
	}
	p := tp.NewWithRoot(label(root))
	ppt(doc, p, root.NodeID())
	return p.String()
}

func ppt(doc *doctree.Document, p tp.Tree, id string) {
	for _, chID := range doc.Children(id) {
		ch, ok := doc.Get(chID)
		if !ok {
			p.AddNode(fmt.Sprintf("missing #%s", chID))
			continue
		}
		if len(doc.Children(chID)) == 0 {
			p.AddNode(label(ch))
			continue
		}
		ppt(doc, p.AddBranch(label(ch)), chID)
	}
}

func label(n node.Node) string {
	s := node.String(n)
	switch n := n.(type) {
	case *node.TagElement:
		if n.Copy != "" {
			s += " " + shortText(n.Copy)
		}
	case *node.StoryFragment:
		s += fmt.Sprintf(" %q panes=%v", n.Slug, n.PaneIDs)
	case *node.Pane:
		s += fmt.Sprintf(" %q", n.Slug)
	}
	if n.Changed() {
		s += " *"
	}
	return s
}

func shortText(s string) string {
	if r := []rune(s); len(r) > 10 {
		s = string(r[:10]) + "..."
	}
	s = strings.ReplaceAll(s, "\n", `\n`)
	s = strings.ReplaceAll(s, "\t", `\t`)
	return fmt.Sprintf("%q", s)
}

// --- GraphViz ---------------------------------------------------------

// Parameters for GraphViz drawing.
type graphParams struct {
	Fontname string
	Tier     style.Breakpoint
	nodeTmpl *template.Template
	edgeTmpl *template.Template
	pgTmpl   *template.Template
	pgEdge   *template.Template
}

type dotNode struct {
	N    node.Node
	Name string
}

type dotEdge struct {
	N1, N2 string
}

type dotGroup struct {
	Name  string
	Owner string
	Group *style.PropertyGroup
}

// ToGraphViz outputs a diagram of a document in GraphViz (DOT) format. Tag
// elements with styles get a record of their effective properties for
// breakpoint tier bp.
func ToGraphViz(doc *doctree.Document, w io.Writer, bp style.Breakpoint) error {
	gparams := graphParams{Fontname: "Helvetica", Tier: bp}
	funcs := template.FuncMap{"label": label}
	gparams.nodeTmpl = template.Must(template.New("node").Funcs(funcs).Parse(nodeTmpl))
	gparams.edgeTmpl = template.Must(template.New("edge").Parse(edgeTmpl))
	gparams.pgTmpl = template.Must(template.New("stylegroup").Parse(styleGroupTmpl))
	gparams.pgEdge = template.Must(template.New("pgedge").Parse(pgEdgeTmpl))
	head := template.Must(template.New("doc").Parse(graphHeadTmpl))
	if err := head.Execute(w, gparams); err != nil {
		return err
	}
	if doc.RootID() != "" {
		dict := make(map[string]string, doc.Len())
		if err := nodes(doc, doc.RootID(), w, dict, &gparams); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "}\n")
	return err
}

func nodes(doc *doctree.Document, id string, w io.Writer, dict map[string]string, gparams *graphParams) error {
	if err := dotNodeFor(doc, id, w, dict, gparams); err != nil {
		return err
	}
	for _, chID := range doc.Children(id) {
		if err := nodes(doc, chID, w, dict, gparams); err != nil {
			return err
		}
		if err := gparams.edgeTmpl.Execute(w, dotEdge{dict[id], dict[chID]}); err != nil {
			return err
		}
	}
	return nil
}

func dotNodeFor(doc *doctree.Document, id string, w io.Writer, dict map[string]string, gparams *graphParams) error {
	n, ok := doc.Get(id)
	if !ok {
		tracer().Errorf("document lists missing node %q", id)
		return nil
	}
	name := fmt.Sprintf("node%05d", len(dict)+1)
	dict[id] = name
	if err := gparams.nodeTmpl.Execute(w, dotNode{n, name}); err != nil {
		return err
	}
	if n.Type() != node.TypeTagElement {
		return nil
	}
	props, err := doc.EffectiveStyle(id, gparams.Tier)
	if err != nil || len(props) == 0 {
		return nil
	}
	pg := dotGroup{
		Name:  "pg" + name,
		Owner: name,
		Group: style.GroupFromMap(gparams.Tier.String(), props.Map()),
	}
	if err := gparams.pgTmpl.Execute(w, pg); err != nil {
		return err
	}
	return gparams.pgEdge.Execute(w, pg)
}

// --- Templates --------------------------------------------------------

const graphHeadTmpl = `digraph g {
  graph [labelloc="t" label="" splines=true overlap=false rankdir = "LR"];
  graph [fontname = "{{ .Fontname }}" fontsize=14] ;
   node [fontname = "{{ .Fontname }}" fontsize=14] ;
   edge [fontname = "{{ .Fontname }}" fontsize=14] ;
`

const nodeTmpl = `{{ if eq .N.Type.String "TagElement" }}
{{ .Name }}	[ label={{ label .N | printf "%q" }} shape=box style=filled fillcolor=grey95 fontname="Courier" fontsize=11.0 ] ;
{{ else }}
{{ .Name }}	[ label={{ label .N | printf "%q" }} shape=ellipse style=filled fillcolor=lightblue3 ] ;
{{ end }}
`

const edgeTmpl = `{{ .N1 }} -> {{ .N2 }} [weight=1] ;
`

const styleGroupTmpl = `{{ .Name }} [ style="filled" penwidth=1 fillcolor="ivory3" shape="Mrecord" fontsize=12
    label=<<table border="0" cellborder="0" cellpadding="2" cellspacing="0" bgcolor="ivory3">
      <tr><td bgcolor="azure4" align="center" colspan="2"><font color="white">{{ .Group.Name }}</font></td></tr>
      {{ range .Group.Properties }}
      <tr><td align="right">{{ .Key }}:</td><td>{{ .Value }}</td></tr>
      {{ end }}
    </table>> ] ;
`

const pgEdgeTmpl = `{{ .Owner }} -> {{ .Name }} [dir=none weight=1 style="dashed"] ;
`
